package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure AggregationService implements the interface.
var _ driving.AggregationService = (*AggregationService)(nil)

// AggregationService computes numeric summaries over JSON documents.
type AggregationService struct {
	vectors driven.VectorStore
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(vectors driven.VectorStore) *AggregationService {
	return &AggregationService{vectors: vectors}
}

// Aggregate applies the operation to every value of a top-level field
// across the record chunks of a JSON document.
func (s *AggregationService) Aggregate(ctx context.Context, req domain.AggregationRequest) (*domain.AggregationResult, error) {
	logger.Section("Aggregate")

	op, err := domain.ParseAggregationOp(req.Operation)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.DocumentName)
	field := strings.TrimSpace(req.Field)
	if name == "" {
		return nil, fmt.Errorf("%w: document_name is required", domain.ErrInvalidInput)
	}
	if field == "" {
		return nil, fmt.Errorf("%w: field is required", domain.ErrInvalidInput)
	}

	if s.vectors == nil {
		return nil, domain.ErrVectorStoreUnavailable
	}

	exists, err := s.vectors.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check document %s: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, name)
	}

	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotJSONDocument, name)
	}

	chunks, err := s.vectors.Chunks(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load chunks of %s: %w", name, err)
	}

	values, err := collectField(chunks, field)
	if err != nil {
		return nil, err
	}
	logger.Debug("Aggregating %d values of %q in %s", len(values), field, name)

	return &domain.AggregationResult{
		Document:  name,
		Field:     field,
		Operation: op.String(),
		Result:    op.Apply(values),
	}, nil
}

// collectField gathers the numeric values of a top-level key from object
// chunks. Chunks that are not objects are skipped. Numbers and numeric
// strings count; booleans, nulls, arrays and objects do not.
func collectField(chunks []domain.Chunk, field string) ([]float64, error) {
	var (
		values     []float64
		found      bool
		nonNumeric bool
	)

	for _, chunk := range chunks {
		if !gjson.Valid(chunk.Text) {
			return nil, fmt.Errorf("%w: invalid JSON format in document chunks", domain.ErrMalformedInput)
		}

		record := gjson.Parse(chunk.Text)
		if !record.IsObject() {
			continue
		}

		record.ForEach(func(key, value gjson.Result) bool {
			if key.String() != field {
				return true
			}
			found = true
			if v, ok := numericValue(value); ok {
				values = append(values, v)
			} else {
				nonNumeric = true
			}
			return false
		})
	}

	if !found {
		return nil, fmt.Errorf("%w: field %q not found in document", domain.ErrFieldNotFound, field)
	}
	if nonNumeric {
		return nil, fmt.Errorf("%w: field %q", domain.ErrNonNumericField, field)
	}
	return values, nil
}

func numericValue(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

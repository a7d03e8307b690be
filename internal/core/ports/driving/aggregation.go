package driving

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// AggregationService computes numeric summaries over JSON documents.
type AggregationService interface {
	// Aggregate applies req.Operation to every value of req.Field.
	Aggregate(ctx context.Context, req domain.AggregationRequest) (*domain.AggregationResult, error)
}

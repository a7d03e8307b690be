package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

func newAggregationFixture() (*AggregationService, *mockVectorStore) {
	vectors := newMockVectorStore()
	vectors.put("sales.json",
		`{"item":"a","price":10}`,
		`{"item":"b","price":25.5}`,
		`{"item":"c","price":"4.5"}`,
	)
	return NewAggregationService(vectors), vectors
}

func TestAggregationService_Aggregate(t *testing.T) {
	svc, _ := newAggregationFixture()

	tests := []struct {
		op   string
		want float64
	}{
		{"max", 25.5},
		{"min", 4.5},
		{"sum", 40},
		{"AVG", 40.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			result, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
				DocumentName: "sales.json",
				Field:        "price",
				Operation:    tt.op,
			})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, result.Result, 1e-9)
			assert.Equal(t, "sales.json", result.Document)
			assert.Equal(t, "price", result.Field)
		})
	}
}

func TestAggregationService_Aggregate_InvalidOperationCheckedFirst(t *testing.T) {
	svc := NewAggregationService(newMockVectorStore())

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "missing.json",
		Field:        "price",
		Operation:    "median",
	})
	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Contains(t, err.Error(), "max, min, sum, avg")
}

func TestAggregationService_Aggregate_UnknownDocument(t *testing.T) {
	svc, _ := newAggregationFixture()

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "other.json", Field: "price", Operation: "sum",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAggregationService_Aggregate_NotJSON(t *testing.T) {
	svc, vectors := newAggregationFixture()
	vectors.put("notes.txt", `{"price":1}`)

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "notes.txt", Field: "price", Operation: "sum",
	})
	assert.ErrorIs(t, err, domain.ErrNotJSONDocument)
}

func TestAggregationService_Aggregate_FieldNotFound(t *testing.T) {
	svc, _ := newAggregationFixture()

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "sales.json", Field: "qty", Operation: "sum",
	})
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestAggregationService_Aggregate_NestedKeysAreNotTopLevel(t *testing.T) {
	vectors := newMockVectorStore()
	vectors.put("nested.json", `{"meta":{"price":3}}`)
	svc := NewAggregationService(vectors)

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "nested.json", Field: "price", Operation: "sum",
	})
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestAggregationService_Aggregate_NonNumeric(t *testing.T) {
	for _, value := range []string{`"cheap"`, `true`, `null`, `[1]`, `{"v":1}`} {
		vectors := newMockVectorStore()
		vectors.put("mixed.json", `{"price":1}`, `{"price":`+value+`}`)
		svc := NewAggregationService(vectors)

		_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
			DocumentName: "mixed.json", Field: "price", Operation: "max",
		})
		assert.ErrorIs(t, err, domain.ErrNonNumericField, "value %s", value)
	}
}

func TestAggregationService_Aggregate_SkipsNonObjectChunks(t *testing.T) {
	vectors := newMockVectorStore()
	vectors.put("mixed.json", `{"price":2}`, `42`, `"text"`, `{"price":8}`)
	svc := NewAggregationService(vectors)

	result, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "mixed.json", Field: "price", Operation: "avg",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, result.Result, 1e-9)
}

func TestAggregationService_Aggregate_InvalidChunk(t *testing.T) {
	vectors := newMockVectorStore()
	vectors.put("broken.json", `{"price":2}`, `{"price":`)
	svc := NewAggregationService(vectors)

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{
		DocumentName: "broken.json", Field: "price", Operation: "sum",
	})
	require.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Contains(t, err.Error(), "invalid JSON format in document chunks")
}

func TestAggregationService_Aggregate_MissingArguments(t *testing.T) {
	svc, _ := newAggregationFixture()

	_, err := svc.Aggregate(context.Background(), domain.AggregationRequest{Field: "price", Operation: "sum"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Aggregate(context.Background(), domain.AggregationRequest{DocumentName: "sales.json", Operation: "sum"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package driving

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// QueryService answers natural-language queries against one document.
type QueryService interface {
	// Query returns the chunks of req.DocumentName most similar to req.Query.
	Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)
}

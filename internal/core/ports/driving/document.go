package driving

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// DocumentService manages ingested documents.
type DocumentService interface {
	// List returns every ingested document, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by name.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// Delete removes a document and all of its chunks.
	Delete(ctx context.Context, name string) error
}

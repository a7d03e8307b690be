package driven

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// DocumentStore is the ledger of ingested documents.
// Backed by SQLite, or memory for tests and ephemeral runs.
type DocumentStore interface {
	// Save stores or replaces a document record.
	Save(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by name. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// List returns all documents ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document record. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}

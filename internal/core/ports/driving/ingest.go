package driving

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// IngestService turns uploaded files into indexed chunks.
type IngestService interface {
	// Ingest extracts, chunks, embeds and stores a file under its name.
	// Returns domain.ErrAlreadyExists if the name is taken.
	Ingest(ctx context.Context, filename string, content []byte) (*domain.IngestResult, error)
}

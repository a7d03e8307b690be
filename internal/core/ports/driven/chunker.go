package driven

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// Chunker splits extracted text into ordered chunks.
type Chunker interface {
	// Chunk splits text using the configured window size and overlap.
	Chunk(ctx context.Context, text string, format domain.Format) ([]domain.Chunk, error)
}

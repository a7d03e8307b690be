package driven

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// VectorStore is the managed vector index holding every document's chunks.
// Chunks are grouped by document name; similarity math happens in the store.
type VectorStore interface {
	// EnsureCollection creates the collection for vectors of the given size
	// if it does not exist yet.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert stores chunks with their embeddings.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Search returns the limit chunks of a document nearest to vector,
	// most similar first.
	Search(ctx context.Context, documentName string, vector []float32, limit int) ([]VectorHit, error)

	// Chunks returns every chunk of a document ordered by position.
	Chunks(ctx context.Context, documentName string) ([]domain.Chunk, error)

	// Exists reports whether any chunk belongs to the document.
	Exists(ctx context.Context, documentName string) (bool, error)

	// DeleteDocument removes every chunk of a document.
	DeleteDocument(ctx context.Context, documentName string) error

	// Ping validates the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Chunk is the matched chunk, without its embedding.
	Chunk domain.Chunk

	// Similarity is the similarity score (0-1, 1 is most similar).
	Similarity float64
}

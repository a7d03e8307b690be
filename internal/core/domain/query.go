package domain

import "fmt"

// Query limits.
const (
	// DefaultTopK is the number of results returned when none is requested.
	DefaultTopK = 3

	// MaxTopK is the largest number of results a query may request.
	MaxTopK = 20
)

// QueryRequest asks for the chunks of one document most similar to a query.
type QueryRequest struct {
	DocumentName string
	Query        string
	TopK         int
}

// QueryResult is a single retrieved chunk.
type QueryResult struct {
	// Text is the chunk content.
	Text string `json:"text"`

	// ChunkID is the chunk's position within its document.
	ChunkID int `json:"chunk_id"`

	// SimilarityScore is between 0 and 1, where 1 is most similar.
	SimilarityScore float64 `json:"similarity_score"`

	// DocumentName is the document the chunk belongs to.
	DocumentName string `json:"document_name"`

	// VectorID is the vector store identifier of the chunk.
	VectorID string `json:"vector_id"`
}

// QueryResponse pairs the submitted query with its results.
type QueryResponse struct {
	Query   string        `json:"query"`
	Results []QueryResult `json:"results"`
}

// ValidateTopK checks that k is within [1, MaxTopK].
func ValidateTopK(k int) error {
	if k < 1 || k > MaxTopK {
		return fmt.Errorf("%w: top_k must be between 1 and %d", ErrInvalidInput, MaxTopK)
	}
	return nil
}

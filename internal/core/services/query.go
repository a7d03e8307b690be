package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService performs semantic retrieval within one document.
type QueryService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
}

// NewQueryService creates a new query service.
func NewQueryService(embedder driven.EmbeddingService, vectors driven.VectorStore) *QueryService {
	return &QueryService{
		embedder: embedder,
		vectors:  vectors,
	}
}

// Query returns the chunks of a document most similar to the query text.
func (s *QueryService) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	logger.Section("Query")

	name := strings.TrimSpace(req.DocumentName)
	query := strings.TrimSpace(req.Query)
	if name == "" {
		return nil, fmt.Errorf("%w: document_name is required", domain.ErrInvalidInput)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	topK := req.TopK
	if topK == 0 {
		topK = domain.DefaultTopK
	}
	if err := domain.ValidateTopK(topK); err != nil {
		return nil, err
	}

	if s.vectors == nil {
		return nil, domain.ErrVectorStoreUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	exists, err := s.vectors.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check document %s: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, name)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectors.Search(ctx, name, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", name, err)
	}
	logger.Debug("Query %q on %s returned %d hits", query, name, len(hits))

	results := make([]domain.QueryResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, domain.QueryResult{
			Text:            hit.Chunk.Text,
			ChunkID:         hit.Chunk.Position,
			SimilarityScore: hit.Similarity,
			DocumentName:    hit.Chunk.DocumentName,
			VectorID:        hit.Chunk.ID,
		})
	}

	return &domain.QueryResponse{
		Query:   query,
		Results: results,
	}, nil
}

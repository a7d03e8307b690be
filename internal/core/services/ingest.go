package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultEmbedBatchSize is the number of chunks embedded per request.
const DefaultEmbedBatchSize = 64

// IngestService runs the extract, chunk, embed and store pipeline.
type IngestService struct {
	extractors driven.ExtractorRegistry
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	vectors    driven.VectorStore
	docs       driven.DocumentStore
	batchSize  int
	now        func() time.Time
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithEmbedBatchSize sets how many chunks are embedded per request.
func WithEmbedBatchSize(size int) IngestOption {
	return func(s *IngestService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) IngestOption {
	return func(s *IngestService) {
		s.now = now
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	extractors driven.ExtractorRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	docs driven.DocumentStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		extractors: extractors,
		chunker:    chunker,
		embedder:   embedder,
		vectors:    vectors,
		docs:       docs,
		batchSize:  DefaultEmbedBatchSize,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest extracts, chunks, embeds and stores a file.
func (s *IngestService) Ingest(ctx context.Context, filename string, content []byte) (*domain.IngestResult, error) {
	logger.Section("Ingest")

	name := strings.TrimSpace(filepath.Base(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}

	raw, err := domain.NewRawDocument(name, content)
	if err != nil {
		return nil, err
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectors == nil {
		return nil, domain.ErrVectorStoreUnavailable
	}

	if err := s.checkDuplicate(ctx, name); err != nil {
		return nil, err
	}

	text, err := s.extractors.Extract(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	logger.Debug("Extracted %d bytes of text from %s", len(text), name)

	chunks, err := s.chunker.Chunk(ctx, text, raw.Format)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", name, err)
	}
	logger.Debug("Split %s into %d chunks", name, len(chunks))

	// A JSON document is only useful as an array of records.
	if raw.Format == domain.FormatJSON && len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s contains no JSON records; the top level must be a non-empty array",
			domain.ErrMalformedInput, name)
	}

	if len(chunks) > 0 {
		if err := s.embedAndStore(ctx, name, chunks); err != nil {
			return nil, err
		}
	}

	doc := domain.Document{
		Name:       name,
		Format:     raw.Format,
		ChunkCount: len(chunks),
		SizeBytes:  int64(len(content)),
		CreatedAt:  s.now(),
	}
	if s.docs != nil {
		if err := s.docs.Save(ctx, doc); err != nil {
			if len(chunks) > 0 {
				if cleanupErr := s.vectors.DeleteDocument(ctx, name); cleanupErr != nil {
					logger.Warn("Failed to remove chunks of %s after ledger error: %v", name, cleanupErr)
				}
			}
			return nil, fmt.Errorf("record %s: %w", name, err)
		}
	}

	logger.Info("Ingested %s (%s, %d chunks)", name, raw.Format, len(chunks))

	return &domain.IngestResult{
		Document: doc,
		Message: fmt.Sprintf("%s uploaded and processed successfully. %d chunks were created and indexed.",
			name, len(chunks)),
	}, nil
}

// checkDuplicate rejects names already present in the ledger or the vector
// store. A vector store that cannot answer is logged and ignored.
func (s *IngestService) checkDuplicate(ctx context.Context, name string) error {
	if s.docs != nil {
		_, err := s.docs.Get(ctx, name)
		switch {
		case err == nil:
			return fmt.Errorf("%w: file name %s already exists", domain.ErrAlreadyExists, name)
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("check ledger for %s: %w", name, err)
		}
	}

	exists, err := s.vectors.Exists(ctx, name)
	if err != nil {
		logger.Warn("Could not check for existing chunks of %s: %v", name, err)
		return nil
	}
	if exists {
		return fmt.Errorf("%w: file name %s already exists", domain.ErrAlreadyExists, name)
	}
	return nil
}

// embedAndStore embeds and upserts chunks one batch at a time so a single
// request never carries the whole document. If a batch fails after earlier
// ones were written, the document's points are removed again.
func (s *IngestService) embedAndStore(ctx context.Context, name string, chunks []domain.Chunk) error {
	written := false
	for start := 0; start < len(chunks); start += s.batchSize {
		end := min(start+s.batchSize, len(chunks))
		if err := s.storeBatch(ctx, name, chunks[start:end], start == 0); err != nil {
			if written {
				if cleanupErr := s.vectors.DeleteDocument(ctx, name); cleanupErr != nil {
					logger.Warn("Failed to remove partial chunks of %s: %v", name, cleanupErr)
				}
			}
			return err
		}
		written = true
	}
	return nil
}

// storeBatch embeds one batch and upserts it. The first batch also sizes
// the collection.
func (s *IngestService) storeBatch(ctx context.Context, name string, batch []domain.Chunk, first bool) error {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %s: %w", name, err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embed %s: got %d vectors for %d chunks", name, len(vectors), len(batch))
	}

	for i := range batch {
		batch[i].ID = uuid.NewString()
		batch[i].DocumentName = name
		batch[i].Embedding = vectors[i]
	}

	if first {
		if err := s.vectors.EnsureCollection(ctx, len(vectors[0])); err != nil {
			return fmt.Errorf("prepare collection: %w", err)
		}
	}
	if err := s.vectors.Upsert(ctx, batch); err != nil {
		return fmt.Errorf("store chunks of %s: %w", name, err)
	}
	return nil
}

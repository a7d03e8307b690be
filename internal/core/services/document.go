package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the ledger of ingested documents.
type DocumentService struct {
	docs    driven.DocumentStore
	vectors driven.VectorStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docs driven.DocumentStore, vectors driven.VectorStore) *DocumentService {
	return &DocumentService{
		docs:    docs,
		vectors: vectors,
	}
}

// List returns every ingested document, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docs == nil {
		return []domain.Document{}, nil
	}
	return s.docs.List(ctx)
}

// Get retrieves a document by name.
func (s *DocumentService) Get(ctx context.Context, name string) (*domain.Document, error) {
	if s.docs == nil {
		return nil, domain.ErrNotFound
	}
	return s.docs.Get(ctx, name)
}

// Delete removes a document's chunks from the vector store and its ledger
// record. Documents known only to the vector store are deleted as well.
func (s *DocumentService) Delete(ctx context.Context, name string) error {
	inLedger := false
	if s.docs != nil {
		_, err := s.docs.Get(ctx, name)
		switch {
		case err == nil:
			inLedger = true
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
	}

	inStore := false
	if s.vectors != nil {
		exists, err := s.vectors.Exists(ctx, name)
		if err != nil {
			return fmt.Errorf("check document %s: %w", name, err)
		}
		inStore = exists
	}

	if !inLedger && !inStore {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, name)
	}

	if inStore {
		if err := s.vectors.DeleteDocument(ctx, name); err != nil {
			return fmt.Errorf("delete chunks of %s: %w", name, err)
		}
	}
	if inLedger {
		if err := s.docs.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete record of %s: %w", name, err)
		}
	}

	logger.Info("Deleted document %s", name)
	return nil
}

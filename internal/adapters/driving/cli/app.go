package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/docsearch/internal/adapters/driven/ai"
	"github.com/custodia-labs/docsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docsearch/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/docsearch/internal/adapters/driven/vector/qdrant"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/services"
	"github.com/custodia-labs/docsearch/internal/logger"
	"github.com/custodia-labs/docsearch/internal/normalisers"
	"github.com/custodia-labs/docsearch/internal/postprocessors/chunker"
)

// closers are released by Shutdown in reverse order.
var closers []io.Closer

// LoadSettings resolves settings and configures logging. It is enough for
// commands that only read or write configuration.
func LoadSettings(dir string) error {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	svc := services.NewSettingsService(store)
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if err := logger.Configure(settings.Log.Level, settings.Log.Format); err != nil {
		return err
	}
	logger.SetVerbose(verbose)
	logger.Debug("config file: %s", store.Path())

	settingsService = svc
	appSettings = settings
	return nil
}

// Configure wires every adapter and service from the resolved settings.
func Configure(ctx context.Context, dir string) error {
	if err := LoadSettings(dir); err != nil {
		return err
	}
	settings := appSettings
	if err := settings.Validate(); err != nil {
		return err
	}

	docs, err := openLedger(settings.Storage.Driver, settings.Storage.DataDir)
	if err != nil {
		return err
	}

	vectors := qdrant.New(qdrant.Config{
		URL:        settings.VectorStore.URL,
		APIKey:     settings.VectorStore.APIKey,
		Collection: settings.VectorStore.Collection,
		Timeout:    settings.VectorStore.Timeout,
	})
	closers = append(closers, vectors)

	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	closers = append(closers, embedder)

	tok, err := tiktoken.New(settings.Chunker.Encoding)
	if err != nil {
		return fmt.Errorf("loading tokenizer: %w", err)
	}
	chunks, err := chunker.New(tok,
		chunker.WithChunkSize(settings.Chunker.ChunkSize),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)
	if err != nil {
		return fmt.Errorf("creating chunker: %w", err)
	}

	logger.Section("services")
	logger.Debug("vector store: %s (collection %s)", settings.VectorStore.URL, settings.VectorStore.Collection)
	logger.Debug("embedding: %s/%s", settings.Embedding.Provider, embedder.ModelName())
	logger.Debug("chunker: %d tokens, %d overlap, %s", chunks.ChunkSize(), chunks.Overlap(), settings.Chunker.Encoding)

	ingestService = services.NewIngestService(
		normalisers.NewDefaultRegistry(), chunks, embedder, vectors, docs,
		services.WithEmbedBatchSize(settings.Embedding.BatchSize),
	)
	queryService = services.NewQueryService(embedder, vectors)
	aggregationService = services.NewAggregationService(vectors)
	documentService = services.NewDocumentService(docs, vectors)
	healthService = services.NewHealthService(vectors)
	configured = true

	if err := vectors.Ping(ctx); err != nil {
		logger.Warn("vector store unreachable at %s: %v", settings.VectorStore.URL, err)
	}
	return nil
}

// openLedger opens the document ledger for the configured driver.
func openLedger(driver, dataDir string) (driven.DocumentStore, error) {
	if driver == "memory" {
		logger.Debug("ledger: in memory")
		return memory.NewDocumentStore(), nil
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	closers = append(closers, store)
	logger.Debug("ledger: %s", store.Path())
	return store.DocumentStore(), nil
}

// Shutdown releases resources opened by Configure.
func Shutdown() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Warn("closing resource: %v", err)
		}
	}
	closers = nil
}

package domain

import (
	"fmt"
	"time"
)

// EmbeddingProvider identifies the service that turns text into vectors.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderOpenAI is the OpenAI embeddings API.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"

	// EmbeddingProviderOllama is a local Ollama instance.
	EmbeddingProviderOllama EmbeddingProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	return p == EmbeddingProviderOpenAI || p == EmbeddingProviderOllama
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == EmbeddingProviderOpenAI
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string

	// MaxUploadBytes caps the size of an uploaded file.
	MaxUploadBytes int64

	// RequestTimeout bounds the handling of a single request.
	RequestTimeout time.Duration
}

// ChunkerSettings configures chunking of free text.
type ChunkerSettings struct {
	// ChunkSize is the window length in tokens.
	ChunkSize int

	// Overlap is the number of tokens shared by consecutive windows.
	Overlap int

	// Encoding is the tokenizer vocabulary name.
	Encoding string
}

// Validate reports whether chunking with these settings can make progress.
func (c ChunkerSettings) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfiguration, c.ChunkSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be in [0, %d)", ErrInvalidConfiguration, c.Overlap, c.ChunkSize)
	}
	return nil
}

// VectorStoreSettings configures the managed vector index.
type VectorStoreSettings struct {
	// URL is the base URL of the vector store.
	URL string

	// APIKey authenticates against the vector store.
	APIKey string

	// Collection is the collection holding every document's chunks.
	Collection string

	// Timeout bounds each vector store request.
	Timeout time.Duration
}

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	Provider EmbeddingProvider
	Model    string
	BaseURL  string
	APIKey   string

	// BatchSize is the number of chunks embedded per request.
	BatchSize int
}

// StorageSettings configures the local document ledger.
type StorageSettings struct {
	// Driver is "sqlite" or "memory".
	Driver string

	// DataDir holds the sqlite database.
	DataDir string
}

// WatcherSettings configures the directory watcher.
type WatcherSettings struct {
	// Directory is the folder to watch for new documents.
	Directory string

	// APIEndpoint is the upload URL files are posted to.
	APIEndpoint string

	// PollingInterval is how often the directory is rescanned.
	PollingInterval time.Duration

	// UploadsPerSecond throttles uploads.
	UploadsPerSecond float64
}

// LogSettings configures logging.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is one of auto, console, json.
	Format string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Server      ServerSettings
	Chunker     ChunkerSettings
	VectorStore VectorStoreSettings
	Embedding   EmbeddingSettings
	Storage     StorageSettings
	Watcher     WatcherSettings
	Log         LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:           ":8000",
			CORSOrigins:    []string{"http://localhost:3000", "http://localhost"},
			MaxUploadBytes: 32 << 20,
			RequestTimeout: 120 * time.Second,
		},
		Chunker: ChunkerSettings{
			ChunkSize: 300,
			Overlap:   50,
			Encoding:  "cl100k_base",
		},
		VectorStore: VectorStoreSettings{
			URL:        "http://localhost:6333",
			Collection: "Documents",
			Timeout:    15 * time.Second,
		},
		Embedding: EmbeddingSettings{
			Provider:  EmbeddingProviderOpenAI,
			Model:     "text-embedding-3-small",
			BatchSize: 64,
		},
		Storage: StorageSettings{
			Driver: "sqlite",
		},
		Watcher: WatcherSettings{
			Directory:        "watch",
			APIEndpoint:      "http://localhost:8000/upload",
			PollingInterval:  5 * time.Second,
			UploadsPerSecond: 2,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside a component.
func (s *AppSettings) Validate() error {
	if err := s.Chunker.Validate(); err != nil {
		return err
	}
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfiguration, s.Embedding.Provider)
	}
	if s.Embedding.Provider.RequiresAPIKey() && s.Embedding.APIKey == "" {
		return fmt.Errorf("%w: %s embedding provider requires an API key", ErrInvalidConfiguration, s.Embedding.Provider)
	}
	if s.Storage.Driver != "sqlite" && s.Storage.Driver != "memory" {
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfiguration, s.Storage.Driver)
	}
	return nil
}

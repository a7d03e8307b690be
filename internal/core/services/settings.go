package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr       = "server.addr"
	keyServerCORS       = "server.cors_origins"
	keyServerMaxUpload  = "server.max_upload_bytes"
	keyServerTimeout    = "server.request_timeout"
	keyChunkSize        = "chunker.chunk_size"
	keyChunkOverlap     = "chunker.overlap"
	keyChunkEncoding    = "chunker.encoding"
	keyVectorURL        = "vector_store.url"
	keyVectorAPIKey     = "vector_store.api_key"
	keyVectorCollection = "vector_store.collection"
	keyVectorTimeout    = "vector_store.timeout"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedBatchSize   = "embedding.batch_size"
	keyStorageDriver    = "storage.driver"
	keyStorageDataDir   = "storage.data_dir"
	keyWatchDir         = "watcher.directory"
	keyWatchEndpoint    = "watcher.api_endpoint"
	keyWatchInterval    = "watcher.polling_interval"
	keyWatchRate        = "watcher.uploads_per_second"
	keyLogLevel         = "log.level"
	keyLogFormat        = "log.format"
)

// EnvPrefix prefixes the environment variable of every config key:
// "chunker.chunk_size" is overridden by DOCSEARCH_CHUNKER_CHUNK_SIZE.
const EnvPrefix = "DOCSEARCH_"

// legacyEnv maps config keys to the bare variable names also honoured.
//
//nolint:gosec // G101: variable names, not credentials.
var legacyEnv = map[string]string{
	keyVectorURL:     "QDRANT_URL",
	keyVectorAPIKey:  "QDRANT_API_KEY",
	keyEmbedAPIKey:   "OPENAI_API_KEY",
	keyWatchDir:      "WATCH_DIRECTORY",
	keyWatchEndpoint: "API_ENDPOINT",
	keyWatchInterval: "POLLING_INTERVAL",
}

// knownKeys lists every key Set accepts.
var knownKeys = map[string]bool{
	keyServerAddr: true, keyServerCORS: true, keyServerMaxUpload: true, keyServerTimeout: true,
	keyChunkSize: true, keyChunkOverlap: true, keyChunkEncoding: true,
	keyVectorURL: true, keyVectorAPIKey: true, keyVectorCollection: true, keyVectorTimeout: true,
	keyEmbedProvider: true, keyEmbedModel: true, keyEmbedBaseURL: true, keyEmbedAPIKey: true,
	keyEmbedBatchSize: true,
	keyStorageDriver:  true, keyStorageDataDir: true,
	keyWatchDir: true, keyWatchEndpoint: true, keyWatchInterval: true, keyWatchRate: true,
	keyLogLevel: true, keyLogFormat: true,
}

// SettingsService resolves settings from the environment, the config
// store and defaults, in that order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// SettingsOption configures the settings service.
type SettingsOption func(*SettingsService)

// WithEnvLookup replaces os.LookupEnv (for testing).
func WithEnvLookup(lookup func(string) (string, bool)) SettingsOption {
	return func(s *SettingsService) {
		s.lookupEnv = lookup
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()
	r := &resolver{s: s}

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:           r.getString(keyServerAddr, d.Server.Addr),
			CORSOrigins:    r.getStrings(keyServerCORS, d.Server.CORSOrigins),
			MaxUploadBytes: int64(r.getInt(keyServerMaxUpload, int(d.Server.MaxUploadBytes))),
			RequestTimeout: r.getDuration(keyServerTimeout, d.Server.RequestTimeout),
		},
		Chunker: domain.ChunkerSettings{
			ChunkSize: r.getInt(keyChunkSize, d.Chunker.ChunkSize),
			Overlap:   r.getInt(keyChunkOverlap, d.Chunker.Overlap),
			Encoding:  r.getString(keyChunkEncoding, d.Chunker.Encoding),
		},
		VectorStore: domain.VectorStoreSettings{
			URL:        r.getString(keyVectorURL, d.VectorStore.URL),
			APIKey:     r.getString(keyVectorAPIKey, ""),
			Collection: r.getString(keyVectorCollection, d.VectorStore.Collection),
			Timeout:    r.getDuration(keyVectorTimeout, d.VectorStore.Timeout),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:  domain.EmbeddingProvider(strings.ToLower(r.getString(keyEmbedProvider, d.Embedding.Provider.String()))),
			Model:     r.getString(keyEmbedModel, d.Embedding.Model),
			BaseURL:   r.getString(keyEmbedBaseURL, ""),
			APIKey:    r.getString(keyEmbedAPIKey, ""),
			BatchSize: r.getInt(keyEmbedBatchSize, d.Embedding.BatchSize),
		},
		Storage: domain.StorageSettings{
			Driver:  strings.ToLower(r.getString(keyStorageDriver, d.Storage.Driver)),
			DataDir: r.getString(keyStorageDataDir, d.Storage.DataDir),
		},
		Watcher: domain.WatcherSettings{
			Directory:        r.getString(keyWatchDir, d.Watcher.Directory),
			APIEndpoint:      r.getString(keyWatchEndpoint, d.Watcher.APIEndpoint),
			PollingInterval:  r.getDuration(keyWatchInterval, d.Watcher.PollingInterval),
			UploadsPerSecond: r.getFloat(keyWatchRate, d.Watcher.UploadsPerSecond),
		},
		Log: domain.LogSettings{
			Level:  r.getString(keyLogLevel, d.Log.Level),
			Format: r.getString(keyLogFormat, d.Log.Format),
		},
	}

	if r.err != nil {
		return nil, r.err
	}
	return settings, nil
}

// Set persists a single setting by its dotted key.
func (s *SettingsService) Set(key string, value any) error {
	if !knownKeys[key] {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// EnvName returns the environment variable overriding a config key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// env returns the environment override for a key, if any.
func (s *SettingsService) env(key string) (name, value string, ok bool) {
	name = EnvName(key)
	if v, found := s.lookupEnv(name); found && v != "" {
		return name, v, true
	}
	if legacy, has := legacyEnv[key]; has {
		if v, found := s.lookupEnv(legacy); found && v != "" {
			return legacy, v, true
		}
	}
	return "", "", false
}

// resolver reads typed values and remembers the first parse error.
type resolver struct {
	s   *SettingsService
	err error
}

func (r *resolver) fail(name, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidConfiguration, name, value, err)
	}
}

func (r *resolver) getString(key, def string) string {
	if _, v, ok := r.s.env(key); ok {
		return v
	}
	if v := r.s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (r *resolver) getInt(key string, def int) int {
	if name, v, ok := r.s.env(key); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			r.fail(name, v, err)
			return def
		}
		return n
	}
	if _, ok := r.s.configStore.Get(key); ok {
		return r.s.configStore.GetInt(key)
	}
	return def
}

func (r *resolver) getFloat(key string, def float64) float64 {
	if name, v, ok := r.s.env(key); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			r.fail(name, v, err)
			return def
		}
		return f
	}
	if _, ok := r.s.configStore.Get(key); ok {
		return r.s.configStore.GetFloat(key)
	}
	return def
}

func (r *resolver) getDuration(key string, def time.Duration) time.Duration {
	if name, v, ok := r.s.env(key); ok {
		d, err := domain.ParseDuration(v)
		if err != nil {
			r.fail(name, v, err)
			return def
		}
		return d
	}
	if d := r.s.configStore.GetDuration(key); d > 0 {
		return d
	}
	return def
}

func (r *resolver) getStrings(key string, def []string) []string {
	if _, v, ok := r.s.env(key); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	if v := r.s.configStore.GetStringSlice(key); v != nil {
		return v
	}
	return def
}

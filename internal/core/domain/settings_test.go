package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, ":8000", s.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, s.Server.CORSOrigins)
	assert.Equal(t, 300, s.Chunker.ChunkSize)
	assert.Equal(t, 50, s.Chunker.Overlap)
	assert.Equal(t, "cl100k_base", s.Chunker.Encoding)
	assert.Equal(t, "Documents", s.VectorStore.Collection)
	assert.Equal(t, "http://localhost:8000/upload", s.Watcher.APIEndpoint)
	assert.Equal(t, EmbeddingProviderOpenAI, s.Embedding.Provider)
}

func TestChunkerSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		valid   bool
	}{
		{"defaults", 300, 50, true},
		{"no overlap", 10, 0, true},
		{"overlap one less than size", 10, 9, true},
		{"overlap equals size", 10, 10, false},
		{"overlap exceeds size", 10, 11, false},
		{"negative overlap", 10, -1, false},
		{"zero size", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ChunkerSettings{ChunkSize: tt.size, Overlap: tt.overlap}.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			}
		})
	}
}

func TestAppSettings_Validate(t *testing.T) {
	t.Run("openai without key", func(t *testing.T) {
		s := DefaultAppSettings()
		assert.ErrorIs(t, s.Validate(), ErrInvalidConfiguration)
	})

	t.Run("openai with key", func(t *testing.T) {
		s := DefaultAppSettings()
		s.Embedding.APIKey = "sk-test"
		assert.NoError(t, s.Validate())
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		s := DefaultAppSettings()
		s.Embedding.Provider = EmbeddingProviderOllama
		assert.NoError(t, s.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		s := DefaultAppSettings()
		s.Embedding.Provider = "cohere"
		assert.ErrorIs(t, s.Validate(), ErrInvalidConfiguration)
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		s := DefaultAppSettings()
		s.Embedding.APIKey = "sk-test"
		s.Storage.Driver = "postgres"
		assert.ErrorIs(t, s.Validate(), ErrInvalidConfiguration)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"5", 5 * time.Second, false},
		{" 0.5 ", 500 * time.Millisecond, false},
		{"-1", 0, true},
		{"-2s", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Package qdrant implements the vector store on Qdrant's REST API.
//
// Every document's chunks live in one collection. Points carry the
// payload fields filename, text_chunk and chunk_id; filename has a
// keyword index so per-document filters stay cheap.
package qdrant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/docsearch/internal/adapters/driven/httpclient"
	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Payload field names.
const (
	FieldFilename  = "filename"
	FieldTextChunk = "text_chunk"
	FieldChunkID   = "chunk_id"
)

// Default configuration values.
const (
	DefaultURL        = "http://localhost:6333"
	DefaultCollection = "Documents"
	DefaultTimeout    = 15 * time.Second

	scrollPageSize = 256
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// URL is the Qdrant REST API base URL (default: http://localhost:6333).
	URL string

	// APIKey is sent as the api-key header when set.
	APIKey string

	// Collection holds every document's chunks (default: Documents).
	Collection string

	// Timeout bounds a single request (default: 15s).
	Timeout time.Duration

	// MaxRetries is passed to the HTTP client (0 = default, negative = off).
	MaxRetries int

	// BackoffBase is the first retry delay.
	BackoffBase time.Duration
}

// Store is a Qdrant-backed vector store.
type Store struct {
	client     *httpclient.Client
	collection string
	path       string

	mu    sync.Mutex
	ready bool
}

// New creates a new Qdrant store. No request is made until first use.
func New(cfg Config) *Store {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["api-key"] = cfg.APIKey
	}

	return &Store{
		client: httpclient.New(httpclient.Config{
			Service:     "qdrant",
			BaseURL:     cfg.URL,
			Timeout:     cfg.Timeout,
			Headers:     headers,
			MaxRetries:  cfg.MaxRetries,
			BackoffBase: cfg.BackoffBase,
		}),
		collection: cfg.Collection,
		path:       "/collections/" + url.PathEscape(cfg.Collection),
	}
}

// Wire types.

type point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector,omitempty"`
	Payload map[string]any `json:"payload"`
}

type scoredPoint struct {
	ID      any          `json:"id"`
	Score   float64      `json:"score"`
	Payload chunkPayload `json:"payload"`
}

type chunkPayload struct {
	Filename  string `json:"filename"`
	TextChunk string `json:"text_chunk"`
	ChunkID   int    `json:"chunk_id"`
}

type filter struct {
	Must []condition `json:"must"`
}

type condition struct {
	Key   string `json:"key"`
	Match match  `json:"match"`
}

type match struct {
	Value string `json:"value"`
}

func byFilename(name string) *filter {
	return &filter{Must: []condition{{Key: FieldFilename, Match: match{Value: name}}}}
}

type collectionInfo struct {
	Result struct {
		PointsCount int64 `json:"points_count"`
		Config      struct {
			Params struct {
				Vectors struct {
					Size int `json:"size"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
}

// EnsureCollection creates the collection and its filename index on first
// use. An existing collection of a different vector size is an error.
func (s *Store) EnsureCollection(ctx context.Context, dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	var info collectionInfo
	err := s.client.Do(ctx, http.MethodGet, s.path, nil, &info)
	switch {
	case err == nil:
		if size := info.Result.Config.Params.Vectors.Size; size != 0 && size != dimension {
			return fmt.Errorf("%w: collection %s holds %d-dimensional vectors, embeddings have %d",
				domain.ErrInvalidConfiguration, s.collection, size, dimension)
		}
		s.ready = true
		return nil
	case !httpclient.IsStatus(err, http.StatusNotFound):
		return err
	}

	logger.Info("Creating Qdrant collection %s (%d dimensions)", s.collection, dimension)
	create := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	if err := s.client.Do(ctx, http.MethodPut, s.path, create, nil); err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}

	index := map[string]any{
		"field_name":   FieldFilename,
		"field_schema": "keyword",
	}
	if err := s.client.Do(ctx, http.MethodPut, s.path+"/index?wait=true", index, nil); err != nil {
		return fmt.Errorf("index %s on %s: %w", FieldFilename, s.collection, err)
	}

	s.ready = true
	return nil
}

// Upsert stores chunks with their embeddings.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]point, len(chunks))
	for i, c := range chunks {
		points[i] = point{
			ID:     c.ID,
			Vector: c.Embedding,
			Payload: map[string]any{
				FieldFilename:  c.DocumentName,
				FieldTextChunk: c.Text,
				FieldChunkID:   c.Position,
			},
		}
	}

	body := map[string]any{"points": points}
	err := s.client.Do(ctx, http.MethodPut, s.path+"/points?wait=true", body, nil)
	if httpclient.IsStatus(err, http.StatusNotFound) {
		// Deleted behind our back; the next EnsureCollection recreates it.
		s.mu.Lock()
		s.ready = false
		s.mu.Unlock()
		return fmt.Errorf("collection %s is missing: %w", s.collection, err)
	}
	return err
}

// Search returns the chunks of a document nearest to vector.
func (s *Store) Search(ctx context.Context, documentName string, vector []float32, limit int) ([]driven.VectorHit, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
		"filter":       byFilename(documentName),
	}

	var resp struct {
		Result []scoredPoint `json:"result"`
	}
	if err := s.client.Do(ctx, http.MethodPost, s.path+"/points/search", body, &resp); err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return []driven.VectorHit{}, nil
		}
		return nil, err
	}

	hits := make([]driven.VectorHit, 0, len(resp.Result))
	for _, p := range resp.Result {
		hits = append(hits, driven.VectorHit{
			Chunk:      p.chunk(),
			Similarity: clamp01(p.Score),
		})
	}
	return hits, nil
}

// Chunks pages through every point of a document and returns them in
// position order.
func (s *Store) Chunks(ctx context.Context, documentName string) ([]domain.Chunk, error) {
	var (
		chunks []domain.Chunk
		offset any
	)

	for {
		body := map[string]any{
			"filter":       byFilename(documentName),
			"limit":        scrollPageSize,
			"with_payload": true,
			"with_vector":  false,
		}
		if offset != nil {
			body["offset"] = offset
		}

		var resp struct {
			Result struct {
				Points         []scoredPoint `json:"points"`
				NextPageOffset any           `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.client.Do(ctx, http.MethodPost, s.path+"/points/scroll", body, &resp); err != nil {
			if httpclient.IsStatus(err, http.StatusNotFound) {
				return []domain.Chunk{}, nil
			}
			return nil, err
		}

		for _, p := range resp.Result.Points {
			chunks = append(chunks, p.chunk())
		}
		if resp.Result.NextPageOffset == nil || len(resp.Result.Points) == 0 {
			break
		}
		offset = resp.Result.NextPageOffset
	}

	sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].Position < chunks[j].Position })
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	return chunks, nil
}

// Exists reports whether any point belongs to the document.
func (s *Store) Exists(ctx context.Context, documentName string) (bool, error) {
	body := map[string]any{
		"filter": byFilename(documentName),
		"exact":  true,
	}

	var resp struct {
		Result struct {
			Count int64 `json:"count"`
		} `json:"result"`
	}
	if err := s.client.Do(ctx, http.MethodPost, s.path+"/points/count", body, &resp); err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return false, nil
		}
		return false, err
	}
	return resp.Result.Count > 0, nil
}

// DeleteDocument removes every point of a document.
func (s *Store) DeleteDocument(ctx context.Context, documentName string) error {
	body := map[string]any{"filter": byFilename(documentName)}
	err := s.client.Do(ctx, http.MethodPost, s.path+"/points/delete?wait=true", body, nil)
	if httpclient.IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

// Ping lists collections to check the server answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, http.MethodGet, "/collections", nil, nil); err != nil {
		return fmt.Errorf("qdrant: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func (p scoredPoint) chunk() domain.Chunk {
	return domain.Chunk{
		ID:           fmt.Sprint(p.ID),
		DocumentName: p.Payload.Filename,
		Text:         p.Payload.TextChunk,
		Position:     p.Payload.ChunkID,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

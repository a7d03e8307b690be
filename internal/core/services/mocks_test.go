package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
)

// mockVectorStore keeps chunks in memory. Search returns a document's
// chunks in position order with descending fake scores.
type mockVectorStore struct {
	mu         sync.Mutex
	chunks     map[string][]domain.Chunk
	dimension  int
	upserts    int
	lastLimit  int
	existsErr  error
	upsertErr  error
	failUpsert int // 1-based upsert call that fails with upsertErr; 0 fails every call
	pingErr    error
	deleteErr  error
	searchErr  error
	deleteHits []string
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{chunks: make(map[string][]domain.Chunk)}
}

func (m *mockVectorStore) EnsureCollection(_ context.Context, dimension int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimension = dimension
	return nil
}

func (m *mockVectorStore) Upsert(_ context.Context, chunks []domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil && (m.failUpsert == 0 || m.failUpsert == m.upserts) {
		return m.upsertErr
	}
	for _, c := range chunks {
		m.chunks[c.DocumentName] = append(m.chunks[c.DocumentName], c)
	}
	return nil
}

func (m *mockVectorStore) Search(_ context.Context, name string, _ []float32, limit int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	var hits []driven.VectorHit
	for i, c := range m.chunks[name] {
		if len(hits) == limit {
			break
		}
		c.Embedding = nil
		hits = append(hits, driven.VectorHit{Chunk: c, Similarity: 1 - float64(i)*0.1})
	}
	return hits, nil
}

func (m *mockVectorStore) Chunks(_ context.Context, name string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]domain.Chunk(nil), m.chunks[name]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockVectorStore) Exists(_ context.Context, name string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks[name]) > 0, nil
}

func (m *mockVectorStore) DeleteDocument(_ context.Context, name string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteHits = append(m.deleteHits, name)
	delete(m.chunks, name)
	return nil
}

func (m *mockVectorStore) Ping(_ context.Context) error { return m.pingErr }

func (m *mockVectorStore) Close() error { return nil }

// put seeds chunks for a document, assigning positions and IDs.
func (m *mockVectorStore) put(name string, texts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, text := range texts {
		m.chunks[name] = append(m.chunks[name], domain.Chunk{
			ID:           name + "-" + string(rune('a'+i)),
			DocumentName: name,
			Text:         text,
			Position:     i,
		})
	}
}

// mockEmbedder returns vectors derived from text length.
type mockEmbedder struct {
	mu      sync.Mutex
	batches [][]string
	err     error
	short   bool
	// failAfter lets that many batches succeed before err applies.
	failAfter int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return mockVector(text), nil
}

func mockVector(text string) []float32 {
	return []float32{float32(len(text)), 1, 0}
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	if m.err != nil && len(m.batches) >= m.failAfter {
		m.mu.Unlock()
		return nil, m.err
	}
	m.batches = append(m.batches, texts)
	m.mu.Unlock()

	n := len(texts)
	if m.short {
		n--
	}
	out := make([][]float32, 0, n)
	for _, text := range texts[:n] {
		out = append(out, mockVector(text))
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 3 }
func (m *mockEmbedder) ModelName() string            { return "mock" }
func (m *mockEmbedder) Ping(_ context.Context) error { return m.err }
func (m *mockEmbedder) Close() error                 { return nil }

// byteTokenizer treats every byte as one token.
type byteTokenizer struct{}

func (byteTokenizer) Name() string { return "bytes" }

func (byteTokenizer) Encode(text string) []int {
	tokens := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		tokens[i] = int(text[i])
	}
	return tokens
}

func (byteTokenizer) Decode(tokens []int) string {
	b := make([]byte, len(tokens))
	for i, t := range tokens {
		b[i] = byte(t)
	}
	return string(b)
}

// failingDocStore fails every call.
type failingDocStore struct{}

var errLedger = errors.New("ledger unavailable")

func (failingDocStore) Save(context.Context, domain.Document) error { return errLedger }
func (failingDocStore) Get(context.Context, string) (*domain.Document, error) {
	return nil, errLedger
}
func (failingDocStore) List(context.Context) ([]domain.Document, error) { return nil, errLedger }
func (failingDocStore) Delete(context.Context, string) error            { return errLedger }
func (failingDocStore) Close() error                                    { return nil }

var (
	_ driven.VectorStore      = (*mockVectorStore)(nil)
	_ driven.EmbeddingService = (*mockEmbedder)(nil)
	_ driven.Tokenizer        = byteTokenizer{}
	_ driven.DocumentStore    = failingDocStore{}
)

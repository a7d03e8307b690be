package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "nested", "ledger.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.DocumentStore().Save(ctx, domain.Document{
		Name: "a.txt", Format: domain.FormatText, CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	doc, err := store.DocumentStore().Get(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatText, doc.Format)
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 9, 30, 0, 123456789, time.UTC)

	want := domain.Document{
		Name:       "report.pdf",
		Format:     domain.FormatPDF,
		ChunkCount: 12,
		SizeBytes:  4096,
		CreatedAt:  created,
	}
	require.NoError(t, docs.Save(ctx, want))

	got, err := docs.Get(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestDocumentStore_SaveReplaces(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.Save(ctx, domain.Document{Name: "a.json", Format: domain.FormatJSON, ChunkCount: 1}))
	require.NoError(t, docs.Save(ctx, domain.Document{Name: "a.json", Format: domain.FormatJSON, ChunkCount: 7}))

	got, err := docs.Get(ctx, "a.json")
	require.NoError(t, err)
	assert.Equal(t, 7, got.ChunkCount)
}

func TestDocumentStore_SaveRequiresName(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	err := docs.Save(context.Background(), domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	_, err := docs.Get(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_List(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	ctx := context.Background()

	empty, err := docs.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, docs.Save(ctx, domain.Document{Name: "b.txt", CreatedAt: base}))
	require.NoError(t, docs.Save(ctx, domain.Document{Name: "a.txt", CreatedAt: base}))
	require.NoError(t, docs.Save(ctx, domain.Document{Name: "c.txt", CreatedAt: base.Add(time.Minute)}))

	list, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c.txt", list[0].Name)
	assert.Equal(t, "a.txt", list[1].Name)
	assert.Equal(t, "b.txt", list[2].Name)
}

func TestDocumentStore_Delete(t *testing.T) {
	docs := setupTestStore(t).DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.Save(ctx, domain.Document{Name: "a.txt"}))
	require.NoError(t, docs.Delete(ctx, "a.txt"))

	_, err := docs.Get(ctx, "a.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, docs.Delete(ctx, "a.txt"), domain.ErrNotFound)
}

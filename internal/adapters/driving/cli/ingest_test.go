package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

func TestIngestCmd_RequiresArgs(t *testing.T) {
	_, err := execute(t, "ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIngestCmd_IngestsFiles(t *testing.T) {
	ts, cleanup := setupTestServicesWithMocks()
	defer cleanup()

	dir := t.TempDir()
	a := filepath.Join(dir, "notes.txt")
	b := filepath.Join(dir, "sales.json")
	require.NoError(t, os.WriteFile(a, []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(`[{"x":1}]`), 0o600))

	out, err := execute(t, "ingest", a, b)

	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "sales.json"}, ts.ingest.calls)
	assert.Contains(t, out, "notes.txt uploaded and processed successfully")
	assert.Contains(t, out, "sales.json uploaded and processed successfully")
}

func TestIngestCmd_ReportsFailures(t *testing.T) {
	ts, cleanup := setupTestServicesWithMocks()
	defer cleanup()
	ts.ingest.err["dup.txt"] = domain.ErrAlreadyExists

	dir := t.TempDir()
	dup := filepath.Join(dir, "dup.txt")
	require.NoError(t, os.WriteFile(dup, []byte("x"), 0o600))

	out, err := execute(t, "ingest", dup, filepath.Join(dir, "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 files failed")
	assert.Contains(t, out, "dup.txt")
	assert.Contains(t, out, "missing.txt")
	assert.Equal(t, []string{"dup.txt"}, ts.ingest.calls)
}

func TestIngestCmd_NoService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = nil

	_, err := execute(t, "ingest", "whatever.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(documentCmd.Commands()))
	for _, cmd := range documentCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"list", "get", "delete"}, names)
}

func TestDocumentListCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "document", "list", "extra")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestDocumentListCmd_PrintsTable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "handbook.pdf")
	assert.Contains(t, out, "sales.json")
	assert.Contains(t, out, "2024-03-01 09:30:00")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestDocumentListCmd_Empty(t *testing.T) {
	ts, cleanup := setupTestServicesWithMocks()
	defer cleanup()
	ts.document.docs = nil

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

func TestDocumentListCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServicesWithMocks()
	defer cleanup()
	ts.document.err = errors.New("ledger locked")

	_, err := execute(t, "document", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list documents: ledger locked")
}

func TestDocumentGetCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "document", "get")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentGetCmd_ShowsDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "document", "get", "handbook.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "Document: handbook.pdf")
	assert.Contains(t, out, "Format:   pdf")
	assert.Contains(t, out, "Chunks:   12")
	assert.Contains(t, out, "Size:     20480 bytes")
}

func TestDocumentGetCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "document", "get", "nope.pdf")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentDeleteCmd_Deletes(t *testing.T) {
	ts, cleanup := setupTestServicesWithMocks()
	defer cleanup()

	out, err := execute(t, "document", "delete", "sales.json")

	require.NoError(t, err)
	assert.Equal(t, []string{"sales.json"}, ts.document.deleted)
	assert.Contains(t, out, "Document sales.json deleted.")
}

func TestDocumentDeleteCmd_NotFound(t *testing.T) {
	ts, cleanup := setupTestServicesWithMocks()
	defer cleanup()

	_, err := execute(t, "document", "delete", "nope.pdf")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, ts.document.deleted)
}

func TestDocumentCmds_NoService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	for _, args := range [][]string{
		{"document", "list"},
		{"document", "get", "a"},
		{"document", "delete", "a"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "document service not configured")
	}
}

package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docsearch", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{
		"serve", "watch", "ingest", "query", "aggregate",
		"document", "config", "mcp", "tui", "version",
	} {
		assert.Contains(t, names, want)
	}
}

func TestPreRun_SkipsWhenConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	assert.NoError(t, preRun(&cobra.Command{Use: "x"}, nil))
}

func TestPreRun_SkipAnnotation(t *testing.T) {
	prev := configured
	configured = false
	defer func() { configured = prev }()

	cmd := &cobra.Command{Use: "x", Annotations: map[string]string{annotationSkipConfigure: "true"}}
	assert.NoError(t, preRun(cmd, nil))
	assert.False(t, configured)
}

func TestPreRun_SettingsOnlyLoadsSettings(t *testing.T) {
	restore := saveGlobals()
	defer restore()
	configured = false
	settingsService = nil
	appSettings = nil
	queryService = nil

	prevDir := configDir
	configDir = t.TempDir()
	defer func() { configDir = prevDir }()

	cmd := &cobra.Command{Use: "x", Annotations: map[string]string{annotationSettingsOnly: "true"}}
	require.NoError(t, preRun(cmd, nil))
	assert.NotNil(t, settingsService)
	assert.NotNil(t, appSettings)
	assert.False(t, configured)
	assert.Nil(t, queryService)
}

func TestLoadSettings_AppliesEnvironment(t *testing.T) {
	restore := saveGlobals()
	defer restore()

	t.Setenv("DOCSEARCH_CHUNKER_CHUNK_SIZE", "128")
	t.Setenv("DOCSEARCH_LOG_LEVEL", "warn")

	require.NoError(t, LoadSettings(t.TempDir()))
	require.NotNil(t, appSettings)
	assert.Equal(t, 128, appSettings.Chunker.ChunkSize)
	assert.Equal(t, "warn", appSettings.Log.Level)
}

func TestLoadSettings_InvalidEnvironment(t *testing.T) {
	restore := saveGlobals()
	defer restore()

	t.Setenv("DOCSEARCH_CHUNKER_CHUNK_SIZE", "lots")

	err := LoadSettings(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestConfigure_RejectsInvalidSettings(t *testing.T) {
	restore := saveGlobals()
	defer restore()
	configured = false

	t.Setenv("DOCSEARCH_EMBEDDING_PROVIDER", "carrier-pigeon")

	err := Configure(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.False(t, configured)
}

func TestOpenLedger_Memory(t *testing.T) {
	defer Shutdown()

	docs, err := openLedger("memory", "")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, closers)
}

func TestOpenLedger_SQLite(t *testing.T) {
	defer Shutdown()
	dir := t.TempDir()

	docs, err := openLedger("sqlite", dir)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Len(t, closers, 1)
	assert.FileExists(t, filepath.Join(dir, "ledger.db"))

	Shutdown()
	assert.Empty(t, closers)
}

func TestExecute_Version(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, Execute(context.Background()))
	assert.Contains(t, buf.String(), "docsearch version")
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "docsearch version test-version-1.0.0")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "docsearch version dev")
}

// saveGlobals snapshots the package service state.
func saveGlobals() func() {
	_, cleanup := setupTestServicesWithMocks()
	return cleanup
}

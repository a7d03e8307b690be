package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change docsearch settings.

Settings are read from environment variables first, then the config file,
then built-in defaults. Every key can be overridden by an environment
variable named after it, for example chunker.chunk_size by
DOCSEARCH_CHUNKER_CHUNK_SIZE.`,
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Save a setting to the config file",
	Long: `Save a setting to the config file.

When the value is omitted for an API key it is read from the terminal
without echo.`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  CORS origins: %s\n", strings.Join(settings.Server.CORSOrigins, ", "))
	cmd.Printf("  Max upload: %d bytes\n", settings.Server.MaxUploadBytes)
	cmd.Printf("  Request timeout: %s\n", settings.Server.RequestTimeout)
	cmd.Println()

	cmd.Println("[Chunker]")
	cmd.Printf("  Chunk size: %d tokens\n", settings.Chunker.ChunkSize)
	cmd.Printf("  Overlap: %d tokens\n", settings.Chunker.Overlap)
	cmd.Printf("  Encoding: %s\n", settings.Chunker.Encoding)
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  URL: %s\n", settings.VectorStore.URL)
	cmd.Printf("  Collection: %s\n", settings.VectorStore.Collection)
	cmd.Printf("  API Key: %s\n", secret(settings.VectorStore.APIKey))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", secret(settings.Embedding.APIKey))
	}
	cmd.Printf("  Batch size: %d\n", settings.Embedding.BatchSize)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Driver: %s\n", settings.Storage.Driver)
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}
	cmd.Println()

	cmd.Println("[Watcher]")
	cmd.Printf("  Directory: %s\n", settings.Watcher.Directory)
	cmd.Printf("  Endpoint: %s\n", settings.Watcher.APIEndpoint)
	cmd.Printf("  Polling interval: %s\n", settings.Watcher.PollingInterval)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level)
	cmd.Printf("  Format: %s\n", settings.Log.Format)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docsearch config set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var raw string
	switch {
	case len(args) == 2:
		raw = args[1]
	case isSecretKey(key):
		cmd.Printf("Enter value for %s: ", key)
		raw = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	value, err := parseSettingValue(key, raw)
	if err != nil {
		return err
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	shown := raw
	if isSecretKey(key) {
		shown = maskAPIKey(raw)
	}
	cmd.Printf("Set %s = %s\n", key, shown)
	if _, overridden := os.LookupEnv(services.EnvName(key)); overridden {
		cmd.Printf("Note: %s is set and takes precedence.\n", services.EnvName(key))
	}
	return nil
}

// parseSettingValue converts a command-line value to the type stored for key.
func parseSettingValue(key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case "server.max_upload_bytes", "chunker.chunk_size", "chunker.overlap", "embedding.batch_size":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %q", key, raw)
		}
		return n, nil
	case "watcher.uploads_per_second":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %q", key, raw)
		}
		return f, nil
	case "server.request_timeout", "vector_store.timeout", "watcher.polling_interval":
		if _, err := domain.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("%s must be a duration such as 30s: %q", key, raw)
		}
		return raw, nil
	case "server.cors_origins":
		origins := []string{}
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
		return origins, nil
	default:
		return raw, nil
	}
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".api_key")
}

func secret(value string) string {
	if value == "" {
		return "(not set)"
	}
	return maskAPIKey(value)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

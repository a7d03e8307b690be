// Package cli provides the docsearch command-line interface built on cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=v1.2.3".
var version = "dev"

// Command annotations consulted by the root pre-run hook.
const (
	annotationSkipConfigure = "docsearch/skip-configure"
	annotationSettingsOnly  = "docsearch/settings-only"
)

var (
	configDir string
	verbose   bool
)

// Services used by the commands. Configure sets them; tests replace them.
var (
	ingestService      driving.IngestService
	queryService       driving.QueryService
	aggregationService driving.AggregationService
	documentService    driving.DocumentService
	healthService      driving.HealthService
	settingsService    driving.SettingsService
	appSettings        *domain.AppSettings

	// configured is true once services are in place.
	configured bool
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Ingest documents and query them semantically",
	Long: `docsearch splits PDF, DOCX, JSON and text documents into token-bounded
chunks, embeds them and stores the vectors in Qdrant. Documents can then be
queried by meaning, and numeric JSON fields can be aggregated.

Run 'docsearch serve' to start the HTTP API or 'docsearch watch' to upload
everything dropped into a folder.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "", "config directory (default ~/.docsearch)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func preRun(cmd *cobra.Command, _ []string) error {
	if configured || cmd.Annotations[annotationSkipConfigure] == "true" {
		return nil
	}
	if cmd.Annotations[annotationSettingsOnly] == "true" {
		if settingsService != nil {
			return nil
		}
		return LoadSettings(configDir)
	}
	if err := Configure(cmd.Context(), configDir); err != nil {
		return err
	}
	logger.Debug("configured %s", cmd.CommandPath())
	return nil
}

// Execute runs the root command and releases everything Configure opened.
func Execute(ctx context.Context) error {
	defer Shutdown()
	return rootCmd.ExecuteContext(ctx)
}

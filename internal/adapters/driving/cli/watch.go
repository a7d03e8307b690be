package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsearch/internal/connectors/filesystem"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Upload documents dropped into a folder",
	Long: `Watch a folder and upload every supported document that appears in it to
the ingestion endpoint. Files the server accepts are deleted from the folder.

The folder defaults to watcher.directory and the endpoint to
watcher.api_endpoint. The watcher only needs the endpoint to be reachable.`,
	Args: cobra.MaximumNArgs(1),
	Annotations: map[string]string{
		annotationSettingsOnly: "true",
	},
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("endpoint", "", "upload URL (overrides watcher.api_endpoint)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if appSettings == nil {
		return errors.New("settings not loaded")
	}

	cfg := filesystem.Config{
		Directory:        appSettings.Watcher.Directory,
		Endpoint:         appSettings.Watcher.APIEndpoint,
		PollInterval:     appSettings.Watcher.PollingInterval,
		UploadsPerSecond: appSettings.Watcher.UploadsPerSecond,
		Timeout:          appSettings.Server.RequestTimeout,
	}
	if len(args) == 1 {
		cfg.Directory = args[0]
	}
	if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}

	watcher, err := filesystem.NewWatcher(cfg)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	cmd.Printf("Watching %s, uploading to %s\n", watcher.Directory(), cfg.Endpoint)
	return watcher.Run(cmd.Context())
}

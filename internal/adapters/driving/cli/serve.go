package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsearch/internal/adapters/driving/rest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the document API.

Endpoints:
  POST   /upload             upload a document (multipart field "file")
  GET    /query              ?document_name=&query=&top_k=
  GET    /json-query         ?document_name=&field=&operation=max|min|sum|avg
  GET    /health             vector store connectivity
  GET    /documents          list ingested documents
  GET    /documents/{name}   show one document
  DELETE /documents/{name}   delete a document and its chunks`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if appSettings == nil {
		return errors.New("settings not loaded")
	}

	cfg := rest.Config{
		Addr:           appSettings.Server.Addr,
		CORSOrigins:    appSettings.Server.CORSOrigins,
		MaxUploadBytes: appSettings.Server.MaxUploadBytes,
		RequestTimeout: appSettings.Server.RequestTimeout,
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	server, err := rest.NewServer(cfg, &rest.Ports{
		Ingest:      ingestService,
		Query:       queryService,
		Aggregation: aggregationService,
		Document:    documentService,
		Health:      healthService,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return server.Run(cmd.Context())
}

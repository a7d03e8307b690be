// Package mcp provides an MCP (Model Context Protocol) server adapter for docsearch.
// It lets AI assistants query ingested documents and aggregate JSON fields.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

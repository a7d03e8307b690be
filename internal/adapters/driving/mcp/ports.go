package mcp

import (
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query provides semantic retrieval within a document.
	Query driving.QueryService

	// Aggregation computes numeric summaries over JSON documents.
	Aggregation driving.AggregationService

	// Document lists ingested documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Query == nil {
		return ErrMissingQueryService
	}
	// Aggregation and Document are optional; their tools report unavailability.
	return nil
}

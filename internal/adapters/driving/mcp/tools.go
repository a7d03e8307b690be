package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// QueryInput is the input schema for the query_document tool.
type QueryInput struct {
	Document string `json:"document" jsonschema:"name of the ingested document to search"`
	Query    string `json:"query" jsonschema:"natural-language query"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of chunks to return (1-20, default 3)"`
}

// QueryOutput is the output schema for the query_document tool.
type QueryOutput struct {
	Query   string               `json:"query"`
	Results []domain.QueryResult `json:"results"`
	Count   int                  `json:"count"`
}

// AggregateInput is the input schema for the aggregate_json tool.
type AggregateInput struct {
	Document  string `json:"document" jsonschema:"name of an ingested JSON document"`
	Field     string `json:"field" jsonschema:"top-level field of each record"`
	Operation string `json:"operation" jsonschema:"one of max, min, sum, avg"`
}

// AggregateOutput is the output schema for the aggregate_json tool.
type AggregateOutput struct {
	Document  string  `json:"document"`
	Field     string  `json:"field"`
	Operation string  `json:"operation"`
	Result    float64 `json:"result"`
}

// ListInput is the (empty) input schema for the list_documents tool.
type ListInput struct{}

// ListOutput is the output schema for the list_documents tool.
type ListOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput describes one ingested document.
type DocumentOutput struct {
	Name       string `json:"name"`
	Format     string `json:"format"`
	ChunkCount int    `json:"chunk_count"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}

func toDocumentOutput(d domain.Document) DocumentOutput {
	return DocumentOutput{
		Name:       d.Name,
		Format:     d.Format.String(),
		ChunkCount: d.ChunkCount,
		SizeBytes:  d.SizeBytes,
		CreatedAt:  d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_document",
		Description: "Find the passages of one ingested document most similar to a query",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "aggregate_json",
		Description: "Compute max, min, sum or avg of a numeric field across a JSON document's records",
	}, s.handleAggregate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List every ingested document",
	}, s.handleList)
}

// handleQuery handles the query_document tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	resp, err := s.ports.Query.Query(ctx, domain.QueryRequest{
		DocumentName: input.Document,
		Query:        input.Query,
		TopK:         input.TopK,
	})
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Query:   resp.Query,
		Results: resp.Results,
		Count:   len(resp.Results),
	}, nil
}

// handleAggregate handles the aggregate_json tool invocation.
func (s *Server) handleAggregate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AggregateInput,
) (*mcp.CallToolResult, AggregateOutput, error) {
	if s.ports.Aggregation == nil {
		return nil, AggregateOutput{}, fmt.Errorf("aggregation is not available")
	}

	result, err := s.ports.Aggregation.Aggregate(ctx, domain.AggregationRequest{
		DocumentName: input.Document,
		Field:        input.Field,
		Operation:    input.Operation,
	})
	if err != nil {
		return nil, AggregateOutput{}, err
	}

	return nil, AggregateOutput{
		Document:  result.Document,
		Field:     result.Field,
		Operation: result.Operation,
		Result:    result.Result,
	}, nil
}

// handleList handles the list_documents tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if s.ports.Document == nil {
		return nil, ListOutput{Documents: []DocumentOutput{}}, nil
	}

	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	output := ListOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(docs[i])
	}
	return nil, output, nil
}

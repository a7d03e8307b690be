// Package domain defines the core business entities for docsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Format: The closed set of ingestible file formats
//   - RawDocument: Opaque bytes plus a declared format
//   - Chunk: An embeddable unit of extracted text
//   - Document: The ledger record of an ingested file
//   - QueryResult, AggregationResult: Retrieval outputs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

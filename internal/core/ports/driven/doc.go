// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Turns raw document bytes into text, one per format
//   - Tokenizer: Splits text into reversible sub-word tokens
//   - EmbeddingService: Generates vector embeddings
//   - VectorStore: Managed vector index holding every chunk
//   - DocumentStore: Ledger of ingested documents
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven

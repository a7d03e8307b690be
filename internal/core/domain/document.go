package domain

import "time"

// Document is the ledger record of an ingested file.
// Documents are identified by their filename, which is unique.
type Document struct {
	// Name is the uploaded filename.
	Name string

	// Format is the format the file was extracted as.
	Format Format

	// ChunkCount is the number of chunks stored in the vector store.
	ChunkCount int

	// SizeBytes is the size of the uploaded file.
	SizeBytes int64

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk represents one embeddable unit of a document's text.
type Chunk struct {
	// ID is the vector store identifier, assigned at ingestion.
	ID string

	// DocumentName links to the parent Document.
	DocumentName string

	// Text is the chunk content.
	Text string

	// Position is the 0-based emission order within the document.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}

// IngestResult describes a completed ingestion.
type IngestResult struct {
	// Document is the ledger record that was created.
	Document Document

	// Message is the human-readable outcome.
	Message string
}

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction and chunking errors.

	// ErrUnsupportedFormat indicates a format tag outside pdf, docx, json and txt.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformedInput indicates the document bytes could not be parsed
	// in the declared format.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDecoding indicates text content is not valid UTF-8.
	ErrDecoding = errors.New("decoding error")

	// ErrInvalidConfiguration indicates chunking parameters that cannot
	// make progress (overlap >= chunk size, non-positive size).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Aggregation errors.

	// ErrInvalidOperation indicates an aggregation other than max, min, sum or avg.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotJSONDocument indicates an aggregation was requested on a non-JSON document.
	ErrNotJSONDocument = errors.New("not a JSON document")

	// ErrFieldNotFound indicates no chunk of the document carries the field.
	ErrFieldNotFound = errors.New("field not found")

	// ErrNonNumericField indicates the field holds at least one non-numeric value.
	ErrNonNumericField = errors.New("field contains non-numeric values")

	// Collaborator errors.

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not configured
	// or cannot be reached.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
)

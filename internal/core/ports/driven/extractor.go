package driven

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// Extractor converts one document format into a single text payload.
// Implementations are pure: no side effects beyond reading the input.
type Extractor interface {
	// Format returns the format this extractor handles.
	Format() domain.Format

	// Extract returns the document's text. For JSON documents the text is
	// the pretty-printed JSON value.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// ExtractorRegistry selects the extractor for a format.
type ExtractorRegistry interface {
	// Get returns the extractor for the format, or ErrUnsupportedFormat.
	Get(format domain.Format) (Extractor, error)

	// Extract dispatches raw to the extractor for raw.Format.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

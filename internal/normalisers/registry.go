package normalisers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/normalisers/docx"
	"github.com/custodia-labs/docsearch/internal/normalisers/jsondoc"
	"github.com/custodia-labs/docsearch/internal/normalisers/pdf"
	"github.com/custodia-labs/docsearch/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps each supported format to its extractor.
type Registry struct {
	extractors map[domain.Format]driven.Extractor
}

// NewRegistry creates a registry from the given extractors.
// A later extractor replaces an earlier one for the same format.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{extractors: make(map[domain.Format]driven.Extractor, len(extractors))}
	for _, e := range extractors {
		r.extractors[e.Format()] = e
	}
	return r
}

// NewDefaultRegistry creates a registry with the built-in extractor for
// every supported format.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		pdf.New(),
		docx.New(),
		jsondoc.New(),
		plaintext.New(),
	)
}

// Get returns the extractor for a format.
func (r *Registry) Get(format domain.Format) (driven.Extractor, error) {
	if !format.IsValid() {
		return nil, domain.UnsupportedFormatError(format.String())
	}
	e, ok := r.extractors[format]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor registered for %s", domain.ErrUnsupportedFormat, format)
	}
	return e, nil
}

// Extract dispatches the document to the extractor for its format.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}
	e, err := r.Get(raw.Format)
	if err != nil {
		return "", err
	}
	return e.Extract(ctx, raw)
}

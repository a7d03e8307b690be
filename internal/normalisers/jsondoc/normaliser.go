// Package jsondoc canonicalises JSON documents to indented text.
package jsondoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

// Indent is the indentation used for re-serialised JSON.
const Indent = "  "

// Normaliser handles JSON documents.
type Normaliser struct{}

// New creates a new JSON normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatJSON
}

// Extract validates the content and re-serialises it with two-space
// indentation. Object key order is preserved.
func (n *Normaliser) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	content := bytes.TrimPrefix(raw.Content, []byte("\xef\xbb\xbf"))
	if !json.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid JSON", domain.ErrMalformedInput, raw.Filename)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(content), "", Indent); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	return out.String(), nil
}

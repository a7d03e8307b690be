// Package pdf extracts the text layer of PDF documents page by page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

// Document is a parsed PDF exposing per-page plain text.
type Document interface {
	NumPage() int
	// PageText returns the text of page i (1-indexed).
	PageText(i int) (string, error)
}

// Opener parses raw PDF bytes.
type Opener func(content []byte) (Document, error)

// Normaliser handles PDF documents.
type Normaliser struct {
	open Opener
}

// New creates a PDF normaliser backed by ledongthuc/pdf.
func New() *Normaliser {
	return &Normaliser{open: openPDF}
}

// NewWithOpener creates a normaliser with a custom parser (for testing).
func NewWithOpener(open Opener) *Normaliser {
	return &Normaliser{open: open}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatPDF
}

// Extract concatenates the text of every page in order, each followed by a
// newline. Pages without a text layer contribute only the newline.
func (n *Normaliser) Extract(ctx context.Context, raw *domain.RawDocument) (text string, err error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	// The parser panics on some corrupt cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", domain.ErrMalformedInput, r)
		}
	}()

	doc, err := n.open(raw.Content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	var sb strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := doc.PageText(i)
		if err != nil {
			logger.Warn("pdf %s: page %d has no readable text: %v", raw.Filename, i, err)
			pageText = ""
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// reader adapts ledongthuc/pdf to Document.
type reader struct {
	r *pdf.Reader
}

func openPDF(content []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}
	return &reader{r: r}, nil
}

func (d *reader) NumPage() int {
	return d.r.NumPage()
}

func (d *reader) PageText(i int) (string, error) {
	p := d.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

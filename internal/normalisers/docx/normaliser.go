package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

const documentPart = "word/document.xml"

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the format this normaliser handles.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatDOCX
}

// Extract returns the text of every body-level paragraph, each followed by
// a newline. Empty paragraphs contribute a bare newline.
func (n *Normaliser) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: not a docx archive: %v", domain.ErrMalformedInput, err)
	}

	content, err := readPart(reader, documentPart)
	if err != nil {
		return "", err
	}

	text, err := parseDocumentXML(content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrMalformedInput, documentPart, err)
	}
	return text, nil
}

// readPart reads a named part from the archive.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", domain.ErrMalformedInput, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrMalformedInput, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedInput, name)
}

// parseDocumentXML walks the document tokens in order. Only paragraphs that
// are direct children of w:body are emitted; run content is taken from runs
// directly inside the paragraph or inside a w:hyperlink.
func parseDocumentXML(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		result    strings.Builder
		para      strings.Builder
		stack     []string
		inBodyPar bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			stack = append(stack, el.Name.Local)
			if isBodyParagraph(stack) {
				inBodyPar = true
				para.Reset()
				continue
			}
			if !inBodyPar {
				continue
			}
			switch runChild(stack) {
			case "tab":
				para.WriteString("\t")
			case "br", "cr":
				para.WriteString("\n")
			}

		case xml.CharData:
			if inBodyPar && runChild(stack) == "t" {
				para.Write(el)
			}

		case xml.EndElement:
			if inBodyPar && isBodyParagraph(stack) {
				result.WriteString(para.String())
				result.WriteString("\n")
				inBodyPar = false
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return result.String(), nil
}

// isBodyParagraph reports whether the innermost element is document/body/p.
func isBodyParagraph(stack []string) bool {
	return len(stack) == 3 && stack[1] == "body" && stack[2] == "p"
}

// runChild returns the local name of the innermost element when it is a
// direct child of a paragraph-level run, or "" otherwise.
func runChild(stack []string) string {
	if len(stack) < 5 {
		return ""
	}
	rel := stack[3:]
	switch {
	case len(rel) == 2 && rel[0] == "r":
		return rel[1]
	case len(rel) == 3 && rel[0] == "hyperlink" && rel[1] == "r":
		return rel[2]
	default:
		return ""
	}
}

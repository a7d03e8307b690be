package domain

import (
	"fmt"
	"strings"
)

// Format identifies how a document's bytes are interpreted.
// The set is closed: every other tag is rejected with ErrUnsupportedFormat.
type Format string

// Supported formats.
const (
	// FormatPDF is a paged PDF document.
	FormatPDF Format = "pdf"

	// FormatDOCX is an Office Open XML word processing document.
	FormatDOCX Format = "docx"

	// FormatJSON is a JSON value, chunked per top-level array element.
	FormatJSON Format = "json"

	// FormatText is UTF-8 plain text.
	FormatText Format = "txt"
)

// SupportedFormats returns every supported format in a stable order.
func SupportedFormats() []Format {
	return []Format{FormatPDF, FormatDOCX, FormatJSON, FormatText}
}

// IsValid returns true if the format is one of the supported formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatJSON, FormatText:
		return true
	default:
		return false
	}
}

// IsStructured returns true for formats chunked per record rather than per token window.
func (f Format) IsStructured() bool {
	return f == FormatJSON
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// ParseFormat converts a format tag such as "PDF" or " txt " to a Format.
func ParseFormat(tag string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(tag)))
	if !f.IsValid() {
		return "", UnsupportedFormatError(tag)
	}
	return f, nil
}

// FormatFromFilename derives the format from the text after the last dot.
// A name without a dot is treated as its own extension and rejected.
func FormatFromFilename(name string) (Format, error) {
	ext := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	return ParseFormat(ext)
}

// UnsupportedFormatError wraps ErrUnsupportedFormat with the offending tag.
func UnsupportedFormatError(tag string) error {
	return fmt.Errorf("%w: %s. Supported formats are PDF, DOCX, JSON, and TXT",
		ErrUnsupportedFormat, strings.ToLower(tag))
}

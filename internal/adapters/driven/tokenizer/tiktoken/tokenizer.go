// Package tiktoken provides a byte-pair tokenizer backed by tiktoken-go.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
)

// DefaultEncoding is the vocabulary used when none is configured.
const DefaultEncoding = "cl100k_base"

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer wraps a tiktoken encoding.
// It is safe for concurrent use.
type Tokenizer struct {
	name string
	tke  *tiktoken.Tiktoken
}

// New loads the named encoding, or DefaultEncoding when name is empty.
// The vocabulary is downloaded on first use unless it is cached locally
// (see TIKTOKEN_CACHE_DIR).
func New(name string) (*Tokenizer, error) {
	if name == "" {
		name = DefaultEncoding
	}
	tke, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", name, err)
	}
	return &Tokenizer{name: name, tke: tke}, nil
}

// Name returns the encoding name.
func (t *Tokenizer) Name() string {
	return t.name
}

// Encode converts text to token IDs. Special tokens are encoded as text.
func (t *Tokenizer) Encode(text string) []int {
	return t.tke.Encode(text, nil, nil)
}

// Decode converts token IDs back to text.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.tke.Decode(tokens)
}

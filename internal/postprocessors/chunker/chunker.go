// Package chunker splits extracted text into token-bounded, overlapping
// chunks, or into one chunk per record for structured JSON input.
package chunker

import (
	"context"
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = 300

// DefaultChunkOverlap is the default number of tokens shared by consecutive chunks.
const DefaultChunkOverlap = 50

// sentenceEnd matches a period, whitespace and an uppercase letter,
// scanning from the end of the input.
var sentenceEnd = regexp2.MustCompile(`\.\s+[A-Z]`, regexp2.RightToLeft)

// Chunker splits text into chunks.
type Chunker struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker. It fails with domain.ErrInvalidConfiguration
// unless 0 <= overlap < chunk size.
func New(tokenizer driven.Tokenizer, opts ...Option) (*Chunker, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", domain.ErrInvalidConfiguration)
	}

	c := &Chunker{
		tokenizer: tokenizer,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validate(c.chunkSize, c.overlap); err != nil {
		return nil, err
	}
	return c, nil
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text with the configured size and overlap.
func (c *Chunker) Chunk(ctx context.Context, text string, format domain.Format) ([]domain.Chunk, error) {
	return c.ChunkWith(ctx, text, format, c.chunkSize, c.overlap)
}

// ChunkWith splits text with a per-call size and overlap.
//
// JSON input yields one compact chunk per top-level array element. Input
// that is not valid JSON, or whose top level is not an array, is logged and
// yields no chunks. Every other format is split into token windows.
func (c *Chunker) ChunkWith(ctx context.Context, text string, format domain.Format, chunkSize, overlap int) ([]domain.Chunk, error) {
	if !format.IsValid() {
		return nil, domain.UnsupportedFormatError(format.String())
	}
	if err := validate(chunkSize, overlap); err != nil {
		return nil, err
	}

	if format.IsStructured() {
		return chunkJSON(text), nil
	}
	return c.chunkTokens(ctx, text, chunkSize, overlap)
}

// chunkTokens emits windows [start, start+size) advancing by size-overlap.
// A window that is not the last is cut back to the latest sentence end
// that still reaches the next window's start.
func (c *Chunker) chunkTokens(ctx context.Context, text string, size, overlap int) ([]domain.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	tokens := c.tokenizer.Encode(text)
	n := len(tokens)
	if n == 0 {
		return nil, nil
	}

	lens := make([]int, n)
	for i, tok := range tokens {
		lens[i] = len(c.tokenizer.Decode([]int{tok}))
	}

	step := size - overlap
	chunks := make([]domain.Chunk, 0, n/step+1)

	for start := 0; start < n; start += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+size, n)
		if end < n {
			window := c.tokenizer.Decode(tokens[start:end])
			end = snapToSentence(window, lens, start, end, start+step)
		}

		chunks = append(chunks, domain.Chunk{
			Text:     c.tokenizer.Decode(tokens[start:end]),
			Position: len(chunks),
		})
	}

	return chunks, nil
}

// snapToSentence returns the token index just past the last sentence end in
// window, or end when there is none or it falls before minEnd.
func snapToSentence(window string, lens []int, start, end, minEnd int) int {
	cut := lastSentenceEnd(window)
	if cut <= 0 {
		return end
	}

	acc := 0
	for i := start; i < end; i++ {
		acc += lens[i]
		if acc >= cut {
			if i+1 >= minEnd {
				return i + 1
			}
			return end
		}
	}
	return end
}

// lastSentenceEnd returns the byte offset just after the period of the last
// sentence boundary in s, or -1.
func lastSentenceEnd(s string) int {
	m, err := sentenceEnd.FindStringMatch(s)
	if err != nil || m == nil {
		return -1
	}
	return byteOffset(s, m.Index) + 1
}

// byteOffset converts a rune index to a byte offset. Invalid bytes count as
// one rune each, matching the matcher's decoding.
func byteOffset(s string, runeIndex int) int {
	n := 0
	for i := range s {
		if n == runeIndex {
			return i
		}
		n++
	}
	return len(s)
}

// chunkJSON emits each top-level array element as compact JSON.
func chunkJSON(text string) []domain.Chunk {
	if !gjson.Valid(text) {
		logger.Warn("chunker: invalid JSON, no chunks produced")
		return nil
	}

	root := gjson.Parse(text)
	if !root.IsArray() {
		logger.Warn("chunker: top-level JSON value is not an array, no chunks produced")
		return nil
	}

	var chunks []domain.Chunk
	root.ForEach(func(_, value gjson.Result) bool {
		chunks = append(chunks, domain.Chunk{
			Text:     string(pretty.Ugly([]byte(value.Raw))),
			Position: len(chunks),
		})
		return true
	})
	return chunks
}

func validate(chunkSize, overlap int) error {
	return domain.ChunkerSettings{ChunkSize: chunkSize, Overlap: overlap}.Validate()
}

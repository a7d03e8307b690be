package tiktoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTokenizer loads cl100k_base, skipping when the vocabulary is unavailable
// (offline environments without a cache).
func newTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New("")
	if err != nil {
		t.Skipf("cl100k_base unavailable: %v", err)
	}
	return tok
}

func TestNew_UnknownEncoding(t *testing.T) {
	_, err := New("no_such_encoding")
	assert.Error(t, err)
}

func TestTokenizer_Name(t *testing.T) {
	tok := newTokenizer(t)
	assert.Equal(t, DefaultEncoding, tok.Name())
}

func TestTokenizer_RoundTrip(t *testing.T) {
	tok := newTokenizer(t)

	for _, text := range []string{
		"Hello world.\n\n",
		"Grüße aus Köln. Nächster Satz!",
		"func main() { fmt.Println(\"hi\") }",
	} {
		tokens := tok.Encode(text)
		require.NotEmpty(t, tokens)
		assert.Equal(t, text, tok.Decode(tokens))
	}
}

func TestTokenizer_PerTokenBytesConcatenate(t *testing.T) {
	tok := newTokenizer(t)
	text := "Ünïcode text. Another sentence."

	total := 0
	for _, id := range tok.Encode(text) {
		total += len(tok.Decode([]int{id}))
	}
	assert.Equal(t, len(text), total)
}

func TestTokenizer_Empty(t *testing.T) {
	tok := newTokenizer(t)
	assert.Empty(t, tok.Encode(""))
}

package driven

// Tokenizer splits text into sub-word tokens using a fixed vocabulary.
// Decoding the concatenation of any token run must reproduce the exact
// bytes those tokens were encoded from.
type Tokenizer interface {
	// Name returns the vocabulary name (e.g. "cl100k_base").
	Name() string

	// Encode converts text to token IDs.
	Encode(text string) []int

	// Decode converts token IDs back to text.
	Decode(tokens []int) string
}

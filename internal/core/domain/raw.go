package domain

// RawDocument represents opaque bytes handed to the extractor.
// It exists only for the duration of one ingestion call.
type RawDocument struct {
	// Filename is the name the document was uploaded under.
	Filename string

	// Format is the declared format, validated before extraction.
	Format Format

	// Content is the raw bytes.
	Content []byte
}

// NewRawDocument builds a RawDocument, deriving the format from the filename.
func NewRawDocument(filename string, content []byte) (*RawDocument, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	return &RawDocument{
		Filename: filename,
		Format:   format,
		Content:  content,
	}, nil
}

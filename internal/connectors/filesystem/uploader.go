package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
)

// defaultUploadTimeout matches the server's request timeout.
const defaultUploadTimeout = 120 * time.Second

// uploader posts files to the ingestion endpoint as multipart form data.
type uploader struct {
	client   *resty.Client
	endpoint string
}

func newUploader(endpoint string, timeout time.Duration) *uploader {
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	return &uploader{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

// upload sends the file in the "file" field and returns the response status
// and body. A non-nil error means no response was received.
func (u *uploader) upload(ctx context.Context, path string) (int, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, "", fmt.Errorf("read file: %w", err)
	}

	resp, err := u.client.R().
		SetContext(ctx).
		SetMultipartField("file", filepath.Base(path), contentType(content), bytes.NewReader(content)).
		Post(u.endpoint)
	if err != nil {
		return 0, "", err
	}
	return resp.StatusCode(), resp.String(), nil
}

// contentType sniffs the MIME type from the file's leading bytes.
func contentType(content []byte) string {
	return mimetype.Detect(content).String()
}

// Package httpclient provides the JSON REST client shared by the remote
// adapters (embedding providers and the vector store).
//
// Requests are retried with exponential backoff on network errors,
// 408, 429 and 5xx responses. Every other status is returned as a
// *StatusError without retrying.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/custodia-labs/docsearch/internal/logger"
)

// Default retry configuration.
const (
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 200 * time.Millisecond
	DefaultBackoffMax  = 5 * time.Second
	DefaultTimeout     = 30 * time.Second
)

// Config holds configuration for a Client.
type Config struct {
	// Service names the remote in errors and logs (e.g. "qdrant").
	Service string

	// BaseURL is prepended to every request path.
	BaseURL string

	// Timeout bounds a single attempt (default: 30s).
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string

	// MaxRetries is the number of retries after the first attempt.
	// Negative disables retrying; zero uses DefaultMaxRetries.
	MaxRetries int

	// BackoffBase is the first retry delay, doubled on every attempt.
	BackoffBase time.Duration

	// BackoffMax caps the total time spent retrying.
	BackoffMax time.Duration
}

// StatusError is a non-2xx response.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Service, e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client is a JSON REST client with retries.
type Client struct {
	rest       *resty.Client
	service    string
	maxRetries uint64
	base       time.Duration
	max        time.Duration
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BackoffBase == 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = DefaultBackoffMax
	}

	var retries uint64
	switch {
	case cfg.MaxRetries == 0:
		retries = DefaultMaxRetries
	case cfg.MaxRetries > 0:
		retries = uint64(cfg.MaxRetries) // #nosec G115 -- checked positive
	}

	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	for k, v := range cfg.Headers {
		rest.SetHeader(k, v)
	}

	return &Client{
		rest:       rest,
		service:    cfg.Service,
		maxRetries: retries,
		base:       cfg.BackoffBase,
		max:        cfg.BackoffMax,
	}
}

// Do sends a request and decodes a 2xx JSON response into result.
// body and result may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	backoff := retry.WithMaxRetries(c.maxRetries,
		retry.WithMaxDuration(c.max, retry.NewExponential(c.base)))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.once(ctx, method, path, body, result)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return err
		}
		logger.Debug("%s %s %s failed (attempt %d): %v", c.service, method, path, attempt, err)
		return retry.RetryableError(err)
	})
}

func (c *Client) once(ctx context.Context, method, path string, body, result any) error {
	req := c.rest.R().SetContext(ctx).ForceContentType("application/json")
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", c.service, method, path, err)
	}
	if resp.IsError() {
		return &StatusError{Service: c.service, Code: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func retryable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return true
	}
	switch {
	case se.Code == http.StatusRequestTimeout, se.Code == http.StatusTooManyRequests:
		return true
	case se.Code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

// Package filesystem watches a drop folder and uploads new documents to
// the ingestion endpoint. Uploaded files are deleted from the folder.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/logger"
)

// Default configuration values.
const (
	DefaultPollInterval     = 5 * time.Second
	DefaultUploadsPerSecond = 2.0
	DefaultEndpoint         = "http://localhost:8000/upload"
)

// ErrWatcherClosed is returned when Run is called on a stopped watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Config holds configuration for a Watcher.
type Config struct {
	// Directory is the folder to watch. It is created if missing.
	Directory string

	// Endpoint is the upload URL (default: http://localhost:8000/upload).
	Endpoint string

	// PollInterval is how often the folder is rescanned (default: 5s).
	PollInterval time.Duration

	// UploadsPerSecond throttles uploads (default: 2).
	UploadsPerSecond float64

	// Timeout bounds a single upload (default: 120s).
	Timeout time.Duration
}

// Outcome is what happened to a file passed to Process.
type Outcome int

const (
	// Skipped means the file was not eligible or was already handled.
	Skipped Outcome = iota
	// Uploaded means the server accepted the file and it was deleted.
	Uploaded
	// Rejected means the server refused the file; it is retried only after
	// the file changes.
	Rejected
	// Failed means the upload did not complete; it will be retried.
	Failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Uploaded:
		return "uploaded"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Watcher uploads every supported file that appears in a directory.
// fsnotify events trigger immediate uploads; the periodic rescan catches
// anything the events missed and retries failed uploads.
type Watcher struct {
	dir      string
	interval time.Duration
	uploader *uploader
	limiter  *rate.Limiter

	mu sync.Mutex
	// handled holds paths uploaded or rejected. Scans skip them; a write
	// event clears a rejected path.
	handled map[string]Outcome
	closed  bool
}

// NewWatcher creates a watcher. Nothing is touched until Run.
func NewWatcher(cfg Config) (*Watcher, error) {
	if strings.TrimSpace(cfg.Directory) == "" {
		return nil, fmt.Errorf("%w: watch directory is required", domain.ErrInvalidConfiguration)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.UploadsPerSecond <= 0 {
		cfg.UploadsPerSecond = DefaultUploadsPerSecond
	}

	return &Watcher{
		dir:      cfg.Directory,
		interval: cfg.PollInterval,
		uploader: newUploader(cfg.Endpoint, cfg.Timeout),
		limiter:  rate.NewLimiter(rate.Limit(cfg.UploadsPerSecond), 1),
		handled:  make(map[string]Outcome),
	}, nil
}

// Directory returns the watched folder.
func (w *Watcher) Directory() string {
	return w.dir
}

// Run watches until ctx is cancelled. The directory is created if needed
// and scanned once before events are processed.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatcherClosed
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.Info("watching %s (rescan every %s)", w.dir, w.interval)
	w.Scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-ticker.C:
			w.Scan(ctx)
		}
	}
}

// Close stops future Run calls. A running Run ends with its context.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// eventPath returns the file a create or write event refers to.
func (w *Watcher) eventPath(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	return event.Name, true
}

// handleEvent processes the file behind a create or write event. A file
// the server rejected earlier has changed, so it gets another attempt.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) Outcome {
	path, ok := w.eventPath(event)
	if !ok {
		return Skipped
	}
	w.forgetRejected(path)
	return w.Process(ctx, path)
}

// Scan processes every eligible file currently in the directory and
// returns how many were uploaded.
func (w *Watcher) Scan(ctx context.Context) int {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("scan %s: %v", w.dir, err)
		return 0
	}

	uploaded := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if w.Process(ctx, filepath.Join(w.dir, entry.Name())) == Uploaded {
			uploaded++
		}
	}
	return uploaded
}

// Process uploads one file if it is eligible and not yet handled.
func (w *Watcher) Process(ctx context.Context, path string) Outcome {
	if !eligible(path) {
		return Skipped
	}

	w.mu.Lock()
	_, done := w.handled[path]
	w.mu.Unlock()
	if done {
		return Skipped
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		// Gone already, or a directory with a document-like name.
		return Skipped
	}
	if info.Size() == 0 {
		// Still being created; the write event that follows retries it.
		return Skipped
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return Failed
	}

	name := filepath.Base(path)
	logger.Info("new document detected: %s", name)

	status, body, err := w.uploader.upload(ctx, path)
	switch {
	case err != nil:
		logger.Error("upload %s: %v", name, err)
		return Failed

	case status == 200:
		w.remember(path, Uploaded)
		logger.Info("processed %s", name)
		if err := os.Remove(path); err != nil {
			logger.Error("delete %s after upload: %v", name, err)
		}
		return Uploaded

	case status >= 400 && status < 500:
		w.remember(path, Rejected)
		logger.Error("server rejected %s (status %d): %s", name, status, body)
		return Rejected

	default:
		logger.Error("upload %s failed (status %d): %s", name, status, body)
		return Failed
	}
}

func (w *Watcher) remember(path string, outcome Outcome) {
	w.mu.Lock()
	w.handled[path] = outcome
	w.mu.Unlock()
}

func (w *Watcher) forgetRejected(path string) {
	w.mu.Lock()
	if w.handled[path] == Rejected {
		delete(w.handled, path)
	}
	w.mu.Unlock()
}

// Handled returns the number of paths that will not be sent again.
func (w *Watcher) Handled() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.handled)
}

// eligible reports whether path names a visible file of a supported format.
func eligible(path string) bool {
	name := filepath.Base(path)
	if isHidden(name) {
		return false
	}
	_, err := domain.FormatFromFilename(strings.ToLower(name))
	return err == nil
}

// isHidden reports whether a file name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

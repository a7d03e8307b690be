// Package logger provides process-wide structured logging for docsearch.
// Messages are written through zerolog; when verbose mode is enabled via the
// --verbose flag, debug messages and section headers are emitted as well.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatAuto
	level             = zerolog.InfoLevel
	log               = build()
)

// Configure sets the minimum level (debug, info, warn, error) and the output
// format (auto, console, json). Auto selects console output on a terminal.
func Configure(levelName, formatName string) error {
	lvl := zerolog.InfoLevel
	if levelName != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(levelName))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
		lvl = parsed
	}

	f := strings.ToLower(formatName)
	switch f {
	case "":
		f = FormatAuto
	case FormatAuto, FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", formatName)
	}

	mu.Lock()
	defer mu.Unlock()
	level = lvl
	format = f
	log = build()
	return nil
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build()
}

// Get returns the underlying zerolog logger for adapters that log
// structured fields (e.g. HTTP request logging).
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug logs a message when verbose mode is enabled.
func Debug(format string, args ...any) {
	l := Get()
	l.Debug().Msgf(format, args...)
}

// Section logs a section header when verbose mode is enabled.
func Section(name string) {
	l := Get()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message.
func Info(format string, args ...any) {
	l := Get()
	l.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	l := Get()
	l.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	l := Get()
	l.Error().Msgf(format, args...)
}

// build creates the logger from the current settings (caller must hold lock).
func build() zerolog.Logger {
	lvl := level
	if verbose {
		lvl = zerolog.DebugLevel
	}

	w := output
	if format == FormatConsole || (format == FormatAuto && isTerminal(output)) {
		w = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(output),
		}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

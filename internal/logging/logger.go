// Package logging provides structured logging for solver runs.
// It wraps logrus to provide JSON-formatted file logs (text on stderr) with
// persistent fields for the run, thread count and phase.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger provides structured logging with persistent fields.
// It is safe for concurrent use.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
	mu    *sync.Mutex // Protects file operations, shared with child loggers
}

// NewLogger creates a Logger. When path is non-empty, JSON logs are
// appended to that file (its directory is created if needed); otherwise
// text logs go to stderr.
//
// The level parameter controls which messages are logged:
//   - DEBUG: All messages
//   - INFO: Info, Warn, and Error messages
//   - WARN: Warn and Error messages
//   - ERROR: Only Error messages
func NewLogger(path string, level string) (*Logger, error) {
	base := logrus.New()
	base.SetLevel(parseLevel(level))

	var file *os.File
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		var err error
		file, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		base.SetOutput(file)
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetOutput(os.Stderr)
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{entry: logrus.NewEntry(base), file: file, mu: &sync.Mutex{}}, nil
}

// NewWriterLogger creates a JSON Logger on an arbitrary writer.
func NewWriterLogger(w io.Writer, level string) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(parseLevel(level))
	base.SetFormatter(&logrus.JSONFormatter{})

	return &Logger{entry: logrus.NewEntry(base), mu: &sync.Mutex{}}
}

// parseLevel converts a string log level to logrus.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// WithRun returns a child Logger tagging entries with the run identifier.
func (l *Logger) WithRun(runID string) *Logger {
	return l.With("run_id", runID)
}

// WithThreads returns a child Logger tagging entries with the worker count.
func (l *Logger) WithThreads(threads int) *Logger {
	return l.With("threads", threads)
}

// WithPhase returns a child Logger with the phase name added to all entries.
// Phases include "load", "solve", "write" and "bench".
func (l *Logger) WithPhase(phase string) *Logger {
	return l.With("phase", phase)
}

// With returns a child Logger with arbitrary key-value fields.
// Keys and values are provided as alternating arguments; non-string keys
// are skipped.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	return &Logger{
		entry: l.entry.WithFields(toFields(args)),
		file:  l.file,
		mu:    l.mu,
	}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.entry.WithFields(toFields(args)).Debug(msg)
}

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.entry.WithFields(toFields(args)).Info(msg)
}

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.entry.WithFields(toFields(args)).Warn(msg)
}

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.entry.WithFields(toFields(args)).Error(msg)
}

// toFields converts alternating key/value arguments into logrus fields.
func toFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}

	return fields
}

// Close flushes and closes the log file.
// If the logger writes to stderr or a caller-supplied writer, Close is a no-op.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.file = nil
	}
	return nil
}

// NopLogger returns a Logger that discards all log output.
// Useful for testing or when logging is disabled.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError)
}

// ErrUnknownLevel is returned by ParseLevel for an unrecognized level name.
var ErrUnknownLevel = errors.New("logging: unknown level")

// ParseLevel returns the canonical level constant for a case-insensitive
// name, or ErrUnknownLevel. NewLogger is lenient and falls back to INFO.
func ParseLevel(level string) (string, error) {
	for _, l := range ValidLevels() {
		if strings.EqualFold(l, level) {
			return l, nil
		}
	}

	return "", fmt.Errorf("%q, want one of %v: %w", level, ValidLevels(), ErrUnknownLevel)
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

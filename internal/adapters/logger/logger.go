// Package logger implements the logging adapter for mason. Besides plain
// messages it knows how to render the checker's violations: a CheckError
// is printed with its source location the way a compiler diagnostic would
// be, not as a wrapped-error chain.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method provided by zerr.Error; if
// zerr's API changes, errors gracefully fall back to standard handling.
type messager interface {
	Message() string
}

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() *Logger {
	handler := NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{
		logger: slog.New(handler),
		output: os.Stderr,
	}
}

// SetOutput updates the logger's output destination, preserving the
// current JSON mode. A nil writer falls back to stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.makeHandler(w))
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable

	w := l.output
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(l.makeHandler(w))
}

func (l *Logger) makeHandler(w io.Writer) slog.Handler {
	if l.jsonMode {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return NewPrettyHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. Check violations get diagnostic-style rendering
// with their source location; everything else has its zerr chain unrolled
// into a "Caused by" list in pretty mode, or is logged as one "error" string
// field in JSON mode.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	var violation *domain.CheckError
	if errors.As(err, &violation) {
		l.logViolation(violation)
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(formatChain(err))
}

// logViolation renders one include-check violation. In JSON mode the
// location and kind become structured fields so CI tooling can consume
// them; in pretty mode the output reads like a compiler diagnostic.
func (l *Logger) logViolation(v *domain.CheckError) {
	if l.jsonMode {
		attrs := []any{
			"kind", v.Kind.String(),
			"title", v.Title,
			"body", v.Body,
		}
		if v.Where.File != nil {
			attrs = append(attrs,
				"file", v.Where.File.Name,
				"line", v.Where.Begin.Line,
				"column", v.Where.Begin.Column,
			)
		}
		l.logger.Error("include check violation", attrs...)
		return
	}

	var b strings.Builder
	if v.Where.File != nil {
		fmt.Fprintf(&b, "%s:%d:%d: ", v.Where.File.Name, v.Where.Begin.Line, v.Where.Begin.Column)
	}
	b.WriteString(v.Title)
	for _, line := range strings.Split(v.Body, "\n") {
		b.WriteString("\n  ")
		b.WriteString(line)
	}
	l.logger.Error(b.String())
}

// formatChain traverses an error chain and lays the messages out
// hierarchically, with the root failure first and its causes indented
// below it.
func formatChain(err error) string {
	// Collect messages by walking the chain; zerr errors contribute their
	// own message only, a foreign error ends the walk with its full text.
	var messages []string
	current := err

	for current != nil {
		if m, ok := current.(messager); ok {
			messages = append(messages, m.Message())
			current = errors.Unwrap(current)
		} else {
			messages = append(messages, current.Error())
			break
		}
	}

	var formattedLines []string
	for i, msg := range messages {
		lines := strings.Split(msg, "\n")

		if i == 0 {
			formattedLines = append(formattedLines, "Error: "+lines[0])
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "       "+line)
			}
			continue
		}
		if i == 1 {
			formattedLines = append(formattedLines, "", "  Caused by:")
		}
		formattedLines = append(formattedLines, "    → "+lines[0])
		for _, line := range lines[1:] {
			formattedLines = append(formattedLines, "      "+line)
		}
	}

	return strings.Join(formattedLines, "\n")
}

// Package logger provides the structured logger shared by every component.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging.
type Logger struct {
	*slog.Logger
}

// New creates a logger for the given environment: human readable text in
// development, JSON everywhere else.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithUserID returns a logger tagged with the conversation owner.
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{Logger: l.With(slog.String("user_id", userID))}
}

// WithQuote returns a logger tagged with a quote number.
func (l *Logger) WithQuote(number string) *Logger {
	return &Logger{Logger: l.With(slog.String("quote_number", number))}
}

// CatalogError logs a failed catalog read or write.
func (l *Logger) CatalogError(operation string, err error) {
	l.Error("catalog_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

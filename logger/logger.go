// Package logger builds the structured slog logger shared by the session
// store, storage factory and command line front end.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Format represents log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseLevel parses level name, unknown names fall back to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New creates a logger writing to w
func New(w io.Writer, level string, format Format) *slog.Logger {
	options := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if format == FormatText {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// Discard returns logger dropping all records
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Error creates error attribute, nil error yields empty attribute
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Command creates session command attribute
func Command(name string) slog.Attr {
	return slog.String("command", name)
}

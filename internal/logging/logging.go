// Package logging sets up the application's [slog.Logger].
package logging

import (
	"io"
	"log/slog"

	"github.com/saylorsolutions/sectomie/internal/config"
	"golang.org/x/term"
)

// New creates a logger writing to w at the given level.
// The format is one of the config format names, and [config.FormatAuto] chooses text for a terminal and JSON otherwise.
// Repeated attribute keys added with [slog.Logger.With] keep only the latest value.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch resolveFormat(w, format) {
	case config.FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewDedupeHandler(handler))
}

// FromConfig creates a logger from the level and format in conf.
func FromConfig(w io.Writer, conf config.Config) *slog.Logger {
	return New(w, conf.LogLevel, conf.LogFormat)
}

// Discard returns a logger that writes nothing.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fileDescriptor interface {
	Fd() uintptr
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fileDescriptor)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func resolveFormat(w io.Writer, format string) string {
	if format != config.FormatAuto {
		return format
	}
	if IsTerminal(w) {
		return config.FormatText
	}
	return config.FormatJSON
}

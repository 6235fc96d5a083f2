package service

import (
	"io"
	"log/slog"
)

// NewLogger returns a text slog.Logger writing records at or above level to w.
// A nil writer yields a logger that discards everything.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		return discardLogger()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return discardLogger()
	}
	return l
}

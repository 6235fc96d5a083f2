package cli

import (
	"context"
	"log/slog"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// Logger returns the application logger, never nil.
func (s *SharedState) Logger() *slog.Logger {
	if s.App.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.App.Logger
}

// reportErr sends err to the error console unless the store already logged it.
func (s *SharedState) reportErr(err error) {
	if err == nil || Logged(err) {
		return
	}
	s.Logger().Error(err.Error())
}

// ctx is the context for store calls made from the TUI.
func (s *SharedState) ctx() context.Context {
	return context.Background()
}

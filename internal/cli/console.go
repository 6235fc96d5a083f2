package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// consoleLimit caps how many lines each console keeps.
const consoleLimit = 200

// consoleBuffer is the state shared by a ConsoleHandler and its derivatives.
type consoleBuffer struct {
	mu       sync.Mutex
	capture  bool
	messages []string
	errors   []string
}

// ConsoleHandler is a slog.Handler that feeds the TUI message and error
// consoles while the TUI is running and otherwise forwards to a fallback
// handler (stderr for the plain CLI). Records at Warn and above go to the
// error console; everything else to the message console.
type ConsoleHandler struct {
	buf      *consoleBuffer
	fallback slog.Handler
	level    slog.Leveler
	prefix   string // rendered attrs from WithAttrs
	group    string
}

// NewConsoleHandler creates a handler capturing records at or above level.
// fallback receives records while capture is off; nil drops them.
func NewConsoleHandler(level slog.Leveler, fallback slog.Handler) *ConsoleHandler {
	return &ConsoleHandler{
		buf:      &consoleBuffer{},
		fallback: fallback,
		level:    level,
	}
}

// Capture switches records between the consoles (on) and the fallback (off).
func (h *ConsoleHandler) Capture(on bool) {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.capture = on
}

func (h *ConsoleHandler) capturing() bool {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return h.buf.capture
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.capturing() {
		return level >= h.level.Level()
	}
	return h.fallback != nil && h.fallback.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.capturing() {
		if h.fallback == nil {
			return nil
		}
		return h.fallback.Handle(ctx, r)
	}

	line := h.format(r)

	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	if r.Level >= slog.LevelWarn {
		h.buf.errors = appendCapped(h.buf.errors, line)
	} else {
		h.buf.messages = appendCapped(h.buf.messages, line)
	}
	return nil
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		writeAttr(&b, h.group, a)
	}
	clone.prefix = b.String()
	if h.fallback != nil {
		clone.fallback = h.fallback.WithAttrs(attrs)
	}
	return &clone
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "."
	}
	clone.group += name
	if h.fallback != nil {
		clone.fallback = h.fallback.WithGroup(name)
	}
	return &clone
}

// format renders "msg key=value ..." without time or level.
func (h *ConsoleHandler) format(r slog.Record) string {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	return b.String()
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := a.Key
		if group != "" {
			sub = group + "." + a.Key
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, sub, ga)
		}
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}

func appendCapped(lines []string, line string) []string {
	lines = append(lines, line)
	if len(lines) > consoleLimit {
		lines = lines[len(lines)-consoleLimit:]
	}
	return lines
}

// Messages returns a copy of the message console.
func (h *ConsoleHandler) Messages() []string {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return append([]string(nil), h.buf.messages...)
}

// Errors returns a copy of the error console.
func (h *ConsoleHandler) Errors() []string {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return append([]string(nil), h.buf.errors...)
}

// Clear empties both consoles.
func (h *ConsoleHandler) Clear() {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.messages = nil
	h.buf.errors = nil
}

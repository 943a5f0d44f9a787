package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, r slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, level slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

const (
	termMsgJust       = 40
	termTimeFormat    = "01-02|15:04:05.000"
	colorReset        = "\x1b[0m"
	colorRed          = "\x1b[31m"
	colorYellow       = "\x1b[33m"
	colorGreen        = "\x1b[32m"
	colorCyan         = "\x1b[36m"
	colorMagentaFaint = "\x1b[35;2m"
)

// TerminalHandler renders records in a compact aligned form:
//
//	LEVEL [month-day|time] message  key=value key=value
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Level
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler returns a handler which prints records at or above
// slog.LevelInfo.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	return NewTerminalHandlerWithLevel(wr, slog.LevelInfo, useColor)
}

// NewTerminalHandlerWithLevel prints records at or above the given verbosity.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Level, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder
	lvl := LevelAlignedString(r.Level)
	if h.useColor {
		b.WriteString(levelColor(r.Level))
		b.WriteString(lvl)
		b.WriteString(colorReset)
	} else {
		b.WriteString(lvl)
	}
	b.WriteString(" [")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")
	b.WriteString(r.Message)

	// pad the message so the key=value columns line up
	if pad := termMsgJust - len(r.Message); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	for _, attr := range h.attrs {
		writeAttr(&b, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, attr)
		return true
	})
	b.WriteByte('\n')

	_, err := io.WriteString(h.wr, b.String())
	return err
}

func writeAttr(b *strings.Builder, attr slog.Attr) {
	b.WriteByte(' ')
	b.WriteString(attr.Key)
	b.WriteByte('=')
	b.WriteString(fmt.Sprintf("%v", attr.Value.Any()))
}

func levelColor(l slog.Level) string {
	switch {
	case l >= LevelCrit:
		return colorMagentaFaint
	case l >= slog.LevelError:
		return colorRed
	case l >= slog.LevelWarn:
		return colorYellow
	case l >= slog.LevelInfo:
		return colorGreen
	default:
		return colorCyan
	}
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &TerminalHandler{
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
	return nh
}

func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	return h
}

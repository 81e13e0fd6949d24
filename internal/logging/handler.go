// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package logging provides structured logging into the arcdps log sinks.
package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/holomush/arcdps-go/pkg/arcdps/markup"
)

// Sinks are the host's two log outputs.
type Sinks interface {
	// Log appends a line to the host's log file.
	Log(msg string) error
	// LogWindow appends a line to the host's in-game log window.
	LogWindow(msg string) error
}

// Options configures a host handler.
type Options struct {
	// Level is the minimum level written to the log file. Defaults to Debug.
	Level slog.Leveler
	// WindowLevel is the minimum level also shown in the log window.
	// Defaults to Warn.
	WindowLevel slog.Leveler
}

// levelColors are the log window colors per level.
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "grey",
	slog.LevelInfo:  "white",
	slog.LevelWarn:  "yellow",
	slog.LevelError: "red",
}

// lineBuffer is shared by a handler and all handlers derived from it.
type lineBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// hostHandler formats records as text lines and writes them to the sinks.
type hostHandler struct {
	sinks   Sinks
	opts    Options
	lines   *lineBuffer
	handler slog.Handler
	addon   string
}

// NewHostHandler creates a handler writing to sinks. Every record carries
// the addon name and version.
func NewHostHandler(sinks Sinks, addon, version string, opts Options) slog.Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelDebug
	}
	if opts.WindowLevel == nil {
		opts.WindowLevel = slog.LevelWarn
	}
	lines := &lineBuffer{}
	text := slog.NewTextHandler(&lines.buf, &slog.HandlerOptions{
		Level: opts.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// The host stamps its own time.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return &hostHandler{
		sinks: sinks,
		opts:  opts,
		lines: lines,
		handler: text.WithAttrs([]slog.Attr{
			slog.String("addon", addon),
			slog.String("version", version),
		}),
		addon: addon,
	}
}

// Handle formats r and writes it to the log file, and to the log window when
// r is at or above the window level.
func (h *hostHandler) Handle(ctx context.Context, r slog.Record) error {
	h.lines.mu.Lock()
	h.lines.buf.Reset()
	err := h.handler.Handle(ctx, r)
	line := strings.TrimRight(h.lines.buf.String(), "\n")
	h.lines.mu.Unlock()
	if err != nil {
		//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
		return err
	}

	if err := h.sinks.Log(line); err != nil {
		//nolint:wrapcheck // sink errors already carry oops context
		return err
	}
	if r.Level < h.opts.WindowLevel.Level() {
		return nil
	}
	window := markup.Color(levelColor(r.Level), h.addon+": ").AppendText(r.Message)
	//nolint:wrapcheck // sink errors already carry oops context
	return h.sinks.LogWindow(window.Render())
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return levelColors[slog.LevelError]
	case l >= slog.LevelWarn:
		return levelColors[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return levelColors[slog.LevelInfo]
	default:
		return levelColors[slog.LevelDebug]
	}
}

// Enabled returns true if the level is enabled.
func (h *hostHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *hostHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithAttrs(attrs)
	return &clone
}

// WithGroup returns a new handler with the given group.
func (h *hostHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithGroup(name)
	return &clone
}

// Setup creates a configured slog.Logger.
// When sinks is nil the logger writes to w instead (os.Stderr if w is nil),
// using format "json" or "text" (defaults to "json" if empty).
func Setup(addon, version, format string, sinks Sinks, w io.Writer) *slog.Logger {
	if sinks != nil {
		return slog.New(NewHostHandler(sinks, addon, version, Options{}))
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var baseHandler slog.Handler
	if format == "text" {
		baseHandler = slog.NewTextHandler(w, opts)
	} else {
		baseHandler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(baseHandler.WithAttrs([]slog.Attr{
		slog.String("addon", addon),
		slog.String("version", version),
	}))
}

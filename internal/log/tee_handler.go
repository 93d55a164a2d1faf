package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// TeeHandler fans a log record out to two slog handlers, typically a
// console handler and a file handler with different levels. A record is
// delivered to each handler that reports itself enabled for the record's
// level.
//
// Design decision: a handler wrapper keeps the rest of the code on plain
// slog APIs and lets the console and file sinks keep independent levels,
// mirroring the session log's "INFO on screen, DEBUG in file" split.
type TeeHandler struct {
	console slog.Handler
	file    slog.Handler
}

// NewTeeHandler creates a TeeHandler over the two given handlers.
func NewTeeHandler(console, file slog.Handler) *TeeHandler {
	return &TeeHandler{console: console, file: file}
}

// Enabled reports whether either underlying handler accepts the level.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

// Handle delivers the record to every enabled underlying handler.
func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, hh := range []slog.Handler{h.console, h.file} {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs returns a new TeeHandler with the attributes added to both
// underlying handlers.
func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TeeHandler{
		console: h.console.WithAttrs(attrs),
		file:    h.file.WithAttrs(attrs),
	}
}

// WithGroup returns a new TeeHandler with the group applied to both
// underlying handlers.
func (h *TeeHandler) WithGroup(name string) slog.Handler {
	return &TeeHandler{
		console: h.console.WithGroup(name),
		file:    h.file.WithGroup(name),
	}
}

// replaceTime renders timestamps as "2006-01-02 15:04:05" to keep the log
// file readable next to the appended summary block.
func replaceTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Format("2006-01-02 15:04:05"))
	}
	return a
}

// New creates the session logger. Console output goes to w at Info level
// (Debug when verbose); file output goes to the append-only log file at
// Debug level. The returned closer owns the log file handle.
func New(w io.Writer, logFile string, verbose bool) (*slog.Logger, io.Closer, error) {
	consoleLevel := slog.LevelInfo
	if verbose {
		consoleLevel = slog.LevelDebug
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	console := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       consoleLevel,
		ReplaceAttr: replaceTime,
	})
	file := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: replaceTime,
	})

	return slog.New(NewTeeHandler(console, file)), f, nil
}

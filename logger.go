// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package kozy

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wgpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for kozy and its sub-packages, and
// forwards it to wgpu. By default nothing is logged. Pass nil to restore
// silence.
//
// Log levels used by kozy:
//   - [slog.LevelDebug]: per-event loop tracing
//   - [slog.LevelInfo]: lifecycle (adapter selected, surface ready, FPS)
//   - [slog.LevelWarn]: recovered or skipped frames
//   - [slog.LevelError]: fatal setup errors
//
// Example:
//
//	kozy.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	wgpu.SetLogger(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"log/slog"
)

// Surface links one window to the GPU's presentable image queue.
//
// A Surface is either uninitialized (no platform surface, no config) or
// ready (both present). There is no state in between: Init installs the
// target and its config together, and nothing removes one without the
// other.
//
// Surface is not safe for concurrent use; it belongs to the event loop.
type Surface struct {
	// cur is nil until Init succeeds.
	cur *presentation
	log *slog.Logger
}

// presentation is the ready state of a Surface.
type presentation struct {
	target Target
	window Window
	config Config
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an uninitialized Surface.
func New(opts ...Option) *Surface {
	s := &Surface{log: slog.New(nopHandler{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready reports whether Init has succeeded.
func (s *Surface) Ready() bool { return s.cur != nil }

// Config returns a copy of the current configuration.
// ok is false before Init.
func (s *Surface) Config() (cfg Config, ok bool) {
	if s.cur == nil {
		return Config{}, false
	}
	return s.cur.config.Clone(), true
}

// Window returns the window the surface is bound to, or nil before Init.
func (s *Surface) Window() Window {
	if s.cur == nil {
		return nil
	}
	return s.cur.window
}

// Init creates the platform surface for w and configures it.
//
// The window size is clamped to at least 1x1. cs decides the view format
// added to the default configuration. Calling Init again for the same
// window rebuilds the target (a resumed mobile app gets a fresh native
// window surface); a different window is rejected with a *SetupError
// wrapping ErrWindowMismatch.
//
// Failures are *SetupError values and are not retryable.
func (s *Surface) Init(p Platform, w Window, cs ColorSpace) error {
	if s.cur != nil {
		if s.cur.window != w {
			return &SetupError{Op: "init", Err: ErrWindowMismatch}
		}
		s.cur.target.Release()
		s.cur = nil
	}

	pw, ph := w.Size()
	width, height := clampDim(pw), clampDim(ph)
	s.log.Info("surface: init", "width", pw, "height", ph, "colorSpace", cs)

	target, err := p.CreateTarget(w)
	if err != nil {
		return &SetupError{Op: "create surface", Err: err}
	}

	cfg, ok := p.DefaultConfig(target, width, height)
	if !ok {
		target.Release()
		return &SetupError{Op: "default config", Err: ErrNoDefaultConfig}
	}
	cfg.Width, cfg.Height = width, height
	applyColorSpace(&cfg, cs)

	if err := target.Configure(cfg); err != nil {
		target.Release()
		return &SetupError{Op: "configure", Err: err}
	}

	s.cur = &presentation{target: target, window: w, config: cfg}
	s.log.Debug("surface: configured", "config", cfg.String())
	return nil
}

// Resize reconfigures the surface for a new window size. Each dimension is
// clamped to at least 1; a zero-sized surface is never requested.
//
// Resize before Init returns ErrNotInitialized and changes nothing.
func (s *Surface) Resize(width, height int) error {
	if s.cur == nil {
		return ErrNotInitialized
	}
	s.log.Info("surface: resize", "width", width, "height", height)

	// The new size is kept even if Configure fails: the next recovery
	// reconfigure must target the window as it is now.
	s.cur.config.Width, s.cur.config.Height = clampDim(width), clampDim(height)
	return s.cur.target.Configure(s.cur.config)
}

// Acquire returns the next presentable image.
//
// A timeout is retried once as is. An outdated or lost surface, or an
// out-of-memory failure, reconfigures the surface with the last known
// configuration and retries once. If the retry fails too, the failure is
// returned as *AcquireError wrapping the last cause; the caller decides
// whether it is fatal.
func (s *Surface) Acquire() (Frame, error) {
	if s.cur == nil {
		return nil, ErrNotInitialized
	}
	cur := s.cur
	return RecoverBy(cur.target.Acquire,
		Strategy{
			Name:  "retry",
			Match: MatchAny(ErrTimeout),
		},
		Strategy{
			Name:  "reconfigure",
			Match: MatchAny(ErrOutdated, ErrLost, ErrOutOfMemory),
			Prepare: func() error {
				s.log.Warn("surface: reconfiguring before retry", "config", cur.config.String())
				return cur.target.Configure(cur.config)
			},
		},
	)
}

// Release destroys the platform surface and returns to the uninitialized
// state.
func (s *Surface) Release() {
	if s.cur == nil {
		return
	}
	s.cur.target.Release()
	s.cur = nil
}

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

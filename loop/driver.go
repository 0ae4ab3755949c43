// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/kozy/pacer"
	"github.com/gogpu/kozy/surface"
)

// DefaultTargetFPS is the frame rate cap used when Options.TargetFPS is zero.
const DefaultTargetFPS = 60

// Window is the window the driver draws into.
type Window interface {
	surface.Window

	// RequestRedraw asks the host to deliver a RedrawRequest.
	RequestRedraw()
}

// Renderer draws one frame into an acquired image. The driver presents
// the frame after Render returns nil and discards it otherwise.
type Renderer interface {
	Render(frame surface.Frame, cfg surface.Config) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(frame surface.Frame, cfg surface.Config) error

// Render calls f(frame, cfg).
func (f RendererFunc) Render(frame surface.Frame, cfg surface.Config) error { return f(frame, cfg) }

// Options configures a Driver.
type Options struct {
	// Surface is the presentation surface to drive. Required.
	Surface *surface.Surface

	// Platform creates the surface's target. Required.
	Platform surface.Platform

	// Window is the window being drawn. Required.
	Window Window

	// ColorSpace is passed to Surface.Init.
	ColorSpace surface.ColorSpace

	// Pacer is advanced once per redraw. Nil creates a silent pacer.
	Pacer *pacer.Pacer

	// TargetFPS caps the frame rate. Zero means DefaultTargetFPS.
	TargetFPS int

	// QuitKey exits the loop when pressed. KeyUnknown disables it.
	QuitKey gpucontext.Key

	// Ready decides which event initializes the surface.
	// Nil means PlatformReady().
	Ready ReadyPredicate

	// Renderer draws frames. Nil only advances the pacer.
	Renderer Renderer

	// Clock replaces time.Now. Used by tests.
	Clock func() time.Time

	// Logger receives loop diagnostics. Nil is silent.
	Logger *slog.Logger
}

// Control tells the host what to do after an event.
type Control struct {
	// Exit is set once the driver reached StateExiting.
	Exit bool

	// WaitUntil is the earliest time the next redraw should be delivered:
	// the last frame plus the target frame interval. The host blocks until
	// this deadline or the next event, whichever comes first.
	WaitUntil time.Time
}

// Errors.
var (
	// ErrMissingOption is returned by New when a required option is nil.
	ErrMissingOption = errors.New("loop: missing required option")
)

// Driver is the event loop state machine. It owns the surface and the
// pacer and must be used from a single goroutine.
type Driver struct {
	surface    *surface.Surface
	platform   surface.Platform
	window     Window
	colorSpace surface.ColorSpace
	pacer      *pacer.Pacer
	frameTime  time.Duration
	quitKey    gpucontext.Key
	ready      ReadyPredicate
	renderer   Renderer
	now        func() time.Time
	log        *slog.Logger

	state     State
	lastFrame time.Time
}

// New returns a Driver in StateUninitialized.
func New(opts Options) (*Driver, error) {
	switch {
	case opts.Surface == nil:
		return nil, fmt.Errorf("%w: Surface", ErrMissingOption)
	case opts.Platform == nil:
		return nil, fmt.Errorf("%w: Platform", ErrMissingOption)
	case opts.Window == nil:
		return nil, fmt.Errorf("%w: Window", ErrMissingOption)
	}

	d := &Driver{
		surface:    opts.Surface,
		platform:   opts.Platform,
		window:     opts.Window,
		colorSpace: opts.ColorSpace,
		pacer:      opts.Pacer,
		quitKey:    opts.QuitKey,
		ready:      opts.Ready,
		renderer:   opts.Renderer,
		now:        opts.Clock,
		log:        opts.Logger,
	}

	fps := opts.TargetFPS
	if fps <= 0 {
		fps = DefaultTargetFPS
	}
	d.frameTime = time.Second / time.Duration(fps)

	if d.ready == nil {
		d.ready = PlatformReady()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.log == nil {
		d.log = slog.New(nopHandler{})
	}
	if d.pacer == nil {
		d.pacer = pacer.New(pacer.DefaultInterval, nil, pacer.WithClock(d.now))
	}
	return d, nil
}

// State returns the current state.
func (d *Driver) State() State { return d.state }

// FrameTime returns the target frame interval.
func (d *Driver) FrameTime() time.Duration { return d.frameTime }

// LastFrame returns when the last redraw was handled, or the zero time.
func (d *Driver) LastFrame() time.Time { return d.lastFrame }

// Handle processes one event and returns the scheduling directive.
//
// Only surface setup failures and an out-of-memory failure that survived
// recovery are returned as errors; both leave the driver in StateExiting.
// Other presentation failures skip the frame.
func (d *Driver) Handle(ev Event) (Control, error) {
	if ev != nil {
		d.log.Debug("loop: event", "state", d.state, "event", ev.String())
	}
	err := d.handle(ev)
	if err != nil {
		d.exit()
	}
	return d.control(), err
}

func (d *Driver) handle(ev Event) error {
	if d.state == StateExiting || ev == nil {
		return nil
	}

	if d.ready(ev) {
		return d.init()
	}

	switch e := ev.(type) {
	case CloseRequest:
		d.log.Info("loop: close requested")
		d.exit()
	case KeyPress:
		if d.quitKey != gpucontext.KeyUnknown && e.Key == d.quitKey {
			d.log.Info("loop: quit key pressed")
			d.exit()
		}
	case Resize:
		if d.state != StateReady {
			return nil
		}
		if err := d.surface.Resize(e.Width, e.Height); err != nil {
			// The size is stored regardless; the next acquire reconfigures.
			d.log.Warn("loop: resize failed", "width", e.Width, "height", e.Height, "err", err)
		}
		d.window.RequestRedraw()
	case RedrawRequest:
		if d.state != StateReady {
			return nil
		}
		return d.redraw()
	}
	return nil
}

// init creates the surface for the current window size. Called again for
// the same window it rebuilds the surface.
func (d *Driver) init() error {
	if err := d.surface.Init(d.platform, d.window, d.colorSpace); err != nil {
		d.log.Error("loop: surface setup failed", "err", err)
		return err
	}
	d.state = StateReady
	d.pacer.Reset()
	d.window.RequestRedraw()
	return nil
}

func (d *Driver) redraw() error {
	d.pacer.Update()

	if d.renderer != nil {
		if err := d.drawFrame(); err != nil {
			if errors.Is(err, surface.ErrOutOfMemory) {
				d.log.Error("loop: out of memory", "err", err)
				return err
			}
			d.log.Warn("loop: frame skipped", "err", err)
		}
	}

	d.lastFrame = d.now()
	d.window.RequestRedraw()
	return nil
}

func (d *Driver) drawFrame() error {
	frame, err := d.surface.Acquire()
	if err != nil {
		return err
	}
	cfg, _ := d.surface.Config()
	if err := d.renderer.Render(frame, cfg); err != nil {
		frame.Discard()
		return err
	}
	if frame.Suboptimal() {
		d.log.Debug("loop: suboptimal frame", "config", cfg.String())
	}
	return frame.Present()
}

// exit enters StateExiting and releases the surface.
func (d *Driver) exit() {
	if d.state == StateExiting {
		return
	}
	d.state = StateExiting
	d.surface.Release()
}

func (d *Driver) control() Control {
	return Control{
		Exit:      d.state == StateExiting,
		WaitUntil: d.lastFrame.Add(d.frameTime),
	}
}

// Run feeds events from h into Handle until the driver exits, an error is
// returned, or ctx is done. A clean exit returns nil.
func (d *Driver) Run(ctx context.Context, h Host) error {
	ctl := d.control()
	for !ctl.Exit {
		ev, err := h.Next(ctx, ctl.WaitUntil)
		if err != nil {
			d.exit()
			return err
		}
		if ctl, err = d.Handle(ev); err != nil {
			return err
		}
	}
	return nil
}

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfwhost opens a GLFW window without a client API and turns its
// callbacks into loop events.
//
// GLFW must be driven from the main OS thread. Callers lock it in an init
// function before calling Open.
package glfwhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/kozy/loop"
)

// Errors.
var (
	// ErrUnsupportedPlatform is returned by NativeHandles on platforms where
	// the window handle cannot be handed to wgpu.
	ErrUnsupportedPlatform = errors.New("glfwhost: native handles not supported on this platform")

	// ErrClosed is returned by NativeHandles after Close.
	ErrClosed = errors.New("glfwhost: window closed")
)

// Options configures Open.
type Options struct {
	Title         string
	Width, Height int
	Resizable     bool

	// Logger receives window events at Debug level. Nil is silent.
	Logger *slog.Logger
}

// Host is a GLFW window and its event queue. It implements loop.Host.
type Host struct {
	win    *glfw.Window
	window *Window
	log    *slog.Logger

	queue   []loop.Event
	started bool
	pending bool
}

var _ loop.Host = (*Host)(nil)

// Open initializes GLFW and creates the window.
func Open(opts Options) (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwhost: init: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwhost: create window: %w", err)
	}

	h := &Host{win: win, log: orDiscard(opts.Logger)}
	h.window = &Window{host: h, title: opts.Title}

	win.SetFramebufferSizeCallback(h.fbResized)
	win.SetCloseCallback(h.closeReq)
	win.SetRefreshCallback(h.refresh)
	win.SetKeyCallback(h.keyEvent)
	win.SetIconifyCallback(h.iconify)
	win.SetFocusCallback(h.focus)

	return h, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Window returns the host's window.
func (h *Host) Window() *Window { return h.window }

// Next implements loop.Host. The first call reports loop.Ready.
func (h *Host) Next(ctx context.Context, deadline time.Time) (loop.Event, error) {
	if !h.started {
		h.started = true
		return loop.Ready{}, nil
	}

	stop := context.AfterFunc(ctx, glfw.PostEmptyEvent)
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(h.queue) > 0 {
			ev := h.queue[0]
			h.queue = h.queue[1:]
			return ev, nil
		}

		wait := time.Until(deadline)
		switch {
		case h.pending && wait <= 0:
			h.pending = false
			return loop.RedrawRequest{}, nil
		case h.pending:
			glfw.WaitEventsTimeout(wait.Seconds())
		default:
			glfw.WaitEvents()
		}
	}
}

// Close destroys the window and terminates GLFW.
func (h *Host) Close() {
	if h.win == nil {
		return
	}
	h.win.Destroy()
	h.win = nil
	glfw.Terminate()
}

func (h *Host) push(ev loop.Event) {
	h.log.Debug("glfwhost: event", "event", ev.String())
	h.queue = append(h.queue, ev)
}

func (h *Host) fbResized(_ *glfw.Window, width, height int) {
	h.push(loop.Resize{Width: width, Height: height})
}

func (h *Host) closeReq(w *glfw.Window) {
	// The driver decides; the window stays open until Close.
	w.SetShouldClose(false)
	h.push(loop.CloseRequest{})
}

func (h *Host) refresh(*glfw.Window) {
	h.pending = true
}

func (h *Host) keyEvent(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	h.push(loop.KeyPress{Key: mapKey(key)})
}

func (h *Host) iconify(_ *glfw.Window, iconified bool) {
	if iconified {
		h.push(loop.Other{Name: "iconified"})
		return
	}
	h.push(loop.Other{Name: "restored"})
}

func (h *Host) focus(_ *glfw.Window, focused bool) {
	if focused {
		h.push(loop.Other{Name: "focused"})
		return
	}
	h.push(loop.Other{Name: "unfocused"})
}

// Window is the loop.Window view of a Host.
type Window struct {
	host  *Host
	title string
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	if w.host.win == nil {
		return 0, 0
	}
	return w.host.win.GetFramebufferSize()
}

// RequestRedraw asks the host for a RedrawRequest once the frame deadline
// has passed.
func (w *Window) RequestRedraw() { w.host.pending = true }

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	if w.host.win == nil {
		return
	}
	w.title = title
	w.host.win.SetTitle(title)
}

// Title returns the last title set.
func (w *Window) Title() string { return w.title }

// ScaleFactor returns the content scale of the window.
func (w *Window) ScaleFactor() float64 {
	if w.host.win == nil {
		return 1
	}
	x, _ := w.host.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// Provider returns a gpucontext view of the window with sizes in logical
// points.
func (w *Window) Provider() gpucontext.WindowProvider { return provider{w} }

type provider struct{ w *Window }

func (p provider) Size() (int, int) {
	if p.w.host.win == nil {
		return 0, 0
	}
	return p.w.host.win.GetSize()
}

func (p provider) ScaleFactor() float64 { return p.w.ScaleFactor() }
func (p provider) RequestRedraw()       { p.w.RequestRedraw() }

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(nopHandler{})
	}
	return l
}

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

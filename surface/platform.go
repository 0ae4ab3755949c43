// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

// Window is the part of a platform window a Surface needs.
//
// Implementations must be comparable (typically a pointer type): a Surface
// uses equality to tell whether it is being re-initialized against the
// same window.
type Window interface {
	// Size returns the drawable size in physical pixels. Zero means the
	// size is not known yet or the window is minimized.
	Size() (width, height int)
}

// NativeWindow is a Window that exposes the native handles GPU backends
// need to create a presentation surface.
//
// The handles are platform specific:
//   - X11: display = Display*, window = Window
//   - Wayland: display = wl_display*, window = wl_surface*
//   - Windows: display = 0, window = HWND
type NativeWindow interface {
	Window

	// NativeHandles returns the display and window handles.
	NativeHandles() (display, window uintptr, err error)
}

// Platform creates presentation targets for windows and knows the default
// configuration a target accepts. The GPU connection behind a Platform is
// created once and never mutated by the Surface.
type Platform interface {
	// CreateTarget creates the platform surface for w.
	CreateTarget(w Window) (Target, error)

	// DefaultConfig returns a configuration compatible with the adapter
	// for t at the given size. ok is false when the adapter cannot present
	// to t at all.
	DefaultConfig(t Target, width, height uint32) (cfg Config, ok bool)
}

// Target is a platform surface handle.
type Target interface {
	// Configure applies cfg to the device. It is also used to recover
	// from outdated or lost surfaces.
	Configure(cfg Config) error

	// Acquire returns the next presentable image. Recoverable failures are
	// reported as ErrTimeout, ErrOutdated, ErrLost or ErrOutOfMemory.
	Acquire() (Frame, error)

	// Release destroys the platform surface.
	Release()
}

// Frame is an acquired presentable image.
type Frame interface {
	// Present queues the image for display.
	Present() error

	// Discard gives the image back without presenting it.
	Discard()

	// Suboptimal reports whether the target still presents but no longer
	// matches the window exactly; a reconfigure is advisable.
	Suboptimal() bool
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"fmt"
	"runtime"

	"github.com/gogpu/gpucontext"
)

// Event is a window-system event delivered by a Host.
type Event interface {
	fmt.Stringer
	event()
}

// Ready is the desktop readiness signal: the window exists and has been
// shown, so a surface can be created for it.
type Ready struct{}

// Resumed is the mobile readiness signal: the app came to the foreground
// and its native window is valid again.
type Resumed struct{}

// Resize reports a new framebuffer size in pixels. Zero means the window
// is minimized or its size is not known yet.
type Resize struct {
	Width, Height int
}

// CloseRequest reports that the user asked to close the window.
type CloseRequest struct{}

// KeyPress reports a key going down.
type KeyPress struct {
	Key gpucontext.Key
}

// RedrawRequest asks for the next frame.
type RedrawRequest struct{}

// Other is any event the driver does not act on.
type Other struct {
	Name string
}

func (Ready) event()         {}
func (Resumed) event()       {}
func (Resize) event()        {}
func (CloseRequest) event()  {}
func (KeyPress) event()      {}
func (RedrawRequest) event() {}
func (Other) event()         {}

func (Ready) String() string         { return "Ready" }
func (Resumed) String() string       { return "Resumed" }
func (e Resize) String() string      { return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height) }
func (CloseRequest) String() string  { return "CloseRequest" }
func (e KeyPress) String() string    { return fmt.Sprintf("KeyPress(%d)", e.Key) }
func (RedrawRequest) String() string { return "RedrawRequest" }
func (e Other) String() string       { return "Other(" + e.Name + ")" }

// ReadyPredicate reports whether ev means the window is ready for a
// surface. It is the only place where desktop and mobile platforms differ.
type ReadyPredicate func(ev Event) bool

// DesktopReady accepts the Ready event.
func DesktopReady(ev Event) bool {
	_, ok := ev.(Ready)
	return ok
}

// MobileReady accepts the Resumed event.
func MobileReady(ev Event) bool {
	_, ok := ev.(Resumed)
	return ok
}

// PlatformReady returns the predicate for the platform the program was
// built for.
func PlatformReady() ReadyPredicate {
	switch runtime.GOOS {
	case "android", "ios":
		return MobileReady
	default:
		return DesktopReady
	}
}

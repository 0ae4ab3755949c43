// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build (linux && !wayland) || (freebsd && !wayland) || (netbsd && !wayland) || (openbsd && !wayland)

package glfwhost

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandles returns the X11 Display* and Window.
func (w *Window) NativeHandles() (display, window uintptr, err error) {
	if w.host.win == nil {
		return 0, 0, ErrClosed
	}
	display = uintptr(unsafe.Pointer(glfw.GetX11Display()))
	window = uintptr(w.host.win.GetX11Window())
	return display, window, nil
}

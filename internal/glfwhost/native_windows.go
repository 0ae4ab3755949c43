// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package glfwhost

import "unsafe"

// NativeHandles returns the HWND. Windows has no display handle.
func (w *Window) NativeHandles() (display, window uintptr, err error) {
	if w.host.win == nil {
		return 0, 0, ErrClosed
	}
	return 0, uintptr(unsafe.Pointer(w.host.win.GetWin32Window())), nil
}

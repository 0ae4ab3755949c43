// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !freebsd && !netbsd && !openbsd && !windows

package glfwhost

// NativeHandles is not supported here. macOS needs a CAMetalLayer-backed
// NSView, which GLFW does not expose.
func (w *Window) NativeHandles() (display, window uintptr, err error) {
	return 0, 0, ErrUnsupportedPlatform
}

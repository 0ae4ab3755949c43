// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package kozy is a frame-paced GPU window shell.
//
// # Overview
//
// kozy opens a window, connects it to the GPU through a presentation
// surface and runs an event loop that redraws at a capped frame rate,
// reports the measured rate and survives the usual presentation failures
// (timeouts, outdated or lost surfaces) without user code.
//
// # Quick Start
//
//	cfg := kozy.DefaultConfig().
//	    WithTitle("demo").
//	    WithSize(800, 600).
//	    WithTargetFPS(30)
//
//	if err := kozy.Run(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Run returns nil when the window is closed, the quit key is pressed or
// ctx is cancelled. Errors are fatal: the surface could not be set up or
// the GPU ran out of memory.
//
// # Architecture
//
// The shell is organized into:
//   - surface: presentation surface lifecycle and acquire recovery
//   - pacer: frame counting and FPS reports
//   - loop: the event loop state machine and its hosts
//   - scene: an inert UI data model and named colors
//   - internal/gfx: the wgpu platform behind surface
//   - internal/glfwhost: the GLFW window host
//
// # Logging
//
// kozy is silent by default. SetLogger enables output for kozy and the
// wgpu stack underneath it.
package kozy

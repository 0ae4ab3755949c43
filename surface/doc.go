// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface manages the presentation surface of a window: the link
// between the window and the GPU's queue of presentable images.
//
// # Lifecycle
//
// A Surface starts uninitialized. Init, called once the host platform
// reports the window is ready, creates the platform surface, asks the
// Platform for a default configuration, applies the requested ColorSpace
// and configures the device:
//
//	s := surface.New(surface.WithLogger(logger))
//	if err := s.Init(platform, window, surface.ColorSpaceSRGB); err != nil {
//	    return err // *SetupError: fatal
//	}
//
// Resize keeps the configuration in step with the window. Sizes are
// clamped to at least 1x1, since platforms reject zero-sized surfaces:
//
//	s.Resize(0, 0) // stored config is 1x1
//
// # Acquiring frames
//
// Acquire applies a two-tier bounded recovery policy:
//
//   - ErrTimeout: retry once
//   - ErrOutdated, ErrLost, ErrOutOfMemory: reconfigure with the last
//     configuration, then retry once
//
// A second failure is returned as *AcquireError. Use IsRecoverable to
// decide between skipping the frame and giving up.
//
// # Platforms
//
// GPU backends implement Platform and register with the registry:
//
//	surface.Register("wgpu", 100, factory, nil)
//	p, err := surface.NewPlatform(surface.PlatformOptions{Window: w})
//
// NewPlatform only considers backends with a positive priority. The
// built-in "headless" platform has priority zero, so it is used only when
// asked for by name and never replaces a GPU backend that failed.
package surface

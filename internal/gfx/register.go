// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/kozy/surface"
)

// PlatformName is the registry name of the wgpu platform.
const PlatformName = "wgpu"

func init() {
	surface.Register(PlatformName, 100, newPlatform, nil)
}

func newPlatform(opts surface.PlatformOptions) (surface.Platform, error) {
	return New(platformOptions(opts))
}

// platformOptions maps registry options to Options.
func platformOptions(opts surface.PlatformOptions) Options {
	o := Options{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
		ForceFallback:   opts.ForceFallback,
		Logger:          opts.Logger,
	}
	if opts.LowPower {
		o.PowerPreference = gputypes.PowerPreferenceLowPower
	}
	if nw, ok := opts.Window.(surface.NativeWindow); ok {
		o.Window = nw
	}
	return o
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/kozy/surface"
)

var _ surface.Platform = (*Context)(nil)

// CreateTarget creates a wgpu surface for w. The window must implement
// surface.NativeWindow.
func (c *Context) CreateTarget(w surface.Window) (surface.Target, error) {
	if c.probe != nil && c.probeWindow == w {
		s := c.probe
		c.probe, c.probeWindow = nil, nil
		return &Target{ctx: c, surf: s}, nil
	}
	s, err := c.createSurface(w)
	if err != nil {
		return nil, err
	}
	return &Target{ctx: c, surf: s}, nil
}

// DefaultConfig asks the adapter what t supports and picks a configuration.
// It returns false if the adapter cannot report capabilities for t.
func (c *Context) DefaultConfig(t surface.Target, width, height uint32) (surface.Config, bool) {
	wt, ok := t.(*Target)
	if !ok {
		return surface.Config{}, false
	}
	caps := c.adapter.GetSurfaceCapabilities(wt.surf)
	if caps != nil {
		wt.formats = caps.Formats
	}
	return chooseConfig(caps, width, height)
}

// chooseConfig picks the first supported format (BGRA8Unorm if the adapter
// lists none), Fifo if supported, and the first alpha mode.
func chooseConfig(caps *wgpu.SurfaceCapabilities, width, height uint32) (surface.Config, bool) {
	if caps == nil {
		return surface.Config{}, false
	}

	cfg := surface.Config{
		Format:      gputypes.TextureFormatBGRA8Unorm,
		Width:       width,
		Height:      height,
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
		Usage:       gputypes.TextureUsageRenderAttachment,
	}
	if len(caps.Formats) > 0 {
		cfg.Format = caps.Formats[0]
	}
	if len(caps.PresentModes) > 0 && !slices.Contains(caps.PresentModes, gputypes.PresentModeFifo) {
		cfg.PresentMode = caps.PresentModes[0]
	}
	if len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}
	return cfg, true
}

// Target is a wgpu surface bound to one window.
type Target struct {
	ctx  *Context
	surf *wgpu.Surface

	// formats the surface supports, nil until capabilities were queried.
	formats []gputypes.TextureFormat

	// format is the swapchain format of the last Configure.
	format gputypes.TextureFormat
}

// Surface returns the underlying wgpu surface.
func (t *Target) Surface() *wgpu.Surface { return t.surf }

// Configure applies cfg to the surface. The swapchain is created in the
// configuration's view format when the surface supports it; see
// swapchainFormat.
func (t *Target) Configure(cfg surface.Config) error {
	if t.formats == nil {
		if caps := t.ctx.adapter.GetSurfaceCapabilities(t.surf); caps != nil {
			t.formats = caps.Formats
		}
	}
	format := swapchainFormat(cfg, t.formats)

	err := t.surf.Configure(t.ctx.device, &wgpu.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      format,
		Usage:       cfg.Usage,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	if err != nil {
		return translate(err)
	}
	t.format = format
	t.ctx.format.Store(uint32(format))
	return nil
}

// swapchainFormat returns the format to create swapchain images in.
//
// wgpu surfaces take no view format list, so a view format other than
// cfg.Format cannot be declared on the images. It is used as the image
// format itself when supported lists it; otherwise images and views both
// use cfg.Format.
func swapchainFormat(cfg surface.Config, supported []gputypes.TextureFormat) gputypes.TextureFormat {
	view := cfg.ViewFormat()
	if view == cfg.Format || view == gputypes.TextureFormatUndefined {
		return cfg.Format
	}
	if slices.Contains(supported, view) {
		return view
	}
	return cfg.Format
}

// Acquire returns the next surface texture.
func (t *Target) Acquire() (surface.Frame, error) {
	tex, suboptimal, err := t.surf.GetCurrentTexture()
	if err != nil {
		return nil, translate(err)
	}
	return &Frame{surf: t.surf, tex: tex, format: t.format, suboptimal: suboptimal}, nil
}

// Release destroys the surface.
func (t *Target) Release() {
	t.surf.Unconfigure()
	t.surf.Release()
}

// Frame is an acquired surface texture.
type Frame struct {
	surf       *wgpu.Surface
	tex        *wgpu.SurfaceTexture
	format     gputypes.TextureFormat
	suboptimal bool
}

// Texture returns the texture to render into.
func (f *Frame) Texture() *wgpu.SurfaceTexture { return f.tex }

// Format returns the format of the frame's texture. Views of the
// texture must use it.
func (f *Frame) Format() gputypes.TextureFormat { return f.format }

// Present shows the frame.
func (f *Frame) Present() error { return translate(f.surf.Present(f.tex)) }

// Discard drops the frame without presenting it.
func (f *Frame) Discard() { f.surf.DiscardTexture() }

// Suboptimal reports whether the surface should be reconfigured soon.
func (f *Frame) Suboptimal() bool { return f.suboptimal }

// presentErrors pairs wgpu errors with the surface errors the recovery
// policy understands.
var presentErrors = []struct{ wgpu, surface error }{
	{wgpu.ErrTimeout, surface.ErrTimeout},
	{wgpu.ErrSurfaceOutdated, surface.ErrOutdated},
	{wgpu.ErrSurfaceLost, surface.ErrLost},
	{wgpu.ErrOutOfMemory, surface.ErrOutOfMemory},
}

// translate wraps err with the matching surface error, keeping err in the
// chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, p := range presentErrors {
		if errors.Is(err, p.wgpu) {
			return fmt.Errorf("%w: %w", p.surface, err)
		}
	}
	return err
}

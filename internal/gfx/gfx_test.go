// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/kozy/surface"
)

func TestChooseConfig(t *testing.T) {
	tests := []struct {
		name      string
		caps      *wgpu.SurfaceCapabilities
		wantOK    bool
		wantFmt   gputypes.TextureFormat
		wantMode  gputypes.PresentMode
		wantAlpha gputypes.CompositeAlphaMode
	}{
		{
			name:   "no capabilities",
			caps:   nil,
			wantOK: false,
		},
		{
			name:      "core only",
			caps:      &wgpu.SurfaceCapabilities{PresentModes: []gputypes.PresentMode{gputypes.PresentModeFifo}},
			wantOK:    true,
			wantFmt:   gputypes.TextureFormatBGRA8Unorm,
			wantMode:  gputypes.PresentModeFifo,
			wantAlpha: gputypes.CompositeAlphaModeOpaque,
		},
		{
			name: "first format and alpha, fifo preferred",
			caps: &wgpu.SurfaceCapabilities{
				Formats:      []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm},
				PresentModes: []gputypes.PresentMode{gputypes.PresentModeMailbox, gputypes.PresentModeFifo},
				AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModePremultiplied, gputypes.CompositeAlphaModeOpaque},
			},
			wantOK:    true,
			wantFmt:   gputypes.TextureFormatRGBA8Unorm,
			wantMode:  gputypes.PresentModeFifo,
			wantAlpha: gputypes.CompositeAlphaModePremultiplied,
		},
		{
			name: "no fifo",
			caps: &wgpu.SurfaceCapabilities{
				PresentModes: []gputypes.PresentMode{gputypes.PresentModeImmediate},
			},
			wantOK:    true,
			wantFmt:   gputypes.TextureFormatBGRA8Unorm,
			wantMode:  gputypes.PresentModeImmediate,
			wantAlpha: gputypes.CompositeAlphaModeOpaque,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := chooseConfig(tt.caps, 640, 480)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cfg.Format != tt.wantFmt {
				t.Errorf("Format = %v, want %v", cfg.Format, tt.wantFmt)
			}
			if cfg.PresentMode != tt.wantMode {
				t.Errorf("PresentMode = %v, want %v", cfg.PresentMode, tt.wantMode)
			}
			if cfg.AlphaMode != tt.wantAlpha {
				t.Errorf("AlphaMode = %v, want %v", cfg.AlphaMode, tt.wantAlpha)
			}
			if cfg.Width != 640 || cfg.Height != 480 {
				t.Errorf("size = %dx%d, want 640x480", cfg.Width, cfg.Height)
			}
			if cfg.Usage != gputypes.TextureUsageRenderAttachment {
				t.Errorf("Usage = %v, want RenderAttachment", cfg.Usage)
			}
		})
	}
}

func TestSwapchainFormat(t *testing.T) {
	unorm := gputypes.TextureFormatBGRA8Unorm
	srgb := gputypes.TextureFormatBGRA8UnormSrgb
	both := []gputypes.TextureFormat{unorm, srgb}

	tests := []struct {
		name      string
		cfg       surface.Config
		supported []gputypes.TextureFormat
		want      gputypes.TextureFormat
	}{
		{"no view formats", surface.Config{Format: unorm}, both, unorm},
		{"srgb view supported", surface.Config{Format: unorm, ViewFormats: []gputypes.TextureFormat{srgb}}, both, srgb},
		{"srgb view unsupported", surface.Config{Format: unorm, ViewFormats: []gputypes.TextureFormat{srgb}}, []gputypes.TextureFormat{unorm}, unorm},
		{"capabilities unknown", surface.Config{Format: unorm, ViewFormats: []gputypes.TextureFormat{srgb}}, nil, unorm},
		{"linear view equals format", surface.Config{Format: unorm, ViewFormats: []gputypes.TextureFormat{unorm}}, both, unorm},
		{"srgb format already", surface.Config{Format: srgb, ViewFormats: []gputypes.TextureFormat{srgb}}, both, srgb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := swapchainFormat(tt.cfg, tt.supported); got != tt.want {
				t.Errorf("swapchainFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The format images are created in is the format views are made in, so a
// view never names a format the images did not declare.
func TestSwapchainFormatIsViewable(t *testing.T) {
	supported := []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb}
	for _, view := range []gputypes.TextureFormat{
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatBGRA8UnormSrgb,
		gputypes.TextureFormatRGBA8UnormSrgb,
	} {
		cfg := surface.Config{Format: gputypes.TextureFormatBGRA8Unorm, ViewFormats: []gputypes.TextureFormat{view}}
		f := &Frame{format: swapchainFormat(cfg, supported)}
		if f.Format() != cfg.Format && f.Format() != view {
			t.Errorf("view %v: frame format %v is neither the image nor the view format", view, f.Format())
		}
		if !slices.Contains(supported, f.Format()) {
			t.Errorf("view %v: frame format %v not supported by the surface", view, f.Format())
		}
	}
}

func TestTranslate(t *testing.T) {
	other := errors.New("validation failed")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"timeout", wgpu.ErrTimeout, surface.ErrTimeout},
		{"outdated", wgpu.ErrSurfaceOutdated, surface.ErrOutdated},
		{"lost", wgpu.ErrSurfaceLost, surface.ErrLost},
		{"oom", wgpu.ErrOutOfMemory, surface.ErrOutOfMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("translate(%v) = %v, want it to wrap %v", tt.in, got, tt.want)
			}
			if !errors.Is(got, tt.in) {
				t.Errorf("translate(%v) dropped the original error", tt.in)
			}
		})
	}

	if translate(nil) != nil {
		t.Error("translate(nil) != nil")
	}
	if got := translate(other); got != other {
		t.Errorf("translate(other) = %v, want it unchanged", got)
	}
	if surface.IsRecoverable(translate(wgpu.ErrOutOfMemory)) {
		t.Error("out of memory must not be recoverable")
	}
}

func TestAdapterType(t *testing.T) {
	tests := []struct {
		in   gputypes.DeviceType
		want gpucontext.AdapterType
	}{
		{gputypes.DeviceTypeDiscreteGPU, gpucontext.AdapterTypeDiscrete},
		{gputypes.DeviceTypeIntegratedGPU, gpucontext.AdapterTypeIntegrated},
		{gputypes.DeviceTypeCPU, gpucontext.AdapterTypeSoftware},
		{gputypes.DeviceTypeVirtualGPU, gpucontext.AdapterTypeUnknown},
		{gputypes.DeviceTypeOther, gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		if got := adapterType(tt.in); got != tt.want {
			t.Errorf("adapterType(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type plainWindow struct{}

func (plainWindow) Size() (int, int) { return 1, 1 }

type nativeWindow struct{ plainWindow }

func (nativeWindow) NativeHandles() (uintptr, uintptr, error) { return 1, 2, nil }

func TestPlatformOptions(t *testing.T) {
	l := slog.New(nopHandler{})

	o := platformOptions(surface.PlatformOptions{Window: nativeWindow{}, LowPower: true, Logger: l})
	if o.PowerPreference != gputypes.PowerPreferenceLowPower {
		t.Errorf("PowerPreference = %v, want LowPower", o.PowerPreference)
	}
	if o.Window == nil {
		t.Error("native window not forwarded")
	}
	if o.Logger != l {
		t.Error("logger not forwarded")
	}

	o = platformOptions(surface.PlatformOptions{Window: plainWindow{}, ForceFallback: true})
	if o.PowerPreference != gputypes.PowerPreferenceHighPerformance {
		t.Errorf("PowerPreference = %v, want HighPerformance", o.PowerPreference)
	}
	if o.Window != nil {
		t.Error("window without native handles forwarded")
	}
	if !o.ForceFallback {
		t.Error("ForceFallback not forwarded")
	}
}

func TestRegistered(t *testing.T) {
	entry, ok := surface.Get(PlatformName)
	if !ok {
		t.Fatalf("%q not registered", PlatformName)
	}
	if entry.Priority != 100 {
		t.Errorf("Priority = %d, want 100", entry.Priority)
	}
	if got := surface.List(); len(got) == 0 || got[0] != PlatformName {
		t.Errorf("List() = %v, want %q first", got, PlatformName)
	}
}

func TestCreateTargetRequiresNativeWindow(t *testing.T) {
	c := &Context{}
	if _, err := c.CreateTarget(plainWindow{}); !errors.Is(err, ErrNotNative) {
		t.Errorf("CreateTarget error = %v, want ErrNotNative", err)
	}
}

func TestClearRendererRejectsForeignFrame(t *testing.T) {
	frame, err := (&surface.HeadlessTarget{}).Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	r := NewClearRenderer(&Context{}, gputypes.Color{A: 1})
	if err := r.Render(frame, surface.Config{}); !errors.Is(err, ErrForeignFrame) {
		t.Errorf("Render error = %v, want ErrForeignFrame", err)
	}
}

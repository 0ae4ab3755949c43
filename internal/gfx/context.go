// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/kozy/surface"
)

// Errors.
var (
	// ErrNoAdapter is returned when no adapter compatible with the
	// requested options and window exists.
	ErrNoAdapter = errors.New("gfx: no compatible GPU adapter")

	// ErrNoDevice is returned when the adapter refuses to create a device.
	ErrNoDevice = errors.New("gfx: device creation failed")

	// ErrNotNative is returned when a window cannot provide native handles.
	ErrNotNative = errors.New("gfx: window has no native handles")
)

// Options configures New.
type Options struct {
	// Backends restricts the HAL backends. Zero enables all registered ones.
	Backends gputypes.Backends

	// PowerPreference steers adapter selection.
	PowerPreference gputypes.PowerPreference

	// ForceFallback requests the software adapter.
	ForceFallback bool

	// Window, if set, makes adapter selection consider only adapters that
	// can present to it. The surface created for the probe is reused by
	// the first CreateTarget call for the same window.
	Window surface.NativeWindow

	// Logger receives GPU diagnostics. Nil is silent.
	Logger *slog.Logger
}

// Context owns the instance, adapter, device and queue.
//
// The handles are fixed at construction and never replaced.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	info     wgpu.AdapterInfo
	log      *slog.Logger

	// format is the gputypes.TextureFormat of the last configured target.
	format atomic.Uint32

	// probe is the surface created during adapter selection.
	probe       *wgpu.Surface
	probeWindow surface.Window
}

var _ gpucontext.DeviceProvider = (*Context)(nil)

// New creates the Graphics Context. Every failure is fatal for the
// application: there is nothing to render with.
func New(opts Options) (*Context, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(nopHandler{})
	}

	var desc *wgpu.InstanceDescriptor
	if opts.Backends != 0 {
		desc = &wgpu.InstanceDescriptor{Backends: opts.Backends}
	}
	instance, err := wgpu.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("gfx: create instance: %w", err)
	}
	c := &Context{instance: instance, log: log}

	reqOpts := &wgpu.RequestAdapterOptions{
		PowerPreference:      opts.PowerPreference,
		ForceFallbackAdapter: opts.ForceFallback,
	}
	if opts.Window != nil {
		probe, err := c.createSurface(opts.Window)
		if err != nil {
			c.Release()
			return nil, err
		}
		c.probe, c.probeWindow = probe, opts.Window
		reqOpts.CompatibleSurface = probe
	}

	adapter, err := instance.RequestAdapter(reqOpts)
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	c.adapter = adapter
	c.info = adapter.Info()
	log.Info("gfx: adapter selected",
		"name", c.info.Name,
		"vendor", c.info.Vendor,
		"type", c.info.DeviceType,
		"backend", c.info.Backend,
	)

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "kozy-device",
		RequiredLimits: wgpu.DefaultLimits(),
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	c.device = device
	c.queue = device.Queue()

	return c, nil
}

func (c *Context) createSurface(w surface.Window) (*wgpu.Surface, error) {
	nw, ok := w.(surface.NativeWindow)
	if !ok {
		return nil, ErrNotNative
	}
	display, window, err := nw.NativeHandles()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotNative, err)
	}
	s, err := c.instance.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("gfx: create surface: %w", err)
	}
	return s, nil
}

// Instance returns the wgpu instance.
func (c *Context) Instance() *wgpu.Instance { return c.instance }

// WGPUAdapter returns the wgpu adapter.
func (c *Context) WGPUAdapter() *wgpu.Adapter { return c.adapter }

// WGPUDevice returns the wgpu device.
func (c *Context) WGPUDevice() *wgpu.Device { return c.device }

// WGPUQueue returns the wgpu queue.
func (c *Context) WGPUQueue() *wgpu.Queue { return c.queue }

// Info returns the full adapter description.
func (c *Context) Info() wgpu.AdapterInfo { return c.info }

// Device implements gpucontext.DeviceProvider.
func (c *Context) Device() gpucontext.Device { return c.device }

// Queue implements gpucontext.DeviceProvider.
func (c *Context) Queue() gpucontext.Queue { return c.queue }

// Adapter implements gpucontext.DeviceProvider.
func (c *Context) Adapter() gpucontext.Adapter { return c.adapter }

// SurfaceFormat returns the format of the most recently configured
// surface, or TextureFormatUndefined.
func (c *Context) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormat(c.format.Load())
}

// AdapterInfo implements gpucontext.DeviceProvider.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: c.info.Name, Type: adapterType(c.info.DeviceType)}
}

// adapterType maps a wgpu device type to the gpucontext classification.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// Release destroys the device, adapter and instance, in that order.
func (c *Context) Release() {
	if c.probe != nil {
		c.probe.Release()
		c.probe, c.probeWindow = nil, nil
	}
	if c.device != nil {
		c.device.Release()
		c.device, c.queue = nil, nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

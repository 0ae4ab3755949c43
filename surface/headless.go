// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// HeadlessName is the registry name of the headless platform.
const HeadlessName = "headless"

// Headless is a Platform without a GPU. Its targets accept any
// configuration and hand out frames that present nowhere. It backs the
// "headless" registry entry and is useful for running the event loop
// without a display.
type Headless struct {
	// Format is the format reported by DefaultConfig.
	// Zero means BGRA8Unorm, the format every presenting adapter supports.
	Format gputypes.TextureFormat
}

// NewHeadless returns a headless platform.
func NewHeadless() *Headless {
	return &Headless{Format: gputypes.TextureFormatBGRA8Unorm}
}

// CreateTarget returns an in-memory target.
func (h *Headless) CreateTarget(Window) (Target, error) {
	return &HeadlessTarget{}, nil
}

// DefaultConfig returns a Fifo, opaque configuration of the given size.
func (h *Headless) DefaultConfig(_ Target, width, height uint32) (Config, bool) {
	format := h.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return Config{
		Format:      format,
		Width:       width,
		Height:      height,
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
		Usage:       gputypes.TextureUsageRenderAttachment,
	}, true
}

// HeadlessTarget is the Target created by Headless.
type HeadlessTarget struct {
	config     Config
	configures atomic.Int64
	presented  atomic.Int64
	released   atomic.Bool
}

// Configure stores cfg.
func (t *HeadlessTarget) Configure(cfg Config) error {
	t.config = cfg.Clone()
	t.configures.Add(1)
	return nil
}

// Acquire returns a frame. It fails with ErrLost after Release.
func (t *HeadlessTarget) Acquire() (Frame, error) {
	if t.released.Load() {
		return nil, ErrLost
	}
	return headlessFrame{t: t}, nil
}

// Release marks the target as released.
func (t *HeadlessTarget) Release() { t.released.Store(true) }

// Config returns the last applied configuration.
func (t *HeadlessTarget) Config() Config { return t.config.Clone() }

// Configures returns how many times Configure was called.
func (t *HeadlessTarget) Configures() int { return int(t.configures.Load()) }

// Presented returns how many frames were presented.
func (t *HeadlessTarget) Presented() int { return int(t.presented.Load()) }

type headlessFrame struct{ t *HeadlessTarget }

func (f headlessFrame) Present() error {
	f.t.presented.Add(1)
	return nil
}

func (headlessFrame) Discard()         {}
func (headlessFrame) Suboptimal() bool { return false }

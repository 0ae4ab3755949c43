// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/kozy/surface"
)

// ErrForeignFrame is returned when a renderer gets a frame it did not
// create.
var ErrForeignFrame = errors.New("gfx: frame was not acquired from a wgpu target")

// ClearRenderer fills every frame with one color.
type ClearRenderer struct {
	ctx   *Context
	Color gputypes.Color
}

// NewClearRenderer returns a renderer clearing to color.
func NewClearRenderer(ctx *Context, color gputypes.Color) *ClearRenderer {
	return &ClearRenderer{ctx: ctx, Color: color}
}

// Render records and submits one render pass that clears the frame. The
// view uses the frame's own format, which already reflects the requested
// color space when the surface could honor it.
func (r *ClearRenderer) Render(frame surface.Frame, _ surface.Config) error {
	f, ok := frame.(*Frame)
	if !ok {
		return ErrForeignFrame
	}

	view, err := f.Texture().CreateView(&wgpu.TextureViewDescriptor{
		Label:           "kozy-frame",
		Format:          f.Format(),
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return fmt.Errorf("gfx: create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.ctx.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "kozy-clear"})
	if err != nil {
		return translate(err)
	}
	pass, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "kozy-clear",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.Color,
		}},
	})
	if err != nil {
		encoder.DiscardEncoding()
		return translate(err)
	}
	if err := pass.End(); err != nil {
		return translate(err)
	}
	commands, err := encoder.Finish()
	if err != nil {
		return translate(err)
	}
	if _, err := r.ctx.queue.Submit(commands); err != nil {
		return translate(err)
	}
	return nil
}

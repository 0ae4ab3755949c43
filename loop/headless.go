// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"context"
	"time"
)

// HeadlessWindow is a Window and Host without a display. It reports
// readiness, then delivers requested redraws at the paced deadline, and
// requests close after Frames redraws. Zero Frames runs until ctx is done.
type HeadlessWindow struct {
	Width, Height int
	Frames        int

	started bool
	pending bool
	drawn   int
}

// NewHeadlessWindow returns a headless window of the given size that
// closes after frames redraws.
func NewHeadlessWindow(width, height, frames int) *HeadlessWindow {
	return &HeadlessWindow{Width: width, Height: height, Frames: frames}
}

// Size returns the configured size.
func (w *HeadlessWindow) Size() (int, int) { return w.Width, w.Height }

// RequestRedraw schedules a RedrawRequest.
func (w *HeadlessWindow) RequestRedraw() { w.pending = true }

// SetTitle does nothing.
func (w *HeadlessWindow) SetTitle(string) {}

// Drawn returns the number of redraws delivered.
func (w *HeadlessWindow) Drawn() int { return w.drawn }

// Next implements Host.
func (w *HeadlessWindow) Next(ctx context.Context, deadline time.Time) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !w.started {
		w.started = true
		return Ready{}, nil
	}
	if w.Frames > 0 && w.drawn >= w.Frames {
		return CloseRequest{}, nil
	}
	if !w.pending {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := SleepUntil(ctx, deadline); err != nil {
		return nil, err
	}
	w.pending = false
	w.drawn++
	return RedrawRequest{}, nil
}

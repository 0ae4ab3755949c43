// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"context"
	"time"
)

// Host is the window system's event source.
//
// Next blocks until an event is available and returns it. A redraw
// requested through the Window is delivered only once deadline has
// passed, so the frame rate never exceeds the driver's target. Other
// events are delivered as they arrive. Next returns ctx.Err() when ctx is
// done.
type Host interface {
	Next(ctx context.Context, deadline time.Time) (Event, error)
}

// HostFunc adapts a function to Host.
type HostFunc func(ctx context.Context, deadline time.Time) (Event, error)

// Next calls f(ctx, deadline).
func (f HostFunc) Next(ctx context.Context, deadline time.Time) (Event, error) {
	return f(ctx, deadline)
}

// SleepUntil blocks until t or until ctx is done.
func SleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

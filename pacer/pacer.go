// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pacer

import "time"

// DefaultInterval is the report interval used when New is given zero.
const DefaultInterval = 2 * time.Second

// Report is one frame rate measurement.
type Report struct {
	// FPS is Frames divided by Interval in seconds.
	FPS float64

	// Frames counted since the previous report.
	Frames int

	// Interval is the configured report interval.
	Interval time.Duration
}

// Pacer counts frames and periodically reports the frame rate.
//
// Pacer is not safe for concurrent use.
type Pacer struct {
	interval time.Duration
	sink     Sink
	now      func() time.Time

	start  time.Time
	frames int
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pacer) {
		if now != nil {
			p.now = now
		}
	}
}

// New returns a Pacer reporting every interval to sink. The measurement
// window starts now. A nil sink discards reports.
func New(interval time.Duration, sink Sink, opts ...Option) *Pacer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if sink == nil {
		sink = Discard
	}
	p := &Pacer{interval: interval, sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	p.start = p.now()
	return p
}

// Interval returns the report interval.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Frames returns the number of frames counted in the current window.
func (p *Pacer) Frames() int { return p.frames }

// Update records one frame. If at least one interval has passed since the
// window started, the rate is reported, the counter is reset and the window
// restarts at the current time.
func (p *Pacer) Update() {
	p.frames++

	now := p.now()
	if now.Sub(p.start) < p.interval {
		return
	}

	p.sink.Report(Report{
		FPS:      float64(p.frames) / p.interval.Seconds(),
		Frames:   p.frames,
		Interval: p.interval,
	})
	p.frames = 0
	p.start = now
}

// Reset restarts the measurement window without reporting.
func (p *Pacer) Reset() {
	p.frames = 0
	p.start = p.now()
}

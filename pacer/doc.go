// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pacer measures the frame rate of an event loop.
//
// A Pacer counts frames and, once per report interval, hands the average
// rate to a Sink:
//
//	p := pacer.New(2*time.Second, pacer.LogSink(logger))
//	for each redraw {
//	    p.Update()
//	}
//
// The reported rate is frames divided by the configured interval, not by
// the exact time elapsed, so a late update slightly overstates the rate.
// Rates are diagnostics; nothing in the loop depends on them.
package pacer

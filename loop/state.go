// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import "fmt"

// State is the driver's lifecycle state.
type State uint8

const (
	// StateUninitialized means no surface exists yet.
	StateUninitialized State = iota

	// StateReady means the surface is configured and frames are drawn.
	StateReady

	// StateExiting is terminal. No further events are acted on.
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateExiting:
		return "Exiting"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

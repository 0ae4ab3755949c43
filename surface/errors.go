// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrNotInitialized is returned when an operation that needs a
	// configured surface runs before Init succeeded.
	ErrNotInitialized = errors.New("surface: not initialized")

	// ErrWindowMismatch is returned when Init is called for a window other
	// than the one the surface is already bound to.
	ErrWindowMismatch = errors.New("surface: already initialized for a different window")

	// ErrNoDefaultConfig is returned when the platform has no configuration
	// compatible with the adapter.
	ErrNoDefaultConfig = errors.New("surface: no default configuration available")

	// ErrTimeout reports that no image became available in time.
	ErrTimeout = errors.New("surface: acquire timed out")

	// ErrOutdated reports that the surface no longer matches the window
	// and must be reconfigured.
	ErrOutdated = errors.New("surface: outdated")

	// ErrLost reports that the platform surface was lost.
	ErrLost = errors.New("surface: lost")

	// ErrOutOfMemory reports that the device ran out of memory while
	// acquiring an image.
	ErrOutOfMemory = errors.New("surface: out of memory")
)

// SetupError is a fatal error raised while initializing a surface.
// It is never produced once the surface is ready.
type SetupError struct {
	// Op is the setup step that failed.
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *SetupError) Error() string {
	return "surface: " + e.Op + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() error { return e.Err }

// AcquireError is returned by Surface.Acquire when the bounded recovery
// did not produce an image.
type AcquireError struct {
	// Attempts is the number of acquisitions performed (1 or 2).
	Attempts int

	// Reconfigured reports whether the surface was reconfigured before the
	// last attempt.
	Reconfigured bool

	// Err is the error of the last step.
	Err error
}

func (e *AcquireError) Error() string {
	if e.Reconfigured {
		return fmt.Sprintf("surface: acquire failed after reconfigure (%d attempts): %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("surface: acquire failed (%d attempts): %v", e.Attempts, e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err is a presentation error that may go
// away on a later frame. Out-of-memory is not recoverable.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrOutdated) || errors.Is(err, ErrLost)
}

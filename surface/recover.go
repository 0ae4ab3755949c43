// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

// Strategy recovers from one class of acquire failure.
type Strategy struct {
	// Name identifies the strategy in logs.
	Name string

	// Match reports whether the strategy handles err.
	Match func(err error) bool

	// Prepare runs before the single retry. Nil retries as is.
	Prepare func() error
}

// MatchAny returns a Match func that accepts errors wrapping any of targets.
func MatchAny(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, t := range targets {
			if errors.Is(err, t) {
				return true
			}
		}
		return false
	}
}

// RecoverBy calls acquire and, if it fails with an error matched by one of
// strategies (first match wins), runs that strategy's Prepare and calls
// acquire exactly once more. Failures are returned as *AcquireError.
//
// The retry count is fixed at one: a strategy cannot loop.
func RecoverBy(acquire func() (Frame, error), strategies ...Strategy) (Frame, error) {
	f, err := acquire()
	if err == nil {
		return f, nil
	}

	st, ok := match(err, strategies)
	if !ok {
		return nil, &AcquireError{Attempts: 1, Err: err}
	}

	reconfigured := st.Prepare != nil
	if reconfigured {
		if perr := st.Prepare(); perr != nil {
			return nil, &AcquireError{Attempts: 1, Reconfigured: true, Err: perr}
		}
	}

	f, err = acquire()
	if err != nil {
		return nil, &AcquireError{Attempts: 2, Reconfigured: reconfigured, Err: err}
	}
	return f, nil
}

func match(err error, strategies []Strategy) (Strategy, bool) {
	for _, st := range strategies {
		if st.Match != nil && st.Match(err) {
			return st, true
		}
	}
	return Strategy{}, false
}

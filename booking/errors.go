package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected is returned when a selection change is not allowed in the
	// current state, e.g. while a hold is active.
	ErrRejected = errors.New("seat change rejected")

	// ErrEmptySelection guards the hold request locally.
	ErrEmptySelection = errors.New("no seats selected")

	// ErrNetworkFailure covers transport errors and non-conflict API failures.
	ErrNetworkFailure = errors.New("network failure")

	// ErrConflict is the server reporting that seats are no longer available.
	ErrConflict = errors.New("seats no longer available")

	// ErrStaleResponse marks a reply for a superseded request or show.
	ErrStaleResponse = errors.New("stale response")

	// ErrHoldExpired is returned when confirming a hold whose expiry has passed.
	ErrHoldExpired = fmt.Errorf("hold expired: %w", ErrNetworkFailure)

	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

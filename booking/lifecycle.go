package booking

import (
	"fmt"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateRequesting
	StateHeld
	StateConfirming
	StateConfirmed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateHeld:
		return "held"
	case StateConfirming:
		return "confirming"
	case StateConfirmed:
		return "confirmed"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Hold is a server-issued temporary reservation of the selected seats.
type Hold struct {
	BookingID int
	ExpiresAt time.Time
	SeatIDs   []int
}

// Remaining is the time left on the hold at now. It goes negative once the
// hold has expired.
func (h Hold) Remaining(now time.Time) time.Duration {
	return h.ExpiresAt.Sub(now)
}

// Lifecycle tracks a booking through Idle → Requesting → Held →
// Confirming → Confirmed, with the failure edges back to Idle/Held and
// the expiry edge to Expired. It performs no side effects itself.
type Lifecycle struct {
	state   State
	hold    *Hold
	pending []int
	attempt uint64
	// expiry seen while a confirm was in flight
	expiryDue bool
}

func (l *Lifecycle) State() State {
	return l.state
}

func (l *Lifecycle) Hold() (Hold, bool) {
	if l.hold == nil {
		return Hold{}, false
	}
	return *l.hold, true
}

// Frozen reports whether the selection must not change. Everything but
// Idle pins the selection: it is either covered by a hold, about to be,
// or the flow has ended.
func (l *Lifecycle) Frozen() bool {
	return l.state != StateIdle
}

// HoldActive reports whether a granted hold covers the selection, which
// lets the reconciler trust local selection over server statuses. While a
// hold is only being requested nothing covers the seats yet.
func (l *Lifecycle) HoldActive() bool {
	switch l.state {
	case StateHeld, StateConfirming, StateConfirmed:
		return true
	default:
		return false
	}
}

// RequestHold moves Idle → Requesting for the given seats and returns the
// attempt id the response must carry.
func (l *Lifecycle) RequestHold(seatIDs []int) (uint64, error) {
	if l.state != StateIdle {
		return 0, fmt.Errorf("%w: request hold in %s", ErrInvalidTransition, l.state)
	}
	if len(seatIDs) == 0 {
		return 0, ErrEmptySelection
	}
	l.attempt++
	l.state = StateRequesting
	l.pending = append([]int(nil), seatIDs...)
	return l.attempt, nil
}

// HoldGranted moves Requesting → Held.
func (l *Lifecycle) HoldGranted(attempt uint64, bookingID int, expiresAt time.Time) error {
	if err := l.expect(StateRequesting, attempt); err != nil {
		return err
	}
	l.hold = &Hold{BookingID: bookingID, ExpiresAt: expiresAt, SeatIDs: l.pending}
	l.pending = nil
	l.expiryDue = false
	l.state = StateHeld
	return nil
}

// HoldDenied moves Requesting → Idle after a conflict or any other failure.
func (l *Lifecycle) HoldDenied(attempt uint64) error {
	if err := l.expect(StateRequesting, attempt); err != nil {
		return err
	}
	l.pending = nil
	l.state = StateIdle
	return nil
}

// Confirm moves Held → Confirming. A hold already past its expiry cannot
// be confirmed; the caller must expire the flow.
func (l *Lifecycle) Confirm(now time.Time) (uint64, error) {
	if l.state != StateHeld {
		return 0, fmt.Errorf("%w: confirm in %s", ErrInvalidTransition, l.state)
	}
	if l.hold.Remaining(now) < 0 {
		return 0, ErrHoldExpired
	}
	l.attempt++
	l.state = StateConfirming
	return l.attempt, nil
}

// Confirmed moves Confirming → Confirmed and releases the hold.
func (l *Lifecycle) Confirmed(attempt uint64) error {
	if err := l.expect(StateConfirming, attempt); err != nil {
		return err
	}
	l.hold = nil
	l.expiryDue = false
	l.state = StateConfirmed
	return nil
}

// ConfirmFailed moves Confirming back to Held. It reports true when the
// hold expired while the confirm was in flight, in which case the caller
// must expire the flow.
func (l *Lifecycle) ConfirmFailed(attempt uint64) (bool, error) {
	if err := l.expect(StateConfirming, attempt); err != nil {
		return false, err
	}
	l.state = StateHeld
	return l.expiryDue, nil
}

// Observe feeds the countdown. It reports true exactly when the flow must
// expire now: the hold is past its expiry and no confirm is in flight. An
// expiry seen during Confirming is remembered for ConfirmFailed.
func (l *Lifecycle) Observe(now time.Time) bool {
	if l.hold == nil || l.hold.Remaining(now) >= 0 {
		return false
	}
	switch l.state {
	case StateHeld:
		return true
	case StateConfirming:
		l.expiryDue = true
	}
	return false
}

// Expire moves Held → Expired. It reports false when the flow is not in a
// state that can expire, so repeated calls have no effect.
func (l *Lifecycle) Expire() bool {
	if l.state != StateHeld {
		return false
	}
	l.hold = nil
	l.expiryDue = false
	l.state = StateExpired
	return true
}

// Reset returns to a fresh Idle. Attempt ids keep counting so late
// responses from before the reset stay stale.
func (l *Lifecycle) Reset() {
	l.state = StateIdle
	l.hold = nil
	l.pending = nil
	l.expiryDue = false
}

func (l *Lifecycle) expect(state State, attempt uint64) error {
	if l.state != state || attempt != l.attempt {
		return ErrStaleResponse
	}
	return nil
}

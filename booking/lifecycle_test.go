package booking

import (
	"errors"
	"testing"
	"time"
)

func mustDuration(t *testing.T, raw string) time.Duration {
	t.Helper()
	d, err := time.ParseDuration(raw)
	if err != nil {
		t.Fatalf("parse duration %q: %v", raw, err)
	}
	return d
}

func heldLifecycle(t *testing.T, expiresAt time.Time) *Lifecycle {
	t.Helper()
	var l Lifecycle
	attempt, err := l.RequestHold([]int{1, 2})
	if err != nil {
		t.Fatalf("request hold: %v", err)
	}
	if err := l.HoldGranted(attempt, 42, expiresAt); err != nil {
		t.Fatalf("hold granted: %v", err)
	}
	return &l
}

func TestLifecycle_HappyPath(t *testing.T) {
	now := time.Date(2026, 2, 3, 19, 0, 0, 0, time.UTC)
	l := heldLifecycle(t, now.Add(5*time.Minute))

	if l.State() != StateHeld || !l.Frozen() || !l.HoldActive() {
		t.Fatalf("unexpected state after grant: %s", l.State())
	}
	hold, ok := l.Hold()
	if !ok || hold.BookingID != 42 || len(hold.SeatIDs) != 2 {
		t.Fatalf("unexpected hold: %+v", hold)
	}

	attempt, err := l.Confirm(now.Add(time.Minute))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := l.Confirmed(attempt); err != nil {
		t.Fatalf("confirmed: %v", err)
	}
	if l.State() != StateConfirmed {
		t.Fatalf("expected confirmed, got %s", l.State())
	}
	if _, ok := l.Hold(); ok {
		t.Fatal("expected hold to be released")
	}
}

func TestLifecycle_EmptySelection(t *testing.T) {
	var l Lifecycle
	if _, err := l.RequestHold(nil); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if l.State() != StateIdle {
		t.Fatalf("expected idle, got %s", l.State())
	}
}

func TestLifecycle_HoldDeniedReturnsToIdle(t *testing.T) {
	var l Lifecycle
	attempt, _ := l.RequestHold([]int{1})
	if !l.Frozen() {
		t.Fatal("expected selection frozen while requesting")
	}
	if err := l.HoldDenied(attempt); err != nil {
		t.Fatalf("hold denied: %v", err)
	}
	if l.State() != StateIdle || l.Frozen() {
		t.Fatalf("expected idle, got %s", l.State())
	}
}

func TestLifecycle_StaleAttemptsAreRejected(t *testing.T) {
	var l Lifecycle
	first, _ := l.RequestHold([]int{1})
	_ = l.HoldDenied(first)
	second, _ := l.RequestHold([]int{1})

	if err := l.HoldGranted(first, 1, time.Now()); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if err := l.HoldGranted(second, 1, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("expected current attempt to be accepted, got %v", err)
	}
	if err := l.HoldDenied(second); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected duplicate response to be stale, got %v", err)
	}
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	var l Lifecycle
	if _, err := l.Confirm(time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	_, _ = l.RequestHold([]int{1})
	if _, err := l.RequestHold([]int{1}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if l.Expire() {
		t.Fatal("expected expire to be refused while requesting")
	}
}

func TestLifecycle_ConfirmAfterExpiry(t *testing.T) {
	now := time.Date(2026, 2, 3, 19, 0, 0, 0, time.UTC)
	l := heldLifecycle(t, now)

	_, err := l.Confirm(now.Add(time.Second))
	if !errors.Is(err, ErrHoldExpired) || !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("expected ErrHoldExpired wrapping ErrNetworkFailure, got %v", err)
	}
	if l.State() != StateHeld {
		t.Fatalf("expected held until expired, got %s", l.State())
	}
	if !l.Expire() || l.State() != StateExpired {
		t.Fatalf("expected expired, got %s", l.State())
	}
	if l.Expire() {
		t.Fatal("expected second expire to be a no-op")
	}
}

func TestLifecycle_ExpiryDuringConfirmIsDeferred(t *testing.T) {
	now := time.Date(2026, 2, 3, 19, 0, 0, 0, time.UTC)

	t.Run("confirm fails", func(t *testing.T) {
		l := heldLifecycle(t, now.Add(time.Second))
		attempt, err := l.Confirm(now)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if l.Observe(now.Add(2 * time.Second)) {
			t.Fatal("expected expiry to wait for the confirm response")
		}
		expired, err := l.ConfirmFailed(attempt)
		if err != nil || !expired {
			t.Fatalf("expected deferred expiry, got expired=%v err=%v", expired, err)
		}
		if !l.Expire() {
			t.Fatal("expected expire after failed confirm")
		}
	})

	t.Run("confirm succeeds", func(t *testing.T) {
		l := heldLifecycle(t, now.Add(time.Second))
		attempt, _ := l.Confirm(now)
		_ = l.Observe(now.Add(2 * time.Second))
		if err := l.Confirmed(attempt); err != nil {
			t.Fatalf("confirmed: %v", err)
		}
		if l.State() != StateConfirmed || l.Expire() {
			t.Fatalf("expected confirmed to win, got %s", l.State())
		}
	})
}

func TestLifecycle_ResetKeepsAttemptsStale(t *testing.T) {
	now := time.Date(2026, 2, 3, 19, 0, 0, 0, time.UTC)
	l := heldLifecycle(t, now)
	attempt, _ := l.Confirm(now.Add(-time.Second))
	_, _ = l.ConfirmFailed(attempt)
	l.Expire()
	l.Reset()

	if l.State() != StateIdle {
		t.Fatalf("expected idle, got %s", l.State())
	}
	if err := l.Confirmed(attempt); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
}

func TestSchedule_StopInvalidatesTokens(t *testing.T) {
	var s Schedule
	first := s.Start()
	if !s.Accept(first) || !s.Active() {
		t.Fatal("expected running schedule to accept its token")
	}
	s.Stop()
	if s.Accept(first) || s.Active() {
		t.Fatal("expected stopped schedule to refuse ticks")
	}
	second := s.Start()
	if s.Accept(first) || !s.Accept(second) {
		t.Fatal("expected only the newest token to be accepted")
	}
}

package store

import (
	"testing"
	"time"

	"cinemahall-cli/model"
)

func setTestConfigDir(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestRememberBooking_RoundTrip(t *testing.T) {
	setTestConfigDir(t)

	bookings, err := LoadBookings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("expected no bookings, got %+v", bookings)
	}

	first := model.Booking{Code: "aaaa1111", MovieTitle: "Inception", Seats: []string{"A1"}, CreatedAt: time.Now()}
	second := model.Booking{Code: "bbbb2222", MovieTitle: "Dune", Seats: []string{"C4", "C5"}, CreatedAt: time.Now()}
	if err := RememberBooking(first); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberBooking(second); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberBooking(first); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	bookings, err = LoadBookings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %+v", bookings)
	}
	if bookings[0].Code != "aaaa1111" || bookings[1].Code != "bbbb2222" {
		t.Fatalf("unexpected order: %+v", bookings)
	}
}

func TestRememberBooking_InvalidInput(t *testing.T) {
	setTestConfigDir(t)

	if err := RememberBooking(model.Booking{}); err == nil {
		t.Fatal("expected error for empty booking code")
	}
}

func TestMovieCache_RoundTrip(t *testing.T) {
	setTestConfigDir(t)

	movies, fresh, err := LoadMovieCache("http://localhost:8080")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh || len(movies) != 0 {
		t.Fatalf("expected empty stale cache, got %+v (fresh=%v)", movies, fresh)
	}

	if err := SaveMovieCache("http://localhost:8080", []model.Movie{{Id: 1, ShowId: 7, Title: "Inception"}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	movies, fresh, err = LoadMovieCache("http://localhost:8080/")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh || len(movies) != 1 || movies[0].ShowId != 7 {
		t.Fatalf("unexpected cache: %+v (fresh=%v)", movies, fresh)
	}

	other, _, err := LoadMovieCache("http://example.com")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected caches to be keyed by base url, got %+v", other)
	}
}

package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cinemahall-cli/model"
	"cinemahall-cli/store"
)

func setTestHome(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
	for _, key := range []string{"CINEMA_API_URL", "CINEMA_USER_EMAIL", "CINEMA_POLL_INTERVAL", "CINEMA_HTTP_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "v1.2.3", Commit: "abc123"})
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "cinemahall-cli v1.2.3 (abc123)" {
		t.Fatalf("unexpected version output: %q", got)
	}
}

func TestTicketsCmd_ListsRemoteBookings(t *testing.T) {
	setTestHome(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/my-bookings" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("user_email"); got != "me@example.com" {
			t.Fatalf("unexpected user_email: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"movie_title": "Inception", "booking_code": "a1b2c3d4", "seats": ["A1", "A2"], "date": "2026-02-03 19:00"}]`))
	}))
	defer server.Close()

	var out bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "dev", Commit: "none"})
	root.SetOut(&out)
	root.SetArgs([]string{"tickets", "--api", server.URL, "--email", "me@example.com"})

	if err := root.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, want := range []string{"Inception", "A1B2C3D4", "A1, A2"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestTicketsCmd_FlagsOverrideInvalidEnv(t *testing.T) {
	setTestHome(t)
	t.Setenv("CINEMA_API_URL", "ftp://cinema")
	t.Setenv("CINEMA_USER_EMAIL", "nobody")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_email"); got != "me@example.com" {
			t.Fatalf("unexpected user_email: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	var out bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "dev", Commit: "none"})
	root.SetOut(&out)
	root.SetArgs([]string{"tickets", "--api", server.URL, "--email", "me@example.com"})

	if err := root.Execute(); err != nil {
		t.Fatalf("expected flags to replace invalid environment values, got %v", err)
	}
	if !strings.Contains(out.String(), "No bookings found.") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestTicketsCmd_LocalHistory(t *testing.T) {
	setTestHome(t)
	if err := store.RememberBooking(model.Booking{Code: "ffff0000", MovieTitle: "Dune", Seats: []string{"C4"}, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("remember booking: %v", err)
	}

	var out bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "dev", Commit: "none"})
	root.SetOut(&out)
	root.SetArgs([]string{"tickets", "--local"})

	if err := root.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out.String(), "FFFF0000") || !strings.Contains(out.String(), "Dune") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestTicketsCmd_RejectsInvalidAPIURL(t *testing.T) {
	setTestHome(t)
	var out bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "dev", Commit: "none"})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"tickets", "--api", "localhost:8080"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for api url without scheme")
	}
}

func TestRenderTickets_Empty(t *testing.T) {
	var out bytes.Buffer
	renderTickets(&out, nil)
	if got := strings.TrimSpace(out.String()); got != "No bookings found." {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := validateEmail("test@example.com"); err != nil {
		t.Fatalf("expected valid e-mail, got %v", err)
	}
	for _, input := range []string{"", "  ", "not-an-email"} {
		if err := validateEmail(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

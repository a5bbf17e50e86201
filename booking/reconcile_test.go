package booking

import (
	"testing"

	"cinemahall-cli/model"
)

type members map[int]bool

func (m members) Contains(id int) bool { return m[id] }

func TestReconcile_Precedence(t *testing.T) {
	seats := []model.Seat{
		{Id: 1, Row: "A", Number: 1, Status: model.SeatAvailable},
		{Id: 2, Row: "A", Number: 2, Status: model.SeatSold},
		{Id: 3, Row: "A", Number: 3, Status: "held"},
		{Id: 4, Row: "A", Number: 4, Status: "Sold"},
	}

	t.Run("no hold", func(t *testing.T) {
		got := Reconcile(seats, members{1: true, 2: true}, false)
		want := map[int]DisplayStatus{1: DisplaySelected, 2: DisplaySold, 3: DisplayHeld, 4: DisplaySold}
		for id, status := range want {
			if got.Display[id] != status {
				t.Fatalf("seat %d: expected %s, got %s", id, status, got.Display[id])
			}
		}
		if len(got.Raced) != 1 || got.Raced[0].Id != 2 {
			t.Fatalf("expected seat 2 to race, got %+v", got.Raced)
		}
	})

	t.Run("hold active", func(t *testing.T) {
		got := Reconcile(seats, members{1: true, 2: true, 3: true}, true)
		for _, id := range []int{1, 2, 3} {
			if got.Display[id] != DisplaySelected {
				t.Fatalf("seat %d: expected selected under hold, got %s", id, got.Display[id])
			}
		}
		if got.Display[4] != DisplaySold {
			t.Fatalf("seat 4: expected sold, got %s", got.Display[4])
		}
		if len(got.Raced) != 0 {
			t.Fatalf("expected no races under hold, got %+v", got.Raced)
		}
	})
}

func TestReconcile_NilSelection(t *testing.T) {
	got := Reconcile([]model.Seat{{Id: 1, Status: "AVAILABLE"}}, nil, false)
	if got.Display[1] != DisplayAvailable {
		t.Fatalf("expected available, got %s", got.Display[1])
	}
}

func TestBuildLayout_RowsAndCategoryMarkers(t *testing.T) {
	seats := []model.Seat{
		{Id: 5, Row: "C", Number: 1, Category: "Premium", Price: 15},
		{Id: 1, Row: "A", Number: 1, Category: "Standard", Price: 10},
		{Id: 2, Row: "A", Number: 2, Category: "Standard", Price: 10},
		{Id: 3, Row: "B", Number: 1, Category: "Standard", Price: 10},
		{Id: 6, Row: "D", Number: 1, Category: "VIP", Price: 25},
	}

	layout := BuildLayout(7, seats)
	if len(layout.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(layout.Rows))
	}
	labels := ""
	for _, row := range layout.Rows {
		labels += row.Label
	}
	if labels != "ABCD" {
		t.Fatalf("expected sorted rows, got %s", labels)
	}
	if layout.Rows[0].Marker != nil || layout.Rows[1].Marker != nil {
		t.Fatal("expected no marker before the first category change")
	}
	if m := layout.Rows[2].Marker; m == nil || m.Label() != "Premium - $15" {
		t.Fatalf("unexpected marker on row C: %+v", m)
	}
	if m := layout.Rows[3].Marker; m == nil || m.Label() != "VIP - $25" {
		t.Fatalf("unexpected marker on row D: %+v", m)
	}
	if got := layout.Rows[0].Seats; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected seats in row A: %v", got)
	}
}

func TestLayout_UpdateKeepsStructure(t *testing.T) {
	layout := BuildLayout(7, []model.Seat{
		{Id: 1, Row: "A", Number: 1, Status: model.SeatAvailable},
		{Id: 2, Row: "A", Number: 2, Status: model.SeatAvailable},
	})

	unknown := layout.Update([]model.Seat{
		{Id: 1, Row: "A", Number: 1, Status: model.SeatSold},
		{Id: 9, Row: "Z", Number: 9, Status: model.SeatAvailable},
	})
	if unknown != 1 {
		t.Fatalf("expected 1 unknown seat, got %d", unknown)
	}
	if seat, _ := layout.Seat(1); seat.Status != model.SeatSold {
		t.Fatalf("expected seat 1 updated, got %+v", seat)
	}
	if seat, _ := layout.Seat(2); seat.Status != model.SeatAvailable {
		t.Fatalf("expected missing seat to keep its status, got %+v", seat)
	}
	if _, ok := layout.Seat(9); ok {
		t.Fatal("expected new seat not to be added")
	}
	if len(layout.Rows) != 1 || layout.Len() != 2 {
		t.Fatalf("expected structure unchanged, got %+v", layout.Rows)
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := map[string]string{
		"5m0s":    "05:00",
		"4m59.9s": "04:59",
		"61s":     "01:01",
		"0s":      "00:00",
		"-3s":     "00:00",
	}
	for in, want := range cases {
		d := mustDuration(t, in)
		if got := FormatCountdown(d); got != want {
			t.Fatalf("FormatCountdown(%s) = %s, want %s", in, got, want)
		}
	}
}

package booking

import "cinemahall-cli/model"

// DisplayStatus is what the seat map shows for a seat.
type DisplayStatus int

const (
	DisplayUnknown DisplayStatus = iota
	DisplayAvailable
	DisplayHeld
	DisplaySold
	DisplaySelected
)

func (d DisplayStatus) String() string {
	switch d {
	case DisplayAvailable:
		return "available"
	case DisplayHeld:
		return "held"
	case DisplaySold:
		return "sold"
	case DisplaySelected:
		return "selected"
	default:
		return "unknown"
	}
}

// DisplayFor maps a raw server status onto its display status.
func DisplayFor(status model.SeatStatus) DisplayStatus {
	switch status.Normalize() {
	case model.SeatAvailable:
		return DisplayAvailable
	case model.SeatHeld:
		return DisplayHeld
	case model.SeatSold:
		return DisplaySold
	default:
		return DisplayUnknown
	}
}

// Membership answers whether a seat is in the local selection.
type Membership interface {
	Contains(id int) bool
}

// Reconciliation is the outcome of merging one server snapshot with the
// local selection.
type Reconciliation struct {
	Display map[int]DisplayStatus
	// Raced lists selected seats the server reports as taken while no hold
	// covers them. They must leave the selection.
	Raced []model.Seat
}

// Reconcile derives the display status of every seat in the snapshot.
// Precedence:
//  1. selected and hold active: selected
//  2. selected, no hold, available: selected
//  3. selected, no hold, not available: raced, shown with its server status
//  4. otherwise the server status
//
// Reconcile does not mutate the selection; the caller removes raced seats.
func Reconcile(seats []model.Seat, selection Membership, holdActive bool) Reconciliation {
	out := Reconciliation{Display: make(map[int]DisplayStatus, len(seats))}
	for _, seat := range seats {
		selected := selection != nil && selection.Contains(seat.Id)
		switch {
		case selected && holdActive:
			out.Display[seat.Id] = DisplaySelected
		case selected && seat.Status.Available():
			out.Display[seat.Id] = DisplaySelected
		case selected:
			out.Raced = append(out.Raced, seat)
			out.Display[seat.Id] = DisplayFor(seat.Status)
		default:
			out.Display[seat.Id] = DisplayFor(seat.Status)
		}
	}
	return out
}

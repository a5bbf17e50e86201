package booking

import "cinemahall-cli/model"

// SelectedSeat is the part of a seat the selection needs to price a booking.
type SelectedSeat struct {
	ID    int
	Price int
}

// Selection is a point-in-time copy of the selected seats.
type Selection struct {
	Seats []SelectedSeat
	Count int
	Total int
}

// SelectionStore holds the seats the user intends to book, in the order
// they were picked. A seat id appears at most once.
type SelectionStore struct {
	seats  []SelectedSeat
	member map[int]bool
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{member: make(map[int]bool)}
}

// Toggle adds the seat when it is not selected and removes it otherwise.
// Both directions are rejected while frozen (a hold is active or pending);
// adding is also rejected unless the seat's server status is available.
// It reports whether the seat is selected afterwards.
func (s *SelectionStore) Toggle(id int, price int, status model.SeatStatus, frozen bool) (bool, error) {
	if frozen {
		return s.member[id], ErrRejected
	}
	if s.member[id] {
		s.remove(id)
		return false, nil
	}
	if !status.Available() {
		return false, ErrRejected
	}
	s.seats = append(s.seats, SelectedSeat{ID: id, Price: price})
	s.member[id] = true
	return true, nil
}

// ForceRemove drops the seat regardless of state. It reports whether the
// seat was selected.
func (s *SelectionStore) ForceRemove(id int) bool {
	if !s.member[id] {
		return false
	}
	s.remove(id)
	return true
}

func (s *SelectionStore) Contains(id int) bool {
	return s.member[id]
}

func (s *SelectionStore) Len() int {
	return len(s.seats)
}

func (s *SelectionStore) IDs() []int {
	ids := make([]int, 0, len(s.seats))
	for _, seat := range s.seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func (s *SelectionStore) Snapshot() Selection {
	out := Selection{
		Seats: make([]SelectedSeat, len(s.seats)),
		Count: len(s.seats),
	}
	copy(out.Seats, s.seats)
	for _, seat := range s.seats {
		out.Total += seat.Price
	}
	return out
}

func (s *SelectionStore) Clear() {
	s.seats = nil
	s.member = make(map[int]bool)
}

func (s *SelectionStore) remove(id int) {
	for i, seat := range s.seats {
		if seat.ID == id {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			break
		}
	}
	delete(s.member, id)
}

package booking

import (
	"fmt"
	"sort"

	"cinemahall-cli/model"
)

// CategoryMarker separates rows whose seat category differs from the row
// above.
type CategoryMarker struct {
	Category string
	Price    int
}

func (c CategoryMarker) Label() string {
	return fmt.Sprintf("%s - $%d", c.Category, c.Price)
}

type LayoutRow struct {
	Label  string
	Marker *CategoryMarker
	Seats  []int
}

// Layout is the seat map structure built from the first snapshot of a
// show. Later snapshots only refresh seat records; rows and seat order
// never change.
type Layout struct {
	ShowID int
	Rows   []LayoutRow
	seats  map[int]model.Seat
}

// BuildLayout groups seats by row, sorts rows lexicographically and
// inserts a category marker whenever a row's category differs from the
// previous row's. Seats keep the server's order within a row.
func BuildLayout(showID int, seats []model.Seat) *Layout {
	layout := &Layout{
		ShowID: showID,
		seats:  make(map[int]model.Seat, len(seats)),
	}

	byRow := map[string][]model.Seat{}
	for _, seat := range seats {
		if _, dup := layout.seats[seat.Id]; dup {
			continue
		}
		layout.seats[seat.Id] = seat
		byRow[seat.Row] = append(byRow[seat.Row], seat)
	}

	labels := make([]string, 0, len(byRow))
	for label := range byRow {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	lastCategory := ""
	for _, label := range labels {
		rowSeats := byRow[label]
		row := LayoutRow{Label: label, Seats: make([]int, 0, len(rowSeats))}
		category := rowSeats[0].Category
		if category != lastCategory && lastCategory != "" {
			row.Marker = &CategoryMarker{Category: category, Price: rowSeats[0].Price}
		}
		lastCategory = category
		for _, seat := range rowSeats {
			row.Seats = append(row.Seats, seat.Id)
		}
		layout.Rows = append(layout.Rows, row)
	}
	return layout
}

// Update refreshes the records of seats already in the layout and returns
// how many seats in the snapshot were unknown to it. Unknown seats are not
// added and seats missing from the snapshot keep their last record.
func (l *Layout) Update(seats []model.Seat) int {
	unknown := 0
	for _, seat := range seats {
		if _, ok := l.seats[seat.Id]; !ok {
			unknown++
			continue
		}
		l.seats[seat.Id] = seat
	}
	return unknown
}

func (l *Layout) Seat(id int) (model.Seat, bool) {
	seat, ok := l.seats[id]
	return seat, ok
}

func (l *Layout) Len() int {
	return len(l.seats)
}

// Known filters a snapshot down to the seats the layout holds.
func (l *Layout) Known(seats []model.Seat) []model.Seat {
	known := make([]model.Seat, 0, len(seats))
	for _, seat := range seats {
		if _, ok := l.seats[seat.Id]; ok {
			known = append(known, seat)
		}
	}
	return known
}

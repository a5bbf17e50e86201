package model

import (
	"strconv"
	"strings"
)

// SeatStatus is the server-reported availability of a seat.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatHeld      SeatStatus = "HELD"
	SeatSold      SeatStatus = "SOLD"
)

// ParseSeatStatus maps a raw status case-insensitively. Anything
// unrecognised is reported as not ok.
func ParseSeatStatus(raw string) (SeatStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "AVAILABLE":
		return SeatAvailable, true
	case "HELD":
		return SeatHeld, true
	case "SOLD":
		return SeatSold, true
	default:
		return SeatStatus(raw), false
	}
}

// Normalize returns the canonical upper-case form of s.
func (s SeatStatus) Normalize() SeatStatus {
	status, _ := ParseSeatStatus(string(s))
	return status
}

func (s SeatStatus) Available() bool {
	return s.Normalize() == SeatAvailable
}

type Seat struct {
	Id       int        `json:"id"`
	Row      string     `json:"row"`
	Number   int        `json:"number"`
	Category string     `json:"category"`
	Price    int        `json:"price"`
	Status   SeatStatus `json:"status"`
}

// Label is the row+number form used in notices and booking cards.
func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}

package model

import "time"

type HoldRequest struct {
	ShowId    int    `json:"show_id"`
	SeatIds   []int  `json:"seat_ids"`
	UserEmail string `json:"user_email"`
}

type HoldResponse struct {
	BookingId int       `json:"booking_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConfirmRequest struct {
	BookingId int `json:"booking_id"`
}

type ConfirmResponse struct {
	Status      string   `json:"status"`
	BookingCode string   `json:"booking_code"`
	MovieTitle  string   `json:"movie_title"`
	Seats       []string `json:"seats"`
}

// Booking is the confirmed result of a hold. It never changes once built.
type Booking struct {
	Code       string    `json:"booking_code"`
	MovieTitle string    `json:"movie_title"`
	Seats      []string  `json:"seats"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingRecord is one entry of the user's booking history as listed by the API.
type BookingRecord struct {
	MovieTitle  string   `json:"movie_title"`
	BookingCode string   `json:"booking_code"`
	Seats       []string `json:"seats"`
	Date        string   `json:"date"`
}

// Record converts a locally remembered booking into the listing shape.
func (b Booking) Record() BookingRecord {
	date := ""
	if !b.CreatedAt.IsZero() {
		date = b.CreatedAt.Local().Format("2006-01-02 15:04")
	}
	return BookingRecord{
		MovieTitle:  b.MovieTitle,
		BookingCode: b.Code,
		Seats:       b.Seats,
		Date:        date,
	}
}

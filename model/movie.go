package model

import "fmt"

type Movie struct {
	Id        int    `json:"id"`
	ShowId    int    `json:"show_id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
	Duration  int    `json:"duration"`
}

// DurationLabel renders the runtime (minutes) as "2h 28m".
func (m Movie) DurationLabel() string {
	return fmt.Sprintf("%dh %dm", m.Duration/60, m.Duration%60)
}

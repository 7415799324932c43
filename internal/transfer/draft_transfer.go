package transfer

import "time"

type Draft struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Hours       float64   `json:"hours"`
	Tags        Tags      `json:"tags"`
	PublishDate string    `json:"publish_date"`
	SavedAt     time.Time `json:"saved_at"`
}

package transfer

import "time"

type HoursEntry struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
}

type WeeklyHours struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalHours float64   `json:"total_hours"`
	Entries    int       `json:"entries"`
}

type HoursSummary struct {
	Entries           []HoursEntry  `json:"entries"`
	Weeks             []WeeklyHours `json:"weeks"`
	HoursCompleted    float64       `json:"hours_completed"`
	HoursRemaining    float64       `json:"hours_remaining"`
	TotalRequired     float64       `json:"total_required"`
	CompletionPercent int           `json:"completion_percentage"`
}

package model

import "time"

type Submission struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user"`
	Name           string    `json:"name"`
	SolveMethod    string    `json:"solve_method"`
	TimeComplexity string    `json:"time_complexity"`
	Difficulty     string    `json:"difficulty"` // Empty when the user skipped it
	CreatedAt      time.Time `json:"created_at"`
}

// DateRange is a half-open [From, To) interval over Submission.CreatedAt.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayOf returns the calendar day containing t, in t's location.
func DayOf(t time.Time) DateRange {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return DateRange{From: from, To: from.AddDate(0, 0, 1)}
}

// Package habit holds the habit domain model and the pure streak and
// statistics logic. Functions here take a snapshot in and return a new value
// out; persistence and clocks belong to the calling service.
package habit

import "time"

// Frequency is how often a habit is meant to be completed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Habit is a tracked habit owned by a single user.
type Habit struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Name          string      `json:"name"`
	Frequency     Frequency   `json:"frequency"`
	Streak        int         `json:"streak"`
	LongestStreak int         `json:"longest_streak"`
	LastCompleted *time.Time  `json:"last_completed_date"`
	History       []time.Time `json:"history"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

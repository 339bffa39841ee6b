// Package tracker holds the simple dated metric records: hydration, sleep,
// subscriptions and the gratitude list. These carry no derived state; all
// aggregation over them happens in the services.
package tracker

import "time"

// Hydration is one day's water intake. At most one record exists per
// (user, date); the date is a calendar-day bucket.
type Hydration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Cups      int       `json:"cups"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sleep is one recorded night of sleep.
type Sleep struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Hours     float64   `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxSleepHours bounds a single sleep record.
const MaxSleepHours = 24

// Subscription is a recurring monthly cost.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Gratitude is a user's current list of gratitude items, replaced wholesale
// on every update.
type Gratitude struct {
	UserID    string    `json:"user_id"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultGratitudeItems seed a user's list on first read.
var DefaultGratitudeItems = []string{"My Health", "Coffee in the morning", "Coding"}

// Package wellness models the daily wellness checklist: a per-user, per-date
// mapping from checklist-item label to completion boolean, plus an ordered
// item configuration that is independent of the recorded states.
package wellness

import (
	"sort"
	"time"
)

// DefaultConfig seeds a user's checklist on first read.
var DefaultConfig = []string{
	"Take Vitamins",
	"10m Stretch",
	"Sun Exposure",
	"No Sugar",
	"Read 10 pages",
}

// State is one date's completion map. Labels may reference config items that
// no longer exist; recorded states are never cascaded on config edits.
type State map[string]bool

// Checklist is the stored wellness document for one user: the configured
// item labels and every recorded daily state keyed by YYYY-MM-DD date.
type Checklist struct {
	UserID      string           `json:"user_id"`
	Config      []string         `json:"config"`
	DailyStates map[string]State `json:"daily_states"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// HistoryEntry is one recorded date with its per-entry completion counts.
type HistoryEntry struct {
	Date      string `json:"date"`
	State     State  `json:"state"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// Range bounds a history query. Empty bounds are open; both are inclusive.
type Range struct {
	Start string
	End   string
}

// Contains reports whether the YYYY-MM-DD date falls inside the range.
// Lexicographic comparison is date order for this layout.
func (r Range) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// BuildHistory projects recorded daily states into history entries, dropping
// dates outside the range and sorting by date descending. Counts are derived
// at read time; nothing is recomputed or stored.
func BuildHistory(states map[string]State, rng Range) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(states))
	for date, state := range states {
		if !rng.Contains(date) {
			continue
		}
		entry := HistoryEntry{Date: date, State: state, Total: len(state)}
		for _, done := range state {
			if done {
				entry.Completed++
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries
}

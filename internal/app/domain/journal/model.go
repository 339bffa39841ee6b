// Package journal models journal entries and their mood aggregations.
package journal

import (
	"math"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/series"
)

// Mood bounds for an entry.
const (
	MinMood = 1
	MaxMood = 5
)

// Entry is one journal entry owned by a single user.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      int       `json:"mood"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary aggregates mood across a set of entries.
type Summary struct {
	TotalEntries int     `json:"total_entries"`
	AverageMood  float64 `json:"average_mood"`
	HighestMood  int     `json:"highest_mood"`
	LowestMood   int     `json:"lowest_mood"`
}

// MoodCount is one bucket of the mood distribution.
type MoodCount struct {
	Mood  int `json:"mood"`
	Count int `json:"count"`
}

// Trend describes how recent moods compare to older ones.
type Trend string

const (
	TrendImproving    Trend = "Improving"
	TrendDeclining    Trend = "Declining"
	TrendStable       Trend = "Stable"
	TrendInsufficient Trend = "Insufficient data"
)

// Summarize reduces entries to a mood summary. Pure; order-independent.
func Summarize(entries []Entry) Summary {
	summary := Summary{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return summary
	}

	mood := func(e Entry) float64 { return float64(e.Mood) }
	summary.AverageMood = series.Average(entries, mood)
	low, high := series.MinMax(entries, mood)
	summary.LowestMood = int(low)
	summary.HighestMood = int(high)
	return summary
}

// Distribution counts entries per mood value, ascending by mood.
func Distribution(entries []Entry) []MoodCount {
	counts := make([]MoodCount, 0, MaxMood)
	for m := MinMood; m <= MaxMood; m++ {
		n := len(series.Filter(entries, func(e Entry) bool { return e.Mood == m }))
		if n > 0 {
			counts = append(counts, MoodCount{Mood: m, Count: n})
		}
	}
	return counts
}

// MoodTrend compares the average mood of the more recent half of entries
// against the older half. Entries must be sorted by date descending, which
// is how every store lists them. A shift of more than 0.5 either way flips
// the trend off Stable.
func MoodTrend(entries []Entry) Trend {
	if len(entries) < 2 {
		return TrendInsufficient
	}

	mood := func(e Entry) float64 { return float64(e.Mood) }
	split := int(math.Ceil(float64(len(entries)) / 2))
	recent := series.Average(entries[:split], mood)
	older := series.Average(entries[split:], mood)

	switch diff := recent - older; {
	case diff > 0.5:
		return TrendImproving
	case diff < -0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

package habit

import (
	"math"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/series"
)

// Stats is a cross-habit statistics summary for one user.
type Stats struct {
	TotalHabits          int `json:"total_habits"`
	ActiveHabits         int `json:"active_habits"`
	TotalStreak          int `json:"total_streak"`
	AverageStreak        int `json:"average_streak"`
	LongestStreakOverall int `json:"longest_streak_overall"`
	CompletionRate       int `json:"completion_rate"`
}

// completionWindowDays is the trailing window used for the completion rate.
const completionWindowDays = 7

// ComputeStats reduces a set of habits to summary statistics relative to the
// given instant. It is a pure function: computing it twice over the same
// input yields identical output.
func ComputeStats(habits []Habit, now time.Time) Stats {
	stats := Stats{TotalHabits: len(habits)}

	for _, h := range habits {
		if h.ActiveAt(now) {
			stats.ActiveHabits++
		}
		stats.TotalStreak += h.Streak
		if h.LongestStreak > stats.LongestStreakOverall {
			stats.LongestStreakOverall = h.LongestStreak
		}
	}

	if len(habits) == 0 {
		return stats
	}

	stats.AverageStreak = roundHalfUp(float64(stats.TotalStreak) / float64(len(habits)))

	windowStart := now.Add(-completionWindowDays * 24 * time.Hour)
	totalPossible := completionWindowDays * len(habits)
	actual := 0
	for _, h := range habits {
		actual += series.CountSince(h.History, func(t time.Time) time.Time { return t }, windowStart)
	}
	if totalPossible > 0 {
		stats.CompletionRate = roundHalfUp(100 * float64(actual) / float64(totalPossible))
	}

	return stats
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

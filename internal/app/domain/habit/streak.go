package habit

import (
	"time"

	"github.com/nemesis-app/nemesis-server/internal/dateutil"
)

// Outcome describes the effect of a completion event.
type Outcome string

const (
	// OutcomeCompleted means the completion was recorded and the streak
	// recomputed.
	OutcomeCompleted Outcome = "completed"
	// OutcomeAlreadyCompleted means the habit was already completed on the
	// same calendar day and the call was a no-op.
	OutcomeAlreadyCompleted Outcome = "already_completed_today"
)

// Complete records a completion event at the given instant and returns the
// updated habit. Completing twice on the same calendar day is idempotent.
// A completion on the day after the last one extends the streak; any other
// gap — including a last-completed day in the future, which can appear after
// clock skew or a manual edit — starts a fresh streak of 1. The streak is
// never set to 0 by a completion.
func Complete(h Habit, now time.Time) (Habit, Outcome) {
	today := dateutil.Day(now)

	if h.LastCompleted != nil && dateutil.SameDay(*h.LastCompleted, today) {
		return h, OutcomeAlreadyCompleted
	}

	if h.LastCompleted != nil && dateutil.IsConsecutive(*h.LastCompleted, today) {
		h.Streak++
	} else {
		h.Streak = 1
	}

	if h.Streak > h.LongestStreak {
		h.LongestStreak = h.Streak
	}

	history := make([]time.Time, len(h.History), len(h.History)+1)
	copy(history, h.History)
	h.History = append(history, now)
	h.LastCompleted = &today

	return h, OutcomeCompleted
}

// ActiveAt reports whether the habit counts as active at the given instant:
// its last completion falls within the trailing three-day window, boundary
// inclusive.
func (h Habit) ActiveAt(now time.Time) bool {
	if h.LastCompleted == nil {
		return false
	}
	cutoff := now.Add(-3 * 24 * time.Hour)
	return !h.LastCompleted.Before(cutoff)
}

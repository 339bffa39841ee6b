package habit

import (
	"testing"
	"time"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestCompleteFirstEver(t *testing.T) {
	now := at(2024, 3, 10, 9)
	updated, outcome := Complete(Habit{Name: "read"}, now)

	if outcome != OutcomeCompleted {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeCompleted)
	}
	if updated.Streak != 1 || updated.LongestStreak != 1 {
		t.Fatalf("streak = %d, longest = %d, want 1/1", updated.Streak, updated.LongestStreak)
	}
	if updated.LastCompleted == nil || !updated.LastCompleted.Equal(at(2024, 3, 10, 0)) {
		t.Fatalf("last completed = %v, want day bucket", updated.LastCompleted)
	}
	if len(updated.History) != 1 || !updated.History[0].Equal(now) {
		t.Fatalf("history = %v, want [%v]", updated.History, now)
	}
}

func TestCompleteSameDayIdempotent(t *testing.T) {
	h, _ := Complete(Habit{Name: "read"}, at(2024, 3, 10, 9))

	again, outcome := Complete(h, at(2024, 3, 10, 22))
	if outcome != OutcomeAlreadyCompleted {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeAlreadyCompleted)
	}
	if again.Streak != h.Streak || again.LongestStreak != h.LongestStreak {
		t.Fatalf("streak fields changed on same-day repeat")
	}
	if len(again.History) != len(h.History) {
		t.Fatalf("history length changed on same-day repeat: %d -> %d", len(h.History), len(again.History))
	}
}

func TestCompleteConsecutiveDayIncrements(t *testing.T) {
	h, _ := Complete(Habit{Name: "read"}, at(2024, 3, 10, 9))
	h, _ = Complete(h, at(2024, 3, 11, 23))
	h, outcome := Complete(h, at(2024, 3, 12, 1))

	if outcome != OutcomeCompleted {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeCompleted)
	}
	if h.Streak != 3 || h.LongestStreak != 3 {
		t.Fatalf("streak = %d, longest = %d, want 3/3", h.Streak, h.LongestStreak)
	}
	if len(h.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(h.History))
	}
}

func TestCompleteGapResetsToOne(t *testing.T) {
	last := at(2024, 3, 10, 0)
	h := Habit{Streak: 14, LongestStreak: 14, LastCompleted: &last}

	for _, gap := range []int{2, 3, 30} {
		updated, outcome := Complete(h, at(2024, 3, 10+gap, 12))
		if outcome != OutcomeCompleted {
			t.Fatalf("gap %d: outcome = %s", gap, outcome)
		}
		if updated.Streak != 1 {
			t.Fatalf("gap %d: streak = %d, want 1", gap, updated.Streak)
		}
		if updated.LongestStreak != 14 {
			t.Fatalf("gap %d: longest = %d, want 14 preserved", gap, updated.LongestStreak)
		}
	}
}

func TestCompleteFutureLastCompletedResets(t *testing.T) {
	// A last-completed day ahead of "now" (clock skew or manual edit) is
	// treated as non-consecutive and starts a fresh streak.
	future := at(2024, 3, 20, 0)
	h := Habit{Streak: 5, LongestStreak: 9, LastCompleted: &future}

	updated, outcome := Complete(h, at(2024, 3, 15, 10))
	if outcome != OutcomeCompleted {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeCompleted)
	}
	if updated.Streak != 1 {
		t.Fatalf("streak = %d, want 1", updated.Streak)
	}
	if updated.LongestStreak != 9 {
		t.Fatalf("longest = %d, want 9", updated.LongestStreak)
	}
}

func TestCompleteInvariants(t *testing.T) {
	// longest >= streak >= 0 must hold after any sequence of completions.
	h := Habit{Name: "run"}
	instants := []time.Time{
		at(2024, 1, 1, 8),
		at(2024, 1, 2, 8),
		at(2024, 1, 2, 20),
		at(2024, 1, 3, 8),
		at(2024, 1, 7, 8),
		at(2024, 1, 8, 8),
		at(2024, 1, 9, 8),
		at(2024, 1, 9, 9),
		at(2024, 2, 1, 8),
	}

	for _, now := range instants {
		h, _ = Complete(h, now)
		if h.Streak < 0 {
			t.Fatalf("streak went negative: %d", h.Streak)
		}
		if h.LongestStreak < h.Streak {
			t.Fatalf("longest %d < streak %d", h.LongestStreak, h.Streak)
		}
	}
	if h.LongestStreak != 3 {
		t.Fatalf("longest = %d, want 3", h.LongestStreak)
	}
	if len(h.History) != 7 {
		t.Fatalf("history length = %d, want 7 (same-day repeats skipped)", len(h.History))
	}
}

func TestCompleteDoesNotMutateInput(t *testing.T) {
	last := at(2024, 3, 10, 0)
	h := Habit{Streak: 2, LongestStreak: 4, LastCompleted: &last, History: []time.Time{at(2024, 3, 9, 7), at(2024, 3, 10, 7)}}

	updated, _ := Complete(h, at(2024, 3, 11, 7))

	if len(h.History) != 2 {
		t.Fatalf("input history mutated: %d entries", len(h.History))
	}
	if h.Streak != 2 || !h.LastCompleted.Equal(last) {
		t.Fatalf("input habit mutated")
	}
	if len(updated.History) != 3 {
		t.Fatalf("updated history length = %d, want 3", len(updated.History))
	}
}

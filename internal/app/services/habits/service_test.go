package habits

import (
	"context"
	"testing"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func TestCreateDefaultsToDaily(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	h, err := svc.Create(ctx, "u1", "read", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.Frequency != habit.FrequencyDaily {
		t.Fatalf("expected daily default, got %s", h.Frequency)
	}

	if _, err := svc.Create(ctx, "u1", "", habit.FrequencyDaily); err == nil {
		t.Fatal("expected validation error for empty name")
	}
	if _, err := svc.Create(ctx, "u1", "x", "hourly"); err == nil {
		t.Fatal("expected validation error for unknown frequency")
	}
}

func TestToggleAdvancesStreakAcrossDays(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	day := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return day })

	h, err := svc.Create(ctx, "u1", "read", habit.FrequencyDaily)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	h, outcome, err := svc.Toggle(ctx, "u1", h.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if outcome != habit.OutcomeCompleted || h.Streak != 1 {
		t.Fatalf("expected first completion streak 1, got %s streak %d", outcome, h.Streak)
	}

	// Same day again: idempotent.
	h, outcome, err = svc.Toggle(ctx, "u1", h.ID)
	if err != nil {
		t.Fatalf("toggle same day: %v", err)
	}
	if outcome != habit.OutcomeAlreadyCompleted || h.Streak != 1 {
		t.Fatalf("expected idempotent same-day toggle, got %s streak %d", outcome, h.Streak)
	}

	svc.WithClock(func() time.Time { return day.AddDate(0, 0, 1) })
	h, _, err = svc.Toggle(ctx, "u1", h.ID)
	if err != nil {
		t.Fatalf("toggle next day: %v", err)
	}
	if h.Streak != 2 || h.LongestStreak != 2 {
		t.Fatalf("expected streak 2 after consecutive day, got %d/%d", h.Streak, h.LongestStreak)
	}

	svc.WithClock(func() time.Time { return day.AddDate(0, 0, 4) })
	h, _, err = svc.Toggle(ctx, "u1", h.ID)
	if err != nil {
		t.Fatalf("toggle after gap: %v", err)
	}
	if h.Streak != 1 || h.LongestStreak != 2 {
		t.Fatalf("expected reset to 1 with longest 2, got %d/%d", h.Streak, h.LongestStreak)
	}
	if len(h.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(h.History))
	}
}

func TestListFilters(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	daily, err := svc.Create(ctx, "u1", "read", habit.FrequencyDaily)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "u1", "review", habit.FrequencyWeekly); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, err := svc.Toggle(ctx, "u1", daily.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	weekly, err := svc.List(ctx, "u1", ListFilter{Frequency: habit.FrequencyWeekly})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(weekly) != 1 || weekly[0].Name != "review" {
		t.Fatalf("expected one weekly habit, got %d", len(weekly))
	}

	active, err := svc.List(ctx, "u1", ListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != daily.ID {
		t.Fatalf("expected only the completed habit to be active, got %d", len(active))
	}
}

func TestOwnerIsolation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	h, err := svc.Create(ctx, "u1", "read", habit.FrequencyDaily)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "u2", h.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
	if _, _, err := svc.Toggle(ctx, "u2", h.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found toggling other owner's habit, got %v", err)
	}
	if err := svc.Delete(ctx, "u2", h.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found deleting other owner's habit, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	h, err := svc.Create(ctx, "u1", "read", habit.FrequencyDaily)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := svc.Toggle(ctx, "u1", h.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	stats, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalHabits != 1 || stats.ActiveHabits != 1 || stats.TotalStreak != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

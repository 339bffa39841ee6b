package journals

import (
	"context"
	"testing"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func TestCreateValidatesMoodAndText(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", 0, "text", time.Time{}); err == nil {
		t.Fatal("expected error for mood 0")
	}
	if _, err := svc.Create(ctx, "u1", 6, "text", time.Time{}); err == nil {
		t.Fatal("expected error for mood 6")
	}
	if _, err := svc.Create(ctx, "u1", 3, "   ", time.Time{}); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestCreateDefaultsDateToNow(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	e, err := svc.Create(ctx, "u1", 4, "good day", time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !e.Date.Equal(now) {
		t.Fatalf("expected date %v, got %v", now, e.Date)
	}
}

func TestListFiltersAndLimit(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		mood := i%5 + 1
		if _, err := svc.Create(ctx, "u1", mood, "entry", base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	start := base.AddDate(0, 0, 2)
	entries, err := svc.List(ctx, "u1", storage.JournalFilter{Start: &start}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries from start bound, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Fatal("expected newest-first ordering")
		}
	}

	limited, err := svc.List(ctx, "u1", storage.JournalFilter{}, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 entries with limit, got %d", len(limited))
	}
}

func TestStats(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	for i, mood := range []int{2, 2, 4, 5} {
		if _, err := svc.Create(ctx, "u1", mood, "entry", base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Summary.TotalEntries != 4 {
		t.Fatalf("expected 4 entries, got %d", stats.Summary.TotalEntries)
	}
	if stats.Summary.AverageMood != 3.25 {
		t.Fatalf("expected average 3.25, got %v", stats.Summary.AverageMood)
	}
	if stats.Trend != journal.TrendImproving {
		t.Fatalf("expected improving trend, got %s", stats.Trend)
	}
}

func TestOwnerIsolation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	e, err := svc.Create(ctx, "u1", 3, "mine", time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, "u2", e.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
}

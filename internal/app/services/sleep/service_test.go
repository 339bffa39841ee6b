package sleep

import (
	"context"
	"testing"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func TestCreateValidatesHours(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", -1, time.Time{}); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for negative hours, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", 25, time.Time{}); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for 25 hours, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", 24, time.Time{}); err != nil {
		t.Fatalf("expected 24 hours to be accepted, got %v", err)
	}
}

func TestCreateDefaultsDateToNow(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	now := time.Date(2026, 4, 2, 7, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	rec, err := svc.Create(ctx, "u1", 7.5, time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !rec.Date.Equal(now) {
		t.Fatalf("expected date %v, got %v", now, rec.Date)
	}
}

func TestUpdateKeepsDateWhenZero(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	date := time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC)

	rec, err := svc.Create(ctx, "u1", 6, date)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, "u1", rec.ID, 8, time.Time{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Hours != 8 {
		t.Fatalf("expected 8 hours, got %v", updated.Hours)
	}
	if !updated.Date.Equal(date) {
		t.Fatalf("expected date to stay %v, got %v", date, updated.Date)
	}

	if _, err := svc.Update(ctx, "u2", rec.ID, 5, time.Time{}); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
}

func TestLatestAndHistory(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		if _, err := svc.Create(ctx, "u1", float64(6+i), base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	latest, err := svc.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Hours != 9 {
		t.Fatalf("expected latest record to have 9 hours, got %v", latest.Hours)
	}

	start := base.AddDate(0, 0, 1)
	records, err := svc.History(ctx, "u1", storage.DateRange{Start: &start}, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Hours != 9 || records[1].Hours != 8 {
		t.Fatalf("expected newest first, got %v then %v", records[0].Hours, records[1].Hours)
	}

	if _, err := svc.Latest(ctx, "u2"); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for empty owner, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "u1", 7, time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, "u1", rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "u1", rec.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for repeated delete, got %v", err)
	}
}

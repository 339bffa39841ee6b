package settings

import (
	"context"
	"testing"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	stores := Stores{
		Users:         store,
		Settings:      store,
		Habits:        store,
		Journals:      store,
		Finances:      store,
		Wellness:      store,
		Gratitude:     store,
		Hydration:     store,
		Sleep:         store,
		Subscriptions: store,
		Purger:        store,
	}
	return New(stores, nil), store
}

func seedUser(t *testing.T, store *memory.Store) user.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), user.User{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestGetCreatesDefaults(t *testing.T) {
	svc, store := newService(t)
	u := seedUser(t, store)
	ctx := context.Background()

	settings, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defaults := user.DefaultSettings(u.ID)
	if settings.Theme != defaults.Theme || settings.Currency != defaults.Currency {
		t.Fatalf("expected default settings, got %+v", settings)
	}

	settings.Currency = "EUR"
	if _, err := svc.Update(ctx, u.ID, settings); err != nil {
		t.Fatalf("update: %v", err)
	}

	again, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Currency != "EUR" {
		t.Fatalf("expected persisted update, got %q", again.Currency)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	svc, store := newService(t)
	u := seedUser(t, store)
	ctx := context.Background()

	settings, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	settings.Theme = "light"
	settings.WeeklyDigest = false
	if _, err := svc.Update(ctx, u.ID, settings); err != nil {
		t.Fatalf("update: %v", err)
	}

	reset, err := svc.Reset(ctx, u.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	defaults := user.DefaultSettings(u.ID)
	if reset.Theme != defaults.Theme || reset.WeeklyDigest != defaults.WeeklyDigest {
		t.Fatalf("expected defaults after reset, got %+v", reset)
	}
}

func TestExportCollectsAllData(t *testing.T) {
	svc, store := newService(t)
	u := seedUser(t, store)
	ctx := context.Background()
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	if _, err := store.CreateHabit(ctx, habit.Habit{UserID: u.ID, Name: "Run", Frequency: habit.FrequencyDaily}); err != nil {
		t.Fatalf("seed habit: %v", err)
	}
	if _, err := store.CreateJournalEntry(ctx, journal.Entry{UserID: u.ID, Mood: 4, Text: "fine", Date: now}); err != nil {
		t.Fatalf("seed journal: %v", err)
	}
	if _, err := store.CreateFinanceRecord(ctx, finance.Record{UserID: u.ID, Type: finance.TypeExpense, Amount: 12, Category: "food", Date: now}); err != nil {
		t.Fatalf("seed finance: %v", err)
	}

	export, err := svc.ExportData(ctx, u.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !export.ExportedAt.Equal(now) {
		t.Fatalf("expected export timestamp %v, got %v", now, export.ExportedAt)
	}
	if export.User.ID != u.ID {
		t.Fatalf("expected user %s, got %s", u.ID, export.User.ID)
	}
	if len(export.Habits) != 1 || len(export.Journal) != 1 || len(export.Finance) != 1 {
		t.Fatalf("expected 1 record per domain, got %d/%d/%d", len(export.Habits), len(export.Journal), len(export.Finance))
	}
	if export.Wellness != nil {
		t.Fatal("expected wellness section to be omitted when never written")
	}
	if export.Settings.UserID != u.ID {
		t.Fatalf("expected settings to be auto-created for %s", u.ID)
	}
}

func TestDeleteAccountRequiresEmailConfirmation(t *testing.T) {
	svc, store := newService(t)
	u := seedUser(t, store)
	ctx := context.Background()

	if err := svc.DeleteAccount(ctx, u.ID, "wrong@example.com"); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for wrong email, got %v", err)
	}

	if err := svc.DeleteAccount(ctx, u.ID, "  ADA@example.com "); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := store.GetUser(ctx, u.ID); err == nil {
		t.Fatal("expected user to be gone after deletion")
	}
}

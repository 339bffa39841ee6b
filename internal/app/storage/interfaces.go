package storage

import (
	"context"
	"errors"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/wellness"
)

// ErrNotFound is returned when an entity does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("entity not found")

// ErrDuplicate is returned on uniqueness violations, e.g. registering an
// email twice or logging hydration twice for one day.
var ErrDuplicate = errors.New("duplicate entity")

// DateRange bounds a dated-record query. Nil bounds are open; both are
// inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// JournalFilter narrows a journal listing.
type JournalFilter struct {
	Start   *time.Time
	End     *time.Time
	MinMood int
	MaxMood int
}

// FinanceFilter narrows a finance listing.
type FinanceFilter struct {
	Start    *time.Time
	End      *time.Time
	Type     finance.Type
	Category string
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// SettingsStore persists per-user settings as a single document.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID string) (user.Settings, error)
	SaveSettings(ctx context.Context, s user.Settings) (user.Settings, error)
	DeleteSettings(ctx context.Context, userID string) error
}

// HabitStore persists habits. Listings are newest-first by creation time.
type HabitStore interface {
	CreateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error)
	UpdateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error)
	GetHabit(ctx context.Context, userID, id string) (habit.Habit, error)
	ListHabits(ctx context.Context, userID string) ([]habit.Habit, error)
	DeleteHabit(ctx context.Context, userID, id string) error
}

// JournalStore persists journal entries. Listings are newest-first by entry
// date.
type JournalStore interface {
	CreateJournalEntry(ctx context.Context, e journal.Entry) (journal.Entry, error)
	UpdateJournalEntry(ctx context.Context, e journal.Entry) (journal.Entry, error)
	GetJournalEntry(ctx context.Context, userID, id string) (journal.Entry, error)
	ListJournalEntries(ctx context.Context, userID string, filter JournalFilter) ([]journal.Entry, error)
	DeleteJournalEntry(ctx context.Context, userID, id string) error
}

// FinanceStore persists finance records. Listings are newest-first by record
// date.
type FinanceStore interface {
	CreateFinanceRecord(ctx context.Context, rec finance.Record) (finance.Record, error)
	UpdateFinanceRecord(ctx context.Context, rec finance.Record) (finance.Record, error)
	GetFinanceRecord(ctx context.Context, userID, id string) (finance.Record, error)
	ListFinanceRecords(ctx context.Context, userID string, filter FinanceFilter) ([]finance.Record, error)
	DeleteFinanceRecord(ctx context.Context, userID, id string) error
}

// WellnessStore persists one checklist document per user.
type WellnessStore interface {
	GetChecklist(ctx context.Context, userID string) (wellness.Checklist, error)
	SaveChecklist(ctx context.Context, c wellness.Checklist) (wellness.Checklist, error)
	DeleteChecklist(ctx context.Context, userID string) error
}

// GratitudeStore persists one gratitude list per user.
type GratitudeStore interface {
	GetGratitude(ctx context.Context, userID string) (tracker.Gratitude, error)
	SaveGratitude(ctx context.Context, g tracker.Gratitude) (tracker.Gratitude, error)
	DeleteGratitude(ctx context.Context, userID string) error
}

// HydrationStore persists hydration records, unique per (user, date).
type HydrationStore interface {
	UpsertHydration(ctx context.Context, h tracker.Hydration) (tracker.Hydration, error)
	GetHydrationByDate(ctx context.Context, userID string, date time.Time) (tracker.Hydration, error)
	ListHydration(ctx context.Context, userID string, rng DateRange) ([]tracker.Hydration, error)
	DeleteHydration(ctx context.Context, userID, id string) error
}

// SleepStore persists sleep records. Listings are newest-first by record
// date.
type SleepStore interface {
	CreateSleep(ctx context.Context, rec tracker.Sleep) (tracker.Sleep, error)
	UpdateSleep(ctx context.Context, rec tracker.Sleep) (tracker.Sleep, error)
	GetSleep(ctx context.Context, userID, id string) (tracker.Sleep, error)
	ListSleep(ctx context.Context, userID string, rng DateRange) ([]tracker.Sleep, error)
	DeleteSleep(ctx context.Context, userID, id string) error
}

// SubscriptionStore persists subscriptions. Listings are newest-first by
// creation time.
type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, sub tracker.Subscription) (tracker.Subscription, error)
	UpdateSubscription(ctx context.Context, sub tracker.Subscription) (tracker.Subscription, error)
	GetSubscription(ctx context.Context, userID, id string) (tracker.Subscription, error)
	ListSubscriptions(ctx context.Context, userID string) ([]tracker.Subscription, error)
	DeleteSubscription(ctx context.Context, userID, id string) error
}

// Purger removes everything a user owns in one shot, the user record
// included. Both backends implement it so account deletion stays atomic per
// store.
type Purger interface {
	PurgeUserData(ctx context.Context, userID string) error
}

// Package settings manages per-user preferences plus the account-level
// operations built on top of them: full data export and account deletion.
package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/wellness"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Stores bundles everything the settings service reads for export and
// deletes through for account removal.
type Stores struct {
	Users         storage.UserStore
	Settings      storage.SettingsStore
	Habits        storage.HabitStore
	Journals      storage.JournalStore
	Finances      storage.FinanceStore
	Wellness      storage.WellnessStore
	Gratitude     storage.GratitudeStore
	Hydration     storage.HydrationStore
	Sleep         storage.SleepStore
	Subscriptions storage.SubscriptionStore
	Purger        storage.Purger
}

// Export is the single JSON document returned by the data-export endpoint.
type Export struct {
	ExportedAt    time.Time              `json:"exported_at"`
	User          user.User              `json:"user"`
	Settings      user.Settings          `json:"settings"`
	Habits        []habit.Habit          `json:"habits"`
	Journal       []journal.Entry        `json:"journal"`
	Finance       []finance.Record       `json:"finance"`
	Wellness      *wellness.Checklist    `json:"wellness,omitempty"`
	Gratitude     []string               `json:"gratitude"`
	Hydration     []tracker.Hydration    `json:"hydration"`
	Sleep         []tracker.Sleep        `json:"sleep"`
	Subscriptions []tracker.Subscription `json:"subscriptions"`
}

// Service manages user settings and account lifecycle.
type Service struct {
	stores Stores
	log    *logger.Logger
	now    func() time.Time
}

// New constructs a settings service.
func New(stores Stores, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("settings")
	}
	return &Service{stores: stores, log: log, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) { s.now = now }

// Get returns the user's settings, creating the defaults on first read.
func (s *Service) Get(ctx context.Context, userID string) (user.Settings, error) {
	settings, err := s.stores.Settings.GetSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return user.Settings{}, apperrors.Internal("load settings", err)
	}

	created, err := s.stores.Settings.SaveSettings(ctx, user.DefaultSettings(userID))
	if err != nil {
		return user.Settings{}, apperrors.Internal("create default settings", err)
	}
	return created, nil
}

// Update replaces the user's preference fields wholesale.
func (s *Service) Update(ctx context.Context, userID string, settings user.Settings) (user.Settings, error) {
	settings.UserID = userID
	saved, err := s.stores.Settings.SaveSettings(ctx, settings)
	if err != nil {
		return user.Settings{}, apperrors.Internal("save settings", err)
	}
	return saved, nil
}

// Reset restores the defaults.
func (s *Service) Reset(ctx context.Context, userID string) (user.Settings, error) {
	saved, err := s.stores.Settings.SaveSettings(ctx, user.DefaultSettings(userID))
	if err != nil {
		return user.Settings{}, apperrors.Internal("reset settings", err)
	}
	s.log.WithField("user_id", userID).Info("settings reset to defaults")
	return saved, nil
}

// ExportData collects everything the user owns into one document. Missing
// single-document sections (wellness, gratitude) are simply omitted.
func (s *Service) ExportData(ctx context.Context, userID string) (Export, error) {
	u, err := s.stores.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Export{}, apperrors.NotFound("user")
		}
		return Export{}, apperrors.Internal("load user", err)
	}

	out := Export{ExportedAt: s.now().UTC(), User: u}

	if out.Settings, err = s.Get(ctx, userID); err != nil {
		return Export{}, err
	}
	if out.Habits, err = s.stores.Habits.ListHabits(ctx, userID); err != nil {
		return Export{}, apperrors.Internal("list habits", err)
	}
	if out.Journal, err = s.stores.Journals.ListJournalEntries(ctx, userID, storage.JournalFilter{}); err != nil {
		return Export{}, apperrors.Internal("list journal entries", err)
	}
	if out.Finance, err = s.stores.Finances.ListFinanceRecords(ctx, userID, storage.FinanceFilter{}); err != nil {
		return Export{}, apperrors.Internal("list finance records", err)
	}
	if out.Hydration, err = s.stores.Hydration.ListHydration(ctx, userID, storage.DateRange{}); err != nil {
		return Export{}, apperrors.Internal("list hydration records", err)
	}
	if out.Sleep, err = s.stores.Sleep.ListSleep(ctx, userID, storage.DateRange{}); err != nil {
		return Export{}, apperrors.Internal("list sleep records", err)
	}
	if out.Subscriptions, err = s.stores.Subscriptions.ListSubscriptions(ctx, userID); err != nil {
		return Export{}, apperrors.Internal("list subscriptions", err)
	}

	if checklist, err := s.stores.Wellness.GetChecklist(ctx, userID); err == nil {
		out.Wellness = &checklist
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Export{}, apperrors.Internal("load checklist", err)
	}
	if g, err := s.stores.Gratitude.GetGratitude(ctx, userID); err == nil {
		out.Gratitude = g.Items
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Export{}, apperrors.Internal("load gratitude list", err)
	}

	return out, nil
}

// DeleteAccount removes the user and all owned data. The caller must echo
// the account email to confirm.
func (s *Service) DeleteAccount(ctx context.Context, userID, confirmEmail string) error {
	u, err := s.stores.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("user")
		}
		return apperrors.Internal("load user", err)
	}

	if !strings.EqualFold(strings.TrimSpace(confirmEmail), u.Email) {
		return apperrors.Validation("confirmation email does not match account email")
	}

	if err := s.stores.Purger.PurgeUserData(ctx, userID); err != nil {
		return apperrors.Internal("purge user data", err)
	}
	s.log.WithField("user_id", userID).Warn("account deleted")
	return nil
}

// Package journals exposes journal entry CRUD and the mood statistics.
package journals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Stats bundles the journal aggregations for one user.
type Stats struct {
	Summary      journal.Summary     `json:"summary"`
	Distribution []journal.MoodCount `json:"distribution"`
	Trend        journal.Trend       `json:"trend"`
}

// Service manages journal entries for their owners.
type Service struct {
	store storage.JournalStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a journal service.
func New(store storage.JournalStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("journals")
	}
	return &Service{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func validate(mood int, text string) error {
	if mood < 1 || mood > 5 {
		return apperrors.Validation("mood must be between 1 and 5")
	}
	if strings.TrimSpace(text) == "" {
		return apperrors.Validation("text is required")
	}
	return nil
}

// Create records a new entry. A zero date defaults to now.
func (s *Service) Create(ctx context.Context, userID string, mood int, text string, date time.Time) (journal.Entry, error) {
	if err := validate(mood, text); err != nil {
		return journal.Entry{}, err
	}
	if date.IsZero() {
		date = s.now()
	}

	created, err := s.store.CreateJournalEntry(ctx, journal.Entry{
		UserID: userID,
		Mood:   mood,
		Text:   strings.TrimSpace(text),
		Date:   date,
	})
	if err != nil {
		return journal.Entry{}, apperrors.Internal("create journal entry", err)
	}
	s.log.WithField("entry_id", created.ID).WithField("user_id", userID).Info("journal entry created")
	return created, nil
}

// Get returns one entry owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (journal.Entry, error) {
	e, err := s.store.GetJournalEntry(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return journal.Entry{}, apperrors.NotFound("journal entry")
		}
		return journal.Entry{}, apperrors.Internal("load journal entry", err)
	}
	return e, nil
}

// List returns the user's entries, newest first. Limit 0 means no limit.
func (s *Service) List(ctx context.Context, userID string, filter storage.JournalFilter, limit int) ([]journal.Entry, error) {
	entries, err := s.store.ListJournalEntries(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.Internal("list journal entries", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Update edits an entry. A zero mood, empty text or zero date keep their
// current values.
func (s *Service) Update(ctx context.Context, userID, id string, mood int, text string, date time.Time) (journal.Entry, error) {
	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return journal.Entry{}, err
	}

	if mood != 0 {
		e.Mood = mood
	}
	if strings.TrimSpace(text) != "" {
		e.Text = strings.TrimSpace(text)
	}
	if !date.IsZero() {
		e.Date = date
	}
	if err := validate(e.Mood, e.Text); err != nil {
		return journal.Entry{}, err
	}

	updated, err := s.store.UpdateJournalEntry(ctx, e)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return journal.Entry{}, apperrors.NotFound("journal entry")
		}
		return journal.Entry{}, apperrors.Internal("update journal entry", err)
	}
	return updated, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteJournalEntry(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("journal entry")
		}
		return apperrors.Internal("delete journal entry", err)
	}
	return nil
}

// Stats aggregates the user's full journal into summary, distribution and
// trend.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	entries, err := s.store.ListJournalEntries(ctx, userID, storage.JournalFilter{})
	if err != nil {
		return Stats{}, apperrors.Internal("list journal entries", err)
	}
	return Stats{
		Summary:      journal.Summarize(entries),
		Distribution: journal.Distribution(entries),
		Trend:        journal.MoodTrend(entries),
	}, nil
}

// Package sleep tracks recorded nights of sleep.
package sleep

import (
	"context"
	"errors"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Service manages sleep records.
type Service struct {
	store storage.SleepStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a sleep service.
func New(store storage.SleepStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("sleep")
	}
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) { s.now = now }

func validateHours(hours float64) error {
	if hours < 0 || hours > tracker.MaxSleepHours {
		return apperrors.Validation("hours must be between 0 and 24")
	}
	return nil
}

// Create records a night of sleep. A zero date defaults to now.
func (s *Service) Create(ctx context.Context, userID string, hours float64, date time.Time) (tracker.Sleep, error) {
	if err := validateHours(hours); err != nil {
		return tracker.Sleep{}, err
	}
	if date.IsZero() {
		date = s.now()
	}

	rec, err := s.store.CreateSleep(ctx, tracker.Sleep{
		UserID: userID,
		Date:   date,
		Hours:  hours,
	})
	if err != nil {
		return tracker.Sleep{}, apperrors.Internal("create sleep record", err)
	}
	s.log.WithFields(map[string]interface{}{"user_id": userID, "hours": hours}).Info("sleep recorded")
	return rec, nil
}

// Update changes a record's hours and optionally its date.
func (s *Service) Update(ctx context.Context, userID, id string, hours float64, date time.Time) (tracker.Sleep, error) {
	if err := validateHours(hours); err != nil {
		return tracker.Sleep{}, err
	}

	rec, err := s.store.GetSleep(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tracker.Sleep{}, apperrors.NotFound("sleep record")
		}
		return tracker.Sleep{}, apperrors.Internal("load sleep record", err)
	}

	rec.Hours = hours
	if !date.IsZero() {
		rec.Date = date
	}

	updated, err := s.store.UpdateSleep(ctx, rec)
	if err != nil {
		return tracker.Sleep{}, apperrors.Internal("update sleep record", err)
	}
	return updated, nil
}

// Latest returns the most recent record by date.
func (s *Service) Latest(ctx context.Context, userID string) (tracker.Sleep, error) {
	records, err := s.store.ListSleep(ctx, userID, storage.DateRange{})
	if err != nil {
		return tracker.Sleep{}, apperrors.Internal("list sleep records", err)
	}
	if len(records) == 0 {
		return tracker.Sleep{}, apperrors.NotFound("sleep record")
	}
	return records[0], nil
}

// History lists records newest-first inside the optional range, truncated to
// limit when limit is positive.
func (s *Service) History(ctx context.Context, userID string, rng storage.DateRange, limit int) ([]tracker.Sleep, error) {
	records, err := s.store.ListSleep(ctx, userID, rng)
	if err != nil {
		return nil, apperrors.Internal("list sleep records", err)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Delete removes one record by id.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteSleep(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("sleep record")
		}
		return apperrors.Internal("delete sleep record", err)
	}
	return nil
}

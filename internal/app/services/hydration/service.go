// Package hydration tracks daily water intake, one record per calendar day.
package hydration

import (
	"context"
	"errors"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/dateutil"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Service manages hydration records.
type Service struct {
	store storage.HydrationStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a hydration service.
func New(store storage.HydrationStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("hydration")
	}
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) { s.now = now }

// Today returns the current day's record, creating a zero-cup one when none
// exists yet.
func (s *Service) Today(ctx context.Context, userID string) (tracker.Hydration, error) {
	today := dateutil.Day(s.now())
	rec, err := s.store.GetHydrationByDate(ctx, userID, today)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return tracker.Hydration{}, apperrors.Internal("load hydration record", err)
	}

	created, err := s.store.UpsertHydration(ctx, tracker.Hydration{
		UserID: userID,
		Date:   today,
		Cups:   0,
	})
	if err != nil {
		return tracker.Hydration{}, apperrors.Internal("create hydration record", err)
	}
	return created, nil
}

// SetToday sets the current day's cup count, upserting the day's record.
func (s *Service) SetToday(ctx context.Context, userID string, cups int) (tracker.Hydration, error) {
	if cups < 0 {
		return tracker.Hydration{}, apperrors.Validation("cups must be zero or greater")
	}

	rec, err := s.store.UpsertHydration(ctx, tracker.Hydration{
		UserID: userID,
		Date:   dateutil.Day(s.now()),
		Cups:   cups,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return tracker.Hydration{}, apperrors.Conflict("hydration record for this day already exists")
		}
		return tracker.Hydration{}, apperrors.Internal("save hydration record", err)
	}
	s.log.WithFields(map[string]interface{}{"user_id": userID, "cups": cups}).Info("hydration updated")
	return rec, nil
}

// History lists records newest-first inside the optional range, truncated to
// limit when limit is positive.
func (s *Service) History(ctx context.Context, userID string, rng storage.DateRange, limit int) ([]tracker.Hydration, error) {
	records, err := s.store.ListHydration(ctx, userID, rng)
	if err != nil {
		return nil, apperrors.Internal("list hydration records", err)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Delete removes one record by id.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteHydration(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("hydration record")
		}
		return apperrors.Internal("delete hydration record", err)
	}
	return nil
}

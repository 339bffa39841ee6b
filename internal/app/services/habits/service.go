// Package habits exposes habit CRUD, the completion toggle and the stats
// aggregation. The streak arithmetic lives in domain/habit; this layer does
// load-compute-store, so racing toggles are last-write-wins.
package habits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// ListFilter narrows a habit listing.
type ListFilter struct {
	Frequency  habit.Frequency
	ActiveOnly bool
}

// Service manages habits for their owners.
type Service struct {
	store storage.HabitStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a habit service.
func New(store storage.HabitStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("habits")
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

// Create registers a new habit. Frequency defaults to daily.
func (s *Service) Create(ctx context.Context, userID, name string, frequency habit.Frequency) (habit.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return habit.Habit{}, apperrors.Validation("name is required")
	}
	if frequency == "" {
		frequency = habit.FrequencyDaily
	}
	if !frequency.Valid() {
		return habit.Habit{}, apperrors.Validation("frequency must be daily or weekly")
	}

	created, err := s.store.CreateHabit(ctx, habit.Habit{
		UserID:    userID,
		Name:      name,
		Frequency: frequency,
	})
	if err != nil {
		return habit.Habit{}, apperrors.Internal("create habit", err)
	}
	s.log.WithField("habit_id", created.ID).WithField("user_id", userID).Info("habit created")
	return created, nil
}

// Get returns one habit owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (habit.Habit, error) {
	h, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return habit.Habit{}, apperrors.NotFound("habit")
		}
		return habit.Habit{}, apperrors.Internal("load habit", err)
	}
	return h, nil
}

// List returns the user's habits, newest first, optionally filtered.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]habit.Habit, error) {
	habits, err := s.store.ListHabits(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("list habits", err)
	}

	if filter.Frequency == "" && !filter.ActiveOnly {
		return habits, nil
	}

	now := s.now()
	result := make([]habit.Habit, 0, len(habits))
	for _, h := range habits {
		if filter.Frequency != "" && h.Frequency != filter.Frequency {
			continue
		}
		if filter.ActiveOnly && !h.ActiveAt(now) {
			continue
		}
		result = append(result, h)
	}
	return result, nil
}

// Update renames a habit or changes its frequency. Empty fields keep their
// current value.
func (s *Service) Update(ctx context.Context, userID, id, name string, frequency habit.Frequency) (habit.Habit, error) {
	h, err := s.Get(ctx, userID, id)
	if err != nil {
		return habit.Habit{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		h.Name = name
	}
	if frequency != "" {
		if !frequency.Valid() {
			return habit.Habit{}, apperrors.Validation("frequency must be daily or weekly")
		}
		h.Frequency = frequency
	}

	updated, err := s.store.UpdateHabit(ctx, h)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return habit.Habit{}, apperrors.NotFound("habit")
		}
		return habit.Habit{}, apperrors.Internal("update habit", err)
	}
	return updated, nil
}

// Delete removes a habit.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteHabit(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("habit")
		}
		return apperrors.Internal("delete habit", err)
	}
	return nil
}

// Toggle marks a habit completed for today. Completing twice on one calendar
// day is a no-op reported through the outcome.
func (s *Service) Toggle(ctx context.Context, userID, id string) (habit.Habit, habit.Outcome, error) {
	h, err := s.Get(ctx, userID, id)
	if err != nil {
		return habit.Habit{}, "", err
	}

	next, outcome := habit.Complete(h, s.now())
	if outcome == habit.OutcomeAlreadyCompleted {
		return h, outcome, nil
	}

	updated, err := s.store.UpdateHabit(ctx, next)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return habit.Habit{}, "", apperrors.NotFound("habit")
		}
		return habit.Habit{}, "", apperrors.Internal("update habit", err)
	}
	s.log.WithField("habit_id", id).
		WithField("user_id", userID).
		WithField("streak", updated.Streak).
		Info("habit completed")
	return updated, outcome, nil
}

// Stats computes the aggregate habit statistics for a user.
func (s *Service) Stats(ctx context.Context, userID string) (habit.Stats, error) {
	habits, err := s.store.ListHabits(ctx, userID)
	if err != nil {
		return habit.Stats{}, apperrors.Internal("list habits", err)
	}
	return habit.ComputeStats(habits, s.now()), nil
}

// Package wellness exposes the daily checklist: item configuration, per-date
// completion states and the derived history.
package wellness

import (
	"context"
	"errors"
	"strings"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/wellness"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/dateutil"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Service manages one checklist document per user.
type Service struct {
	store storage.WellnessStore
	log   *logger.Logger
}

// New constructs a wellness service.
func New(store storage.WellnessStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("wellness")
	}
	return &Service{store: store, log: log}
}

// load fetches the user's checklist, seeding the default configuration on
// first read.
func (s *Service) load(ctx context.Context, userID string) (wellness.Checklist, error) {
	c, err := s.store.GetChecklist(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return wellness.Checklist{}, apperrors.Internal("load checklist", err)
	}

	seeded, err := s.store.SaveChecklist(ctx, wellness.Checklist{
		UserID:      userID,
		Config:      append([]string(nil), wellness.DefaultConfig...),
		DailyStates: map[string]wellness.State{},
	})
	if err != nil {
		return wellness.Checklist{}, apperrors.Internal("seed checklist", err)
	}
	s.log.WithField("user_id", userID).Info("wellness checklist seeded")
	return seeded, nil
}

// Config returns the user's ordered item labels.
func (s *Service) Config(ctx context.Context, userID string) ([]string, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.Config, nil
}

// SetConfig replaces the item labels wholesale. Recorded states keep their
// labels; nothing cascades.
func (s *Service) SetConfig(ctx context.Context, userID string, config []string) ([]string, error) {
	if config == nil {
		return nil, apperrors.Validation("config must be an array")
	}
	for _, label := range config {
		if strings.TrimSpace(label) == "" {
			return nil, apperrors.Validation("config labels must not be blank")
		}
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Config = append([]string(nil), config...)

	saved, err := s.store.SaveChecklist(ctx, c)
	if err != nil {
		return nil, apperrors.Internal("save checklist", err)
	}
	return saved.Config, nil
}

// State returns the completion map for one YYYY-MM-DD date. Absent dates
// yield an empty map.
func (s *Service) State(ctx context.Context, userID, date string) (wellness.State, error) {
	if _, err := dateutil.ParseDay(date); err != nil {
		return nil, apperrors.Validation("date must be YYYY-MM-DD")
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state, ok := c.DailyStates[date]; ok {
		return state, nil
	}
	return wellness.State{}, nil
}

// SetState replaces one date's completion map wholesale, never merging.
func (s *Service) SetState(ctx context.Context, userID, date string, state wellness.State) (wellness.State, error) {
	if _, err := dateutil.ParseDay(date); err != nil {
		return nil, apperrors.Validation("date must be YYYY-MM-DD")
	}
	if state == nil {
		return nil, apperrors.Validation("state must be an object")
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.DailyStates == nil {
		c.DailyStates = map[string]wellness.State{}
	}
	c.DailyStates[date] = state

	saved, err := s.store.SaveChecklist(ctx, c)
	if err != nil {
		return nil, apperrors.Internal("save checklist", err)
	}
	return saved.DailyStates[date], nil
}

// History lists every recorded date inside the optional range, newest first.
func (s *Service) History(ctx context.Context, userID string, rng wellness.Range) ([]wellness.HistoryEntry, error) {
	if rng.Start != "" {
		if _, err := dateutil.ParseDay(rng.Start); err != nil {
			return nil, apperrors.Validation("start must be YYYY-MM-DD")
		}
	}
	if rng.End != "" {
		if _, err := dateutil.ParseDay(rng.End); err != nil {
			return nil, apperrors.Validation("end must be YYYY-MM-DD")
		}
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wellness.BuildHistory(c.DailyStates, rng), nil
}

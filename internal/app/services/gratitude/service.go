// Package gratitude exposes the single-document gratitude list.
package gratitude

import (
	"context"
	"errors"
	"strings"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Service manages one gratitude list per user.
type Service struct {
	store storage.GratitudeStore
	log   *logger.Logger
}

// New constructs a gratitude service.
func New(store storage.GratitudeStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("gratitude")
	}
	return &Service{store: store, log: log}
}

// Items returns the user's list, seeding the defaults on first read.
func (s *Service) Items(ctx context.Context, userID string) ([]string, error) {
	g, err := s.store.GetGratitude(ctx, userID)
	if err == nil {
		return g.Items, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.Internal("load gratitude list", err)
	}

	seeded, err := s.store.SaveGratitude(ctx, tracker.Gratitude{
		UserID: userID,
		Items:  append([]string(nil), tracker.DefaultGratitudeItems...),
	})
	if err != nil {
		return nil, apperrors.Internal("seed gratitude list", err)
	}
	s.log.WithField("user_id", userID).Info("gratitude list seeded")
	return seeded.Items, nil
}

// SetItems replaces the list wholesale. An empty list is allowed; a nil one
// is rejected so a missing request field never wipes the document silently.
func (s *Service) SetItems(ctx context.Context, userID string, items []string) ([]string, error) {
	if items == nil {
		return nil, apperrors.Validation("items must be an array")
	}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return nil, apperrors.Validation("items must not be blank")
		}
	}

	saved, err := s.store.SaveGratitude(ctx, tracker.Gratitude{
		UserID: userID,
		Items:  append([]string(nil), items...),
	})
	if err != nil {
		return nil, apperrors.Internal("save gratitude list", err)
	}
	return saved.Items, nil
}

// Package subscriptions tracks recurring monthly costs.
package subscriptions

import (
	"context"
	"errors"
	"strings"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// Service manages subscriptions.
type Service struct {
	store storage.SubscriptionStore
	log   *logger.Logger
}

// New constructs a subscriptions service.
func New(store storage.SubscriptionStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("subscriptions")
	}
	return &Service{store: store, log: log}
}

func validate(name string, cost float64) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("name is required")
	}
	if cost < 0 {
		return apperrors.Validation("cost must be zero or greater")
	}
	return nil
}

// Create adds a subscription.
func (s *Service) Create(ctx context.Context, userID, name string, cost float64) (tracker.Subscription, error) {
	if err := validate(name, cost); err != nil {
		return tracker.Subscription{}, err
	}

	sub, err := s.store.CreateSubscription(ctx, tracker.Subscription{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Cost:   cost,
	})
	if err != nil {
		return tracker.Subscription{}, apperrors.Internal("create subscription", err)
	}
	s.log.WithFields(map[string]interface{}{"user_id": userID, "name": sub.Name}).Info("subscription created")
	return sub, nil
}

// Update replaces a subscription's name and cost.
func (s *Service) Update(ctx context.Context, userID, id, name string, cost float64) (tracker.Subscription, error) {
	if err := validate(name, cost); err != nil {
		return tracker.Subscription{}, err
	}

	sub, err := s.store.GetSubscription(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tracker.Subscription{}, apperrors.NotFound("subscription")
		}
		return tracker.Subscription{}, apperrors.Internal("load subscription", err)
	}

	sub.Name = strings.TrimSpace(name)
	sub.Cost = cost

	updated, err := s.store.UpdateSubscription(ctx, sub)
	if err != nil {
		return tracker.Subscription{}, apperrors.Internal("update subscription", err)
	}
	return updated, nil
}

// List returns the user's subscriptions newest-first along with the total
// monthly cost.
func (s *Service) List(ctx context.Context, userID string) ([]tracker.Subscription, float64, error) {
	subs, err := s.store.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.Internal("list subscriptions", err)
	}
	total := 0.0
	for _, sub := range subs {
		total += sub.Cost
	}
	return subs, total, nil
}

// Delete removes a subscription by id.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteSubscription(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("subscription")
		}
		return apperrors.Internal("delete subscription", err)
	}
	return nil
}

// Package finances exposes finance record CRUD and the money summaries.
package finances

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// TopCategoryCount is how many expense categories the summary reports.
const TopCategoryCount = 5

// Summary extends the domain summary with the largest expense categories.
type Summary struct {
	finance.Summary
	TopCategories []finance.CategoryTotal `json:"top_categories"`
}

// Service manages finance records for their owners.
type Service struct {
	store storage.FinanceStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a finance service.
func New(store storage.FinanceStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("finances")
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

// Create records a transaction. A zero date defaults to now.
func (s *Service) Create(ctx context.Context, userID string, typ finance.Type, amount float64, category, note string, date time.Time) (finance.Record, error) {
	if !typ.Valid() {
		return finance.Record{}, apperrors.Validation("type must be income or expense")
	}
	if amount < 0 {
		return finance.Record{}, apperrors.Validation("amount must not be negative")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return finance.Record{}, apperrors.Validation("category is required")
	}
	if date.IsZero() {
		date = s.now()
	}

	created, err := s.store.CreateFinanceRecord(ctx, finance.Record{
		UserID:   userID,
		Type:     typ,
		Amount:   amount,
		Category: category,
		Note:     strings.TrimSpace(note),
		Date:     date,
	})
	if err != nil {
		return finance.Record{}, apperrors.Internal("create finance record", err)
	}
	s.log.WithField("record_id", created.ID).WithField("user_id", userID).Info("finance record created")
	return created, nil
}

// Get returns one record owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (finance.Record, error) {
	rec, err := s.store.GetFinanceRecord(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return finance.Record{}, apperrors.NotFound("finance record")
		}
		return finance.Record{}, apperrors.Internal("load finance record", err)
	}
	return rec, nil
}

// List returns the user's records, newest first.
func (s *Service) List(ctx context.Context, userID string, filter storage.FinanceFilter) ([]finance.Record, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperrors.Validation("type must be income or expense")
	}
	records, err := s.store.ListFinanceRecords(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.Internal("list finance records", err)
	}
	return records, nil
}

// Update edits a record. Zero values keep the current field.
func (s *Service) Update(ctx context.Context, userID, id string, typ finance.Type, amount *float64, category, note string, date time.Time) (finance.Record, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return finance.Record{}, err
	}

	if typ != "" {
		if !typ.Valid() {
			return finance.Record{}, apperrors.Validation("type must be income or expense")
		}
		rec.Type = typ
	}
	if amount != nil {
		if *amount < 0 {
			return finance.Record{}, apperrors.Validation("amount must not be negative")
		}
		rec.Amount = *amount
	}
	if category = strings.TrimSpace(category); category != "" {
		rec.Category = category
	}
	if note = strings.TrimSpace(note); note != "" {
		rec.Note = note
	}
	if !date.IsZero() {
		rec.Date = date
	}

	updated, err := s.store.UpdateFinanceRecord(ctx, rec)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return finance.Record{}, apperrors.NotFound("finance record")
		}
		return finance.Record{}, apperrors.Internal("update finance record", err)
	}
	return updated, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteFinanceRecord(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("finance record")
		}
		return apperrors.Internal("delete finance record", err)
	}
	return nil
}

// Summarize reduces the user's records, optionally bounded by a date range,
// to totals plus the biggest expense categories.
func (s *Service) Summarize(ctx context.Context, userID string, rng storage.DateRange) (Summary, error) {
	records, err := s.store.ListFinanceRecords(ctx, userID, storage.FinanceFilter{Start: rng.Start, End: rng.End})
	if err != nil {
		return Summary{}, apperrors.Internal("list finance records", err)
	}
	return Summary{
		Summary:       finance.Summarize(records),
		TopCategories: finance.TopExpenseCategories(records, TopCategoryCount),
	}, nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/wellness"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/dateutil"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local
// development.
type Store struct {
	mu            sync.RWMutex
	nextID        int64
	users         map[string]user.User
	usersByEmail  map[string]string
	settings      map[string]user.Settings
	habits        map[string]habit.Habit
	journals      map[string]journal.Entry
	finances      map[string]finance.Record
	checklists    map[string]wellness.Checklist
	gratitudes    map[string]tracker.Gratitude
	hydrations    map[string]tracker.Hydration
	sleeps        map[string]tracker.Sleep
	subscriptions map[string]tracker.Subscription
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.SettingsStore = (*Store)(nil)
var _ storage.HabitStore = (*Store)(nil)
var _ storage.JournalStore = (*Store)(nil)
var _ storage.FinanceStore = (*Store)(nil)
var _ storage.WellnessStore = (*Store)(nil)
var _ storage.GratitudeStore = (*Store)(nil)
var _ storage.HydrationStore = (*Store)(nil)
var _ storage.SleepStore = (*Store)(nil)
var _ storage.SubscriptionStore = (*Store)(nil)
var _ storage.Purger = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:        1,
		users:         make(map[string]user.User),
		usersByEmail:  make(map[string]string),
		settings:      make(map[string]user.Settings),
		habits:        make(map[string]habit.Habit),
		journals:      make(map[string]journal.Entry),
		finances:      make(map[string]finance.Record),
		checklists:    make(map[string]wellness.Checklist),
		gratitudes:    make(map[string]tracker.Gratitude),
		hydrations:    make(map[string]tracker.Hydration),
		sleeps:        make(map[string]tracker.Sleep),
		subscriptions: make(map[string]tracker.Subscription),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emailKey := strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := s.usersByEmail[emailKey]; exists {
		return user.User{}, storage.ErrDuplicate
	}

	if u.ID == "" {
		u.ID = s.nextIDLocked()
	} else if _, exists := s.users[u.ID]; exists {
		return user.User{}, storage.ErrDuplicate
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	s.users[u.ID] = u
	s.usersByEmail[emailKey] = u.ID
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.users[u.ID]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}

	oldKey := strings.ToLower(strings.TrimSpace(original.Email))
	newKey := strings.ToLower(strings.TrimSpace(u.Email))
	if newKey != oldKey {
		if existing, exists := s.usersByEmail[newKey]; exists && existing != u.ID {
			return user.User{}, storage.ErrDuplicate
		}
		delete(s.usersByEmail, oldKey)
		s.usersByEmail[newKey] = u.ID
	}

	u.CreatedAt = original.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteUserLocked(id)
}

func (s *Store) deleteUserLocked(id string) error {
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.usersByEmail, strings.ToLower(strings.TrimSpace(u.Email)))
	delete(s.users, id)
	return nil
}

// SettingsStore implementation ------------------------------------------------

func (s *Store) GetSettings(_ context.Context, userID string) (user.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[userID]
	if !ok {
		return user.Settings{}, storage.ErrNotFound
	}
	return settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings user.Settings) (user.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if original, ok := s.settings[settings.UserID]; ok {
		settings.CreatedAt = original.CreatedAt
	} else {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	s.settings[settings.UserID] = settings
	return settings, nil
}

func (s *Store) DeleteSettings(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.settings, userID)
	return nil
}

// HabitStore implementation ---------------------------------------------------

func (s *Store) CreateHabit(_ context.Context, h habit.Habit) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = s.nextIDLocked()
	} else if _, exists := s.habits[h.ID]; exists {
		return habit.Habit{}, storage.ErrDuplicate
	}

	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now

	s.habits[h.ID] = cloneHabit(h)
	return cloneHabit(h), nil
}

func (s *Store) UpdateHabit(_ context.Context, h habit.Habit) (habit.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.habits[h.ID]
	if !ok || original.UserID != h.UserID {
		return habit.Habit{}, storage.ErrNotFound
	}

	h.CreatedAt = original.CreatedAt
	h.UpdatedAt = time.Now().UTC()

	s.habits[h.ID] = cloneHabit(h)
	return cloneHabit(h), nil
}

func (s *Store) GetHabit(_ context.Context, userID, id string) (habit.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[id]
	if !ok || h.UserID != userID {
		return habit.Habit{}, storage.ErrNotFound
	}
	return cloneHabit(h), nil
}

func (s *Store) ListHabits(_ context.Context, userID string) ([]habit.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]habit.Habit, 0)
	for _, h := range s.habits {
		if h.UserID == userID {
			result = append(result, cloneHabit(h))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) DeleteHabit(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.habits[id]
	if !ok || h.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.habits, id)
	return nil
}

// JournalStore implementation -------------------------------------------------

func (s *Store) CreateJournalEntry(_ context.Context, e journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = s.nextIDLocked()
	} else if _, exists := s.journals[e.ID]; exists {
		return journal.Entry{}, storage.ErrDuplicate
	}

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.journals[e.ID] = e
	return e, nil
}

func (s *Store) UpdateJournalEntry(_ context.Context, e journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.journals[e.ID]
	if !ok || original.UserID != e.UserID {
		return journal.Entry{}, storage.ErrNotFound
	}

	e.CreatedAt = original.CreatedAt
	e.UpdatedAt = time.Now().UTC()

	s.journals[e.ID] = e
	return e, nil
}

func (s *Store) GetJournalEntry(_ context.Context, userID, id string) (journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.journals[id]
	if !ok || e.UserID != userID {
		return journal.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) ListJournalEntries(_ context.Context, userID string, filter storage.JournalFilter) ([]journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]journal.Entry, 0)
	for _, e := range s.journals {
		if e.UserID != userID {
			continue
		}
		if filter.Start != nil && e.Date.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && e.Date.After(*filter.End) {
			continue
		}
		if filter.MinMood > 0 && e.Mood < filter.MinMood {
			continue
		}
		if filter.MaxMood > 0 && e.Mood > filter.MaxMood {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) DeleteJournalEntry(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.journals[id]
	if !ok || e.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.journals, id)
	return nil
}

// FinanceStore implementation -------------------------------------------------

func (s *Store) CreateFinanceRecord(_ context.Context, rec finance.Record) (finance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.nextIDLocked()
	} else if _, exists := s.finances[rec.ID]; exists {
		return finance.Record{}, storage.ErrDuplicate
	}

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.finances[rec.ID] = rec
	return rec, nil
}

func (s *Store) UpdateFinanceRecord(_ context.Context, rec finance.Record) (finance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.finances[rec.ID]
	if !ok || original.UserID != rec.UserID {
		return finance.Record{}, storage.ErrNotFound
	}

	rec.CreatedAt = original.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	s.finances[rec.ID] = rec
	return rec, nil
}

func (s *Store) GetFinanceRecord(_ context.Context, userID, id string) (finance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.finances[id]
	if !ok || rec.UserID != userID {
		return finance.Record{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) ListFinanceRecords(_ context.Context, userID string, filter storage.FinanceFilter) ([]finance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]finance.Record, 0)
	for _, rec := range s.finances {
		if rec.UserID != userID {
			continue
		}
		if filter.Start != nil && rec.Date.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && rec.Date.After(*filter.End) {
			continue
		}
		if filter.Type != "" && rec.Type != filter.Type {
			continue
		}
		if filter.Category != "" && rec.Category != filter.Category {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) DeleteFinanceRecord(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.finances[id]
	if !ok || rec.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.finances, id)
	return nil
}

// WellnessStore implementation ------------------------------------------------

func (s *Store) GetChecklist(_ context.Context, userID string) (wellness.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.checklists[userID]
	if !ok {
		return wellness.Checklist{}, storage.ErrNotFound
	}
	return cloneChecklist(c), nil
}

func (s *Store) SaveChecklist(_ context.Context, c wellness.Checklist) (wellness.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if original, ok := s.checklists[c.UserID]; ok {
		c.CreatedAt = original.CreatedAt
	} else {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	s.checklists[c.UserID] = cloneChecklist(c)
	return cloneChecklist(c), nil
}

func (s *Store) DeleteChecklist(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklists[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.checklists, userID)
	return nil
}

// GratitudeStore implementation -----------------------------------------------

func (s *Store) GetGratitude(_ context.Context, userID string) (tracker.Gratitude, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.gratitudes[userID]
	if !ok {
		return tracker.Gratitude{}, storage.ErrNotFound
	}
	return cloneGratitude(g), nil
}

func (s *Store) SaveGratitude(_ context.Context, g tracker.Gratitude) (tracker.Gratitude, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if original, ok := s.gratitudes[g.UserID]; ok {
		g.CreatedAt = original.CreatedAt
	} else {
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	s.gratitudes[g.UserID] = cloneGratitude(g)
	return cloneGratitude(g), nil
}

func (s *Store) DeleteGratitude(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.gratitudes[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.gratitudes, userID)
	return nil
}

// HydrationStore implementation -----------------------------------------------

func (s *Store) UpsertHydration(_ context.Context, h tracker.Hydration) (tracker.Hydration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.Date = dateutil.Day(h.Date)
	now := time.Now().UTC()

	for id, existing := range s.hydrations {
		if existing.UserID == h.UserID && dateutil.SameDay(existing.Date, h.Date) {
			h.ID = id
			h.CreatedAt = existing.CreatedAt
			h.UpdatedAt = now
			s.hydrations[id] = h
			return h, nil
		}
	}

	if h.ID == "" {
		h.ID = s.nextIDLocked()
	}
	h.CreatedAt = now
	h.UpdatedAt = now
	s.hydrations[h.ID] = h
	return h, nil
}

func (s *Store) GetHydrationByDate(_ context.Context, userID string, date time.Time) (tracker.Hydration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.hydrations {
		if h.UserID == userID && dateutil.SameDay(h.Date, date) {
			return h, nil
		}
	}
	return tracker.Hydration{}, storage.ErrNotFound
}

func (s *Store) ListHydration(_ context.Context, userID string, rng storage.DateRange) ([]tracker.Hydration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]tracker.Hydration, 0)
	for _, h := range s.hydrations {
		if h.UserID != userID {
			continue
		}
		if rng.Start != nil && h.Date.Before(*rng.Start) {
			continue
		}
		if rng.End != nil && h.Date.After(*rng.End) {
			continue
		}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (s *Store) DeleteHydration(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hydrations[id]
	if !ok || h.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.hydrations, id)
	return nil
}

// SleepStore implementation ---------------------------------------------------

func (s *Store) CreateSleep(_ context.Context, rec tracker.Sleep) (tracker.Sleep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.nextIDLocked()
	} else if _, exists := s.sleeps[rec.ID]; exists {
		return tracker.Sleep{}, storage.ErrDuplicate
	}

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.sleeps[rec.ID] = rec
	return rec, nil
}

func (s *Store) UpdateSleep(_ context.Context, rec tracker.Sleep) (tracker.Sleep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.sleeps[rec.ID]
	if !ok || original.UserID != rec.UserID {
		return tracker.Sleep{}, storage.ErrNotFound
	}

	rec.CreatedAt = original.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	s.sleeps[rec.ID] = rec
	return rec, nil
}

func (s *Store) GetSleep(_ context.Context, userID, id string) (tracker.Sleep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sleeps[id]
	if !ok || rec.UserID != userID {
		return tracker.Sleep{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) ListSleep(_ context.Context, userID string, rng storage.DateRange) ([]tracker.Sleep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]tracker.Sleep, 0)
	for _, rec := range s.sleeps {
		if rec.UserID != userID {
			continue
		}
		if rng.Start != nil && rec.Date.Before(*rng.Start) {
			continue
		}
		if rng.End != nil && rec.Date.After(*rng.End) {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) DeleteSleep(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sleeps[id]
	if !ok || rec.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.sleeps, id)
	return nil
}

// SubscriptionStore implementation --------------------------------------------

func (s *Store) CreateSubscription(_ context.Context, sub tracker.Subscription) (tracker.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.ID == "" {
		sub.ID = s.nextIDLocked()
	} else if _, exists := s.subscriptions[sub.ID]; exists {
		return tracker.Subscription{}, storage.ErrDuplicate
	}

	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	s.subscriptions[sub.ID] = sub
	return sub, nil
}

func (s *Store) UpdateSubscription(_ context.Context, sub tracker.Subscription) (tracker.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.subscriptions[sub.ID]
	if !ok || original.UserID != sub.UserID {
		return tracker.Subscription{}, storage.ErrNotFound
	}

	sub.CreatedAt = original.CreatedAt
	sub.UpdatedAt = time.Now().UTC()

	s.subscriptions[sub.ID] = sub
	return sub, nil
}

func (s *Store) GetSubscription(_ context.Context, userID, id string) (tracker.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[id]
	if !ok || sub.UserID != userID {
		return tracker.Subscription{}, storage.ErrNotFound
	}
	return sub, nil
}

func (s *Store) ListSubscriptions(_ context.Context, userID string) ([]tracker.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]tracker.Subscription, 0)
	for _, sub := range s.subscriptions {
		if sub.UserID == userID {
			result = append(result, sub)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) DeleteSubscription(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[id]
	if !ok || sub.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.subscriptions, id)
	return nil
}

// Purger implementation -------------------------------------------------------

func (s *Store) PurgeUserData(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, h := range s.habits {
		if h.UserID == userID {
			delete(s.habits, id)
		}
	}
	for id, e := range s.journals {
		if e.UserID == userID {
			delete(s.journals, id)
		}
	}
	for id, rec := range s.finances {
		if rec.UserID == userID {
			delete(s.finances, id)
		}
	}
	for id, h := range s.hydrations {
		if h.UserID == userID {
			delete(s.hydrations, id)
		}
	}
	for id, rec := range s.sleeps {
		if rec.UserID == userID {
			delete(s.sleeps, id)
		}
	}
	for id, sub := range s.subscriptions {
		if sub.UserID == userID {
			delete(s.subscriptions, id)
		}
	}
	delete(s.checklists, userID)
	delete(s.gratitudes, userID)
	delete(s.settings, userID)
	return s.deleteUserLocked(userID)
}

// Helpers ---------------------------------------------------------------------

func cloneHabit(h habit.Habit) habit.Habit {
	h.History = append([]time.Time(nil), h.History...)
	if h.LastCompleted != nil {
		last := *h.LastCompleted
		h.LastCompleted = &last
	}
	return h
}

func cloneChecklist(c wellness.Checklist) wellness.Checklist {
	c.Config = append([]string(nil), c.Config...)
	if c.DailyStates != nil {
		states := make(map[string]wellness.State, len(c.DailyStates))
		for date, state := range c.DailyStates {
			copied := make(wellness.State, len(state))
			for label, done := range state {
				copied[label] = done
			}
			states[date] = copied
		}
		c.DailyStates = states
	}
	return c
}

func cloneGratitude(g tracker.Gratitude) tracker.Gratitude {
	g.Items = append([]string(nil), g.Items...)
	return g
}

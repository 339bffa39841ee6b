package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/tracker"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/user"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/wellness"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/dateutil"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
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

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (id, name, email, password_hash, theme, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Theme, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return user.User{}, mapError(err)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	existing, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET name = $2, email = $3, password_hash = $4, theme = $5, updated_at = $6
		WHERE id = $1
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Theme, u.UpdatedAt)
	if err != nil {
		return user.User{}, mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, theme, created_at, updated_at
		FROM app_users
		WHERE id = $1
	`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, theme, created_at, updated_at
		FROM app_users
		WHERE lower(email) = lower($1)
	`, email))
}

func (s *Store) scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Theme, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return user.User{}, mapError(err)
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- SettingsStore ----------------------------------------------------------

func (s *Store) GetSettings(ctx context.Context, userID string) (user.Settings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, theme, notifications, sound, language, timezone, date_format, currency,
		       dark_mode, email_notifications, push_notifications, weekly_digest, data_backup,
		       privacy_mode, created_at, updated_at
		FROM app_user_settings
		WHERE user_id = $1
	`, userID)

	var st user.Settings
	err := row.Scan(&st.UserID, &st.Theme, &st.Notifications, &st.Sound, &st.Language,
		&st.Timezone, &st.DateFormat, &st.Currency, &st.DarkMode, &st.EmailNotifications,
		&st.PushNotifications, &st.WeeklyDigest, &st.DataBackup, &st.PrivacyMode,
		&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return user.Settings{}, mapError(err)
	}
	return st, nil
}

func (s *Store) SaveSettings(ctx context.Context, st user.Settings) (user.Settings, error) {
	now := time.Now().UTC()
	st.UpdatedAt = now

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO app_user_settings (user_id, theme, notifications, sound, language, timezone,
		       date_format, currency, dark_mode, email_notifications, push_notifications,
		       weekly_digest, data_backup, privacy_mode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (user_id) DO UPDATE
		SET theme = EXCLUDED.theme, notifications = EXCLUDED.notifications,
		    sound = EXCLUDED.sound, language = EXCLUDED.language, timezone = EXCLUDED.timezone,
		    date_format = EXCLUDED.date_format, currency = EXCLUDED.currency,
		    dark_mode = EXCLUDED.dark_mode, email_notifications = EXCLUDED.email_notifications,
		    push_notifications = EXCLUDED.push_notifications, weekly_digest = EXCLUDED.weekly_digest,
		    data_backup = EXCLUDED.data_backup, privacy_mode = EXCLUDED.privacy_mode,
		    updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`, st.UserID, st.Theme, st.Notifications, st.Sound, st.Language, st.Timezone,
		st.DateFormat, st.Currency, st.DarkMode, st.EmailNotifications, st.PushNotifications,
		st.WeeklyDigest, st.DataBackup, st.PrivacyMode, now)
	if err := row.Scan(&st.CreatedAt); err != nil {
		return user.Settings{}, mapError(err)
	}
	return st, nil
}

func (s *Store) DeleteSettings(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM app_user_settings WHERE user_id = $1`, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- HabitStore -------------------------------------------------------------

func (s *Store) CreateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now

	historyJSON, err := json.Marshal(h.History)
	if err != nil {
		return habit.Habit{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_habits (id, user_id, name, frequency, streak, longest_streak, last_completed, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, h.ID, h.UserID, h.Name, h.Frequency, h.Streak, h.LongestStreak, toNullTime(h.LastCompleted), historyJSON, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return habit.Habit{}, mapError(err)
	}
	return h, nil
}

func (s *Store) UpdateHabit(ctx context.Context, h habit.Habit) (habit.Habit, error) {
	existing, err := s.GetHabit(ctx, h.UserID, h.ID)
	if err != nil {
		return habit.Habit{}, err
	}

	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = time.Now().UTC()

	historyJSON, err := json.Marshal(h.History)
	if err != nil {
		return habit.Habit{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_habits
		SET name = $3, frequency = $4, streak = $5, longest_streak = $6, last_completed = $7, history = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`, h.ID, h.UserID, h.Name, h.Frequency, h.Streak, h.LongestStreak, toNullTime(h.LastCompleted), historyJSON, h.UpdatedAt)
	if err != nil {
		return habit.Habit{}, mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (s *Store) GetHabit(ctx context.Context, userID, id string) (habit.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, frequency, streak, longest_streak, last_completed, history, created_at, updated_at
		FROM app_habits
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	h, err := scanHabit(row.Scan)
	if err != nil {
		return habit.Habit{}, mapError(err)
	}
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context, userID string) ([]habit.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, frequency, streak, longest_streak, last_completed, history, created_at, updated_at
		FROM app_habits
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []habit.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

func scanHabit(scan func(...any) error) (habit.Habit, error) {
	var (
		h             habit.Habit
		lastCompleted sql.NullTime
		historyRaw    []byte
	)
	if err := scan(&h.ID, &h.UserID, &h.Name, &h.Frequency, &h.Streak, &h.LongestStreak,
		&lastCompleted, &historyRaw, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return habit.Habit{}, err
	}
	if lastCompleted.Valid {
		t := lastCompleted.Time.UTC()
		h.LastCompleted = &t
	}
	if len(historyRaw) > 0 {
		_ = json.Unmarshal(historyRaw, &h.History)
	}
	return h, nil
}

func (s *Store) DeleteHabit(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_habits WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- JournalStore -----------------------------------------------------------

func (s *Store) CreateJournalEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_journal_entries (id, user_id, mood, text, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.Mood, e.Text, e.Date, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return journal.Entry{}, mapError(err)
	}
	return e, nil
}

func (s *Store) UpdateJournalEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	existing, err := s.GetJournalEntry(ctx, e.UserID, e.ID)
	if err != nil {
		return journal.Entry{}, err
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_journal_entries
		SET mood = $3, text = $4, date = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`, e.ID, e.UserID, e.Mood, e.Text, e.Date, e.UpdatedAt)
	if err != nil {
		return journal.Entry{}, mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return journal.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) GetJournalEntry(ctx context.Context, userID, id string) (journal.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, mood, text, date, created_at, updated_at
		FROM app_journal_entries
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	var e journal.Entry
	if err := row.Scan(&e.ID, &e.UserID, &e.Mood, &e.Text, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return journal.Entry{}, mapError(err)
	}
	return e, nil
}

func (s *Store) ListJournalEntries(ctx context.Context, userID string, filter storage.JournalFilter) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, mood, text, date, created_at, updated_at
		FROM app_journal_entries
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		  AND ($4::int = 0 OR mood >= $4)
		  AND ($5::int = 0 OR mood <= $5)
		ORDER BY date DESC, id DESC
	`, userID, toNullTime(filter.Start), toNullTime(filter.End), filter.MinMood, filter.MaxMood)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []journal.Entry
	for rows.Next() {
		var e journal.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Text, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *Store) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_journal_entries WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- FinanceStore -----------------------------------------------------------

func (s *Store) CreateFinanceRecord(ctx context.Context, rec finance.Record) (finance.Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_finance_records (id, user_id, type, amount, category, note, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.ID, rec.UserID, rec.Type, rec.Amount, rec.Category, rec.Note, rec.Date, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return finance.Record{}, mapError(err)
	}
	return rec, nil
}

func (s *Store) UpdateFinanceRecord(ctx context.Context, rec finance.Record) (finance.Record, error) {
	existing, err := s.GetFinanceRecord(ctx, rec.UserID, rec.ID)
	if err != nil {
		return finance.Record{}, err
	}

	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_finance_records
		SET type = $3, amount = $4, category = $5, note = $6, date = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`, rec.ID, rec.UserID, rec.Type, rec.Amount, rec.Category, rec.Note, rec.Date, rec.UpdatedAt)
	if err != nil {
		return finance.Record{}, mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return finance.Record{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) GetFinanceRecord(ctx context.Context, userID, id string) (finance.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, amount, category, note, date, created_at, updated_at
		FROM app_finance_records
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	var rec finance.Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Amount, &rec.Category, &rec.Note, &rec.Date, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return finance.Record{}, mapError(err)
	}
	return rec, nil
}

func (s *Store) ListFinanceRecords(ctx context.Context, userID string, filter storage.FinanceFilter) ([]finance.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, amount, category, note, date, created_at, updated_at
		FROM app_finance_records
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		  AND ($4 = '' OR type = $4)
		  AND ($5 = '' OR category = $5)
		ORDER BY date DESC, id DESC
	`, userID, toNullTime(filter.Start), toNullTime(filter.End), string(filter.Type), filter.Category)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []finance.Record
	for rows.Next() {
		var rec finance.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Amount, &rec.Category, &rec.Note, &rec.Date, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *Store) DeleteFinanceRecord(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_finance_records WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- WellnessStore ----------------------------------------------------------

func (s *Store) GetChecklist(ctx context.Context, userID string) (wellness.Checklist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, config, daily_states, created_at, updated_at
		FROM app_wellness_checklists
		WHERE user_id = $1
	`, userID)

	var (
		c         wellness.Checklist
		configRaw []byte
		statesRaw []byte
	)
	if err := row.Scan(&c.UserID, &configRaw, &statesRaw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return wellness.Checklist{}, mapError(err)
	}
	if len(configRaw) > 0 {
		_ = json.Unmarshal(configRaw, &c.Config)
	}
	if len(statesRaw) > 0 {
		_ = json.Unmarshal(statesRaw, &c.DailyStates)
	}
	return c, nil
}

func (s *Store) SaveChecklist(ctx context.Context, c wellness.Checklist) (wellness.Checklist, error) {
	now := time.Now().UTC()
	c.UpdatedAt = now

	configJSON, err := json.Marshal(c.Config)
	if err != nil {
		return wellness.Checklist{}, err
	}
	statesJSON, err := json.Marshal(c.DailyStates)
	if err != nil {
		return wellness.Checklist{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO app_wellness_checklists (user_id, config, daily_states, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET config = EXCLUDED.config, daily_states = EXCLUDED.daily_states, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`, c.UserID, configJSON, statesJSON, now)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return wellness.Checklist{}, mapError(err)
	}
	return c, nil
}

func (s *Store) DeleteChecklist(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM app_wellness_checklists WHERE user_id = $1`, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- GratitudeStore ---------------------------------------------------------

func (s *Store) GetGratitude(ctx context.Context, userID string) (tracker.Gratitude, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, items, created_at, updated_at
		FROM app_gratitude_lists
		WHERE user_id = $1
	`, userID)

	var (
		g        tracker.Gratitude
		itemsRaw []byte
	)
	if err := row.Scan(&g.UserID, &itemsRaw, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return tracker.Gratitude{}, mapError(err)
	}
	if len(itemsRaw) > 0 {
		_ = json.Unmarshal(itemsRaw, &g.Items)
	}
	return g, nil
}

func (s *Store) SaveGratitude(ctx context.Context, g tracker.Gratitude) (tracker.Gratitude, error) {
	now := time.Now().UTC()
	g.UpdatedAt = now

	itemsJSON, err := json.Marshal(g.Items)
	if err != nil {
		return tracker.Gratitude{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO app_gratitude_lists (user_id, items, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`, g.UserID, itemsJSON, now)
	if err := row.Scan(&g.CreatedAt); err != nil {
		return tracker.Gratitude{}, mapError(err)
	}
	return g, nil
}

func (s *Store) DeleteGratitude(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM app_gratitude_lists WHERE user_id = $1`, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- HydrationStore ---------------------------------------------------------

func (s *Store) UpsertHydration(ctx context.Context, h tracker.Hydration) (tracker.Hydration, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.Date = dateutil.Day(h.Date)
	now := time.Now().UTC()
	h.UpdatedAt = now

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO app_hydration_records (id, user_id, date, cups, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, date) DO UPDATE
		SET cups = EXCLUDED.cups, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`, h.ID, h.UserID, h.Date, h.Cups, now)
	if err := row.Scan(&h.ID, &h.CreatedAt); err != nil {
		return tracker.Hydration{}, mapError(err)
	}
	return h, nil
}

func (s *Store) GetHydrationByDate(ctx context.Context, userID string, date time.Time) (tracker.Hydration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, cups, created_at, updated_at
		FROM app_hydration_records
		WHERE user_id = $1 AND date = $2
	`, userID, dateutil.Day(date))

	var h tracker.Hydration
	if err := row.Scan(&h.ID, &h.UserID, &h.Date, &h.Cups, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return tracker.Hydration{}, mapError(err)
	}
	return h, nil
}

func (s *Store) ListHydration(ctx context.Context, userID string, rng storage.DateRange) ([]tracker.Hydration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, cups, created_at, updated_at
		FROM app_hydration_records
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC
	`, userID, toNullTime(rng.Start), toNullTime(rng.End))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []tracker.Hydration
	for rows.Next() {
		var h tracker.Hydration
		if err := rows.Scan(&h.ID, &h.UserID, &h.Date, &h.Cups, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

func (s *Store) DeleteHydration(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_hydration_records WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- SleepStore -------------------------------------------------------------

func (s *Store) CreateSleep(ctx context.Context, rec tracker.Sleep) (tracker.Sleep, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_sleep_records (id, user_id, date, hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.UserID, rec.Date, rec.Hours, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return tracker.Sleep{}, mapError(err)
	}
	return rec, nil
}

func (s *Store) UpdateSleep(ctx context.Context, rec tracker.Sleep) (tracker.Sleep, error) {
	existing, err := s.GetSleep(ctx, rec.UserID, rec.ID)
	if err != nil {
		return tracker.Sleep{}, err
	}

	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_sleep_records
		SET date = $3, hours = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`, rec.ID, rec.UserID, rec.Date, rec.Hours, rec.UpdatedAt)
	if err != nil {
		return tracker.Sleep{}, mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return tracker.Sleep{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) GetSleep(ctx context.Context, userID, id string) (tracker.Sleep, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, hours, created_at, updated_at
		FROM app_sleep_records
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	var rec tracker.Sleep
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Hours, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return tracker.Sleep{}, mapError(err)
	}
	return rec, nil
}

func (s *Store) ListSleep(ctx context.Context, userID string, rng storage.DateRange) ([]tracker.Sleep, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, hours, created_at, updated_at
		FROM app_sleep_records
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, id DESC
	`, userID, toNullTime(rng.Start), toNullTime(rng.End))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []tracker.Sleep
	for rows.Next() {
		var rec tracker.Sleep
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Hours, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (s *Store) DeleteSleep(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_sleep_records WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- SubscriptionStore ------------------------------------------------------

func (s *Store) CreateSubscription(ctx context.Context, sub tracker.Subscription) (tracker.Subscription, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_subscriptions (id, user_id, name, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sub.ID, sub.UserID, sub.Name, sub.Cost, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return tracker.Subscription{}, mapError(err)
	}
	return sub, nil
}

func (s *Store) UpdateSubscription(ctx context.Context, sub tracker.Subscription) (tracker.Subscription, error) {
	existing, err := s.GetSubscription(ctx, sub.UserID, sub.ID)
	if err != nil {
		return tracker.Subscription{}, err
	}

	sub.CreatedAt = existing.CreatedAt
	sub.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_subscriptions
		SET name = $3, cost = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`, sub.ID, sub.UserID, sub.Name, sub.Cost, sub.UpdatedAt)
	if err != nil {
		return tracker.Subscription{}, mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return tracker.Subscription{}, storage.ErrNotFound
	}
	return sub, nil
}

func (s *Store) GetSubscription(ctx context.Context, userID, id string) (tracker.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, cost, created_at, updated_at
		FROM app_subscriptions
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	var sub tracker.Subscription
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return tracker.Subscription{}, mapError(err)
	}
	return sub, nil
}

func (s *Store) ListSubscriptions(ctx context.Context, userID string) ([]tracker.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, cost, created_at, updated_at
		FROM app_subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var result []tracker.Subscription
	for rows.Next() {
		var sub tracker.Subscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (s *Store) DeleteSubscription(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_subscriptions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- Purger -----------------------------------------------------------------

// PurgeUserData removes every row a user owns inside one transaction.
func (s *Store) PurgeUserData(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tables := []string{
		"app_habits",
		"app_journal_entries",
		"app_finance_records",
		"app_wellness_checklists",
		"app_gratitude_lists",
		"app_hydration_records",
		"app_sleep_records",
		"app_subscriptions",
		"app_user_settings",
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return mapError(err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM app_users WHERE id = $1`, userID)
	if err != nil {
		return mapError(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit()
}

// --- helpers ----------------------------------------------------------------

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil || t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// mapError folds driver errors into the storage sentinels so callers never
// depend on database/sql or lib/pq directly.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return storage.ErrDuplicate
	}
	return err
}

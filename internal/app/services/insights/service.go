// Package insights turns a user's recent records into a plain-text prompt
// and forwards it to the narrative generator.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/habit"
	"github.com/nemesis-app/nemesis-server/internal/app/domain/journal"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// How much recent data feeds the prompt.
const (
	financeWindow = 10
	journalWindow = 5
	habitListMax  = 5
	topCategories = 3
	snippetLen    = 100
)

// Generator produces a narrative from a plain-text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service aggregates user data and asks the generator for a narrative.
type Service struct {
	finances  storage.FinanceStore
	journals  storage.JournalStore
	habits    storage.HabitStore
	generator Generator
	log       *logger.Logger
	now       func() time.Time
}

// New constructs an insights service.
func New(finances storage.FinanceStore, journals storage.JournalStore, habits storage.HabitStore, generator Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("insights")
	}
	return &Service{
		finances:  finances,
		journals:  journals,
		habits:    habits,
		generator: generator,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) { s.now = now }

// Generate builds the prompt from the user's last records and returns the
// generator's free-text narrative. A single failed call is reported as-is;
// nothing is retried.
func (s *Service) Generate(ctx context.Context, userID string) (string, error) {
	records, err := s.finances.ListFinanceRecords(ctx, userID, storage.FinanceFilter{})
	if err != nil {
		return "", apperrors.Internal("list finance records", err)
	}
	if len(records) > financeWindow {
		records = records[:financeWindow]
	}

	entries, err := s.journals.ListJournalEntries(ctx, userID, storage.JournalFilter{})
	if err != nil {
		return "", apperrors.Internal("list journal entries", err)
	}
	if len(entries) > journalWindow {
		entries = entries[:journalWindow]
	}

	habits, err := s.habits.ListHabits(ctx, userID)
	if err != nil {
		return "", apperrors.Internal("list habits", err)
	}

	prompt := BuildPrompt(records, entries, habits, s.now())

	narrative, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	s.log.WithField("user_id", userID).Info("insights generated")
	return narrative, nil
}

// BuildPrompt renders the coaching prompt from pre-aggregated summaries.
// Pure; exported so tests can pin the exact structure.
func BuildPrompt(records []finance.Record, entries []journal.Entry, habits []habit.Habit, now time.Time) string {
	var b strings.Builder
	b.WriteString("You are a professional cognitive performance coach analyzing a user's life data.\n\n")
	b.WriteString("**Finance Data:**\n")
	b.WriteString(financeSummary(records))
	b.WriteString("\n\n**Journal Entries:**\n")
	b.WriteString(journalSummary(entries))
	b.WriteString("\n\n**Habit Tracking:**\n")
	b.WriteString(habitSummary(habits, now))
	b.WriteString("\n\n")
	b.WriteString(`Based on this data, provide a comprehensive analysis with the following structure:

1. **WEEKLY LIFE SUMMARY** (2-3 sentences)
   - Overall performance assessment
   - Key patterns observed

2. **FINANCIAL HEALTH** (2 bullet points)
   - Current spending patterns
   - Specific actionable recommendation

3. **MENTAL WELLBEING** (2 bullet points)
   - Mood trends and emotional state
   - Specific actionable recommendation

4. **HABIT CONSISTENCY** (2 bullet points)
   - Progress on tracked habits
   - Specific actionable recommendation

5. **TOP 3 ACTION ITEMS**
   - Concrete, specific steps to improve in the next week
   - Each should be actionable and measurable

Keep the tone professional, motivating, and concise. Focus on actionable insights.
DO NOT use markdown formatting - use plain text with line breaks only.`)
	return b.String()
}

func financeSummary(records []finance.Record) string {
	if len(records) == 0 {
		return "No recent financial data available."
	}

	summary := finance.Summarize(records)
	top := finance.TopExpenseCategories(records, topCategories)

	parts := make([]string, 0, len(top))
	for _, c := range top {
		parts = append(parts, fmt.Sprintf("%s: Rs %.2f", c.Category, c.Total))
	}
	categories := strings.Join(parts, ", ")
	if categories == "" {
		categories = "None"
	}

	return fmt.Sprintf("Total Income: Rs %.2f\nTotal Expenses: Rs %.2f\nNet Balance: Rs %.2f\nTop Spending Categories: %s\nRecent Transactions: %d",
		summary.Income, summary.Expense, summary.Balance, categories, len(records))
}

func journalSummary(entries []journal.Entry) string {
	if len(entries) == 0 {
		return "No recent journal entries available."
	}

	summary := journal.Summarize(entries)
	trend := journal.MoodTrend(entries)

	var recent strings.Builder
	for i, e := range entries {
		if i == 3 {
			break
		}
		text := e.Text
		if len(text) > snippetLen {
			text = text[:snippetLen] + "..."
		}
		fmt.Fprintf(&recent, "Entry %d (Mood: %d/5): %q\n", i+1, e.Mood, text)
	}

	return fmt.Sprintf("Average Mood: %.1f/5\nMood Trend: %s\nTotal Entries: %d\n\nRecent Entries:\n%s",
		summary.AverageMood, trend, len(entries), strings.TrimRight(recent.String(), "\n"))
}

func habitSummary(habits []habit.Habit, now time.Time) string {
	if len(habits) == 0 {
		return "No habits being tracked."
	}

	stats := habit.ComputeStats(habits, now)

	var list strings.Builder
	for i, h := range habits {
		if i == habitListMax {
			break
		}
		fmt.Fprintf(&list, "%s: %d day streak (best: %d)\n", h.Name, h.Streak, h.LongestStreak)
	}

	return fmt.Sprintf("Total Habits: %d\nActive Habits: %d\nAverage Streak: %d days\nLongest Streak (Overall): %d days\n\nCurrent Habits:\n%s",
		stats.TotalHabits, stats.ActiveHabits, stats.AverageStreak, stats.LongestStreakOverall, strings.TrimRight(list.String(), "\n"))
}

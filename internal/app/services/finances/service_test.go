package finances

import (
	"context"
	"testing"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/finance"
	"github.com/nemesis-app/nemesis-server/internal/app/storage"
	"github.com/nemesis-app/nemesis-server/internal/app/storage/memory"
	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func TestCreateValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", "transfer", 10, "misc", "", time.Time{}); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := svc.Create(ctx, "u1", finance.TypeExpense, -1, "misc", "", time.Time{}); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if _, err := svc.Create(ctx, "u1", finance.TypeExpense, 1, "  ", "", time.Time{}); err == nil {
		t.Fatal("expected error for blank category")
	}
}

func TestSummarize(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		typ      finance.Type
		amount   float64
		category string
	}{
		{finance.TypeIncome, 1000, "salary"},
		{finance.TypeExpense, 120, "food"},
		{finance.TypeExpense, 80, "food"},
		{finance.TypeExpense, 300, "rent"},
	}
	for i, rec := range seed {
		if _, err := svc.Create(ctx, "u1", rec.typ, rec.amount, rec.category, "", base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	summary, err := svc.Summarize(ctx, "u1", storage.DateRange{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Income != 1000 || summary.Expense != 500 || summary.Balance != 500 {
		t.Fatalf("unexpected totals: %+v", summary.Summary)
	}
	if summary.Transactions != 4 {
		t.Fatalf("expected 4 transactions, got %d", summary.Transactions)
	}
	if len(summary.TopCategories) != 2 || summary.TopCategories[0].Category != "rent" {
		t.Fatalf("unexpected top categories: %+v", summary.TopCategories)
	}
}

func TestListFilters(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(ctx, "u1", finance.TypeIncome, 100, "salary", "", base); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "u1", finance.TypeExpense, 50, "food", "", base.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	expenses, err := svc.List(ctx, "u1", storage.FinanceFilter{Type: finance.TypeExpense})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Category != "food" {
		t.Fatalf("unexpected filtered records: %+v", expenses)
	}

	if _, err := svc.List(ctx, "u1", storage.FinanceFilter{Type: "transfer"}); err == nil {
		t.Fatal("expected validation error for bad type filter")
	}
}

func TestOwnerIsolation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "u1", finance.TypeExpense, 5, "coffee", "", time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, "u2", rec.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
	if err := svc.Delete(ctx, "u2", rec.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found deleting as other owner, got %v", err)
	}
}

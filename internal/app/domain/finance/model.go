// Package finance models finance transactions and their summaries.
package finance

import (
	"sort"
	"time"

	"github.com/nemesis-app/nemesis-server/internal/app/domain/series"
)

// Type distinguishes money in from money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Record is one finance transaction owned by a single user.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      Type      `json:"type"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary aggregates income and expenses across a set of records.
type Summary struct {
	Income       float64 `json:"income"`
	Expense      float64 `json:"expense"`
	Balance      float64 `json:"balance"`
	Transactions int     `json:"transactions"`
}

// CategoryTotal is one expense category with its accumulated amount.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summarize reduces records to income/expense totals. Pure.
func Summarize(records []Record) Summary {
	amount := func(r Record) float64 { return r.Amount }
	income := series.Filter(records, func(r Record) bool { return r.Type == TypeIncome })
	expenses := series.Filter(records, func(r Record) bool { return r.Type == TypeExpense })

	summary := Summary{
		Income:       series.Sum(income, amount),
		Expense:      series.Sum(expenses, amount),
		Transactions: len(income) + len(expenses),
	}
	summary.Balance = summary.Income - summary.Expense
	return summary
}

// TopExpenseCategories groups expense records by category, sums them and
// returns the n largest, ties broken by category name for determinism.
func TopExpenseCategories(records []Record, n int) []CategoryTotal {
	byCategory := make(map[string]float64)
	for _, r := range records {
		if r.Type == TypeExpense {
			byCategory[r.Category] += r.Amount
		}
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})

	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

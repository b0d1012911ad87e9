// Package aggregate groups flat expense rows into per-month buckets and
// reconciles month totals against the household budget. All functions are
// pure and synchronous; rows are assumed pre-validated by the caller.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"depenses/models"
)

// Month is the derived per-calendar-month view of expenses. It is never
// persisted; Total is recomputed from the rows on every pass.
type Month struct {
	Month    string           `json:"month"` // YYYY-MM
	Year     int              `json:"year"`
	Expenses []models.Expense `json:"expenses"`
	Total    decimal.Decimal  `json:"total"`
}

// BudgetStatus is the reconciliation of one month's spend against its budget.
type BudgetStatus struct {
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	IsOverBudget   bool            `json:"isOverBudget"`
}

// GroupByMonth buckets expenses by the calendar month of their own Date
// field and recomputes each bucket's total from its members. Output order
// is unspecified; callers sort as needed.
func GroupByMonth(expenses []models.Expense) []Month {
	buckets := make(map[string]*Month)
	keys := make([]string, 0)
	for _, e := range expenses {
		key := e.Date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &Month{Month: key, Year: e.Date.Year(), Total: decimal.Zero}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.Expenses = append(b.Expenses, e)
	}
	months := make([]Month, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		total := decimal.Zero
		for _, e := range b.Expenses {
			total = total.Add(e.Amount)
		}
		b.Total = total
		months = append(months, *b)
	}
	return months
}

// SortDesc orders months newest-first by month key, the order history views
// display.
func SortDesc(months []Month) {
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month > months[j].Month
	})
}

var hundred = decimal.NewFromInt(100)

// Reconcile compares a month's total spend against its budget. A nil budget
// yields nil: the caller renders the "undefined budget" state. A zero
// initial capital yields a zero percentage rather than dividing by zero.
func Reconcile(monthTotal decimal.Decimal, budget *models.MonthlyBudget) *BudgetStatus {
	if budget == nil {
		return nil
	}
	remaining := budget.InitialCapital.Sub(monthTotal)
	pct := decimal.Zero
	if !budget.InitialCapital.IsZero() {
		pct = monthTotal.Div(budget.InitialCapital).Mul(hundred)
	}
	return &BudgetStatus{
		Remaining:      remaining,
		PercentageUsed: pct,
		IsOverBudget:   remaining.IsNegative(),
	}
}

package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depenses/models"
)

func exp(amount string, date string) models.Expense {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Expense{Amount: decimal.RequireFromString(amount), Date: d, Description: "x"}
}

func TestGroupByMonthEmpty(t *testing.T) {
	months := GroupByMonth(nil)
	assert.Empty(t, months)
}

func TestGroupByMonthScenario(t *testing.T) {
	months := GroupByMonth([]models.Expense{
		exp("100", "2024-03-05"),
		exp("50", "2024-03-20"),
		exp("30", "2024-04-01"),
	})
	require.Len(t, months, 2)
	SortDesc(months)
	assert.Equal(t, "2024-04", months[0].Month)
	assert.Equal(t, 2024, months[0].Year)
	assert.Len(t, months[0].Expenses, 1)
	assert.True(t, months[0].Total.Equal(decimal.NewFromInt(30)), "total %s", months[0].Total)
	assert.Equal(t, "2024-03", months[1].Month)
	assert.Len(t, months[1].Expenses, 2)
	assert.True(t, months[1].Total.Equal(decimal.NewFromInt(150)), "total %s", months[1].Total)
}

func TestGroupByMonthConservesTotal(t *testing.T) {
	expenses := []models.Expense{
		exp("12.34", "2023-01-15"),
		exp("0.01", "2023-01-31"),
		exp("99.99", "2023-02-01"),
		exp("7.50", "2024-12-25"),
		exp("1000", "2023-02-28"),
	}
	want := decimal.Zero
	for _, e := range expenses {
		want = want.Add(e.Amount)
	}
	got := decimal.Zero
	seen := 0
	for _, m := range GroupByMonth(expenses) {
		got = got.Add(m.Total)
		seen += len(m.Expenses)
	}
	assert.True(t, want.Equal(got), "want %s got %s", want, got)
	assert.Equal(t, len(expenses), seen, "every expense lands in exactly one bucket")
}

func TestGroupByMonthUsesExpenseDate(t *testing.T) {
	// The bucket key comes from the expense's own date, not from insertion time.
	months := GroupByMonth([]models.Expense{exp("5", "1999-12-31")})
	require.Len(t, months, 1)
	assert.Equal(t, "1999-12", months[0].Month)
	assert.Equal(t, 1999, months[0].Year)
}

func TestReconcileOverBudget(t *testing.T) {
	budget := &models.MonthlyBudget{InitialCapital: decimal.NewFromInt(1000)}
	st := Reconcile(decimal.NewFromInt(1500), budget)
	require.NotNil(t, st)
	assert.True(t, st.Remaining.Equal(decimal.NewFromInt(-500)), "remaining %s", st.Remaining)
	assert.True(t, st.IsOverBudget)
	assert.True(t, st.PercentageUsed.Equal(decimal.NewFromInt(150)), "pct %s", st.PercentageUsed)
}

func TestReconcileUnderBudget(t *testing.T) {
	budget := &models.MonthlyBudget{InitialCapital: decimal.NewFromInt(1000)}
	st := Reconcile(decimal.NewFromInt(250), budget)
	require.NotNil(t, st)
	assert.True(t, st.Remaining.Equal(decimal.NewFromInt(750)))
	assert.False(t, st.IsOverBudget)
	assert.True(t, st.PercentageUsed.Equal(decimal.NewFromInt(25)))
}

func TestReconcileZeroCapital(t *testing.T) {
	budget := &models.MonthlyBudget{InitialCapital: decimal.Zero}
	st := Reconcile(decimal.NewFromInt(100), budget)
	require.NotNil(t, st)
	assert.True(t, st.PercentageUsed.IsZero(), "zero capital must not divide")
	assert.True(t, st.IsOverBudget)
}

func TestReconcileNoBudget(t *testing.T) {
	assert.Nil(t, Reconcile(decimal.NewFromInt(100), nil))
}

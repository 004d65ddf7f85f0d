package entity

import (
	"ExpenseLedger/pkg/calendar"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseOn(day int, category, amount string) Expense {
	return Expense{
		ID:          fmt.Sprintf("id-%02d", day),
		UserID:      "user-1",
		Category:    category,
		Description: "item",
		Amount:      decimal.RequireFromString(amount),
		Date:        calendar.NewDate(2024, time.March, day),
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil)

	assert.Equal(t, "0.00", s.TotalAmount.StringFixed(2))
	assert.Equal(t, 0, s.Count)
	require.Len(t, s.AmountByCategory, len(PredefinedCategories))
	for _, name := range PredefinedCategoryNames() {
		assert.True(t, s.AmountByCategory[name].IsZero(), name)
	}
	assert.NotNil(t, s.RecentExpenses)
	assert.Empty(t, s.RecentExpenses)
	assert.Equal(t, PredefinedCategoryNames(), s.CategoryOrder)
}

func TestBuildSummaryTotals(t *testing.T) {
	// already date-descending, as the ledger returns them
	expenses := []Expense{
		expenseOn(20, "Food", "0.10"),
		expenseOn(19, "Food", "0.20"),
		expenseOn(18, "Pets", "10.01"),
		expenseOn(17, "Transport", "3.33"),
		expenseOn(16, "Pets", "0.99"),
		expenseOn(15, "Health", "100.00"),
		expenseOn(14, "Food", "12.50"),
	}

	s := BuildSummary(expenses)

	assert.Equal(t, 7, s.Count)
	assert.Equal(t, "127.13", s.TotalAmount.StringFixed(2))
	assert.Equal(t, "12.80", s.AmountByCategory["Food"].StringFixed(2))
	assert.Equal(t, "11.00", s.AmountByCategory["Pets"].StringFixed(2))
	assert.Equal(t, "3.33", s.AmountByCategory["Transport"].StringFixed(2))
	assert.True(t, s.AmountByCategory["Shopping"].IsZero())
	assert.Equal(t, append(PredefinedCategoryNames(), "Pets"), s.CategoryOrder)

	sum := decimal.Zero
	for _, v := range s.AmountByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(s.TotalAmount))

	require.Len(t, s.RecentExpenses, RecentExpensesLimit)
	assert.Equal(t, expenses[:RecentExpensesLimit], s.RecentExpenses)
}

func TestBuildSummaryRecentIsPrefix(t *testing.T) {
	for n := 0; n <= 7; n++ {
		expenses := make([]Expense, 0, n)
		for i := 0; i < n; i++ {
			expenses = append(expenses, expenseOn(28-i, "Other", "1.00"))
		}

		s := BuildSummary(expenses)

		want := n
		if want > RecentExpensesLimit {
			want = RecentExpensesLimit
		}
		require.Len(t, s.RecentExpenses, want)
		assert.Equal(t, expenses[:want], s.RecentExpenses)
	}
}

func TestBuildSummaryRoundsOnlyAtTheEnd(t *testing.T) {
	// amounts outside the stored precision: per-record rounding would give 0.00 + 0.00 + 0.00
	expenses := []Expense{
		expenseOn(3, "Other", "0.004"),
		expenseOn(2, "Other", "0.004"),
		expenseOn(1, "Other", "0.004"),
	}

	s := BuildSummary(expenses)

	assert.Equal(t, "0.01", s.TotalAmount.StringFixed(2))
	assert.Equal(t, "0.01", s.AmountByCategory["Other"].StringFixed(2))
}

func TestBuildSummaryHalfAwayFromZero(t *testing.T) {
	s := BuildSummary([]Expense{expenseOn(1, "Other", "0.005")})
	assert.Equal(t, "0.01", s.TotalAmount.StringFixed(2))
}

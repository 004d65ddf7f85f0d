package entity

import "github.com/shopspring/decimal"

const RecentExpensesLimit = 5

type Summary struct {
	TotalAmount      decimal.Decimal
	Count            int
	AmountByCategory map[string]decimal.Decimal
	// CategoryOrder lists AmountByCategory keys: predefined first, then others by first appearance.
	CategoryOrder  []string
	RecentExpenses []Expense
}

// BuildSummary aggregates expenses that are already ordered by date descending.
// Sums are exact; rounding to two places happens once, at the end.
func BuildSummary(expenses []Expense) Summary {
	byCategory := make(map[string]decimal.Decimal, len(PredefinedCategories))
	order := make([]string, 0, len(PredefinedCategories))
	for _, name := range PredefinedCategoryNames() {
		byCategory[name] = decimal.Zero
		order = append(order, name)
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)

		current, ok := byCategory[e.Category]
		if !ok {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = current.Add(e.Amount)
	}

	for name, amount := range byCategory {
		byCategory[name] = RoundAmount(amount)
	}

	recentCount := len(expenses)
	if recentCount > RecentExpensesLimit {
		recentCount = RecentExpensesLimit
	}
	recent := make([]Expense, recentCount)
	copy(recent, expenses[:recentCount])

	return Summary{
		TotalAmount:      RoundAmount(total),
		Count:            len(expenses),
		AmountByCategory: byCategory,
		CategoryOrder:    order,
		RecentExpenses:   recent,
	}
}

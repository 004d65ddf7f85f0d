package expenseMapper

import (
	"ExpenseLedger/internal/entity"
	"ExpenseLedger/pkg/calendar"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseResponseFormatsAmountAndTimes(t *testing.T) {
	local := time.FixedZone("WIB", 7*60*60)
	resp := ExpenseResponse(entity.Expense{
		ID:          "01HX",
		UserID:      "u1",
		CategoryID:  "01HC",
		Category:    "Food",
		Description: "Lunch",
		Amount:      decimal.RequireFromString("12.5"),
		Date:        calendar.NewDate(2024, time.January, 5),
		CreatedAt:   time.Date(2024, time.January, 5, 8, 0, 0, 0, local),
		UpdatedAt:   time.Date(2024, time.January, 5, 8, 0, 0, 0, local),
	})

	assert.Equal(t, json.Number("12.50"), resp.Amount)
	assert.Equal(t, "2024-01-05", resp.Date)
	assert.Equal(t, "2024-01-05T01:00:00Z", resp.CreatedAt)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "category_id")
}

func TestSummaryResponseKeepsCategoryOrder(t *testing.T) {
	summary := entity.BuildSummary([]entity.Expense{
		{Category: "Zoo \"tickets\"", Amount: decimal.RequireFromString("4")},
		{Category: "Food", Amount: decimal.RequireFromString("1.005")},
	})

	raw, err := json.Marshal(SummaryResponse(summary))
	require.NoError(t, err)

	assert.Contains(t, string(raw),
		`"amount_by_category":{"Food":1.01,"Transport":0.00,"Entertainment":0.00,"Shopping":0.00,`+
			`"Health":0.00,"Education":0.00,"Services":0.00,"Other":0.00,"Zoo \"tickets\"":4.00}`)
	assert.Contains(t, string(raw), `"recent_expenses":[`)
}

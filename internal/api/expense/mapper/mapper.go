package expenseMapper

import (
	"ExpenseLedger/internal/api/expense"
	"ExpenseLedger/internal/entity"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func amountJSON(d decimal.Decimal) json.Number {
	return json.Number(entity.RoundAmount(d).StringFixed(2))
}

// ExpenseResponse is the one external shape of an expense, shared by the HTTP
// responses and the ledger events.
func ExpenseResponse(e entity.Expense) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      amountJSON(e.Amount),
		Date:        e.Date.String(),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Address:     e.Address,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ExpenseResponses(expenses []entity.Expense) []expense.ExpenseResponse {
	result := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, ExpenseResponse(e))
	}
	return result
}

func SummaryResponse(s entity.Summary) expense.SummaryResponse {
	byCategory := make(expense.CategoryAmounts, 0, len(s.CategoryOrder))
	for _, name := range s.CategoryOrder {
		byCategory = append(byCategory, expense.CategoryAmount{
			Name:   name,
			Amount: amountJSON(s.AmountByCategory[name]),
		})
	}

	return expense.SummaryResponse{
		TotalAmount:      amountJSON(s.TotalAmount),
		Count:            s.Count,
		AmountByCategory: byCategory,
		RecentExpenses:   ExpenseResponses(s.RecentExpenses),
	}
}

package expense

import (
	"ExpenseLedger/pkg/optional"
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	UserID      string          `json:"-" validate:"required"`
	Category    string          `json:"category" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0,lt=10000000000"`
	Date        string          `json:"date" validate:"max=64"`
	Latitude    *float64        `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64        `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address     *string         `json:"address" validate:"omitempty,max=255"`
}

// UpdateExpenseRequest is a partial update: absent fields keep their value,
// null clears the nullable location fields.
type UpdateExpenseRequest struct {
	Category    optional.Value[string]          `json:"category"`
	Description optional.Value[string]          `json:"description"`
	Amount      optional.Value[decimal.Decimal] `json:"amount"`
	Date        optional.Value[string]          `json:"date"`
	Latitude    optional.Value[float64]         `json:"latitude"`
	Longitude   optional.Value[float64]         `json:"longitude"`
	Address     optional.Value[string]          `json:"address"`
}

type ListExpensesQuery struct {
	Category string `query:"category" validate:"max=100"`
	Search   string `query:"search" validate:"max=100"`
}

type ExpenseResponse struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	Address     *string     `json:"address"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

type ExpenseListResponse struct {
	Count    int               `json:"count"`
	Expenses []ExpenseResponse `json:"expenses"`
}

type CategoryListResponse struct {
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

type PredefinedCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type SummaryResponse struct {
	TotalAmount      json.Number       `json:"total_amount"`
	Count            int               `json:"count"`
	AmountByCategory CategoryAmounts   `json:"amount_by_category"`
	RecentExpenses   []ExpenseResponse `json:"recent_expenses"`
}

type CategoryAmount struct {
	Name   string
	Amount json.Number
}

// CategoryAmounts encodes as a JSON object whose keys keep the slice order:
// predefined categories first, then the caller's own.
type CategoryAmounts []CategoryAmount

func (c CategoryAmounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(string(entry.Amount))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

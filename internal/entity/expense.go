package entity

import (
	"ExpenseLedger/internal/api/expense"
	"ExpenseLedger/pkg/calendar"
	"ExpenseLedger/pkg/optional"
	"ExpenseLedger/pkg/response"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Column limits of the expenses and categories tables.
const (
	MaxCategoryLength    = 100
	MaxDescriptionLength = 500
	MaxAddressLength     = 255
)

// MaxAmount is the exclusive upper bound of NUMERIC(12,2).
var MaxAmount = decimal.New(1, 10)

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        calendar.Date   `json:"date"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Address     *string         `json:"address"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseFilter narrows a listing. Blank fields do not filter.
type ExpenseFilter struct {
	Category string
	Search   string
}

// ExpensePatch carries the fields of a partial update. Date is already normalized.
type ExpensePatch struct {
	Category    optional.Value[string]
	Description optional.Value[string]
	Amount      optional.Value[decimal.Decimal]
	Date        optional.Value[calendar.Date]
	Latitude    optional.Value[float64]
	Longitude   optional.Value[float64]
	Address     optional.Value[string]
}

func (p ExpensePatch) IsEmpty() bool {
	return !p.Category.Set && !p.Description.Set && !p.Amount.Set && !p.Date.Set &&
		!p.Latitude.Set && !p.Longitude.Set && !p.Address.Set
}

// RoundAmount applies the ledger's two-decimal precision, half away from zero.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Normalize trims text fields and rounds the amount. Blank addresses become nil.
func (e *Expense) Normalize() {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	e.Amount = RoundAmount(e.Amount)
	if e.Address != nil {
		trimmed := strings.TrimSpace(*e.Address)
		if trimmed == "" {
			e.Address = nil
		} else {
			e.Address = &trimmed
		}
	}
}

func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return expense.ErrEmptyCategory
	}
	if utf8.RuneCountInString(e.Category) > MaxCategoryLength {
		return expense.ErrCategoryLength
	}

	if strings.TrimSpace(e.Description) == "" {
		return expense.ErrEmptyDescription
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLength {
		return expense.ErrDescriptionLength
	}

	amount := RoundAmount(e.Amount)
	if !amount.IsPositive() {
		return expense.ErrInvalidAmount
	}
	if !amount.LessThan(MaxAmount) {
		return expense.ErrAmountTooLarge
	}

	if e.Date.IsZero() || !e.Date.IsValid() {
		return expense.ErrInvalidDate
	}

	if e.Latitude != nil && (*e.Latitude < -90 || *e.Latitude > 90) {
		return expense.ErrInvalidLatitude
	}

	if e.Longitude != nil && (*e.Longitude < -180 || *e.Longitude > 180) {
		return expense.ErrInvalidLongitude
	}

	if e.Address != nil && utf8.RuneCountInString(*e.Address) > MaxAddressLength {
		return expense.ErrAddressLength
	}

	return nil
}

// Apply returns a copy of e with the patch merged in, normalized and validated.
// Null is only accepted for the location fields.
func (e Expense) Apply(p ExpensePatch) (Expense, error) {
	out := e

	if p.Category.Set {
		if p.Category.Null {
			return Expense{}, expense.ErrEmptyCategory
		}
		out.Category = p.Category.V
	}

	if p.Description.Set {
		if p.Description.Null {
			return Expense{}, expense.ErrEmptyDescription
		}
		out.Description = p.Description.V
	}

	if p.Amount.Set {
		if p.Amount.Null {
			return Expense{}, expense.ErrInvalidAmount
		}
		out.Amount = p.Amount.V
	}

	if p.Date.Set {
		if p.Date.Null {
			return Expense{}, response.Wrap(expense.ErrInvalidDate, &calendar.NormalizationError{Raw: "null", Reason: "date cannot be null"})
		}
		out.Date = p.Date.V
	}

	out.Latitude = applyNullable(out.Latitude, p.Latitude)
	out.Longitude = applyNullable(out.Longitude, p.Longitude)
	out.Address = applyNullable(out.Address, p.Address)

	out.Normalize()
	if err := out.Validate(); err != nil {
		return Expense{}, err
	}

	return out, nil
}

func applyNullable[T any](current *T, v optional.Value[T]) *T {
	if !v.Set {
		return current
	}
	if v.Null {
		return nil
	}
	value := v.V
	return &value
}

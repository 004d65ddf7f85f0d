package expense

import "ExpenseLedger/pkg/response"

var (
	ErrExpenseNotFound   = response.NewNotFoundError("expense not found")
	ErrInvalidExpenseID  = response.NewValidationError("expense id is required")
	ErrInvalidAmount     = response.NewValidationError("amount must be greater than 0")
	ErrAmountTooLarge    = response.NewValidationError("amount must be less than 10000000000")
	ErrEmptyDescription  = response.NewValidationError("description is required")
	ErrEmptyCategory     = response.NewValidationError("category is required")
	ErrDescriptionLength = response.NewValidationError("description must be at most 500 characters")
	ErrCategoryLength    = response.NewValidationError("category must be at most 100 characters")
	ErrAddressLength     = response.NewValidationError("address must be at most 255 characters")
	ErrInvalidDate       = response.NewValidationError("invalid date")
	ErrInvalidLatitude   = response.NewValidationError("latitude must be between -90 and 90")
	ErrInvalidLongitude  = response.NewValidationError("longitude must be between -180 and 180")
	ErrEmptyPatch        = response.NewValidationError("no fields to update")
	ErrCreateExpense     = response.NewStorageError("failed to create expense")
	ErrGetExpense        = response.NewStorageError("failed to get expense")
	ErrListExpenses      = response.NewStorageError("failed to list expenses")
	ErrUpdateExpense     = response.NewStorageError("failed to update expense")
	ErrDeleteExpense     = response.NewStorageError("failed to delete expense")
	ErrResolveCategory   = response.NewStorageError("failed to resolve category")
	ErrListCategories    = response.NewStorageError("failed to list categories")
	ErrSummarizeExpenses = response.NewStorageError("failed to summarize expenses")
)

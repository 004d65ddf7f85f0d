package expenseService

import (
	"ExpenseLedger/internal/api/expense"
	expenseMapper "ExpenseLedger/internal/api/expense/mapper"
	"ExpenseLedger/internal/entity"
	"ExpenseLedger/pkg/calendar"
	contextPkg "ExpenseLedger/pkg/context"
	"ExpenseLedger/pkg/event"
	"ExpenseLedger/pkg/optional"
	"ExpenseLedger/pkg/response"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *expenseService) CreateExpense(ctx context.Context, req expense.CreateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	date, err := s.normalizer.Normalize(req.Date)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"date":       req.Date,
			"error":      err.Error(),
		}).Warn("Invalid expense date")
		return entity.Expense{}, response.Wrap(expense.ErrInvalidDate, err)
	}

	now := s.timestamp()
	ULID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Expense{}, response.Wrap(expense.ErrCreateExpense, err)
	}

	exp := entity.Expense{
		ID:          ULID,
		UserID:      req.UserID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	exp.Normalize()

	if err := exp.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense data")
		return entity.Expense{}, err
	}

	repo, err := s.expenseRepository.NewClient(ctx, true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, response.Wrap(expense.ErrCreateExpense, err)
	}
	defer repo.Rollback()

	category, err := s.resolveCategory(ctx, repo, exp.UserID, exp.Category)
	if err != nil {
		return entity.Expense{}, err
	}
	exp.CategoryID = category.ID
	exp.Category = category.Name

	if err := repo.Expense.CreateExpense(ctx, exp); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create expense")
		return entity.Expense{}, response.Wrap(expense.ErrCreateExpense, err)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense creation")
		return entity.Expense{}, response.Wrap(expense.ErrCreateExpense, err)
	}

	created, err := s.GetExpenseByID(ctx, exp.UserID, exp.ID)
	if err != nil {
		// the row is committed; answer with what was written
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": exp.ID,
			"error":      err.Error(),
		}).Warn("Failed to read back created expense")
		created = exp
	}

	s.publish(ctx, event.ExpenseCreated, created.UserID, created.ID, &created)

	return created, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, userID, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(id) == "" {
		return entity.Expense{}, expense.ErrInvalidExpenseID
	}

	return retryRead(ctx, func() (entity.Expense, error) {
		repo, err := s.expenseRepository.NewClient(ctx, false)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create new client")
			return entity.Expense{}, response.Wrap(expense.ErrGetExpense, err)
		}

		exp, err := repo.Expense.GetExpenseByID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, expense.ErrExpenseNotFound) {
				return entity.Expense{}, err
			}
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"expense_id": id,
				"error":      err.Error(),
			}).Error("Failed to get expense by ID")
			return entity.Expense{}, response.Wrap(expense.ErrGetExpense, err)
		}

		return exp, nil
	})
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, filter entity.ExpenseFilter) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	return retryRead(ctx, func() ([]entity.Expense, error) {
		repo, err := s.expenseRepository.NewClient(ctx, false)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create new client")
			return nil, response.Wrap(expense.ErrListExpenses, err)
		}

		expenses, err := repo.Expense.ListExpenses(ctx, userID, filter)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"category":   filter.Category,
				"search":     filter.Search,
				"error":      err.Error(),
			}).Error("Failed to list expenses")
			return nil, response.Wrap(expense.ErrListExpenses, err)
		}

		return expenses, nil
	})
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, id string, req expense.UpdateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(id) == "" {
		return entity.Expense{}, expense.ErrInvalidExpenseID
	}

	patch, err := s.buildPatch(req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Warn("Invalid expense patch")
		return entity.Expense{}, err
	}

	repo, err := s.expenseRepository.NewClient(ctx, true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, response.Wrap(expense.ErrUpdateExpense, err)
	}
	defer repo.Rollback()

	current, err := repo.Expense.GetExpenseByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			return entity.Expense{}, err
		}
		return entity.Expense{}, response.Wrap(expense.ErrUpdateExpense, err)
	}

	updated, err := current.Apply(patch)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Warn("Invalid expense data after patch")
		return entity.Expense{}, err
	}

	if patch.Category.Set {
		category, err := s.resolveCategory(ctx, repo, userID, updated.Category)
		if err != nil {
			return entity.Expense{}, err
		}
		updated.CategoryID = category.ID
		updated.Category = category.Name
	}

	updated.UpdatedAt = s.timestamp()

	if err := repo.Expense.UpdateExpense(ctx, updated); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			return entity.Expense{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Error("Failed to update expense")
		return entity.Expense{}, response.Wrap(expense.ErrUpdateExpense, err)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense update")
		return entity.Expense{}, response.Wrap(expense.ErrUpdateExpense, err)
	}

	s.publish(ctx, event.ExpenseUpdated, updated.UserID, updated.ID, &updated)

	return updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(id) == "" {
		return expense.ErrInvalidExpenseID
	}

	repo, err := s.expenseRepository.NewClient(ctx, false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return response.Wrap(expense.ErrDeleteExpense, err)
	}

	if err := repo.Expense.DeleteExpense(ctx, userID, id); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"error":      err.Error(),
		}).Error("Failed to delete expense")
		return response.Wrap(expense.ErrDeleteExpense, err)
	}

	s.publish(ctx, event.ExpenseDeleted, userID, id, nil)

	return nil
}

// buildPatch turns the request into an entity patch. A blank date keeps the stored one.
func (s *expenseService) buildPatch(req expense.UpdateExpenseRequest) (entity.ExpensePatch, error) {
	patch := entity.ExpensePatch{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
	}

	switch {
	case !req.Date.Set:
	case req.Date.Null:
		patch.Date = optional.Null[calendar.Date]()
	case strings.TrimSpace(req.Date.V) != "":
		date, err := s.normalizer.Normalize(req.Date.V)
		if err != nil {
			return entity.ExpensePatch{}, response.Wrap(expense.ErrInvalidDate, err)
		}
		patch.Date = optional.Of(date)
	}

	if patch.Amount.Present() && !entity.RoundAmount(patch.Amount.V).GreaterThan(decimal.Zero) {
		return entity.ExpensePatch{}, expense.ErrInvalidAmount
	}

	if patch.IsEmpty() {
		return entity.ExpensePatch{}, expense.ErrEmptyPatch
	}

	return patch, nil
}

// publish sends exp in its HTTP response shape. Deletions carry no expense.
func (s *expenseService) publish(ctx context.Context, typ event.Type, userID, expenseID string, exp *entity.Expense) {
	evt := event.Event{
		Type:       typ,
		ExpenseID:  expenseID,
		UserID:     userID,
		OccurredAt: s.now().UTC(),
	}
	if exp != nil {
		evt.Expense = expenseMapper.ExpenseResponse(*exp)
	}

	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"event":      string(typ),
			"expense_id": expenseID,
			"error":      err.Error(),
		}).Warn("Failed to publish ledger event")
	}
}

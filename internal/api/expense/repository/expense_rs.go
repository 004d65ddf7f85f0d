package expenseRepository

import (
	"ExpenseLedger/internal/api/expense"
	"ExpenseLedger/internal/entity"
	"ExpenseLedger/pkg/calendar"
	contextPkg "ExpenseLedger/pkg/context"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ExpenseDB struct {
	ID          sql.NullString  `db:"id"`
	UserID      sql.NullString  `db:"owner_user_id"`
	CategoryID  sql.NullString  `db:"category_id"`
	Category    sql.NullString  `db:"category"`
	Description sql.NullString  `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Date        calendar.Date   `db:"expense_date"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
	Address     sql.NullString  `db:"address"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *expenseRepository) CreateExpense(c context.Context, exp entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            exp.ID,
		"owner_user_id": exp.UserID,
		"category_id":   exp.CategoryID,
		"description":   exp.Description,
		"amount":        exp.Amount,
		"expense_date":  exp.Date,
		"latitude":      exp.Latitude,
		"longitude":     exp.Longitude,
		"address":       exp.Address,
		"created_at":    exp.CreatedAt,
		"updated_at":    exp.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return err
	}

	return nil
}

func (r *expenseRepository) GetExpenseByID(c context.Context, userID, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ExpenseDB

	argsKV := map[string]interface{}{
		"id":            id,
		"owner_user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetExpenseByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")
		return entity.Expense{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"expense_id": id,
			}).Warn("GetExpenseByID no rows found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(row), nil
}

func (r *expenseRepository) ListExpenses(c context.Context, userID string, filter entity.ExpenseFilter) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ExpenseDB

	argsKV := map[string]interface{}{
		"owner_user_id": userID,
		"category":      strings.TrimSpace(filter.Category),
		"pattern":       likePattern(filter.Search),
	}

	query, args, err := sqlx.Named(queryListExpenses, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListExpenses named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListExpenses execution err")
		return nil, err
	}

	result := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeExpense(row))
	}

	return result, nil
}

func (r *expenseRepository) UpdateExpense(c context.Context, exp entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            exp.ID,
		"owner_user_id": exp.UserID,
		"category_id":   exp.CategoryID,
		"description":   exp.Description,
		"amount":        exp.Amount,
		"expense_date":  exp.Date,
		"latitude":      exp.Latitude,
		"longitude":     exp.Longitude,
		"address":       exp.Address,
		"updated_at":    exp.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": exp.ID,
		}).Warn("UpdateExpense no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) DeleteExpense(c context.Context, userID, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            id,
		"owner_user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
		}).Warn("DeleteExpense no rows affected")
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) makeExpense(row ExpenseDB) entity.Expense {
	result := entity.Expense{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		CategoryID:  row.CategoryID.String,
		Category:    row.Category.String,
		Description: row.Description.String,
		Amount:      entity.RoundAmount(row.Amount),
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.Latitude.Valid {
		lat := row.Latitude.Float64
		result.Latitude = &lat
	}
	if row.Longitude.Valid {
		lng := row.Longitude.Float64
		result.Longitude = &lng
	}
	if row.Address.Valid {
		addr := row.Address.String
		result.Address = &addr
	}

	return result
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a lower-cased substring pattern whose wildcards match literally.
// A blank search yields "", which disables the filter.
func likePattern(search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

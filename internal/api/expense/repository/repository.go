package expenseRepository

import (
	"ExpenseLedger/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(ctx context.Context, tx bool) (Client, error)
}

func (r *repository) NewClient(ctx context.Context, tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.BeginTxx(ctx, nil)
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Expense:  &expenseRepository{q: sqlExecutor, log: r.log},
		Category: &categoryRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Expense interface {
		CreateExpense(c context.Context, expense entity.Expense) error
		GetExpenseByID(c context.Context, userID, id string) (entity.Expense, error)
		ListExpenses(c context.Context, userID string, filter entity.ExpenseFilter) ([]entity.Expense, error)
		UpdateExpense(c context.Context, expense entity.Expense) error
		DeleteExpense(c context.Context, userID, id string) error
	}

	Category interface {
		UpsertCategory(c context.Context, category entity.Category) (entity.Category, error)
		ListCategoryNames(c context.Context, userID string) ([]string, error)
	}

	Commit   func() error
	Rollback func() error
}

type expenseRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type categoryRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

package expenseService

import (
	"ExpenseLedger/internal/api/expense"
	expenseRepository "ExpenseLedger/internal/api/expense/repository"
	"ExpenseLedger/internal/entity"
	"ExpenseLedger/pkg/calendar"
	"ExpenseLedger/pkg/event"
	"ExpenseLedger/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IExpenseService interface {
	CreateExpense(ctx context.Context, req expense.CreateExpenseRequest) (entity.Expense, error)
	GetExpenseByID(ctx context.Context, userID, id string) (entity.Expense, error)
	ListExpenses(ctx context.Context, userID string, filter entity.ExpenseFilter) ([]entity.Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, req expense.UpdateExpenseRequest) (entity.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error

	ResolveCategory(ctx context.Context, userID, name string) (entity.Category, error)
	ListCategoryNames(ctx context.Context, userID string) ([]string, error)

	Summarize(ctx context.Context, userID string) (entity.Summary, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
	normalizer        *calendar.Normalizer
	utils             utils.IUtils
	publisher         event.Publisher
	now               func() time.Time
}

func NewExpenseService(
	log *logrus.Logger,
	er expenseRepository.Repository,
	normalizer *calendar.Normalizer,
	utils utils.IUtils,
	publisher event.Publisher,
) IExpenseService {
	if publisher == nil {
		publisher = event.NewNoopPublisher()
	}

	return &expenseService{
		log:               log,
		expenseRepository: er,
		normalizer:        normalizer,
		utils:             utils,
		publisher:         publisher,
		now:               time.Now,
	}
}

// timestamp is truncated to what Postgres stores so returned records match reads.
func (s *expenseService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

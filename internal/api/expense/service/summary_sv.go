package expenseService

import (
	"ExpenseLedger/internal/api/expense"
	"ExpenseLedger/internal/entity"
	contextPkg "ExpenseLedger/pkg/context"
	"ExpenseLedger/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Summarize aggregates every expense the user owns. It is computed on each call.
func (s *expenseService) Summarize(ctx context.Context, userID string) (entity.Summary, error) {
	requestID := contextPkg.GetRequestID(ctx)

	expenses, err := s.ListExpenses(ctx, userID, entity.ExpenseFilter{})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load expenses for summary")
		if response.IsStorage(err) {
			return entity.Summary{}, response.Wrap(expense.ErrSummarizeExpenses, err)
		}
		return entity.Summary{}, err
	}

	return entity.BuildSummary(expenses), nil
}

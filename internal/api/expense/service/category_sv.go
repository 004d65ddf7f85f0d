package expenseService

import (
	"ExpenseLedger/internal/api/expense"
	expenseRepository "ExpenseLedger/internal/api/expense/repository"
	"ExpenseLedger/internal/entity"
	contextPkg "ExpenseLedger/pkg/context"
	"ExpenseLedger/pkg/response"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *expenseService) ResolveCategory(ctx context.Context, userID, name string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(ctx, false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Category{}, response.Wrap(expense.ErrResolveCategory, err)
	}

	return s.resolveCategory(ctx, repo, userID, name)
}

// resolveCategory returns the owner's category with the given name, creating it
// when absent. Concurrent callers racing on the same name all get the same row.
func (s *expenseService) resolveCategory(ctx context.Context, repo expenseRepository.Client, userID, name string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Category{}, expense.ErrEmptyCategory
	}

	now := s.timestamp()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Category{}, response.Wrap(expense.ErrResolveCategory, err)
	}

	category, err := repo.Category.UpsertCategory(ctx, entity.Category{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"category":   name,
			"error":      err.Error(),
		}).Error("Failed to resolve category")
		return entity.Category{}, response.Wrap(expense.ErrResolveCategory, err)
	}

	return category, nil
}

func (s *expenseService) ListCategoryNames(ctx context.Context, userID string) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	return retryRead(ctx, func() ([]string, error) {
		repo, err := s.expenseRepository.NewClient(ctx, false)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create new client")
			return nil, response.Wrap(expense.ErrListCategories, err)
		}

		names, err := repo.Category.ListCategoryNames(ctx, userID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to list category names")
			return nil, response.Wrap(expense.ErrListCategories, err)
		}

		return names, nil
	})
}

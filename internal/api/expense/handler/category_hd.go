package expenseHandler

import (
	"ExpenseLedger/internal/api/expense"
	"ExpenseLedger/internal/entity"
	contextPkg "ExpenseLedger/pkg/context"
	"ExpenseLedger/pkg/handlerUtil"
	jwtPkg "ExpenseLedger/pkg/jwt"
	"ExpenseLedger/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ExpenseHandler) ListCategories(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list categories request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	names, err := h.expenseService.ListCategoryNames(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_categories")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expense.CategoryListResponse{
			Count:      len(names),
			Categories: names,
		})
	}
}

func (h *ExpenseHandler) ListPredefinedCategories(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	result := make([]expense.PredefinedCategoryResponse, 0, len(entity.PredefinedCategories))
	for _, category := range entity.PredefinedCategories {
		result = append(result, expense.PredefinedCategoryResponse{
			ID:    category.ID,
			Name:  category.Name,
			Icon:  category.Icon,
			Color: category.Color,
		})
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
}

package expenseHandler

import (
	expenseService "ExpenseLedger/internal/api/expense/service"
	"ExpenseLedger/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExpenseHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	expenseService expenseService.IExpenseService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	expenseService expenseService.IExpenseService,
) *ExpenseHandler {
	return &ExpenseHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		expenseService: expenseService,
	}
}

func (h *ExpenseHandler) Start(srv fiber.Router) {
	expenses := srv.Group("/expenses", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter)

	expenses.Get("", h.ListExpenses)
	expenses.Post("", h.CreateExpense)
	expenses.Get("/summary", h.GetSummary)
	expenses.Get("/categories", h.ListCategories)
	expenses.Get("/:id", h.GetExpenseByID)
	expenses.Put("/:id", h.UpdateExpense)
	expenses.Patch("/:id", h.UpdateExpense)
	expenses.Delete("/:id", h.DeleteExpense)

	categories := srv.Group("/categories")
	categories.Get("/predefined", h.ListPredefinedCategories)
}

package main

import (
	"ExpenseLedger/internal/api/expense"
	expenseRepository "ExpenseLedger/internal/api/expense/repository"
	expenseService "ExpenseLedger/internal/api/expense/service"
	"ExpenseLedger/internal/config"
	"ExpenseLedger/internal/entity"
	"ExpenseLedger/pkg/calendar"
	"ExpenseLedger/pkg/event"
	jwtPkg "ExpenseLedger/pkg/jwt"
	"ExpenseLedger/pkg/log"
	"ExpenseLedger/pkg/utils"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn(log.Fields{"error": err.Error()}, "Failed to load .env file")
	}

	userID := flag.String("user", "", "owner user id (random when empty)")
	count := flag.Int("n", 25, "number of expenses to create")
	days := flag.Int("days", 90, "spread expenses over this many past days")
	provision := flag.Bool("categories", true, "create every predefined category for the user first")
	flag.Parse()

	logger := log.NewLogger()
	faker := gofakeit.New(0)

	if *userID == "" {
		*userID = faker.UUID()
	}

	db, err := config.OpenDatabase()
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	loc, err := config.LoadLocation()
	if err != nil {
		logger.Fatal(err)
	}

	normalizer := calendar.NewNormalizer(time.Now, loc)
	service := expenseService.NewExpenseService(
		logger,
		expenseRepository.New(db, logger),
		normalizer,
		utils.New(),
		event.NewNoopPublisher(),
	)

	categories := entity.PredefinedCategoryNames()
	ctx := context.Background()

	if *provision {
		for _, name := range categories {
			if _, err := service.ResolveCategory(ctx, *userID, name); err != nil {
				logger.Fatalf("Failed to create category %s: %v", name, err)
			}
		}
	}

	for i := 0; i < *count; i++ {
		date := time.Now().In(loc).AddDate(0, 0, -faker.Number(0, *days))
		req := expense.CreateExpenseRequest{
			UserID:      *userID,
			Category:    categories[faker.Number(0, len(categories)-1)],
			Description: faker.Sentence(faker.Number(2, 6)),
			Amount:      decimal.NewFromFloat(faker.Price(1, 250)),
			Date:        date.Format(calendar.Layout),
		}

		if faker.Bool() {
			lat, lng := faker.Latitude(), faker.Longitude()
			address := faker.Address().Address
			req.Latitude, req.Longitude, req.Address = &lat, &lng, &address
		}

		if _, err := service.CreateExpense(ctx, req); err != nil {
			logger.Fatalf("Failed to create expense %d: %v", i+1, err)
		}
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":       *userID,
		"email":    faker.Email(),
		"username": faker.Username(),
	}, 24*time.Hour)
	if err != nil {
		logger.Fatalf("Failed to sign development token: %v", err)
	}

	fmt.Printf("seeded %d expenses for user %s\n", *count, *userID)
	fmt.Printf("token (expires %s):\n%s\n", time.Unix(expiresAt, 0).Format(time.RFC3339), token)
}

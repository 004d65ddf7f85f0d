package config

import (
	expenseHandler "ExpenseLedger/internal/api/expense/handler"
	expenseRepository "ExpenseLedger/internal/api/expense/repository"
	expenseService "ExpenseLedger/internal/api/expense/service"
	"ExpenseLedger/internal/middleware"
	"ExpenseLedger/pkg/calendar"
	"ExpenseLedger/pkg/event"
	"ExpenseLedger/pkg/redis"
	"ExpenseLedger/pkg/utils"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	normalizer  *calendar.Normalizer
	handlers    []handler
	redisServer redis.IRedis
	publisher   event.Publisher
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.normalizer == nil {
		server.normalizer = calendar.NewNormalizer(time.Now, time.UTC)
	}
	if server.publisher == nil {
		server.publisher = event.NewNoopPublisher()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := OpenDatabase()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

// WithDB uses an already opened and migrated database.
func WithDB(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

// WithRedisServer connects to Redis when REDIS_ADDRESS is set. A failed
// connection is logged and rate limiting stays in memory.
func WithRedisServer() ServerOption {
	return func(s *Server) error {
		if os.Getenv("REDIS_ADDRESS") == "" {
			return nil
		}

		client, err := redis.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Redis unavailable, using in-memory rate limiter: %v", err)
			}
			return nil
		}
		s.redisServer = client
		return nil
	}
}

// WithEventPublisher publishes ledger events to AMQP_URL when it is set.
func WithEventPublisher() ServerOption {
	return func(s *Server) error {
		url := os.Getenv("AMQP_URL")
		if url == "" {
			s.publisher = event.NewNoopPublisher()
			return nil
		}

		exchange := os.Getenv("AMQP_EXCHANGE")
		if exchange == "" {
			exchange = "expense.events"
		}

		publisher, err := event.NewAMQPPublisher(url, exchange)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to AMQP broker: %v", err)
			}
			return fmt.Errorf("failed to create event publisher: %w", err)
		}
		s.publisher = publisher
		return nil
	}
}

func WithNormalizer() ServerOption {
	return func(s *Server) error {
		loc, err := LoadLocation()
		if err != nil {
			return err
		}
		s.normalizer = calendar.NewNormalizer(time.Now, loc)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.redisServer)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	// Expense Ledger
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.NewExpenseService(s.log, expenseRepo, s.normalizer, s.utils, s.publisher)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, expenseHandlers)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) Run() error {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, waits for in-flight ones, then releases
// the database, Redis and AMQP connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http: %w", err))
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

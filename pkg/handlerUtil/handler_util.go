package handlerUtil

import (
	"ExpenseLedger/pkg/log"
	"ExpenseLedger/pkg/response"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle is the single place where service errors become HTTP responses.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.logger.WithFields(fields).Warn("Operation timed out")
		return h.HandleRequestTimeout(c)
	}

	var respErr *response.Error
	if !errors.As(err, &respErr) {
		traceID := log.ErrorWithTraceID(h.logger, fields, "Unexpected error")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "An unexpected error occurred",
			Code:    string(response.KindInternal),
			TraceID: traceID,
		})
	}

	body := ErrorResponse{
		Error: respErr.Error(),
		Code:  string(respErr.Kind),
	}

	switch respErr.Kind {
	case response.KindValidation:
		if respErr.Cause != nil {
			body.Details = respErr.Cause.Error()
		}
		h.logger.WithFields(fields).Warn("Validation failed")
	case response.KindNotFound:
		h.logger.WithFields(fields).Warn("Resource not found")
	case response.KindUnauthorized, response.KindRateLimited, response.KindTimeout:
		h.logger.WithFields(fields).Warn("Request rejected")
	default:
		if respErr.Cause != nil {
			fields["cause"] = respErr.Cause.Error()
		}
		body.TraceID = log.ErrorWithTraceID(h.logger, fields, "Operation failed")
	}

	return c.Status(respErr.Code).JSON(body)
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "Validation failed",
		Code:    string(response.KindValidation),
		Details: describeValidation(err),
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(ErrorResponse{
		Error: "Request timeout",
		Code:  string(response.KindTimeout),
	})
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  string(response.KindUnauthorized),
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return strings.Join(msgs, "; ")
}

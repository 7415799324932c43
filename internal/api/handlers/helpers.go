package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
	CodeServer       = "SERVER_ERROR"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func Data(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(fiber.Map{"data": v})
}

func ErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message": message,
			"code":    code,
		},
	})
}

// HandleError writes err as an error envelope. Anything that is not a
// validation, authorization or not-found error is reported as a server error
// without leaking its text.
func HandleError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrorResponse(c, fiber.StatusBadRequest, CodeValidation, verr.Message)
	case errors.Is(err, service.ErrUnauthorized):
		return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, CodeNotFound, "Not found")
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return ErrorResponse(c, fiber.StatusInternalServerError, CodeServer, "Internal server error")
}

// ErrorHandler is installed as the fiber.Config ErrorHandler so routing
// errors and panics recovered by middleware use the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorResponse(c, fe.Code, codeForStatus(fe.Code), fe.Message)
	}
	return HandleError(c, err)
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusUnauthorized || status == fiber.StatusForbidden:
		return CodeUnauthorized
	case status == fiber.StatusNotFound:
		return CodeNotFound
	case status == fiber.StatusTooManyRequests:
		return CodeRateLimited
	case status >= 400 && status < 500:
		return CodeValidation
	}
	return CodeServer
}

func invalidBody(c *fiber.Ctx, err error) error {
	slog.Info(err.Error())
	return ErrorResponse(c, fiber.StatusBadRequest, CodeValidation, "Invalid request body")
}

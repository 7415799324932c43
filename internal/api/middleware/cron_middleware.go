package middleware

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/api/handlers"
)

// CronSecret guards endpoints hit by an external scheduler. Requests must
// send "Authorization: Bearer <secret>"; with no secret configured every
// request is refused.
func CronSecret(secret string) fiber.Handler {
	expected := []byte("Bearer " + secret)
	return func(c *fiber.Ctx) error {
		if secret == "" {
			slog.Error("CRON_SECRET is not configured, refusing sweep request")
			return handlers.ErrorResponse(c, fiber.StatusUnauthorized, handlers.CodeUnauthorized, "Unauthorized")
		}

		got := []byte(c.Get(fiber.HeaderAuthorization))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			return handlers.ErrorResponse(c, fiber.StatusUnauthorized, handlers.CodeUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}

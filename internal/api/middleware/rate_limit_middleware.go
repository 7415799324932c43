package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/maheshrc27/devjournal/internal/api/handlers"
)

// RateLimit allows max requests per window from each client IP.
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return handlers.ErrorResponse(c, fiber.StatusTooManyRequests, handlers.CodeRateLimited, "Too many requests, try again later")
		},
	})
}

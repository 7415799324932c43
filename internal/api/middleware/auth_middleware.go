package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/devjournal/configs"
	"github.com/maheshrc27/devjournal/internal/api/handlers"
	"github.com/maheshrc27/devjournal/internal/service"
)

type AuthMiddleware struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, service service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{s: service, cfg: cfg}
}

// token reads the session from the cookie, falling back to a bearer token.
func (m *AuthMiddleware) token(c *fiber.Ctx) string {
	if tokenString := c.Cookies(m.cfg.CookieName); tokenString != "" {
		return tokenString
	}
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (string, bool) {
	tokenString := m.token(c)
	if tokenString == "" {
		return "", false
	}

	userID, err := m.s.ValidateSession(tokenString)
	if err != nil {
		if c.Cookies(m.cfg.CookieName) != "" {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})
		}
		log.Printf("Token validation failed: %v", err)
		return "", false
	}

	c.Locals("user_id", userID)
	return userID, true
}

// OptionalAuth identifies the user when a valid session is present and lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.authenticate(c)
		return c.Next()
	}
}

func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := m.authenticate(c); !ok {
			return handlers.ErrorResponse(c, fiber.StatusUnauthorized, handlers.CodeUnauthorized, "Invalid or expired session")
		}
		return c.Next()
	}
}

// RequireAuthor admits only the configured author. When AUTHOR_ID is unset
// any signed-in user may write, and every write stays scoped to its author.
func (m *AuthMiddleware) RequireAuthor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := m.authenticate(c)
		if !ok {
			return handlers.ErrorResponse(c, fiber.StatusUnauthorized, handlers.CodeUnauthorized, "Invalid or expired session")
		}
		if m.cfg.AuthorID != "" && userID != m.cfg.AuthorID {
			return handlers.ErrorResponse(c, fiber.StatusUnauthorized, handlers.CodeUnauthorized, "Only the author can do this")
		}
		return c.Next()
	}
}

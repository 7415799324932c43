package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/devjournal/configs"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/maheshrc27/devjournal/pkg/utils"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	state, err := utils.GenerateRandomKey(24)
	if err != nil {
		return HandleError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(h.s.LoginURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) LoginCallbackHandler(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		slog.Info("oauth state mismatch")
		return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid login state")
	}
	c.ClearCookie(oauthStateCookie)

	token, _, err := h.s.LoginCallback(c.Context(), c.Query("code"))
	if err != nil {
		return HandleError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  service.GetExpiresAt(int(service.SessionDuration.Seconds())),
	})

	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	return Data(c, fiber.StatusOK, fiber.Map{"success": true})
}

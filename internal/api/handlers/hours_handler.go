package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
)

type HoursHandler struct {
	s service.HoursService
}

func NewHoursHandler(service service.HoursService) *HoursHandler {
	return &HoursHandler{s: service}
}

func (h *HoursHandler) GetHours(c *fiber.Ctx) error {
	summary, err := h.s.Summary(c.Context())
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, summary)
}

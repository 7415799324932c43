package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type DraftHandler struct {
	s service.DraftService
}

func NewDraftHandler(service service.DraftService) *DraftHandler {
	return &DraftHandler{s: service}
}

func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.s.Get(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, draft)
}

func (h *DraftHandler) SaveDraft(c *fiber.Ctx) error {
	var draft transfer.Draft
	if err := c.BodyParser(&draft); err != nil {
		return invalidBody(c, err)
	}

	saved, err := h.s.Save(c.Context(), GetUserID(c), &draft)
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, saved)
}

func (h *DraftHandler) ClearDraft(c *fiber.Ctx) error {
	if err := h.s.Clear(c.Context(), GetUserID(c)); err != nil {
		return HandleError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

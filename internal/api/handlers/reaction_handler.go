package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type ReactionHandler struct {
	s service.ReactionService
}

func NewReactionHandler(service service.ReactionService) *ReactionHandler {
	return &ReactionHandler{s: service}
}

// reactionRequest reads the body. A signed-in user always reacts as
// themselves; the body's userId is only used for anonymous visitors.
func reactionRequest(c *fiber.Ctx) (*transfer.ReactionRequest, error) {
	var req transfer.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	if userID := GetUserID(c); userID != "" {
		req.UserID = userID
	}
	return &req, nil
}

func (h *ReactionHandler) ToggleReaction(c *fiber.Ctx) error {
	req, err := reactionRequest(c)
	if err != nil {
		return invalidBody(c, err)
	}

	result, err := h.s.Toggle(c.Context(), req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.JSON(result)
}

func (h *ReactionHandler) CheckReaction(c *fiber.Ctx) error {
	req, err := reactionRequest(c)
	if err != nil {
		return invalidBody(c, err)
	}

	result, err := h.s.Check(c.Context(), req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.JSON(transfer.ReactionResult{
		HasReacted: result.HasReacted,
		Count:      result.Count,
	})
}

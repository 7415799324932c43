package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type ScheduleHandler struct {
	r service.Resolver
}

func NewScheduleHandler(r service.Resolver) *ScheduleHandler {
	return &ScheduleHandler{r: r}
}

func (h *ScheduleHandler) Sweep(c *fiber.Ctx) error {
	posts, err := h.r.SweepDue(c.Context())
	if err != nil {
		return HandleError(c, err)
	}

	return c.JSON(transfer.SweepResult{
		Success:      true,
		UpdatedPosts: posts,
	})
}

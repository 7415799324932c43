package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	var filter transfer.PostFilter
	if err := c.QueryParser(&filter); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, CodeValidation, "Invalid query parameters")
	}

	posts, err := h.s.List(c.Context(), &filter, GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.s.Get(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, post)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		return invalidBody(c, err)
	}

	post, err := h.s.Create(c.Context(), GetUserID(c), &pc)
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusCreated, post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var pu transfer.PostUpdate
	if err := c.BodyParser(&pu); err != nil {
		return invalidBody(c, err)
	}

	post, err := h.s.Update(c.Context(), c.Params("id"), GetUserID(c), &pu)
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	post, err := h.s.Delete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusOK, post)
}

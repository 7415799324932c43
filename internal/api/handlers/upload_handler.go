package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/devjournal/internal/service"
)

type UploadHandler struct {
	s service.MediaService
}

func NewUploadHandler(service service.MediaService) *UploadHandler {
	return &UploadHandler{s: service}
}

func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, CodeValidation, "file is required")
	}
	if fh.Size > service.MaxUploadSize {
		return ErrorResponse(c, fiber.StatusBadRequest, CodeValidation, fmt.Sprintf("file must be at most %d MB", service.MaxUploadSize>>20))
	}

	file, err := fh.Open()
	if err != nil {
		return HandleError(c, err)
	}
	defer file.Close()

	asset, err := h.s.Upload(c.Context(), GetUserID(c), file)
	if err != nil {
		return HandleError(c, err)
	}

	return Data(c, fiber.StatusCreated, fiber.Map{
		"url":   asset.FileURL,
		"asset": asset,
	})
}

func (h *UploadHandler) ListImages(c *fiber.Ctx) error {
	assets, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return HandleError(c, err)
	}
	return Data(c, fiber.StatusOK, assets)
}

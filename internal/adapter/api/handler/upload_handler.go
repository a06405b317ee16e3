package handler

import (
	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// UploadHandler exposes the image hosting relay. The client sends base64 and
// gets back a public URL to attach to a listing.
type UploadHandler struct {
	uploader usecase.ImageUploader
}

func NewUploadHandler(uploader usecase.ImageUploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

type uploadImageRequest struct {
	Image string `json:"image" validate:"required"`
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	var req uploadImageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	url, err := h.uploader.UploadBase64(c.Request().Context(), req.Image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}

package handler

import (
	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type createItemRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=2000"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type updateItemRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=selling done"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.itemUseCase.List(c.Request().Context(), usecase.ListItemsInput{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		AuthorID: c.QueryParam("author_id"),
		Limit:    pagination.PageSize,
		Offset:   pagination.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	id := c.Param("id")
	viewerID, _ := c.Get("uid").(string)

	view, err := h.itemUseCase.GetByID(c.Request().Context(), id, viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.itemUseCase.Create(c.Request().Context(), uid, usecase.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageBase64: req.ImageBase64,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.itemUseCase.Update(c.Request().Context(), id, uid, usecase.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Status:      req.Status,
		ImageBase64: req.ImageBase64,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	if err := h.itemUseCase.Delete(c.Request().Context(), id, uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item deleted",
	})
}

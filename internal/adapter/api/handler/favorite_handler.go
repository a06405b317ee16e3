package handler

import (
	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)
	itemID := c.Param("itemId")

	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	favorited, err := h.favoriteUseCase.Toggle(c.Request().Context(), uid, itemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"item_id":   itemID,
		"favorited": favorited,
	})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	uid := c.Get("uid").(string)

	favorites, err := h.favoriteUseCase.List(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, favorites)
}

func (h *FavoriteHandler) ReconcileFavorites(c echo.Context) error {
	uid := c.Get("uid").(string)

	result, err := h.favoriteUseCase.Reconcile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

package handler

import (
	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type NoticeHandler struct {
	noticeUseCase *usecase.NoticeUseCase
}

func NewNoticeHandler(noticeUseCase *usecase.NoticeUseCase) *NoticeHandler {
	return &NoticeHandler{
		noticeUseCase: noticeUseCase,
	}
}

type noticeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type updateNoticeRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content string `json:"content,omitempty"`
}

func (h *NoticeHandler) ListNotices(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	notices, total, err := h.noticeUseCase.List(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notices, total, pagination.Page, pagination.PageSize)
}

func (h *NoticeHandler) GetNotice(c echo.Context) error {
	notice, err := h.noticeUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notice)
}

func (h *NoticeHandler) CreateNotice(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	notice, err := h.noticeUseCase.Create(c.Request().Context(), uid, usecase.NoticeInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, notice)
}

func (h *NoticeHandler) UpdateNotice(c echo.Context) error {
	var req updateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	notice, err := h.noticeUseCase.Update(c.Request().Context(), c.Param("id"), usecase.NoticeInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notice)
}

func (h *NoticeHandler) DeleteNotice(c echo.Context) error {
	if err := h.noticeUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Notice deleted",
	})
}

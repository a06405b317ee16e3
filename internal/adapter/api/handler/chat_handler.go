package handler

import (
	"net/http"

	"unimarket/internal/infrastructure/ratelimit"
	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/response"
	"unimarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
	limiter     *ratelimit.RateLimiter
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, limiter *ratelimit.RateLimiter) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		limiter:     limiter,
	}
}

type startChatRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if allowed, _ := h.limiter.Allow(uid, "create_chat"); !allowed {
		return response.Error(c, errors.New("RATE_LIMITED", "Too many new chats, try again later", http.StatusTooManyRequests, nil))
	}

	chat, err := h.chatUseCase.StartChat(c.Request().Context(), uid, req.ItemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) ListRooms(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	rooms, total, err := h.chatUseCase.ListRooms(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, rooms, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) GetRoom(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	room, err := h.chatUseCase.GetRoom(c.Request().Context(), uid, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, room)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uid, chatID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if allowed, _ := h.limiter.Allow(uid, "send_message"); !allowed {
		return response.Error(c, errors.New("RATE_LIMITED", "Too many messages, slow down", http.StatusTooManyRequests, nil))
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, chatID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	updated, err := h.chatUseCase.MarkRead(c.Request().Context(), uid, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"marked_read": updated,
	})
}

func (h *ChatHandler) LeaveRoom(c echo.Context) error {
	uid := c.Get("uid").(string)
	chatID := c.Param("id")

	if err := h.chatUseCase.LeaveRoom(c.Request().Context(), uid, chatID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Left chat room",
	})
}

package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats", authMiddleware.Authenticate)
	chats.POST("", chatHandler.StartChat)
	chats.GET("", chatHandler.ListRooms)
	chats.GET("/:id", chatHandler.GetRoom)
	chats.DELETE("/:id", chatHandler.LeaveRoom)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/read", chatHandler.MarkRead)
}

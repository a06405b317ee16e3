package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupNoticeRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	noticeHandler := handler.GetNoticeHandler()

	notices := e.Group("/v1/notices")
	notices.GET("", noticeHandler.ListNotices)
	notices.GET("/:id", noticeHandler.GetNotice)

	admin := e.Group("/v1/notices", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.POST("", noticeHandler.CreateNotice)
	admin.PUT("/:id", noticeHandler.UpdateNotice)
	admin.DELETE("/:id", noticeHandler.DeleteNotice)
}

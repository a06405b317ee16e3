package router

import (
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupItemRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupFavoriteRouter(e, authMiddleware)
	SetupNoticeRouter(e, authMiddleware, adminMiddleware)
	SetupUploadRouter(e, authMiddleware)
	SetupWebSocketRouter(e, authMiddleware)
	SetupHealthRouter(e)
}

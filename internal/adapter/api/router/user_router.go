package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users", authMiddleware.Authenticate)
	users.GET("/me", userHandler.GetProfile)
	users.GET("/me/items", userHandler.MyItems)
	users.PUT("/me/push-token", userHandler.RegisterPushToken)
}

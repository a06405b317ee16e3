package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/verification-codes", authHandler.RequestVerificationCode, middleware.VerificationRateLimit())
	auth.POST("/register", authHandler.Register, middleware.AuthRateLimit())
	auth.POST("/login", authHandler.Login, middleware.AuthRateLimit())

	account := auth.Group("", authMiddleware.Authenticate)
	account.GET("/me", authHandler.Me)
	account.POST("/password", authHandler.ChangePassword)
	account.DELETE("/account", authHandler.DeleteAccount)
}

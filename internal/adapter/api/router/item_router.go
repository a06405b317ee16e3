package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()

	items := e.Group("/v1/items")
	items.GET("", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem, authMiddleware.OptionalAuthenticate)

	protected := e.Group("/v1/items", authMiddleware.Authenticate)
	protected.POST("", itemHandler.CreateItem)
	protected.PUT("/:id", itemHandler.UpdateItem)
	protected.DELETE("/:id", itemHandler.DeleteItem)
}

package router

import (
	"unimarket/internal/adapter/api/handler"
	"unimarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites", authMiddleware.Authenticate)
	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.POST("/reconcile", favoriteHandler.ReconcileFavorites)
	favorites.POST("/:itemId", favoriteHandler.ToggleFavorite)
}

package server

import (
	"github.com/theideaforge/forge/internal/server/middleware"
	"github.com/theideaforge/forge/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Auth routes
	e.POST("/api/auth/register", routes.RegisterHandler)
	e.POST("/api/auth/login", routes.LoginHandler)

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Forge pipeline
	apiRoutes.POST("/forge", routes.ForgeHandler)

	// Session routes
	apiRoutes.GET("/sessions", routes.GetSessionsHandler)
	apiRoutes.GET("/sessions/latest", routes.GetLatestSessionHandler)
	apiRoutes.GET("/sessions/:id", routes.GetSessionHandler)
	apiRoutes.DELETE("/sessions/:id", routes.DeleteSessionHandler)
}

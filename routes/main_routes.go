package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/movekenya/movekenya_backend/controllers"
	"github.com/movekenya/movekenya_backend/websocket"
)

// SetupRoutes configures all API routes.
func SetupRoutes(e *echo.Echo, hub *websocket.Hub, authController *controllers.AuthController, adminController *controllers.AdminController) {
	RegisterAuthRoutes(e, authController)
	RegisterAdminRoutes(e, adminController)

	e.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub)
	})
}

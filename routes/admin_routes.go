package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/movekenya/movekenya_backend/controllers"
)

// RegisterAdminRoutes sets up the admin panel's driver registry routes. The
// panel's own login flow runs through the shared /login + /verify-otp pair.
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController) {
	admin := e.Group("/admin")

	admin.POST("/add-driver", adminController.AddDriver)
	admin.GET("/drivers", adminController.GetDrivers)
	admin.PUT("/driver-status/:id", adminController.UpdateDriverStatus)
	admin.DELETE("/driver/:id", adminController.DeleteDriver)
}

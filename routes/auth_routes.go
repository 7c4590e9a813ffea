package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/movekenya/movekenya_backend/controllers"
	"github.com/movekenya/movekenya_backend/middleware"
)

// RegisterAuthRoutes sets up the public authentication routes.
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	e.POST("/signup", authController.Signup)
	e.POST("/login", authController.Login)
	e.POST("/verify-otp", authController.VerifyOTP)
	e.POST("/forgot-password", authController.ForgotPassword)
	e.POST("/reset-password", authController.ResetPassword)

	// Session introspection for clients holding a token from verify-otp
	e.GET("/validate-token", authController.ValidateToken, middleware.JWTMiddleware())
}

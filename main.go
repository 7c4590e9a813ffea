package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/movekenya/movekenya_backend/config"
	"github.com/movekenya/movekenya_backend/controllers"
	"github.com/movekenya/movekenya_backend/middleware"
	"github.com/movekenya/movekenya_backend/repositories"
	"github.com/movekenya/movekenya_backend/routes"
	"github.com/movekenya/movekenya_backend/utils"
	"github.com/movekenya/movekenya_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to database
	client := config.ConnectDB()
	db := client.Database(config.DatabaseName())

	// Connect to Redis; nil means the in-memory ledger takes over
	redisClient := config.ConnectRedis()

	var otps repositories.OTPLedger
	if redisClient != nil {
		otps = repositories.NewRedisLedger(redisClient)
	} else {
		otps = repositories.NewMemoryLedger()
	}

	mailer, err := utils.NewSMTPMailerFromEnv()
	if err != nil {
		log.Fatal("Mailer configuration error: ", err)
	}

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client)
	driverRepo := repositories.NewDriverRepository(client)
	accounts := repositories.NewMongoAccountResolver(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo, accounts, otps, mailer)
	adminController := controllers.NewAdminController(driverRepo)

	// Setup routes
	routes.SetupRoutes(e, wsHub, authController, adminController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		if err := e.Start(":" + port); err != nil {
			log.Println("Server stopped:", err)
		}
	}()
	log.Printf("Server running on port %s...", port)

	// On interrupt: close realtime clients first, then the listener after a
	// short grace countdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Interrupt signal received! Closing server...")
	wsHub.CloseAll()

	for seconds := 3; seconds > 0; seconds-- {
		log.Printf("Closing server in...%d", seconds)
		time.Sleep(1 * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}
	config.CloseRedis()
	client.Disconnect(ctx)

	log.Println("Server Closed!")
}

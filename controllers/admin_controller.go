package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movekenya/movekenya_backend/models"
	"github.com/movekenya/movekenya_backend/repositories"
	"github.com/movekenya/movekenya_backend/utils"
)

// AdminController is the thin driver CRUD behind the admin panel.
type AdminController struct {
	drivers repositories.DriverStore
	logger  *log.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(drivers repositories.DriverStore) *AdminController {
	return &AdminController{
		drivers: drivers,
		logger:  log.New(os.Stdout, "[ADMIN] ", log.LstdFlags),
	}
}

// AddDriver inserts a driver row with status forced to inactive regardless of
// input. Duplicate emails are not checked here; the unique index on the
// drivers collection is the only guard.
func (ac *AdminController) AddDriver(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AddDriverRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, "Missing required fields")
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid email format")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Failed to add driver")
	}

	driver := &models.Driver{
		FullName: utils.SanitizeInput(req.FullName),
		Email:    email,
		Phone:    req.Phone,
		Password: hashed,
		Status:   models.DriverStatusInactive,
	}
	if err := ac.drivers.Insert(ctx, driver); err != nil {
		ac.logger.Printf("Driver insert failed: %v", err)
		return c.String(http.StatusInternalServerError, "Failed to add driver")
	}

	return c.String(http.StatusOK, "Driver added successfully")
}

// GetDrivers lists all drivers. Password hashes are projected away before the
// rows leave the store.
func (ac *AdminController) GetDrivers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	drivers, err := ac.drivers.List(ctx)
	if err != nil {
		ac.logger.Printf("Driver listing failed: %v", err)
		return c.String(http.StatusInternalServerError, "DB error")
	}

	return c.JSON(http.StatusOK, drivers)
}

// UpdateDriverStatus sets a driver's status by id. The update is
// unconditional: no validation of the status value and no check that the id
// matched anything.
func (ac *AdminController) UpdateDriverStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.DriverStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	if err := ac.drivers.UpdateStatus(ctx, c.Param("id"), req.Status); err != nil {
		ac.logger.Printf("Driver status update failed: %v", err)
		return c.String(http.StatusInternalServerError, "DB error")
	}

	return c.String(http.StatusOK, "Status updated")
}

// DeleteDriver removes a driver by id. Deleting an id that does not exist
// still reports success.
func (ac *AdminController) DeleteDriver(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ac.drivers.Delete(ctx, c.Param("id")); err != nil {
		ac.logger.Printf("Driver delete failed: %v", err)
		return c.String(http.StatusInternalServerError, "DB error")
	}

	return c.String(http.StatusOK, "Driver deleted")
}

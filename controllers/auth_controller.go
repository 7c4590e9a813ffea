package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movekenya/movekenya_backend/middleware"
	"github.com/movekenya/movekenya_backend/models"
	"github.com/movekenya/movekenya_backend/repositories"
	"github.com/movekenya/movekenya_backend/utils"
)

// AuthController contains authentication logic: signup, the login/OTP state
// machine and password reset.
type AuthController struct {
	users    repositories.UserStore
	accounts *repositories.AccountResolver
	otps     repositories.OTPLedger
	mailer   utils.Mailer
	logger   *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(users repositories.UserStore, accounts *repositories.AccountResolver, otps repositories.OTPLedger, mailer utils.Mailer) *AuthController {
	return &AuthController{
		users:    users,
		accounts: accounts,
		otps:     otps,
		mailer:   mailer,
		logger:   log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Signup handler. Only rider accounts are self-service; uniqueness is checked
// against the users collection alone, so an email already present among
// admins or drivers is still accepted here.
func (ac *AuthController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SignupRequest
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
	req.Email = email
	req.FullName = utils.SanitizeInput(req.FullName)

	if req.Phone != "" {
		phone, err := utils.SanitizePhone(req.Phone)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid phone number format")
		}
		req.Phone = phone
	}

	_, err = ac.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return c.String(http.StatusBadRequest, "User already exists")
	}
	if err != repositories.ErrNotFound {
		ac.logger.Printf("Signup existence check failed: %v", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Signup failed")
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
		Phone:    req.Phone,
	}
	if err := ac.users.Insert(ctx, user); err != nil {
		ac.logger.Printf("Signup insert failed: %v", err)
		return c.String(http.StatusInternalServerError, "Signup failed")
	}

	return c.String(http.StatusOK, "Signup successful! You can now log in.")
}

// Login handler. Probes the account collections in fixed priority order
// (admin, user, driver); the first email hit decides the role and a password
// failure there does not fall through to a later collection. A verified
// password issues a pending OTP and mails the code.
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, "Email and password are required")
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid email format")
	}

	account, err := ac.accounts.Resolve(ctx, email)
	if err == repositories.ErrNotFound {
		return c.String(http.StatusNotFound, "Account not found")
	}
	if err != nil {
		ac.logger.Printf("Login account lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	if err := utils.CheckPassword(req.Password, account.Password); err != nil {
		return c.String(http.StatusUnauthorized, "Incorrect password")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return c.String(http.StatusInternalServerError, "Failed to generate OTP")
	}

	pending := models.PendingOTP{
		Email:     email,
		Code:      code,
		Role:      account.Role,
		ExpiresAt: time.Now().Add(repositories.OTPWindow),
	}
	if err := ac.otps.Put(ctx, email, pending); err != nil {
		ac.logger.Printf("Failed to record pending OTP: %v", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	// The pending entry stays recorded even when the mail bounces; the code
	// may still reach the user out-of-band and verification can proceed.
	body := "Your OTP is " + utils.FormatOTP(code) + ". It expires in 5 minutes."
	if err := ac.mailer.Send(email, "Your Login OTP", body); err != nil {
		ac.logger.Printf("Failed to send login OTP to %s: %v", email, err)
		return c.String(http.StatusInternalServerError, "Failed to send OTP email")
	}

	return c.String(http.StatusOK, "OTP sent to your email")
}

// VerifyOTP handler. A correct code is single use: the pending entry is
// consumed on success and a session token carrying the recorded role is
// issued.
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, "Email is required")
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid email format")
	}

	code, ok := utils.CoerceOTP(req.OTP)
	if !ok {
		return c.String(http.StatusBadRequest, "Invalid OTP")
	}

	pending, err := ac.otps.Get(ctx, email)
	if err == repositories.ErrNoPending {
		return c.String(http.StatusBadRequest, "Invalid OTP")
	}
	if err != nil {
		ac.logger.Printf("OTP lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Failed to verify OTP")
	}

	if pending.Code != code {
		return c.String(http.StatusBadRequest, "Invalid OTP")
	}

	if err := ac.otps.Delete(ctx, email); err != nil {
		ac.logger.Printf("Failed to consume OTP for %s: %v", email, err)
	}

	token, err := middleware.GenerateJWT(email, pending.Role)
	if err != nil {
		ac.logger.Printf("Failed to generate token for %s: %v", email, err)
		token = ""
	}

	return c.JSON(http.StatusOK, models.VerifyOTPResponse{
		Message: "Login successful!",
		Role:    pending.Role,
		Token:   token,
	})
}

// ForgotPassword handler. Operates only on the users collection; the pending
// entry carries no role because no collection probe precedes it.
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, "Email is required")
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid email format")
	}

	_, err = ac.users.FindByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return c.String(http.StatusNotFound, "Email not found")
	}
	if err != nil {
		ac.logger.Printf("Forgot-password lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return c.String(http.StatusInternalServerError, "Failed to generate OTP")
	}

	pending := models.PendingOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(repositories.OTPWindow),
	}
	if err := ac.otps.Put(ctx, email, pending); err != nil {
		ac.logger.Printf("Failed to record pending OTP: %v", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	body := "Your password reset OTP is " + utils.FormatOTP(code)
	if err := ac.mailer.Send(email, "Password Reset OTP", body); err != nil {
		ac.logger.Printf("Failed to send reset OTP to %s: %v", email, err)
		return c.String(http.StatusInternalServerError, "Failed to send OTP email")
	}

	return c.String(http.StatusOK, "Password reset OTP sent.")
}

// ResetPassword handler. Validates the pending code exactly like VerifyOTP,
// then swaps the stored hash. The pending entry is consumed only after the
// update succeeds so a store fault leaves a retry possible.
func (ac *AuthController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, "Email and new password are required")
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid email format")
	}

	code, ok := utils.CoerceOTP(req.OTP)
	if !ok {
		return c.String(http.StatusBadRequest, "Invalid OTP")
	}

	pending, err := ac.otps.Get(ctx, email)
	if err == repositories.ErrNoPending {
		return c.String(http.StatusBadRequest, "Invalid OTP")
	}
	if err != nil {
		ac.logger.Printf("OTP lookup failed: %v", err)
		return c.String(http.StatusInternalServerError, "Failed to verify OTP")
	}

	if pending.Code != code {
		return c.String(http.StatusBadRequest, "Invalid OTP")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error updating password")
	}

	if err := ac.users.UpdatePassword(ctx, email, hashed); err != nil {
		ac.logger.Printf("Password update failed for %s: %v", email, err)
		return c.String(http.StatusInternalServerError, "Error updating password")
	}

	if err := ac.otps.Delete(ctx, email); err != nil {
		ac.logger.Printf("Failed to consume OTP for %s: %v", email, err)
	}

	return c.String(http.StatusOK, "Password reset successful!")
}

// ValidateToken returns the claims of a valid session token. The route is
// mounted behind JWTMiddleware, which has already stashed them.
func (ac *AuthController) ValidateToken(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid": true,
		"email": c.Get("email"),
		"role":  c.Get("role"),
	})
}

// models/auth.go

package models

// SignupRequest is the body of POST /signup. Signup only ever creates rider
// accounts; drivers are added through the admin panel and admins are seeded
// out of band.
type SignupRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest accepts the otp field as either a JSON number or a JSON
// string; clients are inconsistent about which they send. The handler coerces
// it to an int before comparing.
type VerifyOTPRequest struct {
	Email string      `json:"email" validate:"required"`
	OTP   interface{} `json:"otp"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string      `json:"email" validate:"required"`
	OTP         interface{} `json:"otp"`
	NewPassword string      `json:"newPassword" validate:"required"`
}

// VerifyOTPResponse is the JSON envelope returned on successful verification.
type VerifyOTPResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Token   string `json:"token,omitempty"`
}

// AddDriverRequest is the body of POST /admin/add-driver.
type AddDriverRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type DriverStatusRequest struct {
	Status string `json:"status"`
}

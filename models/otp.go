package models

import (
	"time"
)

// PendingOTP is a one-time login or reset code held in the OTP ledger,
// keyed by email. Role is empty for forgot-password codes because no
// collection probe precedes their issuance.
type PendingOTP struct {
	Email     string    `json:"email"`
	Code      int       `json:"code"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the code is past its 5-minute window.
func (p PendingOTP) Expired() bool {
	return time.Now().After(p.ExpiresAt)
}

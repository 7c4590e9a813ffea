package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// OTP codes are always six digits, drawn uniformly from [100000, 999999] so
// they never carry a leading zero.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a fresh 6-digit one-time code.
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}

// CoerceOTP normalizes an otp value decoded from JSON into an int. Clients
// send the code as either a number or a string, so equality has to be numeric
// rather than type-strict.
func CoerceOTP(v interface{}) (int, bool) {
	switch code := v.(type) {
	case float64:
		return int(code), true
	case int:
		return code, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// FormatOTP renders a code for inclusion in a mail body.
func FormatOTP(code int) string {
	return fmt.Sprintf("%06d", code)
}

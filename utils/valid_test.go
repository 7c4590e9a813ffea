package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Jane@X.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Jane", SanitizeInput("  Jane  "))
	assert.Equal(t, "&lt;b&gt;Jane&lt;/b&gt;", SanitizeInput("<b>Jane</b>"))
}

func TestSanitizePhone(t *testing.T) {
	phone, err := SanitizePhone("+254 (700) 123-456")
	require.NoError(t, err)
	assert.Equal(t, "+254700123456", phone)

	// Optional: empty passes through
	phone, err = SanitizePhone("")
	require.NoError(t, err)
	assert.Equal(t, "", phone)

	_, err = SanitizePhone("12")
	assert.Error(t, err)
}

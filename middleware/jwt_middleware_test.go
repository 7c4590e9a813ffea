package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movekenya/movekenya_backend/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("jane@x.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("jane@x.com", models.RoleUser)
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	e := echo.New()
	handler := JWTMiddleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("role").(string))
	})

	// No header
	req := httptest.NewRequest(http.MethodGet, "/validate-token", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	// Valid token
	token, err := GenerateJWT("boss@x.com", models.RoleAdmin)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/validate-token", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, models.RoleAdmin, rec.Body.String())
}

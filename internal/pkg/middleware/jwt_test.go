package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/praswib/tumpangan/internal/pkg/jwt"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *models.Config {
	cfg := &models.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 60
	cfg.JWT.Issuer = "test-issuer"
	return cfg
}

func runAuthMiddleware(t *testing.T, authHeader string, cfg *models.Config) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings/open", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuthMiddleware(cfg.JWT)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, rec, handler(c)
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, _, err := jwtpkg.GenerateToken(userID, models.RoleDriver, cfg)
	require.NoError(t, err)

	c, rec, err := runAuthMiddleware(t, "Bearer "+token, cfg)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := CallerID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	gotRole, ok := CallerRole(c)
	require.True(t, ok)
	assert.Equal(t, models.RoleDriver, gotRole)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	_, rec, err := runAuthMiddleware(t, "", testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_BadScheme(t *testing.T) {
	_, rec, err := runAuthMiddleware(t, "Basic abc123", testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_WrongSecret(t *testing.T) {
	other := testJWTConfig()
	other.JWT.Secret = "a-different-secret"

	token, _, err := jwtpkg.GenerateToken(uuid.New(), models.RoleRider, other)
	require.NoError(t, err)

	_, rec, err := runAuthMiddleware(t, "Bearer "+token, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AllowsListedRoles(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/rides/x/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, uuid.New())
	c.Set(ContextKeyUserRole, models.RoleDriver)

	handler := RequireRole(models.RoleRider, models.RoleDriver)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_BlocksOtherRoles(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, uuid.New())
	c.Set(ContextKeyUserRole, models.RoleDriver)

	handler := RequireRole(models.RoleRider)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

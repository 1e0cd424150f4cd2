package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentiva/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func performWithIdentity(t *testing.T, requiredRole, cognitoID, role string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := req.Context()
	if cognitoID != "" {
		ctx = context.WithValue(ctx, common.CognitoIDKey, cognitoID)
	}
	if role != "" {
		ctx = context.WithValue(ctx, common.RoleKey, role)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(requiredRole)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	rec, err := performWithIdentity(t, common.RoleManager, "cog-123", common.RoleManager)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsMismatchedRole(t *testing.T) {
	_, err := performWithIdentity(t, common.RoleManager, "cog-123", common.RoleTenant)

	httpErr, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	}
}

func TestRequireRole_RejectsMissingIdentity(t *testing.T) {
	_, err := performWithIdentity(t, common.RoleTenant, "", "")

	httpErr, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}

func TestRequireRole_MissingRoleClaimIsForbidden(t *testing.T) {
	_, err := performWithIdentity(t, common.RoleTenant, "cog-123", "")

	httpErr, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	}
}

package middleware

import (
	"net/http"

	"rentiva/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route on the role claim extracted by the auth
// middleware. A missing identity is a 401; a role mismatch is a 403.
func RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetCognitoIDFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			role, ok := common.GetRoleFromContext(ctx)
			if !ok || role != requiredRole {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			return next(c)
		}
	}
}

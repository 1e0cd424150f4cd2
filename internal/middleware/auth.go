package middleware

import (
	"context"
	"net/http"
	"strings"

	"rentiva/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates bearer tokens issued by the identity provider and
// puts the subject and role claims on the request context. Token issuance,
// refresh and revocation are entirely the provider's problem.
type AuthMiddleware struct {
	keyFn jwt.Keyfunc
}

// NewAuthMiddleware builds the middleware against the Cognito user pool's
// JWKS URL. When jwksURL is empty (local development) tokens are verified
// with the shared HMAC secret instead.
func NewAuthMiddleware(jwksURL, devSecret string) (*AuthMiddleware, error) {
	if jwksURL == "" {
		secret := []byte(devSecret)
		return &AuthMiddleware{
			keyFn: func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			},
		}, nil
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{keyFn: jwks.Keyfunc}, nil
}

func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			token, err := jwt.Parse(tokenString, m.keyFn)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing sub in token")
			}

			role, _ := claims["custom:role"].(string)

			ctx := context.WithValue(c.Request().Context(), common.CognitoIDKey, sub)
			ctx = context.WithValue(ctx, common.RoleKey, role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

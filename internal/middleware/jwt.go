// Package middleware contains the echo middleware shared by the HTTP
// routes: bearer authentication, role checks, the Redis token bucket and
// the Redis response cache.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/utils"
)

// Context keys set by JWTAuth.
const (
	UserIDKey = "user_id" // uint64
	RoleKey   = "role"    // string
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the token's user ID and role in the request context under
// UserIDKey and RoleKey.  The secret must match the one used when issuing
// tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			userID, role, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(UserIDKey, userID)
			c.Set(RoleKey, role)
			return next(c)
		}
	}
}

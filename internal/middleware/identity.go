package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user for use in Redis keys.  It
// returns "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	switch v := c.Get(UserIDKey).(type) {
	case uint64:
		if v != 0 {
			return strconv.FormatUint(v, 10)
		}
	case float64:
		if v > 0 {
			return strconv.FormatUint(uint64(v), 10)
		}
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}

// passthrough is the no-op middleware used when a Redis feature is off.
func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/handler"
	"github.com/MrReptiloid/HotelApp/internal/middleware"
	"github.com/MrReptiloid/HotelApp/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the process is up.
	e.GET("/healthz", handler.Health)
}

// API creates the /api group.  Every API route passes through the given
// middleware (normally the Redis token bucket) before anything else.
func API(e *echo.Echo, mw ...echo.MiddlewareFunc) *echo.Group {
	return e.Group("/api", mw...)
}

// adminOnly is the middleware chain for administrator routes.
func adminOnly(jwtSecret string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdministrator),
	}
}

// RegisterAccount registers /api/account.  Register, login, refresh and
// logout work without a session; logout accepts either a refresh token in
// the body or a bearer token.  /me requires a valid access token.
func RegisterAccount(api *echo.Group, a *handler.AuthHandler, jwtSecret string) {
	g := api.Group("/account")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

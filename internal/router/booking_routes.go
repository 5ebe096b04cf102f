package router

import (
	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/handler"
	"github.com/MrReptiloid/HotelApp/internal/middleware"
)

// RegisterBookings registers /api/bookings.  All routes require a valid
// JWT; ownership and administrator access are decided by the booking
// service, not by the route.
func RegisterBookings(api *echo.Group, b *handler.BookingHandler, jwtSecret string) {
	g := api.Group("/bookings", middleware.JWTAuth(jwtSecret))
	g.GET("/my", b.Mine)
	g.GET("/:id", b.Get)
	g.POST("", b.Create)
	g.POST("/:id/cancel", b.Cancel)
}

// RegisterAdmin registers /api/admin for the Administrator role.
func RegisterAdmin(api *echo.Group, a *handler.AdminHandler, jwtSecret string) {
	g := api.Group("/admin", adminOnly(jwtSecret)...)
	g.GET("/bookings", a.AllBookings)
	g.GET("/stats", a.Statistics)
}

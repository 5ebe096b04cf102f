package router

import (
	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/handler"
)

// RegisterCatalog registers /api/hotels and /api/rooms.  Reads are public
// and go through cache; writes require the Administrator role and purge
// the cache once they succeed.
func RegisterCatalog(api *echo.Group, h *handler.HotelHandler, r *handler.RoomHandler, jwtSecret string, cache, purge echo.MiddlewareFunc) {
	admin := append(adminOnly(jwtSecret), purge)

	// ---- Hotels ----
	hotels := api.Group("/hotels")
	hotels.GET("", h.List, cache)
	hotels.GET("/search", h.Search, cache)
	hotels.GET("/:id", h.Get, cache)
	hotels.POST("", h.Create, admin...)
	hotels.PUT("/:id", h.Update, admin...)
	hotels.DELETE("/:id", h.Delete, admin...)

	// ---- Rooms ----
	rooms := api.Group("/rooms")
	rooms.GET("/search", r.Search, cache)
	rooms.GET("/hotel/:hotelId", r.ByHotel, cache)
	rooms.GET("/:id", r.Get, cache)
	rooms.POST("", r.Create, admin...)
	rooms.PUT("/:id", r.Update, admin...)
	rooms.DELETE("/:id", r.Delete, admin...)
}

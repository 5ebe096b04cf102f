package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/repository"
)

// StatsSource produces the administrator dashboard figures.
type StatsSource interface {
	Stats(ctx context.Context) (repository.AdminStats, error)
}

// AdminHandler serves /api/admin.  Routes are gated by RequireRole.
type AdminHandler struct {
	Bookings BookingService
	Stats    StatsSource
}

func NewAdminHandler(b BookingService, s StatsSource) *AdminHandler {
	return &AdminHandler{Bookings: b, Stats: s}
}

// AllBookings handles GET /api/admin/bookings.
func (h *AdminHandler) AllBookings(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Bookings.GetAll(ctx)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingList(list, true))
}

type monthResp struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	Count        int     `json:"count"`
	RevenueCents int64   `json:"revenue_cents"`
	Revenue      float64 `json:"revenue"`
}

type statsResp struct {
	TotalUsers      int         `json:"total_users"`
	TotalHotels     int         `json:"total_hotels"`
	TotalRooms      int         `json:"total_rooms"`
	TotalBookings   int         `json:"total_bookings"`
	ActiveBookings  int         `json:"active_bookings"`
	RevenueCents    int64       `json:"total_revenue_cents"`
	Revenue         float64     `json:"total_revenue"`
	BookingsByMonth []monthResp `json:"bookings_by_month"`
}

// Statistics handles GET /api/admin/stats.
func (h *AdminHandler) Statistics(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	s, err := h.Stats.Stats(ctx)
	if err != nil {
		return internalError(c, "load statistics failed", err)
	}
	resp := statsResp{
		TotalUsers: s.TotalUsers, TotalHotels: s.TotalHotels, TotalRooms: s.TotalRooms,
		TotalBookings: s.TotalBookings, ActiveBookings: s.ActiveBookings,
		RevenueCents: s.RevenueCents, Revenue: float64(s.RevenueCents) / 100,
		BookingsByMonth: make([]monthResp, 0, len(s.BookingsByMonth)),
	}
	for _, m := range s.BookingsByMonth {
		resp.BookingsByMonth = append(resp.BookingsByMonth, monthResp{
			Year: m.Year, Month: m.Month, Count: m.Count,
			RevenueCents: m.RevenueCents, Revenue: float64(m.RevenueCents) / 100,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

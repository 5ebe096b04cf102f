// Package handler contains the echo HTTP handlers.  Handlers resolve the
// caller from the context set by middleware.JWTAuth, call the repository
// or service layer and map its outcomes onto JSON responses of the form
// {"error": "..."} for failures.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/middleware"
	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/service"
)

// requestTimeout bounds every database round trip made by a handler.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// getUserID extracts the authenticated user ID from the echo context.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.UserIDKey).(type) {
	case uint64:
		if t != 0 {
			return t, nil
		}
	case int64:
		if t > 0 {
			return uint64(t), nil
		}
	case float64:
		if t > 0 {
			return uint64(t), nil
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil && n != 0 {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.RoleKey).(string)
	return role
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// parseDate accepts YYYY-MM-DD or RFC3339 and returns the UTC date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return model.UTCDate(t), nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

func internalError(c echo.Context, msg string, err error) error {
	c.Logger().Errorf("%s: %v", msg, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// bookingStatus maps a booking core outcome to an HTTP status.  The
// second result is false for infrastructure errors.
func bookingStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrPastCheckIn),
		errors.Is(err, service.ErrRoomUnavailable):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, service.ErrBookingConflict),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrAlreadyCompleted):
		return http.StatusConflict, true
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden, true
	}
	return http.StatusInternalServerError, false
}

func bookingError(c echo.Context, err error) error {
	status, known := bookingStatus(err)
	if !known {
		return internalError(c, "booking operation failed", err)
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// ----- response bodies -----

type hotelResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	RoomCount   int       `json:"room_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func toHotelResp(h model.Hotel) hotelResp {
	return hotelResp{
		ID: h.ID, Name: h.Name, City: h.City, Address: h.Address,
		Description: h.Description, RoomCount: h.RoomCount, CreatedAt: h.CreatedAt,
	}
}

type roomResp struct {
	ID                 uint64  `json:"id"`
	HotelID            uint64  `json:"hotel_id"`
	HotelName          string  `json:"hotel_name"`
	RoomNumber         string  `json:"room_number"`
	PricePerNightCents int64   `json:"price_per_night_cents"`
	PricePerNight      float64 `json:"price_per_night"`
	Capacity           int     `json:"capacity"`
	Description        string  `json:"description"`
	IsAvailable        bool    `json:"is_available"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID: r.ID, HotelID: r.HotelID, HotelName: r.HotelName, RoomNumber: r.RoomNumber,
		PricePerNightCents: r.PricePerNightCents, PricePerNight: r.PricePerNight(),
		Capacity: r.Capacity, Description: r.Description, IsAvailable: r.IsAvailable,
	}
}

type bookingResp struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	UserEmail       string    `json:"user_email,omitempty"`
	RoomID          uint64    `json:"room_id"`
	RoomNumber      string    `json:"room_number"`
	HotelID         uint64    `json:"hotel_id"`
	HotelName       string    `json:"hotel_name"`
	HotelCity       string    `json:"hotel_city"`
	CheckInDate     string    `json:"check_in_date"`
	CheckOutDate    string    `json:"check_out_date"`
	Nights          int       `json:"nights"`
	TotalPriceCents int64     `json:"total_price_cents"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// toBookingResp renders a booking.  withUser adds the owner's email,
// which only administrators see.
func toBookingResp(d model.BookingDetail, withUser bool) bookingResp {
	r := bookingResp{
		ID: d.ID, UserID: d.UserID, RoomID: d.RoomID, RoomNumber: d.RoomNumber,
		HotelID: d.HotelID, HotelName: d.HotelName, HotelCity: d.HotelCity,
		CheckInDate:     d.CheckIn.Format("2006-01-02"),
		CheckOutDate:    d.CheckOut.Format("2006-01-02"),
		Nights:          service.Nights(d.CheckIn, d.CheckOut),
		TotalPriceCents: d.TotalPriceCents,
		TotalPrice:      model.CentsToAmount(d.TotalPriceCents),
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
	}
	if withUser {
		r.UserEmail = d.UserEmail
	}
	return r
}

func toBookingList(list []model.BookingDetail, withUser bool) []bookingResp {
	out := make([]bookingResp, 0, len(list))
	for _, d := range list {
		out = append(out, toBookingResp(d, withUser))
	}
	return out
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// BookingService is the booking core as seen by the HTTP layer.
type BookingService interface {
	Create(ctx context.Context, userID, roomID uint64, checkIn, checkOut time.Time) (*model.BookingDetail, error)
	GetByIDFor(ctx context.Context, id, userID uint64, role string) (*model.BookingDetail, error)
	GetByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
	GetAll(ctx context.Context) ([]model.BookingDetail, error)
	Cancel(ctx context.Context, bookingID, userID uint64) error
}

// BookingHandler serves /api/bookings for authenticated users.
type BookingHandler struct {
	Bookings BookingService
}

func NewBookingHandler(s BookingService) *BookingHandler {
	if s == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: s}
}

type createBookingReq struct {
	RoomID       uint64 `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.RoomID == 0 {
		return badRequest(c, "room_id is required")
	}
	in, err := parseDate(req.CheckInDate)
	if err != nil {
		return badRequest(c, "check_in_date must be YYYY-MM-DD")
	}
	out, err := parseDate(req.CheckOutDate)
	if err != nil {
		return badRequest(c, "check_out_date must be YYYY-MM-DD")
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	d, err := h.Bookings.Create(ctx, userID, req.RoomID, in, out)
	if err != nil {
		return bookingError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/bookings/%d", d.ID))
	return c.JSON(http.StatusCreated, toBookingResp(*d, false))
}

// Mine handles GET /api/bookings/my.
func (h *BookingHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Bookings.GetByUser(ctx, userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingList(list, false))
}

// Get handles GET /api/bookings/:id.  Owners and administrators may read
// a booking; others get 403.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	role := getRole(c)
	ctx, cancel := requestContext(c)
	defer cancel()
	d, err := h.Bookings.GetByIDFor(ctx, id, userID, role)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*d, model.IsAdministrator(role)))
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Bookings.Cancel(ctx, id, userID); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/repository"
)

// RoomStore is the room persistence used by RoomHandler.
type RoomStore interface {
	Create(ctx context.Context, r *model.Room) error
	GetByID(ctx context.Context, id uint64) (model.Room, error)
	ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error)
	Search(ctx context.Context, f repository.RoomSearch) ([]model.Room, error)
	Update(ctx context.Context, r *model.Room) error
	Delete(ctx context.Context, id uint64) error
}

// RoomHandler serves the room catalog and the availability search.
type RoomHandler struct {
	Rooms RoomStore
}

func NewRoomHandler(s RoomStore) *RoomHandler { return &RoomHandler{Rooms: s} }

type roomReq struct {
	HotelID       uint64  `json:"hotel_id"`
	RoomNumber    string  `json:"room_number"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	Description   string  `json:"description"`
	IsAvailable   *bool   `json:"is_available"`
}

// toRoom validates the request and converts the decimal price to cents.
func (r roomReq) toRoom() (model.Room, string) {
	number := strings.TrimSpace(r.RoomNumber)
	switch {
	case number == "":
		return model.Room{}, "room_number is required"
	case r.PricePerNight < 0 || math.IsNaN(r.PricePerNight) || math.IsInf(r.PricePerNight, 0):
		return model.Room{}, "price_per_night must be non-negative"
	case r.Capacity <= 0:
		return model.Room{}, "capacity must be positive"
	}
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return model.Room{
		HotelID:            r.HotelID,
		RoomNumber:         number,
		PricePerNightCents: int64(math.Round(r.PricePerNight * 100)),
		Capacity:           r.Capacity,
		Description:        strings.TrimSpace(r.Description),
		IsAvailable:        available,
	}, ""
}

func roomList(list []model.Room) []roomResp {
	out := make([]roomResp, 0, len(list))
	for _, r := range list {
		out = append(out, toRoomResp(r))
	}
	return out
}

func roomNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
}

// Get handles GET /api/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid room id")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	room, err := h.Rooms.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return roomNotFound(c)
	}
	if err != nil {
		return internalError(c, "load room failed", err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// ByHotel handles GET /api/rooms/hotel/:hotelId.
func (h *RoomHandler) ByHotel(c echo.Context) error {
	hotelID, ok := parseID(c, "hotelId")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return internalError(c, "list rooms failed", err)
	}
	return c.JSON(http.StatusOK, roomList(list))
}

// Search handles GET /api/rooms/search.
func (h *RoomHandler) Search(c echo.Context) error {
	f := repository.RoomSearch{City: strings.TrimSpace(c.QueryParam("city"))}
	if s := c.QueryParam("check_in"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return badRequest(c, "check_in must be YYYY-MM-DD")
		}
		f.CheckIn = &t
	}
	if s := c.QueryParam("check_out"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return badRequest(c, "check_out must be YYYY-MM-DD")
		}
		f.CheckOut = &t
	}
	if f.CheckIn != nil && f.CheckOut != nil && !f.CheckIn.Before(*f.CheckOut) {
		return badRequest(c, "check_in must be before check_out")
	}
	if s := c.QueryParam("min_capacity"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return badRequest(c, "min_capacity must be a non-negative integer")
		}
		f.MinCapacity = n
	}
	if s := c.QueryParam("max_price"); s != "" {
		p, err := strconv.ParseFloat(s, 64)
		if err != nil || p < 0 {
			return badRequest(c, "max_price must be a non-negative number")
		}
		cents := int64(math.Round(p * 100))
		f.MaxPriceCents = &cents
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Rooms.Search(ctx, f)
	if err != nil {
		return internalError(c, "search rooms failed", err)
	}
	return c.JSON(http.StatusOK, roomList(list))
}

// Create handles POST /api/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.HotelID == 0 {
		return badRequest(c, "hotel_id is required")
	}
	room, msg := req.toRoom()
	if msg != "" {
		return badRequest(c, msg)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	err := h.Rooms.Create(ctx, &room)
	switch {
	case errors.Is(err, repository.ErrHotelNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in this hotel"})
	case err != nil:
		return internalError(c, "create room failed", err)
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/rooms/%d", room.ID))
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// Update handles PUT /api/rooms/:id.  The owning hotel cannot change.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid room id")
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	room, msg := req.toRoom()
	if msg != "" {
		return badRequest(c, msg)
	}
	room.ID = id
	ctx, cancel := requestContext(c)
	defer cancel()
	err := h.Rooms.Update(ctx, &room)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return roomNotFound(c)
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in this hotel"})
	case err != nil:
		return internalError(c, "update room failed", err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// Delete handles DELETE /api/rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid room id")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	err := h.Rooms.Delete(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return roomNotFound(c)
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete room with bookings"})
	case err != nil:
		return internalError(c, "delete room failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

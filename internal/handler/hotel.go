package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/repository"
)

// HotelStore is the hotel persistence used by HotelHandler.
type HotelStore interface {
	Create(ctx context.Context, h *model.Hotel) error
	GetByID(ctx context.Context, id uint64) (model.Hotel, error)
	List(ctx context.Context) ([]model.Hotel, error)
	SearchByCity(ctx context.Context, city string) ([]model.Hotel, error)
	Update(ctx context.Context, h *model.Hotel) error
	Delete(ctx context.Context, id uint64) error
}

// HotelHandler serves the hotel catalog.  Reads are public; writes are
// mounted behind the administrator gate.
type HotelHandler struct {
	Hotels HotelStore
}

func NewHotelHandler(s HotelStore) *HotelHandler { return &HotelHandler{Hotels: s} }

type hotelReq struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (r *hotelReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.Address = strings.TrimSpace(r.Address)
	switch {
	case r.Name == "":
		return "hotel name is required"
	case r.City == "":
		return "city is required"
	}
	return ""
}

func hotelList(list []model.Hotel) []hotelResp {
	out := make([]hotelResp, 0, len(list))
	for _, h := range list {
		out = append(out, toHotelResp(h))
	}
	return out
}

// List handles GET /api/hotels.
func (h *HotelHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Hotels.List(ctx)
	if err != nil {
		return internalError(c, "list hotels failed", err)
	}
	return c.JSON(http.StatusOK, hotelList(list))
}

// Search handles GET /api/hotels/search?city=.
func (h *HotelHandler) Search(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return badRequest(c, "city parameter is required")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Hotels.SearchByCity(ctx, city)
	if err != nil {
		return internalError(c, "search hotels failed", err)
	}
	return c.JSON(http.StatusOK, hotelList(list))
}

// Get handles GET /api/hotels/:id.
func (h *HotelHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	hotel, err := h.Hotels.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	}
	if err != nil {
		return internalError(c, "load hotel failed", err)
	}
	return c.JSON(http.StatusOK, toHotelResp(hotel))
}

// Create handles POST /api/hotels.
func (h *HotelHandler) Create(c echo.Context) error {
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return badRequest(c, msg)
	}
	hotel := model.Hotel{Name: req.Name, City: req.City, Address: req.Address, Description: req.Description}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Hotels.Create(ctx, &hotel); err != nil {
		return internalError(c, "create hotel failed", err)
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/hotels/%d", hotel.ID))
	return c.JSON(http.StatusCreated, toHotelResp(hotel))
}

// Update handles PUT /api/hotels/:id.
func (h *HotelHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return badRequest(c, msg)
	}
	hotel := model.Hotel{ID: id, Name: req.Name, City: req.City, Address: req.Address, Description: req.Description}
	ctx, cancel := requestContext(c)
	defer cancel()
	err := h.Hotels.Update(ctx, &hotel)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	}
	if err != nil {
		return internalError(c, "update hotel failed", err)
	}
	return c.JSON(http.StatusOK, toHotelResp(hotel))
}

// Delete handles DELETE /api/hotels/:id.
func (h *HotelHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	err := h.Hotels.Delete(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete hotel with booked rooms"})
	case err != nil:
		return internalError(c, "delete hotel failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/repository"
)

type stubHotels struct {
	hotels    []model.Hotel
	err       error
	city      string
	deleteErr error
}

func (s *stubHotels) Create(ctx context.Context, h *model.Hotel) error {
	if s.err != nil {
		return s.err
	}
	h.ID = 5
	return nil
}

func (s *stubHotels) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	for _, h := range s.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Hotel{}, sql.ErrNoRows
}

func (s *stubHotels) List(ctx context.Context) ([]model.Hotel, error) { return s.hotels, s.err }

func (s *stubHotels) SearchByCity(ctx context.Context, city string) ([]model.Hotel, error) {
	s.city = city
	return s.hotels, s.err
}

func (s *stubHotels) Update(ctx context.Context, h *model.Hotel) error {
	if _, err := s.GetByID(ctx, h.ID); err != nil {
		return err
	}
	return s.err
}

func (s *stubHotels) Delete(ctx context.Context, id uint64) error { return s.deleteErr }

func TestHotelHandlers(t *testing.T) {
	stub := &stubHotels{hotels: []model.Hotel{{ID: 1, Name: "Grand", City: "Kyiv", RoomCount: 2}}}
	h := NewHotelHandler(stub)

	rec := call(h.Search, http.MethodGet, "/api/hotels/search", "", 0, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.Search, http.MethodGet, "/api/hotels/search?city=%20kyiv%20", "", 0, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kyiv", stub.city)
	var list []hotelResp
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].RoomCount)

	rec = call(h.Get, http.MethodGet, "/api/hotels/9", "", 0, "", "id", "9")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(h.Create, http.MethodPost, "/api/hotels", `{"name":"  ","city":"Lviv"}`, 1, model.RoleAdministrator)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.Create, http.MethodPost, "/api/hotels", `{"name":"Opera","city":"Lviv"}`, 1, model.RoleAdministrator)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/hotels/5", rec.Header().Get("Location"))

	rec = call(h.Update, http.MethodPut, "/api/hotels/9", `{"name":"Opera","city":"Lviv"}`, 1, model.RoleAdministrator, "id", "9")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stub.deleteErr = repository.ErrConflict
	rec = call(h.Delete, http.MethodDelete, "/api/hotels/1", "", 1, model.RoleAdministrator, "id", "1")
	assert.Equal(t, http.StatusConflict, rec.Code)

	stub.deleteErr = nil
	rec = call(h.Delete, http.MethodDelete, "/api/hotels/1", "", 1, model.RoleAdministrator, "id", "1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type stubRooms struct {
	created   model.Room
	filter    repository.RoomSearch
	createErr error
	deleteErr error
}

func (s *stubRooms) Create(ctx context.Context, r *model.Room) error {
	if s.createErr != nil {
		return s.createErr
	}
	r.ID = 12
	s.created = *r
	return nil
}

func (s *stubRooms) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return model.Room{}, sql.ErrNoRows
}

func (s *stubRooms) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	return nil, nil
}

func (s *stubRooms) Search(ctx context.Context, f repository.RoomSearch) ([]model.Room, error) {
	s.filter = f
	return []model.Room{{ID: 1, HotelID: 2, RoomNumber: "101", PricePerNightCents: 9950, Capacity: 2, IsAvailable: true}}, nil
}

func (s *stubRooms) Update(ctx context.Context, r *model.Room) error { return sql.ErrNoRows }

func (s *stubRooms) Delete(ctx context.Context, id uint64) error { return s.deleteErr }

func TestRoomCreateHandler(t *testing.T) {
	stub := &stubRooms{}
	h := NewRoomHandler(stub)

	rec := call(h.Create, http.MethodPost, "/api/rooms", `{"hotel_id":2,"room_number":" 101 ","price_per_night":99.95,"capacity":2}`, 1, model.RoleAdministrator)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(9995), stub.created.PricePerNightCents)
	assert.Equal(t, "101", stub.created.RoomNumber)
	assert.True(t, stub.created.IsAvailable)
	assert.Equal(t, "/api/rooms/12", rec.Header().Get("Location"))

	for _, body := range []string{
		`{"room_number":"101","price_per_night":10,"capacity":2}`,
		`{"hotel_id":2,"room_number":"","price_per_night":10,"capacity":2}`,
		`{"hotel_id":2,"room_number":"101","price_per_night":-1,"capacity":2}`,
		`{"hotel_id":2,"room_number":"101","price_per_night":10,"capacity":0}`,
	} {
		rec = call(h.Create, http.MethodPost, "/api/rooms", body, 1, model.RoleAdministrator)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	valid := `{"hotel_id":2,"room_number":"101","price_per_night":10,"capacity":2,"is_available":false}`
	stub.createErr = repository.ErrDuplicate
	rec = call(h.Create, http.MethodPost, "/api/rooms", valid, 1, model.RoleAdministrator)
	assert.Equal(t, http.StatusConflict, rec.Code)

	stub.createErr = repository.ErrHotelNotFound
	rec = call(h.Create, http.MethodPost, "/api/rooms", valid, 1, model.RoleAdministrator)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoomSearchHandler(t *testing.T) {
	stub := &stubRooms{}
	h := NewRoomHandler(stub)

	rec := call(h.Search, http.MethodGet, "/api/rooms/search?city=Kyiv&check_in=2025-01-01&check_out=2025-01-03&min_capacity=2&max_price=120.5", "", 0, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kyiv", stub.filter.City)
	require.NotNil(t, stub.filter.CheckIn)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), *stub.filter.CheckOut)
	assert.Equal(t, 2, stub.filter.MinCapacity)
	require.NotNil(t, stub.filter.MaxPriceCents)
	assert.Equal(t, int64(12050), *stub.filter.MaxPriceCents)

	var list []roomResp
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 99.5, list[0].PricePerNight)

	for _, q := range []string{
		"check_in=2025-01-03&check_out=2025-01-03",
		"check_in=tomorrow",
		"min_capacity=-1",
		"max_price=abc",
	} {
		rec = call(h.Search, http.MethodGet, "/api/rooms/search?"+q, "", 0, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestRoomMissingAndDelete(t *testing.T) {
	stub := &stubRooms{}
	h := NewRoomHandler(stub)

	rec := call(h.Get, http.MethodGet, "/api/rooms/4", "", 0, "", "id", "4")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(h.Update, http.MethodPut, "/api/rooms/4", `{"room_number":"101","price_per_night":10,"capacity":2}`, 1, model.RoleAdministrator, "id", "4")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stub.deleteErr = repository.ErrConflict
	rec = call(h.Delete, http.MethodDelete, "/api/rooms/4", "", 1, model.RoleAdministrator, "id", "4")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(h.ByHotel, http.MethodGet, "/api/rooms/hotel/x", "", 0, "", "hotelId", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h.ByHotel, http.MethodGet, "/api/rooms/hotel/2", "", 0, "", "hotelId", "2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

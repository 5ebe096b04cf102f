package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrReptiloid/HotelApp/internal/config"
	"github.com/MrReptiloid/HotelApp/internal/handler"
	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/repository"
	"github.com/MrReptiloid/HotelApp/internal/utils"
)

const secret = "router-secret"

type noBookings struct{}

func (noBookings) Create(context.Context, uint64, uint64, time.Time, time.Time) (*model.BookingDetail, error) {
	return &model.BookingDetail{Booking: model.Booking{ID: 1, Status: model.StatusConfirmed}}, nil
}
func (noBookings) GetByIDFor(context.Context, uint64, uint64, string) (*model.BookingDetail, error) {
	return &model.BookingDetail{}, nil
}
func (noBookings) GetByUser(context.Context, uint64) ([]model.BookingDetail, error) { return nil, nil }
func (noBookings) GetAll(context.Context) ([]model.BookingDetail, error) { return nil, nil }
func (noBookings) Cancel(context.Context, uint64, uint64) error { return nil }

type noStats struct{}

func (noStats) Stats(context.Context) (repository.AdminStats, error) { return repository.AdminStats{}, nil }

type noHotels struct{}

func (noHotels) Create(_ context.Context, h *model.Hotel) error { h.ID = 1; return nil }
func (noHotels) GetByID(context.Context, uint64) (model.Hotel, error) {
	return model.Hotel{ID: 1, Name: "Grand", City: "Kyiv"}, nil
}
func (noHotels) List(context.Context) ([]model.Hotel, error) { return nil, nil }
func (noHotels) SearchByCity(context.Context, string) ([]model.Hotel, error) { return nil, nil }
func (noHotels) Update(context.Context, *model.Hotel) error { return nil }
func (noHotels) Delete(context.Context, uint64) error { return nil }

type noRooms struct{}

func (noRooms) Create(_ context.Context, r *model.Room) error { r.ID = 1; return nil }
func (noRooms) GetByID(context.Context, uint64) (model.Room, error) {
	return model.Room{ID: 1, RoomNumber: "101", Capacity: 2}, nil
}
func (noRooms) ListByHotel(context.Context, uint64) ([]model.Room, error) { return nil, nil }
func (noRooms) Search(context.Context, repository.RoomSearch) ([]model.Room, error) {
	return nil, nil
}
func (noRooms) Update(context.Context, *model.Room) error { return nil }
func (noRooms) Delete(context.Context, uint64) error { return nil }

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newServer() *echo.Echo {
	e := echo.New()
	RegisterRoutes(e)
	api := API(e)
	RegisterAccount(api, handler.NewAuthHandler(config.Config{JWTSecret: secret}, nil, nil), secret)
	RegisterCatalog(api, handler.NewHotelHandler(noHotels{}), handler.NewRoomHandler(noRooms{}), secret, passthrough, passthrough)
	RegisterBookings(api, handler.NewBookingHandler(noBookings{}), secret)
	RegisterAdmin(api, handler.NewAdminHandler(noBookings{}, noStats{}), secret)
	return e
}

func token(t *testing.T, userID uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, userID, role, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func serve(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newServer(), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouteGates(t *testing.T) {
	e := newServer()
	client := token(t, 3, model.RoleClient)
	admin := token(t, 1, model.RoleAdministrator)
	hotel := `{"name":"Opera","city":"Lviv"}`

	cases := []struct {
		name         string
		method, path string
		auth, body   string
		want         int
	}{
		{"public hotel list", http.MethodGet, "/api/hotels", "", "", http.StatusOK},
		{"public hotel detail", http.MethodGet, "/api/hotels/1", "", "", http.StatusOK},
		{"public room search", http.MethodGet, "/api/rooms/search?city=Kyiv", "", "", http.StatusOK},
		{"rooms by hotel", http.MethodGet, "/api/rooms/hotel/1", "", "", http.StatusOK},
		{"hotel create anonymous", http.MethodPost, "/api/hotels", "", hotel, http.StatusUnauthorized},
		{"hotel create client", http.MethodPost, "/api/hotels", client, hotel, http.StatusForbidden},
		{"hotel create admin", http.MethodPost, "/api/hotels", admin, hotel, http.StatusCreated},
		{"room delete client", http.MethodDelete, "/api/rooms/1", client, "", http.StatusForbidden},
		{"room delete admin", http.MethodDelete, "/api/rooms/1", admin, "", http.StatusNoContent},
		{"my bookings anonymous", http.MethodGet, "/api/bookings/my", "", "", http.StatusUnauthorized},
		{"my bookings client", http.MethodGet, "/api/bookings/my", client, "", http.StatusOK},
		{"cancel client", http.MethodPost, "/api/bookings/1/cancel", client, "", http.StatusOK},
		{"bad token", http.MethodGet, "/api/bookings/my", "Bearer nope", "", http.StatusUnauthorized},
		{"admin stats client", http.MethodGet, "/api/admin/stats", client, "", http.StatusForbidden},
		{"admin stats admin", http.MethodGet, "/api/admin/stats", admin, "", http.StatusOK},
		{"admin bookings admin", http.MethodGet, "/api/admin/bookings", admin, "", http.StatusOK},
		{"me anonymous", http.MethodGet, "/api/account/me", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(e, tc.method, tc.path, tc.auth, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

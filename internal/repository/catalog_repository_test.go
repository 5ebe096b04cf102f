package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

var (
	hotelColumns      = []string{"id", "name", "city", "address", "description", "created_at", "rooms"}
	joinedRoomColumns = []string{"id", "hotel_id", "name", "room_number", "price_per_night_cents", "capacity", "description", "is_available"}
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%kyiv%", likePattern("  Kyiv "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestHotelSearchByCity(t *testing.T) {
	db, mock := newDB(t)
	repo := NewHotelRepo(db)

	mock.ExpectQuery(q("WHERE LOWER(h.city) LIKE ? ORDER BY h.name")).
		WithArgs("%kyiv%").
		WillReturnRows(sqlmock.NewRows(hotelColumns).
			AddRow(1, "Grand", "Kyiv", "Main st", "", clock, 4))

	list, err := repo.SearchByCity(context.Background(), "KYIV")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].RoomCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelDeleteConflict(t *testing.T) {
	db, mock := newDB(t)
	repo := NewHotelRepo(db)

	mock.ExpectExec(q("DELETE FROM hotels WHERE id = ?")).
		WithArgs(uint64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), ErrConflict)

	mock.ExpectExec(q("DELETE FROM hotels")).WithArgs(uint64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomCreateErrors(t *testing.T) {
	db, mock := newDB(t)
	repo := NewRoomRepo(db)
	rm := &model.Room{HotelID: 1, RoomNumber: "101", PricePerNightCents: 100, Capacity: 2, IsAvailable: true}

	mock.ExpectExec(q("INSERT INTO rooms")).WillReturnError(&mysql.MySQLError{Number: 1062})
	assert.ErrorIs(t, repo.Create(context.Background(), rm), ErrDuplicate)

	mock.ExpectExec(q("INSERT INTO rooms")).WillReturnError(&mysql.MySQLError{Number: 1452})
	assert.ErrorIs(t, repo.Create(context.Background(), rm), ErrHotelNotFound)

	mock.ExpectExec(q("INSERT INTO rooms")).
		WithArgs(uint64(1), "101", int64(100), 2, "", true).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery(q("WHERE r.id = ?")).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows(joinedRoomColumns).AddRow(12, 1, "Grand", "101", 100, 2, "", true))
	require.NoError(t, repo.Create(context.Background(), rm))
	assert.Equal(t, uint64(12), rm.ID)
	assert.Equal(t, "Grand", rm.HotelName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomSearchFilters(t *testing.T) {
	db, mock := newDB(t)
	repo := NewRoomRepo(db)
	in, out := date(2025, 3, 15), date(2025, 3, 20)
	maxPrice := int64(20000)

	mock.ExpectQuery(q("WHERE r.is_available = 1 AND LOWER(h.city) LIKE ? AND r.capacity >= ? AND r.price_per_night_cents <= ? AND NOT EXISTS")).
		WithArgs("%kyiv%", 2, int64(20000), "Confirmed",
			"2025-03-15", "2025-03-15", "2025-03-20", "2025-03-20", "2025-03-15", "2025-03-20").
		WillReturnRows(sqlmock.NewRows(joinedRoomColumns).
			AddRow(1, 1, "Grand", "101", 9000, 2, "", true).
			AddRow(2, 1, "Grand", "102", 15000, 3, "", true))

	list, err := repo.Search(context.Background(), RoomSearch{
		City: "Kyiv", CheckIn: &in, CheckOut: &out, MinCapacity: 2, MaxPriceCents: &maxPrice,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(9000), list[0].PricePerNightCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomSearchIgnoresSingleDate(t *testing.T) {
	db, mock := newDB(t)
	repo := NewRoomRepo(db)
	in := date(2025, 3, 15)

	mock.ExpectQuery(`WHERE r.is_available = 1 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(joinedRoomColumns))

	list, err := repo.Search(context.Background(), RoomSearch{CheckIn: &in})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomDelete(t *testing.T) {
	db, mock := newDB(t)
	repo := NewRoomRepo(db)
	count := func(n int) *sqlmock.Rows { return sqlmock.NewRows([]string{"n"}).AddRow(n) }

	mock.ExpectQuery(q("SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status = ?")).
		WithArgs(uint64(4), "Confirmed").WillReturnRows(count(1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrConflict)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM bookings")).WillReturnRows(count(0))
	mock.ExpectExec(q("DELETE FROM rooms WHERE id = ?")).
		WillReturnError(&mysql.MySQLError{Number: 1451})
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrConflict)

	mock.ExpectQuery(q("SELECT COUNT(*) FROM bookings")).WillReturnRows(count(0))
	mock.ExpectExec(q("DELETE FROM rooms WHERE id = ?")).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), 4))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomUpdateMissing(t *testing.T) {
	db, mock := newDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectQuery(q("WHERE r.id = ?")).WithArgs(uint64(9)).WillReturnRows(sqlmock.NewRows(joinedRoomColumns))
	err := repo.Update(context.Background(), &model.Room{ID: 9, RoomNumber: "1", Capacity: 1})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	db, mock := newDB(t)
	repo := NewStatsRepo(db)
	repo.now = func() time.Time { return time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC) }

	mock.ExpectQuery(q("(SELECT COUNT(*) FROM users)")).
		WithArgs("Confirmed", "Confirmed", "Completed").
		WillReturnRows(sqlmock.NewRows([]string{"u", "h", "r", "b", "a", "rev"}).AddRow(10, 2, 8, 30, 12, 456700))
	mock.ExpectQuery(q("GROUP BY YEAR(created_at), MONTH(created_at)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"y", "m", "c", "rev"}).
			AddRow(2025, 8, 3, 30000).
			AddRow(2025, 7, 5, 80000))

	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, s.TotalUsers)
	assert.Equal(t, 12, s.ActiveBookings)
	assert.Equal(t, int64(456700), s.RevenueCents)
	require.Len(t, s.BookingsByMonth, 2)
	assert.Equal(t, MonthlyBookings{Year: 2025, Month: 8, Count: 3, RevenueCents: 30000}, s.BookingsByMonth[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

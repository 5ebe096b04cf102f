package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// overlapCondition matches a booking row b whose stay collides with the
// range given by the six placeholders (see overlapArgs).  It is the SQL
// form of service.Overlaps and must stay in step with it.
const overlapCondition = `((b.check_in_date <= ? AND b.check_out_date > ?)
		  OR (b.check_in_date < ? AND b.check_out_date >= ?)
		  OR (b.check_in_date >= ? AND b.check_out_date <= ?))`

func overlapArgs(in, out time.Time) []any {
	i, o := sqlDate(in), sqlDate(out)
	return []any{i, i, o, o, i, o}
}

// sqlDate formats t as a DATE literal of its UTC calendar date.
func sqlDate(t time.Time) string { return t.UTC().Format("2006-01-02") }

// RoomRepo provides CRUD operations on rooms and the availability search.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomSelect = `SELECT r.id, r.hotel_id, h.name, r.room_number, r.price_per_night_cents,
						   r.capacity, r.description, r.is_available
					FROM rooms r
					JOIN hotels h ON h.id = r.hotel_id`

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.HotelID, &rm.HotelName, &rm.RoomNumber, &rm.PricePerNightCents,
		&rm.Capacity, &rm.Description, &rm.IsAvailable)
	return rm, err
}

func (r *RoomRepo) list(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// ErrHotelNotFound is returned by Create when the parent hotel is missing.
var ErrHotelNotFound = errors.New("hotel not found")

// Create inserts a room.  It returns ErrHotelNotFound when HotelID does
// not exist and ErrDuplicate when the hotel already has a room with the
// same number.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (hotel_id, room_number, price_per_night_cents, capacity, description, is_available)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rm.HotelID, rm.RoomNumber, rm.PricePerNightCents, rm.Capacity, rm.Description, rm.IsAvailable)
	if err != nil {
		switch {
		case isDuplicate(err):
			return ErrDuplicate
		case isMissingParent(err):
			return ErrHotelNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*rm = got
	return nil
}

// GetByID returns a room with its hotel name, or sql.ErrNoRows.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx, roomSelect+` WHERE r.id = ?`, id))
}

// ListByHotel returns the rooms of one hotel ordered by room number.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	return r.list(ctx, roomSelect+` WHERE r.hotel_id = ? ORDER BY r.room_number, r.id`, hotelID)
}

// RoomSearch filters the availability search.  Zero values disable a
// filter; the date filter applies only when both dates are set.
type RoomSearch struct {
	City          string
	CheckIn       *time.Time
	CheckOut      *time.Time
	MinCapacity   int
	MaxPriceCents *int64
}

// Search returns rooms flagged available that match the filters, cheapest
// first.  With both dates set, rooms holding a Confirmed booking that
// overlaps [CheckIn, CheckOut) are excluded.
func (r *RoomRepo) Search(ctx context.Context, f RoomSearch) ([]model.Room, error) {
	var (
		where = []string{"r.is_available = 1"}
		args  []any
	)
	if strings.TrimSpace(f.City) != "" {
		where = append(where, "LOWER(h.city) LIKE ?")
		args = append(args, likePattern(f.City))
	}
	if f.MinCapacity > 0 {
		where = append(where, "r.capacity >= ?")
		args = append(args, f.MinCapacity)
	}
	if f.MaxPriceCents != nil {
		where = append(where, "r.price_per_night_cents <= ?")
		args = append(args, *f.MaxPriceCents)
	}
	if f.CheckIn != nil && f.CheckOut != nil {
		where = append(where, `NOT EXISTS (SELECT 1 FROM bookings b
				 WHERE b.room_id = r.id AND b.status = ? AND `+overlapCondition+`)`)
		args = append(args, string(model.StatusConfirmed))
		args = append(args, overlapArgs(*f.CheckIn, *f.CheckOut)...)
	}
	q := roomSelect + " WHERE " + strings.Join(where, " AND ") + " ORDER BY r.price_per_night_cents, r.id"
	return r.list(ctx, q, args...)
}

// Update overwrites the editable fields of a room, including the
// availability flag.  It returns sql.ErrNoRows for a missing room and
// ErrDuplicate when the new number clashes with another room of the hotel.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	if _, err := r.GetByID(ctx, rm.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET room_number = ?, price_per_night_cents = ?, capacity = ?, description = ?, is_available = ?
		 WHERE id = ?`,
		rm.RoomNumber, rm.PricePerNightCents, rm.Capacity, rm.Description, rm.IsAvailable, rm.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = got
	return nil
}

// Delete removes a room.  It returns ErrConflict when the room has a
// Confirmed booking, or when any booking history still references it.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	var active int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status = ?`,
		id, string(model.StatusConfirmed)).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		if isReferenced(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// HotelRepo provides CRUD operations on hotels.  Listings carry the number
// of rooms each hotel has.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelSelect = `SELECT h.id, h.name, h.city, h.address, h.description, h.created_at,
							(SELECT COUNT(*) FROM rooms r WHERE r.hotel_id = h.id)
					 FROM hotels h`

func scanHotel(row interface{ Scan(...any) error }) (model.Hotel, error) {
	var h model.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.Description, &h.CreatedAt, &h.RoomCount)
	return h, err
}

func (r *HotelRepo) list(ctx context.Context, q string, args ...any) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Create inserts a hotel and reloads it so that CreatedAt is populated.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (name, city, address, description) VALUES (?, ?, ?, ?)`,
		h.Name, h.City, h.Address, h.Description)
	if err != nil {
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
	*h = got
	return nil
}

// GetByID returns one hotel or sql.ErrNoRows.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	return scanHotel(r.db.QueryRowContext(ctx, hotelSelect+` WHERE h.id = ?`, id))
}

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	return r.list(ctx, hotelSelect+` ORDER BY h.name, h.id`)
}

// SearchByCity returns hotels whose city contains city, ignoring case.
func (r *HotelRepo) SearchByCity(ctx context.Context, city string) ([]model.Hotel, error) {
	return r.list(ctx, hotelSelect+` WHERE LOWER(h.city) LIKE ? ORDER BY h.name, h.id`, likePattern(city))
}

// Update overwrites the editable fields of a hotel.  Returns
// sql.ErrNoRows when the hotel does not exist.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	if _, err := r.GetByID(ctx, h.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET name = ?, city = ?, address = ?, description = ? WHERE id = ?`,
		h.Name, h.City, h.Address, h.Description, h.ID)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = got
	return nil
}

// Delete removes a hotel together with its rooms.  It returns ErrConflict
// when any of those rooms is referenced by a booking.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
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

// likePattern builds a lower-cased substring pattern with LIKE wildcards
// in the input escaped.
func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

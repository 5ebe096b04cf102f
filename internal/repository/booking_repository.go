package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/service"
)

// BookingRepo is the MySQL implementation of service.BookingStore.  Row
// locks taken inside WithTx (SELECT ... FOR UPDATE) serialize concurrent
// writers on the same room under InnoDB.
type BookingRepo struct {
	db *sql.DB
}

var _ service.BookingStore = (*BookingRepo)(nil)

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// WithTx runs fn in a transaction that is committed only when fn
// succeeds.
func (r *BookingRepo) WithTx(ctx context.Context, fn func(tx service.BookingTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const bookingDetailSelect = `SELECT b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date,
									b.total_price_cents, b.status, b.created_at,
									r.room_number, h.id, h.name, h.city, u.email
							 FROM bookings b
							 JOIN rooms r ON r.id = b.room_id
							 JOIN hotels h ON h.id = r.hotel_id
							 JOIN users u ON u.id = b.user_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (model.BookingDetail, error) {
	var d model.BookingDetail
	err := row.Scan(&d.ID, &d.UserID, &d.RoomID, &d.CheckIn, &d.CheckOut,
		&d.TotalPriceCents, &d.Status, &d.CreatedAt,
		&d.RoomNumber, &d.HotelID, &d.HotelName, &d.HotelCity, &d.UserEmail)
	if err != nil {
		return d, err
	}
	d.CheckIn, d.CheckOut = model.UTCDate(d.CheckIn), model.UTCDate(d.CheckOut)
	d.CreatedAt = d.CreatedAt.UTC()
	return d, nil
}

// BookingDetail loads one booking joined with room, hotel and user.
func (r *BookingRepo) BookingDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingDetailSelect+` WHERE b.id = ?`, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...any) ([]model.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// BookingsByUser lists a user's bookings, newest first.
func (r *BookingRepo) BookingsByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailSelect+` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC`, userID)
}

// AllBookings lists every booking, newest first.
func (r *BookingRepo) AllBookings(ctx context.Context) ([]model.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailSelect+` ORDER BY b.created_at DESC, b.id DESC`)
}

type bookingTx struct {
	tx *sql.Tx
}

func (t *bookingTx) LockRoom(ctx context.Context, roomID uint64) (model.Room, error) {
	const q = `SELECT r.id, r.hotel_id, r.room_number, r.price_per_night_cents, r.capacity, r.description, r.is_available
			   FROM rooms r WHERE r.id = ? FOR UPDATE`
	var rm model.Room
	err := t.tx.QueryRowContext(ctx, q, roomID).Scan(&rm.ID, &rm.HotelID, &rm.RoomNumber,
		&rm.PricePerNightCents, &rm.Capacity, &rm.Description, &rm.IsAvailable)
	return rm, err
}

func (t *bookingTx) ConfirmedBookings(ctx context.Context, roomID uint64, in, out time.Time) ([]model.Booking, error) {
	q := `SELECT b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.total_price_cents, b.status, b.created_at
		  FROM bookings b
		  WHERE b.room_id = ? AND b.status = ? AND ` + overlapCondition
	args := append([]any{roomID, string(model.StatusConfirmed)}, overlapArgs(in, out)...)
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.TotalPriceCents, &b.Status, &b.CreatedAt)
	if err != nil {
		return b, err
	}
	b.CheckIn, b.CheckOut = model.UTCDate(b.CheckIn), model.UTCDate(b.CheckOut)
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}

func (t *bookingTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, room_id, check_in_date, check_out_date, total_price_cents, status, created_at)
			   VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, b.UserID, b.RoomID, sqlDate(b.CheckIn), sqlDate(b.CheckOut),
		b.TotalPriceCents, string(b.Status), b.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func (t *bookingTx) LockBooking(ctx context.Context, id uint64) (model.Booking, error) {
	const q = `SELECT b.id, b.user_id, b.room_id, b.check_in_date, b.check_out_date, b.total_price_cents, b.status, b.created_at
			   FROM bookings b WHERE b.id = ? FOR UPDATE`
	return scanBooking(t.tx.QueryRowContext(ctx, q, id))
}

func (t *bookingTx) UpdateBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

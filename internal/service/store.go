package service

import (
	"context"
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// BookingStore is the persistence boundary of the booking core.  Lookups
// that find nothing return sql.ErrNoRows.
type BookingStore interface {
	// WithTx runs fn inside a single transaction.  The transaction is
	// committed when fn returns nil and rolled back otherwise; fn's error
	// is returned unchanged.
	WithTx(ctx context.Context, fn func(tx BookingTx) error) error
	// BookingDetail loads one booking joined with its room and hotel.
	BookingDetail(ctx context.Context, id uint64) (*model.BookingDetail, error)
	// BookingsByUser lists a user's bookings, newest first.
	BookingsByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
	// AllBookings lists every booking with user, room and hotel, newest first.
	AllBookings(ctx context.Context) ([]model.BookingDetail, error)
}

// BookingTx is the set of operations available inside WithTx.
type BookingTx interface {
	// LockRoom reads the room and holds an exclusive lock on it until the
	// transaction ends.  Concurrent creates for the same room serialize here.
	LockRoom(ctx context.Context, roomID uint64) (model.Room, error)
	// ConfirmedBookings returns the room's Confirmed bookings that may
	// touch [in, out).  It can return more rows than actually conflict.
	ConfirmedBookings(ctx context.Context, roomID uint64, in, out time.Time) ([]model.Booking, error)
	// InsertBooking stores b and sets its ID.
	InsertBooking(ctx context.Context, b *model.Booking) error
	// LockBooking reads a booking and locks it until the transaction ends.
	LockBooking(ctx context.Context, id uint64) (model.Booking, error)
	// UpdateBookingStatus sets the status of a booking.
	UpdateBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error
}

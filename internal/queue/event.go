// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

import (
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// Queue names.  Both queues are durable and bound to the default exchange.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
)

const dateLayout = "2006-01-02"

// BookingConfirmedEvent is published when a booking is created.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	UserID          uint64 `json:"user_id"`
	RoomID          uint64 `json:"room_id"`
	RoomNumber      string `json:"room_number"`
	HotelID         uint64 `json:"hotel_id"`
	HotelName       string `json:"hotel_name"`
	HotelCity       string `json:"hotel_city"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	TotalPriceCents int64  `json:"total_price_cents"`
	ConfirmedAt     string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a client cancels a booking.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	RoomID      uint64 `json:"room_id"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	CancelledAt string `json:"cancelled_at"`
}

// NewBookingConfirmed builds the confirmed event for a freshly created booking.
func NewBookingConfirmed(d model.BookingDetail) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:       d.ID,
		UserID:          d.UserID,
		RoomID:          d.RoomID,
		RoomNumber:      d.RoomNumber,
		HotelID:         d.HotelID,
		HotelName:       d.HotelName,
		HotelCity:       d.HotelCity,
		CheckIn:         d.CheckIn.Format(dateLayout),
		CheckOut:        d.CheckOut.Format(dateLayout),
		TotalPriceCents: d.TotalPriceCents,
		ConfirmedAt:     d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewBookingCancelled builds the cancelled event for b, cancelled at at.
func NewBookingCancelled(b model.Booking, at time.Time) BookingCancelledEvent {
	return BookingCancelledEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		CheckIn:     b.CheckIn.Format(dateLayout),
		CheckOut:    b.CheckOut.Format(dateLayout),
		CancelledAt: at.UTC().Format(time.RFC3339),
	}
}

package model

import "time"

// BookingStatus is the lifecycle state of a booking.  Values are stored
// verbatim in bookings.status.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
	StatusCompleted BookingStatus = "Completed"
)

// transitions lists the statuses reachable from each status.  Cancelled
// and Completed are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// IsValid reports whether s is a known status.
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a booking in status s may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
// Unknown statuses are treated as terminal.
func (s BookingStatus) IsTerminal() bool { return len(transitions[s]) == 0 }

// Booking records a stay in one room for a date range [CheckIn, CheckOut).
// Dates carry no time-of-day; they are midnight UTC.  TotalPriceCents is
// computed at creation and never recomputed.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who owns the booking.
//  RoomID          – booked room.
//  CheckIn         – first night (inclusive).
//  CheckOut        – departure date (exclusive).
//  TotalPriceCents – nightly rate × nights, in cents.
//  Status          – Confirmed, Cancelled or Completed.
//  CreatedAt       – creation timestamp (UTC), set once.
type Booking struct {
	ID              uint64        // bookings.id
	UserID          uint64        // bookings.user_id
	RoomID          uint64        // bookings.room_id
	CheckIn         time.Time     // bookings.check_in_date
	CheckOut        time.Time     // bookings.check_out_date
	TotalPriceCents int64         // bookings.total_price_cents
	Status          BookingStatus // bookings.status
	CreatedAt       time.Time     // bookings.created_at
}

// BookingDetail is a booking joined with the room and hotel it refers to.
// The joined fields are always populated by the repository; UserEmail is
// only filled by administrator-facing queries.
type BookingDetail struct {
	Booking
	RoomNumber string
	HotelID    uint64
	HotelName  string
	HotelCity  string
	UserEmail  string
}

// UTCDate truncates t to midnight of its UTC calendar date.
func UTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

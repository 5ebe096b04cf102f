package model

// Room describes a bookable room inside a hotel.  The pair
// (HotelID, RoomNumber) is unique.  Prices are stored in cents to keep
// arithmetic exact.  IsAvailable is an administrative toggle and is
// independent of existing bookings.
//
// Fields:
//  ID                 – primary key identifier.
//  HotelID            – owning hotel.
//  HotelName          – joined hotels.name for display.
//  RoomNumber         – label of the room, unique per hotel.
//  PricePerNightCents – nightly rate in cents (non-negative).
//  Capacity           – maximum number of guests (positive).
//  Description        – free text.
//  IsAvailable        – whether the room may be booked at all.
type Room struct {
	ID                 uint64 // rooms.id
	HotelID            uint64 // rooms.hotel_id
	HotelName          string // hotels.name (joined)
	RoomNumber         string // rooms.room_number
	PricePerNightCents int64  // rooms.price_per_night_cents
	Capacity           int    // rooms.capacity
	Description        string // rooms.description
	IsAvailable        bool   // rooms.is_available
}

// PricePerNight returns the nightly rate as a decimal amount.
func (r Room) PricePerNight() float64 { return CentsToAmount(r.PricePerNightCents) }

// CentsToAmount converts an amount in cents to its decimal form for
// display.  It must not be used for arithmetic.
func CentsToAmount(cents int64) float64 { return float64(cents) / 100 }

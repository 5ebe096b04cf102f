package service

import (
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// Nights returns the number of calendar days between the UTC dates of
// checkIn and checkOut.  The time of day is ignored.
func Nights(checkIn, checkOut time.Time) int {
	d := model.UTCDate(checkOut).Sub(model.UTCDate(checkIn))
	return int(d / (24 * time.Hour))
}

// TotalPrice returns pricePerNightCents × nights.  The caller must have
// validated that checkIn precedes checkOut.
func TotalPrice(pricePerNightCents int64, checkIn, checkOut time.Time) int64 {
	return pricePerNightCents * int64(Nights(checkIn, checkOut))
}

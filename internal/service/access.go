package service

import "github.com/MrReptiloid/HotelApp/internal/model"

// CanRead decides read access to a booking.  Administrators may read any
// booking; everyone else only their own.  Cancellation does not go
// through this gate: Cancel checks ownership itself.
func CanRead(b model.Booking, userID uint64, role string) error {
	if model.IsAdministrator(role) || b.UserID == userID {
		return nil
	}
	return ErrAccessDenied
}

package service

import "errors"

// Business outcomes returned by the booking core.  They are expected
// results, not failures of the system; handlers map each one to a
// response.  Any other error returned by BookingService is an
// infrastructure error.
var (
	ErrInvalidDateRange = errors.New("check-in date must be before check-out date")
	ErrPastCheckIn      = errors.New("check-in date cannot be in the past")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomUnavailable  = errors.New("room is not available")
	ErrBookingConflict  = errors.New("room is already booked for the selected dates")
	ErrNotFound         = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyCompleted = errors.New("cannot cancel a completed booking")
	ErrAccessDenied     = errors.New("access denied")
)

package service

import (
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// DateRange is a half-open stay [In, Out) at date granularity.
type DateRange struct {
	In  time.Time
	Out time.Time
}

// Overlaps reports whether the existing range a collides with the
// candidate range b.  The test is the union of three cases and must stay
// in this form so that boundary behaviour matches the rooms search query
// (see overlapCondition in the repository package):
//
//   a starts at or before b and runs past b's start, or
//   a starts before b ends and runs to or past b's end, or
//   a lies entirely inside b.
//
// A stay that checks out on the day another checks in does not collide.
func Overlaps(a, b DateRange) bool {
	return (!a.In.After(b.In) && a.Out.After(b.In)) ||
		(a.In.Before(b.Out) && !a.Out.Before(b.Out)) ||
		(!a.In.Before(b.In) && !a.Out.After(b.Out))
}

// HasConflict reports whether any Confirmed booking in existing overlaps
// the candidate range.  Cancelled and Completed bookings never conflict.
func HasConflict(candidate DateRange, existing []model.Booking) bool {
	for _, b := range existing {
		if b.Status != model.StatusConfirmed {
			continue
		}
		if Overlaps(DateRange{In: b.CheckIn, Out: b.CheckOut}, candidate) {
			return true
		}
	}
	return false
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
		{BookingStatus("Pending"), StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, BookingStatus("bogus").IsTerminal())
	assert.False(t, BookingStatus("bogus").IsValid())
}

func TestUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 at UTC+3 is still the previous day in UTC.
	in := time.Date(2025, 3, 10, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), UTCDate(in))

	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), UTCDate(noon))
}

func TestRoomPricePerNight(t *testing.T) {
	r := Room{PricePerNightCents: 12550}
	assert.InDelta(t, 125.50, r.PricePerNight(), 1e-9)
}

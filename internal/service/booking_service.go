package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/queue"
)

// BookingService manages the booking lifecycle: creation with conflict
// detection, lookups and cancellation.  It is the only writer of
// booking status.
type BookingService struct {
	store  BookingStore
	events EventPublisher
	now    func() time.Time
}

// NewBookingService constructs a BookingService.  events may be nil to
// disable publishing and now may be nil to use the wall clock.
func NewBookingService(store BookingStore, events EventPublisher, now func() time.Time) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	if events == nil {
		events = NopPublisher{}
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{store: store, events: events, now: now}
}

// Create books roomID for userID over [checkIn, checkOut).  Both dates are
// reduced to their UTC calendar date first.  The room lookup, conflict
// check and insert run in one transaction holding the room lock, so two
// overlapping requests for the same room cannot both succeed.
func (s *BookingService) Create(ctx context.Context, userID, roomID uint64, checkIn, checkOut time.Time) (*model.BookingDetail, error) {
	in, out := model.UTCDate(checkIn), model.UTCDate(checkOut)
	if !in.Before(out) {
		return nil, ErrInvalidDateRange
	}
	now := s.now().UTC()
	if in.Before(model.UTCDate(now)) {
		return nil, ErrPastCheckIn
	}

	b := model.Booking{
		UserID:    userID,
		RoomID:    roomID,
		CheckIn:   in,
		CheckOut:  out,
		Status:    model.StatusConfirmed,
		CreatedAt: now,
	}
	err := s.store.WithTx(ctx, func(tx BookingTx) error {
		room, err := tx.LockRoom(ctx, roomID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("load room %d: %w", roomID, err)
		}
		if !room.IsAvailable {
			return ErrRoomUnavailable
		}
		existing, err := tx.ConfirmedBookings(ctx, roomID, in, out)
		if err != nil {
			return fmt.Errorf("load bookings for room %d: %w", roomID, err)
		}
		if HasConflict(DateRange{In: in, Out: out}, existing) {
			return ErrBookingConflict
		}
		b.TotalPriceCents = TotalPrice(room.PricePerNightCents, in, out)
		if err := tx.InsertBooking(ctx, &b); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := s.store.BookingDetail(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("reload booking %d: %w", b.ID, err)
	}
	s.publish("confirmed", func() error {
		return s.events.PublishBookingConfirmed(ctx, queue.NewBookingConfirmed(*detail))
	})
	return detail, nil
}

// GetByID returns a booking with its room and hotel.
func (s *BookingService) GetByID(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := s.store.BookingDetail(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return d, nil
}

// GetByIDFor returns a booking when the caller may read it, ErrAccessDenied
// when the booking belongs to someone else and the caller is not an
// administrator.
func (s *BookingService) GetByIDFor(ctx context.Context, id, userID uint64, role string) (*model.BookingDetail, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanRead(d.Booking, userID, role); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByUser lists the bookings owned by userID, newest first.
func (s *BookingService) GetByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	list, err := s.store.BookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}
	return list, nil
}

// GetAll lists every booking, newest first.  Callers restrict it to
// administrators.
func (s *BookingService) GetAll(ctx context.Context) ([]model.BookingDetail, error) {
	list, err := s.store.AllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

// Cancel moves a Confirmed booking owned by userID to Cancelled.  A
// booking owned by another user is reported as ErrNotFound, exactly like
// a missing one.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID uint64) error {
	var cancelled model.Booking
	err := s.store.WithTx(ctx, func(tx BookingTx) error {
		b, err := tx.LockBooking(ctx, bookingID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load booking %d: %w", bookingID, err)
		}
		if b.UserID != userID {
			return ErrNotFound
		}
		switch b.Status {
		case model.StatusCancelled:
			return ErrAlreadyCancelled
		case model.StatusCompleted:
			return ErrAlreadyCompleted
		}
		if !b.Status.CanTransitionTo(model.StatusCancelled) {
			return fmt.Errorf("booking %d has unexpected status %q", b.ID, b.Status)
		}
		if err := tx.UpdateBookingStatus(ctx, b.ID, model.StatusCancelled); err != nil {
			return fmt.Errorf("cancel booking %d: %w", b.ID, err)
		}
		b.Status = model.StatusCancelled
		cancelled = b
		return nil
	})
	if err != nil {
		return err
	}
	at := s.now().UTC()
	s.publish("cancelled", func() error {
		return s.events.PublishBookingCancelled(ctx, queue.NewBookingCancelled(cancelled, at))
	})
	return nil
}

// publish runs a best-effort event publish.  The booking is already
// committed, so a failure is only logged.
func (s *BookingService) publish(kind string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("booking: publish %s event: %v", kind, err)
	}
}

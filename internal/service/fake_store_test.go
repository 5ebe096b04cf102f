package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
	"github.com/MrReptiloid/HotelApp/internal/queue"
)

// memStore is an in-memory BookingStore.  Each transaction buffers its
// writes and applies them on commit; row locks are per-room mutexes held
// until the transaction ends.
type memStore struct {
	mu        sync.Mutex
	rooms     map[uint64]model.Room
	hotels    map[uint64]model.Hotel
	bookings  map[uint64]model.Booking
	roomLocks map[uint64]*sync.Mutex
	nextID    uint64

	failInsert error
}

func newMemStore() *memStore {
	return &memStore{
		rooms:     map[uint64]model.Room{},
		hotels:    map[uint64]model.Hotel{},
		bookings:  map[uint64]model.Booking{},
		roomLocks: map[uint64]*sync.Mutex{},
	}
}

func (s *memStore) addRoom(r model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[r.HotelID]; !ok {
		s.hotels[r.HotelID] = model.Hotel{ID: r.HotelID, Name: "Hotel", City: "City"}
	}
	s.rooms[r.ID] = r
}

func (s *memStore) addBooking(b model.Booking) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.bookings[b.ID] = b
	return b.ID
}

func (s *memStore) booking(id uint64) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *memStore) roomLock(id uint64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.roomLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[id] = l
	}
	return l
}

func (s *memStore) WithTx(ctx context.Context, fn func(tx BookingTx) error) error {
	tx := &memTx{store: s}
	defer tx.release()
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range tx.pending {
		op()
	}
	return nil
}

func (s *memStore) detail(b model.Booking) model.BookingDetail {
	r := s.rooms[b.RoomID]
	h := s.hotels[r.HotelID]
	return model.BookingDetail{
		Booking:    b,
		RoomNumber: r.RoomNumber,
		HotelID:    h.ID,
		HotelName:  h.Name,
		HotelCity:  h.City,
	}
}

func (s *memStore) BookingDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d := s.detail(b)
	return &d, nil
}

func (s *memStore) list(keep func(model.Booking) bool) []model.BookingDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.BookingDetail
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, s.detail(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) BookingsByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	return s.list(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (s *memStore) AllBookings(ctx context.Context) ([]model.BookingDetail, error) {
	return s.list(func(model.Booking) bool { return true }), nil
}

type memTx struct {
	store   *memStore
	held    []*sync.Mutex
	pending []func()
}

func (tx *memTx) lock(roomID uint64) {
	l := tx.store.roomLock(roomID)
	l.Lock()
	tx.held = append(tx.held, l)
}

func (tx *memTx) release() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
}

func (tx *memTx) LockRoom(ctx context.Context, roomID uint64) (model.Room, error) {
	tx.store.mu.Lock()
	r, ok := tx.store.rooms[roomID]
	tx.store.mu.Unlock()
	if !ok {
		return model.Room{}, sql.ErrNoRows
	}
	tx.lock(roomID)
	return r, nil
}

func (tx *memTx) ConfirmedBookings(ctx context.Context, roomID uint64, in, out time.Time) ([]model.Booking, error) {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	var list []model.Booking
	for _, b := range tx.store.bookings {
		if b.RoomID == roomID && b.Status == model.StatusConfirmed {
			list = append(list, b)
		}
	}
	return list, nil
}

func (tx *memTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	if tx.store.failInsert != nil {
		return tx.store.failInsert
	}
	tx.store.mu.Lock()
	tx.store.nextID++
	b.ID = tx.store.nextID
	tx.store.mu.Unlock()
	row := *b
	tx.pending = append(tx.pending, func() { tx.store.bookings[row.ID] = row })
	return nil
}

func (tx *memTx) LockBooking(ctx context.Context, id uint64) (model.Booking, error) {
	b, ok := tx.store.booking(id)
	if !ok {
		return model.Booking{}, sql.ErrNoRows
	}
	tx.lock(b.RoomID)
	b, _ = tx.store.booking(id)
	return b, nil
}

func (tx *memTx) UpdateBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	tx.pending = append(tx.pending, func() {
		b := tx.store.bookings[id]
		b.Status = status
		tx.store.bookings[id] = b
	})
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu        sync.Mutex
	confirmed []queue.BookingConfirmedEvent
	cancelled []queue.BookingCancelledEvent
	err       error
}

func (p *recordingPublisher) PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmed = append(p.confirmed, ev)
	return p.err
}

func (p *recordingPublisher) PublishBookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, ev)
	return p.err
}

var errBroker = errors.New("broker down")

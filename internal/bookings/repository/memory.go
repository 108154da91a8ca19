package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	bookingserrors "laundry/internal/bookings/errors"
	"laundry/pkg/model"
)

// MemoryStore keeps houses, laundry rooms and bookings in process memory. It
// implements all three repositories; one mutex guards everything so that
// CreateIfHouseIdle is atomic.
type MemoryStore struct {
	mu       sync.RWMutex
	houses   map[model.HouseID]model.House
	rooms    map[model.LaundryRoomID]model.LaundryRoom
	bookings map[model.BookingID]model.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		houses:   make(map[model.HouseID]model.House),
		rooms:    make(map[model.LaundryRoomID]model.LaundryRoom),
		bookings: make(map[model.BookingID]model.Booking),
	}
}

// Houses and LaundryRooms expose the store through the narrower interfaces;
// both FindByID methods would otherwise collide on MemoryStore.
func (s *MemoryStore) Houses() HouseRepository { return memoryHouses{s} }

func (s *MemoryStore) LaundryRooms() LaundryRoomRepository { return memoryLaundryRooms{s} }

func (s *MemoryStore) PutHouse(h model.House) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.houses[h.ID] = h
}

func (s *MemoryStore) PutLaundryRoom(r model.LaundryRoom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
}

// Seed loads reference data, replacing entries with the same id.
func (s *MemoryStore) Seed(data *SeedData) {
	for _, h := range data.Houses {
		s.PutHouse(h)
	}
	for _, r := range data.LaundryRooms {
		s.PutLaundryRoom(r)
	}
}

type memoryHouses struct{ s *MemoryStore }

func (m memoryHouses) FindByID(ctx context.Context, id model.HouseID) (*model.House, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	h, ok := m.s.houses[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &h, nil
}

type memoryLaundryRooms struct{ s *MemoryStore }

func (m memoryLaundryRooms) FindByID(ctx context.Context, id model.LaundryRoomID) (*model.LaundryRoom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	r, ok := m.s.rooms[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) findOne(ctx context.Context, match func(*model.Booking) bool) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.findLocked(match); b != nil {
		return b, nil
	}
	return nil, bookingserrors.ErrNotFound
}

func (s *MemoryStore) findLocked(match func(*model.Booking) bool) *model.Booking {
	for _, b := range s.bookings {
		if match(&b) {
			found := b
			return &found
		}
	}
	return nil
}

func activeForHouse(houseID model.HouseID) func(*model.Booking) bool {
	return func(b *model.Booking) bool {
		return b.HouseID == houseID && b.BookingStatus == model.BookingStatusActive
	}
}

func activeForRoomAndSlot(roomID model.LaundryRoomID, start, end time.Time) func(*model.Booking) bool {
	start, end = model.NormalizeInstant(start), model.NormalizeInstant(end)
	return func(b *model.Booking) bool {
		return b.LaundryRoomID == roomID &&
			b.BookingStartTimeUTC.Equal(start) &&
			b.BookingEndTimeUTC.Equal(end) &&
			b.BookingStatus == model.BookingStatusActive
	}
}

func (s *MemoryStore) FindActiveForHouse(ctx context.Context, houseID model.HouseID) (*model.Booking, error) {
	return s.findOne(ctx, activeForHouse(houseID))
}

func (s *MemoryStore) FindActiveForRoomAndSlot(ctx context.Context, roomID model.LaundryRoomID, start, end time.Time) (*model.Booking, error) {
	return s.findOne(ctx, activeForRoomAndSlot(roomID, start, end))
}

func (s *MemoryStore) FindActive(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
	return s.findOne(ctx, func(b *model.Booking) bool {
		return b.ID == id && b.HouseID == houseID && b.BookingStatus == model.BookingStatusActive
	})
}

func (s *MemoryStore) FindActiveInRange(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from, to = model.NormalizeInstant(from), model.NormalizeInstant(to)

	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := []*model.Booking{}
	for _, b := range s.bookings {
		if b.BookingStatus != model.BookingStatusActive {
			continue
		}
		if b.BookingStartTimeUTC.Before(from) || !b.BookingStartTimeUTC.Before(to) {
			continue
		}
		found := b
		bookings = append(bookings, &found)
	}

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].BookingStartTimeUTC.Equal(bookings[j].BookingStartTimeUTC) {
			return bookings[i].BookingStartTimeUTC.Before(bookings[j].BookingStartTimeUTC)
		}
		return bookings[i].LaundryRoomID < bookings[j].LaundryRoomID
	})
	return bookings, nil
}

func (s *MemoryStore) CreateIfHouseIdle(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	booking.BookingStartTimeUTC = model.NormalizeInstant(booking.BookingStartTimeUTC)
	booking.BookingEndTimeUTC = model.NormalizeInstant(booking.BookingEndTimeUTC)
	booking.CreatedAt = model.NormalizeInstant(booking.CreatedAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(activeForHouse(booking.HouseID)) != nil {
		return bookingserrors.ErrHouseHasActiveBooking
	}
	if s.findLocked(activeForRoomAndSlot(booking.LaundryRoomID, booking.BookingStartTimeUTC, booking.BookingEndTimeUTC)) != nil {
		return bookingserrors.ErrSlotAlreadyBooked
	}
	if _, exists := s.bookings[booking.ID]; exists {
		return fmt.Errorf("booking %s already exists", booking.ID)
	}

	s.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", bookingserrors.ErrInvalidTransition, from, to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.BookingStatus != from {
		return bookingserrors.ErrNotFound
	}
	b.BookingStatus = to
	s.bookings[id] = b
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

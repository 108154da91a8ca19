package repository

import (
	"context"
	"time"

	"laundry/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	HousesCollection       = "Houses"
	LaundryRoomsCollection = "Laundry_rooms"
	BookingsCollection     = "Bookings"

	// Partial unique indexes over ACTIVE bookings. Their names are how a
	// duplicate key error is attributed to the house or the slot.
	IndexHouseActiveBooking = "house_active_booking_unique"
	IndexRoomActiveSlot     = "room_active_slot_unique"
)

type HouseRepository interface {
	FindByID(ctx context.Context, id model.HouseID) (*model.House, error)
}

type LaundryRoomRepository interface {
	FindByID(ctx context.Context, id model.LaundryRoomID) (*model.LaundryRoom, error)
}

// BookingRepository is the booking side of the entity store. Every Find*
// method returns errors.ErrNotFound when nothing matches, except
// FindActiveInRange which returns an empty slice.
type BookingRepository interface {
	FindActiveForHouse(ctx context.Context, houseID model.HouseID) (*model.Booking, error)
	FindActiveForRoomAndSlot(ctx context.Context, roomID model.LaundryRoomID, start, end time.Time) (*model.Booking, error)
	FindActive(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error)
	FindActiveInRange(ctx context.Context, from, to time.Time) ([]*model.Booking, error)

	// CreateIfHouseIdle inserts an ACTIVE booking unless the house already
	// holds one (ErrHouseHasActiveBooking) or the exact slot is taken
	// (ErrSlotAlreadyBooked). The check and the insert are one atomic step.
	CreateIfHouseIdle(ctx context.Context, booking *model.Booking) error

	// UpdateStatus moves a booking from one status to another only if it is
	// currently in from. A booking in any other status yields ErrNotFound.
	UpdateStatus(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error

	Ping(ctx context.Context) error
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// Inside a SessionContext the original context is returned with a no-op cancel.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}

	return context.WithTimeout(ctx, timeout)
}

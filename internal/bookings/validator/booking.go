package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "laundry/internal/bookings/errors"
	"laundry/internal/bookings/repository"
	"laundry/pkg/logger"
	"laundry/pkg/model"
)

const (
	MsgInvalidLaundryRoomID = "Invalid laundry room id"
	MsgInvalidHouseID       = "Invalid house id"
	MsgStartAfterEnd        = "Booking start time cannot be greater than end time"
)

// ValidationError is a booking rule failure. Message is the user-visible
// reason.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return v.Message
}

// CheckedBooking is a request that passed every rule, with its reference data
// resolved and its instants parsed.
type CheckedBooking struct {
	House *model.House
	Room  *model.LaundryRoom
	Start time.Time
	End   time.Time
}

type BookingValidator struct {
	houses repository.HouseRepository
	rooms  repository.LaundryRoomRepository
	now    func() time.Time
	logger *logger.Logger
}

func NewBookingValidator(houses repository.HouseRepository, rooms repository.LaundryRoomRepository, now func() time.Time, log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		houses: houses,
		rooms:  rooms,
		now:    now,
		logger: log,
	}
}

// ValidateBooking resolves the room and the house, then checks the slot.
// A rule failure is returned as ValidationError. Unparseable instants and
// store failures come back as plain errors.
func (v *BookingValidator) ValidateBooking(ctx context.Context, laundryRoomID, houseID, startUTC, endUTC string) (*CheckedBooking, error) {
	room, err := v.resolveRoom(ctx, laundryRoomID)
	if err != nil {
		return nil, err
	}

	house, err := v.resolveHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	start, err := model.ParseInstant(startUTC)
	if err != nil {
		return nil, fmt.Errorf("booking start: %w", err)
	}
	end, err := model.ParseInstant(endUTC)
	if err != nil {
		return nil, fmt.Errorf("booking end: %w", err)
	}

	if err := v.ValidateBookingTimes(start, end, room); err != nil {
		return nil, err
	}

	return &CheckedBooking{House: house, Room: room, Start: start, End: end}, nil
}

func (v *BookingValidator) resolveRoom(ctx context.Context, raw string) (*model.LaundryRoom, error) {
	id, err := model.ParseLaundryRoomID(raw)
	if err != nil {
		return nil, ValidationError{Field: "laundryRoomId", Message: MsgInvalidLaundryRoomID}
	}
	room, err := v.rooms.FindByID(ctx, id)
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return nil, ValidationError{Field: "laundryRoomId", Message: MsgInvalidLaundryRoomID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load laundry room %d: %w", id, err)
	}
	return room, nil
}

func (v *BookingValidator) resolveHouse(ctx context.Context, raw string) (*model.House, error) {
	id, err := model.ParseHouseID(raw)
	if err != nil {
		return nil, ValidationError{Field: "houseId", Message: MsgInvalidHouseID}
	}
	house, err := v.houses.FindByID(ctx, id)
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return nil, ValidationError{Field: "houseId", Message: MsgInvalidHouseID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load house %d: %w", id, err)
	}
	return house, nil
}

// ValidateBookingTimes applies the slot rules in order; the first failing rule
// decides the message. Hours are read in the room's time zone and only the
// hour is compared, so an end at EndHour:30 is accepted.
func (v *BookingValidator) ValidateBookingTimes(start, end time.Time, room *model.LaundryRoom) error {
	loc, err := room.Location()
	if err != nil {
		return err
	}

	if start.In(loc).Hour() < room.StartHour || end.In(loc).Hour() > room.EndHour {
		return ValidationError{
			Field: "bookingStartTimeUTC",
			Message: fmt.Sprintf("Slot outside valid booking hours. Rooms are bookable between %d and %d every day.",
				room.StartHour, room.EndHour),
		}
	}

	if start.After(end) {
		return ValidationError{Field: "bookingEndTimeUTC", Message: MsgStartAfterEnd}
	}

	daysAhead := int64(start.Sub(v.now()) / time.Second / 86400)
	if daysAhead > int64(room.BookingWindow) {
		return ValidationError{
			Field:   "bookingStartTimeUTC",
			Message: fmt.Sprintf("Booking too far out in the future. Slots can be booked only for the next %d days", room.BookingWindow),
		}
	}

	minutes := int64(end.Sub(start) / time.Minute)
	if minutes < int64(room.MinSlotLength) {
		return ValidationError{
			Field:   "bookingEndTimeUTC",
			Message: fmt.Sprintf("Booking slot cannot be smaller than %d minutes", room.MinSlotLength),
		}
	}
	if minutes > int64(room.MaxSlotLength) {
		return ValidationError{
			Field:   "bookingEndTimeUTC",
			Message: fmt.Sprintf("Booking slot cannot be greater than %d minutes", room.MaxSlotLength),
		}
	}

	return nil
}

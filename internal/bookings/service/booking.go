package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "laundry/internal/bookings/errors"
	"laundry/internal/bookings/events"
	"laundry/internal/bookings/repository"
	"laundry/internal/bookings/validator"
	"laundry/pkg/config"
	apperrors "laundry/pkg/errors"
	"laundry/pkg/model"
)

const (
	MsgBooked            = "Laundry slot successfully booked"
	MsgCancelled         = "Laundry slot successfully cancelled"
	MsgSlotAlreadyBooked = "Slot already booked! Please try another slot"
	MsgHouseBusy         = "You already have an active booking"
	MsgActiveBooking     = MsgHouseBusy + " starting "
	MsgInvalidBooking    = "Invalid booking id or booking not active"
)

// BookingService is the booking workflow. Every error it returns is an
// *apperrors.AppError; internal ones carry the cause for logging.
type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error)
	ListBookedTimes(ctx context.Context) ([]model.BookedTime, error)
	CancelBooking(ctx context.Context, bookingID, houseID string) (string, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	now       func() time.Time
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	now func() time.Time,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: bookingValidator,
		publisher: publisher,
		now:       now,
		cfg:       cfg,
	}
}

func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error) {
	checked, err := s.validator.ValidateBooking(ctx, req.LaundryRoomID, req.HouseID, req.BookingStartTimeUTC, req.BookingEndTimeUTC)
	if err != nil {
		var ve validator.ValidationError
		if errors.As(err, &ve) {
			return nil, apperrors.Validation(ve.Message)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.ensureHouseIdle(ctx, checked.House.ID); err != nil {
		return nil, err
	}

	// Only an identical start/end pair counts as taken. Overlapping slots on
	// the same room are accepted.
	_, err = s.repo.FindActiveForRoomAndSlot(ctx, checked.Room.ID, checked.Start, checked.End)
	switch {
	case err == nil:
		return nil, apperrors.Conflict(MsgSlotAlreadyBooked)
	case !errors.Is(err, bookingserrors.ErrNotFound):
		return nil, apperrors.Internal(err)
	}

	booking := &model.Booking{
		ID:                  model.NewBookingID(),
		HouseID:             checked.House.ID,
		LaundryRoomID:       checked.Room.ID,
		BookingStartTimeUTC: checked.Start,
		BookingEndTimeUTC:   checked.End,
		BookingStatus:       model.BookingStatusActive,
		CreatedAt:           s.now(),
	}

	if err := s.repo.CreateIfHouseIdle(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrHouseHasActiveBooking):
			return nil, s.houseBusy(ctx, booking.HouseID)
		case errors.Is(err, bookingserrors.ErrSlotAlreadyBooked):
			return nil, apperrors.Conflict(MsgSlotAlreadyBooked)
		default:
			return nil, apperrors.Internal(err)
		}
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"house_id", booking.HouseID,
		"laundry_room_id", booking.LaundryRoomID,
		"start", model.FormatInstant(booking.BookingStartTimeUTC),
		"end", model.FormatInstant(booking.BookingEndTimeUTC),
	)

	if err := s.publisher.BookingCreated(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "booking_id", booking.ID, "error", err)
	}

	return &model.BookingConfirmation{
		Message:             MsgBooked,
		LaundryRoomID:       checked.Room.ID.String(),
		LaundryRoomName:     checked.Room.Name,
		BookingStartTimeUTC: model.FormatInstant(booking.BookingStartTimeUTC),
		BookingEndTimeUTC:   model.FormatInstant(booking.BookingEndTimeUTC),
	}, nil
}

func (s *bookingService) ensureHouseIdle(ctx context.Context, houseID model.HouseID) error {
	existing, err := s.repo.FindActiveForHouse(ctx, houseID)
	switch {
	case err == nil:
		return apperrors.Conflict(MsgActiveBooking + model.FormatInstant(existing.BookingStartTimeUTC))
	case errors.Is(err, bookingserrors.ErrNotFound):
		return nil
	default:
		return apperrors.Internal(err)
	}
}

// houseBusy builds the conflict for a house that won a concurrent race. If
// the winning booking is gone again by now the start time is left out.
func (s *bookingService) houseBusy(ctx context.Context, houseID model.HouseID) error {
	if err := s.ensureHouseIdle(ctx, houseID); err != nil {
		return err
	}
	return apperrors.Conflict(MsgHouseBusy)
}

func (s *bookingService) ListBookedTimes(ctx context.Context) ([]model.BookedTime, error) {
	from := s.now()
	bookings, err := s.repo.FindActiveInRange(ctx, from, from.Add(s.cfg.BookedTimesHorizon))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	bookedTimes := make([]model.BookedTime, 0, len(bookings))
	for _, b := range bookings {
		bookedTimes = append(bookedTimes, model.NewBookedTime(b))
	}
	return bookedTimes, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, houseID string) (string, error) {
	id, err := model.ParseBookingID(bookingID)
	if err != nil {
		return "", apperrors.NotFound(MsgInvalidBooking)
	}
	house, err := model.ParseHouseID(houseID)
	if err != nil {
		return "", apperrors.NotFound(MsgInvalidBooking)
	}

	booking, err := s.repo.FindActive(ctx, id, house)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return "", apperrors.NotFound(MsgInvalidBooking)
		}
		return "", apperrors.Internal(err)
	}

	err = s.repo.UpdateStatus(ctx, booking.ID, model.BookingStatusActive, model.BookingStatusCancelled)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return "", apperrors.NotFound(MsgInvalidBooking)
		}
		return "", apperrors.Internal(err)
	}
	booking.BookingStatus = model.BookingStatusCancelled

	s.cfg.Log.Info("Booking cancelled", "booking_id", booking.ID, "house_id", booking.HouseID)

	if err := s.publisher.BookingCancelled(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "booking_id", booking.ID, "error", err)
	}

	return MsgCancelled, nil
}

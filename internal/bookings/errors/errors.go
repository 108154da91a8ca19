package errors

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrHouseHasActiveBooking = errors.New("house already has an active booking")

	ErrSlotAlreadyBooked = errors.New("slot already has an active booking")

	ErrInvalidTransition = errors.New("invalid booking status transition")
)

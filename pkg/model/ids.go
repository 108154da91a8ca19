package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid id")

type HouseID int

type LaundryRoomID int

type BookingID string

func (id HouseID) String() string {
	return strconv.Itoa(int(id))
}

func (id LaundryRoomID) String() string {
	return strconv.Itoa(int(id))
}

func (id BookingID) String() string {
	return string(id)
}

func ParseHouseID(s string) (HouseID, error) {
	n, err := parsePositiveInt(s)
	if err != nil {
		return 0, fmt.Errorf("%w: house id %q", ErrInvalidID, s)
	}
	return HouseID(n), nil
}

func ParseLaundryRoomID(s string) (LaundryRoomID, error) {
	n, err := parsePositiveInt(s)
	if err != nil {
		return 0, fmt.Errorf("%w: laundry room id %q", ErrInvalidID, s)
	}
	return LaundryRoomID(n), nil
}

// ParseBookingID accepts any UUID form and returns the canonical lowercase
// hyphenated representation.
func ParseBookingID(s string) (BookingID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: booking id %q", ErrInvalidID, s)
	}
	return BookingID(u.String()), nil
}

func NewBookingID() BookingID {
	return BookingID(uuid.NewString())
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

package model

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	return s == BookingStatusActive || s == BookingStatusCancelled
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// CanTransitionTo reports whether a booking in status s may move to next.
// ACTIVE -> CANCELLED is the only transition; CANCELLED is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusActive && next == BookingStatusCancelled
}

type Booking struct {
	ID                  BookingID     `json:"id" bson:"_id"`
	HouseID             HouseID       `json:"houseId" bson:"house_id"`
	LaundryRoomID       LaundryRoomID `json:"laundryRoomId" bson:"laundry_room_id"`
	BookingStartTimeUTC time.Time     `json:"bookingStartTimeUTC" bson:"booking_start_time_utc"`
	BookingEndTimeUTC   time.Time     `json:"bookingEndTimeUTC" bson:"booking_end_time_utc"`
	BookingStatus       BookingStatus `json:"bookingStatus" bson:"booking_status"`
	CreatedAt           time.Time     `json:"createdAt" bson:"created_at"`
}

// BookingRequest is the wire form of a booking attempt. Field values are kept
// as the caller sent them; conversion to typed ids and instants happens in the
// service, which checks the room, then the house, then the instants.
type BookingRequest struct {
	LaundryRoomID       string `json:"laundryRoomId"`
	HouseID             string `json:"houseId"`
	BookingStartTimeUTC string `json:"bookingStartTimeUTC"`
	BookingEndTimeUTC   string `json:"bookingEndTimeUTC"`
}

type CancelRequest struct {
	HouseID string `json:"houseId"`
}

// BookingConfirmation is the success payload of a booking.
type BookingConfirmation struct {
	Message             string `json:"message"`
	LaundryRoomID       string `json:"laundryRoomId"`
	LaundryRoomName     string `json:"laundryRoomName"`
	BookingStartTimeUTC string `json:"bookingStartTimeUTC"`
	BookingEndTimeUTC   string `json:"bookingEndTimeUTC"`
}

// BookedTime is one entry of the upcoming booked-times listing.
type BookedTime struct {
	BookingStartTime string `json:"bookingStartTime"`
	BookingEndTime   string `json:"bookingEndTime"`
	LaundryRoom      string `json:"laundryRoom"`
}

func NewBookedTime(b *Booking) BookedTime {
	return BookedTime{
		BookingStartTime: FormatInstant(b.BookingStartTimeUTC),
		BookingEndTime:   FormatInstant(b.BookingEndTimeUTC),
		LaundryRoom:      b.LaundryRoomID.String(),
	}
}

package model

import (
	"fmt"
	"time"
)

type LaundryRoom struct {
	ID            LaundryRoomID `json:"id" bson:"_id" validate:"required,min=1"`
	Name          string        `json:"name" bson:"name" validate:"required,min=1,max=100"`
	StartHour     int           `json:"startHour" bson:"start_hour" validate:"min=0,max=23"`
	EndHour       int           `json:"endHour" bson:"end_hour" validate:"min=1,max=24,gtfield=StartHour"`
	MinSlotLength int           `json:"minSlotLength" bson:"min_slot_length" validate:"min=1"`
	MaxSlotLength int           `json:"maxSlotLength" bson:"max_slot_length" validate:"gtefield=MinSlotLength"`
	BookingWindow int           `json:"bookingWindow" bson:"booking_window" validate:"min=0"`
	TimeZone      string        `json:"timeZone,omitempty" bson:"time_zone,omitempty" validate:"omitempty,timezone"`
}

// Location returns the zone used for operating-hour checks. Rooms without a
// configured zone operate on UTC.
func (r *LaundryRoom) Location() (*time.Location, error) {
	if r.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("laundry room %d has invalid time zone %q: %w", r.ID, r.TimeZone, err)
	}
	return loc, nil
}

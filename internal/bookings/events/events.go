package events

import (
	"context"
	"fmt"
	"time"

	"laundry/pkg/kafka"
	"laundry/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"

	SchemaVersion = "1"
	Source        = "laundry-bookings"
)

// Publisher announces booking lifecycle changes. Implementations must not
// block a request for longer than their own write timeout.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingCancelled(ctx context.Context, booking *model.Booking) error
	Close() error
}

// BookingEvent is the JSON value of every booking message.
type BookingEvent struct {
	BookingID           string `json:"bookingId"`
	HouseID             string `json:"houseId"`
	LaundryRoomID       string `json:"laundryRoomId"`
	BookingStartTimeUTC string `json:"bookingStartTimeUTC"`
	BookingEndTimeUTC   string `json:"bookingEndTimeUTC"`
	BookingStatus       string `json:"bookingStatus"`
	OccurredAt          string `json:"occurredAt"`
}

func NewBookingEvent(b *model.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		BookingID:           b.ID.String(),
		HouseID:             b.HouseID.String(),
		LaundryRoomID:       b.LaundryRoomID.String(),
		BookingStartTimeUTC: model.FormatInstant(b.BookingStartTimeUTC),
		BookingEndTimeUTC:   model.FormatInstant(b.BookingEndTimeUTC),
		BookingStatus:       b.BookingStatus.String(),
		OccurredAt:          model.FormatInstant(occurredAt),
	}
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer messagePublisher
	now      func() time.Time
}

func NewKafkaPublisher(producer *kafka.Producer, now func() time.Time) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, now: now}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingCreated, booking)
}

func (p *KafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingCancelled, booking)
}

// publish keys messages by house so that one house's events stay ordered.
func (p *KafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) error {
	now := p.now()
	msg, err := kafka.NewMessage(now).
		WithKey(booking.HouseID.String()).
		WithValue(NewBookingEvent(booking, now)).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(booking.ID.String()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) error   { return nil }
func (NopPublisher) BookingCancelled(context.Context, *model.Booking) error { return nil }
func (NopPublisher) Close() error                                           { return nil }

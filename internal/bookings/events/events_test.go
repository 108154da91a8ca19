package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry/pkg/kafka"
	"laundry/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (r *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

var occurred = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func testBooking() *model.Booking {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return &model.Booking{
		ID:                  "6f1c4a52-0d5e-4b8e-9d43-0d7f3f3b8a10",
		HouseID:             12,
		LaundryRoomID:       3,
		BookingStartTimeUTC: start,
		BookingEndTimeUTC:   start.Add(45 * time.Minute),
		BookingStatus:       model.BookingStatusActive,
	}
}

func TestKafkaPublisher_BookingCreated(t *testing.T) {
	producer := &recordingProducer{}
	p := &KafkaPublisher{producer: producer, now: func() time.Time { return occurred }}

	require.NoError(t, p.BookingCreated(context.Background(), testBooking()))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "12", msg.Key)
	assert.Equal(t, EventBookingCreated, msg.GetEventType())
	assert.Equal(t, Source, msg.Headers[kafka.HeaderSource])
	assert.Equal(t, SchemaVersion, msg.Headers[kafka.HeaderSchemaVersion])
	assert.Equal(t, "6f1c4a52-0d5e-4b8e-9d43-0d7f3f3b8a10", msg.GetCorrelationID())

	var event BookingEvent
	require.NoError(t, msg.DecodeValue(&event))
	assert.Equal(t, BookingEvent{
		BookingID:           "6f1c4a52-0d5e-4b8e-9d43-0d7f3f3b8a10",
		HouseID:             "12",
		LaundryRoomID:       "3",
		BookingStartTimeUTC: "2024-01-15T10:00:00Z",
		BookingEndTimeUTC:   "2024-01-15T10:45:00Z",
		BookingStatus:       "ACTIVE",
		OccurredAt:          "2024-01-15T09:00:00Z",
	}, event)
}

func TestKafkaPublisher_BookingCancelled(t *testing.T) {
	producer := &recordingProducer{}
	p := &KafkaPublisher{producer: producer, now: func() time.Time { return occurred }}

	b := testBooking()
	b.BookingStatus = model.BookingStatusCancelled
	require.NoError(t, p.BookingCancelled(context.Background(), b))

	require.Len(t, producer.messages, 1)
	assert.Equal(t, EventBookingCancelled, producer.messages[0].GetEventType())

	require.NoError(t, p.Close())
	assert.True(t, producer.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	boom := errors.New("leader not available")
	p := &KafkaPublisher{producer: &recordingProducer{err: boom}, now: func() time.Time { return occurred }}

	err := p.BookingCreated(context.Background(), testBooking())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), EventBookingCreated)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.BookingCreated(context.Background(), testBooking()))
	assert.NoError(t, p.BookingCancelled(context.Background(), testBooking()))
	assert.NoError(t, p.Close())
}

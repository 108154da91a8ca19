package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "laundry/internal/bookings/errors"
	"laundry/pkg/config"
	"laundry/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	fieldID            = "_id"
	fieldHouseID       = "house_id"
	fieldLaundryRoomID = "laundry_room_id"
	fieldStart         = "booking_start_time_utc"
	fieldEnd           = "booking_end_time_utc"
	fieldStatus        = "booking_status"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		client:     cfg.Client.Mongo,
		collection: db.Collection(BookingsCollection),
	}
}

func activeForHouseFilter(houseID model.HouseID) bson.M {
	return bson.M{
		fieldHouseID: houseID,
		fieldStatus:  model.BookingStatusActive,
	}
}

// activeForRoomAndSlotFilter matches the exact start/end pair only. Slots that
// overlap without being identical do not match.
func activeForRoomAndSlotFilter(roomID model.LaundryRoomID, start, end time.Time) bson.M {
	return bson.M{
		fieldLaundryRoomID: roomID,
		fieldStart:         model.NormalizeInstant(start),
		fieldEnd:           model.NormalizeInstant(end),
		fieldStatus:        model.BookingStatusActive,
	}
}

func activeByIDFilter(id model.BookingID, houseID model.HouseID) bson.M {
	return bson.M{
		fieldID:      id,
		fieldHouseID: houseID,
		fieldStatus:  model.BookingStatusActive,
	}
}

func activeInRangeFilter(from, to time.Time) bson.M {
	return bson.M{
		fieldStart: bson.M{
			"$gte": model.NormalizeInstant(from),
			"$lt":  model.NormalizeInstant(to),
		},
		fieldStatus: model.BookingStatusActive,
	}
}

func statusTransitionFilter(id model.BookingID, from model.BookingStatus) bson.M {
	return bson.M{
		fieldID:     id,
		fieldStatus: from,
	}
}

func (r *mongoBookingRepository) findOne(ctx context.Context, filter bson.M) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindActiveForHouse(ctx context.Context, houseID model.HouseID) (*model.Booking, error) {
	return r.findOne(ctx, activeForHouseFilter(houseID))
}

func (r *mongoBookingRepository) FindActiveForRoomAndSlot(ctx context.Context, roomID model.LaundryRoomID, start, end time.Time) (*model.Booking, error) {
	return r.findOne(ctx, activeForRoomAndSlotFilter(roomID, start, end))
}

func (r *mongoBookingRepository) FindActive(ctx context.Context, id model.BookingID, houseID model.HouseID) (*model.Booking, error) {
	return r.findOne(ctx, activeByIDFilter(id, houseID))
}

func (r *mongoBookingRepository) FindActiveInRange(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: fieldStart, Value: 1},
		{Key: fieldLaundryRoomID, Value: 1},
	})

	cursor, err := r.collection.Find(ctx, activeInRangeFilter(from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) CreateIfHouseIdle(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	booking.BookingStartTimeUTC = model.NormalizeInstant(booking.BookingStartTimeUTC)
	booking.BookingEndTimeUTC = model.NormalizeInstant(booking.BookingEndTimeUTC)
	booking.CreatedAt = model.NormalizeInstant(booking.CreatedAt)

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyCause(err)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// duplicateKeyCause attributes a duplicate key error to the unique index that
// rejected the insert.
func duplicateKeyCause(err error) error {
	if strings.Contains(err.Error(), IndexRoomActiveSlot) {
		return bookingserrors.ErrSlotAlreadyBooked
	}
	if strings.Contains(err.Error(), IndexHouseActiveBooking) {
		return bookingserrors.ErrHouseHasActiveBooking
	}
	return fmt.Errorf("failed to create booking: %w", err)
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id model.BookingID, from, to model.BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", bookingserrors.ErrInvalidTransition, from, to)
	}

	ctx, cancel := withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{fieldStatus: to}}
	result, err := r.collection.UpdateOne(ctx, statusTransitionFilter(id, from), update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	return r.client.Ping(ctx, readpref.Primary())
}

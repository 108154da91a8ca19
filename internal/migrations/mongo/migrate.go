package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"laundry/internal/bookings/repository"
	"laundry/internal/migrations/mongo/validators"
	"laundry/pkg/logger"
	"laundry/pkg/model"
)

// activeOnly restricts a unique index to ACTIVE bookings, so cancelled
// history never blocks a new booking.
var activeOnly = bson.D{{Key: "booking_status", Value: model.BookingStatusActive}}

var (
	HousesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "street_address", Value: 1}, {Key: "house_number", Value: 1}}},
	}

	LaundryRoomsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "house_id", Value: 1}},
			Options: options.Index().
				SetName(repository.IndexHouseActiveBooking).
				SetUnique(true).
				SetPartialFilterExpression(activeOnly),
		},
		{
			Keys: bson.D{
				{Key: "laundry_room_id", Value: 1},
				{Key: "booking_start_time_utc", Value: 1},
				{Key: "booking_end_time_utc", Value: 1},
			},
			Options: options.Index().
				SetName(repository.IndexRoomActiveSlot).
				SetUnique(true).
				SetPartialFilterExpression(activeOnly),
		},
		{Keys: bson.D{{Key: "booking_status", Value: 1}, {Key: "booking_start_time_utc", Value: 1}}},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists what RunMigration ensures, in creation order.
func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: repository.HousesCollection, Indexes: HousesIndexes, Validator: validators.HouseValidator},
		{Name: repository.LaundryRoomsCollection, Indexes: LaundryRoomsIndexes, Validator: validators.LaundryRoomValidator},
		{Name: repository.BookingsCollection, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running laundry Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "laundry/internal/bookings/errors"
	"laundry/pkg/config"
	"laundry/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoHouseRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoHouseRepository(cfg *config.Config) HouseRepository {
	return &mongoHouseRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(HousesCollection),
	}
}

func (r *mongoHouseRepository) FindByID(ctx context.Context, id model.HouseID) (*model.House, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	var house model.House
	if err := r.collection.FindOne(ctx, bson.M{fieldID: id}).Decode(&house); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find house: %w", err)
	}
	return &house, nil
}

type mongoLaundryRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLaundryRoomRepository(cfg *config.Config) LaundryRoomRepository {
	return &mongoLaundryRoomRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(LaundryRoomsCollection),
	}
}

func (r *mongoLaundryRoomRepository) FindByID(ctx context.Context, id model.LaundryRoomID) (*model.LaundryRoom, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	var room model.LaundryRoom
	if err := r.collection.FindOne(ctx, bson.M{fieldID: id}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find laundry room: %w", err)
	}
	return &room, nil
}

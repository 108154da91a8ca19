package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"laundry/internal/bookings/repository"
	mongotx "laundry/pkg/db/mongo"
	"laundry/pkg/logger"
)

// SeedReferenceData upserts houses and laundry rooms by id. With a non-nil
// tx the whole seed is applied in one transaction, otherwise document by
// document.
func SeedReferenceData(ctx context.Context, db *mongo.Database, data *repository.SeedData, tx mongotx.TransactionManager, log *logger.Logger) error {
	apply := func(ctx context.Context) error {
		houses := db.Collection(repository.HousesCollection)
		for i := range data.Houses {
			h := &data.Houses[i]
			if err := upsertByID(ctx, houses, h.ID, h); err != nil {
				return fmt.Errorf("failed to upsert house %d: %w", h.ID, err)
			}
		}

		rooms := db.Collection(repository.LaundryRoomsCollection)
		for i := range data.LaundryRooms {
			r := &data.LaundryRooms[i]
			if err := upsertByID(ctx, rooms, r.ID, r); err != nil {
				return fmt.Errorf("failed to upsert laundry room %d: %w", r.ID, err)
			}
		}
		return nil
	}

	var err error
	if tx != nil {
		err = tx.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			return apply(sessCtx)
		})
	} else {
		err = apply(ctx)
	}
	if err != nil {
		return err
	}

	log.Info("Reference data seeded",
		"houses", len(data.Houses),
		"laundry_rooms", len(data.LaundryRooms),
		"transactional", tx != nil,
	)
	return nil
}

func upsertByID(ctx context.Context, coll *mongo.Collection, id any, doc any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

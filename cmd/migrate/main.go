package main

import (
	"context"
	"fmt"

	"laundry/internal/bookings/repository"
	mongoMigration "laundry/internal/migrations/mongo"
	"laundry/pkg/config"
	mongotx "laundry/pkg/db/mongo"
)

const JobName = "laundry-mongo-migration"

func main() {
	cfg := config.Load(JobName)
	if !cfg.UsesMongo() {
		cfg.Log.Fatal("Migration requires the mongo store backend", "store_backend", cfg.StoreBackend)
	}
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.SetMongo()
	err := migrate(cfg)
	cfg.GracefulShutdown()
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrate(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MigrationTimeout)
	defer cancel()

	cfg.Log.Info("Starting Mongo migration job", "database", cfg.MongoDatabaseName)
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		return err
	}

	if cfg.SeedFile == "" {
		cfg.Log.Info("No seed file configured, skipping reference data")
		return nil
	}

	data, err := repository.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("seed file %s: %w", cfg.SeedFile, err)
	}

	var tx mongotx.TransactionManager
	if cfg.SeedTransactional {
		tx = mongotx.NewTransactionManager(cfg.Client.Mongo)
	}
	return mongoMigration.SeedReferenceData(ctx, db, data, tx, cfg.Log)
}

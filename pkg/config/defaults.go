package config

import "time"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "laundry"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultStoreBackend      = StoreMongo

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultStoreReadTimeout  = 5 * time.Second
	DefaultStoreWriteTimeout = 5 * time.Second

	DefaultBookedTimesHorizon = 30 * 24 * time.Hour

	DefaultRedisDB           = 0
	DefaultReferenceCacheTTL = 10 * time.Minute

	DefaultBookingEventsTopic = "laundry.bookings"

	DefaultMigrationTimeout = 120 * time.Second
)

package main

import (
	"time"
	_ "time/tzdata"

	"laundry/internal/bookings/events"
	"laundry/internal/bookings/handler"
	"laundry/internal/bookings/repository"
	"laundry/internal/bookings/service"
	"laundry/internal/bookings/validator"
	"laundry/pkg/app"
	"laundry/pkg/config"
	"laundry/pkg/kafka"
	kafkamw "laundry/pkg/kafka/middleware"
)

const ServiceName = "laundry-bookings"

type stores struct {
	houses   repository.HouseRepository
	rooms    repository.LaundryRoomRepository
	bookings repository.BookingRepository
}

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting laundry bookings service")

	s := initStores(cfg)
	publisher := initPublisher(cfg)

	bookingValidator := validator.NewBookingValidator(s.houses, s.rooms, time.Now, cfg.Log)
	bookingService := service.NewBookingService(s.bookings, bookingValidator, publisher, time.Now, cfg)
	cfg.Log.Info("Booking service initialized", "store_backend", cfg.StoreBackend)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, s.bookings, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.OnShutdown("booking events", publisher)
	serverApp.Run()
}

func initStores(cfg *config.Config) stores {
	var s stores

	if cfg.UsesMongo() {
		cfg.SetMongo()
		s = stores{
			houses:   repository.NewMongoHouseRepository(cfg),
			rooms:    repository.NewMongoLaundryRoomRepository(cfg),
			bookings: repository.NewMongoBookingRepository(cfg),
		}
	} else {
		store := repository.NewMemoryStore()
		if cfg.SeedFile != "" {
			data, err := repository.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				cfg.Log.Fatal("Failed to load seed file", "path", cfg.SeedFile, "error", err)
			}
			store.Seed(data)
			cfg.Log.Info("In-memory store seeded",
				"houses", len(data.Houses),
				"laundry_rooms", len(data.LaundryRooms),
			)
		} else {
			cfg.Log.Warn("In-memory store started without reference data")
		}
		s = stores{houses: store.Houses(), rooms: store.LaundryRooms(), bookings: store}
	}

	if cfg.CacheEnabled() {
		cfg.SetRedis()
		s.houses = repository.NewCachedHouseRepository(s.houses, cfg.Client.Redis, cfg.ReferenceCacheTTL, cfg.Log)
		s.rooms = repository.NewCachedLaundryRoomRepository(s.rooms, cfg.Client.Redis, cfg.ReferenceCacheTTL, cfg.Log)
		cfg.Log.Info("Reference data cache enabled", "ttl", cfg.ReferenceCacheTTL)
	}

	return s
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafkamw.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingEventsTopic)
	return events.NewKafkaPublisher(producer, time.Now)
}

package main

import (
	"context"

	"registrar/internal/bookings/events"
	"registrar/internal/bookings/handler"
	"registrar/internal/bookings/repository"
	"registrar/internal/bookings/service"
	"registrar/internal/bookings/validator"
	mongoMigration "registrar/internal/migrations/mongo"
	"registrar/pkg/app"
	"registrar/pkg/client"
	"registrar/pkg/config"
	"registrar/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Bookings service")
	ctx := context.Background()

	mongoClient, err := client.NewMongoClient(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := mongoClient.Database(cfg.MongoDatabaseName)

	if cfg.AutoMigrate {
		if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
			mongoClient.GracefulShutdown(ctx)
			cfg.Log.Fatal("Failed to ensure bookings schema", "error", err)
		}
	}

	publisher, closePublisher := initPublisher(cfg)
	bookingService := service.NewBookingService(
		repository.NewMongoBookingRepository(db, cfg),
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(
		cfg,
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(mongoClient.Client, cfg.Log),
	)
	runErr := serverApp.Run()

	closePublisher()
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	mongoClient.GracefulShutdown(shutdownCtx)

	if runErr != nil {
		cfg.Log.Fatal("HTTP server failed", "error", runErr)
	}
}

// initPublisher returns the Kafka publisher when brokers are configured and a
// no-op otherwise, plus the func that releases it.
func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka not configured, booking events disabled")
		return events.NewNoopPublisher(), func() {}
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaBookingsTopic,
		Compression: cfg.KafkaCompression,
	}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.LoggingMiddleware(cfg.Log, producer.Topic()))
	cfg.Log.Info("Booking events enabled", "topic", producer.Topic(), "brokers", cfg.KafkaBrokers)

	return events.NewKafkaPublisher(producer), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}

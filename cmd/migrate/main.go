package main

import (
	"context"
	"time"

	mongoMigration "registrar/internal/migrations/mongo"
	"registrar/pkg/client"
	"registrar/pkg/config"
)

const (
	JobName    = "mongo-migration"
	jobTimeout = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job", "database", cfg.MongoDatabaseName)

	mongoClient, err := client.NewMongoClient(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	err = mongoMigration.RunMigration(ctx, mongoClient.Database(cfg.MongoDatabaseName), cfg.Log)
	mongoClient.GracefulShutdown(context.Background())
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

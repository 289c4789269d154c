package client

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"registrar/pkg/logger"
)

// MongoClient owns the process-wide connection pool. It is created once at
// startup and handed to every repository explicitly.
type MongoClient struct {
	Client *mongo.Client
	log    *logger.Logger
}

func NewMongoClient(ctx context.Context, log *logger.Logger, mongoURI string, connTimeout time.Duration) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(ctx, connTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB")
	return &MongoClient{Client: client, log: log}, nil
}

func (c *MongoClient) Database(name string) *mongo.Database {
	return c.Client.Database(name)
}

func (c *MongoClient) GracefulShutdown(ctx context.Context) {
	if err := c.Client.Disconnect(ctx); err != nil {
		c.log.Error("Failed to disconnect from MongoDB", "error", err)
		return
	}
	c.log.Info("Disconnected from MongoDB")
}

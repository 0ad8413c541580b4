package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/ahl-official/ahl-utm-tracking/internal/config"
)

// Client wraps the MongoDB connection
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	config *config.Mongo
	log    *zap.Logger
}

// NewClient creates a new MongoDB client with the given configuration
func NewClient(ctx context.Context, config *config.Mongo, log *zap.Logger) (*Client, error) {
	log.Info("Connecting to MongoDB",
		zap.String("database", config.Database),
		zap.String("collection", config.ClicksCollection))

	opts := options.Client().
		ApplyURI(config.URI).
		SetMaxPoolSize(config.MaxPoolSize).
		SetConnectTimeout(time.Duration(config.ConnectTimeoutSec) * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error("Failed to connect to MongoDB", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(config.ConnectTimeoutSec)*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Error("Failed to ping MongoDB", zap.Error(err))
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("MongoDB connection established successfully")

	return &Client{
		client: client,
		db:     client.Database(config.Database),
		config: config,
		log:    log,
	}, nil
}

// Clicks returns the click records collection
func (c *Client) Clicks() *mongo.Collection {
	return c.db.Collection(c.config.ClicksCollection)
}

// Ping checks if the MongoDB connection is alive
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the MongoDB client
func (c *Client) Close() error {
	c.log.Info("Closing MongoDB connection")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.client.Disconnect(ctx); err != nil {
		c.log.Error("Error closing MongoDB connection", zap.Error(err))
		return err
	}
	c.log.Info("MongoDB connection closed successfully")
	return nil
}

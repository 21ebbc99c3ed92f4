package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PIGAsHIT/audiophile-proof/pkg/config"
)

// Client represents a MongoDB client scoped to the application database
type Client struct {
	conn   *mongo.Client
	dbname string
}

// NewClient creates a new MongoDB client and verifies the connection
func NewClient(ctx context.Context, cfg *config.MongoConfig) (*Client, error) {
	conn, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := conn.Ping(ctx, nil); err != nil {
		_ = conn.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{conn: conn, dbname: cfg.Database}, nil
}

// Database returns the application database handle
func (c *Client) Database() *mongo.Database {
	return c.conn.Database(c.dbname)
}

// Collection returns a collection handle in the application database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.Database().Collection(name)
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	return c.conn.Disconnect(ctx)
}

// Ping verifies the connection to MongoDB
func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx, nil)
}

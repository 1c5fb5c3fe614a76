// Package mongodb provides MongoDB client implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/unifiedui/docsession/internal/core/docdb"
)

// Client implements the docdb.Client interface for MongoDB.
type Client struct {
	client *mongo.Client
}

// ClientConfig holds MongoDB connection configuration.
type ClientConfig struct {
	URI            string
	ConnectTimeout time.Duration
}

// NewClient creates a new MongoDB client and verifies the server is reachable.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}

	clientOpts := options.Client().ApplyURI(config.URI)
	if err := clientOpts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongodb URI: %w", err)
	}

	if config.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(config.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(config.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database wrapper.
func (c *Client) Database(name string) docdb.Database {
	return NewDatabase(c.client.Database(name))
}

// ListDatabaseNames lists all database names on the server.
func (c *Client) ListDatabaseNames(ctx context.Context) ([]string, error) {
	names, err := c.client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	return names, nil
}

// Ping verifies the connection to MongoDB.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

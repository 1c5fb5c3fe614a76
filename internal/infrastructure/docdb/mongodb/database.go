// Package mongodb provides MongoDB database implementation.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unifiedui/docsession/internal/core/docdb"
)

// namespaceExistsCode is the server error code for an already existing collection.
const namespaceExistsCode = 48

// Collection implements the docdb.Collection interface for MongoDB.
type Collection struct {
	collection *mongo.Collection
}

// NewCollection creates a new MongoDB collection wrapper.
func NewCollection(collection *mongo.Collection) *Collection {
	return &Collection{
		collection: collection,
	}
}

// InsertOne inserts a single document.
func (c *Collection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	result, err := c.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return result.InsertedID, nil
}

// InsertMany inserts multiple documents.
func (c *Collection) InsertMany(ctx context.Context, documents []interface{}) ([]interface{}, error) {
	result, err := c.collection.InsertMany(ctx, documents)
	if err != nil {
		var inserted []interface{}
		if result != nil {
			inserted = result.InsertedIDs
		}
		return inserted, fmt.Errorf("failed to insert documents: %w", err)
	}
	return result.InsertedIDs, nil
}

// FindOne finds a single document matching the filter.
func (c *Collection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	return &SingleResult{
		result: c.collection.FindOne(ctx, filter),
	}
}

// UpdateOne updates a single document matching the filter.
func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	result, err := c.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	return &docdb.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

// DeleteOne deletes a single document matching the filter.
func (c *Collection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	result, err := c.collection.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}

	return &docdb.DeleteResult{
		DeletedCount: result.DeletedCount,
	}, nil
}

// CountDocuments counts documents matching the filter.
func (c *Collection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := c.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// Database implements the docdb.Database interface for MongoDB.
type Database struct {
	database *mongo.Database
}

// NewDatabase creates a new MongoDB database wrapper.
func NewDatabase(database *mongo.Database) *Database {
	return &Database{
		database: database,
	}
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.database.Name()
}

// Collection returns a collection from the database.
func (d *Database) Collection(name string) docdb.Collection {
	return NewCollection(d.database.Collection(name))
}

// ListCollectionNames lists all collection names in the database.
func (d *Database) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := d.database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// CreateCollection creates a collection. The server creates the database with it.
func (d *Database) CreateCollection(ctx context.Context, name string) error {
	err := d.database.CreateCollection(ctx, name)
	if err == nil {
		return nil
	}
	if isNamespaceExists(err) {
		return docdb.ErrCollectionExists
	}
	return fmt.Errorf("failed to create collection %s: %w", name, err)
}

func isNamespaceExists(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorCode(namespaceExistsCode)
	}
	return false
}

// SingleResult wraps a MongoDB single result.
type SingleResult struct {
	result *mongo.SingleResult
}

// Decode decodes the single result into the provided interface.
func (r *SingleResult) Decode(v interface{}) error {
	return mapNoDocuments(r.result.Decode(v))
}

// Err returns any error from the single result.
func (r *SingleResult) Err() error {
	return mapNoDocuments(r.result.Err())
}

func mapNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docdb.ErrNoDocuments
	}
	return err
}

// Package docdb defines the document database interface.
package docdb

import (
	"context"
)

// SingleResult represents the result of a FindOne operation.
type SingleResult interface {
	// Decode decodes the result into the provided interface.
	Decode(v interface{}) error
	// Err returns any error from the operation. ErrNoDocuments when nothing matched.
	Err() error
}

// UpdateResult represents the result of an update operation.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// DeleteResult represents the result of a delete operation.
type DeleteResult struct {
	DeletedCount int64
}

// Collection defines the interface for document collection operations.
// Filters and updates use the MongoDB document syntax (bson.D / bson.M).
type Collection interface {
	// InsertOne inserts a single document and returns its identity.
	InsertOne(ctx context.Context, document interface{}) (interface{}, error)

	// InsertMany inserts multiple documents. Documents inserted before a
	// failure stay inserted.
	InsertMany(ctx context.Context, documents []interface{}) ([]interface{}, error)

	// FindOne finds a single document.
	FindOne(ctx context.Context, filter interface{}) SingleResult

	// UpdateOne updates a single document.
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*UpdateResult, error)

	// DeleteOne deletes a single document.
	DeleteOne(ctx context.Context, filter interface{}) (*DeleteResult, error)

	// CountDocuments counts documents matching the filter.
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

// Database defines the interface for database operations.
type Database interface {
	// Name returns the database name.
	Name() string

	// Collection returns a collection by name. No I/O is performed.
	Collection(name string) Collection

	// ListCollectionNames lists all collection names.
	ListCollectionNames(ctx context.Context) ([]string, error)

	// CreateCollection creates a collection, implicitly creating the database.
	// Returns ErrCollectionExists when the collection is already present.
	CreateCollection(ctx context.Context, name string) error
}

package session

import (
	"context"

	"github.com/unifiedui/docsession/internal/domain/models"
)

// Provisioner creates the selected database and collection when they are missing.
type Provisioner interface {
	// EnsureProvisioned is idempotent; an existing target is not an error.
	EnsureProvisioned(ctx context.Context) error
}

// Catalog enumerates databases and collections.
type Catalog interface {
	ListDatabases(ctx context.Context) ([]string, error)
	ListCollections(ctx context.Context) ([]string, error)
}

// CrudStore performs single-field CRUD on the selected collection.
type CrudStore interface {
	InsertOne(ctx context.Context, document models.Document) error
	InsertMany(ctx context.Context, documents []models.Document) error
	FindOneByField(ctx context.Context, field string, value interface{}) (models.Document, error)
	DeleteOneByField(ctx context.Context, field string, value interface{}) error
	UpdateOneField(ctx context.Context, filterField string, filterValue interface{}, targetField string, newValue interface{}) error
	CountDocuments(ctx context.Context, filter models.Document) (int64, error)
}

// Store is the full capability set of a session manager.
type Store interface {
	Provisioner
	Catalog
	CrudStore

	// SelectTarget sets the database and collection used by later calls.
	SelectTarget(database, collection string)
	// Target returns the selected database and collection.
	Target() (database, collection string)
	// State returns the current lifecycle state.
	State() State
	// Ping checks the underlying connection.
	Ping(ctx context.Context) error
	// Close releases the connection.
	Close(ctx context.Context) error
}

var _ Store = (*Manager)(nil)

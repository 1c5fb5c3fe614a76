// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
// Implementations must be safe for concurrent use.
type Client interface {
	// Database returns a handle for the named database. No I/O is performed.
	Database(name string) Database

	// ListDatabaseNames lists the names of all databases on the server.
	ListDatabaseNames(ctx context.Context) ([]string, error)

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}

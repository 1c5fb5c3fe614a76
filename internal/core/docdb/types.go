// Package docdb provides the document database type constants.
package docdb

import (
	"errors"
)

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeMemory represents the in-process database.
	TypeMemory Type = "memory"
)

var (
	// ErrNoDocuments is returned by SingleResult when no document matched.
	ErrNoDocuments = errors.New("docdb: no documents in result")
	// ErrCollectionExists is returned by CreateCollection when the name is taken.
	ErrCollectionExists = errors.New("docdb: collection already exists")
)

// Package memory provides an in-process document database with MongoDB
// semantics for the subset of operations the service uses.
package memory

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/unifiedui/docsession/internal/core/docdb"
)

// Scheme is the address scheme accepted by NewClient.
const Scheme = "memory"

// store holds every database; a database exists while it has a collection.
type store struct {
	mu        sync.RWMutex
	databases map[string]map[string]*collectionData
	closed    bool
}

// Client implements the docdb.Client interface in memory.
type Client struct {
	store *store
}

// NewClient creates an empty in-memory database server. The address must use
// the memory scheme, e.g. memory://local.
func NewClient(address string) (*Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid memory address %q: %w", address, err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("invalid memory address %q: scheme must be %s", address, Scheme)
	}

	return &Client{
		store: &store{
			databases: make(map[string]map[string]*collectionData),
		},
	}, nil
}

// Database returns a database handle.
func (c *Client) Database(name string) docdb.Database {
	return &Database{store: c.store, name: name}
}

// ListDatabaseNames lists the databases that hold at least one collection.
func (c *Client) ListDatabaseNames(ctx context.Context) ([]string, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	names := make([]string, 0, len(c.store.databases))
	for name, collections := range c.store.databases {
		if len(collections) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Ping reports whether the client is still open.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.check(ctx)
}

// Close marks the client closed; later calls fail.
func (c *Client) Close(ctx context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.closed = true
	return nil
}

func (s *store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("memory client is closed")
	}
	return nil
}

// collection returns the named collection, creating it when create is set.
// Callers must hold the write lock when create is true.
func (s *store) collection(db, name string, create bool) *collectionData {
	collections, ok := s.databases[db]
	if !ok {
		if !create {
			return nil
		}
		collections = make(map[string]*collectionData)
		s.databases[db] = collections
	}
	coll, ok := collections[name]
	if !ok && create {
		coll = &collectionData{}
		collections[name] = coll
	}
	return coll
}

// Database implements the docdb.Database interface in memory.
type Database struct {
	store *store
	name  string
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// Collection returns a collection handle. The collection is created on first write.
func (d *Database) Collection(name string) docdb.Collection {
	return &Collection{store: d.store, db: d.name, name: name}
}

// ListCollectionNames lists all collection names in the database.
func (d *Database) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := d.store.check(ctx); err != nil {
		return nil, err
	}

	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	names := make([]string, 0, len(d.store.databases[d.name]))
	for name := range d.store.databases[d.name] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CreateCollection creates a collection or returns docdb.ErrCollectionExists.
func (d *Database) CreateCollection(ctx context.Context, name string) error {
	if err := d.store.check(ctx); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("invalid collection name: empty")
	}

	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	if d.store.collection(d.name, name, false) != nil {
		return docdb.ErrCollectionExists
	}
	d.store.collection(d.name, name, true)
	return nil
}

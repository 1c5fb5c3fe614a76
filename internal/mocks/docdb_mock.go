package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/docsession/internal/core/docdb"
)

// MockSingleResult is a mock implementation of docdb.SingleResult.
type MockSingleResult struct {
	mock.Mock
}

// Decode decodes the result.
func (m *MockSingleResult) Decode(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

// Err returns the result error.
func (m *MockSingleResult) Err() error {
	args := m.Called()
	return args.Error(0)
}

// MockCollection is a mock implementation of docdb.Collection.
type MockCollection struct {
	mock.Mock
}

// InsertOne inserts a single document.
func (m *MockCollection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	args := m.Called(ctx, document)
	return args.Get(0), args.Error(1)
}

// InsertMany inserts multiple documents.
func (m *MockCollection) InsertMany(ctx context.Context, documents []interface{}) ([]interface{}, error) {
	args := m.Called(ctx, documents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interface{}), args.Error(1)
}

// FindOne finds a single document.
func (m *MockCollection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(docdb.SingleResult)
}

// UpdateOne updates a single document.
func (m *MockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.UpdateResult), args.Error(1)
}

// DeleteOne deletes a single document.
func (m *MockCollection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.DeleteResult), args.Error(1)
}

// CountDocuments counts documents.
func (m *MockCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockDatabase is a mock implementation of docdb.Database.
type MockDatabase struct {
	mock.Mock
	name        string
	collections map[string]*MockCollection
}

// NewMockDatabase creates a new MockDatabase.
func NewMockDatabase(name string) *MockDatabase {
	return &MockDatabase{
		name:        name,
		collections: make(map[string]*MockCollection),
	}
}

// Name returns the database name.
func (m *MockDatabase) Name() string {
	return m.name
}

// Collection returns the mock collection for name, creating it on first use.
func (m *MockDatabase) Collection(name string) docdb.Collection {
	return m.MockCollection(name)
}

// MockCollection returns the concrete mock behind Collection(name).
func (m *MockDatabase) MockCollection(name string) *MockCollection {
	if c, ok := m.collections[name]; ok {
		return c
	}
	c := &MockCollection{}
	m.collections[name] = c
	return c
}

// ListCollectionNames lists collection names.
func (m *MockDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// CreateCollection creates a collection.
func (m *MockDatabase) CreateCollection(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	databases map[string]*MockDatabase
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		databases: make(map[string]*MockDatabase),
	}
}

// Database returns the mock database for name, creating it on first use.
func (m *MockDocDBClient) Database(name string) docdb.Database {
	return m.MockDatabase(name)
}

// MockDatabase returns the concrete mock behind Database(name).
func (m *MockDocDBClient) MockDatabase(name string) *MockDatabase {
	if db, ok := m.databases[name]; ok {
		return db
	}
	db := NewMockDatabase(name)
	m.databases[name] = db
	return db
}

// ListDatabaseNames lists database names.
func (m *MockDocDBClient) ListDatabaseNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Ping checks the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

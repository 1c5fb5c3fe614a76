package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unifiedui/docsession/internal/domain/models"
	"github.com/unifiedui/docsession/internal/infrastructure/docdb/memory"
	"github.com/unifiedui/docsession/internal/services/session"
)

// Test target names.
const (
	TestDatabase   = "test_database"
	TestCollection = "test_collection"
)

// NewTestRecord builds a sample document with an id_, an author and an age.
func NewTestRecord(id int32, age int32) models.Document {
	return models.Document{
		{Key: "id_", Value: id},
		{Key: "title", Value: "Title"},
		{Key: "author", Value: "Pesho"},
		{Key: "age", Value: age},
	}
}

// NewMemoryManager returns a session manager over a fresh in-memory backend,
// targeted at the test database and collection.
func NewMemoryManager(t *testing.T, opts ...func(*session.Config)) *session.Manager {
	t.Helper()

	client, err := memory.NewClient("memory://test")
	require.NoError(t, err)

	cfg := &session.Config{
		Address:    "memory://test",
		Database:   TestDatabase,
		Collection: TestCollection,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := session.NewManager(client, cfg)
	t.Cleanup(func() { _ = m.Close(context.Background()) })
	return m
}

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/docsession/internal/core/docdb"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
	"github.com/unifiedui/docsession/internal/mocks"
	"github.com/unifiedui/docsession/internal/services/session"
	"github.com/unifiedui/docsession/internal/testutils"
)

func TestEnsureProvisioned_CreatesDatabaseAndCollection(t *testing.T) {
	ctx := context.Background()
	m := testutils.NewMemoryManager(t)

	databases, err := m.ListDatabases(ctx)
	require.NoError(t, err)
	assert.NotContains(t, databases, testutils.TestDatabase)

	require.NoError(t, m.EnsureProvisioned(ctx))

	databases, err = m.ListDatabases(ctx)
	require.NoError(t, err)
	assert.Contains(t, databases, testutils.TestDatabase)

	collections, err := m.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{testutils.TestCollection}, collections)
}

func TestEnsureProvisioned_Idempotent(t *testing.T) {
	ctx := context.Background()
	m := testutils.NewMemoryManager(t)

	require.NoError(t, m.EnsureProvisioned(ctx))
	require.NoError(t, m.InsertOne(ctx, testutils.NewTestRecord(1, 30)))
	require.NoError(t, m.EnsureProvisioned(ctx))

	collections, err := m.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{testutils.TestCollection}, collections)

	count, err := m.CountDocuments(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureProvisioned_ExistingDatabaseNewCollection(t *testing.T) {
	ctx := context.Background()
	m := testutils.NewMemoryManager(t)
	require.NoError(t, m.EnsureProvisioned(ctx))

	m.SelectTarget(testutils.TestDatabase, "second")
	require.NoError(t, m.EnsureProvisioned(ctx))

	collections, err := m.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", testutils.TestCollection}, collections)
}

func newProvisionMock(createErr error) (*mocks.MockDocDBClient, *session.Manager) {
	client := mocks.NewMockDocDBClient()
	client.On("ListDatabaseNames", mock.Anything).Return([]string{"admin"}, nil)

	db := client.MockDatabase("db")
	db.On("ListCollectionNames", mock.Anything).Return([]string{}, nil)
	db.On("CreateCollection", mock.Anything, "coll").Return(createErr)

	return client, session.NewManager(client, &session.Config{Database: "db", Collection: "coll"})
}

func TestEnsureProvisioned_ConcurrentCreateIsSuccess(t *testing.T) {
	client, m := newProvisionMock(docdb.ErrCollectionExists)

	assert.NoError(t, m.EnsureProvisioned(context.Background()))
	client.MockDatabase("db").AssertExpectations(t)
}

func TestEnsureProvisioned_CreateFailure(t *testing.T) {
	_, m := newProvisionMock(errors.New("not authorized"))

	err := m.EnsureProvisioned(context.Background())
	assert.True(t, domainerrors.IsProvisionError(err), "got %v", err)
}

func TestEnsureProvisioned_ListingFailure(t *testing.T) {
	client := mocks.NewMockDocDBClient()
	client.On("ListDatabaseNames", mock.Anything).Return(nil, errors.New("network down"))

	m := session.NewManager(client, &session.Config{Database: "db", Collection: "coll"})

	err := m.EnsureProvisioned(context.Background())
	assert.True(t, domainerrors.IsProvisionError(err), "got %v", err)
}

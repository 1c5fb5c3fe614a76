package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unifiedui/docsession/internal/core/docdb"
	"github.com/unifiedui/docsession/internal/infrastructure/docdb/memory"
)

func newCollection(t *testing.T) (*memory.Client, docdb.Collection) {
	t.Helper()
	client, err := memory.NewClient("memory://test")
	require.NoError(t, err)
	return client, client.Database("db").Collection("coll")
}

func TestNewClient_Scheme(t *testing.T) {
	_, err := memory.NewClient("mongodb://localhost:27017")
	assert.Error(t, err)

	_, err = memory.NewClient("memory://local")
	assert.NoError(t, err)
}

func TestDatabase_ExistsOnlyWithCollections(t *testing.T) {
	ctx := context.Background()
	client, err := memory.NewClient("memory://test")
	require.NoError(t, err)

	names, err := client.ListDatabaseNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, client.Database("b").CreateCollection(ctx, "c1"))
	require.NoError(t, client.Database("a").CreateCollection(ctx, "c1"))

	names, err = client.ListDatabaseNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestCreateCollection(t *testing.T) {
	ctx := context.Background()
	client, err := memory.NewClient("memory://test")
	require.NoError(t, err)
	db := client.Database("db")

	require.NoError(t, db.CreateCollection(ctx, "coll"))
	assert.ErrorIs(t, db.CreateCollection(ctx, "coll"), docdb.ErrCollectionExists)
	assert.Error(t, db.CreateCollection(ctx, ""))

	names, err := db.ListCollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coll"}, names)
}

func TestInsertOne_AssignsObjectID(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	id, err := coll.InsertOne(ctx, bson.D{{Key: "name", Value: "alpha"}})
	require.NoError(t, err)
	assert.IsType(t, primitive.ObjectID{}, id)

	var doc bson.D
	require.NoError(t, coll.FindOne(ctx, bson.D{{Key: "name", Value: "alpha"}}).Decode(&doc))
	assert.Equal(t, "_id", doc[0].Key)
	assert.Equal(t, id, doc[0].Value)
}

func TestInsertOne_CreatesCollection(t *testing.T) {
	ctx := context.Background()
	client, coll := newCollection(t)

	_, err := coll.InsertOne(ctx, bson.D{{Key: "x", Value: 1}})
	require.NoError(t, err)

	names, err := client.Database("db").ListCollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coll"}, names)
}

func TestInsertMany_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	ids, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "_id", Value: 1}},
		bson.D{{Key: "_id", Value: 2}},
		bson.D{{Key: "_id", Value: 1}},
		bson.D{{Key: "_id", Value: 4}},
	})
	assert.Error(t, err)
	assert.Len(t, ids, 2)

	count, err := coll.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestInsertMany_Empty(t *testing.T) {
	_, coll := newCollection(t)

	_, err := coll.InsertMany(context.Background(), nil)
	assert.Error(t, err)
}

func TestFindOne_NoDocuments(t *testing.T) {
	_, coll := newCollection(t)

	res := coll.FindOne(context.Background(), bson.D{{Key: "x", Value: 1}})
	assert.ErrorIs(t, res.Err(), docdb.ErrNoDocuments)

	var doc bson.D
	assert.ErrorIs(t, res.Decode(&doc), docdb.ErrNoDocuments)
}

func TestFindOne_NumericWidths(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	_, err := coll.InsertOne(ctx, bson.D{{Key: "age", Value: int32(33)}})
	require.NoError(t, err)

	assert.NoError(t, coll.FindOne(ctx, bson.D{{Key: "age", Value: int64(33)}}).Err())
	assert.NoError(t, coll.FindOne(ctx, bson.D{{Key: "age", Value: 33.0}}).Err())
	assert.ErrorIs(t, coll.FindOne(ctx, bson.D{{Key: "age", Value: "33"}}).Err(), docdb.ErrNoDocuments)
}

func TestFindOne_RejectsOperators(t *testing.T) {
	_, coll := newCollection(t)

	res := coll.FindOne(context.Background(), bson.D{{Key: "$where", Value: "true"}})
	assert.Error(t, res.Err())
	assert.NotErrorIs(t, res.Err(), docdb.ErrNoDocuments)
}

func TestUpdateOne_Set(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	_, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "_id", Value: 1}, {Key: "age", Value: 33}, {Key: "name", Value: "a"}},
		bson.D{{Key: "_id", Value: 2}, {Key: "age", Value: 33}, {Key: "name", Value: "b"}},
	})
	require.NoError(t, err)

	result, err := coll.UpdateOne(ctx,
		bson.D{{Key: "age", Value: 33}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "age", Value: 40}}}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(1), result.ModifiedCount)

	var doc bson.D
	require.NoError(t, coll.FindOne(ctx, bson.D{{Key: "_id", Value: 1}}).Decode(&doc))
	assert.Equal(t, bson.D{{Key: "_id", Value: int32(1)}, {Key: "age", Value: int32(40)}, {Key: "name", Value: "a"}}, doc)

	count, err := coll.CountDocuments(ctx, bson.D{{Key: "age", Value: 33}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateOne_SameValueIsNotModified(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	_, err := coll.InsertOne(ctx, bson.D{{Key: "age", Value: 33}})
	require.NoError(t, err)

	result, err := coll.UpdateOne(ctx,
		bson.D{{Key: "age", Value: 33}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "age", Value: 33}}}},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Zero(t, result.ModifiedCount)
}

func TestUpdateOne_UnsupportedOperator(t *testing.T) {
	_, coll := newCollection(t)

	_, err := coll.UpdateOne(context.Background(),
		bson.D{{Key: "age", Value: 33}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "age", Value: 1}}}},
	)
	assert.Error(t, err)
}

func TestDeleteOne(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	_, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "age", Value: 40}},
		bson.D{{Key: "age", Value: 40}},
	})
	require.NoError(t, err)

	result, err := coll.DeleteOne(ctx, bson.D{{Key: "age", Value: 40}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)

	result, err = coll.DeleteOne(ctx, bson.D{{Key: "age", Value: 99}})
	require.NoError(t, err)
	assert.Zero(t, result.DeletedCount)

	count, err := coll.CountDocuments(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClosedClient(t *testing.T) {
	ctx := context.Background()
	client, coll := newCollection(t)

	require.NoError(t, client.Close(ctx))

	assert.Error(t, client.Ping(ctx))
	_, err := coll.InsertOne(ctx, bson.D{{Key: "x", Value: 1}})
	assert.Error(t, err)
	_, err = client.ListDatabaseNames(ctx)
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, coll := newCollection(t)

	assert.ErrorIs(t, client.Ping(ctx), context.Canceled)
	assert.ErrorIs(t, coll.FindOne(ctx, bson.D{}).Err(), context.Canceled)
}

func TestFindOne_EqOperator(t *testing.T) {
	ctx := context.Background()
	_, coll := newCollection(t)

	_, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "age", Value: int32(33)}},
		bson.D{{Key: "age", Value: bson.D{{Key: "$gt", Value: 0}}}},
	})
	require.NoError(t, err)

	count, err := coll.CountDocuments(ctx, bson.D{{Key: "age", Value: bson.D{{Key: "$eq", Value: 33}}}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var doc bson.D
	require.NoError(t, coll.FindOne(ctx, bson.D{
		{Key: "age", Value: bson.D{{Key: "$eq", Value: bson.D{{Key: "$gt", Value: 0}}}}},
	}).Decode(&doc))
	assert.Equal(t, bson.D{{Key: "$gt", Value: int32(0)}}, doc[1].Value)
}

func TestFindOne_RejectsNestedOperators(t *testing.T) {
	_, coll := newCollection(t)

	res := coll.FindOne(context.Background(), bson.D{{Key: "age", Value: bson.D{{Key: "$gt", Value: 0}}}})
	assert.Error(t, res.Err())
	assert.NotErrorIs(t, res.Err(), docdb.ErrNoDocuments)
}

package memory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unifiedui/docsession/internal/core/docdb"
)

type collectionData struct {
	documents []bson.D
}

// Collection implements the docdb.Collection interface in memory.
type Collection struct {
	store *store
	db    string
	name  string
}

// InsertOne inserts a single document, assigning an ObjectID when _id is absent.
func (c *Collection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	return c.insertLocked(document)
}

// InsertMany inserts documents in order and stops at the first failure.
// Documents inserted before the failure are kept.
func (c *Collection) InsertMany(ctx context.Context, documents []interface{}) ([]interface{}, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("must provide at least one document")
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	ids := make([]interface{}, 0, len(documents))
	for i, document := range documents {
		id, err := c.insertLocked(document)
		if err != nil {
			return ids, fmt.Errorf("document %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *Collection) insertLocked(document interface{}) (interface{}, error) {
	doc, err := toD(document)
	if err != nil {
		return nil, err
	}

	id, ok := lookup(doc, "_id")
	if !ok {
		id = primitive.NewObjectID()
		doc = append(bson.D{{Key: "_id", Value: id}}, doc...)
	}

	coll := c.store.collection(c.db, c.name, true)
	for _, existing := range coll.documents {
		if existingID, _ := lookup(existing, "_id"); valuesEqual(existingID, id) {
			return nil, fmt.Errorf("duplicate key error: _id %v", id)
		}
	}
	coll.documents = append(coll.documents, doc)
	return id, nil
}

// FindOne returns the first document in insertion order matching the filter.
func (c *Collection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	if err := c.store.check(ctx); err != nil {
		return &SingleResult{err: err}
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	idx, err := c.firstMatchLocked(filter)
	if err != nil {
		return &SingleResult{err: err}
	}
	if idx < 0 {
		return &SingleResult{err: docdb.ErrNoDocuments}
	}

	coll := c.store.collection(c.db, c.name, false)
	return &SingleResult{document: coll.documents[idx]}
}

// UpdateOne applies a $set update to the first matching document.
func (c *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	set, err := parseSet(update)
	if err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	idx, err := c.firstMatchLocked(filter)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return &docdb.UpdateResult{}, nil
	}

	coll := c.store.collection(c.db, c.name, false)
	updated, modified := applySet(coll.documents[idx], set)
	coll.documents[idx] = updated

	result := &docdb.UpdateResult{MatchedCount: 1}
	if modified {
		result.ModifiedCount = 1
	}
	return result, nil
}

// DeleteOne removes the first matching document.
func (c *Collection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	if err := c.store.check(ctx); err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	idx, err := c.firstMatchLocked(filter)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return &docdb.DeleteResult{}, nil
	}

	coll := c.store.collection(c.db, c.name, false)
	coll.documents = append(coll.documents[:idx], coll.documents[idx+1:]...)
	return &docdb.DeleteResult{DeletedCount: 1}, nil
}

// CountDocuments counts documents matching the filter.
func (c *Collection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if err := c.store.check(ctx); err != nil {
		return 0, err
	}

	criteria, err := parseFilter(filter)
	if err != nil {
		return 0, err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	coll := c.store.collection(c.db, c.name, false)
	if coll == nil {
		return 0, nil
	}

	var count int64
	for _, doc := range coll.documents {
		if matches(doc, criteria) {
			count++
		}
	}
	return count, nil
}

func (c *Collection) firstMatchLocked(filter interface{}) (int, error) {
	criteria, err := parseFilter(filter)
	if err != nil {
		return -1, err
	}

	coll := c.store.collection(c.db, c.name, false)
	if coll == nil {
		return -1, nil
	}
	for i, doc := range coll.documents {
		if matches(doc, criteria) {
			return i, nil
		}
	}
	return -1, nil
}

// SingleResult holds the outcome of a FindOne.
type SingleResult struct {
	document bson.D
	err      error
}

// Decode decodes the found document into v.
func (r *SingleResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	raw, err := bson.Marshal(r.document)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

// Err returns the lookup error, docdb.ErrNoDocuments when nothing matched.
func (r *SingleResult) Err() error {
	return r.err
}

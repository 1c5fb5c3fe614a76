package session

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/unifiedui/docsession/internal/core/docdb"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
	"github.com/unifiedui/docsession/internal/domain/models"
)

// ListDatabases lists all database names on the server.
func (m *Manager) ListDatabases(ctx context.Context) ([]string, error) {
	if err := m.requireConnected("ListDatabases"); err != nil {
		return nil, err
	}

	names, err := m.client.ListDatabaseNames(ctx)
	if err != nil {
		return nil, domainerrors.NewQueryError("list databases", err)
	}
	return names, nil
}

// ListCollections lists the collection names of the selected database.
func (m *Manager) ListCollections(ctx context.Context) ([]string, error) {
	t, err := m.requireTarget("ListCollections")
	if err != nil {
		return nil, err
	}

	names, err := m.client.Database(t.database).ListCollectionNames(ctx)
	if err != nil {
		return nil, domainerrors.NewQueryError("list collections", err)
	}
	return names, nil
}

// InsertOne inserts a single document.
func (m *Manager) InsertOne(ctx context.Context, document models.Document) error {
	t, err := m.requireTarget("InsertOne")
	if err != nil {
		return err
	}

	if _, err := m.collectionFor(t).InsertOne(ctx, document); err != nil {
		return domainerrors.NewWriteError("insert document", err)
	}
	return nil
}

// InsertMany inserts documents in one call. It is not atomic: documents
// written before a failure stay written and the failure is returned.
// An empty batch is a no-op.
func (m *Manager) InsertMany(ctx context.Context, documents []models.Document) error {
	t, err := m.requireTarget("InsertMany")
	if err != nil {
		return err
	}
	if len(documents) == 0 {
		return nil
	}

	batch := make([]interface{}, len(documents))
	for i, doc := range documents {
		batch[i] = doc
	}

	ids, err := m.collectionFor(t).InsertMany(ctx, batch)
	if err != nil {
		op := fmt.Sprintf("insert of %d documents (%d inserted)", len(documents), len(ids))
		return domainerrors.NewWriteError(op, err)
	}
	return nil
}

// FindOneByField returns the first document whose field equals value.
// Server ordering applies; with several matches the result is unspecified.
func (m *Manager) FindOneByField(ctx context.Context, field string, value interface{}) (models.Document, error) {
	t, err := m.requireTarget("FindOneByField")
	if err != nil {
		return nil, err
	}
	if err := validateField(field); err != nil {
		return nil, err
	}

	if m.cache != nil {
		if doc := m.cache.get(ctx, t, field, value); doc != nil {
			return doc, nil
		}
	}

	doc, err := m.findOne(ctx, t, field, value)
	if err != nil {
		if errors.Is(err, docdb.ErrNoDocuments) {
			return nil, notFound(field, value)
		}
		return nil, domainerrors.NewQueryError("find document", err)
	}

	if m.cache != nil {
		m.cache.set(ctx, t, field, value, doc)
	}
	return doc, nil
}

// DeleteOneByField deletes one document whose field equals value. The match
// is confirmed first; without one nothing is deleted and a not found error
// is returned.
func (m *Manager) DeleteOneByField(ctx context.Context, field string, value interface{}) error {
	t, err := m.requireTarget("DeleteOneByField")
	if err != nil {
		return err
	}
	if err := validateField(field); err != nil {
		return err
	}

	doc, err := m.precheck(ctx, t, "delete", field, value)
	if err != nil {
		return err
	}

	result, err := m.collectionFor(t).DeleteOne(ctx, identityFilter(doc, field, value))
	if err != nil {
		return domainerrors.NewWriteError("delete document", err)
	}
	m.invalidate(ctx, t)

	if result.DeletedCount == 0 {
		return notFound(field, value)
	}
	return nil
}

// UpdateOneField sets targetField to newValue on one document whose
// filterField equals filterValue, leaving all other fields untouched. The
// match is confirmed first as in DeleteOneByField.
func (m *Manager) UpdateOneField(ctx context.Context, filterField string, filterValue interface{}, targetField string, newValue interface{}) error {
	t, err := m.requireTarget("UpdateOneField")
	if err != nil {
		return err
	}
	if err := validateField(filterField); err != nil {
		return err
	}
	if err := validateField(targetField); err != nil {
		return err
	}

	doc, err := m.precheck(ctx, t, "update", filterField, filterValue)
	if err != nil {
		return err
	}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: targetField, Value: newValue}}}}
	result, err := m.collectionFor(t).UpdateOne(ctx, identityFilter(doc, filterField, filterValue), update)
	if err != nil {
		return domainerrors.NewWriteError("update document", err)
	}
	m.invalidate(ctx, t)

	if result.MatchedCount == 0 {
		return notFound(filterField, filterValue)
	}
	return nil
}

// CountDocuments counts documents matching filter; nil counts all.
func (m *Manager) CountDocuments(ctx context.Context, filter models.Document) (int64, error) {
	t, err := m.requireTarget("CountDocuments")
	if err != nil {
		return 0, err
	}
	if filter == nil {
		filter = bson.D{}
	}

	count, err := m.collectionFor(t).CountDocuments(ctx, filter)
	if err != nil {
		return 0, domainerrors.NewQueryError("count documents", err)
	}
	return count, nil
}

func (m *Manager) findOne(ctx context.Context, t target, field string, value interface{}) (models.Document, error) {
	var doc models.Document
	if err := m.collectionFor(t).FindOne(ctx, models.EqualityFilter(field, value)).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// precheck reads the server (never the cache) to confirm a match before a write.
func (m *Manager) precheck(ctx context.Context, t target, op, field string, value interface{}) (models.Document, error) {
	doc, err := m.findOne(ctx, t, field, value)
	if errors.Is(err, docdb.ErrNoDocuments) {
		return nil, notFound(field, value)
	}
	if err != nil {
		return nil, domainerrors.NewWriteError(op+" precheck", err)
	}
	return doc, nil
}

func (m *Manager) invalidate(ctx context.Context, t target) {
	if m.cache != nil {
		m.cache.invalidate(ctx, t)
	}
}

// identityFilter pins the write to the checked document by _id when it has one.
func identityFilter(doc models.Document, field string, value interface{}) bson.D {
	if id, ok := models.Lookup(doc, models.IDField); ok {
		return models.EqualityFilter(models.IDField, id)
	}
	return models.EqualityFilter(field, value)
}

// validateField rejects names the server would not read as a plain field.
func validateField(name string) error {
	if name == "" {
		return domainerrors.NewValidationError("field name is required", "")
	}
	if models.IsOperator(name) {
		return domainerrors.NewValidationError("field name must not start with $", name)
	}
	return nil
}

func notFound(field string, value interface{}) error {
	return domainerrors.NewNotFoundError("document", fmt.Sprintf("%s=%v", field, value))
}

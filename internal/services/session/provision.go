package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/unifiedui/docsession/internal/core/docdb"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
)

// EnsureProvisioned creates the selected database and collection if absent.
// A database only exists on the server while it holds a collection, so
// creating the collection creates the database too. A concurrent provisioner
// winning the race ("collection already exists") counts as success.
func (m *Manager) EnsureProvisioned(ctx context.Context) error {
	t, err := m.requireTarget("EnsureProvisioned")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s.%s", t.database, t.collection)

	databases, err := m.client.ListDatabaseNames(ctx)
	if err != nil {
		return domainerrors.NewProvisionError(name, err)
	}
	databaseExists := lo.Contains(databases, t.database)

	db := m.client.Database(t.database)
	collections, err := db.ListCollectionNames(ctx)
	if err != nil {
		return domainerrors.NewProvisionError(name, err)
	}

	logger := m.logger.With().Str("database", t.database).Str("collection", t.collection).Logger()

	if lo.Contains(collections, t.collection) {
		logger.Debug().Msg("database and collection already exist")
		return nil
	}

	err = db.CreateCollection(ctx, t.collection)
	switch {
	case errors.Is(err, docdb.ErrCollectionExists):
		logger.Debug().Msg("collection created concurrently")
		return nil
	case err != nil:
		return domainerrors.NewProvisionError(name, err)
	}

	if !databaseExists {
		logger.Info().Msg("database created")
	}
	logger.Info().Msg("collection created")
	return nil
}

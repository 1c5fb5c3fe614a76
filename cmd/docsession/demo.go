package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unifiedui/docsession/internal/domain/models"
	"github.com/unifiedui/docsession/internal/services/session"
)

// sampleRecord is the fixed shape used by the demo flow.
type sampleRecord struct {
	ID       int32  `bson:"id_"`
	Title    string `bson:"title"`
	Author   string `bson:"author"`
	Age      int32  `bson:"age"`
	Featured bool   `bson:"featured"`
}

var (
	demoBatch = []sampleRecord{
		{ID: 22, Title: "Title4", Author: "Pesho", Age: 31, Featured: true},
		{ID: 23, Title: "Title5", Author: "Pesho", Age: 33, Featured: false},
		{ID: 24, Title: "Title6", Author: "Pesho", Age: 35, Featured: true},
	}
	demoSingle = sampleRecord{ID: 13, Title: "Title1", Author: "Pesho", Age: 41, Featured: false}
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the sample provision, insert, find, update and delete flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			return runDemo(ctx, a.store, loggerFor("demo"))
		},
	}
}

// runDemo drives every session operation once against the selected target.
func runDemo(ctx context.Context, store session.Store, logger *zerolog.Logger) error {
	if err := store.EnsureProvisioned(ctx); err != nil {
		return err
	}

	databases, err := store.ListDatabases(ctx)
	if err != nil {
		return err
	}
	logger.Info().Strs("databases", databases).Msg("databases")

	collections, err := store.ListCollections(ctx)
	if err != nil {
		return err
	}
	logger.Info().Strs("collections", collections).Msg("collections")

	batch := toDocuments(demoBatch, logger)
	if err := store.InsertMany(ctx, batch); err != nil {
		return err
	}

	if single := toDocuments([]sampleRecord{demoSingle}, logger); len(single) == 1 {
		if err := store.InsertOne(ctx, single[0]); err != nil {
			return err
		}
	}
	logger.Info().Msg("data insertion complete")

	doc, err := store.FindOneByField(ctx, "age", int32(33))
	if err != nil {
		return err
	}
	if rendered, err := models.ToJSON(doc); err == nil {
		logger.Info().RawJSON("document", rendered).Msg("found document")
	}

	if err := store.UpdateOneField(ctx, "age", int32(33), "age", int32(40)); err != nil {
		return err
	}
	logger.Info().Msg("updated age 33 to 40")

	if err := store.DeleteOneByField(ctx, "age", int32(40)); err != nil {
		return err
	}
	logger.Info().Msg("deleted document with age 40")

	return nil
}

// toDocuments converts records, logging and skipping any that fail.
func toDocuments(records []sampleRecord, logger *zerolog.Logger) []models.Document {
	docs := make([]models.Document, 0, len(records))
	for _, r := range records {
		doc, err := models.FromStruct(r)
		if err != nil {
			logger.Warn().Err(err).Int32("id", r.ID).Msg("skipping record that cannot be serialized")
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

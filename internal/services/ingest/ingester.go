// Package ingest loads documents from JSON group files into the selected collection.
//
// The input is a JSON object with a top-level "groups" array:
//
//	{"groups": [{"name": "alpha", "age": 31}, {"name": "beta", "tags": ["x"]}]}
//
// Each array element is converted field by field into a document. Elements
// that are not objects are logged and skipped. A missing "groups" key or a
// non-array value rejects the whole input before anything is inserted.
package ingest

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
	"github.com/unifiedui/docsession/internal/domain/models"
)

// GroupsKey is the top-level key holding the documents to ingest.
const GroupsKey = "groups"

// Inserter is the write capability the ingester needs.
type Inserter interface {
	InsertMany(ctx context.Context, documents []models.Document) error
}

// Result reports the outcome of an ingestion.
type Result struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Ingester converts group files into documents and inserts them.
type Ingester struct {
	store  Inserter
	logger zerolog.Logger
}

// NewIngester creates a new Ingester. logger may be nil.
func NewIngester(store Inserter, logger *zerolog.Logger) *Ingester {
	l := log.Logger
	if logger != nil {
		l = *logger
	}
	return &Ingester{
		store:  store,
		logger: l.With().Str("component", "ingest").Logger(),
	}
}

// IngestFile reads path and ingests its contents.
func (i *Ingester) IngestFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerrors.NewInputError("cannot read ingestion file", err.Error())
	}
	i.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("ingesting file")
	return i.IngestBytes(ctx, data)
}

// IngestBytes ingests a JSON document held in memory.
func (i *Ingester) IngestBytes(ctx context.Context, data []byte) (*Result, error) {
	documents, skipped, err := Parse(data, i.logger)
	if err != nil {
		return nil, err
	}

	if err := i.store.InsertMany(ctx, documents); err != nil {
		return nil, err
	}

	i.logger.Info().Int("inserted", len(documents)).Int("skipped", skipped).Msg("ingestion complete")
	return &Result{Inserted: len(documents), Skipped: skipped}, nil
}

// Parse validates the groups array and converts its elements. It returns the
// converted documents and the number of skipped elements.
func Parse(data []byte, logger zerolog.Logger) ([]models.Document, int, error) {
	if !gjson.ValidBytes(data) {
		return nil, 0, domainerrors.NewInputError("invalid JSON", "")
	}

	groups := gjson.GetBytes(data, GroupsKey)
	if !groups.Exists() {
		return nil, 0, domainerrors.NewInputError("missing groups key", GroupsKey)
	}
	if !groups.IsArray() {
		return nil, 0, domainerrors.NewInputError("groups must be an array", groups.Type.String())
	}

	var (
		documents []models.Document
		skipped   int
	)
	for idx, group := range groups.Array() {
		doc, err := models.FromJSONResult(group)
		if err != nil {
			logger.Warn().Err(err).Int("index", idx).Msg("skipping group that is not an object")
			skipped++
			continue
		}
		documents = append(documents, doc)
	}
	return documents, skipped, nil
}

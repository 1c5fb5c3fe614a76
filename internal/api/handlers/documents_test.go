package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/docsession/internal/api/dto"
	"github.com/unifiedui/docsession/internal/api/handlers"
	"github.com/unifiedui/docsession/internal/api/routes"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
	"github.com/unifiedui/docsession/internal/mocks"
	"github.com/unifiedui/docsession/internal/services/ingest"
	"github.com/unifiedui/docsession/internal/services/session"
	"github.com/unifiedui/docsession/internal/testutils"
)

const base = routes.BasePath

func setupDocumentsRouter(t *testing.T, opts ...func(*session.Config)) (*gin.Engine, *session.Manager) {
	t.Helper()

	store := testutils.NewMemoryManager(t, opts...)
	router := testutils.SetupTestRouter()
	routes.Setup(router, &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(mocks.NewMockDocDBClient(), nil),
		DocumentsHandler: handlers.NewDocumentsHandler(store, ingest.NewIngester(store, nil)),
	})
	return router, store
}

func provisionedRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	router, store := setupDocumentsRouter(t)
	require.NoError(t, store.EnsureProvisioned(context.Background()))
	return router, store
}

func TestDocumentsHandler_TargetAndProvision(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	w := testutils.PerformRequest(router, "PUT", base+"/target",
		dto.SelectTargetRequest{Database: "library", Collection: "books"}, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)

	var target dto.TargetResponse
	testutils.ParseJSONResponse(t, w, &target)
	assert.Equal(t, dto.TargetResponse{Database: "library", Collection: "books", State: "targeted"}, target)

	w = testutils.PerformRequest(router, "POST", base+"/provision", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)

	w = testutils.PerformRequest(router, "GET", base+"/databases", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var dbs dto.NamesResponse
	testutils.ParseJSONResponse(t, w, &dbs)
	assert.Contains(t, dbs.Names, "library")

	w = testutils.PerformRequest(router, "GET", base+"/collections", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var colls dto.NamesResponse
	testutils.ParseJSONResponse(t, w, &colls)
	assert.Equal(t, []string{"books"}, colls.Names)
}

func TestDocumentsHandler_SelectTarget_Invalid(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	w := testutils.PerformRequest(router, "PUT", base+"/target", map[string]string{"database": "x"}, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestDocumentsHandler_Untargeted(t *testing.T) {
	router, _ := setupDocumentsRouter(t, func(cfg *session.Config) {
		cfg.Database = ""
		cfg.Collection = ""
	})

	w := testutils.PerformRequest(router, "GET", base+"/collections", nil, nil)

	testutils.AssertStatusCode(t, http.StatusPreconditionFailed, w)
	var resp dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, domainerrors.ErrCodePrecondition, resp.Code)
}

func TestDocumentsHandler_CRUDFlow(t *testing.T) {
	router, _ := provisionedRouter(t)

	w := testutils.PerformRequest(router, "POST", base+"/documents",
		`[{"id_": 22, "author": "Pesho", "age": 31}, {"id_": 23, "author": "Pesho", "age": 33}]`, nil)
	testutils.AssertStatusCode(t, http.StatusCreated, w)
	var inserted dto.InsertResponse
	testutils.ParseJSONResponse(t, w, &inserted)
	assert.Equal(t, 2, inserted.Inserted)

	w = testutils.PerformRequest(router, "POST", base+"/documents", `{"id_": 13, "author": "Pesho", "age": 41}`, nil)
	testutils.AssertStatusCode(t, http.StatusCreated, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents?field=age&value=33", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var found map[string]interface{}
	testutils.ParseJSONResponse(t, w, &found)
	assert.Equal(t, float64(23), found["id_"])
	assert.Contains(t, found, "_id")

	w = testutils.PerformRequest(router, "PATCH", base+"/documents",
		`{"filter": {"field": "age", "value": 33}, "set": {"field": "age", "value": 40}}`, nil)
	testutils.AssertStatusCode(t, http.StatusNoContent, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents?field=age&value=33", nil, nil)
	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutils.PerformRequest(router, "DELETE", base+"/documents?field=age&value=40", nil, nil)
	testutils.AssertStatusCode(t, http.StatusNoContent, w)

	w = testutils.PerformRequest(router, "DELETE", base+"/documents?field=age&value=40", nil, nil)
	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents/count", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var count dto.CountResponse
	testutils.ParseJSONResponse(t, w, &count)
	assert.Equal(t, int64(2), count.Count)

	w = testutils.PerformRequest(router, "GET", base+"/documents/count?field=author&value=Pesho", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	testutils.ParseJSONResponse(t, w, &count)
	assert.Equal(t, int64(2), count.Count)
}

func TestDocumentsHandler_FindStringValue(t *testing.T) {
	router, _ := provisionedRouter(t)

	w := testutils.PerformRequest(router, "POST", base+"/documents", `{"code": "33"}`, nil)
	testutils.AssertStatusCode(t, http.StatusCreated, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents?field=code&value=33", nil, nil)
	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents?field=code&value=%2233%22", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
}

func TestDocumentsHandler_InsertInvalidBodies(t *testing.T) {
	router, _ := provisionedRouter(t)

	for name, body := range map[string]string{
		"invalid json":   `{"a":`,
		"scalar":         `42`,
		"array of mixed": `[{"a": 1}, 2]`,
	} {
		t.Run(name, func(t *testing.T) {
			w := testutils.PerformRequest(router, "POST", base+"/documents", body, nil)
			testutils.AssertStatusCode(t, http.StatusBadRequest, w)
		})
	}
}

func TestDocumentsHandler_FindRequiresQuery(t *testing.T) {
	router, _ := provisionedRouter(t)

	w := testutils.PerformRequest(router, "GET", base+"/documents?field=age", nil, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestDocumentsHandler_OperatorInputs(t *testing.T) {
	router, store := provisionedRouter(t)
	require.NoError(t, store.InsertOne(context.Background(), testutils.NewTestRecord(1, 33)))

	w := testutils.PerformRequest(router, "DELETE", base+"/documents?field=age&value=%7B%22%24exists%22%3Atrue%7D", nil, nil)
	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents?field=age&value=%7B%22%24gt%22%3A0%7D", nil, nil)
	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents?field=%24where&value=true", nil, nil)
	testutils.AssertStatusCode(t, http.StatusBadRequest, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents/count?field=%24where&value=true", nil, nil)
	testutils.AssertStatusCode(t, http.StatusBadRequest, w)

	w = testutils.PerformRequest(router, "GET", base+"/documents/count?field=age&value=%7B%22%24exists%22%3Atrue%7D", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var count dto.CountResponse
	testutils.ParseJSONResponse(t, w, &count)
	assert.Zero(t, count.Count)

	total, err := store.CountDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDocumentsHandler_Ingest(t *testing.T) {
	router, store := provisionedRouter(t)

	w := testutils.PerformRequest(router, "POST", base+"/ingest", `{"groups": [{"name": "a"}, "x", {"name": "b"}]}`, nil)
	testutils.AssertStatusCode(t, http.StatusCreated, w)

	var resp dto.IngestResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, dto.IngestResponse{Inserted: 2, Skipped: 1}, resp)

	count, err := store.CountDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	w = testutils.PerformRequest(router, "POST", base+"/ingest", `{"items": []}`, nil)
	testutils.AssertStatusCode(t, http.StatusUnprocessableEntity, w)
}

func TestDocumentsHandler_UnknownRoute(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	w := testutils.PerformRequest(router, "GET", "/nope", nil, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)
}

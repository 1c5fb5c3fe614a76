package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/unifiedui/docsession/internal/api/dto"
	"github.com/unifiedui/docsession/internal/api/middleware"
	"github.com/unifiedui/docsession/internal/domain/errors"
	"github.com/unifiedui/docsession/internal/domain/models"
	"github.com/unifiedui/docsession/internal/services/ingest"
	"github.com/unifiedui/docsession/internal/services/session"
)

// DocumentsHandler exposes the session manager over HTTP.
type DocumentsHandler struct {
	store    session.Store
	ingester *ingest.Ingester
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(store session.Store, ingester *ingest.Ingester) *DocumentsHandler {
	return &DocumentsHandler{
		store:    store,
		ingester: ingester,
	}
}

// ListDatabases handles GET /databases
// @Summary List databases
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.NamesResponse
// @Failure 502 {object} dto.ErrorResponse "Query failed"
// @Router /api/v1/docsession/databases [get]
func (h *DocumentsHandler) ListDatabases(c *gin.Context) {
	names, err := h.store.ListDatabases(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NamesResponse{Names: names})
}

// ListCollections handles GET /collections
// @Summary List collections of the selected database
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.NamesResponse
// @Failure 412 {object} dto.ErrorResponse "No target selected"
// @Router /api/v1/docsession/collections [get]
func (h *DocumentsHandler) ListCollections(c *gin.Context) {
	names, err := h.store.ListCollections(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NamesResponse{Names: names})
}

// GetTarget handles GET /target
// @Summary Show the selected target
// @Tags Target
// @Produce json
// @Success 200 {object} dto.TargetResponse
// @Router /api/v1/docsession/target [get]
func (h *DocumentsHandler) GetTarget(c *gin.Context) {
	c.JSON(http.StatusOK, h.targetResponse())
}

// SelectTarget handles PUT /target
// @Summary Select database and collection
// @Tags Target
// @Accept json
// @Produce json
// @Param request body dto.SelectTargetRequest true "Target"
// @Success 200 {object} dto.TargetResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /api/v1/docsession/target [put]
func (h *DocumentsHandler) SelectTarget(c *gin.Context) {
	var req dto.SelectTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	h.store.SelectTarget(req.Database, req.Collection)
	c.JSON(http.StatusOK, h.targetResponse())
}

func (h *DocumentsHandler) targetResponse() dto.TargetResponse {
	database, collection := h.store.Target()
	return dto.TargetResponse{
		Database:   database,
		Collection: collection,
		State:      h.store.State().String(),
	}
}

// Provision handles POST /provision
// @Summary Create the selected database and collection if missing
// @Tags Target
// @Produce json
// @Success 200 {object} dto.TargetResponse
// @Failure 412 {object} dto.ErrorResponse "No target selected"
// @Failure 500 {object} dto.ErrorResponse "Provisioning failed"
// @Router /api/v1/docsession/provision [post]
func (h *DocumentsHandler) Provision(c *gin.Context) {
	if err := h.store.EnsureProvisioned(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.targetResponse())
}

// InsertDocuments handles POST /documents. An object body inserts one
// document, an array body inserts every element.
// @Summary Insert one or many documents
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body object true "Document or array of documents"
// @Success 201 {object} dto.InsertResponse
// @Failure 400 {object} dto.ErrorResponse "Body is not an object or array of objects"
// @Failure 502 {object} dto.ErrorResponse "Write failed"
// @Router /api/v1/docsession/documents [post]
func (h *DocumentsHandler) InsertDocuments(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(body) {
		middleware.HandleError(c, errors.NewBadRequestError("invalid JSON body", ""))
		return
	}

	parsed := gjson.ParseBytes(body)
	ctx := c.Request.Context()

	if parsed.IsObject() {
		doc, _ := models.FromJSONResult(parsed)
		if err := h.store.InsertOne(ctx, doc); err != nil {
			middleware.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.InsertResponse{Inserted: 1})
		return
	}

	if !parsed.IsArray() {
		middleware.HandleError(c, errors.NewBadRequestError("body must be an object or an array of objects", ""))
		return
	}

	items := parsed.Array()
	documents := make([]models.Document, 0, len(items))
	for _, item := range items {
		doc, err := models.FromJSONResult(item)
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError("array elements must be objects", err.Error()))
			return
		}
		documents = append(documents, doc)
	}

	if err := h.store.InsertMany(ctx, documents); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.InsertResponse{Inserted: len(documents)})
}

// FindDocument handles GET /documents?field=&value=
// @Summary Find one document by field equality
// @Description value is parsed as JSON when valid (33, true, "33"), otherwise used as a string
// @Tags Documents
// @Produce json
// @Param field query string true "Field name"
// @Param value query string true "Field value"
// @Success 200 {object} object "Document as relaxed extended JSON"
// @Failure 404 {object} dto.ErrorResponse "No matching document"
// @Router /api/v1/docsession/documents [get]
func (h *DocumentsHandler) FindDocument(c *gin.Context) {
	field, value, ok := fieldQuery(c)
	if !ok {
		return
	}

	doc, err := h.store.FindOneByField(c.Request.Context(), field, value)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	body, err := models.ToJSON(doc)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("cannot render document", err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// UpdateDocument handles PATCH /documents
// @Summary Set one field on one matching document
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body dto.UpdateFieldRequest true "Filter and field to set"
// @Success 204 "Updated"
// @Failure 404 {object} dto.ErrorResponse "No matching document"
// @Router /api/v1/docsession/documents [patch]
func (h *DocumentsHandler) UpdateDocument(c *gin.Context) {
	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	err := h.store.UpdateOneField(c.Request.Context(),
		req.Filter.Field, jsonValue(req.Filter.Value),
		req.Set.Field, jsonValue(req.Set.Value),
	)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteDocument handles DELETE /documents?field=&value=
// @Summary Delete one document by field equality
// @Tags Documents
// @Param field query string true "Field name"
// @Param value query string true "Field value"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "No matching document"
// @Router /api/v1/docsession/documents [delete]
func (h *DocumentsHandler) DeleteDocument(c *gin.Context) {
	field, value, ok := fieldQuery(c)
	if !ok {
		return
	}

	if err := h.store.DeleteOneByField(c.Request.Context(), field, value); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CountDocuments handles GET /documents/count
// @Summary Count documents, optionally filtered by one field
// @Tags Documents
// @Produce json
// @Param field query string false "Field name"
// @Param value query string false "Field value"
// @Success 200 {object} dto.CountResponse
// @Router /api/v1/docsession/documents/count [get]
func (h *DocumentsHandler) CountDocuments(c *gin.Context) {
	var filter models.Document
	if field := c.Query("field"); field != "" {
		if models.IsOperator(field) {
			middleware.HandleError(c, errors.NewValidationError("field name must not start with $", field))
			return
		}
		filter = models.EqualityFilter(field, models.ParseValue(c.Query("value")))
	}

	count, err := h.store.CountDocuments(c.Request.Context(), filter)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// Ingest handles POST /ingest
// @Summary Ingest a JSON groups file
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body object true "Object with a groups array"
// @Success 201 {object} dto.IngestResponse
// @Failure 422 {object} dto.ErrorResponse "Malformed input"
// @Router /api/v1/docsession/ingest [post]
func (h *DocumentsHandler) Ingest(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("cannot read body", err.Error()))
		return
	}

	result, err := h.ingester.IngestBytes(c.Request.Context(), body)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.IngestResponse{Inserted: result.Inserted, Skipped: result.Skipped})
}

// fieldQuery reads the field and value query parameters.
func fieldQuery(c *gin.Context) (string, interface{}, bool) {
	field := c.Query("field")
	raw, hasValue := c.GetQuery("value")
	if field == "" || !hasValue {
		middleware.HandleError(c, errors.NewValidationError("field and value query parameters are required", ""))
		return "", nil, false
	}
	return field, models.ParseValue(raw), true
}

// jsonValue converts a raw JSON value; an absent value is null.
func jsonValue(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return models.ValueFromJSON(gjson.ParseBytes(raw))
}

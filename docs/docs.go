// Package docs registers the OpenAPI description served at /docs.
// Regenerate with `swag init -g cmd/docsession/serve.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/docsession/health": {
            "get": {"tags": ["Health"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "Service healthy", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                              "503": {"description": "Service unhealthy", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}}}
        },
        "/api/v1/docsession/ready": {
            "get": {"tags": ["Health"], "summary": "Readiness check", "responses": {"200": {"description": "Service ready"}, "503": {"description": "Service not ready"}}}
        },
        "/api/v1/docsession/live": {
            "get": {"tags": ["Health"], "summary": "Liveness check", "responses": {"200": {"description": "Service alive"}}}
        },
        "/api/v1/docsession/databases": {
            "get": {"tags": ["Catalog"], "summary": "List databases", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NamesResponse"}},
                              "502": {"description": "Query failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/v1/docsession/collections": {
            "get": {"tags": ["Catalog"], "summary": "List collections of the selected database", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NamesResponse"}},
                              "412": {"description": "No target selected", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/v1/docsession/target": {
            "get": {"tags": ["Target"], "summary": "Show the selected target",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TargetResponse"}}}},
            "put": {"tags": ["Target"], "summary": "Select database and collection", "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.SelectTargetRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TargetResponse"}},
                              "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/v1/docsession/provision": {
            "post": {"tags": ["Target"], "summary": "Create the selected database and collection if missing",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TargetResponse"}},
                              "412": {"description": "No target selected", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                              "500": {"description": "Provisioning failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/v1/docsession/documents": {
            "get": {"tags": ["Documents"], "summary": "Find one document by field equality",
                "parameters": [{"type": "string", "name": "field", "in": "query", "required": true},
                               {"type": "string", "name": "value", "in": "query", "required": true}],
                "responses": {"200": {"description": "Document as relaxed extended JSON"},
                              "404": {"description": "No matching document", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "post": {"tags": ["Documents"], "summary": "Insert one or many documents", "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.InsertResponse"}},
                              "400": {"description": "Body is not an object or array of objects", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "patch": {"tags": ["Documents"], "summary": "Set one field on one matching document", "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateFieldRequest"}}],
                "responses": {"204": {"description": "Updated"},
                              "404": {"description": "No matching document", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}},
            "delete": {"tags": ["Documents"], "summary": "Delete one document by field equality",
                "parameters": [{"type": "string", "name": "field", "in": "query", "required": true},
                               {"type": "string", "name": "value", "in": "query", "required": true}],
                "responses": {"204": {"description": "Deleted"},
                              "404": {"description": "No matching document", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/v1/docsession/documents/count": {
            "get": {"tags": ["Documents"], "summary": "Count documents, optionally filtered by one field",
                "parameters": [{"type": "string", "name": "field", "in": "query"}, {"type": "string", "name": "value", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CountResponse"}}}}
        },
        "/api/v1/docsession/ingest": {
            "post": {"tags": ["Documents"], "summary": "Ingest a JSON groups file", "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.IngestResponse"}},
                              "422": {"description": "Malformed input", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "string"}}},
        "dto.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "components": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "dto.NamesResponse": {"type": "object", "properties": {"names": {"type": "array", "items": {"type": "string"}}}},
        "dto.TargetResponse": {"type": "object", "properties": {"database": {"type": "string"}, "collection": {"type": "string"}, "state": {"type": "string"}}},
        "dto.SelectTargetRequest": {"type": "object", "required": ["database", "collection"], "properties": {"database": {"type": "string"}, "collection": {"type": "string"}}},
        "dto.FieldValue": {"type": "object", "required": ["field"], "properties": {"field": {"type": "string"}, "value": {"type": "object"}}},
        "dto.UpdateFieldRequest": {"type": "object", "properties": {"filter": {"$ref": "#/definitions/dto.FieldValue"}, "set": {"$ref": "#/definitions/dto.FieldValue"}}},
        "dto.InsertResponse": {"type": "object", "properties": {"inserted": {"type": "integer"}}},
        "dto.CountResponse": {"type": "object", "properties": {"count": {"type": "integer"}}},
        "dto.IngestResponse": {"type": "object", "properties": {"inserted": {"type": "integer"}, "skipped": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "docsession API",
	Description:      "Session manager for a MongoDB-compatible document database: target selection, idempotent provisioning and single-field CRUD.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"
)

// SelectTargetRequest represents the request body for selecting a target.
type SelectTargetRequest struct {
	Database   string `json:"database" binding:"required"`
	Collection string `json:"collection" binding:"required"`
}

// FieldValue names a field and a JSON value.
type FieldValue struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value" swaggertype:"object"`
}

// UpdateFieldRequest represents the request body for a single-field update.
type UpdateFieldRequest struct {
	Filter FieldValue `json:"filter"`
	Set    FieldValue `json:"set"`
}

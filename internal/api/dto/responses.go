// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// NamesResponse lists database or collection names.
type NamesResponse struct {
	Names []string `json:"names"`
}

// TargetResponse describes the selected target and lifecycle state.
type TargetResponse struct {
	Database   string `json:"database"`
	Collection string `json:"collection"`
	State      string `json:"state"`
}

// InsertResponse reports how many documents were inserted.
type InsertResponse struct {
	Inserted int `json:"inserted"`
}

// CountResponse reports a document count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// IngestResponse reports the outcome of a group ingestion.
type IngestResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

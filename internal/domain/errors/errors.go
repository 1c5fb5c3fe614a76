// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeConnection   = "CONNECTION_ERROR"
	ErrCodeProvision    = "PROVISION_ERROR"
	ErrCodeQuery        = "QUERY_ERROR"
	ErrCodeWrite        = "WRITE_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodePrecondition = "PRECONDITION_FAILED"
	ErrCodeInput        = "INPUT_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

func wrap(code, message string, status int, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       code,
		Message:    message,
		Details:    details,
		HTTPStatus: status,
		Err:        err,
	}
}

// NewConnectionError creates an error for an unreachable or malformed address.
func NewConnectionError(address string, err error) *DomainError {
	return wrap(ErrCodeConnection, fmt.Sprintf("cannot connect to %s", address), http.StatusServiceUnavailable, err)
}

// NewProvisionError creates an error for a failed database/collection creation.
func NewProvisionError(target string, err error) *DomainError {
	return wrap(ErrCodeProvision, fmt.Sprintf("failed to provision %s", target), http.StatusInternalServerError, err)
}

// NewQueryError creates an error for a failed enumeration or read.
func NewQueryError(operation string, err error) *DomainError {
	return wrap(ErrCodeQuery, fmt.Sprintf("%s failed", operation), http.StatusBadGateway, err)
}

// NewWriteError creates an error for a failed insert, update or delete.
func NewWriteError(operation string, err error) *DomainError {
	return wrap(ErrCodeWrite, fmt.Sprintf("%s failed", operation), http.StatusBadGateway, err)
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, identifier string) *DomainError {
	return &DomainError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Details:    identifier,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewPreconditionError creates an error for an operation invoked in the wrong state.
func NewPreconditionError(operation, state string) *DomainError {
	return &DomainError{
		Code:       ErrCodePrecondition,
		Message:    fmt.Sprintf("%s requires %s state", operation, state),
		HTTPStatus: http.StatusPreconditionFailed,
	}
}

// NewInputError creates an error for malformed input data.
func NewInputError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeInput,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewBadRequestError creates a new bad request error.
func NewBadRequestError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	return wrap(ErrCodeInternal, message, http.StatusInternalServerError, err)
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// HasCode reports whether err is a domain error with the given code.
func HasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}

// IsPrecondition checks if the error is a precondition error.
func IsPrecondition(err error) bool {
	return HasCode(err, ErrCodePrecondition)
}

// IsConnectionError checks if the error is a connection error.
func IsConnectionError(err error) bool {
	return HasCode(err, ErrCodeConnection)
}

// IsProvisionError checks if the error is a provisioning error.
func IsProvisionError(err error) bool {
	return HasCode(err, ErrCodeProvision)
}

// IsQueryError checks if the error is a query error.
func IsQueryError(err error) bool {
	return HasCode(err, ErrCodeQuery)
}

// IsWriteError checks if the error is a write error.
func IsWriteError(err error) bool {
	return HasCode(err, ErrCodeWrite)
}

// IsInputError checks if the error is an input error.
func IsInputError(err error) bool {
	return HasCode(err, ErrCodeInput)
}

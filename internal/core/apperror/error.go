// Package apperror provides structured error handling for the platform.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeTypeMismatch = "TYPE_MISMATCH"

	// Archive lifecycle violations (400)
	CodeArchivedParent   = "CANNOT_MODIFY_OBJECT_WITH_ARCHIVED_PARENT"
	CodeModifyArchived   = "CANNOT_MODIFY_ARCHIVED_OBJECT"
	CodeDeleteUnarchived = "CANNOT_DELETE_UNARCHIVED_OBJECT"
	CodeDeleteProtected  = "CANNOT_DELETE_OBJECT"
	CodeCannotArchive    = "CANNOT_ARCHIVE_OBJECT"

	// Storage constraint violations (422, 409)
	CodeConstraint             = "CONSTRAINT_VIOLATION"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict = "CONFLICT"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (entity type, ids, field names, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewTypeMismatch creates an error for snapshot/clone requests on non-entity values.
func NewTypeMismatch(expected, got string) *AppError {
	return &AppError{
		Code:       CodeTypeMismatch,
		Message:    fmt.Sprintf("expected %s, got %s", expected, got),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewArchivedParent creates the error for unarchive attempts while provenance
// tags from still-archived ancestors remain on the object.
func NewArchivedParent(entity string) *AppError {
	return &AppError{
		Code:       CodeArchivedParent,
		Message:    "Cannot modify an object that has an archived parent",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"entity": entity},
	}
}

// NewModifyArchived creates the error for field modifications on an archived,
// unforced object.
func NewModifyArchived(entity string) *AppError {
	return &AppError{
		Code:       CodeModifyArchived,
		Message:    "Cannot modify an archived object",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"entity": entity},
	}
}

// NewDeleteUnarchived creates the error for delete attempts on a not-yet-archived,
// unforced object.
func NewDeleteUnarchived(entity string) *AppError {
	return &AppError{
		Code:       CodeDeleteUnarchived,
		Message:    "Cannot delete an unarchived object",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"entity": entity},
	}
}

// NewDeleteProtected creates the error for deletes rejected by a referential
// integrity constraint (dependent rows still reference the object).
func NewDeleteProtected(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeDeleteProtected,
		Message:    "Cannot delete this object",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewCannotArchive creates the error for types that forbid archiving altogether.
func NewCannotArchive(entity string) *AppError {
	return &AppError{
		Code:       CodeCannotArchive,
		Message:    "Cannot archive this object",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"entity": entity},
	}
}

// NewConstraint creates a storage constraint violation error (422).
// Raised for archive_points capacity overflow among others.
func NewConstraint(message string) *AppError {
	return &AppError{
		Code:       CodeConstraint,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode checks whether err carries the given AppError code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

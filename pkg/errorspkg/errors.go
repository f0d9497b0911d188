// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("Internal server error")
	// ErrRouteNotFound indicates that no route matches the request path.
	ErrRouteNotFound = errors.New("Route not found")
	// ErrMethodNotAllowed indicates that the path exists but not for the request method.
	ErrMethodNotAllowed = errors.New("Method not allowed")
)

// ValidationError describes a client supplied value rejected before reaching the store.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

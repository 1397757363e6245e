package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist. The service layer
// also uses it for reads denied by the visibility policy so the two cases
// are indistinguishable to callers.
var ErrNotFound = errors.New("record not found")

// ValidationError is returned by the store when a record fails validation
// (blank required field, uniqueness violation). The message is safe to
// surface to API callers.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation failed: %s", e.Message)
}

// NewValidationError builds a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

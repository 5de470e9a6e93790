package gtd

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity does not resolve for the
	// requesting user. Ownership mismatches return the same error so that
	// other users' data is indistinguishable from absent data.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected input with a field-level reason. It is
// raised at the service boundary and never reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

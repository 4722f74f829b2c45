package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repository updates when the natural key has no row.
var ErrNotFound = errors.New("entity not found")

// ValidationError reports a missing or malformed required field. Records failing
// validation are dropped by the sync runs, never stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientStock rejects a sale that would drive an item below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotFound      = errors.New("item not found")
	// ErrPersistFailed marks a write-through failure. The in-memory change
	// has already been applied and stays authoritative; the caller retries
	// the write rather than rolling back a user-visible counter change.
	ErrPersistFailed = errors.New("persist failed")
)

// ValidationError reports a malformed load or adjustment before any
// state is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

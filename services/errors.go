package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a request id does not exist.
	ErrNotFound = errors.New("leave request not found")

	// ErrInvalidTransition is returned when the (status, role, action)
	// triple is not in the transition table, or when a concurrent
	// transition won the conditional status write first.
	ErrInvalidTransition = errors.New("transition not allowed for current status")
)

// ValidationError rejects a submission before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

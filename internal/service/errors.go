package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
var (
	// ErrDeckNotFound indicates no deck has the requested name.
	// API layer should map this to HTTP 404 Not Found.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckExists indicates a deck with the requested name already exists.
	// API layer should map this to HTTP 409 Conflict.
	ErrDeckExists = errors.New("deck already exists")

	// ErrDeckNameEmpty indicates a deck name that is empty after trimming.
	// API layer should map this to HTTP 400 Bad Request.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")
)

// LibraryError is a custom error type for library operations that fail for
// reasons outside the caller's input, such as storage failures.
type LibraryError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for LibraryError.
func (e *LibraryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("library %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("library %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LibraryError) Unwrap() error {
	return e.Err
}

// NewLibraryError creates a new LibraryError.
func NewLibraryError(operation, message string, err error) *LibraryError {
	return &LibraryError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

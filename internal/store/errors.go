package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every DeckStore.
var (
	// ErrIO means the backing storage could not be opened, read or written.
	ErrIO = errors.New("storage I/O failed")

	// ErrMalformed means the stored data is not a well-formed deck document:
	// invalid JSON, wrong field types, or missing required fields. It matches
	// ErrIO too.
	ErrMalformed = fmt.Errorf("%w: malformed document", ErrIO)

	// ErrInvalidEntity means a stored row broke a database constraint or
	// referenced a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed means a transaction could not begin, commit or
	// roll back.
	ErrTransactionFailed = errors.New("transaction failed")
)

// IsIOError reports whether err is any kind of storage I/O error, malformed
// documents included.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// StoreError records a failed load or save and where it happened. It always
// matches ErrIO in addition to its cause.
type StoreError struct {
	Op       string // "load" or "save"
	Location string // file path or backend name
	Err      error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Location, ErrIO)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
}

// Unwrap exposes both ErrIO and the cause to errors.Is and errors.As.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIO}
	}
	return []error{ErrIO, e.Err}
}

// NewStoreError returns a StoreError for op at location caused by err.
func NewStoreError(op, location string, err error) *StoreError {
	return &StoreError{Op: op, Location: location, Err: err}
}

package storage

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned by a slot that has no room for the value
var ErrQuotaExceeded = errors.New("slot quota exceeded")

// WriteError means a slot write failed. The in-memory state it was meant to persist is still valid
// for the session, so callers treat it as a warning.
type WriteError struct {
	Key   string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to persist slot %s: %v", e.Key, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// ReadError means a slot could not be read at all
type ReadError struct {
	Key   string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read slot %s: %v", e.Key, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned when no record has the requested id, or the history is empty
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return "no analyses in history"
	}
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// IsWriteFailure reports whether err is a non-fatal persistence failure
func IsWriteFailure(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

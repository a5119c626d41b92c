package normalize

import "fmt"

// CorruptRecordError is returned for a stored item that cannot be reconciled into a record.
// Loads skip and count these rather than fail.
type CorruptRecordError struct {
	Message string
	Cause   error
}

func (e *CorruptRecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt record: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("corrupt record: %s", e.Message)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Cause
}

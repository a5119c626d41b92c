package progress

import "fmt"

// UnknownIDError is returned for a step or test id that is not tracked
type UnknownIDError struct {
	Kind string
	ID   string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.ID)
}

// InvalidLinkError is returned when a proof link is set to something other than an absolute http(s) URL
type InvalidLinkError struct {
	Field string
	Value string
	Cause error
}

func (e *InvalidLinkError) Error() string {
	return fmt.Sprintf("invalid %s: %q is not an http(s) URL", e.Field, e.Value)
}

func (e *InvalidLinkError) Unwrap() error {
	return e.Cause
}

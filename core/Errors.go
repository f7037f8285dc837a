package core

import "fmt"

// RetrievalError means the findings could not be read from storage.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve findings: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// MissingFieldError means a finding lacked an attribute required for aggregation.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field '%s'", e.Field)
}

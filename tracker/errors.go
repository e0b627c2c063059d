package tracker

import "fmt"

// ValidationError is a user-facing rejection of form input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when an operation references an unknown record
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ConflictError is returned when an operation is valid in form but not
// in the record's current state, like archiving an archived medication
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

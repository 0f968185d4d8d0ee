package helper

import "fmt"

// Error carries the operation that failed together with its cause.
type Error struct {
	Operation string
	Original  error
}

// NewError wraps err with the name of the failing operation.
// The result keeps err reachable through errors.Is and errors.As.
func NewError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Operation: operation,
		Original:  err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Original)
}

func (e *Error) Unwrap() error {
	return e.Original
}

package shields

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a field that is not a finite number.
	ErrInvalidInput = errors.New("shields: invalid input")

	// ErrDegenerateConfiguration indicates inputs for which the Shields number
	// is undefined or physically meaningless.
	ErrDegenerateConfiguration = errors.New("shields: degenerate configuration")
)

// EvaluationError names the offending field of a rejected input.
type EvaluationError struct {
	Kind   error
	Field  string
	Detail string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Detail)
}

func (e *EvaluationError) Unwrap() error {
	return e.Kind
}

func invalid(field, detail string) error {
	return &EvaluationError{Kind: ErrInvalidInput, Field: field, Detail: detail}
}

func degenerate(field, detail string) error {
	return &EvaluationError{Kind: ErrDegenerateConfiguration, Field: field, Detail: detail}
}

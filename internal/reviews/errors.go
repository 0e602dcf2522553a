package reviews

import (
	"errors"
	"fmt"
)

// ErrValidation marks input the pipeline refuses to review.
var ErrValidation = errors.New("validation failed")

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

// ValidationError names the profile field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

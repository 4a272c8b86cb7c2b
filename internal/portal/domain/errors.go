package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks client-caused input problems so the HTTP layer
// can answer 400 instead of 500.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Package service holds what the domain services share: validation errors
// and the transition sentinel.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is returned when a status change is not allowed from
// the record's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ValidationError reports rejected input. The API layer maps it to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Transition wraps ErrInvalidTransition with the offending statuses.
func Transition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Contains is a case-insensitive substring match used by list searches.
func Contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

package models

import (
	"fmt"
	"strings"
)

// ValidationError reports one field constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the complete list of violations found in one
// validation pass. Validation never fails fast: callers always receive
// every violation at once.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(e), strings.Join(msgs, "; "))
}

// Append adds a violation for the given field.
func (e *ValidationErrors) Append(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// AsError returns the list as an error, or nil when it is empty.
func (e ValidationErrors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

package reference

import (
	"errors"
	"fmt"
)

// Common reference number errors
var (
	// ErrNoDigits is returned when a customer reference contains no
	// digits at all, so no QR reference can be derived from it.
	ErrNoDigits = errors.New("customer reference contains no digits")

	// ErrInvalidIBAN is returned when an IBAN fails the shape or
	// ISO 7064 MOD97-10 checksum test.
	ErrInvalidIBAN = errors.New("invalid IBAN")

	// ErrNotQRIBAN is returned when a QR reference is requested against
	// an account whose IID is outside the QR-IBAN range.
	ErrNotQRIBAN = errors.New("account is not a QR-IBAN")

	// ErrBadCheckDigit is returned when a 27-digit QR reference fails
	// its mod-10-recursive check digit.
	ErrBadCheckDigit = errors.New("QR reference check digit mismatch")

	// ErrBadReferenceShape is returned when a reference does not match
	// the shape its reference type requires.
	ErrBadReferenceShape = errors.New("reference shape invalid for its type")
)

// ReferenceError wraps reference failures with the operation and the
// offending input.
type ReferenceError struct {
	// Op is the operation that failed (e.g. "GenerateQRReference").
	Op string

	// Input is the normalized input the operation rejected.
	Input string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("reference: %s failed for %q: %v", e.Op, e.Input, e.Err)
	}
	return fmt.Sprintf("reference: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// Package address enforces the field length and charset rules the
// payment standard imposes on creditor and debtor addresses.
//
// Validation is exhaustive: every violation in an address is collected
// and returned in one list, never just the first one found.
package address

import (
	"fmt"
	"unicode/utf8"

	"qrbill/pkg/models"
)

// Field length limits from the payment standard.
const (
	maxNameLen       = 70
	maxLineLen       = 70
	maxPostalCodeLen = 16
	maxCityLen       = 35
)

// Validator checks addresses against the payment standard's rules.
// It is stateless and side-effect free.
type Validator struct{}

// NewValidator creates a new address validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate collects every violation in the address. The fieldPrefix
// (e.g. "creditor", "debtor") qualifies field names in the returned
// list so callers can attribute violations to the right party.
func (v *Validator) Validate(addr models.Address, fieldPrefix string) models.ValidationErrors {
	var errs models.ValidationErrors

	field := func(name string) string {
		if fieldPrefix == "" {
			return name
		}
		return fieldPrefix + "." + name
	}

	checkText(&errs, field("name"), addr.Name, maxNameLen, true)
	checkText(&errs, field("line1"), addr.Line1, maxLineLen, true)
	checkText(&errs, field("line2"), addr.Line2, maxLineLen, false)
	checkText(&errs, field("postalCode"), addr.PostalCode, maxPostalCodeLen, true)
	checkText(&errs, field("city"), addr.City, maxCityLen, true)

	if !isCountryCode(addr.Country) {
		errs.Append(field("country"), "must be exactly 2 uppercase letters (ISO 3166-1)")
	}

	return errs
}

// checkText validates one text field: presence (when required), length
// in runes, and the printable charset the payment standard allows.
func checkText(errs *models.ValidationErrors, field, value string, maxLen int, required bool) {
	if value == "" {
		if required {
			errs.Append(field, "must not be empty")
		}
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		errs.Append(field, fmt.Sprintf("must not exceed %d characters", maxLen))
	}
	for _, r := range value {
		if !allowedRune(r) {
			errs.Append(field, fmt.Sprintf("contains unsupported character %q", r))
			break
		}
	}
}

// allowedRune reports whether the rune belongs to the Latin-1 printable
// subset accepted in QR-bill text fields.
func allowedRune(r rune) bool {
	if r >= 0x20 && r <= 0x7e {
		return true
	}
	return r >= 0xa0 && r <= 0xff
}

// isCountryCode reports whether s is exactly two uppercase ASCII letters.
func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

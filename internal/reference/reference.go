// Package reference implements the checksum and shape rules for Swiss
// payment reference numbers.
//
// Two independent algorithms live here, both bit-exact against the
// published payment standard:
//   - ISO 7064 MOD97-10 for IBAN structural validation
//   - the table-driven mod-10-recursive check digit protecting the
//     27-digit QR reference
//
// The package also decides QR-IBAN status (IID range 30000-31999) and
// checks the ISO 11649 creditor reference shape used by SCOR payments.
// All operations are pure; display formatting carries no validation
// semantics.
package reference

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"qrbill/internal/logger"
)

// mod10Table is the carry table of the recursive mod-10 algorithm.
// Fixed by the standard; changing any entry breaks every Swiss QR
// reference ever issued.
var mod10Table = [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}

var (
	ibanShape = regexp.MustCompile(`^CH[0-9A-Z]{19}$`)
	scorShape = regexp.MustCompile(`^RF[0-9]{2}[0-9A-Z]{1,21}$`)
	digitsRE  = regexp.MustCompile(`[^0-9]`)
)

// QR-IBAN institution identification range.
const (
	qrIIDMin = 30000
	qrIIDMax = 31999
)

// Service validates and derives payment reference numbers.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new reference number service.
func NewService() *Service {
	return &Service{
		log: logger.WithComponent("reference"),
	}
}

// normalizeIBAN strips all whitespace and uppercases the input.
func normalizeIBAN(iban string) string {
	var b strings.Builder
	b.Grow(len(iban))
	for _, r := range iban {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// IsValidIBAN reports whether the input is a structurally valid Swiss
// IBAN: 21 characters starting with CH, passing ISO 7064 MOD97-10.
// Whitespace and case are normalized before checking.
func (s *Service) IsValidIBAN(iban string) bool {
	n := normalizeIBAN(iban)
	if !ibanShape.MatchString(n) {
		return false
	}
	return mod97(n[4:]+n[:4]) == 1
}

// mod97 maps letters to two-digit numbers (A=10..Z=35) and reduces the
// resulting decimal string modulo 97 without big-integer arithmetic.
func mod97(rearranged string) int {
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
		default:
			return -1
		}
	}
	return rem
}

// IsQRIBAN reports whether the IBAN carries a QR-IID, i.e. its
// institution identification (characters 5-9) lies in [30000, 31999].
// The IBAN itself is not checksum-verified here.
func (s *Service) IsQRIBAN(iban string) bool {
	n := normalizeIBAN(iban)
	if len(n) < 9 {
		return false
	}
	iid, err := strconv.Atoi(n[4:9])
	if err != nil {
		return false
	}
	return iid >= qrIIDMin && iid <= qrIIDMax
}

// GenerateQRReference derives the 27-digit QR reference from an
// arbitrary customer reference: non-digits are stripped, the digits are
// left-padded with zeros to 26 positions, and the mod-10-recursive
// check digit is appended.
func (s *Service) GenerateQRReference(customerRef string) (string, error) {
	digits := digitsRE.ReplaceAllString(customerRef, "")
	if digits == "" {
		return "", &ReferenceError{Op: "GenerateQRReference", Input: customerRef, Err: ErrNoDigits}
	}
	if len(digits) > 26 {
		return "", &ReferenceError{Op: "GenerateQRReference", Input: customerRef, Err: ErrBadReferenceShape}
	}
	padded := strings.Repeat("0", 26-len(digits)) + digits
	ref := padded + strconv.Itoa(checkDigit(padded))

	s.log.Debug().
		Str("customer_ref", customerRef).
		Str("qr_reference", ref).
		Msg("Generated QR reference")

	return ref, nil
}

// checkDigit runs the recursive mod-10 algorithm over a digit string.
func checkDigit(digits string) int {
	carry := 0
	for _, r := range digits {
		carry = mod10Table[(carry+int(r-'0'))%10]
	}
	return (10 - carry) % 10
}

// IsValidQRReference reports whether ref is exactly 27 digits whose
// final digit matches the recomputed check digit of the first 26.
func (s *Service) IsValidQRReference(ref string) bool {
	if len(ref) != 27 {
		return false
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return false
		}
	}
	return checkDigit(ref[:26]) == int(ref[26]-'0')
}

// IsValidCreditorReference reports whether ref has the ISO 11649 shape
// used by SCOR payments (RF + 2 check digits + up to 21 alphanumerics).
// Only the shape is checked, matching what the payment slip requires.
func (s *Service) IsValidCreditorReference(ref string) bool {
	return scorShape.MatchString(strings.ToUpper(strings.ReplaceAll(ref, " ", "")))
}

// FormatIBAN renders an IBAN in display form, grouped by 4 characters.
// Pure formatting; the input is not validated.
func (s *Service) FormatIBAN(iban string) string {
	n := normalizeIBAN(iban)
	var b strings.Builder
	for i, r := range n {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatQRReference renders a 27-digit QR reference in its canonical
// display split: 2 digits, then groups of 5. Pure formatting.
func (s *Service) FormatQRReference(ref string) string {
	if len(ref) != 27 {
		return ref
	}
	parts := []string{ref[:2]}
	for i := 2; i < len(ref); i += 5 {
		parts = append(parts, ref[i:i+5])
	}
	return strings.Join(parts, " ")
}

// Package payload validates payment records and serializes them into
// the Swiss Payments Code ("SPC") text payload encoded into the QR
// symbol of a payment slip.
//
// The payload format is positional: banking scanners parse it by line
// index, so the encoder always emits the same fixed number of lines in
// the same order. An absent optional value occupies its position as an
// empty string; a line is never omitted.
package payload

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"qrbill/internal/address"
	"qrbill/internal/logger"
	"qrbill/internal/reference"
	"qrbill/pkg/models"
)

// SPC payload framing constants.
const (
	qrType      = "SPC"
	version     = "0200"
	codingLatin = "1"
	trailer     = "EPD"

	addressTypeStructured = "S"
)

// PayloadLineCount is the fixed number of lines every encoded payload
// carries, regardless of which optional values are present.
const PayloadLineCount = 34

// Text field limits from the payment standard.
const (
	maxMessageLen   = 140
	maxBillInfoLen  = 140
	maxReferenceLen = 27
	maxAltProcLen   = 100
	maxAltProcCount = 2
)

// Encoder validates payment records and produces SPC payloads.
type Encoder struct {
	addresses *address.Validator
	refs      *reference.Service
	log       zerolog.Logger
}

// NewEncoder creates a new payload encoder.
func NewEncoder(addresses *address.Validator, refs *reference.Service) *Encoder {
	return &Encoder{
		addresses: addresses,
		refs:      refs,
		log:       logger.WithComponent("payload"),
	}
}

// Validate collects every violation in the record: address rules,
// amount and currency ranges, text lengths, and the reference-type
// invariants (QRR needs a QR-IBAN and a checksum-valid QR reference,
// SCOR needs an ISO 11649 shape, NON forbids a reference).
func (e *Encoder) Validate(rec *models.PaymentRecord) models.ValidationErrors {
	var errs models.ValidationErrors

	errs = append(errs, e.addresses.Validate(rec.Creditor.Address, "creditor")...)
	if rec.Debtor != nil {
		errs = append(errs, e.addresses.Validate(rec.Debtor.Address, "debtor")...)
	}

	if !e.refs.IsValidIBAN(rec.Account) {
		errs.Append("account", "not a valid Swiss IBAN")
	}

	if rec.AmountCents < 0 {
		errs.Append("amount", "must not be negative")
	} else if rec.AmountCents != 0 && (rec.AmountCents < models.MinAmountCents || rec.AmountCents > models.MaxAmountCents) {
		errs.Append("amount", "must be between 0.01 and 999999999.99")
	}

	if !rec.Currency.Valid() {
		errs.Append("currency", fmt.Sprintf("unsupported currency %q, must be CHF or EUR", string(rec.Currency)))
	}

	if !rec.ReferenceType.Valid() {
		errs.Append("referenceType", fmt.Sprintf("unknown reference type %q", string(rec.ReferenceType)))
	} else {
		e.validateReference(rec, &errs)
	}

	if utf8.RuneCountInString(rec.UnstructuredMessage) > maxMessageLen {
		errs.Append("unstructuredMessage", fmt.Sprintf("must not exceed %d characters", maxMessageLen))
	}
	if utf8.RuneCountInString(rec.BillInformation) > maxBillInfoLen {
		errs.Append("billInformation", fmt.Sprintf("must not exceed %d characters", maxBillInfoLen))
	}
	if len(rec.AlternativeProcedures) > maxAltProcCount {
		errs.Append("alternativeProcedures", fmt.Sprintf("at most %d entries allowed", maxAltProcCount))
	}
	for i, ap := range rec.AlternativeProcedures {
		if utf8.RuneCountInString(ap) > maxAltProcLen {
			errs.Append(fmt.Sprintf("alternativeProcedures[%d]", i), fmt.Sprintf("must not exceed %d characters", maxAltProcLen))
		}
	}

	return errs
}

// validateReference enforces the per-type reference invariants.
func (e *Encoder) validateReference(rec *models.PaymentRecord, errs *models.ValidationErrors) {
	if utf8.RuneCountInString(rec.Reference) > maxReferenceLen {
		errs.Append("reference", fmt.Sprintf("must not exceed %d characters", maxReferenceLen))
		return
	}

	switch rec.ReferenceType {
	case models.ReferenceQRR:
		if !e.refs.IsQRIBAN(rec.Account) {
			errs.Append("account", "QRR reference type requires a QR-IBAN account")
		}
		if !e.refs.IsValidQRReference(rec.Reference) {
			errs.Append("reference", "not a valid 27-digit QR reference")
		}
	case models.ReferenceSCOR:
		if e.refs.IsQRIBAN(rec.Account) {
			errs.Append("account", "SCOR reference type requires a regular IBAN, not a QR-IBAN")
		}
		if !e.refs.IsValidCreditorReference(rec.Reference) {
			errs.Append("reference", "not a valid ISO 11649 creditor reference")
		}
	case models.ReferenceNON:
		if e.refs.IsQRIBAN(rec.Account) {
			errs.Append("account", "NON reference type requires a regular IBAN, not a QR-IBAN")
		}
		if rec.Reference != "" {
			errs.Append("reference", "must be empty when reference type is NON")
		}
	}
}

// Encode validates the record and serializes it into the SPC payload.
// The returned string is the exact content of the QR symbol
// (error-correction level M); it is newline-delimited and always
// PayloadLineCount lines long.
func (e *Encoder) Encode(rec *models.PaymentRecord) (string, error) {
	if errs := e.Validate(rec); len(errs) > 0 {
		e.log.Debug().
			Int("violations", len(errs)).
			Msg("Payment record rejected")
		return "", errs
	}

	lines := make([]string, 0, PayloadLineCount)

	// Header
	lines = append(lines, qrType, version, codingLatin)

	// Creditor account and address
	lines = append(lines, normalizedAccount(rec.Account))
	lines = append(lines, addressLines(&rec.Creditor.Address)...)

	// Ultimate creditor: reserved by the standard, always empty here
	lines = append(lines, "", "", "", "", "", "", "")

	// Amount and currency
	amount := ""
	if rec.AmountCents != 0 {
		amount = models.FormatCents(rec.AmountCents)
	}
	lines = append(lines, amount, string(rec.Currency))

	// Debtor: empty positions when absent, never omitted
	if rec.Debtor != nil {
		lines = append(lines, addressLines(&rec.Debtor.Address)...)
	} else {
		lines = append(lines, "", "", "", "", "", "", "")
	}

	// Reference
	lines = append(lines, string(rec.ReferenceType), rec.Reference)

	// Additional information
	lines = append(lines, rec.UnstructuredMessage, trailer, rec.BillInformation)

	// Alternative procedures: both positions always present
	for i := 0; i < maxAltProcCount; i++ {
		if i < len(rec.AlternativeProcedures) {
			lines = append(lines, rec.AlternativeProcedures[i])
		} else {
			lines = append(lines, "")
		}
	}

	e.log.Debug().
		Str("reference_type", string(rec.ReferenceType)).
		Str("currency", string(rec.Currency)).
		Int("lines", len(lines)).
		Msg("Encoded SPC payload")

	return strings.Join(lines, "\n"), nil
}

// addressLines renders the 7 positional lines of a structured address.
func addressLines(a *models.Address) []string {
	return []string{
		addressTypeStructured,
		a.Name,
		a.Line1,
		a.Line2,
		a.PostalCode,
		a.City,
		a.Country,
	}
}

// normalizedAccount strips spaces and uppercases the IBAN for the wire.
func normalizedAccount(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

package models

// Currency is an ISO 4217 code accepted on a Swiss QR-bill.
// The payment standard admits exactly two.
type Currency string

const (
	CHF Currency = "CHF"
	EUR Currency = "EUR"
)

// Valid reports whether the currency is one the QR-bill standard accepts.
func (c Currency) Valid() bool {
	return c == CHF || c == EUR
}

// ReferenceType selects the payment reference variant carried by a QR-bill.
type ReferenceType string

const (
	// ReferenceQRR is the 27-digit QR reference protected by a
	// mod-10-recursive check digit. Requires a QR-IBAN account.
	ReferenceQRR ReferenceType = "QRR"

	// ReferenceSCOR is an ISO 11649 creditor reference ("RF..").
	ReferenceSCOR ReferenceType = "SCOR"

	// ReferenceNON means no reference; the reference field must be empty.
	ReferenceNON ReferenceType = "NON"
)

// Valid reports whether the reference type is a known variant.
func (rt ReferenceType) Valid() bool {
	switch rt {
	case ReferenceQRR, ReferenceSCOR, ReferenceNON:
		return true
	}
	return false
}

// Address is a structured postal address as printed on the payment slip.
// It is a value type; the engine never mutates one after validation.
type Address struct {
	Name       string // Person or company name (max 70 chars)
	Line1      string // Street and house number (max 70 chars)
	Line2      string // Optional second address line (max 70 chars)
	PostalCode string // Postal code (max 16 chars)
	City       string // City (max 35 chars)
	Country    string // ISO 3166-1 alpha-2 code, exactly 2 uppercase letters
}

// PaymentParty is one side of a payment: a named address.
// The creditor's account is carried on the PaymentRecord, not here.
type PaymentParty struct {
	Address Address
}

// Amount bounds for a payment record, in rappen (cents).
// The standard allows 0.01 up to 999'999'999.99.
const (
	MinAmountCents int64 = 1
	MaxAmountCents int64 = 99_999_999_999
)

// PaymentRecord is the fully-populated input for one QR-bill.
// Amounts are stored as cents/smallest currency unit to avoid float issues.
// A record is validated exactly once and then consumed read-only.
type PaymentRecord struct {
	Creditor PaymentParty
	Account  string // Creditor IBAN; must be a QR-IBAN when ReferenceType is QRR

	AmountCents int64 // Amount in rappen; 0 means "amount left open"
	Currency    Currency

	// Debtor is optional. When nil the slip renders a blank
	// "payable by" box for handwritten completion.
	Debtor *PaymentParty

	ReferenceType ReferenceType
	Reference     string // Max 27 chars; digits only for QRR, RF-shape for SCOR, empty for NON

	UnstructuredMessage   string   // Free-text message to the creditor (max 140 chars)
	BillInformation       string   // Structured booking information (max 140 chars)
	AlternativeProcedures []string // At most 2 entries, each max 100 chars
}

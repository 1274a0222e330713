package models

import "time"

// DiscountType distinguishes the two discount variants an invoice supports.
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFlat    DiscountType = "FLAT"
)

// Discount is a tagged discount value. Exactly one of Percent or
// AmountCents is meaningful, selected by Type; use sites switch
// exhaustively so an absent discount is a nil pointer, never an
// ambiguous zero value.
type Discount struct {
	Type        DiscountType
	Percent     float64 // For DiscountPercent: percentage, clipped to [0,100]
	AmountCents int64   // For DiscountFlat: amount in cents, clipped to what it applies to
	Note        string  // Optional label printed next to the discount line
}

// LineItem is one billable row of an invoice.
type LineItem struct {
	Description    string
	Quantity       float64 // Must be > 0; fractional quantities (hours) allowed
	UnitPriceCents int64   // Price per unit in cents, >= 0
	VATRate        float64 // VAT percentage, >= 0 (e.g. 8.1)

	// GrossIncludesVAT marks the unit price as VAT-inclusive; the
	// composer then splits net and VAT out of the gross amount.
	GrossIncludesVAT bool

	Discount *Discount // Optional per-line discount
}

// CompanyInfo is the issuing company block printed in the invoice header.
type CompanyInfo struct {
	Address Address
	VATNo   string // Optional VAT registration number (CHE-...)
	Phone   string
	Email   string
	Website string
}

// InvoiceDocument is the full input for one invoice generation request.
// It is constructed per request, validated once, and discarded after the
// document bytes are produced; the engine never stores or mutates it.
type InvoiceDocument struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time

	Company CompanyInfo
	Client  Address

	Items    []LineItem
	Currency Currency

	// Discount is an optional global discount applied after all
	// per-line discounts.
	Discount *Discount

	Notes string // Optional free text under the totals block
	Terms string // Optional payment terms line
}

// VATLine is the aggregate for one distinct VAT rate.
type VATLine struct {
	Rate       float64
	NetCents   int64
	VATCents   int64
	GrossCents int64
}

// Totals carries every derived aggregate of an invoice. Totals are
// computed, never stored.
type Totals struct {
	SubtotalCents              int64 // Σ quantity × unit price, before any discount
	LineDiscountCents          int64 // Σ per-line discount amounts
	GlobalDiscountCents        int64 // Global discount amount, never above the subtotal
	SubtotalAfterDiscountCents int64
	VATLines                   []VATLine // One entry per distinct rate, ascending
	GrandTotalCents            int64
}

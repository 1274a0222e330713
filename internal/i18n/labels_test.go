package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "Empfangsschein", Lookup(German).Receipt)
	assert.Equal(t, "Section paiement", Lookup(French).PaymentPart)
	assert.Equal(t, "Punto di accettazione", Lookup(Italian).AcceptancePoint)
	assert.Equal(t, "Payable by", Lookup(English).PayableBy)
}

// Unknown codes fall back to French, the system default.
func TestLookupFallback(t *testing.T) {
	assert.Equal(t, Lookup(French), Lookup("rm"))
	assert.Equal(t, Lookup(French), Lookup(""))
	assert.Equal(t, Lookup(French), Lookup("DE")) // codes are lowercase
}

func TestLabelSetsComplete(t *testing.T) {
	for lang, set := range labels {
		for _, s := range []string{
			set.Receipt, set.PaymentPart, set.Account, set.PayableTo,
			set.PayableBy, set.Reference, set.AdditionalInfo, set.Currency,
			set.Amount, set.AcceptancePoint, set.DoNotUseForPayment,
		} {
			assert.NotEmpty(t, s, "language %s has an empty label", lang)
		}
	}
}

func TestLookupInvoice(t *testing.T) {
	assert.Equal(t, "Rechnung", LookupInvoice(German).Invoice)
	assert.Equal(t, "Sous-total", LookupInvoice(French).Subtotal)
	assert.Equal(t, LookupInvoice(French), LookupInvoice("xx"))

	for lang, set := range invoiceLabels {
		for _, s := range []string{
			set.Invoice, set.InvoiceNumber, set.IssueDate, set.DueDate,
			set.BillTo, set.Description, set.Quantity, set.UnitPrice,
			set.VAT, set.Amount, set.Subtotal, set.Discount, set.Total,
		} {
			assert.NotEmpty(t, s, "language %s has an empty invoice label", lang)
		}
	}
}

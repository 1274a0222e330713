package i18n

// InvoiceLabelSet carries the strings printed in the invoice body
// (header, table, totals). Same lookup rules as the slip labels.
type InvoiceLabelSet struct {
	Invoice       string
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	BillTo        string
	Description   string
	Quantity      string
	UnitPrice     string
	VAT           string
	Amount        string
	Subtotal      string
	Discount      string
	Total         string
	Notes         string
	Terms         string
	Page          string
	VATNo         string
}

var invoiceLabels = map[Language]InvoiceLabelSet{
	German: {
		Invoice:       "Rechnung",
		InvoiceNumber: "Rechnungsnummer",
		IssueDate:     "Datum",
		DueDate:       "Fällig am",
		BillTo:        "Rechnungsadresse",
		Description:   "Beschreibung",
		Quantity:      "Menge",
		UnitPrice:     "Einzelpreis",
		VAT:           "MwSt.",
		Amount:        "Betrag",
		Subtotal:      "Zwischensumme",
		Discount:      "Rabatt",
		Total:         "Gesamtbetrag",
		Notes:         "Bemerkungen",
		Terms:         "Zahlungsbedingungen",
		Page:          "Seite",
		VATNo:         "MwSt.-Nr.",
	},
	French: {
		Invoice:       "Facture",
		InvoiceNumber: "Numéro de facture",
		IssueDate:     "Date",
		DueDate:       "Échéance",
		BillTo:        "Adresse de facturation",
		Description:   "Description",
		Quantity:      "Quantité",
		UnitPrice:     "Prix unitaire",
		VAT:           "TVA",
		Amount:        "Montant",
		Subtotal:      "Sous-total",
		Discount:      "Rabais",
		Total:         "Total",
		Notes:         "Remarques",
		Terms:         "Conditions de paiement",
		Page:          "Page",
		VATNo:         "N° TVA",
	},
	Italian: {
		Invoice:       "Fattura",
		InvoiceNumber: "Numero di fattura",
		IssueDate:     "Data",
		DueDate:       "Scadenza",
		BillTo:        "Indirizzo di fatturazione",
		Description:   "Descrizione",
		Quantity:      "Quantità",
		UnitPrice:     "Prezzo unitario",
		VAT:           "IVA",
		Amount:        "Importo",
		Subtotal:      "Subtotale",
		Discount:      "Sconto",
		Total:         "Totale",
		Notes:         "Osservazioni",
		Terms:         "Condizioni di pagamento",
		Page:          "Pagina",
		VATNo:         "N. IVA",
	},
	English: {
		Invoice:       "Invoice",
		InvoiceNumber: "Invoice number",
		IssueDate:     "Date",
		DueDate:       "Due date",
		BillTo:        "Bill to",
		Description:   "Description",
		Quantity:      "Qty",
		UnitPrice:     "Unit price",
		VAT:           "VAT",
		Amount:        "Amount",
		Subtotal:      "Subtotal",
		Discount:      "Discount",
		Total:         "Total",
		Notes:         "Notes",
		Terms:         "Payment terms",
		Page:          "Page",
		VATNo:         "VAT no.",
	},
}

// LookupInvoice returns the invoice-body label set for the language,
// falling back to French for unknown codes.
func LookupInvoice(lang Language) InvoiceLabelSet {
	if set, ok := invoiceLabels[lang]; ok {
		return set
	}
	return invoiceLabels[DefaultLanguage]
}

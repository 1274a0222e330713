// Package i18n holds the fixed UI strings printed on the payment slip
// in the four official QR-bill languages.
//
// The tables are immutable lookup data; unknown language codes fall
// back to French, the deployed system's default.
package i18n

// Language is a QR-bill slip language code.
type Language string

const (
	German  Language = "de"
	French  Language = "fr"
	Italian Language = "it"
	English Language = "en"
)

// DefaultLanguage is used when the caller supplies an unknown code.
const DefaultLanguage = French

// LabelSet carries every localized string a payment slip prints.
type LabelSet struct {
	Receipt            string
	PaymentPart        string
	Account            string
	PayableTo          string
	PayableBy          string
	Reference          string
	AdditionalInfo     string
	Currency           string
	Amount             string
	AcceptancePoint    string
	DoNotUseForPayment string
}

var labels = map[Language]LabelSet{
	German: {
		Receipt:            "Empfangsschein",
		PaymentPart:        "Zahlteil",
		Account:            "Konto",
		PayableTo:          "Zahlbar an",
		PayableBy:          "Zahlbar durch",
		Reference:          "Referenz",
		AdditionalInfo:     "Zusätzliche Informationen",
		Currency:           "Währung",
		Amount:             "Betrag",
		AcceptancePoint:    "Annahmestelle",
		DoNotUseForPayment: "NICHT ZUR ZAHLUNG VERWENDEN",
	},
	French: {
		Receipt:            "Récépissé",
		PaymentPart:        "Section paiement",
		Account:            "Compte",
		PayableTo:          "Payable à",
		PayableBy:          "Payable par",
		Reference:          "Référence",
		AdditionalInfo:     "Informations supplémentaires",
		Currency:           "Monnaie",
		Amount:             "Montant",
		AcceptancePoint:    "Point de dépôt",
		DoNotUseForPayment: "NE PAS UTILISER POUR LE PAIEMENT",
	},
	Italian: {
		Receipt:            "Ricevuta",
		PaymentPart:        "Sezione pagamento",
		Account:            "Conto",
		PayableTo:          "Pagabile a",
		PayableBy:          "Pagabile da",
		Reference:          "Riferimento",
		AdditionalInfo:     "Informazioni supplementari",
		Currency:           "Valuta",
		Amount:             "Importo",
		AcceptancePoint:    "Punto di accettazione",
		DoNotUseForPayment: "NON UTILIZZARE PER IL PAGAMENTO",
	},
	English: {
		Receipt:            "Receipt",
		PaymentPart:        "Payment part",
		Account:            "Account",
		PayableTo:          "Payable to",
		PayableBy:          "Payable by",
		Reference:          "Reference",
		AdditionalInfo:     "Additional information",
		Currency:           "Currency",
		Amount:             "Amount",
		AcceptancePoint:    "Acceptance point",
		DoNotUseForPayment: "DO NOT USE FOR PAYMENT",
	},
}

// Lookup returns the label set for the language, falling back to
// French for unknown codes.
func Lookup(lang Language) LabelSet {
	if set, ok := labels[lang]; ok {
		return set
	}
	return labels[DefaultLanguage]
}

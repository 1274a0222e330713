package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"qrbill/pkg/models"
)

// The CLI accepts YAML documents describing a payment record or a full
// invoice. Amounts are written as decimal francs in the file and
// converted to cents at the boundary; inside the engine everything is
// integer cents.

// AddressInput is the YAML shape of a postal address.
type AddressInput struct {
	Name       string `yaml:"name"`
	Line1      string `yaml:"line1"`
	Line2      string `yaml:"line2,omitempty"`
	PostalCode string `yaml:"postal_code"`
	City       string `yaml:"city"`
	Country    string `yaml:"country"`
}

// PaymentInput is the YAML shape of one payment record.
type PaymentInput struct {
	Account               string        `yaml:"account"`
	Amount                float64       `yaml:"amount,omitempty"`
	Currency              string        `yaml:"currency"`
	Creditor              AddressInput  `yaml:"creditor"`
	Debtor                *AddressInput `yaml:"debtor,omitempty"`
	ReferenceType         string        `yaml:"reference_type"`
	Reference             string        `yaml:"reference,omitempty"`
	Message               string        `yaml:"message,omitempty"`
	BillInformation       string        `yaml:"bill_information,omitempty"`
	AlternativeProcedures []string      `yaml:"alternative_procedures,omitempty"`
}

// DiscountInput is the YAML shape of a line or global discount.
type DiscountInput struct {
	Type    string  `yaml:"type"` // PERCENT or FLAT
	Percent float64 `yaml:"percent,omitempty"`
	Amount  float64 `yaml:"amount,omitempty"`
	Note    string  `yaml:"note,omitempty"`
}

// ItemInput is the YAML shape of one invoice line.
type ItemInput struct {
	Description      string         `yaml:"description"`
	Quantity         float64        `yaml:"quantity"`
	UnitPrice        float64        `yaml:"unit_price"`
	VATRate          float64        `yaml:"vat_rate"`
	GrossIncludesVAT bool           `yaml:"gross_includes_vat,omitempty"`
	Discount         *DiscountInput `yaml:"discount,omitempty"`
}

// InvoiceInput is the YAML shape of a full invoice document.
type InvoiceInput struct {
	Number    string `yaml:"number"`
	IssueDate string `yaml:"issue_date"`
	DueDate   string `yaml:"due_date"`

	Company struct {
		AddressInput `yaml:",inline"`
		VATNo        string `yaml:"vat_no,omitempty"`
		Phone        string `yaml:"phone,omitempty"`
		Email        string `yaml:"email,omitempty"`
		Website      string `yaml:"website,omitempty"`
	} `yaml:"company"`
	Client AddressInput `yaml:"client"`

	Currency string         `yaml:"currency"`
	Items    []ItemInput    `yaml:"items"`
	Discount *DiscountInput `yaml:"discount,omitempty"`
	Notes    string         `yaml:"notes,omitempty"`
	Terms    string         `yaml:"terms,omitempty"`

	Payment PaymentInput `yaml:"payment"`
}

// francsToCents converts a decimal franc amount from the YAML file.
func francsToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (a *AddressInput) toModel() models.Address {
	return models.Address{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		PostalCode: a.PostalCode,
		City:       a.City,
		Country:    a.Country,
	}
}

func (d *DiscountInput) toModel() *models.Discount {
	if d == nil {
		return nil
	}
	return &models.Discount{
		Type:        models.DiscountType(d.Type),
		Percent:     d.Percent,
		AmountCents: francsToCents(d.Amount),
		Note:        d.Note,
	}
}

func (p *PaymentInput) toModel() *models.PaymentRecord {
	rec := &models.PaymentRecord{
		Creditor:              models.PaymentParty{Address: p.Creditor.toModel()},
		Account:               p.Account,
		AmountCents:           francsToCents(p.Amount),
		Currency:              models.Currency(p.Currency),
		ReferenceType:         models.ReferenceType(p.ReferenceType),
		Reference:             p.Reference,
		UnstructuredMessage:   p.Message,
		BillInformation:       p.BillInformation,
		AlternativeProcedures: p.AlternativeProcedures,
	}
	if p.Debtor != nil {
		rec.Debtor = &models.PaymentParty{Address: p.Debtor.toModel()}
	}
	return rec
}

func (in *InvoiceInput) toModel() (*models.InvoiceDocument, error) {
	issue, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid issue_date %q: %w", in.IssueDate, err)
	}
	due, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date %q: %w", in.DueDate, err)
	}

	doc := &models.InvoiceDocument{
		Number:    in.Number,
		IssueDate: issue,
		DueDate:   due,
		Company: models.CompanyInfo{
			Address: in.Company.AddressInput.toModel(),
			VATNo:   in.Company.VATNo,
			Phone:   in.Company.Phone,
			Email:   in.Company.Email,
			Website: in.Company.Website,
		},
		Client:   in.Client.toModel(),
		Currency: models.Currency(in.Currency),
		Discount: in.Discount.toModel(),
		Notes:    in.Notes,
		Terms:    in.Terms,
	}
	for _, item := range in.Items {
		doc.Items = append(doc.Items, models.LineItem{
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPriceCents:   francsToCents(item.UnitPrice),
			VATRate:          item.VATRate,
			GrossIncludesVAT: item.GrossIncludesVAT,
			Discount:         item.Discount.toModel(),
		})
	}
	return doc, nil
}

// loadPaymentFile parses a payment record YAML file.
func loadPaymentFile(path string) (*models.PaymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var in PaymentInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return in.toModel(), nil
}

// loadInvoiceFile parses an invoice YAML file including its embedded
// payment section.
func loadInvoiceFile(path string) (*models.InvoiceDocument, *models.PaymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var in InvoiceInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc, err := in.toModel()
	if err != nil {
		return nil, nil, err
	}
	return doc, in.Payment.toModel(), nil
}

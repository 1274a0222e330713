package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrbill/internal/compose"
	"qrbill/internal/i18n"
	"qrbill/internal/layout"
	"qrbill/pkg/models"
)

// fakeRenderer records calls instead of rasterizing, so the tests can
// verify layout construction and the no-partial-artifact rule without
// a real backend.
type fakeRenderer struct {
	calls   int
	lastDoc *layout.Document
	err     error
}

func (f *fakeRenderer) Render(ctx context.Context, doc *layout.Document, opts compose.PageOptions) ([]byte, error) {
	f.calls++
	f.lastDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func testRecord() *models.PaymentRecord {
	return &models.PaymentRecord{
		Creditor: models.PaymentParty{Address: models.Address{
			Name: "Robert Schneider AG", Line1: "Rue du Lac 1268",
			PostalCode: "2501", City: "Biel", Country: "CH",
		}},
		Account:       "CH4431999123000889012",
		AmountCents:   123456,
		Currency:      models.CHF,
		ReferenceType: models.ReferenceQRR,
		Reference:     "210000000003139471430009017",
	}
}

func testInvoiceDoc() *models.InvoiceDocument {
	return &models.InvoiceDocument{
		Number:    "2026-0042",
		IssueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Company: models.CompanyInfo{Address: models.Address{
			Name: "Robert Schneider AG", Line1: "Rue du Lac 1268",
			PostalCode: "2501", City: "Biel", Country: "CH",
		}},
		Client: models.Address{
			Name: "Pia Rutschmann", Line1: "Marktgasse 28",
			PostalCode: "9400", City: "Rorschach", Country: "CH",
		},
		Currency: models.CHF,
		Items: []models.LineItem{
			{Description: "Consulting", Quantity: 2, UnitPriceCents: 500_00, VATRate: 8.1},
		},
	}
}

// Scenario from the payment standard: the encoded payload carries the
// literal amount, currency and reference type at their positions.
func TestPayloadScenario(t *testing.T) {
	gen := New(&fakeRenderer{})

	spc, err := gen.Payload(testRecord())
	require.NoError(t, err)

	lines := strings.Split(spc, "\n")
	assert.Equal(t, "1234.56", lines[18])
	assert.Equal(t, "CHF", lines[19])
	assert.Equal(t, "QRR", lines[27])
	assert.Equal(t, "210000000003139471430009017", lines[28])
}

func TestGenerateInvoice(t *testing.T) {
	fake := &fakeRenderer{}
	gen := New(fake)

	out, err := gen.GenerateInvoice(context.Background(), testInvoiceDoc(), testRecord(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, 1, fake.calls, "backend invoked exactly once")
	require.NotNil(t, fake.lastDoc)
	assert.NotEmpty(t, fake.lastDoc.Pages)
}

// Validation failures abort before the backend runs: no partial
// artifact is ever emitted.
func TestValidationAbortsBeforeRender(t *testing.T) {
	fake := &fakeRenderer{}
	gen := New(fake)

	rec := testRecord()
	rec.Account = "CH9300762011623852957" // valid IBAN, but not a QR-IBAN
	rec.ReferenceType = models.ReferenceNON
	rec.Reference = "must-not-be-here"

	_, err := gen.GenerateInvoice(context.Background(), testInvoiceDoc(), rec, DefaultOptions())
	require.Error(t, err)
	assert.Zero(t, fake.calls, "backend must not be invoked on validation failure")

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageValidate, genErr.Stage)

	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.NotEmpty(t, verrs)
}

func TestInvoiceLevelValidation(t *testing.T) {
	fake := &fakeRenderer{}
	gen := New(fake)

	inv := testInvoiceDoc()
	inv.Number = ""
	inv.Items = nil

	_, err := gen.GenerateInvoice(context.Background(), inv, testRecord(), DefaultOptions())
	require.Error(t, err)
	assert.Zero(t, fake.calls)

	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	got := make([]string, len(verrs))
	for i, v := range verrs {
		got[i] = v.Field
	}
	assert.Contains(t, got, "invoiceNumber")
	assert.Contains(t, got, "items")
}

// Backend failures surface as a render-stage GenerationError wrapping
// ErrRenderBackend; there is no internal retry.
func TestRenderFailure(t *testing.T) {
	fake := &fakeRenderer{err: errors.New("headless browser crashed")}
	gen := New(fake)

	_, err := gen.GenerateInvoice(context.Background(), testInvoiceDoc(), testRecord(), DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, 1, fake.calls, "no retry after a backend failure")

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageRender, genErr.Stage)
	assert.ErrorIs(t, err, ErrRenderBackend)
}

func TestCanceledContextSkipsBackend(t *testing.T) {
	fake := &fakeRenderer{}
	gen := New(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateInvoice(ctx, testInvoiceDoc(), testRecord(), DefaultOptions())
	require.Error(t, err)
	assert.Zero(t, fake.calls)
	assert.ErrorIs(t, err, ErrRenderBackend)
}

func TestGenerateSlipStandalone(t *testing.T) {
	fake := &fakeRenderer{}
	gen := New(fake)

	_, err := gen.GenerateSlip(context.Background(), testRecord(), DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, fake.lastDoc)
	require.Len(t, fake.lastDoc.Pages, 1)

	// The single page carries the slip and nothing above it (the
	// scissors hint sits just above the perforation line).
	for _, n := range fake.lastDoc.Pages[0].Nodes {
		assert.GreaterOrEqual(t, n.Y, fake.lastDoc.PageHeight-layout.SlipHeight-2)
	}
}

func TestSlipLanguage(t *testing.T) {
	gen := New(&fakeRenderer{})

	opts := DefaultOptions()
	opts.Language = i18n.German
	nodes, err := gen.Slip(testRecord(), opts)
	require.NoError(t, err)

	var found bool
	for _, n := range nodes {
		if n.Kind == layout.KindText && n.Text == "Empfangsschein" {
			found = true
		}
	}
	assert.True(t, found, "German labels on the slip")
}

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrbill/internal/i18n"
	"qrbill/internal/reference"
	"qrbill/pkg/models"
)

func slipRecord() *models.PaymentRecord {
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
		Debtor: &models.PaymentParty{Address: models.Address{
			Name: "Pia Rutschmann", Line1: "Marktgasse 28",
			PostalCode: "9400", City: "Rorschach", Country: "CH",
		}},
	}
}

func buildTestSlip(t *testing.T, rec *models.PaymentRecord, specimen bool) []Node {
	t.Helper()
	return BuildSlip(SlipInput{
		Record:   rec,
		Payload:  "SPC\n0200\n1",
		Labels:   i18n.Lookup(i18n.English),
		Specimen: specimen,
	}, reference.NewService())
}

func textNodes(nodes []Node, text string) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Kind == KindText && n.Text == text {
			out = append(out, n)
		}
	}
	return out
}

// Creditor, reference, amount and debtor are printed on both the
// receipt stub and the payment part; the standard requires it.
func TestBuildSlipDuplicatesFields(t *testing.T) {
	nodes := buildTestSlip(t, slipRecord(), false)

	for _, text := range []string{
		"Robert Schneider AG",
		"CH44 3199 9123 0008 8901 2",
		"21 00000 00003 13947 14300 09017",
		"Pia Rutschmann",
		"1 234.56",
		"CHF",
	} {
		occurrences := textNodes(nodes, text)
		require.Len(t, occurrences, 2, "%q must appear on receipt and payment part", text)

		// One on each side of the receipt/payment split
		assert.Less(t, occurrences[0].X, ReceiptWidth)
		assert.GreaterOrEqual(t, occurrences[1].X, ReceiptWidth)
	}
}

func TestBuildSlipQRSymbol(t *testing.T) {
	nodes := buildTestSlip(t, slipRecord(), false)

	var qr []Node
	for _, n := range nodes {
		if n.Kind == KindQRCode {
			qr = append(qr, n)
		}
	}
	require.Len(t, qr, 1)
	assert.Equal(t, "SPC\n0200\n1", qr[0].Text)
	assert.Equal(t, QRSize, qr[0].W)
	assert.Equal(t, QRSize, qr[0].H)
	assert.Equal(t, ReceiptWidth+5, qr[0].X)
	assert.Equal(t, 17.0, qr[0].Y)
}

func TestBuildSlipPerforation(t *testing.T) {
	nodes := buildTestSlip(t, slipRecord(), false)

	var horizontal, vertical bool
	for _, n := range nodes {
		if n.Kind != KindLine || !n.Dashed {
			continue
		}
		if n.Y == 0 && n.W == SlipWidth {
			horizontal = true
		}
		if n.X == ReceiptWidth && n.H == SlipHeight {
			vertical = true
		}
	}
	assert.True(t, horizontal, "dashed perforation above the slip")
	assert.True(t, vertical, "dashed separation between receipt and payment part")
}

// A missing debtor renders blank corner-marked boxes, not an error.
func TestBuildSlipMissingDebtor(t *testing.T) {
	rec := slipRecord()
	rec.Debtor = nil
	nodes := buildTestSlip(t, rec, false)

	var boxes []Node
	for _, n := range nodes {
		if n.Kind == KindRect && n.Corners {
			boxes = append(boxes, n)
		}
	}
	require.Len(t, boxes, 2, "one blank box per slip part")

	// The label still announces the field
	assert.Len(t, textNodes(nodes, "Payable by"), 2)
}

// NON payments carry no reference block at all.
func TestBuildSlipNoReferenceForNON(t *testing.T) {
	rec := slipRecord()
	rec.Account = "CH9300762011623852957"
	rec.ReferenceType = models.ReferenceNON
	rec.Reference = ""
	nodes := buildTestSlip(t, rec, false)

	assert.Empty(t, textNodes(nodes, "Reference"))
}

func TestBuildSlipSpecimenNote(t *testing.T) {
	plain := buildTestSlip(t, slipRecord(), false)
	specimen := buildTestSlip(t, slipRecord(), true)

	note := "DO NOT USE FOR PAYMENT"
	assert.Empty(t, textNodes(plain, note))
	assert.Len(t, textNodes(specimen, note), 1)
}

// An open amount leaves the value position empty on both parts.
func TestBuildSlipOpenAmount(t *testing.T) {
	rec := slipRecord()
	rec.AmountCents = 0
	nodes := buildTestSlip(t, rec, false)

	assert.Empty(t, textNodes(nodes, "0.00"))
	assert.Len(t, textNodes(nodes, "CHF"), 2)
}

func TestOffset(t *testing.T) {
	nodes := []Node{{Kind: KindText, X: 5, Y: 10}, {Kind: KindLine, X: 0, Y: 0}}
	moved := Offset(nodes, 0, 192)

	assert.Equal(t, 10.0+192, moved[0].Y)
	assert.Equal(t, 192.0, moved[1].Y)
	// The original slice is untouched
	assert.Equal(t, 10.0, nodes[0].Y)
}

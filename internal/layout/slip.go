package layout

import (
	"qrbill/internal/i18n"
	"qrbill/internal/reference"
	"qrbill/pkg/models"
)

// Slip font sizes in points, per the payment standard's typography
// rules (receipt column uses the smaller set).
const (
	titleSize          = 11.0
	receiptHeadingSize = 6.0
	receiptValueSize   = 8.0
	paymentHeadingSize = 8.0
	paymentValueSize   = 10.0
)

// Line advances in millimeters.
const (
	receiptLeading = 3.5
	paymentLeading = 4.5
)

// SlipInput is everything the slip builder needs. The builder is a
// pure function of this input; it never validates, the record is
// assumed to have passed the encoder already.
type SlipInput struct {
	Record   *models.PaymentRecord
	Payload  string // Encoded SPC payload placed into the QR symbol
	Labels   i18n.LabelSet
	Specimen bool // Print the localized "do not use for payment" note
}

// BuildSlip produces the node tree of the 210x105mm payment slip in
// slip-local coordinates (origin at the slip's top-left corner). The
// caller anchors it to a page with Offset.
//
// Creditor, reference, amount and debtor appear on both the receipt
// stub and the payment part; the standard requires the duplication.
func BuildSlip(in SlipInput, refs *reference.Service) []Node {
	var nodes []Node

	nodes = append(nodes, perforation()...)
	nodes = append(nodes, receiptPart(in, refs)...)
	nodes = append(nodes, paymentPart(in, refs)...)

	return nodes
}

// perforation draws the dashed separation above the slip and between
// receipt and payment part, with a scissors hint on the top edge.
func perforation() []Node {
	return []Node{
		{Kind: KindLine, X: 0, Y: 0, W: SlipWidth, H: 0, Dashed: true},
		{Kind: KindLine, X: ReceiptWidth, Y: 0, W: 0, H: SlipHeight, Dashed: true},
		{Kind: KindText, X: 5, Y: -1.5, W: 10, Text: "✂", Size: 9},
	}
}

func receiptPart(in SlipInput, refs *reference.Service) []Node {
	l := in.Labels
	nodes := []Node{
		{Kind: KindText, X: slipMargin, Y: slipMargin + 3, W: receiptTextW, Text: l.Receipt, Size: titleSize, Bold: true},
	}

	y := 12.0
	y = headedBlock(&nodes, slipMargin, y, receiptTextW, receiptHeadingSize, receiptValueSize, receiptLeading,
		l.Account+" / "+l.PayableTo, creditorLines(in.Record, refs))

	if in.Record.ReferenceType != models.ReferenceNON {
		y = headedBlock(&nodes, slipMargin, y, receiptTextW, receiptHeadingSize, receiptValueSize, receiptLeading,
			l.Reference, []string{refs.FormatQRReference(in.Record.Reference)})
	}

	if in.Record.Debtor != nil {
		headedBlock(&nodes, slipMargin, y, receiptTextW, receiptHeadingSize, receiptValueSize, receiptLeading,
			l.PayableBy, partyLines(&in.Record.Debtor.Address))
	} else {
		nodes = append(nodes,
			Node{Kind: KindText, X: slipMargin, Y: y, W: receiptTextW, Text: l.PayableBy, Size: receiptHeadingSize, Bold: true},
			Node{Kind: KindRect, X: slipMargin, Y: y + 2, W: receiptTextW, H: 20, Corners: true},
		)
	}

	// Amount row
	nodes = append(nodes,
		Node{Kind: KindText, X: slipMargin, Y: 68, W: 15, Text: l.Currency, Size: receiptHeadingSize, Bold: true},
		Node{Kind: KindText, X: slipMargin + 15, Y: 68, W: 30, Text: l.Amount, Size: receiptHeadingSize, Bold: true},
		Node{Kind: KindText, X: slipMargin, Y: 68 + receiptLeading, W: 15, Text: string(in.Record.Currency), Size: receiptValueSize},
	)
	if in.Record.AmountCents != 0 {
		nodes = append(nodes, Node{
			Kind: KindText, X: slipMargin + 15, Y: 68 + receiptLeading, W: 30,
			Text: models.FormatCentsGrouped(in.Record.AmountCents), Size: receiptValueSize,
		})
	}

	nodes = append(nodes, Node{
		Kind: KindText, X: slipMargin, Y: 82, W: receiptTextW,
		Text: l.AcceptancePoint, Size: receiptHeadingSize, Bold: true, Align: "R",
	})

	return nodes
}

func paymentPart(in SlipInput, refs *reference.Service) []Node {
	l := in.Labels
	x := ReceiptWidth + slipMargin

	nodes := []Node{
		{Kind: KindText, X: x, Y: slipMargin + 3, W: QRSize, Text: l.PaymentPart, Size: titleSize, Bold: true},
		{Kind: KindQRCode, X: x, Y: 17, W: QRSize, H: QRSize, Text: in.Payload},
	}

	// Currency and amount under the QR symbol
	nodes = append(nodes,
		Node{Kind: KindText, X: x, Y: 68, W: 15, Text: l.Currency, Size: paymentHeadingSize, Bold: true},
		Node{Kind: KindText, X: x + 20, Y: 68, W: 35, Text: l.Amount, Size: paymentHeadingSize, Bold: true},
		Node{Kind: KindText, X: x, Y: 68 + paymentLeading, W: 15, Text: string(in.Record.Currency), Size: paymentValueSize},
	)
	if in.Record.AmountCents != 0 {
		nodes = append(nodes, Node{
			Kind: KindText, X: x + 20, Y: 68 + paymentLeading, W: 35,
			Text: models.FormatCentsGrouped(in.Record.AmountCents), Size: paymentValueSize,
		})
	}

	// Information column
	y := slipMargin + 3.0
	y = headedBlock(&nodes, infoColumnX, y, infoColumnW, paymentHeadingSize, paymentValueSize, paymentLeading,
		l.Account+" / "+l.PayableTo, creditorLines(in.Record, refs))

	if in.Record.ReferenceType != models.ReferenceNON {
		y = headedBlock(&nodes, infoColumnX, y, infoColumnW, paymentHeadingSize, paymentValueSize, paymentLeading,
			l.Reference, []string{refs.FormatQRReference(in.Record.Reference)})
	}

	if info := additionalInfoLines(in.Record); len(info) > 0 {
		y = headedBlock(&nodes, infoColumnX, y, infoColumnW, paymentHeadingSize, paymentValueSize, paymentLeading,
			l.AdditionalInfo, info)
	}

	if in.Record.Debtor != nil {
		headedBlock(&nodes, infoColumnX, y, infoColumnW, paymentHeadingSize, paymentValueSize, paymentLeading,
			l.PayableBy, partyLines(&in.Record.Debtor.Address))
	} else {
		nodes = append(nodes,
			Node{Kind: KindText, X: infoColumnX, Y: y, W: infoColumnW, Text: l.PayableBy, Size: paymentHeadingSize, Bold: true},
			Node{Kind: KindRect, X: infoColumnX, Y: y + 2, W: 65, H: 25, Corners: true},
		)
	}

	if in.Specimen {
		nodes = append(nodes, Node{
			Kind: KindText, X: x, Y: SlipHeight - 5, W: PaymentPartWidth - 2*slipMargin,
			Text: l.DoNotUseForPayment, Size: paymentHeadingSize, Bold: true, Align: "C",
		})
	}

	return nodes
}

// headedBlock appends a bold heading followed by value lines and
// returns the y position after the block plus its trailing gap.
func headedBlock(nodes *[]Node, x, y, w, headingSize, valueSize, leading float64, heading string, values []string) float64 {
	*nodes = append(*nodes, Node{Kind: KindText, X: x, Y: y, W: w, Text: heading, Size: headingSize, Bold: true})
	y += leading
	for _, v := range values {
		if v == "" {
			continue
		}
		*nodes = append(*nodes, Node{Kind: KindText, X: x, Y: y, W: w, Text: v, Size: valueSize})
		y += leading
	}
	return y + leading/2
}

// creditorLines renders account and creditor address as display lines.
func creditorLines(rec *models.PaymentRecord, refs *reference.Service) []string {
	lines := []string{refs.FormatIBAN(rec.Account)}
	return append(lines, partyLines(&rec.Creditor.Address)...)
}

// partyLines renders an address as the slip's display lines.
func partyLines(a *models.Address) []string {
	lines := []string{a.Name, a.Line1}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	return append(lines, a.PostalCode+" "+a.City)
}

// additionalInfoLines collects the optional message and bill
// information; both may be absent, degrading to no block at all.
func additionalInfoLines(rec *models.PaymentRecord) []string {
	var lines []string
	if rec.UnstructuredMessage != "" {
		lines = append(lines, rec.UnstructuredMessage)
	}
	if rec.BillInformation != "" {
		lines = append(lines, rec.BillInformation)
	}
	return lines
}

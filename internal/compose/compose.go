package compose

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"qrbill/internal/i18n"
	"qrbill/internal/layout"
	"qrbill/internal/logger"
	"qrbill/pkg/models"
)

// PageOptions describes the physical page the composer fills.
// All dimensions are millimeters.
type PageOptions struct {
	Width  float64
	Height float64
	Margin float64

	// FooterAllowance is the vertical space reserved at the bottom of
	// every page before a break is forced.
	FooterAllowance float64
}

// DefaultPageOptions returns A4 with the deployed system's margins.
func DefaultPageOptions() PageOptions {
	return PageOptions{Width: 210, Height: 297, Margin: 15, FooterAllowance: 15}
}

// Vertical metrics of the invoice body, in millimeters.
const (
	headerHeight    = 58.0
	tableHeadHeight = 8.0
	rowHeight       = 6.0
	totalsLineStep  = 6.0
	slipGap         = 4.0
)

// Table column widths relative to the content width.
const (
	colQtyW    = 18.0
	colUnitW   = 26.0
	colVATW    = 16.0
	colAmountW = 28.0
)

// Composer paginates an invoice into a layout document and anchors the
// payment slip to the bottom of the final page.
type Composer struct {
	log zerolog.Logger
}

// NewComposer creates a new invoice composer.
func NewComposer() *Composer {
	return &Composer{
		log: logger.WithComponent("compose"),
	}
}

// Compose builds the paginated document: header on the first page only,
// line-item rows breaking onto continuation pages when the content
// height minus the footer allowance is exhausted, a totals block, then
// the slip exactly once, anchored to the bottom of whichever page holds
// the document's end. The slip node list is in slip-local coordinates.
func (c *Composer) Compose(doc *models.InvoiceDocument, totals models.Totals, slip []layout.Node, labels i18n.InvoiceLabelSet, opts PageOptions) *layout.Document {
	out := &layout.Document{PageWidth: opts.Width, PageHeight: opts.Height}

	page := &layout.Page{}
	out.Pages = append(out.Pages, page)

	x := opts.Margin
	contentW := opts.Width - 2*opts.Margin
	limit := opts.Height - opts.FooterAllowance

	y := c.header(page, doc, labels, x, contentW, opts.Margin)

	newPage := func() {
		page = &layout.Page{}
		out.Pages = append(out.Pages, page)
		y = opts.Margin
	}

	y = c.tableHead(page, labels, x, y, contentW)

	for i := range doc.Items {
		if y+rowHeight > limit {
			newPage()
			y = c.tableHead(page, labels, x, y, contentW)
		}
		y = c.itemRow(page, &doc.Items[i], doc.Currency, labels, x, y, contentW)
	}

	totalsHeight := c.totalsHeight(doc, totals)
	if y+totalsHeight > limit {
		newPage()
	}
	y = c.totalsBlock(page, doc, totals, labels, x, y, contentW)
	y = c.noteBlocks(page, doc, labels, x, y, contentW)

	// The slip occupies a fixed 105mm region and is never split across
	// pages: when it no longer fits it moves to a fresh final page.
	if y+slipGap > opts.Height-layout.SlipHeight {
		newPage()
	}
	page.Nodes = append(page.Nodes, layout.Offset(slip, 0, opts.Height-layout.SlipHeight)...)

	c.log.Debug().
		Int("pages", len(out.Pages)).
		Int("items", len(doc.Items)).
		Msg("Composed invoice document")

	return out
}

// ComposeSlipOnly builds a document whose single page carries nothing
// but the slip, for printing on pre-printed stationery.
func (c *Composer) ComposeSlipOnly(slip []layout.Node, opts PageOptions) *layout.Document {
	page := &layout.Page{
		Nodes: layout.Offset(slip, 0, opts.Height-layout.SlipHeight),
	}
	return &layout.Document{
		PageWidth:  opts.Width,
		PageHeight: opts.Height,
		Pages:      []*layout.Page{page},
	}
}

// header renders the first-page header: company block left, invoice
// metadata right, client block below. Continuation pages omit it.
func (c *Composer) header(page *layout.Page, doc *models.InvoiceDocument, labels i18n.InvoiceLabelSet, x, contentW, top float64) float64 {
	add := func(n layout.Node) { page.Nodes = append(page.Nodes, n) }

	y := top
	add(layout.Node{Kind: layout.KindText, X: x, Y: y, W: contentW / 2, Text: doc.Company.Address.Name, Size: 13, Bold: true})
	y += 6
	for _, line := range companyLines(&doc.Company) {
		add(layout.Node{Kind: layout.KindText, X: x, Y: y, W: contentW / 2, Text: line, Size: 9})
		y += 4
	}

	// Invoice metadata, right-aligned column
	metaX := x + contentW/2
	metaY := top
	add(layout.Node{Kind: layout.KindText, X: metaX, Y: metaY, W: contentW / 2, Text: labels.Invoice, Size: 18, Bold: true, Align: "R"})
	metaY += 9
	meta := []string{
		labels.InvoiceNumber + ": " + doc.Number,
		labels.IssueDate + ": " + doc.IssueDate.Format("02.01.2006"),
		labels.DueDate + ": " + doc.DueDate.Format("02.01.2006"),
	}
	for _, line := range meta {
		add(layout.Node{Kind: layout.KindText, X: metaX, Y: metaY, W: contentW / 2, Text: line, Size: 9, Align: "R"})
		metaY += 4.5
	}

	// Client block
	y = top + 30
	add(layout.Node{Kind: layout.KindText, X: x, Y: y, W: contentW / 2, Text: labels.BillTo, Size: 9, Bold: true})
	y += 4.5
	for _, line := range clientLines(&doc.Client) {
		add(layout.Node{Kind: layout.KindText, X: x, Y: y, W: contentW / 2, Text: line, Size: 9})
		y += 4
	}

	return top + headerHeight
}

// tableHead renders the column headings with a rule underneath.
func (c *Composer) tableHead(page *layout.Page, labels i18n.InvoiceLabelSet, x, y, contentW float64) float64 {
	descW := contentW - colQtyW - colUnitW - colVATW - colAmountW
	cols := []struct {
		w     float64
		text  string
		align string
	}{
		{descW, labels.Description, "L"},
		{colQtyW, labels.Quantity, "R"},
		{colUnitW, labels.UnitPrice, "R"},
		{colVATW, labels.VAT, "R"},
		{colAmountW, labels.Amount, "R"},
	}
	cx := x
	for _, col := range cols {
		page.Nodes = append(page.Nodes, layout.Node{
			Kind: layout.KindText, X: cx, Y: y, W: col.w, Text: col.text, Size: 9, Bold: true, Align: col.align,
		})
		cx += col.w
	}
	page.Nodes = append(page.Nodes, layout.Node{
		Kind: layout.KindLine, X: x, Y: y + 4.5, W: contentW,
	})
	return y + tableHeadHeight
}

// itemRow renders one line item. A per-line discount appends a note to
// the description rather than adding a second row.
func (c *Composer) itemRow(page *layout.Page, item *models.LineItem, currency models.Currency, labels i18n.InvoiceLabelSet, x, y, contentW float64) float64 {
	descW := contentW - colQtyW - colUnitW - colVATW - colAmountW

	amount := lineAmountCents(item)
	net := amount - lineDiscountCents(item, amount)

	desc := item.Description
	if item.Discount != nil {
		note := item.Discount.Note
		if note == "" {
			note = labels.Discount
		}
		desc = fmt.Sprintf("%s (%s)", desc, note)
	}

	cells := []struct {
		w     float64
		text  string
		align string
	}{
		{descW, desc, "L"},
		{colQtyW, formatQuantity(item.Quantity), "R"},
		{colUnitW, models.FormatCentsGrouped(item.UnitPriceCents), "R"},
		{colVATW, formatRate(item.VATRate) + "%", "R"},
		{colAmountW, models.FormatCentsGrouped(net), "R"},
	}
	cx := x
	for _, cell := range cells {
		page.Nodes = append(page.Nodes, layout.Node{
			Kind: layout.KindText, X: cx, Y: y, W: cell.w, Text: cell.text, Size: 9, Align: cell.align,
		})
		cx += cell.w
	}
	return y + rowHeight
}

// totalsHeight precomputes the totals block height so the composer can
// decide whether it still fits on the current page.
func (c *Composer) totalsHeight(doc *models.InvoiceDocument, totals models.Totals) float64 {
	lines := 2 // subtotal + grand total
	if totals.LineDiscountCents > 0 {
		lines++
	}
	if doc.Discount != nil {
		lines += 2 // discount + subtotal after discount
	}
	lines += len(totals.VATLines)
	return float64(lines)*totalsLineStep + 8
}

// totalsBlock renders the right-aligned aggregate lines.
func (c *Composer) totalsBlock(page *layout.Page, doc *models.InvoiceDocument, totals models.Totals, labels i18n.InvoiceLabelSet, x, y, contentW float64) float64 {
	y += 4
	labelX := x + contentW - colAmountW - 60
	valueX := x + contentW - colAmountW

	line := func(label, value string, bold bool) {
		page.Nodes = append(page.Nodes,
			layout.Node{Kind: layout.KindText, X: labelX, Y: y, W: 60, Text: label, Size: 9, Bold: bold},
			layout.Node{Kind: layout.KindText, X: valueX, Y: y, W: colAmountW, Text: value, Size: 9, Bold: bold, Align: "R"},
		)
		y += totalsLineStep
	}

	cur := " " + string(doc.Currency)
	line(labels.Subtotal, models.FormatCentsGrouped(totals.SubtotalCents)+cur, false)

	if totals.LineDiscountCents > 0 {
		line(labels.Discount, "-"+models.FormatCentsGrouped(totals.LineDiscountCents)+cur, false)
	}
	if doc.Discount != nil {
		label := labels.Discount
		if doc.Discount.Note != "" {
			label = doc.Discount.Note
		}
		if doc.Discount.Type == models.DiscountPercent {
			label = fmt.Sprintf("%s (%s%%)", label, formatRate(doc.Discount.Percent))
		}
		line(label, "-"+models.FormatCentsGrouped(totals.GlobalDiscountCents)+cur, false)
		line(labels.Subtotal, models.FormatCentsGrouped(totals.SubtotalAfterDiscountCents)+cur, false)
	}

	for _, vl := range totals.VATLines {
		label := fmt.Sprintf("%s %s%% (%s)", labels.VAT, formatRate(vl.Rate), models.FormatCentsGrouped(vl.NetCents))
		line(label, models.FormatCentsGrouped(vl.VATCents)+cur, false)
	}

	page.Nodes = append(page.Nodes, layout.Node{
		Kind: layout.KindLine, X: labelX, Y: y - 1.5, W: 60 + colAmountW,
	})
	line(labels.Total, models.FormatCentsGrouped(totals.GrandTotalCents)+cur, true)

	return y + 2
}

// noteBlocks renders the optional notes and terms under the totals.
func (c *Composer) noteBlocks(page *layout.Page, doc *models.InvoiceDocument, labels i18n.InvoiceLabelSet, x, y, contentW float64) float64 {
	blocks := []struct{ heading, text string }{
		{labels.Notes, doc.Notes},
		{labels.Terms, doc.Terms},
	}
	for _, b := range blocks {
		if b.text == "" {
			continue
		}
		page.Nodes = append(page.Nodes,
			layout.Node{Kind: layout.KindText, X: x, Y: y, W: contentW, Text: b.heading, Size: 9, Bold: true},
			layout.Node{Kind: layout.KindText, X: x, Y: y + 4.5, W: contentW, Text: b.text, Size: 9},
		)
		y += 12
	}
	return y
}

func companyLines(company *models.CompanyInfo) []string {
	a := &company.Address
	lines := []string{a.Line1}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	lines = append(lines, a.PostalCode+" "+a.City)
	if company.VATNo != "" {
		lines = append(lines, company.VATNo)
	}
	for _, contact := range []string{company.Phone, company.Email, company.Website} {
		if contact != "" {
			lines = append(lines, contact)
		}
	}
	return lines
}

func clientLines(a *models.Address) []string {
	lines := []string{a.Name, a.Line1}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	return append(lines, a.PostalCode+" "+a.City)
}

// formatQuantity trims insignificant zeros: 2 -> "2", 1.5 -> "1.5".
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// formatRate renders a VAT or discount percentage without trailing
// zeros: 8.1 -> "8.1", 0 -> "0".
func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

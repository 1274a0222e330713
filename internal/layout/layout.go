// Package layout builds the visual description of a QR-bill payment
// slip and the invoice pages that carry it.
//
// Nothing here draws: the package produces a tree of positioned nodes
// (text, lines, rectangles, the QR symbol) with millimeter coordinates,
// and an injected rendering backend turns that tree into bytes. This
// keeps the slip geometry, which the payment standard fixes to the
// millimeter, independent of any specific PDF or raster technology.
package layout

// NodeKind discriminates the drawable node variants.
type NodeKind string

const (
	KindText   NodeKind = "text"
	KindLine   NodeKind = "line"
	KindRect   NodeKind = "rect"
	KindQRCode NodeKind = "qrcode"
)

// Node is one positioned drawable element. Coordinates and sizes are
// millimeters from the top-left corner of the page.
type Node struct {
	Kind NodeKind

	X, Y float64
	W, H float64

	// Text payload: the string for KindText, the SPC payload for
	// KindQRCode.
	Text string

	// Size is the font size in points for KindText.
	Size float64
	Bold bool

	// Align is "L", "C" or "R" for KindText; empty means left.
	Align string

	// Dashed draws KindLine as a dashed stroke (perforation).
	Dashed bool

	// Corners draws KindRect as blank-field corner marks instead of a
	// full outline.
	Corners bool
}

// Page is one physical page of the output document.
type Page struct {
	Nodes []Node
}

// Document is the full layout tree handed to the rendering backend.
type Document struct {
	PageWidth  float64
	PageHeight float64
	Pages      []*Page
}

// Slip geometry fixed by the payment standard, in millimeters.
const (
	SlipWidth  = 210.0
	SlipHeight = 105.0

	ReceiptWidth     = 62.0
	PaymentPartWidth = 148.0

	QRSize = 46.0

	slipMargin   = 5.0
	infoColumnX  = ReceiptWidth + slipMargin + QRSize + 5.0 // 118mm
	infoColumnW  = SlipWidth - infoColumnX - slipMargin
	receiptTextW = ReceiptWidth - 2*slipMargin
)

// Offset shifts every node by (dx, dy). Used to anchor the slip, whose
// builder works in slip-local coordinates, to the bottom of a page.
func Offset(nodes []Node, dx, dy float64) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.X += dx
		n.Y += dy
		out[i] = n
	}
	return out
}

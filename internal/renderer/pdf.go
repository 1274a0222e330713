// Package renderer implements the rendering backend interface on top
// of gofpdf. It is the only package that knows about PDF at all: the
// engine hands it a layout tree and receives bytes.
package renderer

import (
	"bytes"
	"context"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"qrbill/internal/compose"
	"qrbill/internal/layout"
	"qrbill/internal/logger"
)

const baseFont = "Helvetica"

// Line height multiplier from font size in points to cell height in mm.
const ptToMM = 0.3528

// PDF renders layout documents as PDF files.
type PDF struct {
	log zerolog.Logger
}

// NewPDF creates a new PDF rendering backend.
func NewPDF() *PDF {
	return &PDF{
		log: logger.WithComponent("renderer"),
	}
}

// Render walks the layout tree and produces the PDF bytes. The context
// is checked between pages; a canceled context aborts with its error
// and no partial output.
func (r *PDF) Render(ctx context.Context, doc *layout.Document, opts compose.PageOptions) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: doc.PageWidth, Ht: doc.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()
		for _, node := range page.Nodes {
			r.drawNode(pdf, tr, node)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	r.log.Debug().
		Int("pages", len(doc.Pages)).
		Int("bytes", buf.Len()).
		Msg("Rendered PDF document")

	return buf.Bytes(), nil
}

func (r *PDF) drawNode(pdf *gofpdf.Fpdf, tr func(string) string, n layout.Node) {
	switch n.Kind {
	case layout.KindText:
		r.drawText(pdf, tr, n)
	case layout.KindLine:
		if n.Dashed {
			pdf.SetDashPattern([]float64{1, 1}, 0)
		}
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.Line(n.X, n.Y, n.X+n.W, n.Y+n.H)
		if n.Dashed {
			pdf.SetDashPattern([]float64{}, 0)
		}
	case layout.KindRect:
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.25)
		if n.Corners {
			r.drawCornerMarks(pdf, n)
		} else {
			pdf.Rect(n.X, n.Y, n.W, n.H, "D")
		}
	case layout.KindQRCode:
		r.drawQRZone(pdf, n)
	}
}

func (r *PDF) drawText(pdf *gofpdf.Fpdf, tr func(string) string, n layout.Node) {
	// The scissors hint is not in the Latin-1 core fonts; ZapfDingbats
	// carries it at position 0x22.
	if n.Text == "✂" {
		pdf.SetFont("ZapfDingbats", "", n.Size)
		pdf.SetXY(n.X, n.Y)
		pdf.CellFormat(n.W, n.Size*ptToMM*1.2, "\"", "", 0, "L", false, 0, "")
		return
	}

	style := ""
	if n.Bold {
		style = "B"
	}
	align := n.Align
	if align == "" {
		align = "L"
	}
	pdf.SetFont(baseFont, style, n.Size)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(n.X, n.Y)
	pdf.CellFormat(n.W, n.Size*ptToMM*1.2, tr(n.Text), "", 0, align, false, 0, "")
}

// drawCornerMarks draws the blank-field marks of the payment standard:
// short strokes at the four corners instead of a closed rectangle.
func (r *PDF) drawCornerMarks(pdf *gofpdf.Fpdf, n layout.Node) {
	const leg = 3.0
	x2, y2 := n.X+n.W, n.Y+n.H

	pdf.Line(n.X, n.Y, n.X+leg, n.Y)
	pdf.Line(n.X, n.Y, n.X, n.Y+leg)

	pdf.Line(x2-leg, n.Y, x2, n.Y)
	pdf.Line(x2, n.Y, x2, n.Y+leg)

	pdf.Line(n.X, y2, n.X+leg, y2)
	pdf.Line(n.X, y2-leg, n.X, y2)

	pdf.Line(x2-leg, y2, x2, y2)
	pdf.Line(x2, y2-leg, x2, y2)
}

// drawQRZone reserves the 46x46mm symbol area and marks its center with
// the Swiss cross the standard prescribes. Encoding the SPC payload
// into the actual QR matrix happens in the symbol engraving step of the
// print pipeline, outside this backend.
func (r *PDF) drawQRZone(pdf *gofpdf.Fpdf, n layout.Node) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(n.X, n.Y, n.W, n.H, "D")

	// Swiss cross: 7x7mm black square with a white cross, centered.
	const crossSize = 7.0
	cx := n.X + n.W/2 - crossSize/2
	cy := n.Y + n.H/2 - crossSize/2
	pdf.SetFillColor(0, 0, 0)
	pdf.Rect(cx, cy, crossSize, crossSize, "F")
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(cx+crossSize*0.4, cy+crossSize*0.17, crossSize*0.2, crossSize*0.66, "F")
	pdf.Rect(cx+crossSize*0.17, cy+crossSize*0.4, crossSize*0.66, crossSize*0.2, "F")
}

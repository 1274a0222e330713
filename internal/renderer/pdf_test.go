package renderer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrbill/internal/compose"
	"qrbill/internal/layout"
)

func testDoc(pages int) *layout.Document {
	doc := &layout.Document{PageWidth: 210, PageHeight: 297}
	for i := 0; i < pages; i++ {
		doc.Pages = append(doc.Pages, &layout.Page{Nodes: []layout.Node{
			{Kind: layout.KindText, X: 15, Y: 20, W: 100, Text: "Rechnung Nr. 2026-0042", Size: 12, Bold: true},
			{Kind: layout.KindText, X: 15, Y: 30, W: 100, Text: "Zürich, Währung CHF", Size: 9},
			{Kind: layout.KindLine, X: 0, Y: 192, W: 210, Dashed: true},
			{Kind: layout.KindRect, X: 120, Y: 220, W: 65, H: 25, Corners: true},
			{Kind: layout.KindQRCode, X: 67, Y: 209, W: 46, H: 46, Text: "SPC\n0200\n1"},
			{Kind: layout.KindText, X: 5, Y: 190.5, W: 10, Text: "✂", Size: 9},
		}})
	}
	return doc
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewPDF()

	out, err := r.Render(context.Background(), testDoc(2), compose.DefaultPageOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF file")
	assert.Greater(t, len(out), 500)
}

func TestRenderHonorsCancellation(t *testing.T) {
	r := NewPDF()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := r.Render(ctx, testDoc(1), compose.DefaultPageOptions())
	assert.Error(t, err)
	assert.Nil(t, out, "no partial output after cancellation")
}

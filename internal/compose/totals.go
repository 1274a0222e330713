// Package compose computes the monetary aggregates of an invoice and
// paginates its line items into a layout document carrying the payment
// slip on the final page.
package compose

import (
	"math"
	"sort"

	"qrbill/pkg/models"
)

// roundHalfEven rounds a fractional cent value to whole cents with the
// round-half-to-even policy. Financial splits must pick an explicit
// rounding mode; this one is used everywhere a division or percentage
// produces fractional cents.
func roundHalfEven(x float64) int64 {
	return int64(math.RoundToEven(x))
}

// lineAmountCents is quantity × unit price, rounded to cents.
func lineAmountCents(item *models.LineItem) int64 {
	return roundHalfEven(item.Quantity * float64(item.UnitPriceCents))
}

// lineDiscountCents applies the item's own discount: PERCENT is clipped
// to [0,100], FLAT is clipped to the line's own amount.
func lineDiscountCents(item *models.LineItem, amount int64) int64 {
	d := item.Discount
	if d == nil {
		return 0
	}
	switch d.Type {
	case models.DiscountPercent:
		pct := math.Min(math.Max(d.Percent, 0), 100)
		return roundHalfEven(float64(amount) * pct / 100)
	case models.DiscountFlat:
		if d.AmountCents < 0 {
			return 0
		}
		if d.AmountCents > amount {
			return amount
		}
		return d.AmountCents
	}
	return 0
}

// ComputeTotals derives every aggregate of the invoice:
//
//  1. subtotal over all lines before any discount
//  2. per-line discounts, reducing each line to a net amount
//  3. the per-rate VAT breakdown over those net amounts; lines whose
//     price is VAT-inclusive are split into net and VAT with
//     round-half-to-even
//  4. the optional global discount (PERCENT of the subtotal, FLAT
//     clipped so it never exceeds the subtotal), applied after the
//     line discounts
//  5. grand total = subtotal after discount plus every VAT amount not
//     already contained in the line prices
func ComputeTotals(doc *models.InvoiceDocument) models.Totals {
	var t models.Totals

	type rateAgg struct {
		net, vat, gross int64
		// addVAT is the VAT still to be added on top of the net
		// amounts; VAT already contained in inclusive prices never
		// contributes here, so the grand total counts it only once.
		addVAT int64
	}
	byRate := make(map[float64]*rateAgg)

	for i := range doc.Items {
		item := &doc.Items[i]
		amount := lineAmountCents(item)
		disc := lineDiscountCents(item, amount)
		net := amount - disc

		t.SubtotalCents += amount
		t.LineDiscountCents += disc

		agg := byRate[item.VATRate]
		if agg == nil {
			agg = &rateAgg{}
			byRate[item.VATRate] = agg
		}

		if item.GrossIncludesVAT {
			lineNet := roundHalfEven(float64(net) / (1 + item.VATRate/100))
			agg.net += lineNet
			agg.vat += net - lineNet
			agg.gross += net
		} else {
			vat := roundHalfEven(float64(net) * item.VATRate / 100)
			agg.net += net
			agg.vat += vat
			agg.gross += net + vat
			agg.addVAT += vat
		}
	}

	afterLine := t.SubtotalCents - t.LineDiscountCents

	if d := doc.Discount; d != nil {
		switch d.Type {
		case models.DiscountPercent:
			pct := math.Min(math.Max(d.Percent, 0), 100)
			t.GlobalDiscountCents = roundHalfEven(float64(t.SubtotalCents) * pct / 100)
		case models.DiscountFlat:
			t.GlobalDiscountCents = d.AmountCents
		}
		if t.GlobalDiscountCents > t.SubtotalCents {
			t.GlobalDiscountCents = t.SubtotalCents
		}
		if t.GlobalDiscountCents > afterLine {
			t.GlobalDiscountCents = afterLine
		}
		if t.GlobalDiscountCents < 0 {
			t.GlobalDiscountCents = 0
		}
	}

	t.SubtotalAfterDiscountCents = afterLine - t.GlobalDiscountCents

	rates := make([]float64, 0, len(byRate))
	for rate := range byRate {
		rates = append(rates, rate)
	}
	sort.Float64s(rates)

	var vatToAdd int64
	for _, rate := range rates {
		agg := byRate[rate]
		t.VATLines = append(t.VATLines, models.VATLine{
			Rate:       rate,
			NetCents:   agg.net,
			VATCents:   agg.vat,
			GrossCents: agg.gross,
		})
		vatToAdd += agg.addVAT
	}

	t.GrandTotalCents = t.SubtotalAfterDiscountCents + vatToAdd

	return t
}

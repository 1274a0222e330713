// Package generator orchestrates the QR-bill pipeline: record
// validation, SPC payload encoding, slip layout, invoice composition,
// and finally rasterization through an injected rendering backend.
//
// The pipeline is synchronous and side-effect free; concurrent
// generations are fully independent. Any validation failure aborts
// before the backend is invoked, so a partial artifact is never
// emitted. The only blocking step is the backend itself, bounded by
// the caller's context.
package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"qrbill/internal/address"
	"qrbill/internal/compose"
	"qrbill/internal/i18n"
	"qrbill/internal/layout"
	"qrbill/internal/logger"
	"qrbill/internal/payload"
	"qrbill/internal/reference"
	"qrbill/pkg/models"
)

// Renderer is the external rendering backend. Implementations turn a
// layout tree into document bytes (PDF in the deployed system) and are
// expected to honor context cancellation; the generator does not retry.
type Renderer interface {
	Render(ctx context.Context, doc *layout.Document, opts compose.PageOptions) ([]byte, error)
}

// Options selects language and physical layout for one generation.
type Options struct {
	Language i18n.Language
	Page     compose.PageOptions

	// SlipOnly emits a page carrying only the payment slip, for
	// pre-printed stationery.
	SlipOnly bool

	// Specimen prints the localized "do not use for payment" note on
	// the slip.
	Specimen bool
}

// DefaultOptions returns the deployed defaults: French labels, A4.
func DefaultOptions() Options {
	return Options{
		Language: i18n.DefaultLanguage,
		Page:     compose.DefaultPageOptions(),
	}
}

// Generator wires the pipeline stages together.
type Generator struct {
	refs     *reference.Service
	encoder  *payload.Encoder
	composer *compose.Composer
	renderer Renderer
	log      zerolog.Logger
}

// New creates a generator delegating rasterization to the given
// backend.
func New(renderer Renderer) *Generator {
	refs := reference.NewService()
	return &Generator{
		refs:     refs,
		encoder:  payload.NewEncoder(address.NewValidator(), refs),
		composer: compose.NewComposer(),
		renderer: renderer,
		log:      logger.WithComponent("generator"),
	}
}

// Payload validates the record and returns the SPC text payload, the
// exact content of the QR symbol. On validation failure the returned
// error is a models.ValidationErrors listing every violation.
func (g *Generator) Payload(rec *models.PaymentRecord) (string, error) {
	spc, err := g.encoder.Encode(rec)
	if err != nil {
		return "", stageErr(StageValidate, err)
	}
	return spc, nil
}

// Slip validates the record and builds the slip's layout node tree in
// slip-local coordinates.
func (g *Generator) Slip(rec *models.PaymentRecord, opts Options) ([]layout.Node, error) {
	spc, err := g.encoder.Encode(rec)
	if err != nil {
		return nil, stageErr(StageValidate, err)
	}
	labels := i18n.Lookup(opts.Language)
	nodes := layout.BuildSlip(layout.SlipInput{
		Record:   rec,
		Payload:  spc,
		Labels:   labels,
		Specimen: opts.Specimen,
	}, g.refs)
	return nodes, nil
}

// GenerateSlip renders a standalone slip page through the backend.
func (g *Generator) GenerateSlip(ctx context.Context, rec *models.PaymentRecord, opts Options) ([]byte, error) {
	slip, err := g.Slip(rec, opts)
	if err != nil {
		return nil, err
	}
	doc := g.composer.ComposeSlipOnly(slip, opts.Page)
	return g.render(ctx, doc, opts.Page)
}

// GenerateInvoice runs the full pipeline for an invoice document and
// its payment record, returning the rendered document bytes.
func (g *Generator) GenerateInvoice(ctx context.Context, inv *models.InvoiceDocument, rec *models.PaymentRecord, opts Options) ([]byte, error) {
	if errs := g.validateInvoice(inv); len(errs) > 0 {
		return nil, stageErr(StageValidate, errs)
	}

	slip, err := g.Slip(rec, opts)
	if err != nil {
		return nil, err
	}

	if opts.SlipOnly {
		doc := g.composer.ComposeSlipOnly(slip, opts.Page)
		return g.render(ctx, doc, opts.Page)
	}

	totals := compose.ComputeTotals(inv)
	labels := i18n.LookupInvoice(opts.Language)
	doc := g.composer.Compose(inv, totals, slip, labels, opts.Page)

	g.log.Debug().
		Str("invoice", inv.Number).
		Int("pages", len(doc.Pages)).
		Int64("grand_total_cents", totals.GrandTotalCents).
		Msg("Invoice composed, handing to renderer")

	return g.render(ctx, doc, opts.Page)
}

// validateInvoice collects the invoice-level violations the payment
// record validation does not cover. Missing notes, terms or debtor
// degrade silently; structural violations do not.
func (g *Generator) validateInvoice(inv *models.InvoiceDocument) models.ValidationErrors {
	var errs models.ValidationErrors

	if inv.Number == "" {
		errs.Append("invoiceNumber", "must not be empty")
	}
	if !inv.Currency.Valid() {
		errs.Append("currency", "must be CHF or EUR")
	}
	if len(inv.Items) == 0 {
		errs.Append("items", "at least one line item is required")
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		field := fmt.Sprintf("items[%d]", i)
		if item.Description == "" {
			errs.Append(field+".description", "must not be empty")
		}
		if item.Quantity <= 0 {
			errs.Append(field+".quantity", "must be greater than zero")
		}
		if item.UnitPriceCents < 0 {
			errs.Append(field+".unitPrice", "must not be negative")
		}
		if item.VATRate < 0 {
			errs.Append(field+".vatRate", "must not be negative")
		}
	}

	return errs
}

// render invokes the backend exactly once, wrapping any failure.
func (g *Generator) render(ctx context.Context, doc *layout.Document, page compose.PageOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, stageErr(StageRender, fmt.Errorf("%w: %v", ErrRenderBackend, err))
	}
	out, err := g.renderer.Render(ctx, doc, page)
	if err != nil {
		g.log.Error().Err(err).Msg("Rendering backend failed")
		return nil, stageErr(StageRender, fmt.Errorf("%w: %v", ErrRenderBackend, err))
	}
	return out, nil
}

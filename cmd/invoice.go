package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"qrbill/internal/compose"
	"qrbill/internal/generator"
	"qrbill/internal/i18n"
	"qrbill/internal/logger"
	"qrbill/internal/renderer"
	"qrbill/pkg/models"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice [invoice-file.yaml]",
	Short: "Generate a PDF invoice with an embedded QR-bill payment slip",
	Long: `Generate a complete invoice document from a YAML description: paginated
line items with VAT breakdown and totals, and the standard-compliant
payment slip anchored to the bottom of the final page.

The payment record embedded in the file is validated before anything is
rendered: IBAN checksum, QR reference check digit, address field limits
and the reference-type rules. A validation failure prints every
violation and produces no output file.`,
	Example: `  # Generate invoice.pdf next to the input file
  qrbill invoice invoice.yaml -o invoice.pdf

  # German labels on slip and invoice body
  qrbill invoice invoice.yaml -o invoice.pdf --lang de

  # Only the payment slip page, for pre-printed stationery
  qrbill invoice invoice.yaml -o slip.pdf --slip-only

  # Specimen output that scanners must reject
  qrbill invoice invoice.yaml -o specimen.pdf --specimen`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoice,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)

	invoiceCmd.Flags().StringP("output", "o", "invoice.pdf", "Output PDF path")
	invoiceCmd.Flags().String("lang", "", "Slip language: de, fr, it, en (default from QRBILL_LANGUAGE)")
	invoiceCmd.Flags().Bool("slip-only", false, "Emit a single page carrying only the payment slip")
	invoiceCmd.Flags().Bool("specimen", false, "Print the 'do not use for payment' note on the slip")
	invoiceCmd.Flags().Int("timeout", 45, "Rendering timeout in seconds")
}

func runInvoice(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoice-cmd")

	output, _ := cmd.Flags().GetString("output")
	lang, _ := cmd.Flags().GetString("lang")
	slipOnly, _ := cmd.Flags().GetBool("slip-only")
	specimen, _ := cmd.Flags().GetBool("specimen")
	timeout, _ := cmd.Flags().GetInt("timeout")

	doc, rec, err := loadInvoiceFile(args[0])
	if err != nil {
		return err
	}

	opts := generator.Options{
		Language: resolveLanguage(lang),
		Page:     compose.DefaultPageOptions(),
		SlipOnly: slipOnly,
		Specimen: specimen,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	gen := generator.New(renderer.NewPDF())
	start := time.Now()
	pdfBytes, err := gen.GenerateInvoice(ctx, doc, rec, opts)
	if err != nil {
		reportGenerationError(cmd, err)
		return err
	}

	if err := os.WriteFile(output, pdfBytes, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	log.Info().
		Str("output", output).
		Int("bytes", len(pdfBytes)).
		Dur("duration", time.Since(start)).
		Msg("Invoice generated")

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", output, len(pdfBytes))
	return nil
}

// resolveLanguage maps the flag (or the QRBILL_LANGUAGE environment
// default) to a slip language; unknown values fall back to French
// inside the localizer.
func resolveLanguage(flag string) i18n.Language {
	if flag != "" {
		return i18n.Language(flag)
	}
	if env := os.Getenv("QRBILL_LANGUAGE"); env != "" {
		return i18n.Language(env)
	}
	return i18n.DefaultLanguage
}

// reportGenerationError prints validation violations one per line so
// the caller sees the complete list, not just the first failure.
func reportGenerationError(cmd *cobra.Command, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed with %d violation(s):\n", len(verrs))
		for _, v := range verrs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s: %s\n", v.Field, v.Message)
		}
	}
}

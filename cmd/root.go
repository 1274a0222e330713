package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qrbill/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "qrbill",
	Short: "qrbill - Swiss QR-bill payload and invoice document generation",
	Long: `qrbill generates Swiss payment slips (QR-bills) and complete invoice
documents compliant with the Swiss payment standard.

It validates IBANs and QR references against the published checksum
algorithms, serializes the Swiss Payments Code payload consumed by
banking QR scanners, and lays out the millimeter-precise receipt and
payment part on A4 invoice documents.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("qrbill - Swiss QR-bill generation")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

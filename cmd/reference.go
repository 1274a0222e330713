package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"qrbill/internal/reference"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Validate and generate Swiss payment reference numbers",
	Long: `Tools for the two checksum algorithms of the Swiss payment standard:
ISO 7064 MOD97-10 for IBANs and the table-driven mod-10-recursive check
digit protecting 27-digit QR references.`,
}

var ibanCmd = &cobra.Command{
	Use:   "iban [iban]",
	Short: "Check an IBAN's checksum and QR-IBAN status",
	Example: `  qrbill reference iban CH9300762011623852957
  qrbill reference iban "CH44 3199 9123 0008 8901 2"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := reference.NewService()
		iban := args[0]
		if !svc.IsValidIBAN(iban) {
			return fmt.Errorf("%s: invalid IBAN (shape or MOD97-10 checksum)", iban)
		}
		kind := "IBAN"
		if svc.IsQRIBAN(iban) {
			kind = "QR-IBAN"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s\n", svc.FormatIBAN(iban), kind)
		return nil
	},
}

var qrrefCmd = &cobra.Command{
	Use:   "qrref [customer-reference]",
	Short: "Generate or check a 27-digit QR reference",
	Long: `With --check, verifies the check digit of an existing 27-digit QR
reference. Otherwise derives a QR reference from an arbitrary customer
reference: the digits are extracted, left-padded to 26 positions and
the mod-10-recursive check digit is appended.`,
	Example: `  # Derive a QR reference from an order number
  qrbill reference qrref "order-2024-177"

  # Verify an existing reference
  qrbill reference qrref --check 210000000003139471430009017`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := reference.NewService()
		check, _ := cmd.Flags().GetBool("check")

		if check {
			if !svc.IsValidQRReference(args[0]) {
				return fmt.Errorf("%s: invalid QR reference", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", svc.FormatQRReference(args[0]))
			return nil
		}

		ref, err := svc.GenerateQRReference(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), svc.FormatQRReference(ref))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(referenceCmd)
	referenceCmd.AddCommand(ibanCmd)
	referenceCmd.AddCommand(qrrefCmd)

	qrrefCmd.Flags().Bool("check", false, "Verify an existing 27-digit reference instead of generating")
}

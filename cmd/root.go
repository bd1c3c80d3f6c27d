// =============================================================================
// Invoice Report Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('generate', 'version') are
// attached to, and owns the global flags.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tami)
//   ├── generateCmd (tami generate)
//   └── versionCmd (tami version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tami",
	Short: "Aggregate invoice line items into one PDF report per brand",

	Long: `tami turns a flat table of invoice line items (CSV or XLSX) into one
aggregated financial report per customer brand, rendered as a PDF.

Line items are grouped by brand and by the order id embedded in their
descriptions, classified into discount / normal / shipping lines, totalled
with VAT-aware rounding, and substituted into a report template. A tracking
index records which document covers which invoices.

Example Usage:
  tami generate                      # Process the configured input table
  tami generate --input sales.csv    # Override the input file
  tami generate --dry-run            # Full pipeline, no files written`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

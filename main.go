// =============================================================================
// Invoice Report Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the invoice report generator CLI. All
// command handling is delegated to the Cobra command tree in the cmd package.
//
// =============================================================================

package main

import (
	"github.com/lv70/tami-csv-to-pdf/cmd"
)

func main() {
	cmd.Execute()
}

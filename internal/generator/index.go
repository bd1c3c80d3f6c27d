// =============================================================================
// Invoice Report Generator - Tracking Index
// =============================================================================
//
// After a run, a companion workbook records which file was produced for each
// brand and which invoice numbers it covers. The index is rebuilt from
// scratch on every run; it tracks the run that produced it, not history.
//
// =============================================================================

package generator

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// index sheet layout
const (
	indexSheet = "Invoices"
	headerRow  = 1
)

// WriteIndex writes the brand -> invoices -> file index workbook.
func WriteIndex(path, runID string, documents []Document) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), indexSheet)

	headers := []string{"Brand", "Invoice Numbers", "Output File", "Run ID"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(indexSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write index header: %w", err)
		}
	}

	for i, doc := range documents {
		row := headerRow + 1 + i
		values := []interface{}{
			doc.Brand,
			strings.Join(doc.InvoiceNumbers, ", "),
			doc.File,
			runID,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(indexSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write index row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save index %s: %w", path, err)
	}
	return nil
}

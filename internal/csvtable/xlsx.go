// =============================================================================
// Invoice Report Generator - XLSX Input Module
// =============================================================================
//
// Some upstream systems hand over the invoice table as a spreadsheet rather
// than a CSV export. This module reads the first sheet of an XLSX workbook
// and feeds it through the same normalization path as the CSV parser.
//
// =============================================================================

package csvtable

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an XLSX workbook and returns the
// normalized table. The first row is treated as the header row.
func ParseXLSX(filePath string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParseFailure)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	return FromRecords(rows, filePath)
}

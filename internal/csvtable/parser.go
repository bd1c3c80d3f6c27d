// =============================================================================
// Invoice Report Generator - Table Parser Module
// =============================================================================
//
// This module parses the raw input table into a sequence of key-value rows.
// Input is a header row followed by data rows; every cell is coerced to a
// trimmed string and keyed by its trimmed header name.
//
// FEATURES:
//   - CSV and XLSX input (extension-dispatched)
//   - Header-variant tolerance: every required column may appear either under
//     its plain name or prefixed with '*', matched case-insensitively
//   - Fallback line-splitting when the strict CSV parse fails on malformed
//     quoting
//
// KNOWN LIMITATION: the fallback splitter does not re-validate quoting and
// will misparse fields containing embedded delimiters. This mirrors the
// upstream exports, which never quote correctly in the first place.
//
// =============================================================================

package csvtable

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrSchemaMismatch is returned when none of the required column headers
	// are present in the input. The pipeline aborts before any grouping.
	ErrSchemaMismatch = errors.New("input table does not match the expected invoice schema")

	// ErrParseFailure is returned when the input cannot be parsed even with
	// the fallback line splitter.
	ErrParseFailure = errors.New("input table could not be parsed")
)

// requiredColumns lists the column concepts the pipeline needs. A header
// matches a concept case-insensitively, with or without a leading '*'.
var requiredColumns = []string{
	"ContactName",
	"InvoiceNumber",
	"Description",
	"Quantity",
	"UnitAmount",
	"TaxAmount",
}

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Row is a single data row, keyed by the trimmed header names.
type Row map[string]string

// Table is the normalized input table.
type Table struct {
	// Headers contains the trimmed column headers in original order.
	Headers []string

	// Rows contains the data rows as header -> value maps.
	Rows []Row

	// SourceFile is the path the table was read from.
	SourceFile string

	// columnIndex maps a canonical column name (lowercased, '*' stripped) to
	// the literal header present in this file.
	columnIndex map[string]string
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// Field returns the value of the named column for a row, resolving header
// variants ("Quantity", "*Quantity", "quantity" all hit the same column).
// Returns "" when the column is absent.
func (t *Table) Field(row Row, name string) string {
	header, ok := t.columnIndex[canonical(name)]
	if !ok {
		return ""
	}
	return row[header]
}

// HasColumn reports whether the named column (or a variant of it) exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columnIndex[canonical(name)]
	return ok
}

// FirstColumn returns a row's value in the leftmost column. Used as the
// fallback source for the brand name.
func (t *Table) FirstColumn(row Row) string {
	if len(t.Headers) == 0 {
		return ""
	}
	return row[t.Headers[0]]
}

// canonical normalizes a header for variant-tolerant matching.
func canonical(header string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(header), "*"))
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the input table from a file. The extension decides the format:
// .xlsx files go through excelize, everything else is treated as CSV.
func Parse(filePath, delimiter string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		return ParseXLSX(filePath)
	}
	return ParseCSV(filePath, delimiter)
}

// ParseCSV reads a CSV file and returns the normalized table.
//
// The strict csv.Reader parse is attempted first. If it fails (typically on
// malformed quoting) each line is split on the delimiter instead; that
// fallback keeps the pipeline running on sloppy exports at the cost of
// misparsing embedded delimiters.
func ParseCSV(filePath, delimiter string) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = delimiterRune(delimiter)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		allRows, err = fallbackSplit(filePath, delimiter)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
		}
	}

	return FromRecords(allRows, filePath)
}

// delimiterRune resolves the configured delimiter string to a rune, handling
// the common spellings for tab and pipe.
func delimiterRune(delimiter string) rune {
	switch delimiter {
	case "\\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(delimiter) > 0 {
			return rune(delimiter[0])
		}
		return ','
	}
}

// fallbackSplit re-reads the file line by line and splits each line on the
// raw delimiter, with no quote handling at all.
func fallbackSplit(filePath, delimiter string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sep := string(delimiterRune(delimiter))

	var rows [][]string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, sep))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// FromRecords builds a Table from raw records (header row first),
// validating that the required invoice columns are present. Both file
// parsers and the tests funnel through here.
func FromRecords(allRows [][]string, sourceFile string) (*Table, error) {
	if len(allRows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrParseFailure)
	}

	headers := cleanHeaders(allRows[0])

	columnIndex := make(map[string]string, len(headers))
	for _, header := range headers {
		key := canonical(header)
		if _, exists := columnIndex[key]; !exists {
			columnIndex[key] = header
		}
	}

	// The schema check only requires that at least one expected column shows
	// up: partial exports still produce a (degraded) report, a completely
	// foreign table aborts before any grouping.
	found := 0
	for _, required := range requiredColumns {
		if _, ok := columnIndex[canonical(required)]; ok {
			found++
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("%w: expected columns like %s", ErrSchemaMismatch,
			strings.Join(requiredColumns, ", "))
	}

	rows := make([]Row, 0, len(allRows)-1)
	for _, raw := range allRows[1:] {
		if isRowEmpty(raw) {
			continue
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				row[header] = strings.TrimSpace(raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{
		Headers:     headers,
		Rows:        rows,
		SourceFile:  sourceFile,
		columnIndex: columnIndex,
	}, nil
}

// cleanHeaders trims header values and names blank headers by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// Invoice Report Generator - PDF Writer Module
// =============================================================================
//
// Converts an assembled document body into a PDF file on disk. This is the
// thin conversion shell at the end of the pipeline: it lays the body out
// line by line and knows nothing about brands, orders or totals.
//
// The body arrives as the lightweight HTML produced by the renderer. gofpdf
// has no HTML table support, so the markup is flattened to text lines first:
// row and block closers become line breaks, cell closers become column gaps,
// everything else is stripped.
//
// =============================================================================

package pdfwriter

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// page layout constants (A4, millimetres)
const (
	marginLeft = 15.0
	marginTop  = 15.0
	lineHeight = 6.0
	pageWidth  = 180.0
)

var (
	lineBreakTags = regexp.MustCompile(`(?i)</(tr|p|h[1-6]|table|div)>|<br\s*/?>`)
	cellCloseTags = regexp.MustCompile(`(?i)</(td|th)>`)
	anyTag        = regexp.MustCompile(`<[^>]*>`)
)

// WriteDocument lays the rendered body out on A4 pages and writes the PDF
// to outputPath.
func WriteDocument(body, title, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(true, marginTop)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	translator := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range bodyLines(body) {
		if line == "" {
			pdf.Ln(lineHeight / 2)
			continue
		}
		pdf.MultiCell(pageWidth, lineHeight, translator(line), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", outputPath, err)
	}
	return nil
}

// bodyLines flattens the lightweight HTML body to printable text lines.
func bodyLines(body string) []string {
	flat := lineBreakTags.ReplaceAllString(body, "\n")
	flat = cellCloseTags.ReplaceAllString(flat, "    ")
	flat = anyTag.ReplaceAllString(flat, "")
	flat = html.UnescapeString(flat)

	var lines []string
	blanks := 0
	for _, raw := range strings.Split(flat, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.Join(strings.FieldsFunc(line, func(r rune) bool { return r == '\t' }), "    ")
		if line == "" {
			// collapse runs of blank lines to a single spacer
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		lines = append(lines, line)
	}

	// trim leading and trailing blanks
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

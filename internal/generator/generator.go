// =============================================================================
// Invoice Report Generator - Generator Module
// =============================================================================
//
// The generator orchestrates one full run of the pipeline:
//
//   1. Parse and normalize the input table
//   2. Group rows by brand, then by order id within each brand
//   3. Classify and sort line items, compute financial aggregates
//   4. Render one document body per brand from the report template
//   5. Convert each body to a PDF and record it in the tracking index
//
// Execution is strictly sequential: brands are processed one at a time in
// order of first appearance in the input. Any error aborts the whole run;
// brands not yet processed are skipped and documents already written stay
// on disk (no rollback, no partial-success policy).
//
// =============================================================================

package generator

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lv70/tami-csv-to-pdf/internal/config"
	"github.com/lv70/tami-csv-to-pdf/internal/csvtable"
	"github.com/lv70/tami-csv-to-pdf/internal/pdfwriter"
	"github.com/lv70/tami-csv-to-pdf/internal/progress"
	"github.com/lv70/tami-csv-to-pdf/internal/report"
	"github.com/lv70/tami-csv-to-pdf/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Document records one produced report file.
type Document struct {
	// Brand is the customer the document was generated for.
	Brand string

	// InvoiceNumbers are the invoice numbers the document covers.
	InvoiceNumbers []string

	// File is the path of the generated PDF.
	File string
}

// Stats contains statistics about a run.
type Stats struct {
	// RowsProcessed is the number of input data rows.
	RowsProcessed int

	// BrandsProcessed is the number of brands aggregated.
	BrandsProcessed int

	// DocumentsWritten is the number of PDF files written (0 on dry runs).
	DocumentsWritten int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Result is the outcome of a successful run.
type Result struct {
	// RunID uniquely identifies this run in logs and the tracking index.
	RunID string

	// Documents lists every produced report in processing order.
	Documents []Document

	// Stats contains run statistics.
	Stats Stats
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator runs the aggregation and document-assembly pipeline once.
type Generator struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	sink   progress.Sink
	dryRun bool
}

// New creates a Generator. A nil sink is replaced with a no-op sink.
func New(cfg *config.Config, log *zap.SugaredLogger, sink progress.Sink, dryRun bool) *Generator {
	if sink == nil {
		sink = progress.Noop{}
	}
	return &Generator{cfg: cfg, log: log, sink: sink, dryRun: dryRun}
}

// Run executes the pipeline once. On error the run is aborted as a whole:
// the abort reason has already been surfaced through the progress sink when
// Run returns.
func (g *Generator) Run() (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	g.sink.Report(fmt.Sprintf("Run %s started, input %s", runID, g.cfg.InputFile))

	// =========================================================================
	// STEP 1: PARSE AND NORMALIZE THE INPUT TABLE
	// =========================================================================

	table, err := csvtable.Parse(g.cfg.InputFile, g.cfg.Delimiter)
	if err != nil {
		return nil, g.abort(err, "parsing input table")
	}
	g.log.Infow("input table parsed", "file", g.cfg.InputFile, "rows", table.RowCount())

	// =========================================================================
	// STEP 2: LOAD THE REPORT TEMPLATE
	// =========================================================================

	template, err := report.LoadTemplate(g.cfg.TemplateFile)
	if err != nil {
		return nil, g.abort(err, "loading template")
	}

	// =========================================================================
	// STEP 3: GROUP AND AGGREGATE
	// =========================================================================

	items := report.CollectItems(table)
	bundles := report.GroupByBrand(items)
	g.sink.Report(fmt.Sprintf("Normalized %d rows into %d brand(s)", len(items), len(bundles)))

	renderer := report.NewRenderer(
		g.cfg.CurrencySymbol,
		g.cfg.DateFormat,
		report.NewCalculator(g.cfg.VATPercent),
	)

	// =========================================================================
	// STEP 4: RENDER AND WRITE ONE DOCUMENT PER BRAND
	// =========================================================================

	if err := utils.EnsureDir(g.cfg.OutputDir); err != nil {
		return nil, g.abort(err, "preparing output directory")
	}

	result := &Result{RunID: runID}
	for _, bundle := range bundles {
		rep := renderer.BuildReport(bundle)
		body := renderer.RenderDocument(template, rep)

		fileName := fmt.Sprintf("Invoice_%s.pdf", utils.SafeFileName(bundle.Brand))
		outputPath := filepath.Join(g.cfg.OutputDir, fileName)

		if !g.dryRun {
			if err := pdfwriter.WriteDocument(body, "Invoice - "+rep.Brand, outputPath); err != nil {
				return nil, g.abort(err, "writing "+fileName)
			}
			result.Stats.DocumentsWritten++
		}

		result.Documents = append(result.Documents, Document{
			Brand:          rep.Brand,
			InvoiceNumbers: rep.InvoiceNumbers,
			File:           outputPath,
		})

		g.sink.Report(fmt.Sprintf("Processed %s: %d item(s), %d order(s), total %s",
			rep.Brand, rep.ItemCount(), len(rep.Groups), renderer.FormatAmount(rep.Totals.Total)))
	}

	// =========================================================================
	// STEP 5: TRACKING INDEX AND ARCHIVAL
	// =========================================================================

	if !g.dryRun {
		if err := WriteIndex(g.cfg.IndexFile, runID, result.Documents); err != nil {
			return nil, g.abort(err, "writing tracking index")
		}

		if g.cfg.ArchiveDir != "" {
			archived, err := utils.ArchiveFile(g.cfg.InputFile, g.cfg.ArchiveDir)
			if err != nil {
				return nil, g.abort(err, "archiving input")
			}
			g.log.Infow("input archived", "path", archived)
		}
	}

	result.Stats.RowsProcessed = len(items)
	result.Stats.BrandsProcessed = len(bundles)
	result.Stats.Elapsed = time.Since(start)

	g.sink.Report(fmt.Sprintf("Run %s complete: %d brand(s), %d document(s) in %s",
		runID, result.Stats.BrandsProcessed, result.Stats.DocumentsWritten, result.Stats.Elapsed.Round(time.Millisecond)))

	return result, nil
}

// abort surfaces the failure reason through the progress sink and the log,
// then hands back a wrapped error for the caller. There is exactly one
// abort path; nothing is retried and nothing is rolled back.
func (g *Generator) abort(err error, stage string) error {
	wrapped := fmt.Errorf("%s: %w", stage, err)
	g.sink.Report("Run aborted: " + wrapped.Error())
	g.log.Errorw("run aborted", "stage", stage, "error", err)
	return wrapped
}

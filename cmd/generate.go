// =============================================================================
// Invoice Report Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full aggregation
// and document-assembly pipeline once.
//
// COMMAND USAGE:
//   tami generate [flags]
//
// FLAGS:
//   --input     : Override the configured input table path
//   --template  : Override the configured report template path
//   --output    : Override the configured output directory
//   --dry-run   : Run the pipeline without writing PDFs or the index
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lv70/tami-csv-to-pdf/internal/config"
	"github.com/lv70/tami-csv-to-pdf/internal/generator"
	"github.com/lv70/tami-csv-to-pdf/internal/progress"
)

// dryRun runs the pipeline without writing any output files.
var dryRun bool

// inputFile overrides the configured input table path.
var inputFile string

// templateFile overrides the configured template path.
var templateFile string

// outputDir overrides the configured output directory.
var outputDir string

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one aggregated PDF report per brand",
	Long: `The generate command reads the input table, aggregates its line items
per brand, and writes one PDF report per brand plus a tracking index.

Brands are processed strictly one at a time, in order of first appearance
in the input. An error in any stage aborts the entire run; documents
already written for earlier brands are kept.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Run the pipeline without writing output files")
	generateCmd.Flags().StringVar(&inputFile, "input", "",
		"Input table (.csv or .xlsx), overrides the configured path")
	generateCmd.Flags().StringVar(&templateFile, "template", "",
		"Report template, overrides the configured path")
	generateCmd.Flags().StringVar(&outputDir, "output", "",
		"Output directory, overrides the configured path")
}

// runGenerate loads configuration, wires the logger and progress sinks, and
// executes one pipeline run.
func runGenerate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	fileSink := progress.NewFileSink(cfg.ProgressFile)
	defer fileSink.Close()
	sink := progress.Multi(progress.NewLogger(log), fileSink)

	gen := generator.New(cfg, log, sink, dryRun)
	result, err := gen.Run()
	if err != nil {
		return err
	}

	fmt.Println("\n=== Run Complete ===")
	fmt.Printf("Rows processed:    %d\n", result.Stats.RowsProcessed)
	fmt.Printf("Brands:            %d\n", result.Stats.BrandsProcessed)
	fmt.Printf("Documents written: %d\n", result.Stats.DocumentsWritten)
	fmt.Printf("Time elapsed:      %s\n", result.Stats.Elapsed)
	for _, doc := range result.Documents {
		fmt.Printf("  %s -> %s\n", doc.Brand, doc.File)
	}

	return nil
}

// loadConfig reads the config file and applies command-line overrides.
// A missing config file is not an error: defaults apply.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(cfgFile); err == nil {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if templateFile != "" {
		cfg.TemplateFile = templateFile
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	return cfg, nil
}

// buildLogger creates the zap logger, honoring the --verbose flag.
func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// =============================================================================
// Invoice Report Generator - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. A single YAML
// file controls where the input table and report template are read from, where
// generated PDFs and the tracking index are written, and the formatting knobs
// used when rendering (currency symbol, date format, VAT rate).
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration, loaded from config.yaml.
type Config struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputFile is the path to the input table. Both .csv and .xlsx files are
	// accepted; the extension decides which parser is used.
	// Default: "./input/invoices.csv"
	InputFile string `yaml:"input_file"`

	// TemplateFile is the path to the report template containing the
	// placeholder tokens substituted during rendering.
	// Default: "./templates/invoice.html"
	TemplateFile string `yaml:"template_file"`

	// Delimiter is the field delimiter for CSV input.
	// Common values: "," (comma), ";" (semicolon), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where generated PDF reports are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// IndexFile is the path of the tracking index workbook that records which
	// file was produced for each brand and which invoices it covers.
	// Default: "./output/invoice_index.xlsx"
	IndexFile string `yaml:"index_file"`

	// ArchiveDir is the directory where the input file is moved after a fully
	// successful run. Leave empty to disable archival.
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// ProgressFile is the path of the append-only progress log. Writes to it
	// are best-effort; a failure never aborts a run.
	// Default: "./logs/progress.log"
	ProgressFile string `yaml:"progress_file"`

	// LogLevel controls the verbosity of structured logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// RENDERING SETTINGS
	// =========================================================================

	// CurrencySymbol prefixes every rendered amount.
	// Default: "£"
	CurrencySymbol string `yaml:"currency_symbol"`

	// DateFormat is the Go reference layout used for {{CURRENT_DATE}}.
	// Default: "02 Jan 2006"
	DateFormat string `yaml:"date_format"`

	// VATPercent is the VAT rate applied to VAT-able line items, expressed as
	// a percentage. Gross amounts are treated as VAT-inclusive.
	// Default: 20
	VATPercent int `yaml:"vat_percent"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults for any
// unset options, and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every option at its default value.
// Used when no config file is present on disk.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "./input/invoices.csv"
	}
	if cfg.TemplateFile == "" {
		cfg.TemplateFile = "./templates/invoice.html"
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = filepath.Join(cfg.OutputDir, "invoice_index.xlsx")
	}
	if cfg.ProgressFile == "" {
		cfg.ProgressFile = "./logs/progress.log"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "£"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "02 Jan 2006"
	}
	if cfg.VATPercent == 0 {
		cfg.VATPercent = 20
	}
}

// validate checks the configuration and creates the output directories if
// they do not exist yet.
func validate(cfg *Config) error {
	if cfg.VATPercent < 0 || cfg.VATPercent >= 100 {
		return fmt.Errorf("vat_percent must be between 0 and 99, got %d", cfg.VATPercent)
	}

	dirs := []string{
		cfg.OutputDir,
		filepath.Dir(cfg.ProgressFile),
	}
	if cfg.ArchiveDir != "" {
		dirs = append(dirs, cfg.ArchiveDir)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory by default.
const FileName = "finsum.yaml"

// EnvPrefix prefixes environment overrides, e.g. FINSUM_REPORT_MIN_REVENUE.
const EnvPrefix = "FINSUM"

// Config represents the top-level finsum.yaml configuration.
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Invoice InvoiceConfig `yaml:"invoice"`
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig holds defaults for the summary command.
type ReportConfig struct {
	MinRevenue float64 `yaml:"min_revenue" split_words:"true"`
	Order      string  `yaml:"order"`                         // first-seen | alphabetical
	OnMissing  string  `yaml:"on_missing" split_words:"true"` // drop | fail
	Format     string  `yaml:"format"`
	OutputDir  string  `yaml:"output_dir" split_words:"true"`
}

// InvoiceConfig holds defaults for the invoice command.
type InvoiceConfig struct {
	Currency       string `yaml:"currency"`
	RoundTotals    bool   `yaml:"round_totals" split_words:"true"`
	StrictTaxRates bool   `yaml:"strict_tax_rates" split_words:"true"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a finsum.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Resolve loads path if it exists (defaults otherwise) and applies FINSUM_*
// environment overrides on top.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			MinRevenue: 0,
			Order:      "first-seen",
			OnMissing:  "drop",
			Format:     "table",
			OutputDir:  "reports",
		},
		Invoice: InvoiceConfig{
			Currency: "EUR",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

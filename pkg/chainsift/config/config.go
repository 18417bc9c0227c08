package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/chainsift/pkg/chainsift/internalerr"
)

// Defaults for every tunable. The YAML file may override any of them;
// absent fields keep these values.
const (
	DefaultHeaderWindow      = 5000
	DefaultIdentityWindow    = 2000
	DefaultMinSentenceLength = 50
	DefaultMaxFileBytes      = 20 << 20
	DefaultIDColumn          = "CIK"
	DefaultNameColumn        = "COMPANY_NAME"
)

// Config holds every knob of an extraction run. All fields are concrete;
// there are no optional lookups at runtime.
type Config struct {
	// DataRoot is the filing archive root: {root}/{cik}/{filing_id}/{files}.
	DataRoot string `yaml:"data_root"`
	// ReferenceCSV maps CIK to company name, used as a name fallback.
	ReferenceCSV string `yaml:"reference_csv"`
	// OutputCSV receives the extracted records, appended per company.
	OutputCSV string `yaml:"output_csv"`
	// CatalogDB is an optional SQLite catalog path; empty disables it.
	CatalogDB string `yaml:"catalog_db"`

	// HeaderWindow bounds the leading span searched for effective dates.
	HeaderWindow int `yaml:"header_window"`
	// IdentityWindow bounds the leading span searched for CIK and name.
	IdentityWindow int `yaml:"identity_window"`
	// MinSentenceLength rejects shorter sentences before any other test.
	MinSentenceLength int `yaml:"min_sentence_length"`
	// MaxFileBytes rejects larger attachments outright.
	MaxFileBytes int64 `yaml:"max_file_bytes"`

	// IDColumn and NameColumn address the reference CSV by header.
	IDColumn   string `yaml:"id_column"`
	NameColumn string `yaml:"name_column"`

	// ExtraEntityTerms and ExtraOperationalTerms extend the built-in
	// relevance vocabularies. Terms are regex alternatives, word-bounded.
	ExtraEntityTerms      []string `yaml:"extra_entity_terms"`
	ExtraOperationalTerms []string `yaml:"extra_operational_terms"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with every field at its documented default.
func Default() Config {
	return Config{
		OutputCSV:         "supply_chain_sentences.csv",
		HeaderWindow:      DefaultHeaderWindow,
		IdentityWindow:    DefaultIdentityWindow,
		MinSentenceLength: DefaultMinSentenceLength,
		MaxFileBytes:      DefaultMaxFileBytes,
		IDColumn:          DefaultIDColumn,
		NameColumn:        DefaultNameColumn,
		LogLevel:          "info",
	}
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges. DataRoot is checked by the caller because
// it may arrive from a flag instead of the file.
func (c Config) Validate() error {
	if c.HeaderWindow <= 0 {
		return fmt.Errorf("%w: header_window must be positive", internalerr.ErrInvalidConfig)
	}
	if c.IdentityWindow <= 0 {
		return fmt.Errorf("%w: identity_window must be positive", internalerr.ErrInvalidConfig)
	}
	if c.MinSentenceLength <= 0 {
		return fmt.Errorf("%w: min_sentence_length must be positive", internalerr.ErrInvalidConfig)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("%w: max_file_bytes must be positive", internalerr.ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", internalerr.ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

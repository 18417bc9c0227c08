package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/chainsift/pkg/chainsift/internalerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chainsift.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal("Defaults must validate:", err)
	}
	if cfg.HeaderWindow != 5000 || cfg.IdentityWindow != 2000 {
		t.Errorf("Unexpected window defaults: %d, %d", cfg.HeaderWindow, cfg.IdentityWindow)
	}
	if cfg.MinSentenceLength != 50 {
		t.Errorf("Unexpected sentence length default: %d", cfg.MinSentenceLength)
	}
	if cfg.MaxFileBytes != 20<<20 {
		t.Errorf("Unexpected file cap default: %d", cfg.MaxFileBytes)
	}
	if cfg.IDColumn != "CIK" || cfg.NameColumn != "COMPANY_NAME" {
		t.Errorf("Unexpected column defaults: %q, %q", cfg.IDColumn, cfg.NameColumn)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_root: /srv/filings
min_sentence_length: 80
extra_entity_terms:
  - wholesalers?
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataRoot != "/srv/filings" {
		t.Errorf("data_root not applied: %q", cfg.DataRoot)
	}
	if cfg.MinSentenceLength != 80 {
		t.Errorf("min_sentence_length not applied: %d", cfg.MinSentenceLength)
	}
	if len(cfg.ExtraEntityTerms) != 1 || cfg.ExtraEntityTerms[0] != "wholesalers?" {
		t.Errorf("extra_entity_terms not applied: %v", cfg.ExtraEntityTerms)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level not applied: %q", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.HeaderWindow != DefaultHeaderWindow {
		t.Errorf("header_window should keep its default: %d", cfg.HeaderWindow)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "data_root: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestValidateRejectsBadRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero header window", func(c *Config) { c.HeaderWindow = 0 }},
		{"negative identity window", func(c *Config) { c.IdentityWindow = -1 }},
		{"zero sentence length", func(c *Config) { c.MinSentenceLength = 0 }},
		{"zero file cap", func(c *Config) { c.MaxFileBytes = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "min_sentence_length: -5\n")
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// Package config loads the xplan tool configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "xplan.yaml"

// Config holds all xplan configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Report  ReportConfig  `yaml:"report"`
}

// CatalogConfig locates the plan-step catalog database.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ReportConfig carries the report defaults the flags can override.
type ReportConfig struct {
	// Format is the default format-options string (basic/typical/all).
	Format string `yaml:"format"`

	// Qualify enables the owner-qualified, width-normalized name column.
	Qualify bool `yaml:"qualify"`

	// StrictUnmatched makes report rows without a catalog step fatal
	// instead of leaving them unannotated.
	StrictUnmatched bool `yaml:"strict_unmatched"`

	// DefaultStatement is used by `xplan display` when no statement id
	// argument is given.
	DefaultStatement string `yaml:"default_statement"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: "plan.db",
		},
		Report: ReportConfig{
			Format: "typical",
		},
	}
}

// Load reads configuration from a YAML file, returning defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks fields no flag can repair.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path not configured")
	}
	return nil
}

package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config is the top-level configuration for a report run.
type Config struct {
	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// OutputDir is the directory the report file is written to.
	OutputDir string `yaml:"output_dir"`

	// Format selects the report serialization (csv or xlsx).
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		OutputDir: ".",
		Format:    FormatXLSX,
	}
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for required fields and consistency.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	switch c.Format {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf(
			"format must be %q or %q, got %q",
			FormatCSV, FormatXLSX, c.Format,
		)
	}

	return nil
}

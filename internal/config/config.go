// =============================================================================
// XML to CSV Converter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has
// a default, so the converter runs without any configuration file at all.
//
// CONFIGURATION FILE (xml2csv.yaml):
//   record_tag:       ASBO    # local name of the record elements
//   output_extension: .csv    # extension of the derived output path
//   log_level:        warn    # debug | info | warn | error
//   log_format:       text    # text | json
//   xlsx_export:      false   # also write a workbook next to the CSV
//   xlsx_sheet_name:  ASBO    # worksheet name for the workbook export
//
// There are deliberately no CSV dialect settings: the output is always
// comma-separated with every field quoted.
//
// =============================================================================

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/errors"
)

// DefaultConfigFile is the configuration file looked up when --config is not
// given. Its absence is not an error.
const DefaultConfigFile = "xml2csv.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// RecordTag is the local name of the elements that become CSV rows.
	// Default: "ASBO"
	RecordTag string `yaml:"record_tag"`

	// OutputExtension replaces the input file's extension to form the
	// output path. Must start with a dot.
	// Default: ".csv"
	OutputExtension string `yaml:"output_extension"`

	// Logging controls the structured log written to stderr.
	Logging LoggingConfig `yaml:",inline"`

	// XLSXExport also writes the table to a workbook with the same base name.
	// Default: false
	XLSXExport bool `yaml:"xlsx_export"`

	// XLSXSheetName is the worksheet the export is written to.
	// Default: "ASBO"
	XLSXSheetName string `yaml:"xlsx_sheet_name"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "warn"
	Level string `yaml:"log_level"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `yaml:"log_format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The configuration file. "" means DefaultConfigFile.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - A CONFIG error if the file cannot be read or parsed, or fails
//     validation. A missing DefaultConfigFile is not an error; a missing
//     file the caller named explicitly is.
func Load(path string) (*Config, error) {
	explicit := path != "" && path != DefaultConfigFile
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err).
			WithContext("path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load config file %s", path), err).
			WithContext("path", path)
	}
	return cfg, nil
}

// Parse decodes YAML configuration data, applies defaults and validates the
// result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.RecordTag == "" {
		cfg.RecordTag = "ASBO"
	}
	if cfg.OutputExtension == "" {
		cfg.OutputExtension = ".csv"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.XLSXSheetName == "" {
		cfg.XLSXSheetName = "ASBO"
	}
}

// validate checks the configuration for values the converter cannot use.
func validate(cfg *Config) error {
	if strings.ContainsAny(cfg.RecordTag, " \t\r\n<>/{}:") {
		return fmt.Errorf("record_tag %q is not a valid local element name", cfg.RecordTag)
	}

	if !strings.HasPrefix(cfg.OutputExtension, ".") || len(cfg.OutputExtension) < 2 {
		return fmt.Errorf("output_extension %q must start with a dot", cfg.OutputExtension)
	}
	if strings.ContainsAny(cfg.OutputExtension, `/\`) {
		return fmt.Errorf("output_extension %q must not contain path separators", cfg.OutputExtension)
	}
	if strings.EqualFold(cfg.OutputExtension, ".xml") {
		return fmt.Errorf("output_extension %q would overwrite the input", cfg.OutputExtension)
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q is not one of text, json", cfg.Logging.Format)
	}

	// Excel's own limits on worksheet names.
	if len([]rune(cfg.XLSXSheetName)) > 31 {
		return fmt.Errorf("xlsx_sheet_name %q is longer than 31 characters", cfg.XLSXSheetName)
	}
	if strings.ContainsAny(cfg.XLSXSheetName, `:\/?*[]`) {
		return fmt.Errorf("xlsx_sheet_name %q contains a character Excel does not allow", cfg.XLSXSheetName)
	}

	return nil
}

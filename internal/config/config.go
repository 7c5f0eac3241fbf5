// =============================================================================
// EDIFACT PRICAT Generator - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// configuration covers everything the core consumes (currency and qualifier
// allow-sets, strict/lenient item handling, default currency and EDIFACT
// version) plus the collaborator concerns (output location and naming, log
// verbosity).
//
// A missing configuration file is not an error: the tool runs with built-in
// defaults so the demo path needs no setup.
//
// =============================================================================

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where generated .edi files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat defines the output file name when no explicit path
	// is given. Placeholders: {ref}, {uuid}, {timestamp}, {date}, {time}.
	// Default: "{ref}_{timestamp}.edi"
	OutputNameFormat string `yaml:"output_name_format"`

	// Overwrite replaces an existing output file instead of deriving a
	// timestamped sibling path.
	// Default: false
	Overwrite bool `yaml:"overwrite"`

	// =========================================================================
	// ENCODING SETTINGS
	// =========================================================================

	// Strict aborts the whole message on the first invalid item instead of
	// skipping it.
	// Default: false
	Strict bool `yaml:"strict"`

	// DefaultCurrency is used when the catalog names no currency.
	// Default: "EUR"
	DefaultCurrency string `yaml:"default_currency"`

	// DefaultEdifactVersion is used when the catalog names no version.
	// Default: "D:96A:UN"
	DefaultEdifactVersion string `yaml:"default_edifact_version"`

	// AllowedCurrencies is the ISO 4217 allow-set for message currencies.
	// Default: EUR, USD, GBP, JPY
	AllowedCurrencies []string `yaml:"allowed_currencies"`

	// AllowedQualifiers is the allow-set for party role codes.
	// Default: BY, SU, SE
	AllowedQualifiers []string `yaml:"allowed_qualifiers"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration used when no file overrides it.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file. A missing file yields the
// defaults; an unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
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

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{ref}_{timestamp}.edi"
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "EUR"
	}
	if cfg.DefaultEdifactVersion == "" {
		cfg.DefaultEdifactVersion = "D:96A:UN"
	}
	if len(cfg.AllowedCurrencies) == 0 {
		cfg.AllowedCurrencies = []string{"EUR", "USD", "GBP", "JPY"}
	}
	if len(cfg.AllowedQualifiers) == 0 {
		cfg.AllowedQualifiers = []string{"BY", "SU", "SE"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate rejects configurations the pipeline cannot run with.
func validate(cfg *Config) error {
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if !cfg.DefaultCurrencyAllowed() {
		return fmt.Errorf("default currency %s is not in the allowed set", cfg.DefaultCurrency)
	}
	return nil
}

// DefaultCurrencyAllowed reports whether the default currency is a member of
// the configured allow-set.
func (cfg *Config) DefaultCurrencyAllowed() bool {
	for _, c := range cfg.AllowedCurrencies {
		if c == cfg.DefaultCurrency {
			return true
		}
	}
	return false
}

// ParseLogLevel maps a configured level name to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

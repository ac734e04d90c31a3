package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the complete report configuration
type Config struct {
	Report ReportConfig `json:"report" yaml:"report"`
	Source SourceConfig `json:"source" yaml:"source"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// ReportConfig controls how the settlement report is rendered
type ReportConfig struct {
	Firm       string `json:"firm" yaml:"firm"`
	Title      string `json:"title" yaml:"title"`
	Currency   string `json:"currency" yaml:"currency"`       // reporting currency, ISO 4217
	Locale     string `json:"locale" yaml:"locale"`           // BCP 47 tag, e.g. "en-US"
	DateLayout string `json:"date_layout" yaml:"date_layout"` // Go time layout, e.g. "1/2/06"
	Format     string `json:"format" yaml:"format"`           // "console" or "org"
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
}

// SourceConfig selects where instructions are read from
type SourceConfig struct {
	Type string `json:"type" yaml:"type"` // "static", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// Load returns the defaults when path is empty, otherwise the file
// contents. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = read(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// read decodes path on top of the defaults so partial files are accepted.
func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Report.Currency == "" {
		return fmt.Errorf("report.currency is required")
	}
	if _, err := currency.ParseISO(c.Report.Currency); err != nil {
		return fmt.Errorf("unknown report.currency: %s", c.Report.Currency)
	}
	if c.Report.Locale == "" {
		return fmt.Errorf("report.locale is required")
	}
	if _, err := language.Parse(c.Report.Locale); err != nil {
		return fmt.Errorf("invalid report.locale %q: %w", c.Report.Locale, err)
	}
	if c.Report.DateLayout == "" {
		return fmt.Errorf("report.date_layout is required")
	}
	if c.Report.Format != "console" && c.Report.Format != "org" {
		return fmt.Errorf("report.format must be 'console' or 'org'")
	}
	switch c.Source.Type {
	case "static":
	case "csv", "sqlite":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path required for %s source", c.Source.Type)
		}
	default:
		return fmt.Errorf("source.type must be 'static', 'csv' or 'sqlite'")
	}
	return nil
}

// ApplyEnv overrides fields from FXREPORT_* environment variables.
func (c *Config) ApplyEnv() error {
	set := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	set("FXREPORT_FIRM", &c.Report.Firm)
	set("FXREPORT_CURRENCY", &c.Report.Currency)
	set("FXREPORT_LOCALE", &c.Report.Locale)
	set("FXREPORT_DATE_LAYOUT", &c.Report.DateLayout)
	set("FXREPORT_FORMAT", &c.Report.Format)
	set("FXREPORT_OUTPUT", &c.Report.Output)
	set("FXREPORT_SOURCE", &c.Source.Type)
	set("FXREPORT_SOURCE_PATH", &c.Source.Path)
	set("FXREPORT_LOG_LEVEL", &c.Log.Level)

	if v, ok := os.LookupEnv("FXREPORT_LOG_PRETTY"); ok && v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FXREPORT_LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = pretty
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Firm:       "Trade Operations",
			Title:      "Daily Forex Trading Report",
			Currency:   "USD",
			Locale:     "en-US",
			DateLayout: "1/2/06",
			Format:     "console",
		},
		Source: SourceConfig{
			Type: "static",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

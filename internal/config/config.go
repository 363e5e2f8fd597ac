// Package config provides configuration file support for goutmp-export.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/d21d3q/goutmp/internal/export"
	"github.com/d21d3q/goutmp/internal/options"
	"github.com/d21d3q/goutmp/pkg/errclass"
)

// Config represents the export configuration.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig configures the output file.
type ExportConfig struct {
	Format     string `yaml:"format"`
	Delimiter  string `yaml:"delimiter"`
	TimeFormat string `yaml:"time_format"`
	Encoding   string `yaml:"encoding"`
	OutputDir  string `yaml:"output_dir"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Format:     "csv",
			Delimiter:  ",",
			TimeFormat: string(export.TimeEpoch),
			Encoding:   options.EncodingRaw,
			OutputDir:  ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errclass.ErrConfigInvalid.WithMessagef("read %s", path).Wrap(err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errclass.ErrConfigInvalid.WithMessagef("parse %s", path).Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the exporter cannot honor.
func (c *Config) Validate() error {
	if _, err := options.ParseDelimiter(c.Export.Delimiter); err != nil {
		return errclass.ErrConfigInvalid.WithMessage("export.delimiter").Wrap(err)
	}
	if _, err := export.ParseTimeFormat(c.Export.TimeFormat); err != nil {
		return errclass.ErrConfigInvalid.WithMessage("export.time_format").Wrap(err)
	}
	if _, err := options.ParseTextEncoding(c.Export.Encoding); err != nil {
		return errclass.ErrConfigInvalid.WithMessage("export.encoding").Wrap(err)
	}
	if strings.TrimSpace(c.Export.Format) == "" {
		return errclass.ErrConfigInvalid.WithMessage("export.format is empty")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return errclass.ErrConfigInvalid.WithMessagef("logging.format %q (want text or json)", c.Logging.Format)
	}
	return nil
}

// ExportOptions converts the export section into renderer options.
func (c *Config) ExportOptions() (export.Options, error) {
	delim, err := options.ParseDelimiter(c.Export.Delimiter)
	if err != nil {
		return export.Options{}, fmt.Errorf("export.delimiter: %w", err)
	}
	tf, err := export.ParseTimeFormat(c.Export.TimeFormat)
	if err != nil {
		return export.Options{}, fmt.Errorf("export.time_format: %w", err)
	}
	return export.Options{Delimiter: delim, TimeFormat: tf}, nil
}

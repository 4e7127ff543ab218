package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Chart  Chart `yaml:"chart"`
	Source struct {
		Kind   string `yaml:"kind" default:"csv" validate:"oneof=csv sqlite yahoo mock"`
		Path   string `yaml:"path" default:"data/ohlcv.csv"`
		Table  string `yaml:"table" default:"bars"`
		Symbol string `yaml:"symbol" default:"^GSPC"`
		Range  string `yaml:"range" default:"1y"`
		Proxy  string `yaml:"proxy"`
		Bars   int    `yaml:"bars" default:"250" validate:"gt=0"`
	} `yaml:"source"`
	Schedule struct {
		ReloadCron string `yaml:"reload_cron"`
	} `yaml:"schedule"`
	Output struct {
		Path   string `yaml:"path" default:"out/chart.svg"`
		Format string `yaml:"format" default:"svg" validate:"oneof=svg png"`
	} `yaml:"output"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	History struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"history"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Defaults are set before decoding so that explicit zero values in the file win.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CHART_SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("CHART_OUTPUT_PATH"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("CHART_RELOAD_CRON"); v != "" {
		cfg.Schedule.ReloadCron = v
	}
	if v := os.Getenv("HISTORY_DB_PATH"); v != "" {
		cfg.History.DBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.Source.Proxy == "" {
		cfg.Source.Proxy = v
	}

	return cfg, nil
}

// Validate checks the chart options and the application sections.
func (c *Config) Validate() error {
	if err := c.Chart.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return invalid(describe(err))
	}
	if (c.Source.Kind == "csv" || c.Source.Kind == "sqlite") && c.Source.Path == "" {
		return invalid("source.path is required for " + c.Source.Kind)
	}
	return nil
}

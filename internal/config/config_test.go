package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"CandleScope/internal/model"
)

func TestDefaultChartIsValid(t *testing.T) {
	c := DefaultChart()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if c.Canvas.Width != 960 || c.Canvas.Height != 500 {
		t.Errorf("unexpected canvas %+v", c.Canvas)
	}
	if len(c.Zoom.Extent) != 2 || c.Zoom.Extent[1] != 5 {
		t.Errorf("unexpected zoom extent %v", c.Zoom.Extent)
	}
	if len(c.Indicators.SMA) != 2 || c.Indicators.EMA[0] != 50 {
		t.Errorf("unexpected indicator defaults %+v", c.Indicators)
	}
	if !c.Panes.PriceZoomY || c.Panes.IndicatorZoomY {
		t.Error("price pane zooms y by default, indicator panes do not")
	}
}

func TestChartValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Chart)
	}{
		{"zero width", func(c *Chart) { c.Canvas.Width = 0 }},
		{"margins swallow width", func(c *Chart) { c.Margin.Left = 600; c.Margin.Right = 400 }},
		{"margins swallow height", func(c *Chart) { c.Margin.Top = 300; c.Margin.Bottom = 200 }},
		{"negative margin", func(c *Chart) { c.Margin.Top = -1 }},
		{"zoom below one", func(c *Chart) { c.Zoom.Extent = []float64{0.5, 5} }},
		{"zoom inverted", func(c *Chart) { c.Zoom.Extent = []float64{5, 2} }},
		{"candle ratio", func(c *Chart) { c.Candle.WidthRatio = 1.5 }},
		{"macd order", func(c *Chart) { c.Indicators.MACD.Fast = 30 }},
		{"sma period", func(c *Chart) { c.Indicators.SMA = []int{0} }},
		{"panes overflow", func(c *Chart) { c.Panes.PriceHeight = 400 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultChart()
			tt.mutate(&c)
			err := c.Validate()
			if !errors.Is(err, model.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestPanesFitWithoutIndicators(t *testing.T) {
	c := DefaultChart()
	c.Panes.PriceHeight = 440
	c.Indicators.MACD.Enabled = false
	c.Indicators.RSI.Enabled = false
	if err := c.Validate(); err != nil {
		t.Fatalf("price pane alone should fit: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
chart:
  canvas:
    width: 1200
  panes:
    price_zoom_y: false
  indicators:
    sma: [5]
    rsi:
      enabled: false
source:
  kind: mock
output:
  format: png
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHART_OUTPUT_PATH", filepath.Join(dir, "snap.png"))
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config must validate: %v", err)
	}
	if cfg.Chart.Canvas.Width != 1200 || cfg.Chart.Canvas.Height != 500 {
		t.Errorf("canvas = %+v", cfg.Chart.Canvas)
	}
	if cfg.Chart.Panes.PriceZoomY {
		t.Error("explicit false must override the default")
	}
	if len(cfg.Chart.Indicators.SMA) != 1 || cfg.Chart.Indicators.SMA[0] != 5 {
		t.Errorf("sma = %v", cfg.Chart.Indicators.SMA)
	}
	if cfg.Chart.Indicators.RSI.Enabled || !cfg.Chart.Indicators.MACD.Enabled {
		t.Error("indicator toggles not applied")
	}
	if cfg.Output.Path != filepath.Join(dir, "snap.png") || cfg.Log.Level != "debug" {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Output, cfg.Log)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source.Kind != "csv" || cfg.Output.Format != "svg" {
		t.Errorf("unexpected defaults: %+v %+v", cfg.Source, cfg.Output)
	}
	cfg.Output.Format = "gif"
	if err := cfg.Validate(); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

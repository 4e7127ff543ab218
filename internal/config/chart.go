package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"CandleScope/internal/model"
)

var validate = validator.New()

// Chart is every option the chart engine recognizes.
type Chart struct {
	Canvas struct {
		Width  float64 `yaml:"width" default:"960" validate:"gt=0"`
		Height float64 `yaml:"height" default:"500" validate:"gt=0"`
	} `yaml:"canvas"`
	Margin struct {
		Top    float64 `yaml:"top" default:"20" validate:"gte=0"`
		Right  float64 `yaml:"right" default:"50" validate:"gte=0"`
		Bottom float64 `yaml:"bottom" default:"30" validate:"gte=0"`
		Left   float64 `yaml:"left" default:"50" validate:"gte=0"`
	} `yaml:"margin"`
	Zoom struct {
		Extent           []float64 `yaml:"extent" default:"[1,5]" validate:"len=2,dive,gt=0"`
		TranslatePadding float64   `yaml:"translate_padding" validate:"gte=0"`
		WheelSensitivity float64   `yaml:"wheel_sensitivity" default:"0.002" validate:"gt=0"`
	} `yaml:"zoom"`
	Candle struct {
		WidthRatio float64 `yaml:"width_ratio" default:"0.5" validate:"gt=0,lte=1"`
		MaxWidth   float64 `yaml:"max_width" default:"24" validate:"gt=0"`
	} `yaml:"candle"`
	Panes struct {
		PriceHeight      float64 `yaml:"price_height" default:"305" validate:"gte=0"`
		VolumeRatio      float64 `yaml:"volume_ratio" default:"0.2" validate:"gte=0,lte=1"`
		IndicatorHeight  float64 `yaml:"indicator_height" default:"65" validate:"gt=0"`
		IndicatorPadding float64 `yaml:"indicator_padding" default:"5" validate:"gte=0"`
		PriceZoomY       bool    `yaml:"price_zoom_y" default:"true"`
		IndicatorZoomY   bool    `yaml:"indicator_zoom_y"`
	} `yaml:"panes"`
	Indicators Indicators `yaml:"indicators"`
	Overlay    struct {
		HitTolerance float64 `yaml:"hit_tolerance" default:"6" validate:"gt=0"`
	} `yaml:"overlay"`
	Palette Palette `yaml:"palette"`
}

// Indicators configures the indicator pipeline.
type Indicators struct {
	SMA  []int `yaml:"sma" default:"[10,20]" validate:"dive,gt=0"`
	EMA  []int `yaml:"ema" default:"[50]" validate:"dive,gt=0"`
	MACD struct {
		Enabled bool `yaml:"enabled" default:"true"`
		Fast    int  `yaml:"fast" default:"12" validate:"gt=0"`
		Slow    int  `yaml:"slow" default:"26" validate:"gt=0"`
		Signal  int  `yaml:"signal" default:"9" validate:"gt=0"`
	} `yaml:"macd"`
	RSI struct {
		Enabled    bool    `yaml:"enabled" default:"true"`
		Period     int     `yaml:"period" default:"14" validate:"gt=0"`
		Overbought float64 `yaml:"overbought" default:"70" validate:"gte=0,lte=100"`
		Oversold   float64 `yaml:"oversold" default:"30" validate:"gte=0,lte=100"`
	} `yaml:"rsi"`
}

// Palette holds hex colors ("#rrggbb") or "none".
type Palette struct {
	Background string   `yaml:"background" default:"#ffffff"`
	Up         string   `yaml:"up" default:"#00a000"`
	Down       string   `yaml:"down" default:"#e00000"`
	VolumeUp   string   `yaml:"volume_up" default:"#a8d8a8"`
	VolumeDown string   `yaml:"volume_down" default:"#f0a8a8"`
	Axis       string   `yaml:"axis" default:"#333333"`
	Grid       string   `yaml:"grid" default:"#e6e6e6"`
	Text       string   `yaml:"text" default:"#222222"`
	Crosshair  string   `yaml:"crosshair" default:"#888888"`
	Overlays   []string `yaml:"overlays" default:"[\"#1f77b4\",\"#ff7f0e\",\"#9467bd\",\"#8c564b\"]" validate:"min=1"`
	MACD       string   `yaml:"macd" default:"#1f77b4"`
	Signal     string   `yaml:"signal" default:"#ff7f0e"`
	Histogram  string   `yaml:"histogram" default:"#999999"`
	RSI        string   `yaml:"rsi" default:"#9467bd"`
	Trendline  string   `yaml:"trendline" default:"#333333"`
	Supstance  string   `yaml:"supstance" default:"#2a6ebb"`
	Buy        string   `yaml:"buy" default:"#00a000"`
	Sell       string   `yaml:"sell" default:"#e00000"`
}

// DefaultChart returns a Chart populated from the default tags.
func DefaultChart() Chart {
	var c Chart
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("chart defaults: %v", err))
	}
	return c
}

// Validate checks field constraints and the geometry they imply. Every failure wraps
// model.ErrInvalidConfiguration.
func (c *Chart) Validate() error {
	if err := validate.Struct(c); err != nil {
		return invalid(describe(err))
	}
	if c.Margin.Left+c.Margin.Right >= c.Canvas.Width {
		return invalid(fmt.Sprintf("horizontal margins %g+%g leave no plot width in %g",
			c.Margin.Left, c.Margin.Right, c.Canvas.Width))
	}
	if c.Margin.Top+c.Margin.Bottom >= c.Canvas.Height {
		return invalid(fmt.Sprintf("vertical margins %g+%g leave no plot height in %g",
			c.Margin.Top, c.Margin.Bottom, c.Canvas.Height))
	}
	if c.Zoom.Extent[0] < 1 || c.Zoom.Extent[1] < c.Zoom.Extent[0] {
		return invalid(fmt.Sprintf("zoom.extent %v must satisfy 1 <= min <= max", c.Zoom.Extent))
	}
	if c.Indicators.MACD.Enabled && c.Indicators.MACD.Fast >= c.Indicators.MACD.Slow {
		return invalid("indicators.macd.fast must be less than indicators.macd.slow")
	}
	if c.Indicators.RSI.Oversold >= c.Indicators.RSI.Overbought {
		return invalid("indicators.rsi.oversold must be below overbought")
	}
	plot := c.Canvas.Height - c.Margin.Top - c.Margin.Bottom
	need := c.Panes.PriceHeight + float64(c.IndicatorPanes())*(c.Panes.IndicatorHeight+c.Panes.IndicatorPadding)
	if need > plot {
		return invalid(fmt.Sprintf("panes need %gpx but the plot area is %gpx", need, plot))
	}
	return nil
}

// IndicatorPanes counts the stacked panes below the price pane.
func (c *Chart) IndicatorPanes() int {
	n := 0
	if c.Indicators.MACD.Enabled {
		n++
	}
	if c.Indicators.RSI.Enabled {
		n++
	}
	return n
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidConfiguration, msg)
}

func describe(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must have %s entries", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

package render

import "CandleScope/internal/config"

// Style carries the visual options of a chart.
type Style struct {
	Palette          config.Palette
	CandleWidthRatio float64
	CandleMaxWidth   float64
	Overbought       float64
	Oversold         float64
	HandleRadius     float64
}

// NewStyle extracts the render options from a chart configuration.
func NewStyle(cfg config.Chart) Style {
	return Style{
		Palette:          cfg.Palette,
		CandleWidthRatio: cfg.Candle.WidthRatio,
		CandleMaxWidth:   cfg.Candle.MaxWidth,
		Overbought:       cfg.Indicators.RSI.Overbought,
		Oversold:         cfg.Indicators.RSI.Oversold,
		HandleRadius:     3,
	}
}

func (s Style) overlayColor(i int) string {
	if len(s.Palette.Overlays) == 0 {
		return s.Palette.Axis
	}
	return s.Palette.Overlays[i%len(s.Palette.Overlays)]
}

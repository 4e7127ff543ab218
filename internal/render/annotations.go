package render

import (
	"CandleScope/internal/layout"
	"CandleScope/internal/model"
)

// Marker offsets keep trade arrows clear of the wick.
const (
	markerGap  = 5
	markerSize = 8
)

// TradeMarker returns the triangle for a trade: buys point up from below the low,
// sells point down from above the high.
func TradeMarker(in Input, t model.Trade) Shape {
	x := in.Scales.X.Forward(t.Time)
	half := markerSize / 2.0
	var pts []layout.Point
	fill := in.Style.Palette.Buy
	if t.Kind == model.TradeSell {
		fill = in.Style.Palette.Sell
		y := in.Scales.Price.Forward(t.High) - markerGap
		pts = []layout.Point{{X: x, Y: y}, {X: x - half, Y: y - markerSize}, {X: x + half, Y: y - markerSize}}
	} else {
		y := in.Scales.Price.Forward(t.Low) + markerGap
		pts = []layout.Point{{X: x, Y: y}, {X: x - half, Y: y + markerSize}, {X: x + half, Y: y + markerSize}}
	}
	return Shape{Kind: KindPath, Class: "trade " + string(t.Kind), Points: pts, Closed: true, Fill: fill, Stroke: None}
}

func annotations(in Input) []Shape {
	p := in.Style.Palette
	plot := in.Layout.Plot
	var shapes []Shape

	for _, sp := range in.Supstances {
		y := in.Scales.Price.Forward(sp.Value)
		s := line("supstance "+sp.ID, in.Scales.X.Forward(sp.Start), y, in.Scales.X.Forward(sp.End), y, p.Supstance, 1)
		s.Dash = []float64{4, 2}
		shapes = append(shapes, s)
	}

	for _, tl := range in.Trendlines {
		x1, y1 := in.Scales.X.Forward(tl.Start.Time), in.Scales.Price.Forward(tl.Start.Value)
		x2, y2 := in.Scales.X.Forward(tl.End.Time), in.Scales.Price.Forward(tl.End.Value)
		shapes = append(shapes,
			line("trendline "+tl.ID, x1, y1, x2, y2, p.Trendline, 1),
			handle("trendline-handle start", x1, y1, in.Style.HandleRadius, p.Trendline),
			handle("trendline-handle end", x2, y2, in.Style.HandleRadius, p.Trendline),
		)
	}

	for _, t := range in.Trades {
		x := in.Scales.X.Forward(t.Time)
		if x < plot.Left() || x > plot.Right() {
			continue
		}
		shapes = append(shapes, TradeMarker(in, t))
	}
	return shapes
}

func handle(class string, x, y, r float64, stroke string) Shape {
	return Shape{Kind: KindCircle, Class: class, X: x, Y: y, R: r, Fill: None, Stroke: stroke, StrokeWidth: 1}
}

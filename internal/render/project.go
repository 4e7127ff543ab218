package render

import (
	"math"
	"sort"

	"CandleScope/internal/calculator"
	"CandleScope/internal/layout"
	"CandleScope/internal/model"
	"CandleScope/internal/scale"
)

// Input is everything one frame depends on.
type Input struct {
	Series     *model.Series
	Scales     scale.Set
	Indicators calculator.Outputs
	Layout     layout.Layout
	Style      Style
	Trades     []model.Trade
	Trendlines []model.Trendline
	Supstances []model.Supstance
}

// Classification labels used for candle coloring.
const (
	ClassUp   = "up"
	ClassDown = "down"
)

// Classify returns ClassUp for a bullish bar and ClassDown otherwise; open == close
// is bearish.
func Classify(b model.OHLCV) string {
	if b.Bullish() {
		return ClassUp
	}
	return ClassDown
}

// CandleWidth derives the body width from the current x scale: the pixel distance
// between neighbouring records times the configured ratio, capped at the configured
// maximum and never below one pixel.
func CandleWidth(s *model.Series, x scale.Time, st Style) float64 {
	n := s.Len()
	if n == 0 {
		return 1
	}
	r0, r1 := x.Range()
	slot := r1 - r0
	if n > 1 {
		if span := math.Abs(x.Forward(s.Last().Time) - x.Forward(s.First().Time)); span > 0 {
			slot = span / float64(n-1)
		}
	}
	w := slot * st.CandleWidthRatio
	if st.CandleMaxWidth > 0 && w > st.CandleMaxWidth {
		w = st.CandleMaxWidth
	}
	return math.Max(w, 1)
}

// visible returns the half-open index range of records whose x lies within
// [lo, hi] after widening both edges by pad pixels.
func visible(s *model.Series, x scale.Time, lo, hi, pad float64) (int, int) {
	n := s.Len()
	i0 := sort.Search(n, func(i int) bool { return x.Forward(s.At(i).Time) >= lo-pad })
	i1 := sort.Search(n, func(i int) bool { return x.Forward(s.At(i).Time) > hi+pad })
	return i0, i1
}

// Project builds the DrawModel for one frame. An empty series yields Empty.
func Project(in Input) DrawModel {
	if in.Series.Len() == 0 {
		return Empty(in.Layout, in.Style)
	}
	p := in.Style.Palette
	dm := DrawModel{Width: in.Layout.Canvas.W, Height: in.Layout.Canvas.H, Background: p.Background}

	price, _ := in.Layout.Pane(layout.PanePrice)
	w := CandleWidth(in.Series, in.Scales.X, in.Style)
	i0, i1 := visible(in.Series, in.Scales.X, in.Layout.Plot.Left(), in.Layout.Plot.Right(), w)

	dm.Layers = append(dm.Layers, axes(in))
	dm.Layers = append(dm.Layers,
		Layer{Name: "volume", Clip: price.Rect, Shapes: volumeBars(in, i0, i1, w)},
		Layer{Name: "candles", Clip: price.Rect, Shapes: candles(in, i0, i1, w)},
		Layer{Name: "overlays", Clip: price.Rect, Shapes: overlays(in, i0, i1)},
	)
	for _, pane := range in.Layout.Panes {
		switch pane.ID {
		case layout.PaneMACD:
			dm.Layers = append(dm.Layers, Layer{Name: "macd", Clip: pane.Rect, Shapes: macdShapes(in, pane.Rect, i0, i1, w)})
		case layout.PaneRSI:
			dm.Layers = append(dm.Layers, Layer{Name: "rsi", Clip: pane.Rect, Shapes: rsiShapes(in, pane.Rect, i0, i1)})
		}
	}
	dm.Layers = append(dm.Layers,
		Layer{Name: "annotations", Clip: price.Rect, Shapes: annotations(in)},
		Layer{Name: "labels", Clip: in.Layout.Canvas, Shapes: closeLabel(in, price.Rect)},
	)
	return dm
}

func candles(in Input, i0, i1 int, w float64) []Shape {
	p := in.Style.Palette
	shapes := make([]Shape, 0, 2*(i1-i0))
	for i := i0; i < i1; i++ {
		b := in.Series.At(i)
		cls := Classify(b)
		color := p.Down
		if cls == ClassUp {
			color = p.Up
		}
		x := in.Scales.X.Forward(b.Time)
		yo, yc := in.Scales.Price.Forward(b.Open), in.Scales.Price.Forward(b.Close)
		shapes = append(shapes,
			line("wick "+cls, x, in.Scales.Price.Forward(b.High), x, in.Scales.Price.Forward(b.Low), color, 1),
			rect("body "+cls, x-w/2, in.Scales.Price.Forward(math.Max(b.Open, b.Close)), w, math.Abs(yo-yc), color),
		)
	}
	return shapes
}

func volumeBars(in Input, i0, i1 int, w float64) []Shape {
	p := in.Style.Palette
	v := in.Scales.Volume
	base := v.Forward(0)
	shapes := make([]Shape, 0, i1-i0)
	for i := i0; i < i1; i++ {
		b := in.Series.At(i)
		cls := Classify(b)
		color := p.VolumeDown
		if cls == ClassUp {
			color = p.VolumeUp
		}
		y := v.Forward(b.Volume)
		shapes = append(shapes, rect("volume "+cls, in.Scales.X.Forward(b.Time)-w/2, y, w, base-y, color))
	}
	return shapes
}

func closeLabel(in Input, pane layout.Rect) []Shape {
	last := in.Series.Last()
	y := in.Scales.Price.Forward(last.Close)
	if y < pane.Top() || y > pane.Bottom() {
		return nil
	}
	p := in.Style.Palette
	color := p.Down
	if last.Bullish() {
		color = p.Up
	}
	x := pane.Right()
	return []Shape{
		rect("close-annotation "+Classify(last), x, y-8, in.Layout.Canvas.W-x, 16, color),
		text("close-annotation", x+3, y+4, FormatPrice(last.Close), AnchorStart, p.Background),
	}
}

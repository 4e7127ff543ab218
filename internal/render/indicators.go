package render

import (
	"github.com/guregu/null/v6"

	"CandleScope/internal/layout"
	"CandleScope/internal/scale"
)

// runs splits the defined values in [i0, i1) into contiguous polylines. The window is
// widened by one index each side so lines run to the clip edge.
func runs(in Input, values []null.Float, y scale.Linear, i0, i1 int) [][]layout.Point {
	if i0 > 0 {
		i0--
	}
	if i1 < len(values) {
		i1++
	}
	var out [][]layout.Point
	var cur []layout.Point
	for i := i0; i < i1; i++ {
		v := values[i]
		if !v.Valid {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, layout.Point{X: in.Scales.X.Forward(in.Series.At(i).Time), Y: y.Forward(v.Float64)})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func paths(class string, pts [][]layout.Point, stroke string) []Shape {
	out := make([]Shape, 0, len(pts))
	for _, run := range pts {
		out = append(out, Shape{Kind: KindPath, Class: class, Points: run, Fill: None, Stroke: stroke, StrokeWidth: 1})
	}
	return out
}

func overlays(in Input, i0, i1 int) []Shape {
	var shapes []Shape
	for i, s := range in.Indicators.Overlays {
		class := "indicator " + string(s.Kind) + " " + s.ID
		shapes = append(shapes, paths(class, runs(in, s.Values, in.Scales.Price, i0, i1), in.Style.overlayColor(i))...)
	}
	return shapes
}

func macdShapes(in Input, pane layout.Rect, i0, i1 int, w float64) []Shape {
	m := in.Indicators.MACD
	y, ok := in.Scales.Indicators[layout.PaneMACD]
	if m == nil || !ok {
		return nil
	}
	p := in.Style.Palette
	var shapes []Shape
	zero := y.Forward(0)
	if zero >= pane.Top() && zero <= pane.Bottom() {
		shapes = append(shapes, line("macd zero", pane.Left(), zero, pane.Right(), zero, p.Grid, 1))
	}
	for i := i0; i < i1; i++ {
		h := m.Histogram.At(i)
		if !h.Valid {
			continue
		}
		v := y.Forward(h.Float64)
		top, height := v, zero-v
		if height < 0 {
			top, height = zero, -height
		}
		x := in.Scales.X.Forward(in.Series.At(i).Time)
		shapes = append(shapes, rect("macd histogram", x-w/2, top, w, height, p.Histogram))
	}
	shapes = append(shapes, paths("macd line", runs(in, m.Line.Values, y, i0, i1), p.MACD)...)
	shapes = append(shapes, paths("macd signal", runs(in, m.Signal.Values, y, i0, i1), p.Signal)...)
	return shapes
}

func rsiShapes(in Input, pane layout.Rect, i0, i1 int) []Shape {
	r := in.Indicators.RSI
	y, ok := in.Scales.Indicators[layout.PaneRSI]
	if r == nil || !ok {
		return nil
	}
	p := in.Style.Palette
	var shapes []Shape
	for _, g := range []struct {
		class string
		v     float64
	}{
		{"rsi overbought", in.Style.Overbought},
		{"rsi middle", 50},
		{"rsi oversold", in.Style.Oversold},
	} {
		gy := y.Forward(g.v)
		guide := line(g.class, pane.Left(), gy, pane.Right(), gy, p.Grid, 1)
		guide.Dash = []float64{3, 3}
		shapes = append(shapes, guide)
	}
	return append(shapes, paths("rsi line", runs(in, r.Values, y, i0, i1), p.RSI)...)
}

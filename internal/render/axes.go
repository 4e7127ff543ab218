package render

import (
	"CandleScope/internal/config"
	"CandleScope/internal/layout"
	"CandleScope/internal/scale"
)

const tickSize = 5

func axes(in Input) Layer {
	p := in.Style.Palette
	plot := in.Layout.Plot
	var shapes []Shape

	last := in.Layout.Panes[len(in.Layout.Panes)-1].Rect
	bottom := last.Bottom()
	shapes = append(shapes, line("axis x", plot.Left(), bottom, plot.Right(), bottom, p.Axis, 1))
	format := in.Scales.X.TickFormat()
	for _, t := range in.Scales.X.Ticks(int(plot.W / 100)) {
		x := in.Scales.X.Forward(t)
		if x < plot.Left() || x > plot.Right() {
			continue
		}
		shapes = append(shapes,
			line("tick x", x, bottom, x, bottom+tickSize, p.Axis, 1),
			text("tick-label x", x, bottom+tickSize+10, t.Format(format), AnchorMiddle, p.Text),
		)
	}

	for _, pane := range in.Layout.Panes {
		r := pane.Rect
		shapes = append(shapes, line("axis y "+string(pane.ID), r.Right(), r.Top(), r.Right(), r.Bottom(), p.Axis, 1))
		switch pane.ID {
		case layout.PanePrice:
			shapes = append(shapes, yTicks("price", in.Scales.Price, r, int(r.H/40), true, FormatPrice, p)...)
			shapes = append(shapes, line("axis percent", r.Left(), r.Top(), r.Left(), r.Bottom(), p.Axis, 1))
			shapes = append(shapes, yTicks("percent", in.Scales.Percent, r, int(r.H/40), false, FormatPercent, p)...)
			if !in.Scales.Volume.Collapsed() {
				shapes = append(shapes, volumeTicks(in.Scales.Volume, in.Layout.Volume, p.Text)...)
			}
		default:
			if y, ok := in.Scales.Indicators[pane.ID]; ok {
				shapes = append(shapes, yTicks(string(pane.ID), y, r, 3, true, FormatValue, p)...)
			}
		}
	}
	return Layer{Name: "axes", Clip: in.Layout.Canvas, Shapes: shapes}
}

func yTicks(class string, y scale.Linear, r layout.Rect, count int, right bool, format func(float64) string, p config.Palette) []Shape {
	var shapes []Shape
	for _, v := range y.Ticks(count) {
		py := y.Forward(v)
		if py < r.Top() || py > r.Bottom() {
			continue
		}
		if right {
			shapes = append(shapes,
				line("tick "+class, r.Right(), py, r.Right()+tickSize, py, p.Axis, 1),
				text("tick-label "+class, r.Right()+tickSize+2, py+4, format(v), AnchorStart, p.Text),
			)
			continue
		}
		shapes = append(shapes,
			line("tick "+class, r.Left()-tickSize, py, r.Left(), py, p.Axis, 1),
			text("tick-label "+class, r.Left()-tickSize-2, py+4, format(v), AnchorEnd, p.Text),
		)
	}
	return shapes
}

func volumeTicks(v scale.Linear, band layout.Rect, color string) []Shape {
	var shapes []Shape
	for _, t := range v.Ticks(3) {
		if t == 0 {
			continue
		}
		py := v.Forward(t)
		if py < band.Top() || py > band.Bottom() {
			continue
		}
		shapes = append(shapes, text("tick-label volume", band.Right()-tickSize, py+4, FormatVolume(t), AnchorEnd, color))
	}
	return shapes
}

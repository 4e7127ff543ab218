// Package overlay tracks the pointer-driven layers drawn over the chart: the crosshair
// read-out and draggable annotations. Both re-project through whatever scales the
// caller passes in, so they stay correct under any zoom.
package overlay

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"

	"CandleScope/internal/calculator"
	"CandleScope/internal/layout"
	"CandleScope/internal/model"
	"CandleScope/internal/render"
	"CandleScope/internal/scale"
)

// IndicatorValue is one indicator reading at the read-out index.
type IndicatorValue struct {
	ID    string
	Value null.Float
}

// Readout describes the record nearest to the pointer.
type Readout struct {
	Pane       layout.PaneID
	Index      int
	Bar        model.OHLCV
	Time       time.Time
	Value      float64
	// Range is where the bar's close sits between the series low and high, 0..1.
	Range      float64
	Indicators []IndicatorValue
}

// Crosshair remembers the last pointer position. It draws nothing while hidden or
// while a gesture has suspended it.
type Crosshair struct {
	visible   bool
	suspended bool
	pane      layout.PaneID
	pos       layout.Point
}

// Move records p. Outside every pane the crosshair hides.
func (c *Crosshair) Move(l layout.Layout, p layout.Point) bool {
	pane, ok := l.PaneAt(p)
	if !ok {
		c.visible = false
		return false
	}
	c.visible, c.pane, c.pos = true, pane.ID, p
	return true
}

// Leave hides the crosshair.
func (c *Crosshair) Leave() { c.visible = false }

// Suspend hides the crosshair for the duration of a gesture.
func (c *Crosshair) Suspend() { c.suspended = true }

// Resume undoes Suspend.
func (c *Crosshair) Resume() { c.suspended = false }

// Visible reports whether the crosshair would be drawn.
func (c *Crosshair) Visible() bool { return c.visible && !c.suspended }

// Position returns the last pointer position and its pane.
func (c *Crosshair) Position() (layout.PaneID, layout.Point) { return c.pane, c.pos }

// Readout inverts the pointer through the current scales and finds the nearest record.
func (c *Crosshair) Readout(s *model.Series, scales scale.Set, ind calculator.Outputs) (Readout, bool) {
	if !c.Visible() || s.Len() == 0 {
		return Readout{}, false
	}
	y, ok := scales.YFor(c.pane)
	if !ok {
		return Readout{}, false
	}
	t := scales.X.Invert(c.pos.X)
	i := s.Nearest(t)
	r := Readout{Pane: c.pane, Index: i, Bar: s.At(i), Time: t, Value: y.Invert(c.pos.Y), Range: 0.5}
	if lo, hi, err := calculator.PriceExtent(s); err == nil {
		r.Range = calculator.Position(r.Bar.Close, lo, hi)
	}
	for _, o := range ind.Overlays {
		r.Indicators = append(r.Indicators, IndicatorValue{ID: o.ID, Value: o.At(i)})
	}
	if ind.MACD != nil {
		for _, m := range []model.IndicatorSeries{ind.MACD.Line, ind.MACD.Signal, ind.MACD.Histogram} {
			r.Indicators = append(r.Indicators, IndicatorValue{ID: m.ID, Value: m.At(i)})
		}
	}
	if ind.RSI != nil {
		r.Indicators = append(r.Indicators, IndicatorValue{ID: ind.RSI.ID, Value: ind.RSI.At(i)})
	}
	return r, true
}

// Layer draws the guides and labels for the current read-out. A hidden crosshair
// yields an empty layer.
func (c *Crosshair) Layer(l layout.Layout, s *model.Series, scales scale.Set, ind calculator.Outputs, st render.Style) render.Layer {
	layer := render.Layer{Name: "crosshair", Clip: l.Canvas}
	r, ok := c.Readout(s, scales, ind)
	if !ok {
		return layer
	}
	p := st.Palette
	x := scales.X.Forward(r.Bar.Time)
	bottom := l.Panes[len(l.Panes)-1].Rect.Bottom()
	pane, _ := l.Pane(r.Pane)

	value := render.FormatValue(r.Value)
	if r.Pane == layout.PanePrice {
		value = render.FormatPrice(r.Value)
	}
	b := r.Bar
	summary := fmt.Sprintf("O %s H %s L %s C %s V %s",
		render.FormatPrice(b.Open), render.FormatPrice(b.High), render.FormatPrice(b.Low),
		render.FormatPrice(b.Close), render.FormatVolume(b.Volume))

	layer.Shapes = []render.Shape{
		guide("crosshair vertical", x, l.Plot.Top(), x, bottom, p.Crosshair),
		guide("crosshair horizontal", l.Plot.Left(), c.pos.Y, l.Plot.Right(), c.pos.Y, p.Crosshair),
		label("crosshair-label x", x, bottom+15, b.Time.Format(scales.X.TickFormat()), render.AnchorMiddle, p.Text),
		label("crosshair-label y", pane.Rect.Right()+7, c.pos.Y+4, value, render.AnchorStart, p.Text),
		label("readout", l.Plot.Left()+4, l.Plot.Top()+12, summary, render.AnchorStart, p.Text),
	}
	return layer
}

func guide(class string, x1, y1, x2, y2 float64, color string) render.Shape {
	return render.Shape{
		Kind: render.KindLine, Class: class,
		X: x1, Y: y1, X2: x2, Y2: y2,
		Fill: render.None, Stroke: color, StrokeWidth: 1, Dash: []float64{2, 2},
	}
}

func label(class string, x, y float64, s, anchor, color string) render.Shape {
	return render.Shape{Kind: render.KindText, Class: class, X: x, Y: y, Text: s, Anchor: anchor, Fill: color, Stroke: render.None}
}

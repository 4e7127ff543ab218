package zoom

import (
	"math"
	"testing"
	"time"

	"CandleScope/internal/config"
	"CandleScope/internal/layout"
	"CandleScope/internal/model"
	"CandleScope/internal/scale"
)

func setup(t *testing.T, mutate func(*config.Chart)) (*Controller, layout.Layout) {
	t.Helper()
	cfg := config.DefaultChart()
	if mutate != nil {
		mutate(&cfg)
	}
	l, err := layout.Compute(cfg)
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 100)
	for i := range bars {
		p := 50 + float64(i%7)
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: p, High: p + 1, Low: p - 1, Close: p, Volume: 10}
	}
	base, err := scale.ComputeBase(model.NewSeries(bars), l)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range l.Panes[1:] {
		base = base.WithIndicator(p.ID, -1, 1, p.Rect)
	}
	c := New(cfg, l)
	c.Reset(base)
	return c, l
}

func assertLinkedX(t *testing.T, set scale.Set, want scale.Time) {
	t.Helper()
	a0, a1 := set.X.Domain()
	b0, b1 := want.Domain()
	if !a0.Equal(b0) || !a1.Equal(b1) {
		t.Errorf("x domain [%v,%v] differs from shared [%v,%v]", a0, a1, b0, b1)
	}
}

func TestScaleTo_ClampsToExtent(t *testing.T) {
	c, _ := setup(t, nil)
	c.ScaleTo(layout.PanePrice, layout.Point{X: 480, Y: 150}, 100)
	if c.X().K != 5 {
		t.Errorf("scale factor = %v, want 5", c.X().K)
	}
	if y, _ := c.Y(layout.PanePrice); y.K != 5 {
		t.Errorf("price y factor = %v, want 5", y.K)
	}
	c.ScaleTo(layout.PanePrice, layout.Point{X: 480, Y: 150}, 0.1)
	if c.X().K != 1 {
		t.Errorf("scale factor = %v, want 1", c.X().K)
	}
}

func TestWheel_LinkedXIndependentY(t *testing.T) {
	c, l := setup(t, nil)
	c.Wheel(layout.PanePrice, layout.Point{X: 300, Y: 100}, -500)

	frame := c.Frame()
	if c.X().K <= 1 {
		t.Fatalf("wheel up must zoom in, k=%v", c.X().K)
	}
	want := math.Pow(2, 1)
	if math.Abs(c.X().K-want) > 1e-12 {
		t.Errorf("k = %v, want %v", c.X().K, want)
	}
	if frame.Price == c.Base().Price {
		t.Error("price pane zooms vertically by default")
	}
	for _, p := range l.Panes[1:] {
		if frame.Indicators[p.ID] != c.Base().Indicators[p.ID] {
			t.Errorf("%s y must not follow a gesture in another pane", p.ID)
		}
	}
	if frame.Volume != c.Base().Volume {
		t.Error("volume never rescales vertically")
	}

	// the anchor stays under the pointer
	before := c.Base().X.Linear().Invert(300)
	if got := frame.X.Linear().Invert(300); math.Abs(got-before) > 1 {
		t.Errorf("time under pointer moved from %v to %v", before, got)
	}
}

func TestDrag_PansAndClamps(t *testing.T) {
	c, l := setup(t, nil)
	c.ScaleTo(layout.PanePrice, layout.Point{X: 480, Y: 150}, 2)
	x0 := c.X().X

	if !c.Start(layout.PanePrice, layout.Point{X: 400, Y: 100}) {
		t.Fatal("start refused")
	}
	if c.State() != Dragging {
		t.Fatalf("state = %v", c.State())
	}
	if c.Start(layout.PanePrice, layout.Point{}) {
		t.Error("nested start must be refused")
	}
	c.Move(layout.Point{X: 420, Y: 100})
	if got := c.X().X; math.Abs(got-(x0+20)) > 1e-9 {
		t.Errorf("X = %v, want %v", got, x0+20)
	}

	c.Move(layout.Point{X: 10000, Y: 100})
	frame := c.Frame()
	b0, _ := c.Base().X.Domain()
	f0, _ := frame.X.Domain()
	if f0.Before(b0) {
		t.Errorf("pan past the data start: %v < %v", f0, b0)
	}
	if got := c.X().InvertX(l.Plot.Left()); math.Abs(got-l.Plot.Left()) > 1e-9 {
		t.Errorf("left edge should be pinned, got %v", got)
	}
	c.End()
	if c.State() != Idle {
		t.Error("end must return to idle")
	}
}

func TestDragAtIdentityIsClamped(t *testing.T) {
	c, _ := setup(t, nil)
	c.Start(layout.PaneMACD, layout.Point{X: 400, Y: 350})
	c.Move(layout.Point{X: 250, Y: 380})
	c.End()
	if c.X() != scale.Identity {
		t.Errorf("unzoomed chart cannot pan, got %+v", c.X())
	}
	if _, ok := c.Y(layout.PaneMACD); ok {
		t.Error("indicator panes do not zoom vertically by default")
	}
}

func TestIndicatorZoomY(t *testing.T) {
	c, _ := setup(t, func(cfg *config.Chart) { cfg.Panes.IndicatorZoomY = true; cfg.Panes.PriceZoomY = false })
	c.Wheel(layout.PaneRSI, layout.Point{X: 300, Y: 430}, -300)
	frame := c.Frame()
	if frame.Indicators[layout.PaneRSI] == c.Base().Indicators[layout.PaneRSI] {
		t.Error("rsi should zoom vertically")
	}
	if frame.Indicators[layout.PaneMACD] != c.Base().Indicators[layout.PaneMACD] {
		t.Error("macd must keep its own y")
	}
	if frame.Price != c.Base().Price {
		t.Error("price y zoom is disabled")
	}
}

func TestPinch(t *testing.T) {
	c, _ := setup(t, nil)
	center := layout.Point{X: 480, Y: 150}
	if !c.StartPinch(layout.PanePrice, center) {
		t.Fatal("pinch refused")
	}
	c.Pinch(center, 3)
	if math.Abs(c.X().K-3) > 1e-12 {
		t.Errorf("k = %v, want 3", c.X().K)
	}
	c.Pinch(center, 50)
	if c.X().K != 5 {
		t.Errorf("k = %v, want 5", c.X().K)
	}
	c.End()

	frame := c.Frame()
	assertLinkedX(t, frame, c.X().RescaleTime(c.Base().X))
}

func TestReset(t *testing.T) {
	c, _ := setup(t, nil)
	c.Wheel(layout.PanePrice, layout.Point{X: 300, Y: 100}, -400)
	c.Start(layout.PanePrice, layout.Point{})
	c.Reset(c.Base())
	if c.X() != scale.Identity || c.State() != Idle {
		t.Errorf("reset left %+v in %v", c.X(), c.State())
	}
	if y, _ := c.Y(layout.PanePrice); y != scale.Identity {
		t.Errorf("reset left price y %+v", y)
	}
}

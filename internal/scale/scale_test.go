package scale

import (
	"errors"
	"math"
	"testing"
	"time"

	"CandleScope/internal/config"
	"CandleScope/internal/layout"
	"CandleScope/internal/model"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestLinear_RoundTrip(t *testing.T) {
	scales := []Linear{
		NewLinear(0, 100, 0, 500),
		NewLinear(95.5, 120.25, 325, 20),
		NewLinear(-3, 7, 400, 465),
		NewLinear(42, 42, 300, 10),
	}
	for _, s := range scales {
		lo, hi := s.Domain()
		for i := 0; i <= 10; i++ {
			v := lo + (hi-lo)*float64(i)/10
			if got := s.Invert(s.Forward(v)); !near(got, v, 1e-9) {
				t.Errorf("%+v: invert(forward(%v)) = %v", s, v, got)
			}
		}
	}
}

func TestLinear_Degenerate(t *testing.T) {
	s := NewLinear(200, 200, 0, 100)
	if s.D0 != 198 || s.D1 != 202 {
		t.Errorf("domain = [%v,%v]", s.D0, s.D1)
	}
	z := NewLinear(0, 0, 0, 100)
	if z.D0 != -1 || z.D1 != 1 {
		t.Errorf("zero domain = [%v,%v]", z.D0, z.D1)
	}
	if v := z.Forward(0); v != 50 {
		t.Errorf("midpoint = %v", v)
	}
}

func TestTime_RoundTrip(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 3, 0)
	s := NewTime(t0, t1, 50, 910)
	for _, d := range []time.Duration{0, 36 * time.Hour, 40 * 24 * time.Hour} {
		v := t0.Add(d)
		if got := s.Invert(s.Forward(v)); !got.Equal(v) {
			t.Errorf("invert(forward(%v)) = %v", v, got)
		}
	}
	single := NewTime(t0, t0, 50, 910)
	if !near(single.Forward(t0), 480, 1e-9) {
		t.Errorf("single instant should sit mid-range, got %v", single.Forward(t0))
	}
}

func TestTransform_Rescale(t *testing.T) {
	base := NewLinear(0, 100, 0, 100)
	if got := Identity.RescaleX(base); got != base {
		t.Errorf("identity rescale changed scale: %+v", got)
	}
	z := Identity.ScaleAt(2, layout.Point{X: 50, Y: 50})
	got := z.RescaleX(base)
	if !near(got.D0, 25, 1e-9) || !near(got.D1, 75, 1e-9) {
		t.Errorf("2x at center: domain [%v,%v]", got.D0, got.D1)
	}
	// the point under the pointer stays fixed
	z = Identity.ScaleAt(4, layout.Point{X: 20, Y: 0})
	if !near(z.RescaleX(base).Invert(20), 20, 1e-9) {
		t.Error("anchor point moved")
	}
}

func TestTransform_Constrain(t *testing.T) {
	view := layout.Rect{X: 50, Y: 20, W: 860, H: 305}

	panned := Transform{K: 1, X: 10}.ConstrainX(view, view)
	if !near(panned.X, 0, 1e-9) {
		t.Errorf("pan at k=1 must snap back, X=%v", panned.X)
	}

	z := Identity.ScaleAt(2, layout.Point{X: 50, Y: 0})
	if c := z.ConstrainX(view, view); !near(c.X, z.X, 1e-9) {
		t.Errorf("in-bounds zoom moved: %v -> %v", z.X, c.X)
	}

	over := Transform{K: 2, X: -5000}.ConstrainX(view, view)
	if !near(over.InvertX(view.Right()), view.Right(), 1e-9) {
		t.Errorf("over-pan must clamp the right edge, got %v", over.InvertX(view.Right()))
	}
}

func TestShift_FollowsFallback(t *testing.T) {
	if got := shift(-3, -10); got != -3 {
		t.Errorf("shift(-3,-10) = %v", got)
	}
	if got := shift(0, -10); got != 0 {
		t.Errorf("shift(0,-10) = %v", got)
	}
	if got := shift(5, 2); got != 2 {
		t.Errorf("shift(5,2) = %v", got)
	}
	if got := shift(-2, 4); got != 1 {
		t.Errorf("shift(-2,4) = %v", got)
	}
}

func testSeries(volume float64) *model.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 10)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: p, High: p + 2, Low: p - 3, Close: p + 1, Volume: volume}
	}
	return model.NewSeries(bars)
}

func TestComputeBase(t *testing.T) {
	l, err := layout.Compute(config.DefaultChart())
	if err != nil {
		t.Fatal(err)
	}
	set, err := ComputeBase(testSeries(1000), l)
	if err != nil {
		t.Fatal(err)
	}
	if set.Price.D0 != 97 || set.Price.D1 != 111 {
		t.Errorf("price domain = [%v,%v]", set.Price.D0, set.Price.D1)
	}
	if set.Price.Forward(111) != 20 || set.Price.Forward(97) != 325 {
		t.Error("price range must run pane bottom to top")
	}
	if set.X.Forward(testSeries(1).First().Time) != 50 {
		t.Error("first bar must map to the plot's left edge")
	}
	if !near(set.Percent.Invert(set.Price.Forward(101)), 0, 1e-9) {
		t.Error("first close should read 0% on the percent axis")
	}

	flat, err := ComputeBase(testSeries(0), l)
	if err != nil {
		t.Fatal(err)
	}
	if !flat.Volume.Collapsed() || flat.Volume.Forward(0) != l.Volume.Bottom() {
		t.Errorf("zero volume must collapse to the band bottom: %+v", flat.Volume)
	}
	if math.IsNaN(flat.Volume.Forward(0)) {
		t.Error("zero volume produced NaN")
	}

	if _, err := ComputeBase(model.NewSeries(nil), l); !errors.Is(err, model.ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestRescale_LinksX(t *testing.T) {
	l, _ := layout.Compute(config.DefaultChart())
	base, _ := ComputeBase(testSeries(10), l)
	macd, _ := l.Pane(layout.PaneMACD)
	base = base.WithIndicator(layout.PaneMACD, -1, 1, macd.Rect)

	x := Identity.ScaleAt(3, layout.Point{X: 300, Y: 100})
	ys := map[layout.PaneID]Transform{layout.PanePrice: Identity.ScaleAt(3, layout.Point{X: 300, Y: 100})}
	cur := Rescale(base, x, ys)

	if cur.Volume != base.Volume {
		t.Error("volume must not be y-rescaled")
	}
	if cur.Indicators[layout.PaneMACD] != base.Indicators[layout.PaneMACD] {
		t.Error("macd y has no transform and must keep its base")
	}
	if cur.Price == base.Price {
		t.Error("price y should follow its transform")
	}
	a0, a1 := cur.X.Domain()
	b0, b1 := base.X.Domain()
	if !a0.After(b0) || !a1.Before(b1) {
		t.Error("zoomed x domain should be inside the base domain")
	}
}

func TestTicks(t *testing.T) {
	got := NewLinear(0, 1, 0, 100).Ticks(5)
	want := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	if len(got) != len(want) {
		t.Fatalf("ticks = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d = %v, want %v", i, got[i], want[i])
		}
	}
	if got := NewLinear(97, 111, 0, 1).Ticks(5); len(got) == 0 || got[0] < 97 || got[len(got)-1] > 111 {
		t.Errorf("ticks out of domain: %v", got)
	}

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := NewTime(t0, t0.AddDate(0, 0, 10), 0, 100).Ticks(5)
	if len(ts) == 0 || len(ts) > 6 {
		t.Fatalf("time ticks = %v", ts)
	}
	for _, tk := range ts {
		if tk.Hour() != 0 || tk.Minute() != 0 {
			t.Errorf("day ticks must sit on midnight: %v", tk)
		}
	}
}

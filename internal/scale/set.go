package scale

import (
	"CandleScope/internal/calculator"
	"CandleScope/internal/layout"
	"CandleScope/internal/model"
)

// Set is every scale needed to draw one frame.
type Set struct {
	X       Time
	Price   Linear
	Volume  Linear
	Percent Linear
	// Indicators holds one y scale per indicator pane, keyed by pane id.
	Indicators map[layout.PaneID]Linear
}

// ComputeBase derives the unzoomed scales from the series extents. The price domain
// spans min(low)..max(high) so every wick is visible. An all-zero volume series maps
// onto the bottom pixel row of the volume band.
func ComputeBase(s *model.Series, l layout.Layout) (Set, error) {
	t0, t1, err := calculator.TimeExtent(s)
	if err != nil {
		return Set{}, err
	}
	lo, hi, err := calculator.PriceExtent(s)
	if err != nil {
		return Set{}, err
	}
	_, vmax, err := calculator.Extent(s, model.FieldVolume)
	if err != nil {
		return Set{}, err
	}
	price, _ := l.Pane(layout.PanePrice)

	set := Set{
		X:          NewTime(t0, t1, l.Plot.Left(), l.Plot.Right()),
		Price:      NewLinear(lo, hi, price.Rect.Bottom(), price.Rect.Top()),
		Indicators: map[layout.PaneID]Linear{},
	}
	if vmax > 0 {
		set.Volume = NewLinear(0, vmax, l.Volume.Bottom(), l.Volume.Top())
	} else {
		set.Volume = Linear{D0: 0, D1: 1, R0: l.Volume.Bottom(), R1: l.Volume.Bottom()}
	}
	set.Percent = PercentOf(set.Price, s.First().Close)
	return set, nil
}

// PercentOf expresses a price scale relative to ref as v/ref - 1.
func PercentOf(price Linear, ref float64) Linear {
	if ref == 0 {
		return Linear{D0: 0, D1: 0, R0: price.R0, R1: price.R1}
	}
	return Linear{D0: price.D0/ref - 1, D1: price.D1/ref - 1, R0: price.R0, R1: price.R1}
}

// WithIndicator returns a copy of s with an indicator pane scale for id.
func (s Set) WithIndicator(id layout.PaneID, lo, hi float64, pane layout.Rect) Set {
	out := s
	out.Indicators = make(map[layout.PaneID]Linear, len(s.Indicators)+1)
	for k, v := range s.Indicators {
		out.Indicators[k] = v
	}
	out.Indicators[id] = NewLinear(lo, hi, pane.Bottom(), pane.Top())
	return out
}

// YFor returns the primary y scale of a pane.
func (s Set) YFor(id layout.PaneID) (Linear, bool) {
	if id == layout.PanePrice {
		return s.Price, true
	}
	y, ok := s.Indicators[id]
	return y, ok
}

// Rescale applies the shared x transform to every pane and each pane's own y
// transform. Volume keeps its base scale, percent follows price. Panes without an
// entry in ys keep their base y.
func Rescale(base Set, x Transform, ys map[layout.PaneID]Transform) Set {
	out := Set{
		X:          x.RescaleTime(base.X),
		Price:      base.Price,
		Volume:     base.Volume,
		Percent:    base.Percent,
		Indicators: make(map[layout.PaneID]Linear, len(base.Indicators)),
	}
	if t, ok := ys[layout.PanePrice]; ok {
		out.Price = t.RescaleY(base.Price)
		out.Percent = t.RescaleY(base.Percent)
	}
	for id, y := range base.Indicators {
		if t, ok := ys[id]; ok {
			y = t.RescaleY(y)
		}
		out.Indicators[id] = y
	}
	return out
}

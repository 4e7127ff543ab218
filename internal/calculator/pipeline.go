package calculator

import (
	"errors"

	"CandleScope/internal/model"
)

// MACDParams configures the MACD pane.
type MACDParams struct {
	Enabled bool
	Fast    int
	Slow    int
	Signal  int
}

// RSIParams configures the RSI pane.
type RSIParams struct {
	Enabled bool
	Period  int
}

// Params is the full indicator parameter set of one chart.
type Params struct {
	SMA  []int
	EMA  []int
	MACD MACDParams
	RSI  RSIParams
}

// DefaultParams mirrors the classic trading layout: SMA 10/20, EMA 50, MACD 12/26/9, RSI 14.
func DefaultParams() Params {
	return Params{
		SMA:  []int{10, 20},
		EMA:  []int{50},
		MACD: MACDParams{Enabled: true, Fast: 12, Slow: 26, Signal: 9},
		RSI:  RSIParams{Enabled: true, Period: 14},
	}
}

// Outputs holds every indicator series for one Series. Overlays share the price pane.
type Outputs struct {
	Overlays []model.IndicatorSeries
	MACD     *MACDResult
	RSI      *model.IndicatorSeries
}

// Find returns the overlay or pane series with the given id.
func (o Outputs) Find(id string) (model.IndicatorSeries, bool) {
	for _, s := range o.Overlays {
		if s.ID == id {
			return s, true
		}
	}
	if o.MACD != nil {
		for _, s := range []model.IndicatorSeries{o.MACD.Line, o.MACD.Signal, o.MACD.Histogram} {
			if s.ID == id {
				return s, true
			}
		}
	}
	if o.RSI != nil && o.RSI.ID == id {
		return *o.RSI, true
	}
	return model.IndicatorSeries{}, false
}

// Compute runs the whole pipeline over the closes of s. Every configured indicator is
// present in the result even when its computation reports an error, so a degraded
// chart can still be drawn. The returned error joins the individual failures, except
// that an empty series reports ErrInsufficientData once.
func Compute(s *model.Series, p Params) (Outputs, error) {
	closes := s.Closes()
	var out Outputs
	var errs []error
	note := func(err error) {
		if err != nil && !errors.Is(err, model.ErrInsufficientData) {
			errs = append(errs, err)
		}
	}

	for _, period := range p.SMA {
		is, err := SMA(closes, period)
		note(err)
		out.Overlays = append(out.Overlays, is)
	}
	for _, period := range p.EMA {
		is, err := EMA(closes, period)
		note(err)
		out.Overlays = append(out.Overlays, is)
	}
	if p.MACD.Enabled {
		m, err := MACD(closes, p.MACD.Fast, p.MACD.Slow, p.MACD.Signal)
		note(err)
		out.MACD = &m
	}
	if p.RSI.Enabled {
		r, err := RSI(closes, p.RSI.Period)
		note(err)
		out.RSI = &r
	}

	if len(closes) == 0 {
		errs = append([]error{model.ErrInsufficientData}, errs...)
	}
	return out, errors.Join(errs...)
}

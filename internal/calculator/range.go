package calculator

import (
	"math"
	"time"

	"github.com/guregu/null/v6"

	"CandleScope/internal/model"
)

// Extent scans every bar and returns the min and max of field.
// High and low are scanned across the whole series so every wick stays in range.
func Extent(s *model.Series, field model.Field) (lo, hi float64, err error) {
	if s.Len() == 0 {
		return 0, 0, model.ErrEmptySeries
	}
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for i := 0; i < s.Len(); i++ {
		v := field.Of(s.At(i))
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}

// PriceExtent returns [min(low), max(high)].
func PriceExtent(s *model.Series) (lo, hi float64, err error) {
	lo, _, err = Extent(s, model.FieldLow)
	if err != nil {
		return 0, 0, err
	}
	_, hi, err = Extent(s, model.FieldHigh)
	return lo, hi, err
}

// TimeExtent returns the first and last timestamps.
func TimeExtent(s *model.Series) (first, last time.Time, err error) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}, model.ErrEmptySeries
	}
	return s.First().Time, s.Last().Time, nil
}

// DefinedExtent returns the min and max over the defined entries of every input.
// ok is false when nothing is defined.
func DefinedExtent(values ...[]null.Float) (lo, hi float64, ok bool) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			if !v.Valid {
				continue
			}
			ok = true
			if v.Float64 < lo {
				lo = v.Float64
			}
			if v.Float64 > hi {
				hi = v.Float64
			}
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Position returns where v sits within [lo, hi], clamped to 0..1. A flat range yields 0.5.
func Position(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	pos := (v - lo) / (hi - lo)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}

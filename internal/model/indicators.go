package model

import (
	"strconv"

	"github.com/guregu/null/v6"
)

// IndicatorKind names a technical indicator family.
type IndicatorKind string

const (
	KindSMA  IndicatorKind = "SMA"
	KindEMA  IndicatorKind = "EMA"
	KindMACD IndicatorKind = "MACD"
	KindRSI  IndicatorKind = "RSI"
)

// IndicatorParams holds the parameters an indicator was computed with.
// Only the fields relevant to the kind are set.
type IndicatorParams struct {
	Period int
	Fast   int
	Slow   int
	Signal int
}

// IndicatorSeries is an indicator output aligned index-for-index with a Series.
// Warm-up entries are invalid (undefined).
type IndicatorSeries struct {
	ID     string
	Kind   IndicatorKind
	Params IndicatorParams
	Values []null.Float
}

// Len returns the number of values.
func (s IndicatorSeries) Len() int { return len(s.Values) }

// At returns the value at i, undefined when i is out of range.
func (s IndicatorSeries) At(i int) null.Float {
	if i < 0 || i >= len(s.Values) {
		return null.Float{}
	}
	return s.Values[i]
}

// FirstDefined returns the index of the first defined value, or -1.
func (s IndicatorSeries) FirstDefined() int {
	for i, v := range s.Values {
		if v.Valid {
			return i
		}
	}
	return -1
}

// IndicatorID builds the stable identifier used for scales and styling, e.g. "sma-20".
func IndicatorID(kind IndicatorKind, period int) string {
	switch kind {
	case KindSMA:
		return "sma-" + strconv.Itoa(period)
	case KindEMA:
		return "ema-" + strconv.Itoa(period)
	case KindMACD:
		return "macd"
	case KindRSI:
		return "rsi"
	default:
		return string(kind)
	}
}

package model

import (
	"sort"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Valid reports whether the bar satisfies low <= min(open,close) <= max(open,close) <= high
// and carries a non-negative volume.
func (b OHLCV) Valid() bool {
	lo, hi := b.Open, b.Close
	if lo > hi {
		lo, hi = hi, lo
	}
	return b.Low <= lo && hi <= b.High && b.Volume >= 0
}

// Bullish is true only when the bar closed strictly above its open.
// A doji (open == close) is bearish.
func (b OHLCV) Bullish() bool { return b.Close > b.Open }

// Field selects one numeric column of a bar.
type Field int

const (
	FieldOpen Field = iota
	FieldHigh
	FieldLow
	FieldClose
	FieldVolume
)

func (f Field) String() string {
	switch f {
	case FieldOpen:
		return "open"
	case FieldHigh:
		return "high"
	case FieldLow:
		return "low"
	case FieldClose:
		return "close"
	case FieldVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Of returns the field value of b.
func (f Field) Of(b OHLCV) float64 {
	switch f {
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldVolume:
		return b.Volume
	default:
		return b.Close
	}
}

// Series is an immutable, strictly time-ordered sequence of bars.
// It is built once per data load and replaced wholesale on the next one.
type Series struct {
	bars []OHLCV
}

// NewSeries wraps bars that are already sorted with strictly increasing timestamps.
// The slice is copied so later writes by the caller cannot reach the series.
func NewSeries(bars []OHLCV) *Series {
	cp := make([]OHLCV, len(bars))
	copy(cp, bars)
	return &Series{bars: cp}
}

// Len returns the number of bars. A nil series has length zero.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bars)
}

// At returns the i-th bar.
func (s *Series) At(i int) OHLCV { return s.bars[i] }

// First returns the oldest bar. The series must not be empty.
func (s *Series) First() OHLCV { return s.bars[0] }

// Last returns the newest bar. The series must not be empty.
func (s *Series) Last() OHLCV { return s.bars[len(s.bars)-1] }

// Closes returns a fresh slice of close prices.
func (s *Series) Closes() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.bars[i].Close
	}
	return out
}

// Nearest returns the index of the bar closest in time to t, or -1 for an empty series.
// Equidistant neighbours resolve to the earlier bar.
func (s *Series) Nearest(t time.Time) int {
	n := s.Len()
	if n == 0 {
		return -1
	}
	i := sort.Search(n, func(i int) bool { return !s.bars[i].Time.Before(t) })
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if t.Sub(s.bars[i-1].Time) <= s.bars[i].Time.Sub(t) {
		return i - 1
	}
	return i
}

// Index returns the index of the bar stamped exactly t.
func (s *Series) Index(t time.Time) (int, bool) {
	n := s.Len()
	i := sort.Search(n, func(i int) bool { return !s.bars[i].Time.Before(t) })
	if i < n && s.bars[i].Time.Equal(t) {
		return i, true
	}
	return -1, false
}

package model

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestOHLCV_Valid(t *testing.T) {
	tests := []struct {
		name string
		bar  OHLCV
		want bool
	}{
		{"normal", OHLCV{Open: 10, High: 12, Low: 9, Close: 11, Volume: 5}, true},
		{"flat", OHLCV{Open: 10, High: 10, Low: 10, Close: 10}, true},
		{"close above high", OHLCV{Open: 10, High: 11, Low: 9, Close: 12}, false},
		{"open below low", OHLCV{Open: 8, High: 11, Low: 9, Close: 10}, false},
		{"negative volume", OHLCV{Open: 10, High: 11, Low: 9, Close: 10, Volume: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bar.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOHLCV_BullishTieIsBearish(t *testing.T) {
	if (OHLCV{Open: 10, Close: 10}).Bullish() {
		t.Error("open == close must classify as bearish")
	}
	if !(OHLCV{Open: 10, Close: 10.01}).Bullish() {
		t.Error("close > open must classify as bullish")
	}
}

func TestSeries_Nearest(t *testing.T) {
	s := NewSeries([]OHLCV{{Time: day(0)}, {Time: day(2)}, {Time: day(4)}})

	tests := []struct {
		at   time.Time
		want int
	}{
		{day(-3), 0},
		{day(0), 0},
		{day(1), 0}, // equidistant resolves to the earlier bar
		{day(1).Add(time.Hour), 1},
		{day(3).Add(-time.Hour), 1},
		{day(4), 2},
		{day(9), 2},
	}
	for _, tt := range tests {
		if got := s.Nearest(tt.at); got != tt.want {
			t.Errorf("Nearest(%s) = %d, want %d", tt.at.Format(time.RFC3339), got, tt.want)
		}
	}

	var empty *Series
	if got := empty.Nearest(day(0)); got != -1 {
		t.Errorf("Nearest on empty series = %d, want -1", got)
	}
}

func TestSeries_CopiesInput(t *testing.T) {
	bars := []OHLCV{{Time: day(0), Close: 1}}
	s := NewSeries(bars)
	bars[0].Close = 99
	if s.At(0).Close != 1 {
		t.Error("series must not alias the caller's slice")
	}
}

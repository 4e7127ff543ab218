package model

import (
	"time"

	"github.com/google/uuid"
)

// TradeKind indicates the side of a trade marker.
type TradeKind string

const (
	TradeBuy  TradeKind = "BUY"
	TradeSell TradeKind = "SELL"
)

// Trade is a buy or sell marker pinned to a bar.
type Trade struct {
	ID    string
	Time  time.Time
	Kind  TradeKind
	Price float64
	Low   float64
	High  float64
}

// NewTrade creates a marker for the given bar.
func NewTrade(kind TradeKind, bar OHLCV) Trade {
	price := bar.Low
	if kind == TradeSell {
		price = bar.High
	}
	return Trade{
		ID:    uuid.NewString(),
		Time:  bar.Time,
		Kind:  kind,
		Price: price,
		Low:   bar.Low,
		High:  bar.High,
	}
}

// Anchor is a point in data space.
type Anchor struct {
	Time  time.Time
	Value float64
}

// Trendline joins two anchors.
type Trendline struct {
	ID    string
	Start Anchor
	End   Anchor
}

// NewTrendline creates a trendline with a fresh ID.
func NewTrendline(start, end Anchor) Trendline {
	return Trendline{ID: uuid.NewString(), Start: start, End: end}
}

// Supstance is a horizontal support or resistance level held between two times.
type Supstance struct {
	ID    string
	Start time.Time
	End   time.Time
	Value float64
}

// NewSupstance creates a support/resistance level with a fresh ID.
func NewSupstance(start, end time.Time, value float64) Supstance {
	return Supstance{ID: uuid.NewString(), Start: start, End: end, Value: value}
}

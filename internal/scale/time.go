package scale

import (
	"math"
	"time"
)

// Time maps instants to pixels through their unix-millisecond value.
type Time struct {
	lin Linear
}

// minTimeSpan pads a single-instant domain on each side.
const minTimeSpan = 12 * time.Hour

func toMillis(t time.Time) float64 { return float64(t.UnixMilli()) }

func fromMillis(v float64) time.Time { return time.UnixMilli(int64(math.Round(v))).UTC() }

// NewTime builds a time scale. A degenerate domain is widened by 12h each side.
func NewTime(t0, t1 time.Time, r0, r1 float64) Time {
	if t0.Equal(t1) {
		t0, t1 = t0.Add(-minTimeSpan), t1.Add(minTimeSpan)
	}
	return Time{lin: Linear{D0: toMillis(t0), D1: toMillis(t1), R0: r0, R1: r1}}
}

// Forward maps an instant to a pixel.
func (s Time) Forward(t time.Time) float64 { return s.lin.Forward(toMillis(t)) }

// Invert maps a pixel to an instant, rounded to the millisecond.
func (s Time) Invert(px float64) time.Time { return fromMillis(s.lin.Invert(px)) }

// Domain returns the visible time window.
func (s Time) Domain() (time.Time, time.Time) {
	lo, hi := s.lin.Domain()
	return fromMillis(lo), fromMillis(hi)
}

// Range returns the pixel span low to high.
func (s Time) Range() (float64, float64) { return s.lin.Range() }

// Linear exposes the underlying millisecond scale.
func (s Time) Linear() Linear { return s.lin }

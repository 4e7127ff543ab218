// Package scale maps data values to pixels and back. Scales are small value types:
// every zoom frame derives fresh scales from a stored base instead of mutating them.
package scale

import "math"

// Linear maps the domain [D0,D1] onto the range [R0,R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a scale, widening a degenerate domain so that Forward never divides
// by zero. A single value v becomes [v-e, v+e] with e = max(|v|/100, 1).
func NewLinear(d0, d1, r0, r1 float64) Linear {
	if d0 == d1 {
		e := math.Max(math.Abs(d0)*0.01, 1)
		d0, d1 = d0-e, d1+e
	}
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Forward maps a domain value to a pixel.
func (s Linear) Forward(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert maps a pixel back into the domain. A collapsed range inverts to D0.
func (s Linear) Invert(px float64) float64 {
	if s.R1 == s.R0 {
		return s.D0
	}
	return s.D0 + (px-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// Domain returns the domain ordered low to high.
func (s Linear) Domain() (lo, hi float64) {
	if s.D0 <= s.D1 {
		return s.D0, s.D1
	}
	return s.D1, s.D0
}

// Range returns the range ordered low to high.
func (s Linear) Range() (lo, hi float64) {
	if s.R0 <= s.R1 {
		return s.R0, s.R1
	}
	return s.R1, s.R0
}

// Collapsed reports whether the range is a single pixel row.
func (s Linear) Collapsed() bool { return s.R0 == s.R1 }

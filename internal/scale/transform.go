package scale

import "CandleScope/internal/layout"

// Transform is a zoom transform: a uniform scale K followed by a translation (X, Y).
// A pixel p in base space appears at p*K + X.
type Transform struct {
	K, X, Y float64
}

// Identity is the unzoomed transform.
var Identity = Transform{K: 1}

func (t Transform) ApplyX(x float64) float64  { return x*t.K + t.X }
func (t Transform) ApplyY(y float64) float64  { return y*t.K + t.Y }
func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.K }
func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// Translate moves by (x, y) in base units.
func (t Transform) Translate(x, y float64) Transform {
	return Transform{K: t.K, X: t.X + t.K*x, Y: t.Y + t.K*y}
}

// ScaleAt rescales to k keeping the base-space point under pixel p fixed.
func (t Transform) ScaleAt(k float64, p layout.Point) Transform {
	bx, by := t.InvertX(p.X), t.InvertY(p.Y)
	return Transform{K: k, X: p.X - bx*k, Y: p.Y - by*k}
}

// RescaleX derives the scale whose domain is visible through t on the x axis.
func (t Transform) RescaleX(s Linear) Linear {
	return Linear{D0: s.Invert(t.InvertX(s.R0)), D1: s.Invert(t.InvertX(s.R1)), R0: s.R0, R1: s.R1}
}

// RescaleY derives the scale whose domain is visible through t on the y axis.
func (t Transform) RescaleY(s Linear) Linear {
	return Linear{D0: s.Invert(t.InvertY(s.R0)), D1: s.Invert(t.InvertY(s.R1)), R0: s.R0, R1: s.R1}
}

// RescaleTime is RescaleX for a time scale.
func (t Transform) RescaleTime(s Time) Time { return Time{lin: t.RescaleX(s.lin)} }

// ConstrainX shifts X so the viewport's horizontal span stays inside extent. When the
// zoomed viewport is wider than the extent it is centered instead.
func (t Transform) ConstrainX(view, extent layout.Rect) Transform {
	d0 := t.InvertX(view.Left()) - extent.Left()
	d1 := t.InvertX(view.Right()) - extent.Right()
	return t.Translate(shift(d0, d1), 0)
}

// ConstrainY is ConstrainX for the vertical span.
func (t Transform) ConstrainY(view, extent layout.Rect) Transform {
	d0 := t.InvertY(view.Top()) - extent.Top()
	d1 := t.InvertY(view.Bottom()) - extent.Bottom()
	return t.Translate(0, shift(d0, d1))
}

// Constrain applies both ConstrainX and ConstrainY.
func (t Transform) Constrain(view, extent layout.Rect) Transform {
	return t.ConstrainX(view, extent).ConstrainY(view, extent)
}

func shift(d0, d1 float64) float64 {
	if d1 > d0 {
		return (d0 + d1) / 2
	}
	if s := min(0, d0); s != 0 {
		return s
	}
	return max(0, d1)
}

// Package layout computes the pixel geometry of a chart: canvas, plot area and the
// vertically stacked panes.
package layout

import (
	"fmt"

	"CandleScope/internal/config"
	"CandleScope/internal/model"
)

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p is inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// PaneID names a stacked pane.
type PaneID string

const (
	PanePrice PaneID = "price"
	PaneMACD  PaneID = "macd"
	PaneRSI   PaneID = "rsi"
)

// Pane is one horizontal band of the plot. Every pane spans the full plot width.
type Pane struct {
	ID    PaneID
	Rect  Rect
	ZoomY bool
}

// Layout is the resolved geometry for one configuration.
type Layout struct {
	Canvas Rect
	Plot   Rect
	Panes  []Pane
	// Volume is the band at the bottom of the price pane used by volume bars.
	Volume Rect
}

// Compute resolves the pane stack. A price height of zero takes whatever the indicator
// panes leave of the plot area.
func Compute(cfg config.Chart) (Layout, error) {
	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	m := cfg.Margin
	plot := Rect{X: m.Left, Y: m.Top, W: w - m.Left - m.Right, H: h - m.Top - m.Bottom}
	if w <= 0 || h <= 0 || plot.W <= 0 || plot.H <= 0 {
		return Layout{}, fmt.Errorf("%w: canvas %gx%g with margins %+v has no plot area",
			model.ErrInvalidConfiguration, w, h, m)
	}

	var ids []PaneID
	if cfg.Indicators.MACD.Enabled {
		ids = append(ids, PaneMACD)
	}
	if cfg.Indicators.RSI.Enabled {
		ids = append(ids, PaneRSI)
	}
	step := cfg.Panes.IndicatorHeight + cfg.Panes.IndicatorPadding
	below := float64(len(ids)) * step

	priceH := cfg.Panes.PriceHeight
	if priceH == 0 {
		priceH = plot.H - below
	}
	if priceH <= 0 || priceH+below > plot.H {
		return Layout{}, fmt.Errorf("%w: panes need %gpx, plot height is %gpx",
			model.ErrInvalidConfiguration, priceH+below, plot.H)
	}

	price := Rect{X: plot.X, Y: plot.Y, W: plot.W, H: priceH}
	volH := priceH * cfg.Panes.VolumeRatio
	out := Layout{
		Canvas: Rect{W: w, H: h},
		Plot:   plot,
		Panes:  []Pane{{ID: PanePrice, Rect: price, ZoomY: cfg.Panes.PriceZoomY}},
		Volume: Rect{X: plot.X, Y: price.Bottom() - volH, W: plot.W, H: volH},
	}
	y := price.Bottom()
	for _, id := range ids {
		y += cfg.Panes.IndicatorPadding
		out.Panes = append(out.Panes, Pane{
			ID:    id,
			Rect:  Rect{X: plot.X, Y: y, W: plot.W, H: cfg.Panes.IndicatorHeight},
			ZoomY: cfg.Panes.IndicatorZoomY,
		})
		y += cfg.Panes.IndicatorHeight
	}
	return out, nil
}

// Pane returns the pane with the given id.
func (l Layout) Pane(id PaneID) (Pane, bool) {
	for _, p := range l.Panes {
		if p.ID == id {
			return p, true
		}
	}
	return Pane{}, false
}

// PaneAt returns the pane under p. Padding gaps and margins belong to no pane.
func (l Layout) PaneAt(p Point) (Pane, bool) {
	for _, pane := range l.Panes {
		if pane.Rect.Contains(p) {
			return pane, true
		}
	}
	return Pane{}, false
}

package chart

import (
	"time"

	"CandleScope/internal/layout"
	"CandleScope/internal/model"
	"CandleScope/internal/overlay"
	"CandleScope/internal/zoom"
)

func (c *Chart) ready() bool { return !c.pending && c.series.Len() > 0 }

// PointerDown grabs an annotation under p or else starts a pan. Either way the
// crosshair is suspended until PointerUp.
func (c *Chart) PointerDown(p layout.Point) {
	if !c.ready() {
		return
	}
	pane, ok := c.layout.PaneAt(p)
	if !ok {
		return
	}
	if pane.ID == layout.PanePrice && c.editor.Grab(c.zoom.Frame(), p) {
		c.editing = true
		c.crosshair.Suspend()
		c.metrics.RecordGesture("annotation")
		return
	}
	if c.zoom.Start(pane.ID, p) {
		c.crosshair.Suspend()
		c.metrics.RecordGesture("drag")
	}
}

// PointerMove drags, pans, or moves the crosshair.
func (c *Chart) PointerMove(p layout.Point) {
	if !c.ready() {
		return
	}
	switch {
	case c.editing:
		c.editor.Drag(c.zoom.Frame(), p)
	case c.zoom.State() == zoom.Dragging:
		c.zoom.Move(p)
	default:
		c.crosshair.Move(c.layout, p)
	}
}

// PointerUp ends a drag and restores the crosshair at p.
func (c *Chart) PointerUp(p layout.Point) {
	if c.editing {
		c.editor.Release()
		c.editing = false
	}
	if c.zoom.State() == zoom.Dragging {
		c.zoom.End()
	}
	c.crosshair.Resume()
	c.crosshair.Move(c.layout, p)
}

// PointerLeave hides the crosshair.
func (c *Chart) PointerLeave() {
	c.crosshair.Leave()
}

// Wheel zooms around p. Positive dy zooms out.
func (c *Chart) Wheel(p layout.Point, dy float64) {
	if !c.ready() || c.zoom.State() != zoom.Idle {
		return
	}
	pane, ok := c.layout.PaneAt(p)
	if !ok {
		return
	}
	c.zoom.Wheel(pane.ID, p, dy)
	c.metrics.RecordGesture("wheel")
}

// PinchStart begins a two-finger zoom centered at center.
func (c *Chart) PinchStart(center layout.Point) {
	if !c.ready() || c.editing {
		return
	}
	pane, ok := c.layout.PaneAt(center)
	if !ok {
		return
	}
	if c.zoom.State() == zoom.Dragging {
		c.zoom.End()
	}
	if c.zoom.StartPinch(pane.ID, center) {
		c.crosshair.Suspend()
		c.metrics.RecordGesture("pinch")
	}
}

// Pinch updates a running pinch with the finger distance ratio since PinchStart.
func (c *Chart) Pinch(center layout.Point, ratio float64) {
	if c.zoom.State() == zoom.PinchZooming {
		c.zoom.Pinch(center, ratio)
	}
}

// PinchEnd finishes a pinch.
func (c *Chart) PinchEnd() {
	if c.zoom.State() == zoom.PinchZooming {
		c.zoom.End()
		c.crosshair.Resume()
	}
}

// ScaleTo zooms to factor k around p, clamped to the configured extent.
func (c *Chart) ScaleTo(p layout.Point, k float64) {
	if !c.ready() {
		return
	}
	pane, ok := c.layout.PaneAt(p)
	if !ok {
		pane, _ = c.layout.Pane(layout.PanePrice)
	}
	c.zoom.ScaleTo(pane.ID, p, k)
}

// Reset returns every pane to the unzoomed view.
func (c *Chart) Reset() {
	c.zoom.Reset(c.zoom.Base())
	c.crosshair.Resume()
	c.metrics.RecordGesture("reset")
}

// AddTrendline adds a draggable trendline between two anchors and returns it.
func (c *Chart) AddTrendline(start, end model.Anchor) model.Trendline {
	tl := model.NewTrendline(start, end)
	c.editor.AddTrendline(tl)
	return tl
}

// AddSupstance adds a draggable support/resistance level and returns it.
func (c *Chart) AddSupstance(start, end time.Time, value float64) model.Supstance {
	s := model.NewSupstance(start, end, value)
	c.editor.AddSupstance(s)
	return s
}

// RemoveAnnotation deletes a trendline or supstance by id.
func (c *Chart) RemoveAnnotation(id string) bool { return c.editor.Remove(id) }

// Trendlines returns the current trendlines.
func (c *Chart) Trendlines() []model.Trendline { return c.editor.Trendlines() }

// Supstances returns the current support/resistance levels.
func (c *Chart) Supstances() []model.Supstance { return c.editor.Supstances() }

// SetTrades replaces the trade markers.
func (c *Chart) SetTrades(trades []model.Trade) {
	c.trades = append([]model.Trade(nil), trades...)
}

// Readout returns the crosshair read-out, if the crosshair is showing.
func (c *Chart) Readout() (overlay.Readout, bool) {
	if !c.ready() {
		return overlay.Readout{}, false
	}
	return c.crosshair.Readout(c.series, c.zoom.Frame(), c.outputs)
}

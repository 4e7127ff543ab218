// Package zoom implements the pan/zoom controller. One x transform is shared by every
// pane; each pane that opts in keeps its own y transform. The base scales are never
// touched: every frame is rebuilt as transform∘base.
package zoom

import (
	"math"

	"CandleScope/internal/config"
	"CandleScope/internal/layout"
	"CandleScope/internal/scale"
)

// State is the gesture state.
type State int

const (
	Idle State = iota
	Dragging
	PinchZooming
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case PinchZooming:
		return "pinch"
	default:
		return "idle"
	}
}

// Controller tracks the zoom transforms of one chart. It is not safe for concurrent use.
type Controller struct {
	layout      layout.Layout
	minK, maxK  float64
	padding     float64
	sensitivity float64

	base  scale.Set
	x     scale.Transform
	y     map[layout.PaneID]scale.Transform
	zoomY map[layout.PaneID]bool

	state State
	pane  layout.PaneID
	last  layout.Point
	// pinch snapshot
	k0x float64
	k0y float64
}

// New creates a controller for the given geometry.
func New(cfg config.Chart, l layout.Layout) *Controller {
	c := &Controller{
		layout:      l,
		minK:        cfg.Zoom.Extent[0],
		maxK:        cfg.Zoom.Extent[1],
		padding:     cfg.Zoom.TranslatePadding,
		sensitivity: cfg.Zoom.WheelSensitivity,
		zoomY:       make(map[layout.PaneID]bool, len(l.Panes)),
	}
	for _, p := range l.Panes {
		c.zoomY[p.ID] = p.ZoomY
	}
	c.resetTransforms()
	return c
}

func (c *Controller) resetTransforms() {
	c.x = scale.Identity
	c.y = make(map[layout.PaneID]scale.Transform, len(c.layout.Panes))
	for _, p := range c.layout.Panes {
		if c.zoomY[p.ID] {
			c.y[p.ID] = scale.Identity
		}
	}
	c.state = Idle
}

// Reset installs a new base and returns every transform to identity.
func (c *Controller) Reset(base scale.Set) {
	c.base = base
	c.resetTransforms()
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// X returns the shared x transform.
func (c *Controller) X() scale.Transform { return c.x }

// Y returns the y transform of a pane and whether the pane zooms vertically.
func (c *Controller) Y(pane layout.PaneID) (scale.Transform, bool) {
	t, ok := c.y[pane]
	return t, ok
}

// Base returns the unzoomed scales.
func (c *Controller) Base() scale.Set { return c.base }

// Frame derives the current scales of every pane from one transform snapshot.
func (c *Controller) Frame() scale.Set {
	return scale.Rescale(c.base, c.x, c.y)
}

func (c *Controller) clamp(k float64) float64 {
	if math.IsNaN(k) {
		return c.minK
	}
	return math.Min(math.Max(k, c.minK), c.maxK)
}

func (c *Controller) extent(view layout.Rect) layout.Rect {
	p := c.padding
	return layout.Rect{X: view.X - p, Y: view.Y - p, W: view.W + 2*p, H: view.H + 2*p}
}

func (c *Controller) constrainX(t scale.Transform) scale.Transform {
	return t.ConstrainX(c.layout.Plot, c.extent(c.layout.Plot))
}

func (c *Controller) constrainY(pane layout.PaneID, t scale.Transform) scale.Transform {
	p, _ := c.layout.Pane(pane)
	return t.ConstrainY(p.Rect, c.extent(p.Rect))
}

// Start begins a drag in pane at p. It reports false if a gesture is already running.
func (c *Controller) Start(pane layout.PaneID, p layout.Point) bool {
	if c.state != Idle {
		return false
	}
	c.state, c.pane, c.last = Dragging, pane, p
	return true
}

// Move pans by the pointer delta since the last event. Only the gesture pane's y moves.
func (c *Controller) Move(p layout.Point) {
	if c.state != Dragging {
		return
	}
	dx, dy := p.X-c.last.X, p.Y-c.last.Y
	c.last = p

	c.x = c.constrainX(scale.Transform{K: c.x.K, X: c.x.X + dx})
	if yt, ok := c.y[c.pane]; ok {
		c.y[c.pane] = c.constrainY(c.pane, scale.Transform{K: yt.K, Y: yt.Y + dy})
	}
}

// StartPinch begins a two-finger gesture centered at center.
func (c *Controller) StartPinch(pane layout.PaneID, center layout.Point) bool {
	if c.state == PinchZooming {
		return false
	}
	c.state, c.pane, c.last = PinchZooming, pane, center
	c.k0x = c.x.K
	c.k0y = 1
	if yt, ok := c.y[pane]; ok {
		c.k0y = yt.K
	}
	return true
}

// Pinch applies the cumulative finger distance ratio since StartPinch and pans with
// the moving center.
func (c *Controller) Pinch(center layout.Point, ratio float64) {
	if c.state != PinchZooming || ratio <= 0 {
		return
	}
	dx, dy := center.X-c.last.X, center.Y-c.last.Y
	c.last = center

	x := scale.Transform{K: c.x.K, X: c.x.X + dx}
	c.x = c.constrainX(scaleX(x, c.clamp(c.k0x*ratio), center.X))
	if yt, ok := c.y[c.pane]; ok {
		yt = scale.Transform{K: yt.K, Y: yt.Y + dy}
		c.y[c.pane] = c.constrainY(c.pane, scaleY(yt, c.clamp(c.k0y*ratio), center.Y))
	}
}

// End finishes the running gesture.
func (c *Controller) End() {
	c.state = Idle
}

// Wheel zooms around p by 2^(-dy*sensitivity).
func (c *Controller) Wheel(pane layout.PaneID, p layout.Point, dy float64) {
	f := math.Pow(2, -dy*c.sensitivity)
	c.zoom(pane, p, c.x.K*f, f)
}

// ScaleTo sets the x scale factor to k around p, clamped to the zoom extent. A pane
// that zooms vertically gets the same factor on y.
func (c *Controller) ScaleTo(pane layout.PaneID, p layout.Point, k float64) {
	c.zoom(pane, p, k, 0)
}

// zoom sets the x factor to kx. For y, f > 0 multiplies the pane's own factor and
// f == 0 uses kx.
func (c *Controller) zoom(pane layout.PaneID, p layout.Point, kx, f float64) {
	c.x = c.constrainX(scaleX(c.x, c.clamp(kx), p.X))
	yt, ok := c.y[pane]
	if !ok {
		return
	}
	ky := kx
	if f > 0 {
		ky = yt.K * f
	}
	c.y[pane] = c.constrainY(pane, scaleY(yt, c.clamp(ky), p.Y))
}

func scaleX(t scale.Transform, k, px float64) scale.Transform {
	return scale.Transform{K: k, X: px - t.InvertX(px)*k}
}

func scaleY(t scale.Transform, k, py float64) scale.Transform {
	return scale.Transform{K: k, Y: py - t.InvertY(py)*k}
}

package overlay

import (
	"math"

	"CandleScope/internal/layout"
	"CandleScope/internal/model"
	"CandleScope/internal/scale"
)

// EditorState is the drag state of the annotation editor.
type EditorState int

const (
	EditorIdle EditorState = iota
	Grabbed
)

type part int

const (
	partStart part = iota
	partEnd
	partBody
)

type grab struct {
	supstance bool
	index     int
	part      part
	// pixel offsets from the pointer to each anchor at grab time
	start layout.Point
	end   layout.Point
}

// Editor owns the draggable annotations and their drag state.
type Editor struct {
	tolerance  float64
	trendlines []model.Trendline
	supstances []model.Supstance
	state      EditorState
	cur        grab
}

// NewEditor creates an editor that grabs within tolerance pixels.
func NewEditor(tolerance float64) *Editor {
	return &Editor{tolerance: tolerance}
}

func (e *Editor) AddTrendline(t model.Trendline) { e.trendlines = append(e.trendlines, t) }
func (e *Editor) AddSupstance(s model.Supstance) { e.supstances = append(e.supstances, s) }

// Trendlines returns a copy of the trendlines.
func (e *Editor) Trendlines() []model.Trendline {
	return append([]model.Trendline(nil), e.trendlines...)
}

// Supstances returns a copy of the support/resistance levels.
func (e *Editor) Supstances() []model.Supstance {
	return append([]model.Supstance(nil), e.supstances...)
}

// Remove deletes the annotation with the given id.
func (e *Editor) Remove(id string) bool {
	if e.state == Grabbed {
		return false
	}
	for i, t := range e.trendlines {
		if t.ID == id {
			e.trendlines = append(e.trendlines[:i], e.trendlines[i+1:]...)
			return true
		}
	}
	for i, s := range e.supstances {
		if s.ID == id {
			e.supstances = append(e.supstances[:i], e.supstances[i+1:]...)
			return true
		}
	}
	return false
}

// State returns the drag state.
func (e *Editor) State() EditorState { return e.state }

func project(s scale.Set, a model.Anchor) layout.Point {
	return layout.Point{X: s.X.Forward(a.Time), Y: s.Price.Forward(a.Value)}
}

func dist(a, b layout.Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func segmentDist(p, a, b layout.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return dist(p, layout.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

func offset(from, to layout.Point) layout.Point {
	return layout.Point{X: to.X - from.X, Y: to.Y - from.Y}
}

// Grab hit-tests p against the annotations under the current scales. Handles win
// over bodies and the most recently added annotation wins ties.
func (e *Editor) Grab(s scale.Set, p layout.Point) bool {
	if e.state == Grabbed {
		return false
	}
	for i := len(e.trendlines) - 1; i >= 0; i-- {
		a, b := project(s, e.trendlines[i].Start), project(s, e.trendlines[i].End)
		switch {
		case dist(p, a) <= e.tolerance:
			e.cur = grab{index: i, part: partStart, start: offset(p, a)}
		case dist(p, b) <= e.tolerance:
			e.cur = grab{index: i, part: partEnd, end: offset(p, b)}
		default:
			continue
		}
		e.state = Grabbed
		return true
	}
	for i := len(e.trendlines) - 1; i >= 0; i-- {
		a, b := project(s, e.trendlines[i].Start), project(s, e.trendlines[i].End)
		if segmentDist(p, a, b) <= e.tolerance {
			e.cur = grab{index: i, part: partBody, start: offset(p, a), end: offset(p, b)}
			e.state = Grabbed
			return true
		}
	}
	for i := len(e.supstances) - 1; i >= 0; i-- {
		sp := e.supstances[i]
		y := s.Price.Forward(sp.Value)
		x1, x2 := s.X.Forward(sp.Start), s.X.Forward(sp.End)
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		if math.Abs(p.Y-y) <= e.tolerance && p.X >= x1-e.tolerance && p.X <= x2+e.tolerance {
			e.cur = grab{supstance: true, index: i, part: partBody, start: layout.Point{Y: y - p.Y}}
			e.state = Grabbed
			return true
		}
	}
	return false
}

func invert(s scale.Set, p, off layout.Point) model.Anchor {
	return model.Anchor{Time: s.X.Invert(p.X + off.X), Value: s.Price.Invert(p.Y + off.Y)}
}

// Drag moves the grabbed annotation so it keeps its pixel offset from p.
func (e *Editor) Drag(s scale.Set, p layout.Point) bool {
	if e.state != Grabbed {
		return false
	}
	g := e.cur
	if g.supstance {
		e.supstances[g.index].Value = s.Price.Invert(p.Y + g.start.Y)
		return true
	}
	tl := &e.trendlines[g.index]
	switch g.part {
	case partStart:
		tl.Start = invert(s, p, g.start)
	case partEnd:
		tl.End = invert(s, p, g.end)
	default:
		tl.Start = invert(s, p, g.start)
		tl.End = invert(s, p, g.end)
	}
	return true
}

// Release drops the grabbed annotation.
func (e *Editor) Release() {
	e.state = EditorIdle
	e.cur = grab{}
}

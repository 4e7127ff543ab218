// Package render projects a series, its scales and indicators into a DrawModel: a flat
// list of pixel-space primitives grouped into clipped layers. Projection is pure; the
// same input always yields an identical model.
package render

import "CandleScope/internal/layout"

// ShapeKind selects the primitive.
type ShapeKind string

const (
	KindRect   ShapeKind = "rect"
	KindLine   ShapeKind = "line"
	KindPath   ShapeKind = "path"
	KindCircle ShapeKind = "circle"
	KindText   ShapeKind = "text"
)

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// None disables a fill or stroke.
const None = "none"

// Shape is one primitive. Which fields apply depends on Kind:
// rect uses X,Y,W,H; line uses X,Y,X2,Y2; path uses Points (and Closed);
// circle uses X,Y,R; text uses X,Y,Text,Anchor.
type Shape struct {
	Kind        ShapeKind
	Class       string
	X, Y        float64
	W, H        float64
	X2, Y2      float64
	Points      []layout.Point
	Closed      bool
	R           float64
	Text        string
	Anchor      string
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
}

// Layer groups shapes drawn under one clip rectangle.
type Layer struct {
	Name   string
	Clip   layout.Rect
	Shapes []Shape
}

// DrawModel is everything a 2D surface needs to paint one frame.
type DrawModel struct {
	Width      float64
	Height     float64
	Background string
	Layers     []Layer
}

// Layer returns the named layer.
func (m DrawModel) Layer(name string) (Layer, bool) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// ShapeCount counts shapes across all layers.
func (m DrawModel) ShapeCount() int {
	n := 0
	for _, l := range m.Layers {
		n += len(l.Shapes)
	}
	return n
}

func rect(class string, x, y, w, h float64, fill string) Shape {
	return Shape{Kind: KindRect, Class: class, X: x, Y: y, W: w, H: h, Fill: fill, Stroke: None}
}

func line(class string, x1, y1, x2, y2 float64, stroke string, width float64) Shape {
	return Shape{Kind: KindLine, Class: class, X: x1, Y: y1, X2: x2, Y2: y2, Fill: None, Stroke: stroke, StrokeWidth: width}
}

func text(class string, x, y float64, s, anchor, fill string) Shape {
	return Shape{Kind: KindText, Class: class, X: x, Y: y, Text: s, Anchor: anchor, Fill: fill, Stroke: None}
}

// Package export paints a render.DrawModel onto a go-chart renderer and writes the
// result as SVG or PNG.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"CandleScope/internal/layout"
	"CandleScope/internal/render"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

const fontSize = 10

// Write renders dm in the given format.
func Write(w io.Writer, dm render.DrawModel, format Format) error {
	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}

	width, height := int(math.Ceil(dm.Width)), int(math.Ceil(dm.Height))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas %dx%d", width, height)
	}
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	p := painter{r: r}
	p.background(dm.Background, width, height)
	for _, l := range dm.Layers {
		for _, s := range l.Shapes {
			if !visible(s, l.Clip) {
				continue
			}
			r.ResetStyle()
			r.SetFont(font)
			r.SetFontSize(fontSize)
			p.shape(s, l.Clip)
		}
	}
	return r.Save(w)
}

// WriteFile renders to path through a temp file and rename, so readers never see a
// partial image.
func WriteFile(path string, dm render.DrawModel, format Format) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".chart-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, dm, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

// FormatOf maps a configured format name, defaulting to SVG.
func FormatOf(name string) Format {
	if strings.EqualFold(name, string(FormatPNG)) {
		return FormatPNG
	}
	return FormatSVG
}

type painter struct {
	r chart.Renderer
}

func (p painter) background(color string, w, h int) {
	c, ok := parseColor(color)
	if !ok {
		return
	}
	p.r.ResetStyle()
	p.r.SetFillColor(c)
	p.r.MoveTo(0, 0)
	p.r.LineTo(w, 0)
	p.r.LineTo(w, h)
	p.r.LineTo(0, h)
	p.r.Close()
	p.r.Fill()
}

func (p painter) shape(s render.Shape, clip layout.Rect) {
	fill, hasFill := parseColor(s.Fill)
	stroke, hasStroke := parseColor(s.Stroke)
	if hasStroke {
		p.r.SetStrokeColor(stroke)
		width := s.StrokeWidth
		if width <= 0 {
			width = 1
		}
		p.r.SetStrokeWidth(width)
		if len(s.Dash) > 0 {
			p.r.SetStrokeDashArray(s.Dash)
		}
	}
	if hasFill {
		p.r.SetFillColor(fill)
	}

	switch s.Kind {
	case render.KindRect:
		x0, y0, x1, y1 := s.X, s.Y, s.X+s.W, s.Y+s.H
		if hasArea(clip) {
			x0, y0 = math.Max(x0, clip.Left()), math.Max(y0, clip.Top())
			x1, y1 = math.Min(x1, clip.Right()), math.Min(y1, clip.Bottom())
		}
		p.polygon([]layout.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}, true)
	case render.KindLine:
		p.segments([]layout.Point{{X: s.X, Y: s.Y}, {X: s.X2, Y: s.Y2}}, clip)
		hasFill = false
	case render.KindPath:
		if s.Closed {
			p.polygon(s.Points, true)
		} else {
			p.segments(s.Points, clip)
			hasFill = false
		}
	case render.KindCircle:
		p.r.Circle(s.R, px(s.X), px(s.Y))
	case render.KindText:
		if hasFill {
			p.r.SetFontColor(fill)
		}
		p.text(s)
		return
	}

	switch {
	case hasFill && hasStroke:
		p.r.FillStroke()
	case hasFill:
		p.r.Fill()
	case hasStroke:
		p.r.Stroke()
	}
}

func (p painter) polygon(pts []layout.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	p.r.MoveTo(px(pts[0].X), px(pts[0].Y))
	for _, pt := range pts[1:] {
		p.r.LineTo(px(pt.X), px(pt.Y))
	}
	if closed {
		p.r.Close()
	}
}

// segments draws an open polyline cut to clip, one subpath per visible piece.
func (p painter) segments(pts []layout.Point, clip layout.Rect) {
	open := false
	for i := 1; i < len(pts); i++ {
		a, b, ok := pts[i-1], pts[i], true
		if hasArea(clip) {
			a, b, ok = clipSegment(a, b, clip)
		}
		if !ok {
			open = false
			continue
		}
		if !open || a != pts[i-1] {
			p.r.MoveTo(px(a.X), px(a.Y))
		}
		p.r.LineTo(px(b.X), px(b.Y))
		open = b == pts[i]
	}
}

// clipSegment is Liang-Barsky against r.
func clipSegment(a, b layout.Point, r layout.Rect) (layout.Point, layout.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - r.Left()},
		{dx, r.Right() - a.X},
		{-dy, a.Y - r.Top()},
		{dy, r.Bottom() - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	ca := layout.Point{X: a.X + t0*dx, Y: a.Y + t0*dy}
	cb := layout.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}
	if t0 == 0 {
		ca = a
	}
	if t1 == 1 {
		cb = b
	}
	return ca, cb, true
}

func hasArea(r layout.Rect) bool { return r.W > 0 && r.H > 0 }

func (p painter) text(s render.Shape) {
	if s.Text == "" {
		return
	}
	x := px(s.X)
	switch s.Anchor {
	case render.AnchorMiddle:
		x -= p.r.MeasureText(s.Text).Width() / 2
	case render.AnchorEnd:
		x -= p.r.MeasureText(s.Text).Width()
	}
	p.r.Text(s.Text, x, px(s.Y))
}

// visible drops shapes entirely outside their layer's clip.
func visible(s render.Shape, clip layout.Rect) bool {
	if !hasArea(clip) {
		return true
	}
	var x0, y0, x1, y1 float64
	switch s.Kind {
	case render.KindRect:
		x0, y0, x1, y1 = s.X, s.Y, s.X+s.W, s.Y+s.H
	case render.KindLine:
		x0, y0 = math.Min(s.X, s.X2), math.Min(s.Y, s.Y2)
		x1, y1 = math.Max(s.X, s.X2), math.Max(s.Y, s.Y2)
	case render.KindPath:
		if len(s.Points) == 0 {
			return false
		}
		x0, y0, x1, y1 = math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
		for _, pt := range s.Points {
			x0, y0 = math.Min(x0, pt.X), math.Min(y0, pt.Y)
			x1, y1 = math.Max(x1, pt.X), math.Max(y1, pt.Y)
		}
	case render.KindCircle:
		x0, y0, x1, y1 = s.X-s.R, s.Y-s.R, s.X+s.R, s.Y+s.R
	default:
		return clip.Contains(layout.Point{X: s.X, Y: s.Y})
	}
	return x1 >= clip.Left() && x0 <= clip.Right() && y1 >= clip.Top() && y0 <= clip.Bottom()
}

func parseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == render.None {
		return drawing.ColorTransparent, false
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#")), true
}

func px(v float64) int { return int(math.Round(v)) }

package render

import "CandleScope/internal/layout"

// EmptyText is shown when there is nothing to draw.
const EmptyText = "No data"

// Empty is the explicit empty state: the pane frames and a centered message.
func Empty(l layout.Layout, st Style) DrawModel {
	p := st.Palette
	var shapes []Shape
	for _, pane := range l.Panes {
		r := pane.Rect
		frame := rect("frame "+string(pane.ID), r.X, r.Y, r.W, r.H, None)
		frame.Stroke = p.Grid
		frame.StrokeWidth = 1
		shapes = append(shapes, frame)
	}
	cx, cy := l.Plot.X+l.Plot.W/2, l.Plot.Y+l.Plot.H/2
	shapes = append(shapes, text("empty", cx, cy, EmptyText, AnchorMiddle, p.Text))
	return DrawModel{
		Width:      l.Canvas.W,
		Height:     l.Canvas.H,
		Background: p.Background,
		Layers:     []Layer{{Name: "empty", Clip: l.Canvas, Shapes: shapes}},
	}
}

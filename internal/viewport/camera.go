package viewport

import "github.com/appengine-ltd/minimap/internal/geom"

// ScreenToContent converts a screen point into natural content coordinates.
func (e *Engine) ScreenToContent(p geom.Point) geom.Point {
	s := e.state
	return geom.Point{
		X: (p.X - e.wrapper.X - s.OffsetX) / s.Scale,
		Y: (p.Y - e.wrapper.Y - s.OffsetY) / s.Scale,
	}
}

// ContentToScreen converts natural content coordinates into a screen point.
func (e *Engine) ContentToScreen(p geom.Point) geom.Point {
	s := e.state
	return geom.Point{
		X: e.wrapper.X + s.OffsetX + p.X*s.Scale,
		Y: e.wrapper.Y + s.OffsetY + p.Y*s.Scale,
	}
}

// Pan moves the content by a screen delta.
func (e *Engine) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	s := e.state
	e.SetTransform(s.Scale, s.OffsetX+dx, s.OffsetY+dy)
}

// ZoomAt multiplies the scale by factor while keeping the content point under
// the screen point p fixed.
func (e *Engine) ZoomAt(p geom.Point, factor float64) {
	factor = geom.Finite(factor, 1)
	s := e.state
	next := geom.Limit(s.Scale*factor, e.minScale, e.maxScale, true)
	if next == s.Scale {
		return
	}
	anchor := e.ScreenToContent(p)
	offsetX := p.X - e.wrapper.X - anchor.X*next
	offsetY := p.Y - e.wrapper.Y - anchor.Y*next
	e.SetTransform(next, offsetX, offsetY)
}

// ZoomCentered zooms around the middle of the wrapper.
func (e *Engine) ZoomCentered(factor float64) {
	center := geom.Point{X: e.wrapper.X + e.wrapper.Width/2, Y: e.wrapper.Y + e.wrapper.Height/2}
	e.ZoomAt(center, factor)
}

// CenterOn scrolls so the content point p sits in the middle of the wrapper.
func (e *Engine) CenterOn(p geom.Point) {
	s := e.state
	e.SetTransform(s.Scale, e.wrapper.Width/2-p.X*s.Scale, e.wrapper.Height/2-p.Y*s.Scale)
}

func (e *Engine) Reset() {
	e.SetTransform(e.initial.Scale, e.initial.OffsetX, e.initial.OffsetY)
}

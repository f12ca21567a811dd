package minimap

import (
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/viewport"
)

// Measure returns the natural (unscaled) size of the tracked content: its
// rendered box divided by the current scale. A missing element, an element
// without a box, or an unusable scale yields the zero size, which callers
// treat as "not ready".
func Measure(el viewport.Element, scale float64) geom.Size {
	if el == nil || geom.Finite(scale, 0) == 0 {
		return geom.Size{}
	}
	box, ok := el.Bounds()
	if !ok {
		return geom.Size{}
	}
	return geom.Size{Width: box.Width / scale, Height: box.Height / scale}
}

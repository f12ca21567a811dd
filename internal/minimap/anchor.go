package minimap

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/minimap/internal/geom"
)

// Corner picks which corner of the host area the minimap hugs.
type Corner int

const (
	TopRight Corner = iota
	TopLeft
	BottomRight
	BottomLeft
)

var cornerNames = map[string]Corner{
	"top-right":    TopRight,
	"top-left":     TopLeft,
	"bottom-right": BottomRight,
	"bottom-left":  BottomLeft,
}

func (c Corner) String() string {
	for name, v := range cornerNames {
		if v == c {
			return name
		}
	}
	return "top-right"
}

func CornerNames() []string {
	return []string{"top-right", "top-left", "bottom-right", "bottom-left"}
}

func ParseCorner(s string) (Corner, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return TopRight, nil
	}
	c, ok := cornerNames[s]
	if !ok {
		return TopRight, fmt.Errorf("unknown corner %q (want one of %s)", s, strings.Join(CornerNames(), ", "))
	}
	return c, nil
}

// Anchor returns the top-left point for a box of the given size placed in a
// corner of area, inset by margin.
func Anchor(area geom.Rect, box geom.Size, corner Corner, margin float64) geom.Point {
	left := area.X + margin
	right := area.X + area.Width - margin - box.Width
	top := area.Y + margin
	bottom := area.Y + area.Height - margin - box.Height
	switch corner {
	case TopLeft:
		return geom.Point{X: left, Y: top}
	case BottomRight:
		return geom.Point{X: right, Y: bottom}
	case BottomLeft:
		return geom.Point{X: left, Y: bottom}
	default:
		return geom.Point{X: right, Y: top}
	}
}

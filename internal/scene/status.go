package scene

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/minimap"
	"github.com/dustin/go-humanize"
)

// Status is the HUD snapshot shared by both frontends.
type Status struct {
	Zoom     float64
	Offset   geom.Point
	Content  geom.Size
	FitScale float64
	Drag     minimap.DragState
	Panning  bool
	Mounted  bool
}

func (s *Scene) Status() Status {
	st := s.Engine.State()
	out := Status{
		Zoom:    st.Scale,
		Offset:  geom.Point{X: st.OffsetX, Y: st.OffsetY},
		Content: s.Engine.ContentSize(),
		Panning: s.opts.Panning,
		Mounted: s.mini != nil,
	}
	if s.mini != nil {
		if g, ok := s.mini.Geometry(); ok {
			out.FitScale = g.FitScale
		}
		out.Drag = s.mini.DragState()
	}
	return out
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (st Status) Lines() []string {
	lines := []string{
		"zoom " + humanize.FtoaWithDigits(st.Zoom*100, 1) + "%",
		fmt.Sprintf("offset %s, %s", humanize.Comma(int64(st.Offset.X)), humanize.Comma(int64(st.Offset.Y))),
		fmt.Sprintf("content %sx%s", humanize.Comma(int64(st.Content.Width)), humanize.Comma(int64(st.Content.Height))),
	}
	if !st.Mounted {
		return append(lines, "minimap off")
	}
	return append(lines,
		"fit "+humanize.FtoaWithDigits(st.FitScale, 4),
		"drag "+st.Drag.String(),
		"panning "+onOff(st.Panning),
	)
}

func (st Status) String() string {
	return strings.Join(st.Lines(), " | ")
}

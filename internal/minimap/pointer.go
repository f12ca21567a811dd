package minimap

import "github.com/appengine-ltd/minimap/internal/geom"

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a single-pointer event in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	X    float64
	Y    float64
}

func (ev PointerEvent) Point() geom.Point {
	return geom.Point{X: ev.X, Y: ev.Y}
}

// PointerSource delivers document-wide pointer events: moves and releases
// arrive regardless of which element the pointer is over.
type PointerSource interface {
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
}

// PointerHub is an in-memory PointerSource. Frontends translate their native
// input into Dispatch calls from the event loop.
type PointerHub struct {
	nextID int
	subs   []pointerSub
}

type pointerSub struct {
	id int
	fn func(PointerEvent)
}

func NewPointerHub() *PointerHub {
	return &PointerHub{}
}

func (h *PointerHub) Subscribe(fn func(PointerEvent)) func() {
	if fn == nil {
		return func() {}
	}
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, pointerSub{id: id, fn: fn})
	return func() {
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

func (h *PointerHub) Dispatch(ev PointerEvent) {
	snapshot := append([]pointerSub(nil), h.subs...)
	for _, s := range snapshot {
		s.fn(ev)
	}
}

func (h *PointerHub) Subscribers() int {
	return len(h.subs)
}

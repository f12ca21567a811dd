// Package viewport implements the pan/zoom engine that owns the primary
// transform state. Content is drawn at natural size, scaled by State.Scale and
// translated by the offsets, inside an on-screen wrapper rectangle.
package viewport

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/minimap/internal/geom"
)

const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 8.0
)

// State is the primary transform. Offsets are in screen pixels relative to
// the wrapper's top-left corner.
type State struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func (s State) String() string {
	return fmt.Sprintf("scale=%.3f offset=(%.1f, %.1f)", s.Scale, s.OffsetX, s.OffsetY)
}

// Element is anything whose rendered screen box can be measured. ok is false
// while the element is not mounted or has no size yet.
type Element interface {
	Bounds() (geom.Rect, bool)
}

// Sized adds the untransformed layout size of an element.
type Sized interface {
	Element
	OffsetSize() geom.Size
}

type Options struct {
	MinScale float64
	MaxScale float64
}

type observer struct {
	id int
	fn func(State)
}

type resizeObserver struct {
	id int
	fn func()
}

type Engine struct {
	state    State
	initial  State
	minScale float64
	maxScale float64

	wrapper    geom.Rect
	content    geom.Size
	generation uint64

	nextID   int
	onChange []observer
	onResize []resizeObserver
}

func NewEngine(opts Options) *Engine {
	minScale := geom.Finite(opts.MinScale, DefaultMinScale)
	maxScale := geom.Finite(opts.MaxScale, DefaultMaxScale)
	if maxScale < minScale {
		minScale, maxScale = maxScale, minScale
	}
	initial := State{Scale: 1}
	return &Engine{
		state:    initial,
		initial:  initial,
		minScale: minScale,
		maxScale: maxScale,
	}
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) ScaleLimits() (float64, float64) {
	return e.minScale, e.maxScale
}

// SetScaleLimits changes the zoom range and pulls the current scale into it.
func (e *Engine) SetScaleLimits(minScale, maxScale float64) {
	minScale = geom.Finite(minScale, e.minScale)
	maxScale = geom.Finite(maxScale, e.maxScale)
	if maxScale < minScale {
		minScale, maxScale = maxScale, minScale
	}
	e.minScale, e.maxScale = minScale, maxScale
	if s := e.state; s.Scale < minScale || s.Scale > maxScale {
		e.SetTransform(geom.Limit(s.Scale, minScale, maxScale, true), s.OffsetX, s.OffsetY)
	}
}

// SetTransform replaces the whole state and notifies observers before it
// returns. A non-positive or non-finite scale is rejected.
func (e *Engine) SetTransform(scale, offsetX, offsetY float64) {
	if geom.Finite(scale, 0) == 0 || math.IsNaN(offsetX) || math.IsNaN(offsetY) ||
		math.IsInf(offsetX, 0) || math.IsInf(offsetY, 0) {
		return
	}
	e.state = State{Scale: scale, OffsetX: offsetX, OffsetY: offsetY}
	e.notifyChange()
}

// OnChange registers fn to run after every transform mutation. Observers run
// synchronously in registration order. The returned func removes fn; calling
// it more than once is harmless.
func (e *Engine) OnChange(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.onChange = append(e.onChange, observer{id: id, fn: fn})
	return func() {
		for i, o := range e.onChange {
			if o.id == id {
				e.onChange = append(e.onChange[:i:i], e.onChange[i+1:]...)
				return
			}
		}
	}
}

// OnResize registers fn to run whenever the wrapper rectangle or the content
// size changes.
func (e *Engine) OnResize(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.onResize = append(e.onResize, resizeObserver{id: id, fn: fn})
	return func() {
		for i, o := range e.onResize {
			if o.id == id {
				e.onResize = append(e.onResize[:i:i], e.onResize[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) ObserverCount() int {
	return len(e.onChange) + len(e.onResize)
}

func (e *Engine) notifyChange() {
	snapshot := append([]observer(nil), e.onChange...)
	for _, o := range snapshot {
		o.fn(e.state)
	}
}

func (e *Engine) notifyResize() {
	snapshot := append([]resizeObserver(nil), e.onResize...)
	for _, o := range snapshot {
		o.fn()
	}
}

// Generation is bumped by every resize or content change. Consumers may key
// cached measurements on it.
func (e *Engine) Generation() uint64 {
	return e.generation
}

func (e *Engine) SetWrapperRect(r geom.Rect) {
	if r == e.wrapper {
		return
	}
	e.wrapper = r
	e.generation++
	e.notifyResize()
}

func (e *Engine) SetContentSize(s geom.Size) {
	if s == e.content {
		return
	}
	e.content = s
	e.generation++
	e.notifyResize()
}

func (e *Engine) WrapperRect() geom.Rect {
	return e.wrapper
}

func (e *Engine) ContentSize() geom.Size {
	return e.content
}

func (e *Engine) ContentElement() Element {
	return contentElement{e: e}
}

func (e *Engine) WrapperElement() Sized {
	return wrapperElement{e: e}
}

type contentElement struct {
	e *Engine
}

func (c contentElement) Bounds() (geom.Rect, bool) {
	if c.e.content.Empty() {
		return geom.Rect{}, false
	}
	s := c.e.state
	return geom.NewRect(
		c.e.wrapper.X+s.OffsetX,
		c.e.wrapper.Y+s.OffsetY,
		c.e.content.Width*s.Scale,
		c.e.content.Height*s.Scale,
	), true
}

type wrapperElement struct {
	e *Engine
}

func (w wrapperElement) Bounds() (geom.Rect, bool) {
	if w.e.wrapper.Size().Empty() {
		return geom.Rect{}, false
	}
	return w.e.wrapper, true
}

func (w wrapperElement) OffsetSize() geom.Size {
	return w.e.wrapper.Size()
}

// TransformString renders a transform the way a style attribute would carry
// it. The minimap stores these next to the numeric geometry.
func TransformString(x, y, scale float64) string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", formatNumber(x), formatNumber(y), formatNumber(scale))
}

func formatNumber(v float64) string {
	if v == 0 {
		// Avoid "-0".
		v = 0
	}
	return fmt.Sprintf("%g", v)
}

// Package minimap keeps a scaled replica of a pan/zoom viewport in sync with
// the primary transform and turns drags on the replica's preview rectangle
// back into viewport offsets.
//
// Everything here runs on the caller's event loop. Observers fire
// synchronously, so a drag step that moves the viewport has already been laid
// out again by the time Step returns.
package minimap

import (
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/viewport"
)

const (
	DefaultWidth       = 200
	DefaultHeight      = 200
	DefaultBorderColor = "red"
)

type Options struct {
	Width       float64
	Height      float64
	BorderColor string
	Panning     bool
}

func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		BorderColor: DefaultBorderColor,
		Panning:     true,
	}
}

func (o Options) normalized() Options {
	o.Width = geom.Finite(o.Width, DefaultWidth)
	o.Height = geom.Finite(o.Height, DefaultHeight)
	if o.BorderColor == "" {
		o.BorderColor = DefaultBorderColor
	}
	return o
}

func (o Options) target() geom.Size {
	return geom.Size{Width: o.Width, Height: o.Height}
}

// Host is the pan/zoom engine the minimap tracks.
type Host interface {
	DragTarget
	OnChange(fn func(viewport.State)) func()
	OnResize(fn func()) func()
	ContentElement() viewport.Element
}

// generationSource is implemented by hosts that count resize events; the
// content measurement is then reused until the generation or the scale moves.
type generationSource interface {
	Generation() uint64
}

type contentCache struct {
	valid      bool
	generation uint64
	scale      float64
	size       geom.Size
}

type Minimap struct {
	host Host
	opts Options

	origin   geom.Point
	geometry Geometry
	ready    bool
	layouts  int
	cache    contentCache

	shadow *viewport.Engine
	mirror *Mirror
	drag   *DragController

	release []func()
	closed  bool
}

// Mount attaches a minimap to host and pointer. Every registration made here
// is released by Close. pointer may be nil for a display-only minimap.
func Mount(host Host, pointer PointerSource, opts Options) *Minimap {
	m := &Minimap{
		host:   host,
		opts:   opts.normalized(),
		shadow: viewport.NewEngine(viewport.Options{}),
	}
	m.mirror = NewMirror(m.shadow, m.FitScale)
	m.drag = NewDragController(host, m.FitScale, mainElement{m: m}, previewElement{m: m}, m.panning)

	// Layout first so the mirror and any later observer see fresh geometry.
	m.release = append(m.release,
		host.OnChange(m.handleChange),
		host.OnChange(m.mirror.Sync),
		host.OnResize(m.refresh),
	)
	if pointer != nil {
		m.release = append(m.release, pointer.Subscribe(m.drag.HandlePointer))
	}
	m.refresh()
	m.mirror.Sync(host.State())
	return m
}

// Close releases all registrations. It is safe to call more than once.
func (m *Minimap) Close() {
	if m == nil || m.closed {
		return
	}
	m.closed = true
	m.drag.Cancel()
	for _, release := range m.release {
		release()
	}
	m.release = nil
	m.ready = false
}

func (m *Minimap) Closed() bool {
	return m.closed
}

func (m *Minimap) handleChange(viewport.State) {
	m.refresh()
}

func (m *Minimap) refresh() {
	if m.closed {
		return
	}
	content := m.contentSize()
	if content.Empty() {
		m.ready = false
		m.geometry = Geometry{}
		return
	}
	fit := Fit(content, m.opts.target())
	m.geometry = Layout(fit, m.host.State(), content)
	m.ready = true
	m.layouts++
}

func (m *Minimap) contentSize() geom.Size {
	scale := m.host.State().Scale
	gen, cacheable := m.host.(generationSource)
	if cacheable && m.cache.valid && m.cache.generation == gen.Generation() && m.cache.scale == scale {
		return m.cache.size
	}
	size := Measure(m.host.ContentElement(), scale)
	if cacheable && !size.Empty() {
		m.cache = contentCache{valid: true, generation: gen.Generation(), scale: scale, size: size}
	}
	return size
}

// FitScale recomputes the fit scale from the current content measurement.
func (m *Minimap) FitScale() float64 {
	return Fit(m.contentSize(), m.opts.target()).Scale
}

func (m *Minimap) panning() bool {
	return m.opts.Panning
}

func (m *Minimap) Options() Options {
	return m.opts
}

// SetOptions applies new options, laying out again when the box changed.
func (m *Minimap) SetOptions(opts Options) {
	opts = opts.normalized()
	resized := opts.Width != m.opts.Width || opts.Height != m.opts.Height
	m.opts = opts
	if !opts.Panning {
		m.drag.Cancel()
	}
	if resized {
		m.refresh()
	}
}

// Place moves the minimap's top-left corner on screen.
func (m *Minimap) Place(origin geom.Point) {
	m.origin = origin
}

// Geometry returns the latest layout; ok is false until the content has been
// measured with a non-zero size.
func (m *Minimap) Geometry() (Geometry, bool) {
	return m.geometry, m.ready
}

func (m *Minimap) MainRect() (geom.Rect, bool) {
	return mainElement{m: m}.Bounds()
}

func (m *Minimap) PreviewRect() (geom.Rect, bool) {
	return previewElement{m: m}.Bounds()
}

// Contains reports whether p falls on the minimap box.
func (m *Minimap) Contains(p geom.Point) bool {
	r, ok := m.MainRect()
	return ok && r.Contains(p)
}

// Shadow is the mirrored transform for secondary consumers.
func (m *Minimap) Shadow() *viewport.Engine {
	return m.shadow
}

func (m *Minimap) DragState() DragState {
	return m.drag.State()
}

func (m *Minimap) Dragging() bool {
	return m.drag.State() == Dragging
}

func (m *Minimap) Layouts() int {
	return m.layouts
}

type mainElement struct {
	m *Minimap
}

func (e mainElement) Bounds() (geom.Rect, bool) {
	m := e.m
	if m.closed || !m.ready || m.geometry.MainSize.Empty() {
		return geom.Rect{}, false
	}
	return geom.NewRect(m.origin.X, m.origin.Y, m.geometry.MainSize.Width, m.geometry.MainSize.Height), true
}

type previewElement struct {
	m *Minimap
}

func (e previewElement) Bounds() (geom.Rect, bool) {
	m := e.m
	if m.closed || !m.ready || m.geometry.PreviewSize.Empty() {
		return geom.Rect{}, false
	}
	g := m.geometry
	return geom.NewRect(
		m.origin.X+g.PreviewOffset.X,
		m.origin.Y+g.PreviewOffset.Y,
		g.PreviewSize.Width,
		g.PreviewSize.Height,
	), true
}

package minimap

import (
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/viewport"
)

type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragTarget is the slice of the host the drag path needs.
type DragTarget interface {
	State() viewport.State
	SetTransform(scale, offsetX, offsetY float64)
	WrapperElement() viewport.Sized
}

// DragController turns pointer events over the preview rectangle into
// primary viewport offsets.
type DragController struct {
	target   DragTarget
	fitScale func() float64
	main     viewport.Element
	preview  viewport.Element
	panning  func() bool

	state DragState
	steps int
}

func NewDragController(target DragTarget, fitScale func() float64, main, preview viewport.Element, panning func() bool) *DragController {
	return &DragController{
		target:   target,
		fitScale: fitScale,
		main:     main,
		preview:  preview,
		panning:  panning,
	}
}

func (d *DragController) State() DragState {
	return d.state
}

// Steps counts drag steps that reached the viewport.
func (d *DragController) Steps() int {
	return d.steps
}

// HandlePointer is subscribed to the document-wide pointer source.
func (d *DragController) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		if d.state == Dragging || !d.hitsPreview(ev.Point()) {
			return
		}
		d.state = Dragging
		// A click without movement still re-centres the view.
		d.Step(ev.X, ev.Y)
	case PointerMove:
		if d.state != Dragging {
			return
		}
		d.Step(ev.X, ev.Y)
	case PointerUp:
		d.state = Idle
	}
}

// Cancel drops an active drag without touching the viewport.
func (d *DragController) Cancel() {
	d.state = Idle
}

// hitsPreview only counts the part of the preview inside the minimap box;
// the rest is clipped away on screen.
func (d *DragController) hitsPreview(p geom.Point) bool {
	if d.preview == nil || d.main == nil {
		return false
	}
	preview, ok := d.preview.Bounds()
	if !ok {
		return false
	}
	mainRect, ok := d.main.Bounds()
	if !ok {
		return false
	}
	visible, ok := preview.Intersect(mainRect)
	return ok && visible.Contains(p)
}

// Step centres the preview rectangle on the pointer and moves the primary
// viewport to match. It reports whether a transform was issued; a step is
// skipped when panning is off or either rectangle cannot be measured.
func (d *DragController) Step(px, py float64) bool {
	if d.panning != nil && !d.panning() {
		return false
	}
	if d.main == nil || d.preview == nil || d.target == nil {
		return false
	}
	scale := 0.0
	if d.fitScale != nil {
		scale = geom.Finite(d.fitScale(), 0)
	}
	if scale == 0 {
		return false
	}
	mainRect, ok := d.main.Bounds()
	if !ok {
		return false
	}
	previewRect, ok := d.preview.Bounds()
	if !ok {
		return false
	}
	vp := d.target.State()

	origin := mainRect.Min()
	relativeX := (px - origin.X) / scale
	relativeY := (py - origin.Y) / scale
	x := (relativeX - previewRect.Width/2) * vp.Scale
	y := (relativeY - previewRect.Height/2) * vp.Scale

	var instance geom.Size
	if w := d.target.WrapperElement(); w != nil {
		instance = w.OffsetSize().Scale(vp.Scale)
	}
	// Reserve twice the preview size on the far edge.
	limitWidth := instance.Width - previewRect.Width*2*vp.Scale
	limitHeight := instance.Height - previewRect.Height*2*vp.Scale

	boundedX := geom.Limit(x, 0, limitWidth, true)
	boundedY := geom.Limit(y, 0, limitHeight, true)

	d.steps++
	d.target.SetTransform(vp.Scale, -boundedX, -boundedY)
	return true
}

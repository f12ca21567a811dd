package minimap

import (
	"strings"
	"testing"

	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/viewport"
	"gonum.org/v1/gonum/floats/scalar"
)

// newTestRig builds an 800x600 viewport showing 800x600 content at scale 2,
// scrolled to (-400,-300), with a default minimap placed at (1000,0).
//
// Fit scale is 0.25, the preview is 100x75 at local (50,37.5), and the drag
// limits are 1200 horizontally and 900 vertically.
func newTestRig(t *testing.T) (*viewport.Engine, *PointerHub, *Minimap) {
	t.Helper()
	e := viewport.NewEngine(viewport.Options{})
	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	e.SetContentSize(geom.Size{Width: 800, Height: 600})
	e.SetTransform(2, -400, -300)

	hub := NewPointerHub()
	m := Mount(e, hub, DefaultOptions())
	m.Place(geom.Point{X: 1000, Y: 0})
	t.Cleanup(m.Close)
	return e, hub, m
}

func TestMountLaysOutImmediately(t *testing.T) {
	_, _, m := newTestRig(t)
	g, ok := m.Geometry()
	if !ok {
		t.Fatalf("expected geometry after mount")
	}
	if g.FitScale != 0.25 || g.MainSize != (geom.Size{Width: 200, Height: 150}) {
		t.Fatalf("unexpected fit %v / main %+v", g.FitScale, g.MainSize)
	}
	preview, ok := m.PreviewRect()
	if !ok {
		t.Fatalf("expected measurable preview")
	}
	if preview != geom.NewRect(1050, 37.5, 100, 75) {
		t.Fatalf("unexpected preview rect %+v", preview)
	}
}

func TestMountWaitsForMeasurableContent(t *testing.T) {
	e := viewport.NewEngine(viewport.Options{})
	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	hub := NewPointerHub()
	m := Mount(e, hub, DefaultOptions())
	defer m.Close()

	if _, ok := m.Geometry(); ok {
		t.Fatalf("expected no geometry before content has a size")
	}
	if m.FitScale() != 1 {
		t.Fatalf("expected fallback fit scale 1, got %v", m.FitScale())
	}
	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 5, Y: 5})
	if m.Dragging() {
		t.Fatalf("expected no drag without a preview rectangle")
	}

	e.SetContentSize(geom.Size{Width: 400, Height: 400})
	if _, ok := m.Geometry(); !ok {
		t.Fatalf("expected geometry once content became measurable")
	}
}

func TestDragMovesViewportByScaledDelta(t *testing.T) {
	e, hub, m := newTestRig(t)

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1100, Y: 75})
	if !m.Dragging() {
		t.Fatalf("expected drag to start on the preview")
	}
	start := e.State()
	if start.OffsetX != -700 || start.OffsetY != -525 {
		t.Fatalf("expected click to centre preview at offsets -700,-525 got %+v", start)
	}

	dx, dy := 8.0, 4.0
	hub.Dispatch(PointerEvent{Kind: PointerMove, X: 1100 + dx, Y: 75 + dy})
	got := e.State()
	fit := m.FitScale()
	wantX := start.OffsetX - dx/fit*start.Scale
	wantY := start.OffsetY - dy/fit*start.Scale
	if !scalar.EqualWithinAbs(got.OffsetX, wantX, tol) || !scalar.EqualWithinAbs(got.OffsetY, wantY, tol) {
		t.Fatalf("expected offsets %v,%v got %v,%v", wantX, wantY, got.OffsetX, got.OffsetY)
	}
	if got.Scale != start.Scale {
		t.Fatalf("drag must not change scale, got %v", got.Scale)
	}

	hub.Dispatch(PointerEvent{Kind: PointerUp, X: -500, Y: -500})
	if m.Dragging() {
		t.Fatalf("expected pointer-up anywhere to end the drag")
	}
}

func TestDragSaturatesAtComputedLimits(t *testing.T) {
	e, hub, _ := newTestRig(t)

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1100, Y: 75})
	hub.Dispatch(PointerEvent{Kind: PointerMove, X: 9000, Y: 9000})
	if got := e.State(); got.OffsetX != -1200 || got.OffsetY != -900 {
		t.Fatalf("expected offsets clamped to -1200,-900 got %+v", got)
	}

	hub.Dispatch(PointerEvent{Kind: PointerMove, X: -9000, Y: -9000})
	if got := e.State(); got.OffsetX != 0 || got.OffsetY != 0 {
		t.Fatalf("expected offsets clamped to 0,0 got %+v", got)
	}
	hub.Dispatch(PointerEvent{Kind: PointerUp})
}

func TestClickWithoutMoveStepsOnce(t *testing.T) {
	e, hub, m := newTestRig(t)
	changes := 0
	e.OnChange(func(viewport.State) { changes++ })

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1060, Y: 50})
	hub.Dispatch(PointerEvent{Kind: PointerUp, X: 1060, Y: 50})
	if changes != 1 || m.drag.Steps() != 1 {
		t.Fatalf("expected exactly one drag step, got %d changes / %d steps", changes, m.drag.Steps())
	}
	if m.DragState() != Idle {
		t.Fatalf("expected idle after release, got %v", m.DragState())
	}

	hub.Dispatch(PointerEvent{Kind: PointerUp, X: 1060, Y: 50})
	hub.Dispatch(PointerEvent{Kind: PointerMove, X: 1070, Y: 60})
	if changes != 1 || m.DragState() != Idle {
		t.Fatalf("expected stray release and idle move to be no-ops, got %d changes", changes)
	}
}

func TestPointerDownOutsidePreviewIsIgnored(t *testing.T) {
	e, hub, m := newTestRig(t)
	before := e.State()

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1010, Y: 140})
	hub.Dispatch(PointerEvent{Kind: PointerMove, X: 1190, Y: 140})

	if m.Dragging() || e.State() != before {
		t.Fatalf("expected press outside the preview to leave the viewport alone")
	}
}

func TestPointerDownOnClippedPreviewIsIgnored(t *testing.T) {
	e, hub, m := newTestRig(t)
	// Zoomed out the preview is 400x300 at (1000,0) and overflows the
	// 200x150 box; only the part inside the box is pressable.
	e.SetTransform(0.5, 0, 0)
	if preview, _ := m.PreviewRect(); preview != geom.NewRect(1000, 0, 400, 300) {
		t.Fatalf("unexpected zoomed out preview %+v", preview)
	}

	before := e.State()
	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1300, Y: 50})
	if m.Dragging() || e.State() != before {
		t.Fatalf("expected press beside the box to be ignored, got dragging=%v state=%+v", m.Dragging(), e.State())
	}
	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1100, Y: 200})
	if m.Dragging() {
		t.Fatalf("expected press below the box to be ignored")
	}

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1100, Y: 50})
	if !m.Dragging() {
		t.Fatalf("expected press on the visible preview to start a drag")
	}
	hub.Dispatch(PointerEvent{Kind: PointerUp})
}

func TestPanningDisabledSkipsSteps(t *testing.T) {
	e, hub, m := newTestRig(t)
	opts := m.Options()
	opts.Panning = false
	m.SetOptions(opts)
	before := e.State()

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1100, Y: 75})
	hub.Dispatch(PointerEvent{Kind: PointerMove, X: 1150, Y: 100})
	if e.State() != before {
		t.Fatalf("expected no transform with panning disabled, got %+v", e.State())
	}
	hub.Dispatch(PointerEvent{Kind: PointerUp})
	if m.Dragging() {
		t.Fatalf("expected idle after release")
	}
}

func TestPreviewIsFreshInsideTheSameStep(t *testing.T) {
	e, hub, m := newTestRig(t)
	var seen geom.Rect
	e.OnChange(func(s viewport.State) {
		seen, _ = m.PreviewRect()
	})

	hub.Dispatch(PointerEvent{Kind: PointerDown, X: 1100, Y: 75})

	// Offsets -700,-525 at preview scale 0.125.
	want := geom.NewRect(1000+87.5, 65.625, 100, 75)
	if seen != want {
		t.Fatalf("expected observer to see preview %+v, got %+v", want, seen)
	}
}

func TestMirrorTracksScaledOffsets(t *testing.T) {
	e, _, m := newTestRig(t)
	e.SetTransform(2, -100, -50)

	got := m.Shadow().State()
	if got.Scale != 2 || got.OffsetX != -25 || got.OffsetY != -12.5 {
		t.Fatalf("expected shadow 2,-25,-12.5 got %+v", got)
	}

	// Content doubles; the next notification must use the new fit scale.
	e.SetContentSize(geom.Size{Width: 1600, Height: 1200})
	e.SetTransform(1, -80, -40)
	got = m.Shadow().State()
	if got.OffsetX != -10 || got.OffsetY != -5 {
		t.Fatalf("expected shadow offsets from fit 0.125, got %+v", got)
	}
	if m.mirror.Syncs() < 3 {
		t.Fatalf("expected mirror to run on mount and every change, got %d", m.mirror.Syncs())
	}
}

func TestCloseReleasesEveryRegistrationOnce(t *testing.T) {
	e := viewport.NewEngine(viewport.Options{})
	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	e.SetContentSize(geom.Size{Width: 800, Height: 600})
	hub := NewPointerHub()

	keep := e.OnChange(func(viewport.State) {})
	defer keep()

	m := Mount(e, hub, DefaultOptions())
	if hub.Subscribers() != 1 || e.ObserverCount() != 4 {
		t.Fatalf("expected registrations after mount, got hub=%d engine=%d", hub.Subscribers(), e.ObserverCount())
	}
	m.Close()
	m.Close()
	if !m.Closed() {
		t.Fatalf("expected minimap to report closed")
	}
	if hub.Subscribers() != 0 || e.ObserverCount() != 1 {
		t.Fatalf("expected only the unrelated observer left, got hub=%d engine=%d", hub.Subscribers(), e.ObserverCount())
	}

	layouts := m.Layouts()
	e.SetTransform(3, 0, 0)
	if m.Layouts() != layouts {
		t.Fatalf("expected no layout after close")
	}
	if _, ok := m.MainRect(); ok {
		t.Fatalf("expected closed minimap to be unmeasurable")
	}

	// Remounting starts from a clean slate.
	again := Mount(e, hub, DefaultOptions())
	defer again.Close()
	if hub.Subscribers() != 1 {
		t.Fatalf("expected one pointer subscriber after remount, got %d", hub.Subscribers())
	}
}

func TestSetOptionsResizesBox(t *testing.T) {
	_, _, m := newTestRig(t)
	m.SetOptions(Options{Width: 400, Height: 100, Panning: true})
	g, _ := m.Geometry()
	if g.FitScale != 100.0/600 || g.MainSize.Height != 100 {
		t.Fatalf("expected height-bound fit after resize, got %v %+v", g.FitScale, g.MainSize)
	}
	if m.Options().BorderColor != DefaultBorderColor {
		t.Fatalf("expected default border colour to fill in, got %q", m.Options().BorderColor)
	}
}

type countingHost struct {
	*viewport.Engine
	measured int
}

func (h *countingHost) ContentElement() viewport.Element {
	h.measured++
	return h.Engine.ContentElement()
}

func TestContentMeasurementCachedPerGenerationAndScale(t *testing.T) {
	e := viewport.NewEngine(viewport.Options{})
	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	e.SetContentSize(geom.Size{Width: 800, Height: 600})
	host := &countingHost{Engine: e}
	m := Mount(host, nil, DefaultOptions())
	defer m.Close()

	base := host.measured
	for i := 0; i < 5; i++ {
		m.FitScale()
	}
	if host.measured != base {
		t.Fatalf("expected cached measurement, measured %d more times", host.measured-base)
	}

	e.SetTransform(1.5, 0, 0)
	if host.measured == base {
		t.Fatalf("expected scale change to force a new measurement")
	}
	afterScale := host.measured
	e.SetContentSize(geom.Size{Width: 1000, Height: 600})
	if host.measured == afterScale {
		t.Fatalf("expected resize to force a new measurement")
	}
}

func TestAnchorCorners(t *testing.T) {
	area := geom.NewRect(0, 0, 1000, 800)
	box := geom.Size{Width: 200, Height: 150}
	cases := map[Corner]geom.Point{
		TopRight:    {X: 784, Y: 16},
		TopLeft:     {X: 16, Y: 16},
		BottomRight: {X: 784, Y: 634},
		BottomLeft:  {X: 16, Y: 634},
	}
	for corner, want := range cases {
		if got := Anchor(area, box, corner, 16); got != want {
			t.Fatalf("%v: expected %+v got %+v", corner, want, got)
		}
	}
	if _, err := ParseCorner("middle"); err == nil || !strings.Contains(err.Error(), "bottom-left") {
		t.Fatalf("expected unknown corner to fail listing the choices, got %v", err)
	}
	if c, err := ParseCorner(" Bottom-Left "); err != nil || c != BottomLeft {
		t.Fatalf("expected bottom-left, got %v %v", c, err)
	}
}

package viewport

import (
	"math"
	"testing"

	"github.com/appengine-ltd/minimap/internal/geom"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func TestSetTransformNotifiesInRegistrationOrder(t *testing.T) {
	e := NewEngine(Options{})
	var order []string
	e.OnChange(func(State) { order = append(order, "first") })
	e.OnChange(func(State) { order = append(order, "second") })

	e.SetTransform(2, -10, -20)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected notification order %v", order)
	}
	if got := e.State(); got != (State{Scale: 2, OffsetX: -10, OffsetY: -20}) {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestSetTransformRejectsInvalidScale(t *testing.T) {
	e := NewEngine(Options{})
	calls := 0
	e.OnChange(func(State) { calls++ })
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		e.SetTransform(s, 5, 5)
	}
	e.SetTransform(1, math.NaN(), 0)
	if calls != 0 {
		t.Fatalf("expected invalid transforms to be ignored, got %d notifications", calls)
	}
	if e.State().Scale != 1 {
		t.Fatalf("expected initial scale to survive, got %v", e.State().Scale)
	}
}

func TestUnsubscribeIsIdempotentAndSafeDuringNotify(t *testing.T) {
	e := NewEngine(Options{})
	calls := 0
	var unsub func()
	unsub = e.OnChange(func(State) {
		calls++
		unsub()
	})
	other := 0
	e.OnChange(func(State) { other++ })

	e.SetTransform(1.5, 0, 0)
	e.SetTransform(2, 0, 0)
	unsub()

	if calls != 1 {
		t.Fatalf("expected self-removing observer to run once, ran %d", calls)
	}
	if other != 2 {
		t.Fatalf("expected remaining observer to run twice, ran %d", other)
	}
	if e.ObserverCount() != 1 {
		t.Fatalf("expected one observer left, got %d", e.ObserverCount())
	}
}

func TestResizeBumpsGenerationAndNotifies(t *testing.T) {
	e := NewEngine(Options{})
	resized := 0
	e.OnResize(func() { resized++ })

	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	e.SetContentSize(geom.Size{Width: 3200, Height: 2400})
	e.SetContentSize(geom.Size{Width: 3200, Height: 2400})

	if resized != 2 {
		t.Fatalf("expected two resize notifications, got %d", resized)
	}
	if e.Generation() != 2 {
		t.Fatalf("expected generation 2, got %d", e.Generation())
	}
}

func TestContentElementReportsScaledBox(t *testing.T) {
	e := NewEngine(Options{})
	if _, ok := e.ContentElement().Bounds(); ok {
		t.Fatalf("expected content without size to be unmeasurable")
	}
	e.SetWrapperRect(geom.NewRect(16, 8, 800, 600))
	e.SetContentSize(geom.Size{Width: 400, Height: 300})
	e.SetTransform(2, -50, -25)

	box, ok := e.ContentElement().Bounds()
	if !ok {
		t.Fatalf("expected content to be measurable")
	}
	want := geom.NewRect(-34, -17, 800, 600)
	if box != want {
		t.Fatalf("expected %+v, got %+v", want, box)
	}
	if got := e.WrapperElement().OffsetSize(); got != (geom.Size{Width: 800, Height: 600}) {
		t.Fatalf("unexpected wrapper offset size %+v", got)
	}
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	e := NewEngine(Options{MinScale: 0.5, MaxScale: 4})
	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	e.SetContentSize(geom.Size{Width: 2000, Height: 1500})
	cursor := geom.Point{X: 300, Y: 200}
	before := e.ScreenToContent(cursor)

	e.ZoomAt(cursor, 2)

	after := e.ScreenToContent(cursor)
	if !scalar.EqualWithinAbs(before.X, after.X, tol) || !scalar.EqualWithinAbs(before.Y, after.Y, tol) {
		t.Fatalf("expected anchor %+v to stay under cursor, got %+v", before, after)
	}
	if e.State().Scale != 2 {
		t.Fatalf("expected scale 2, got %v", e.State().Scale)
	}

	e.ZoomAt(cursor, 100)
	if e.State().Scale != 4 {
		t.Fatalf("expected scale clamped to 4, got %v", e.State().Scale)
	}
}

func TestPanCenterAndReset(t *testing.T) {
	e := NewEngine(Options{})
	e.SetWrapperRect(geom.NewRect(0, 0, 800, 600))
	e.Pan(-30, 12)
	if got := e.State(); got.OffsetX != -30 || got.OffsetY != 12 {
		t.Fatalf("unexpected pan result %+v", got)
	}

	e.CenterOn(geom.Point{X: 1000, Y: 500})
	mid := e.ContentToScreen(geom.Point{X: 1000, Y: 500})
	if !scalar.EqualWithinAbs(mid.X, 400, tol) || !scalar.EqualWithinAbs(mid.Y, 300, tol) {
		t.Fatalf("expected centered point at 400,300 got %+v", mid)
	}

	e.Reset()
	if got := e.State(); got != (State{Scale: 1}) {
		t.Fatalf("expected reset state, got %+v", got)
	}
}

func TestTransformString(t *testing.T) {
	if got := TransformString(12.5, 6.25, 1); got != "translate(12.5px, 6.25px) scale(1)" {
		t.Fatalf("unexpected transform string %q", got)
	}
	if got := TransformString(math.Copysign(0, -1), 0, 0.25); got != "translate(0px, 0px) scale(0.25)" {
		t.Fatalf("unexpected transform string %q", got)
	}
}

func TestSetScaleLimitsPullsScaleIntoRange(t *testing.T) {
	e := NewEngine(Options{})
	e.SetTransform(6, 10, 20)
	calls := 0
	e.OnChange(func(State) { calls++ })

	e.SetScaleLimits(0.5, 4)
	if got := e.State(); got != (State{Scale: 4, OffsetX: 10, OffsetY: 20}) {
		t.Fatalf("expected scale pulled to 4, got %+v", got)
	}
	if calls != 1 {
		t.Fatalf("expected one change notification, got %d", calls)
	}

	e.SetScaleLimits(8, 2)
	if lo, hi := e.ScaleLimits(); lo != 2 || hi != 8 {
		t.Fatalf("expected swapped limits 2..8, got %v..%v", lo, hi)
	}
	if calls != 1 {
		t.Fatalf("expected no notification when scale already fits, got %d", calls)
	}
}

package gui

import (
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/minimap"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// mouseInput is one frame of polled mouse state.
type mouseInput struct {
	Pos          geom.Point
	LeftPressed  bool
	LeftDown     bool
	LeftReleased bool
	PanPressed   bool
	PanDown      bool
	Wheel        float64
}

func pollMouse() mouseInput {
	pos := rl.GetMousePosition()
	return mouseInput{
		Pos:          geom.Point{X: float64(pos.X), Y: float64(pos.Y)},
		LeftPressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		LeftDown:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		LeftReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		PanPressed:   rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsMouseButtonPressed(rl.MouseButtonMiddle),
		PanDown:      rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		Wheel:        float64(rl.GetMouseWheelMove()),
	}
}

// handleMouse feeds the left button to the minimap as a window-wide pointer
// and uses the right or middle button and the wheel for the main view.
func (ui *viewUI) handleMouse(in mouseInput) {
	s := ui.scene
	switch {
	case in.LeftPressed:
		s.Dispatch(minimap.PointerDown, in.Pos.X, in.Pos.Y)
	case in.LeftDown && in.Pos != ui.lastMouse:
		s.Dispatch(minimap.PointerMove, in.Pos.X, in.Pos.Y)
	}
	if in.LeftReleased {
		s.Dispatch(minimap.PointerUp, in.Pos.X, in.Pos.Y)
	}

	switch {
	case in.PanPressed:
		ui.panning = !s.OverMinimap(in.Pos)
	case !in.PanDown:
		ui.panning = false
	case ui.panning && !s.Dragging():
		s.Pan(in.Pos.X-ui.lastMouse.X, in.Pos.Y-ui.lastMouse.Y)
	}

	if in.Wheel != 0 && !s.OverMinimap(in.Pos) {
		s.Wheel(in.Pos, in.Wheel)
	}
	ui.lastMouse = in.Pos
}

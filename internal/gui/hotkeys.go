package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type hotkeyAction int

const (
	actionNone hotkeyAction = iota
	actionTogglePanning
	actionResetView
	actionToggleMinimap
	actionZoomIn
	actionZoomOut
	actionPanLeft
	actionPanRight
	actionPanUp
	actionPanDown
	actionSaveConfig
	actionClassicUI
	actionQuit
)

// arrowPanStep is how far one arrow key press scrolls, in screen pixels.
const arrowPanStep = 48

func pressedAction() hotkeyAction {
	switch {
	case ModifiedPressedKey(rl.KeyS):
		return actionSaveConfig
	case rl.IsKeyPressed(rl.KeyEscape):
		return actionQuit
	case rl.IsKeyPressed(rl.KeyP):
		return actionTogglePanning
	case rl.IsKeyPressed(rl.KeyR):
		return actionResetView
	case rl.IsKeyPressed(rl.KeyM):
		return actionToggleMinimap
	case rl.IsKeyPressed(rl.KeyC):
		return actionClassicUI
	case rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd):
		return actionZoomIn
	case rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract):
		return actionZoomOut
	case rl.IsKeyPressed(rl.KeyLeft):
		return actionPanLeft
	case rl.IsKeyPressed(rl.KeyRight):
		return actionPanRight
	case rl.IsKeyPressed(rl.KeyUp):
		return actionPanUp
	case rl.IsKeyPressed(rl.KeyDown):
		return actionPanDown
	}
	return actionNone
}

func (ui *viewUI) applyAction(action hotkeyAction, now time.Time) {
	s := ui.scene
	switch action {
	case actionTogglePanning:
		if s.TogglePanning() {
			ui.setStatus("Minimap panning on", false, now)
		} else {
			ui.setStatus("Minimap panning off", false, now)
		}
	case actionResetView:
		s.ResetView()
		ui.centerView()
	case actionToggleMinimap:
		if s.ToggleMinimap() {
			ui.setStatus("Minimap mounted", false, now)
		} else {
			ui.setStatus("Minimap unmounted", false, now)
		}
	case actionZoomIn:
		s.ZoomIn()
	case actionZoomOut:
		s.ZoomOut()
	case actionPanLeft:
		s.Pan(arrowPanStep, 0)
	case actionPanRight:
		s.Pan(-arrowPanStep, 0)
	case actionPanUp:
		s.Pan(0, arrowPanStep)
	case actionPanDown:
		s.Pan(0, -arrowPanStep)
	case actionSaveConfig:
		ui.saveConfig(now)
	case actionClassicUI:
		ui.launchClassic = true
	case actionQuit:
		ui.quit = true
	}
}

func ModifiedPressedKey(key int32) bool {
	return (ctrlDown() || superDown()) && rl.IsKeyPressed(key)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func superDown() bool {
	return rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}

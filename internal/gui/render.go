package gui

import (
	"fmt"
	"image"

	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/terrain"
	"github.com/appengine-ltd/minimap/internal/viewport"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudPadding   = 16
	minimapFrame = 3
)

// terrainImage paints one pixel per cell; the texture is scaled up by the
// cell size when drawn.
func terrainImage(m terrain.Map) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			img.SetRGBA(x, y, terrain.Color(m.Cells[y*m.Width+x]))
		}
	}
	return img
}

func toRect(r geom.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height))
}

// contentDest is the screen rectangle the whole content occupies under the
// engine's current transform.
func contentDest(e *viewport.Engine) rl.Rectangle {
	st := e.State()
	wrapper := e.WrapperRect()
	content := e.ContentSize().Scale(st.Scale)
	return toRect(geom.NewRect(wrapper.X+st.OffsetX, wrapper.Y+st.OffsetY, content.Width, content.Height))
}

func inflate(r rl.Rectangle, by float32) rl.Rectangle {
	return rl.NewRectangle(r.X-by, r.Y-by, r.Width+by*2, r.Height+by*2)
}

func (ui *viewUI) ensureTexture() {
	rev := ui.scene.TerrainRevision()
	if ui.texture.ID != 0 && ui.textureRev == rev {
		return
	}
	if ui.texture.ID != 0 {
		rl.UnloadTexture(ui.texture)
	}
	img := rl.NewImageFromImage(terrainImage(ui.scene.Terrain))
	ui.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(ui.texture, rl.FilterPoint)
	ui.textureRev = rev
}

func (ui *viewUI) textureSource() rl.Rectangle {
	return rl.NewRectangle(0, 0, float32(ui.scene.Terrain.Width), float32(ui.scene.Terrain.Height))
}

func (ui *viewUI) draw() {
	ui.drawViewport()
	ui.drawMinimap()
	ui.drawHUD()
}

func (ui *viewUI) drawViewport() {
	if ui.texture.ID == 0 {
		return
	}
	rl.DrawTexturePro(ui.texture, ui.textureSource(), contentDest(ui.scene.Engine), rl.Vector2{}, 0, rl.White)
}

func (ui *viewUI) drawMinimap() {
	chrome, ok := ui.scene.Chrome()
	if !ok || ui.texture.ID == 0 {
		return
	}
	main := toRect(chrome.Main)
	rl.DrawRectangleRec(inflate(main, minimapFrame), colorPanel)
	rl.DrawTexturePro(ui.texture, ui.textureSource(), main, rl.Vector2{}, 0, rl.White)

	// The preview may run past the box when the view is scrolled off the
	// content edge.
	rl.BeginScissorMode(int32(main.X), int32(main.Y), int32(main.Width), int32(main.Height))
	preview := toRect(chrome.Preview)
	rl.DrawRectangleRec(preview, rl.Fade(AppTheme.Preview, 0.12))
	lineColor := AppTheme.Preview
	if ui.scene.Dragging() {
		lineColor = colorAccent
	}
	rl.DrawRectangleLinesEx(preview, 1.5, lineColor)
	rl.EndScissorMode()

	rl.DrawRectangleLinesEx(main, 2, chrome.Border)
}

func (ui *viewUI) versionLine() string {
	if ui.cfg.Version == "" {
		return "dev"
	}
	return fmt.Sprintf("v%s  (%s)  %s", ui.cfg.Version, ui.cfg.Commit, ui.cfg.BuildDate)
}

func (ui *viewUI) drawHUD() {
	lines := ui.scene.Status().Lines()
	lines = append(lines, "P panning  R reset  M minimap  +/- zoom  C terminal  Esc quit", ui.versionLine())
	hints := len(lines) - 2

	lineH := lineHeight(textSmall)
	width := int32(0)
	for _, line := range lines {
		width = max(width, hud.width(line, textSmall))
	}
	height := lineH*int32(len(lines)) + spaceS*2
	panel := rl.NewRectangle(hudPadding, float32(ui.height-hudPadding-height), float32(width+spaceM*2), float32(height))
	drawPanel(panel, "")
	y := int32(panel.Y) + spaceS
	for i, line := range lines {
		clr := colorText
		if i >= hints {
			clr = colorDim
		}
		hud.draw(line, int32(panel.X)+spaceM, y, textSmall, clr)
		y += lineH
	}

	if ui.status != "" {
		clr := colorAccent
		if ui.statusWarn {
			clr = colorWarn
		}
		hud.draw(ui.status, hudPadding, hudPadding, textBody, clr)
	}
}

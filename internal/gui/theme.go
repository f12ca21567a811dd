package gui

import (
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Theme struct {
	Background    rl.Color
	Panel         rl.Color
	Border        rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	Accent        rl.Color
	Warning       rl.Color
	Preview       rl.Color
}

const (
	spaceS = 8
	spaceM = 12

	textSmall int32 = 16
	textBody  int32 = 18
)

var AppTheme = Theme{
	Background:    rl.NewColor(0x14, 0x1A, 0x1F, 255), // #141A1F
	Panel:         rl.NewColor(0x1C, 0x23, 0x29, 235), // #1C2329
	Border:        rl.NewColor(0x2E, 0x3A, 0x40, 255), // #2E3A40
	TextPrimary:   rl.NewColor(0xE8, 0xE2, 0xD8, 255), // #E8E2D8
	TextSecondary: rl.NewColor(0xA6, 0xAD, 0xB1, 255), // #A6ADB1
	Accent:        rl.NewColor(0xD4, 0x6A, 0x1E, 255), // #D46A1E
	Warning:       rl.NewColor(0xC1, 0x8B, 0x2F, 255), // #C18B2F
	Preview:       rl.NewColor(0xF2, 0xF2, 0xF2, 255),
}

var (
	colorPanel  = AppTheme.Panel
	colorBorder = AppTheme.Border
	colorText   = AppTheme.TextPrimary
	colorDim    = AppTheme.TextSecondary
	colorAccent = AppTheme.Accent
	colorWarn   = AppTheme.Warning
)

// drawPanel draws a rounded panel. The title is skipped when empty.
func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRounded(rect, 0.08, 8, colorPanel)
	rl.DrawRectangleRoundedLinesEx(rect, 0.08, 8, 1.5, colorBorder)
	if title != "" {
		hud.draw(title, int32(rect.X)+spaceM, int32(rect.Y)+spaceS, textSmall, colorAccent)
	}
}

// hudFonts are tried in order; monospace first so the numbers in the status
// lines do not jitter while dragging.
var hudFonts = []string{
	"assets/fonts/JetBrainsMono-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/System/Library/Fonts/Menlo.ttc",
}

// hudFont is the single face used for every overlay string. The zero value
// draws with raylib's built-in font.
type hudFont struct {
	face  rl.Font
	owned bool
}

var hud hudFont

func (f *hudFont) load(paths []string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		face := rl.LoadFontEx(path, 32, nil, 0)
		if face.Texture.ID == 0 {
			continue
		}
		rl.SetTextureFilter(face.Texture, rl.FilterBilinear)
		f.face, f.owned = face, true
		return
	}
}

func (f *hudFont) unload() {
	if f.owned {
		rl.UnloadFont(f.face)
	}
	*f = hudFont{}
}

func (f hudFont) draw(text string, x, y, size int32, clr rl.Color) {
	if !f.owned {
		rl.DrawText(text, x, y, size, clr)
		return
	}
	rl.DrawTextEx(f.face, text, rl.Vector2{X: float32(x), Y: float32(y)}, float32(size), 1, clr)
}

func (f hudFont) width(text string, size int32) int32 {
	if !f.owned {
		return int32(rl.MeasureText(text, size))
	}
	return int32(math.Ceil(float64(rl.MeasureTextEx(f.face, text, float32(size), 1).X)))
}

func lineHeight(size int32) int32 {
	return int32(math.Round(float64(max(size, 1)) * 1.34))
}

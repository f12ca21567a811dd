package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/minimap/internal/geom"
)

var (
	voidColor    = color.RGBA{R: 0x0B, G: 0x0F, B: 0x13, A: 255}
	frameColor   = color.RGBA{R: 0x1C, G: 0x23, B: 0x29, A: 255}
	previewColor = color.RGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 255}
	dragColor    = color.RGBA{R: 0xD4, G: 0x6A, B: 0x1E, A: 255}
)

// frame rasterises the viewport and the minimap at one pixel per half-block.
func (m viewModel) frame() *image.RGBA {
	w, h := m.frameSize()
	dc := gg.NewContext(w, h)
	dc.SetColor(voidColor)
	dc.Clear()
	img := dc.Image().(*image.RGBA)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c, ok := m.scene.ScreenColor(pixelCenter(x, y)); ok {
				img.SetRGBA(x, y, c)
			}
		}
	}

	chrome, ok := m.scene.Chrome()
	if !ok {
		return img
	}
	main := chrome.Main
	dc.SetColor(frameColor)
	dc.DrawRectangle(main.X-1, main.Y-1, main.Width+2, main.Height+2)
	dc.Fill()
	x0, y0 := int(main.X), int(main.Y)
	x1, y1 := min(w, int(main.X+main.Width)+1), min(h, int(main.Y+main.Height)+1)
	for y := max(0, y0); y < y1; y++ {
		for x := max(0, x0); x < x1; x++ {
			if c, ok := m.scene.MinimapColor(pixelCenter(x, y)); ok {
				img.SetRGBA(x, y, c)
			}
		}
	}

	// Keep the preview inside the box when the view is scrolled past the
	// content edge.
	dc.Push()
	dc.DrawRectangle(main.X, main.Y, main.Width, main.Height)
	dc.Clip()
	preview := chrome.Preview
	if m.scene.Dragging() {
		dc.SetColor(dragColor)
	} else {
		dc.SetColor(previewColor)
	}
	dc.SetLineWidth(1)
	strokeRect(dc, preview)
	dc.Pop()

	dc.SetColor(chrome.Border)
	dc.SetLineWidth(1)
	strokeRect(dc, main)
	return img
}

func pixelCenter(x, y int) geom.Point {
	return geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// strokeRect outlines r on whole pixels so a 1px line stays crisp.
func strokeRect(dc *gg.Context, r geom.Rect) {
	dc.DrawRectangle(float64(int(r.X))+0.5, float64(int(r.Y))+0.5, float64(int(r.Width))-1, float64(int(r.Height))-1)
	dc.Stroke()
}

func rgbaImageToANSIHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb, ta := rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			br, bg, bb, ba := uint8(0), uint8(0), uint8(0), uint8(0)
			if y+1 < height {
				br, bg, bb, ba = rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			if ta < 8 && ba < 8 {
				out.WriteByte(' ')
				continue
			}

			fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.String()
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

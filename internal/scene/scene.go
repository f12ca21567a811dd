// Package scene wires the viewport engine, the terrain content and the
// minimap together. Both frontends drive a Scene from their event loop and
// only translate native input and draw what it reports.
package scene

import (
	"image/color"
	"math"

	"github.com/appengine-ltd/minimap/internal/config"
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/minimap"
	"github.com/appengine-ltd/minimap/internal/terrain"
	"github.com/appengine-ltd/minimap/internal/viewport"
	"golang.org/x/image/colornames"
)

type Frontend int

const (
	Window Frontend = iota
	Terminal
)

// terminalMargin is the minimap inset in half-block pixels.
const terminalMargin = 2

type Scene struct {
	frontend   Frontend
	cfg        config.Config
	configured bool

	Engine  *viewport.Engine
	Hub     *minimap.PointerHub
	Terrain terrain.Map

	mini   *minimap.Minimap
	opts   minimap.Options
	corner minimap.Corner
	margin float64
	border color.RGBA

	cellSize    float64
	terrainRevs int
}

func New(cfg config.Config, frontend Frontend) *Scene {
	s := &Scene{
		frontend: frontend,
		Engine: viewport.NewEngine(viewport.Options{
			MinScale: cfg.Viewport.MinScale,
			MaxScale: cfg.Viewport.MaxScale,
		}),
		Hub: minimap.NewPointerHub(),
	}
	s.loadTerrain(cfg)
	s.apply(cfg)
	s.Mount()
	return s
}

func (s *Scene) loadTerrain(cfg config.Config) {
	s.cellSize = 1
	if s.frontend == Window {
		s.cellSize = cfg.Terrain.CellSize
	}
	s.Terrain = terrain.Generate(cfg.Terrain.Seed, cfg.Terrain.Columns, cfg.Terrain.Rows)
	s.terrainRevs++
	s.Engine.SetContentSize(geom.Size{
		Width:  float64(s.Terrain.Width) * s.cellSize,
		Height: float64(s.Terrain.Height) * s.cellSize,
	})
}

func (s *Scene) apply(cfg config.Config) {
	opts := cfg.MinimapOptions()
	s.margin = cfg.Minimap.Margin
	if s.frontend == Terminal {
		opts = cfg.TerminalOptions()
		s.margin = terminalMargin
	}
	if s.configured && opts.Panning == s.cfg.MinimapOptions().Panning {
		// Keep the runtime toggle unless the file itself changed it.
		opts.Panning = s.opts.Panning
	}
	s.configured = true
	s.cfg = cfg
	s.opts = opts
	s.corner = cfg.Corner()
	s.border = config.ColorOr(opts.BorderColor, colornames.Red)
	s.Engine.SetScaleLimits(cfg.Viewport.MinScale, cfg.Viewport.MaxScale)
	if s.mini != nil {
		s.mini.SetOptions(opts)
	}
	s.place()
}

// ApplyConfig takes a reloaded configuration. The terrain is regenerated only
// when its section changed.
func (s *Scene) ApplyConfig(cfg config.Config) {
	if cfg.Terrain != s.cfg.Terrain {
		s.loadTerrain(cfg)
	}
	s.apply(cfg)
}

func (s *Scene) Config() config.Config {
	return s.cfg
}

// TerrainRevision changes whenever the terrain is regenerated, so frontends
// know to rebuild cached textures.
func (s *Scene) TerrainRevision() int {
	return s.terrainRevs
}

func (s *Scene) CellSize() float64 {
	return s.cellSize
}

// Resize sets the primary viewport to fill a width x height surface.
func (s *Scene) Resize(width, height float64) {
	s.Engine.SetWrapperRect(geom.NewRect(0, 0, width, height))
	s.place()
}

func (s *Scene) place() {
	if s.mini == nil {
		return
	}
	box := geom.Size{Width: s.opts.Width, Height: s.opts.Height}
	if g, ok := s.mini.Geometry(); ok {
		box = g.MainSize
	}
	s.mini.Place(minimap.Anchor(s.Engine.WrapperRect(), box, s.corner, s.margin))
}

func (s *Scene) Mount() {
	if s.mini != nil {
		return
	}
	s.mini = minimap.Mount(s.Engine, s.Hub, s.opts)
	s.place()
}

func (s *Scene) Unmount() {
	if s.mini == nil {
		return
	}
	s.mini.Close()
	s.mini = nil
}

// ToggleMinimap unmounts or remounts the minimap and reports whether it is
// mounted afterwards.
func (s *Scene) ToggleMinimap() bool {
	if s.mini != nil {
		s.Unmount()
		return false
	}
	s.Mount()
	return true
}

// Minimap is nil while unmounted.
func (s *Scene) Minimap() *minimap.Minimap {
	return s.mini
}

func (s *Scene) Panning() bool {
	return s.opts.Panning
}

func (s *Scene) TogglePanning() bool {
	s.opts.Panning = !s.opts.Panning
	if s.mini != nil {
		s.mini.SetOptions(s.opts)
	}
	return s.opts.Panning
}

func (s *Scene) Dragging() bool {
	return s.mini != nil && s.mini.Dragging()
}

// Dispatch forwards a primary-button event to the minimap. It reports whether
// the minimap owns the event, in which case the frontend skips its own
// handling.
func (s *Scene) Dispatch(kind minimap.PointerKind, x, y float64) bool {
	over := s.mini != nil && s.mini.Contains(geom.Point{X: x, Y: y})
	owned := over || s.Dragging()
	s.Hub.Dispatch(minimap.PointerEvent{Kind: kind, X: x, Y: y})
	return owned || s.Dragging()
}

// OverMinimap reports whether p falls on the minimap box.
func (s *Scene) OverMinimap(p geom.Point) bool {
	return s.mini != nil && s.mini.Contains(p)
}

func (s *Scene) zoomStep() float64 {
	return geom.Finite(s.cfg.Viewport.ZoomStep, 1.15)
}

func (s *Scene) ZoomIn() {
	s.Engine.ZoomCentered(s.zoomStep())
}

func (s *Scene) ZoomOut() {
	s.Engine.ZoomCentered(1 / s.zoomStep())
}

// Wheel zooms around p by one step per notch; negative notches zoom out.
func (s *Scene) Wheel(p geom.Point, notches float64) {
	if notches == 0 {
		return
	}
	s.Engine.ZoomAt(p, math.Pow(s.zoomStep(), notches))
}

func (s *Scene) Pan(dx, dy float64) {
	s.Engine.Pan(dx, dy)
}

func (s *Scene) ResetView() {
	s.Engine.Reset()
}

// BorderColor is the parsed minimap border colour.
func (s *Scene) BorderColor() color.RGBA {
	return s.border
}

// CellAt returns the terrain cell under a point in content coordinates.
func (s *Scene) CellAt(p geom.Point) (terrain.Cell, bool) {
	if p.X < 0 || p.Y < 0 {
		return terrain.Cell{}, false
	}
	return s.Terrain.At(int(p.X/s.cellSize), int(p.Y/s.cellSize))
}

// ScreenColor is the primary viewport's colour at screen point p; ok is false
// where no content is shown.
func (s *Scene) ScreenColor(p geom.Point) (color.RGBA, bool) {
	cell, ok := s.CellAt(s.Engine.ScreenToContent(p))
	if !ok {
		return color.RGBA{}, false
	}
	return terrain.Color(cell), true
}

// MinimapColor is the replica's colour at screen point p when p falls inside
// the minimap box.
func (s *Scene) MinimapColor(p geom.Point) (color.RGBA, bool) {
	if s.mini == nil {
		return color.RGBA{}, false
	}
	main, ok := s.mini.MainRect()
	if !ok || !main.Contains(p) {
		return color.RGBA{}, false
	}
	g, _ := s.mini.Geometry()
	local := geom.Point{
		X: (p.X - main.X) / g.FitScale,
		Y: (p.Y - main.Y) / g.FitScale,
	}
	cell, ok := s.CellAt(local)
	if !ok {
		return color.RGBA{}, false
	}
	return terrain.Color(cell), true
}

// Chrome is what a frontend draws on top of the replica: the minimap box
// and the preview rectangle, both in screen coordinates.
type Chrome struct {
	Main    geom.Rect
	Preview geom.Rect
	Border  color.RGBA
}

func (s *Scene) Chrome() (Chrome, bool) {
	if s.mini == nil {
		return Chrome{}, false
	}
	main, ok := s.mini.MainRect()
	if !ok {
		return Chrome{}, false
	}
	preview, ok := s.mini.PreviewRect()
	if !ok {
		return Chrome{}, false
	}
	return Chrome{Main: main, Preview: preview, Border: s.border}, true
}

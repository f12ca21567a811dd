package gui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/appengine-ltd/minimap/internal/config"
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/scene"
	classicui "github.com/appengine-ltd/minimap/internal/ui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	// ConfigPath is watched for changes when set.
	ConfigPath string
	Config     config.Config
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	ui := newViewUI(a.cfg)
	return ui.Run()
}

const statusTTL = 4 * time.Second

type viewUI struct {
	cfg AppConfig

	width         int32
	height        int32
	quit          bool
	launchClassic bool

	scene *scene.Scene

	texture    rl.Texture2D
	textureRev int

	lastMouse geom.Point
	panning   bool

	status        string
	statusWarn    bool
	statusExpires time.Time

	updates <-chan config.Update
}

func newViewUI(cfg AppConfig) *viewUI {
	ui := &viewUI{
		cfg:    cfg,
		width:  1366,
		height: 768,
		scene:  scene.New(cfg.Config, scene.Window),
	}
	ui.scene.Resize(float64(ui.width), float64(ui.height))
	ui.centerView()
	return ui
}

// centerView starts with the middle of the content on screen.
func (ui *viewUI) centerView() {
	content := ui.scene.Engine.ContentSize()
	ui.scene.Engine.CenterOn(geom.Point{X: content.Width / 2, Y: content.Height / 2})
}

func (ui *viewUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "minimap")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	hud.load(hudFonts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if ui.cfg.ConfigPath != "" {
		updates, err := config.Watch(ctx, ui.cfg.ConfigPath, config.DefaultDebounce)
		if err != nil {
			log.Printf("Warning: config reload disabled: %v", err)
		}
		ui.updates = updates
	}

	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())
		ui.scene.Resize(float64(ui.width), float64(ui.height))

		ui.update(time.Now())
		if ui.launchClassic {
			break
		}

		ui.ensureTexture()
		rl.BeginDrawing()
		rl.ClearBackground(AppTheme.Background)
		ui.draw()
		rl.EndDrawing()
	}

	if ui.texture.ID != 0 {
		rl.UnloadTexture(ui.texture)
	}
	hud.unload()
	rl.CloseWindow()
	if ui.launchClassic {
		cancel()
		app := classicui.NewApp(classicui.AppConfig{
			Version:    ui.cfg.Version,
			Commit:     ui.cfg.Commit,
			BuildDate:  ui.cfg.BuildDate,
			ConfigPath: ui.cfg.ConfigPath,
			Config:     ui.scene.Config(),
		})
		return app.Run()
	}
	return nil
}

func (ui *viewUI) update(now time.Time) {
	ui.pollConfig(now)
	ui.applyAction(pressedAction(), now)
	ui.handleMouse(pollMouse())
	ui.expireStatus(now)
}

func (ui *viewUI) expireStatus(now time.Time) {
	if !ui.statusExpires.IsZero() && now.After(ui.statusExpires) {
		ui.status = ""
		ui.statusExpires = time.Time{}
	}
}

func (ui *viewUI) pollConfig(now time.Time) {
	if ui.updates == nil {
		return
	}
	select {
	case u, ok := <-ui.updates:
		if !ok {
			ui.updates = nil
			return
		}
		if u.Err != nil {
			ui.setStatus(fmt.Sprintf("Config not applied: %v", u.Err), true, now)
			return
		}
		ui.scene.ApplyConfig(u.Config)
		ui.setStatus("Config reloaded", false, now)
	default:
	}
}

func (ui *viewUI) setStatus(msg string, warn bool, now time.Time) {
	ui.status = msg
	ui.statusWarn = warn
	ui.statusExpires = now.Add(statusTTL)
}

func (ui *viewUI) saveConfig(now time.Time) {
	if ui.cfg.ConfigPath == "" {
		ui.setStatus("No config path to save to", true, now)
		return
	}
	cfg := ui.scene.Config()
	panning := ui.scene.Panning()
	cfg.Minimap.Panning = &panning
	if err := config.Save(ui.cfg.ConfigPath, cfg); err != nil {
		ui.setStatus(fmt.Sprintf("Save failed: %v", err), true, now)
		return
	}
	ui.setStatus("Saved "+ui.cfg.ConfigPath, false, now)
}

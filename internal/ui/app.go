package ui

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/minimap/internal/config"
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/minimap"
	"github.com/appengine-ltd/minimap/internal/scene"
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
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newViewModel(a.cfg)
	if a.cfg.ConfigPath != "" {
		updates, err := config.Watch(ctx, a.cfg.ConfigPath, config.DefaultDebounce)
		if err != nil {
			log.Printf("Warning: config reload disabled: %v", err)
		}
		m.updates = updates
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

var (
	statusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8E2D8")).
			Background(lipgloss.Color("#1C2329"))
	helpLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D858A"))
	warnLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#C18B2F"))
	infoLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#D46A1E"))
)

const (
	// chromeRows is the status bar plus the help line.
	chromeRows = 2
	// panStep is how far one arrow key scrolls, in half-block pixels.
	panStep = 8
)

type viewModel struct {
	cfg   AppConfig
	scene *scene.Scene

	cols int
	rows int

	status     string
	statusWarn bool

	updates <-chan config.Update
}

type configMsg config.Update

func newViewModel(cfg AppConfig) viewModel {
	return viewModel{
		cfg:   cfg,
		scene: scene.New(cfg.Config, scene.Terminal),
	}
}

func waitForConfig(updates <-chan config.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return configMsg(u)
	}
}

func (m viewModel) Init() tea.Cmd {
	return waitForConfig(m.updates)
}

// frameSize is the drawable area in half-block pixels.
func (m viewModel) frameSize() (int, int) {
	return m.cols, max(0, m.rows-chromeRows) * 2
}

// cellPoint maps a terminal cell to the centre of its two stacked pixels.
func cellPoint(x, y int) geom.Point {
	return geom.Point{X: float64(x) + 0.5, Y: float64(y)*2 + 1}
}

func (m viewModel) centerView() {
	content := m.scene.Engine.ContentSize()
	m.scene.Engine.CenterOn(geom.Point{X: content.Width / 2, Y: content.Height / 2})
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.cols == 0
		m.cols, m.rows = msg.Width, msg.Height
		w, h := m.frameSize()
		m.scene.Resize(float64(w), float64(h))
		if first {
			m.centerView()
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	case configMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Config not applied: %v", msg.Err)
			m.statusWarn = true
		} else {
			m.scene.ApplyConfig(msg.Config)
			m.status = "Config reloaded"
			m.statusWarn = false
		}
		return m, waitForConfig(m.updates)
	}
	return m, nil
}

func (m viewModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.scene
	m.status, m.statusWarn = "", false
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "h":
		s.Pan(panStep, 0)
	case "right", "l":
		s.Pan(-panStep, 0)
	case "up", "k":
		s.Pan(0, panStep)
	case "down", "j":
		s.Pan(0, -panStep)
	case "+", "=":
		s.ZoomIn()
	case "-", "_":
		s.ZoomOut()
	case "r":
		s.ResetView()
		m.centerView()
	case "p":
		if s.TogglePanning() {
			m.status = "Minimap panning on"
		} else {
			m.status = "Minimap panning off"
		}
	case "m":
		if s.ToggleMinimap() {
			m.status = "Minimap mounted"
		} else {
			m.status = "Minimap unmounted"
		}
	}
	return m, nil
}

// updateMouse sends the left button to the minimap and uses the wheel for
// zoom everywhere else.
func (m viewModel) updateMouse(msg tea.MouseMsg) viewModel {
	s := m.scene
	p := cellPoint(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress || s.OverMinimap(p) {
			return m
		}
		notches := 1.0
		if msg.Button == tea.MouseButtonWheelDown {
			notches = -1
		}
		s.Wheel(p, notches)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		s.Dispatch(minimap.PointerDown, p.X, p.Y)
	case msg.Action == tea.MouseActionMotion:
		s.Dispatch(minimap.PointerMove, p.X, p.Y)
	case msg.Action == tea.MouseActionRelease:
		s.Dispatch(minimap.PointerUp, p.X, p.Y)
	}
	return m
}

func (m viewModel) View() string {
	w, h := m.frameSize()
	if w <= 0 || h <= 0 {
		return "Resize the terminal to show the map."
	}
	out := rgbaImageToANSIHalfBlocks(m.frame())
	out += statusBar.Width(m.cols).Render(m.scene.Status().String()) + "\n"
	switch {
	case m.status != "" && m.statusWarn:
		out += warnLine.Render(m.status)
	case m.status != "":
		out += infoLine.Render(m.status)
	default:
		out += helpLine.Render("arrows pan  +/- zoom  drag minimap  p panning  r reset  m minimap  q quit  " + m.versionLine())
	}
	return out
}

func (m viewModel) versionLine() string {
	if m.cfg.Version == "" {
		return "dev"
	}
	return fmt.Sprintf("v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate)
}

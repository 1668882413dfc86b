package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/registry"
	"github.com/vovakirdan/gameflix/internal/storage"
)

// Options configures a session.
type Options struct {
	Config config.Config
	Store  storage.KV
	Logger *log.Logger
	Clock  engine.Clock // nil means wall time

	Width, Height int
	Seed          int64 // 0 picks a time-based seed per load

	// Game, when set, is opened immediately. With Solo, leaving it quits
	// instead of returning to the catalog.
	Game string
	Solo bool

	ScreenshotDir string             // default ~/.gameflix/screenshots
	Copy          func(string) error // default writes the system clipboard
}

type mode int

const (
	modeCatalog mode = iota
	modePlay
	modeSaved
)

// SessionModel runs one arcade session: the catalog, the saved data view and
// a single engine that plays whichever game is open.
type SessionModel struct {
	opts   Options
	keys   KeyMap
	engine *engine.Engine
	sched  *teaScheduler
	holder *keyHolder
	now    func() time.Time

	catalog CatalogModel
	saved   SavedModel
	mode    mode
	game    registry.Info
	notice  string

	width, height int
	quitting      bool
}

// NewSessionModel creates a session and, when opts.Game is set, opens it.
func NewSessionModel(opts Options) SessionModel {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = core.DefaultScreenW, core.DefaultScreenH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemory()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Config.Input.HoldFirstMS <= 0 {
		opts.Config.Input = config.DefaultConfig().Input
	}
	cfg := opts.Config

	sched := newTeaScheduler(cfg.Engine.FrameRate)
	canvas := gfx.New(core.NewScreen(opts.Width, playRows(opts.Height)), gfx.DefaultWidth, gfx.DefaultHeight)
	engOpts := []engine.Option{
		engine.WithScheduler(sched),
		engine.WithLogger(opts.Logger),
		engine.WithFPS(cfg.Engine.FPS),
		engine.WithMaxFrame(time.Duration(cfg.Engine.MaxFrameMS) * time.Millisecond),
	}
	if opts.Clock != nil {
		engOpts = append(engOpts, engine.WithClock(opts.Clock))
	}

	keys := DefaultKeyMap()
	m := SessionModel{
		opts:   opts,
		keys:   keys,
		engine: engine.New(canvas, engOpts...),
		sched:  sched,
		holder: newKeyHolder(
			time.Duration(cfg.Input.HoldFirstMS)*time.Millisecond,
			time.Duration(cfg.Input.HoldRepeatMS)*time.Millisecond,
		),
		now:     time.Now,
		catalog: NewCatalogModel(keys, opts.Width, opts.Height),
		width:   opts.Width,
		height:  opts.Height,
	}
	if opts.Game != "" {
		m.open(opts.Game)
	}
	return m
}

// playRows leaves the last terminal row for the status line.
func playRows(height int) int { return max(height-1, 1) }

// Engine returns the session's engine.
func (m SessionModel) Engine() *engine.Engine { return m.engine }

// Playing returns the open game, if any.
func (m SessionModel) Playing() (registry.Info, bool) {
	return m.game, m.mode == modePlay
}

// Init starts frame delivery for a game opened by the constructor.
func (m SessionModel) Init() tea.Cmd {
	return m.sched.Cmd()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.engine.Canvas().Resize(msg.Width, playRows(msg.Height))
		m.catalog = m.catalog.Resize(msg.Width, msg.Height)
		m.saved = m.saved.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.mode == modePlay {
			m.handleMouse(msg)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
	case modeSaved:
		m.saved, cmd = m.saved.Update(msg)
	}
	return m, cmd
}

func (m SessionModel) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if m.mode != modePlay {
		return m, nil
	}
	m.holder.Expire(m.engine.Input(), msg.Time)
	m.sched.Fire(msg)
	if err := m.engine.Err(); err != nil {
		m.close()
		m.notice = fmt.Sprintf("%s stopped: %v", m.game.Title, err)
		if m.opts.Solo {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, m.sched.Cmd()
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || (m.mode != modePlay && key.Matches(msg, m.keys.Quit)) {
		return m.quit()
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeCatalog:
		switch {
		case key.Matches(msg, m.keys.Play):
			if g, ok := m.catalog.Selected(); ok {
				m.open(g.ID)
			}
		case key.Matches(msg, m.keys.Saved):
			m.saved = NewSavedModel(m.opts.Store, m.width, m.height)
			m.mode = modeSaved
		default:
			m.catalog, cmd = m.catalog.Update(msg)
		}

	case modeSaved:
		if key.Matches(msg, m.keys.Back) {
			m.mode = modeCatalog
			return m, nil
		}
		m.saved, cmd = m.saved.Update(msg)

	case modePlay:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.close()
			if m.opts.Solo {
				return m.quit()
			}
		case key.Matches(msg, m.keys.Screenshot):
			m.screenshot()
		case key.Matches(msg, m.keys.Copy):
			m.copyFrame()
		default:
			now := m.now()
			for _, code := range KeyCodes(msg) {
				m.holder.Press(m.engine.Input(), code, now)
			}
		}
	}

	if c := m.sched.Cmd(); c != nil {
		return m, tea.Batch(cmd, c)
	}
	return m, cmd
}

func (m *SessionModel) handleMouse(msg tea.MouseMsg) {
	in := m.engine.Input()
	p := m.engine.Canvas().ToWorld(msg.X, msg.Y)
	in.HandleMouseMove(p.X, p.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if b, ok := mouseButton(msg.Button); ok {
			in.HandleMouseDown(b)
		}
	case tea.MouseActionRelease:
		if b, ok := mouseButton(msg.Button); ok {
			in.HandleMouseUp(b)
			return
		}
		// Some terminals do not say which button was released.
		for _, b := range []core.MouseButton{core.MouseLeft, core.MouseMiddle, core.MouseRight} {
			if in.IsMouseDown(b) {
				in.HandleMouseUp(b)
			}
		}
	}
}

// open loads a game into the engine and switches to the play view.
func (m *SessionModel) open(id string) {
	seed := core.ResolveSeed(m.opts.Seed)
	env := registry.Env{
		Seed:   seed,
		Store:  m.opts.Store,
		Log:    m.opts.Logger.With("game", id),
		Config: m.opts.Config,
	}
	if status := registry.Load(m.engine, id, env); status != registry.LoadReady {
		m.notice = fmt.Sprintf("cannot open %q: %v", id, status)
		return
	}
	m.game, _ = registry.Lookup(id)
	m.mode = modePlay
	m.notice = ""
	m.opts.Logger.Debug("game opened", "game", id, "seed", seed)
}

// close stops the engine and returns to the catalog. The scene stays
// registered on the engine so reopening the game resumes it.
func (m *SessionModel) close() {
	m.holder.Release(m.engine.Input())
	m.engine.Stop()
	m.engine.ClearEntities()
	m.mode = modeCatalog
	m.notice = ""
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.engine.Stop()
	m.quitting = true
	return m, tea.Quit
}

// screenshot writes the current frame as plain text.
func (m *SessionModel) screenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.notice = "screenshot failed: " + err.Error()
			return
		}
		dir = filepath.Join(home, ".gameflix", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.notice = "screenshot failed: " + err.Error()
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID, m.now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.engine.Canvas().Screen().String()), 0o600); err != nil {
		m.opts.Logger.Error("screenshot failed", "path", path, "err", err)
		m.notice = "screenshot failed: " + err.Error()
		return
	}
	m.notice = "saved " + path
}

// copyFrame puts the current frame on the clipboard.
func (m *SessionModel) copyFrame() {
	if err := m.opts.Copy(m.engine.Canvas().Screen().String()); err != nil {
		m.opts.Logger.Warn("clipboard unavailable", "err", err)
		m.notice = "copy failed: " + err.Error()
		return
	}
	m.notice = "frame copied"
}

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Background(lipgloss.Color("236"))

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modePlay:
		status := m.game.Title + "  esc catalog • ctrl+s screenshot • ctrl+y copy"
		if m.notice != "" {
			status = m.game.Title + "  " + m.notice
		}
		status = statusStyle.Width(m.width).MaxWidth(m.width).Render(status)
		return RenderScreen(m.engine.Canvas().Screen()) + "\n" + status
	case modeSaved:
		return m.saved.View()
	}
	return m.catalog.View(m.notice)
}

// Run starts a session in the terminal and blocks until it ends.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

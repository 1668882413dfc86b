package tui

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/registry"
	"github.com/vovakirdan/gameflix/internal/storage"
)

// probe records what the host feeds it.
type probe struct {
	engine.SceneBase
	in      *engine.Input
	ticks   int
	entered int
	shifted bool
	keyA    int
}

func (p *probe) Enter() { p.entered++ }

func (p *probe) Update(dt float64) {
	p.ticks++
	if p.in.IsKeyDown("KeyA") {
		p.keyA++
	}
	if p.in.IsKeyDown(core.KeyShiftLeft) {
		p.shifted = true
	}
	if p.in.IsKeyPressed("KeyP") {
		panic("probe exploded")
	}
}

func (p *probe) Render(c *gfx.Canvas) {
	c.Text(400, 300, "PROBE", core.ColorGreen, gfx.AlignCenter)
}

var probes []*probe

func init() {
	registry.Register(registry.Info{
		ID:       "probe",
		Title:    "Probe",
		Category: config.CategoryClassics,
		Controls: "A",
	}, func(e *engine.Engine, _ registry.Env) engine.Scene {
		p := &probe{in: e.Input()}
		probes = append(probes, p)
		return p
	})
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type harness struct {
	t      *testing.T
	m      SessionModel
	clock  *fakeClock
	copied string
}

func newHarness(t *testing.T, game string) *harness {
	t.Helper()
	h := &harness{t: t, clock: &fakeClock{t: time.Unix(1000, 0)}}
	h.m = NewSessionModel(Options{
		Config:        config.DefaultConfig(),
		Store:         storage.NewMemory(),
		Clock:         h.clock,
		Width:         80,
		Height:        25,
		Seed:          1,
		Game:          game,
		ScreenshotDir: t.TempDir(),
		Copy: func(s string) error {
			h.copied = s
			return nil
		},
	})
	h.m.now = func() time.Time { return h.clock.t }
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(SessionModel)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.m = m
	return cmd
}

// frame advances the clock by d and delivers the pending frame.
func (h *harness) frame(d time.Duration) {
	h.clock.t = h.clock.t.Add(d)
	h.send(FrameMsg{ID: h.m.sched.pending, Time: h.clock.t})
}

func (h *harness) probe() *probe { return probes[len(probes)-1] }

func TestKeyCodes(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want []string
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, []string{core.KeyArrowUp}},
		{tea.KeyMsg{Type: tea.KeyShiftLeft}, []string{core.KeyArrowLeft, core.KeyShiftLeft}},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []string{core.KeySpace}},
		{tea.KeyMsg{Type: tea.KeyEnter}, []string{core.KeyEnter}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, []string{core.KeyBackspace}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, []string{"KeyZ"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Z'}}, []string{"KeyZ", core.KeyShiftLeft}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}}, []string{"Digit7"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, nil},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, nil},
	}
	for _, tt := range tests {
		if got := KeyCodes(tt.msg); !slices.Equal(got, tt.want) {
			t.Errorf("KeyCodes(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestKeyHolder(t *testing.T) {
	in := engine.NewInput()
	h := newKeyHolder(180*time.Millisecond, 120*time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(in, "KeyA", t0)
	if !in.IsKeyDown("KeyA") || !in.IsKeyPressed("KeyA") {
		t.Fatal("first event presses the key")
	}
	in.Update()
	h.Expire(in, t0.Add(100*time.Millisecond))
	h.Press(in, "KeyA", t0.Add(150*time.Millisecond))
	if in.IsKeyPressed("KeyA") {
		t.Error("an auto-repeat is not a new press")
	}
	h.Expire(in, t0.Add(260*time.Millisecond))
	if !in.IsKeyDown("KeyA") {
		t.Fatal("the repeat extends the hold")
	}
	h.Expire(in, t0.Add(270*time.Millisecond))
	if in.IsKeyDown("KeyA") || !in.IsKeyReleased("KeyA") || h.Held() != 0 {
		t.Error("the key is released once its window closes")
	}

	h.Press(in, "KeyB", t0)
	h.Release(in)
	if in.IsKeyDown("KeyB") || h.Held() != 0 {
		t.Error("Release lets go of everything")
	}
}

func TestTeaScheduler(t *testing.T) {
	s := newTeaScheduler(30)
	if s.Cmd() != nil {
		t.Fatal("no request, no command")
	}
	fired := 0
	id := s.RequestFrame(func(time.Time) { fired++ })
	if s.Cmd() == nil || s.Cmd() != nil {
		t.Fatal("each request is sent once")
	}
	if s.Fire(FrameMsg{ID: id + 1}) || fired != 0 {
		t.Error("a stale frame is dropped")
	}
	if !s.Fire(FrameMsg{ID: id}) || fired != 1 {
		t.Error("the pending frame fires")
	}
	if s.Fire(FrameMsg{ID: id}) {
		t.Error("a frame fires once")
	}

	id = s.RequestFrame(func(time.Time) { fired++ })
	s.CancelFrame(id)
	if s.Fire(FrameMsg{ID: id}) || fired != 1 || s.Cmd() != nil {
		t.Error("a cancelled frame is dropped")
	}
}

func TestSessionPlaysAndReturns(t *testing.T) {
	h := newHarness(t, "probe")
	if g, ok := h.m.Playing(); !ok || g.ID != "probe" {
		t.Fatal("the requested game opens immediately")
	}
	if h.m.Init() == nil {
		t.Fatal("Init schedules the first frame")
	}
	p := h.probe()

	h.frame(100 * time.Millisecond)
	if p.ticks != 6 || h.m.Engine().Ticks() != 6 {
		t.Fatalf("ticks = %d, expected 6 at 60 fps", p.ticks)
	}
	if !strings.Contains(h.m.View(), "PROBE") || !strings.Contains(h.m.View(), "esc catalog") {
		t.Error("the play view shows the frame and the status line")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := h.m.Playing(); ok || h.m.Engine().Running() {
		t.Fatal("Esc stops the engine and returns to the catalog")
	}
	h.frame(100 * time.Millisecond)
	if p.ticks != 6 {
		t.Error("no ticks run in the catalog")
	}
	if !strings.Contains(h.m.View(), "Probe") {
		t.Error("the catalog lists the game")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := h.m.Playing(); !ok || h.probe() != p || p.entered != 2 {
		t.Error("reopening reuses the scene")
	}
}

func TestSessionHoldsKeys(t *testing.T) {
	h := newHarness(t, "probe")
	p := h.probe()

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'A'}})
	h.frame(100 * time.Millisecond)
	if p.keyA != 6 || !p.shifted {
		t.Fatalf("keyA held for %d ticks, shift %v", p.keyA, p.shifted)
	}
	h.frame(100 * time.Millisecond)
	if h.m.Engine().Input().IsKeyDown("KeyA") || p.keyA != 6 {
		t.Error("the key is released after the hold window")
	}
}

func TestSessionMouse(t *testing.T) {
	h := newHarness(t, "probe")
	in := h.m.Engine().Input()
	h.send(tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	want := h.m.Engine().Canvas().ToWorld(40, 12)
	if got := in.Mouse(); got.X != want.X || got.Y != want.Y {
		t.Errorf("mouse at %+v, expected %v", got, want)
	}
	if !in.IsMouseDown(core.MouseLeft) {
		t.Fatal("press holds the button")
	}
	h.send(tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	if in.IsMouseDown(core.MouseLeft) {
		t.Error("an unnamed release lets go of held buttons")
	}
}

func TestSessionRecoversFromPanic(t *testing.T) {
	h := newHarness(t, "probe")
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	h.frame(20 * time.Millisecond)
	if _, ok := h.m.Playing(); ok {
		t.Fatal("a crashed game returns to the catalog")
	}
	if !strings.Contains(h.m.View(), "probe exploded") {
		t.Error("the catalog reports the failure")
	}
}

func TestScreenshotAndCopy(t *testing.T) {
	h := newHarness(t, "probe")
	h.frame(20 * time.Millisecond)
	frame := h.m.Engine().Canvas().Screen().String()

	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	if h.copied != frame {
		t.Error("ctrl+y copies the frame text")
	}

	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	files, err := filepath.Glob(filepath.Join(h.m.opts.ScreenshotDir, "probe_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil || string(data) != frame {
		t.Error("the screenshot holds the frame text")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "")
	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q quits from the catalog")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok || h.m.View() != "" {
		t.Error("expected a quit")
	}

	h = newHarness(t, "probe")
	if cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q is a game key while playing")
		}
	}
	cmd = h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok || h.m.Engine().Running() {
		t.Error("ctrl+c quits while playing")
	}
}

func TestSavedData(t *testing.T) {
	h := newHarness(t, "")
	if err := h.m.opts.Store.Set("2048_bestScore", "512"); err != nil {
		t.Fatal(err)
	}
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	if v := h.m.View(); !strings.Contains(v, "2048_bestScore") || !strings.Contains(v, "512") {
		t.Errorf("saved data view:\n%s", v)
	}
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.mode != modeCatalog {
		t.Error("Esc returns to the catalog")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(1, 0, "HELLO", core.ColorRed)
	s.DrawText(0, 1, "ok", core.ColorGold)
	out := RenderScreen(s)
	if !strings.Contains(out, "HELLO") || !strings.Contains(out, "ok") {
		t.Errorf("rendered %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Error("one line per row")
	}
	for _, c := range core.Palette() {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

package engine

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/gfx"
)

// walker moves right while ArrowRight is held and counts pressed edges.
type walker struct {
	SceneBase
	in      *Input
	x       float64
	presses int
	updates int
	entered int
	exited  int
}

func (w *walker) Enter() { w.entered++ }
func (w *walker) Exit()  { w.exited++ }

func (w *walker) Update(dt float64) {
	w.updates++
	if w.in.IsKeyDown(core.KeyArrowRight) {
		w.x += 120 * dt
	}
	if w.in.IsKeyPressed(core.KeySpace) {
		w.presses++
	}
	w.SceneBase.Update(dt)
}

func newTestEngine(opts ...Option) (*Engine, *ManualScheduler) {
	ms := NewManualScheduler(time.Unix(0, 0))
	canvas := gfx.New(core.NewScreen(80, 24), gfx.DefaultWidth, gfx.DefaultHeight)
	opts = append([]Option{WithScheduler(ms)}, opts...)
	return New(canvas, opts...), ms
}

func scriptedHook(tick uint64, in *Input) {
	switch tick {
	case 5:
		in.HandleKeyDown(core.KeyArrowRight)
		in.HandleKeyDown(core.KeySpace)
	case 20:
		in.HandleKeyUp(core.KeySpace)
	case 31:
		in.HandleKeyDown(core.KeySpace)
	case 40:
		in.HandleKeyUp(core.KeyArrowRight)
	}
}

func TestFixedTimestepDeterminism(t *testing.T) {
	partitions := map[string][]time.Duration{
		"small": repeat(5*time.Millisecond, 200),
		"large": repeat(50*time.Millisecond, 20),
		"mixed": append(repeat(3*time.Millisecond, 100), repeat(70*time.Millisecond, 10)...),
	}

	type outcome struct {
		ticks   uint64
		x       float64
		presses int
	}
	results := make(map[string]outcome)

	for name, frames := range partitions {
		e, ms := newTestEngine(WithTickHook(scriptedHook))
		w := &walker{in: e.Input()}
		e.AddScene("walker", w)
		e.SetScene("walker")
		e.Start()
		ms.Run(frames...)
		results[name] = outcome{ticks: e.Ticks(), x: w.x, presses: w.presses}
	}

	want := results["small"]
	if want.ticks != 60 {
		t.Fatalf("1s of frames ran %d ticks, expected 60", want.ticks)
	}
	if want.presses != 2 {
		t.Errorf("expected 2 space presses, got %d", want.presses)
	}
	for name, got := range results {
		if got != want {
			t.Errorf("partition %s = %+v, expected %+v", name, got, want)
		}
	}
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func TestFrameDeltaIsClamped(t *testing.T) {
	e, ms := newTestEngine()
	e.Start()
	ms.Advance(10 * time.Second)
	if e.Ticks() != 6 {
		t.Errorf("a 10s stall ran %d ticks, expected the 100ms clamp to allow 6", e.Ticks())
	}
}

func TestInputPressedLastsOneTick(t *testing.T) {
	e, _ := newTestEngine()
	in := e.Input()

	var pressed, down, released []bool
	e.AddScene("probe", &probe{fn: func() {
		pressed = append(pressed, in.IsKeyPressed(core.KeySpace))
		down = append(down, in.IsKeyDown(core.KeySpace))
		released = append(released, in.IsKeyReleased(core.KeySpace))
	}})
	e.SetScene("probe")

	in.HandleKeyDown(core.KeySpace)
	for range 5 {
		// auto-repeat while held
		in.HandleKeyDown(core.KeySpace)
		e.Tick()
	}
	in.HandleKeyUp(core.KeySpace)
	e.Tick()
	e.Tick()

	expectPressed := []bool{true, false, false, false, false, false, false}
	expectDown := []bool{true, true, true, true, true, false, false}
	expectReleased := []bool{false, false, false, false, false, true, false}
	for i := range expectPressed {
		if pressed[i] != expectPressed[i] {
			t.Errorf("tick %d: IsKeyPressed = %v, expected %v", i, pressed[i], expectPressed[i])
		}
		if down[i] != expectDown[i] {
			t.Errorf("tick %d: IsKeyDown = %v, expected %v", i, down[i], expectDown[i])
		}
		if released[i] != expectReleased[i] {
			t.Errorf("tick %d: IsKeyReleased = %v, expected %v", i, released[i], expectReleased[i])
		}
	}
}

type probe struct {
	SceneBase
	fn func()
}

func (p *probe) Update(dt float64) { p.fn() }

func TestMouseEdges(t *testing.T) {
	in := NewInput()
	in.HandleMouseMove(120, 40)
	in.HandleMouseDown(core.MouseLeft)
	if !in.IsMousePressed(core.MouseLeft) || !in.IsMouseDown(core.MouseLeft) {
		t.Fatal("left button should be pressed and down")
	}
	in.Update()
	if in.IsMousePressed(core.MouseLeft) {
		t.Error("pressed should clear after Update")
	}
	in.HandleMouseUp(core.MouseLeft)
	if !in.IsMouseReleased(core.MouseLeft) || in.IsMouseDown(core.MouseLeft) {
		t.Error("left button should be released")
	}
	if m := in.Mouse(); m.X != 120 || m.Y != 40 {
		t.Errorf("mouse = %+v", m)
	}
	if in.IsMouseDown(core.MouseButton(7)) {
		t.Error("unknown button should never be down")
	}
}

func TestTouchDrivesMouse(t *testing.T) {
	in := NewInput()
	in.HandleTouches([]Touch{{ID: 1, X: 10, Y: 20}, {ID: 2, X: 500, Y: 500}})
	if m := in.Mouse(); m.X != 10 || m.Y != 20 {
		t.Errorf("first touch should drive the mouse, got %+v", m)
	}
	if !in.IsMousePressed(core.MouseLeft) {
		t.Error("touch start should press the left button")
	}
	in.HandleTouchEnd()
	if in.IsMouseDown(core.MouseLeft) || len(in.Touches()) != 0 {
		t.Error("touch end should release the left button")
	}
}

func TestStopLeavesNoPendingFrame(t *testing.T) {
	e, ms := newTestEngine()
	e.Start()
	e.Start()
	if !ms.Pending() {
		t.Fatal("Start should request a frame")
	}
	ms.Advance(20 * time.Millisecond)
	if !ms.Pending() {
		t.Fatal("a running engine should reschedule after each frame")
	}

	e.Stop()
	if ms.Pending() {
		t.Error("Stop should cancel the pending frame")
	}
	ticks := e.Ticks()
	ms.Advance(time.Second)
	if e.Ticks() != ticks {
		t.Error("no ticks should run after Stop")
	}
}

func TestSetSceneUnknownIsNoop(t *testing.T) {
	e, _ := newTestEngine()
	w := &walker{in: e.Input()}
	e.AddScene("walker", w)
	e.SetScene("walker")

	if e.SetScene("missing") {
		t.Error("SetScene should report false for an unknown scene")
	}
	if cur, name := e.CurrentScene(); cur != w || name != "walker" {
		t.Errorf("current scene changed to %q", name)
	}
	if w.exited != 0 {
		t.Error("an unknown scene must not exit the current one")
	}
}

func TestSceneSwitchCallsExitThenEnter(t *testing.T) {
	e, _ := newTestEngine()
	a := &walker{in: e.Input()}
	b := &walker{in: e.Input()}
	e.AddScene("a", a)
	e.AddScene("b", b)

	e.SetScene("a")
	e.Tick()
	e.SetScene("b")
	e.Tick()
	e.Tick()
	e.SetScene("a")

	if a.entered != 2 || a.exited != 1 {
		t.Errorf("scene a entered %d exited %d", a.entered, a.exited)
	}
	if b.entered != 1 || b.exited != 1 {
		t.Errorf("scene b entered %d exited %d", b.entered, b.exited)
	}
	if a.updates != 1 || b.updates != 2 {
		t.Errorf("only the current scene updates: a=%d b=%d", a.updates, b.updates)
	}
}

func TestNoSceneIsNotAnError(t *testing.T) {
	e, ms := newTestEngine()
	e.Start()
	ms.Advance(50 * time.Millisecond)
	if e.Err() != nil || !e.Running() {
		t.Errorf("engine without a scene should keep running, err=%v", e.Err())
	}
}

type panicky struct {
	SceneBase
	inRender bool
}

func (p *panicky) Update(dt float64) {
	if !p.inRender {
		panic("boom")
	}
}

func (p *panicky) Render(c *gfx.Canvas) {
	c.Save()
	c.Translate(10, 10)
	panic("render boom")
}

func TestPanicStopsEngine(t *testing.T) {
	for _, inRender := range []bool{false, true} {
		e, ms := newTestEngine()
		e.AddScene("bad", &panicky{inRender: inRender})
		e.SetScene("bad")
		e.Start()
		ms.Advance(20 * time.Millisecond)

		if e.Err() == nil {
			t.Errorf("inRender=%v: Err should report the panic", inRender)
		}
		if e.Running() || ms.Pending() {
			t.Errorf("inRender=%v: engine should be stopped with nothing scheduled", inRender)
		}
		if e.Canvas().Depth() != 0 || e.Canvas().Transform() != gfx.Identity {
			t.Errorf("inRender=%v: canvas transform should be reset", inRender)
		}
	}
}

func TestEngineEntitiesUpdateAfterScene(t *testing.T) {
	e, _ := newTestEngine()
	var order []string
	e.AddScene("s", &probe{fn: func() { order = append(order, "scene") }})
	e.SetScene("s")

	ent := NewEntity(0, 0)
	ent.VX = 60
	ent.AddComponent(&recorder{fn: func() { order = append(order, "entity") }})
	e.AddEntity(ent)

	e.Tick()
	if len(order) != 2 || order[0] != "scene" || order[1] != "entity" {
		t.Errorf("update order = %v", order)
	}
	if math.Abs(ent.X-1) > 1e-6 {
		t.Errorf("entity X = %v after one 1/60 tick at 60/s, expected 1", ent.X)
	}

	e.RemoveEntity(ent)
	e.Tick()
	if len(order) != 3 {
		t.Errorf("removed entity should not update, order = %v", order)
	}
}

type recorder struct {
	ComponentBase
	fn func()
}

func (r *recorder) Capability() Capability { return CapCustom }
func (r *recorder) Update(dt float64)      { r.fn() }

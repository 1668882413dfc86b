package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/gfx"
)

func TestComponentLookup(t *testing.T) {
	e := NewEntity(100, 100)
	text := NewText("Score: 0", core.ColorWhite)
	if got := e.AddComponent(text); got != text {
		t.Fatal("AddComponent should return the component")
	}
	if text.Owner() != e {
		t.Error("AddComponent should set the owner")
	}

	if _, ok := e.Component(CapShape); ok {
		t.Error("absent capability should report false")
	}
	if !SetText(e, "Score: 10") || text.Text != "Score: 10" {
		t.Errorf("SetText should update the text component, got %q", text.Text)
	}

	dup := NewText("other", core.ColorRed)
	if got := e.AddComponent(dup); got != text {
		t.Error("duplicate capability should return the existing component")
	}
	if len(e.Components()) != 1 || dup.Owner() != nil {
		t.Error("duplicate capability must not be attached")
	}

	if !e.RemoveComponent(text) || text.Owner() != nil {
		t.Error("RemoveComponent should detach and clear the owner")
	}
	if _, ok := Find[*Text](e); ok {
		t.Error("removed component should not be found")
	}
}

func TestAddComponentMovesBetweenEntities(t *testing.T) {
	a, b := NewEntity(0, 0), NewEntity(10, 10)
	text := NewText("hi", core.ColorWhite)
	a.AddComponent(text)

	if got := b.AddComponent(text); got != text || text.Owner() != b {
		t.Fatal("the component should now belong to b")
	}
	if len(a.Components()) != 0 {
		t.Error("the previous owner still lists the component")
	}
	if _, ok := Find[*Text](a); ok {
		t.Error("Find on the previous owner should miss")
	}
	if got := b.AddComponent(text); got != text || len(b.Components()) != 1 {
		t.Error("adding a component twice keeps one copy")
	}
}

func TestDuplicateCapabilityIsLogged(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newTestEngine(WithLogger(log.New(&buf)))

	w := &walker{}
	early := w.AddEntity(NewEntity(0, 0))
	e.AddScene("walker", w)
	late := w.AddEntity(NewEntity(0, 0))

	for _, ent := range []*Entity{early, late} {
		ent.AddComponent(NewText("a", core.ColorWhite))
		ent.AddComponent(NewText("b", core.ColorWhite))
	}
	if n := strings.Count(buf.String(), "duplicate component capability"); n != 2 {
		t.Errorf("logged %d duplicate errors, expected 2:\n%s", n, buf.String())
	}
}

func TestEntityIntegration(t *testing.T) {
	e := NewEntity(0, 0)
	e.AX = 10
	e.VY = 5
	e.Update(0.5)
	// v += a*dt first, then x += v*dt
	if e.VX != 5 || e.X != 2.5 || e.Y != 2.5 {
		t.Errorf("after update: X=%v Y=%v VX=%v", e.X, e.Y, e.VX)
	}
}

func TestInactiveComponentSkipsUpdate(t *testing.T) {
	e := NewEntity(0, 0)
	calls := 0
	r := &recorder{fn: func() { calls++ }}
	e.AddComponent(r)
	e.Update(0.1)
	r.SetActive(false)
	e.Update(0.1)
	if calls != 1 {
		t.Errorf("inactive component updated, calls = %d", calls)
	}
}

type exploding struct {
	ComponentBase
}

func (x *exploding) Capability() Capability { return CapCustom }
func (x *exploding) Render(c *gfx.Canvas)   { panic("draw failed") }

func TestRenderRestoresTransformOnPanic(t *testing.T) {
	c := gfx.New(core.NewScreen(80, 24), gfx.DefaultWidth, gfx.DefaultHeight)
	e := NewEntity(400, 300)
	e.Rotation = 0.5
	e.AddComponent(&exploding{})

	func() {
		defer func() { _ = recover() }()
		e.Render(c)
	}()

	if c.Depth() != 0 || c.Transform() != gfx.Identity {
		t.Errorf("transform leaked after panic: depth %d", c.Depth())
	}
}

func TestEntityRenderDrawsAtPosition(t *testing.T) {
	c := gfx.New(core.NewScreen(80, 24), gfx.DefaultWidth, gfx.DefaultHeight)
	e := NewEntity(400, 300)
	e.AddComponent(&Shape{Kind: ShapeRect, Width: 10, Height: 10, Paint: gfx.Glyph('#', core.ColorWhite)})
	e.Render(c)
	if c.Screen().Get(40, 12) != '#' {
		t.Errorf("shape should be drawn at the entity position, row 12 = %q", c.Screen().Row(12))
	}

	c.Clear()
	e.Visible = false
	s := SceneBase{}
	s.AddEntity(e)
	s.Render(c)
	if c.Screen().Get(40, 12) == '#' {
		t.Error("invisible entity should not render")
	}
}

func TestCollidesWith(t *testing.T) {
	a := NewEntity(0, 0)
	b := NewEntity(31, 0)
	if !a.CollidesWith(b) {
		t.Error("overlapping boxes should collide")
	}
	b.X = 32
	if a.CollidesWith(b) {
		t.Error("touching boxes should not collide")
	}
}

func TestAnimationDrivesSprite(t *testing.T) {
	e := NewEntity(0, 0)
	sprite := NewSprite(core.ColorYellow, []string{"a"}, []string{"b"}, []string{"c"})
	anim := NewAnimation()
	anim.Add("walk", Clip{Frames: []int{0, 1, 2}, FrameRate: 10, Loop: true})
	anim.Add("hit", Clip{Frames: []int{2, 1}, FrameRate: 10})
	e.AddComponent(sprite)
	e.AddComponent(anim)

	if anim.Play("missing", false) {
		t.Error("unknown clip should not play")
	}
	anim.Play("walk", false)
	e.Update(0.25)
	if sprite.Frame != 2 {
		t.Errorf("after 0.25s at 10fps sprite frame = %d, expected 2", sprite.Frame)
	}
	e.Update(0.1)
	if sprite.Frame != 0 {
		t.Errorf("looping clip should wrap, frame = %d", sprite.Frame)
	}

	anim.Play("hit", false)
	e.Update(1)
	if !anim.Finished() || sprite.Frame != 1 {
		t.Errorf("one-shot clip should hold its last frame, frame = %d", sprite.Frame)
	}
}

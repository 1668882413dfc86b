package sim

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/registry"

	_ "github.com/vovakirdan/gameflix/internal/games/snake"
	_ "github.com/vovakirdan/gameflix/internal/games/tetris"
)

// recorder logs which keys and buttons were down on each tick.
type recorder struct {
	engine.SceneBase
	in   *engine.Input
	tick int
	log  []string
}

func (r *recorder) Update(dt float64) {
	r.tick++
	var b strings.Builder
	if r.in.IsKeyPressed("KeyX") {
		b.WriteString("x+")
	}
	if r.in.IsKeyDown("KeyX") {
		b.WriteString("x")
	}
	if r.in.IsKeyReleased("KeyX") {
		b.WriteString("x-")
	}
	if r.in.IsMouseDown(core.MouseLeft) {
		m := r.in.Mouse()
		b.WriteString("m")
		if m.X == 100 && m.Y == 50 {
			b.WriteString("@")
		}
	}
	r.log = append(r.log, b.String())
}

func (r *recorder) Render(c *gfx.Canvas) {
	c.Text(0, 0, strings.Join(r.log, ","), core.ColorWhite, gfx.AlignLeft)
}

var recorders []*recorder

func init() {
	registry.Register(registry.Info{ID: "recorder", Title: "Recorder", Category: config.CategoryPuzzle},
		func(e *engine.Engine, _ registry.Env) engine.Scene {
			r := &recorder{in: e.Input()}
			recorders = append(recorders, r)
			return r
		})
}

func TestEventTiming(t *testing.T) {
	s := Script{
		Game:  "recorder",
		Ticks: 6,
		Events: []Event{
			{Tick: 2, Press: "KeyX"},
			{Tick: 4, Mouse: &Point{X: 100, Y: 50}, MouseDown: "left"},
			{Tick: 5, MouseUp: "LEFT"},
		},
	}
	if _, err := Run(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	got := recorders[len(recorders)-1].log
	want := []string{"", "x+x", "x-", "m@", "", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ticks saw %q, expected %q", got, want)
	}
}

func TestRunIsIndependentOfFrameLength(t *testing.T) {
	base := Script{
		Game:  "snake",
		Seed:  7,
		Ticks: 300,
		Events: []Event{
			{Tick: 5, Press: core.KeyArrowDown},
			{Tick: 40, Press: core.KeyArrowLeft},
			{Tick: 90, Press: core.KeyArrowUp},
		},
	}
	var first Result
	for i, ms := range []float64{0, 7, 16.6, 33, 100, 250} {
		s := base
		s.FrameMS = ms
		r, err := Run(context.Background(), s)
		if err != nil {
			t.Fatalf("frame %vms: %v", ms, err)
		}
		if r.Ticks != 300 {
			t.Errorf("frame %vms ran %d ticks", ms, r.Ticks)
		}
		if i == 0 {
			first = r
			continue
		}
		if r.Digest != first.Digest || r.Screen != first.Screen {
			t.Errorf("frame %vms digest %s, expected %s", ms, r.Digest, first.Digest)
		}
		if r.RunID == first.RunID {
			t.Error("every run gets its own id")
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script Script
		want   error
	}{
		{"no game", Script{Ticks: 10}, ErrNoGame},
		{"no ticks", Script{Game: "snake"}, ErrNoTicks},
		{"tick zero", Script{Game: "snake", Ticks: 10, Events: []Event{{Press: "Space"}}}, ErrBadEvent},
		{"bad button", Script{Game: "snake", Ticks: 10, Events: []Event{{Tick: 1, MouseDown: "thumb"}}}, ErrBadEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.script); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, expected %v", err, tt.want)
			}
		})
	}

	if _, err := Run(context.Background(), Script{Game: "nope", Ticks: 1}); err == nil {
		t.Error("an unknown game is an error")
	}
}

func TestParseScripts(t *testing.T) {
	src := `game: snake
seed: 3
ticks: 120
frame_ms: 33
events:
  - tick: 10
    press: ArrowUp
  - tick: 20
    mouse: {x: 12.5, y: 40}
    mouse_down: right
---
game: tetris
ticks: 60
`
	scripts, err := ParseScripts(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(scripts) != 2 {
		t.Fatalf("got %d scripts", len(scripts))
	}
	s := scripts[0]
	if s.Game != "snake" || s.Seed != 3 || s.Ticks != 120 || s.FrameMS != 33 || len(s.Events) != 2 {
		t.Errorf("first script = %+v", s)
	}
	if s.Events[1].Mouse == nil || s.Events[1].Mouse.X != 12.5 || s.Events[1].MouseDown != "right" {
		t.Errorf("mouse event = %+v", s.Events[1])
	}
	if scripts[1].Width != 80 || scripts[1].Height != 24 {
		t.Error("screen size defaults to 80x24")
	}

	if _, err := ParseScripts(strings.NewReader("game: snake\nticks: 0\n")); !errors.Is(err, ErrNoTicks) {
		t.Errorf("err = %v", err)
	}
	if _, err := ParseScripts(strings.NewReader("game: [")); err == nil {
		t.Error("invalid YAML is an error")
	}
}

func TestRunAll(t *testing.T) {
	scripts := []Script{
		DefaultScript("snake", 1, 200),
		DefaultScript("tetris", 1, 200),
		DefaultScript("snake", 2, 150),
	}
	results, err := RunAll(context.Background(), scripts, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.Game != scripts[i].Game || r.Ticks != scripts[i].Ticks || r.Digest == "" {
			t.Errorf("result %d = %+v", i, r)
		}
	}

	again, err := RunAll(context.Background(), scripts[:1], 0)
	if err != nil || again[0].Digest != results[0].Digest {
		t.Error("parallel runs are deterministic")
	}
}

func TestRunAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunAll(ctx, []Script{DefaultScript("snake", 1, 10_000)}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, expected context.Canceled", err)
	}
}

func TestDigest(t *testing.T) {
	a := core.NewScreen(4, 2)
	b := core.NewScreen(4, 2)
	if Digest(a) != Digest(b) {
		t.Fatal("equal screens share a digest")
	}
	a.DrawText(0, 0, "ab", core.ColorRed)
	b.DrawText(0, 0, "ab", core.ColorBlue)
	if Digest(a) == Digest(b) {
		t.Error("color is part of the digest")
	}
	if len(Digest(a)) != 16 {
		t.Error("digests are 16 hex digits")
	}
}

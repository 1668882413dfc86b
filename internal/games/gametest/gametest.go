// Package gametest drives game scenes tick by tick in tests, the way the
// engine would, without a scheduler.
package gametest

import (
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/gfx"
)

// DT is the fixed step the engine runs at by default.
const DT = 1.0 / engine.DefaultFPS

// Tick runs n fixed updates, clearing input edges after each like the engine.
func Tick(s engine.Scene, in *engine.Input, n int) {
	for range n {
		s.Update(DT)
		in.Update()
	}
}

// Press taps a key: down for one tick, then released.
func Press(s engine.Scene, in *engine.Input, code string) {
	in.HandleKeyDown(code)
	Tick(s, in, 1)
	in.HandleKeyUp(code)
	Tick(s, in, 1)
}

// Hold keeps a key down for n ticks.
func Hold(s engine.Scene, in *engine.Input, code string, n int) {
	in.HandleKeyDown(code)
	Tick(s, in, n)
	in.HandleKeyUp(code)
}

// Click presses and releases button b at world position (x, y).
func Click(s engine.Scene, in *engine.Input, x, y float64, b core.MouseButton) {
	in.HandleMouseMove(x, y)
	in.HandleMouseDown(b)
	Tick(s, in, 1)
	in.HandleMouseUp(b)
	Tick(s, in, 1)
}

// Render draws s onto a fresh 80x24 screen and returns it.
func Render(s engine.Scene) *core.Screen {
	screen := core.NewScreen(80, 24)
	s.Render(gfx.New(screen, gfx.DefaultWidth, gfx.DefaultHeight))
	return screen
}

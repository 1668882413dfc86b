// Package hud draws the status text and overlays shared by the games.
package hud

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/gfx"
)

// RestartHint is the line shown under every game over message.
const RestartHint = "Press Space or Enter to restart"

// Restart reports whether a restart key was pressed this tick.
func Restart(in *engine.Input) bool {
	return in.AnyPressed(core.KeySpace, core.KeyEnter)
}

// Overlay dims what has been drawn, clears a panel in the middle of the
// canvas and prints title with the lines below it.
func Overlay(c *gfx.Canvas, title string, lines ...string) {
	w, h := c.Width(), c.Height()
	c.Dim(0, 0, w, h, core.ColorDarkGray)

	panelH := 80 + float64(len(lines))*36
	top := h/2 - panelH/2
	c.FillRect(w/2-220, top, 440, panelH, gfx.Glyph(' ', core.ColorDefault))
	c.StrokeRect(w/2-220, top, 440, panelH, gfx.Glyph('░', core.ColorGray))
	c.Text(w/2, top+30, title, core.ColorBrightWhite, gfx.AlignCenter)
	for i, line := range lines {
		c.Text(w/2, top+72+float64(i)*36, line, core.ColorWhite, gfx.AlignCenter)
	}
}

// GameOver is the overlay every game shows on its terminal state.
func GameOver(c *gfx.Canvas, title string, score int) {
	Overlay(c, title, fmt.Sprintf("Final Score: %d", score), RestartHint)
}

// Label adds a text entity to s and returns it so the caller can SetText it.
func Label(s *engine.SceneBase, x, y float64, text string, color core.Color) *engine.Entity {
	return s.AddEntity(engine.Label(x, y, engine.NewText(text, color)))
}

// LeftLabel is Label anchored on its left edge.
func LeftLabel(s *engine.SceneBase, x, y float64, text string, color core.Color) *engine.Entity {
	t := engine.NewText(text, color)
	t.Align = gfx.AlignLeft
	return s.AddEntity(engine.Label(x, y, t))
}

// RightLabel is Label anchored on its right edge.
func RightLabel(s *engine.SceneBase, x, y float64, text string, color core.Color) *engine.Entity {
	t := engine.NewText(text, color)
	t.Align = gfx.AlignRight
	return s.AddEntity(engine.Label(x, y, t))
}

// Clock formats seconds as mm:ss.mmm.
func Clock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(math.Floor(sec * 1000))
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

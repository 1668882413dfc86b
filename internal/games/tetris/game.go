// Package tetris implements falling-block Tetris on a 10x20 well.
package tetris

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/hud"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
	"github.com/vovakirdan/gameflix/internal/registry"
)

const (
	Cols = 10
	Rows = 20

	fallDelay = 0.5 // seconds per gravity step
	lineScore = 100
)

func init() {
	registry.Register(registry.Info{
		ID:          "tetris",
		Title:       "Tetris",
		Category:    config.CategoryClassics,
		Description: "Stack the falling blocks and clear full lines.",
		Controls:    "Left/Right: move  Down: soft drop  Up: rotate  Space: hard drop",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

// Game is the Tetris scene. The well stores the color of each locked block;
// ColorDefault means empty.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	well     *grid.Board[core.Color]
	current  Piece
	next     Piece
	score    int
	lines    int
	timer    float64
	gameOver bool

	cell    float64
	offsetX float64
	offsetY float64

	scoreLabel *engine.Entity
}

// New creates a Tetris scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:   in,
		rng:  rand.New(rand.NewSource(seed)),
		cell: math.Min(gfx.DefaultWidth/Cols/1.5, gfx.DefaultHeight/Rows/1.2),
	}
	g.offsetX = (gfx.DefaultWidth - Cols*g.cell) / 2
	g.offsetY = (gfx.DefaultHeight - Rows*g.cell) / 2

	g.scoreLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, g.offsetY/2, "Score: 0", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2, "Arrow Keys: Move  |  Up: Rotate  |  Space: Drop", core.ColorGray)

	g.reset()
	return g
}

func (g *Game) reset() {
	g.well = grid.New(Cols, Rows, core.ColorBlack)
	g.score = 0
	g.lines = 0
	g.timer = 0
	g.gameOver = false
	g.current = g.randomPiece()
	g.next = g.randomPiece()
	g.updateScore()
}

// Enter restarts a finished game.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver {
		g.reset()
	}
}

func (g *Game) randomPiece() Piece {
	t := tetrominoes[g.rng.Intn(len(tetrominoes))]
	shape := parseShape(t.rows)
	return Piece{Shape: shape, Color: t.color, X: (Cols - len(shape[0])) / 2}
}

func (g *Game) updateScore() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
}

// fits reports whether p lies inside the well without overlapping blocks.
func (g *Game) fits(p Piece) bool {
	ok := true
	p.Cells(func(x, y int) {
		if !g.well.InBounds(x, y) || g.well.At(x, y) != core.ColorDefault {
			ok = false
		}
	})
	return ok
}

func (g *Game) try(p Piece) bool {
	if !g.fits(p) {
		return false
	}
	g.current = p
	return true
}

// moveDown drops the piece one row, locking it when it cannot fall.
func (g *Game) moveDown() {
	if !g.try(g.current.Moved(0, 1)) {
		g.lock()
	}
}

func (g *Game) hardDrop() {
	for g.fits(g.current.Moved(0, 1)) {
		g.current = g.current.Moved(0, 1)
	}
	g.lock()
}

// lock writes the piece into the well, clears lines and spawns the next
// piece. A spawn that does not fit ends the game.
func (g *Game) lock() {
	g.current.Cells(func(x, y int) { g.well.Set(x, y, g.current.Color) })
	g.clearLines()
	g.current = g.next
	g.next = g.randomPiece()
	if !g.fits(g.current) {
		g.gameOver = true
	}
}

// clearLines removes full rows bottom-up. Clearing n rows at once scores
// 100 * 2^(n-1).
func (g *Game) clearLines() int {
	cleared := 0
	for y := Rows - 1; y >= 0; y-- {
		full := true
		for x := range Cols {
			if g.well.At(x, y) == core.ColorDefault {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		for yy := y; yy > 0; yy-- {
			for x := range Cols {
				g.well.Set(x, yy, g.well.At(x, yy-1))
			}
		}
		for x := range Cols {
			g.well.Set(x, 0, core.ColorDefault)
		}
		y++ // re-check the row that dropped into place
		cleared++
	}
	if cleared > 0 {
		g.score += lineScore << (cleared - 1)
		g.lines += cleared
		g.updateScore()
	}
	return cleared
}

// Update handles one input action per tick and applies gravity.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	switch {
	case g.in.IsKeyPressed(core.KeyArrowLeft):
		g.try(g.current.Moved(-1, 0))
	case g.in.IsKeyPressed(core.KeyArrowRight):
		g.try(g.current.Moved(1, 0))
	case g.in.IsKeyPressed(core.KeyArrowDown):
		g.moveDown()
	case g.in.IsKeyPressed(core.KeyArrowUp):
		g.try(g.current.Rotated())
	case g.in.IsKeyPressed(core.KeySpace):
		g.hardDrop()
	}

	g.timer += dt
	if g.timer > fallDelay {
		g.timer = 0
		if !g.gameOver {
			g.moveDown()
		}
	}
}

func (g *Game) drawBlock(c *gfx.Canvas, x, y float64, color core.Color) {
	c.FillRect(g.offsetX+x*g.cell, g.offsetY+y*g.cell, g.cell, g.cell, gfx.Solid(color))
}

// Render draws the well, the falling piece and the next-piece preview.
func (g *Game) Render(c *gfx.Canvas) {
	w, h := Cols*g.cell, Rows*g.cell
	c.FillRect(g.offsetX, g.offsetY, w, h, gfx.Glyph('·', core.ColorDarkGray))
	c.StrokeRect(g.offsetX-g.cell/2, g.offsetY, w+g.cell, h+g.cell/2, gfx.Glyph('▒', core.ColorGray))

	g.well.Each(func(x, y int, color core.Color) {
		if color != core.ColorDefault {
			g.drawBlock(c, float64(x), float64(y), color)
		}
	})
	if !g.gameOver {
		g.current.Cells(func(x, y int) { g.drawBlock(c, float64(x), float64(y), g.current.Color) })
	}

	px := g.offsetX + w + 2*g.cell
	c.Text(px, g.offsetY+g.cell, "Next", core.ColorGray, gfx.AlignLeft)
	preview := g.next
	preview.X, preview.Y = Cols+2, 3
	preview.Cells(func(x, y int) { g.drawBlock(c, float64(x), float64(y), preview.Color) })
	c.Text(px, g.offsetY+8*g.cell, fmt.Sprintf("Lines %d", g.lines), core.ColorGray, gfx.AlignLeft)

	g.SceneBase.Render(c)

	if g.gameOver {
		hud.GameOver(c, "GAME OVER", g.score)
	}
}

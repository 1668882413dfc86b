// Package snake implements the classic Snake game on a 20x15 grid.
package snake

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
	Cols = 20
	Rows = 15

	startInterval = 0.2  // seconds per move
	minInterval   = 0.05 // fastest the snake gets
	speedUp       = 0.005
	foodScore     = 10
)

func init() {
	registry.Register(registry.Info{
		ID:          "snake",
		Title:       "Snake",
		Category:    config.CategoryClassics,
		Description: "Eat, grow, and don't bite yourself.",
		Controls:    "Arrows: steer",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

// Game is the Snake scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	snake    []grid.Point // head first
	dir      grid.Point
	nextDir  grid.Point
	food     grid.Point
	score    int
	interval float64
	timer    float64
	gameOver bool

	cell    float64
	offsetX float64
	offsetY float64

	scoreLabel *engine.Entity
}

// New creates a Snake scene reading from in.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:   in,
		rng:  rand.New(rand.NewSource(seed)),
		cell: math.Min(gfx.DefaultWidth/Cols/1.2, gfx.DefaultHeight/Rows/1.2),
	}
	g.offsetX = (gfx.DefaultWidth - Cols*g.cell) / 2
	g.offsetY = (gfx.DefaultHeight - Rows*g.cell) / 2

	g.scoreLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, g.offsetY/2, "Score: 0", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2, "Arrow Keys: Change Direction", core.ColorGray)
	g.reset()
	return g
}

func (g *Game) reset() {
	cx, cy := Cols/2, Rows/2
	g.snake = []grid.Point{{X: cx, Y: cy}, {X: cx - 1, Y: cy}, {X: cx - 2, Y: cy}}
	g.dir = grid.Right
	g.nextDir = grid.Right
	g.placeFood()
	g.gameOver = false
	g.score = 0
	g.interval = startInterval
	g.timer = 0
	g.updateScore()
}

// Enter restarts a finished game.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver {
		g.reset()
	}
}

func (g *Game) updateScore() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
}

// placeFood picks a uniformly random free cell. A full board leaves the food
// where it was.
func (g *Game) placeFood() {
	var free []grid.Point
	for y := range Rows {
		for x := range Cols {
			p := grid.Point{X: x, Y: y}
			if !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) > 0 {
		g.food = free[g.rng.Intn(len(free))]
	}
}

func (g *Game) occupied(p grid.Point) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

// Update steers and moves the snake once per interval.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	switch {
	case g.in.IsKeyPressed(core.KeyArrowUp) && g.dir != grid.Down:
		g.nextDir = grid.Up
	case g.in.IsKeyPressed(core.KeyArrowDown) && g.dir != grid.Up:
		g.nextDir = grid.Down
	case g.in.IsKeyPressed(core.KeyArrowLeft) && g.dir != grid.Right:
		g.nextDir = grid.Left
	case g.in.IsKeyPressed(core.KeyArrowRight) && g.dir != grid.Left:
		g.nextDir = grid.Right
	}

	g.timer += dt
	if g.timer > g.interval {
		g.move()
		g.timer = 0
	}
}

func (g *Game) move() {
	g.dir = g.nextDir
	head := g.snake[0].Add(g.dir)

	if head.X < 0 || head.X >= Cols || head.Y < 0 || head.Y >= Rows {
		g.gameOver = true
		return
	}
	// the tail moves away this step, so it is not an obstacle
	for _, s := range g.snake[:len(g.snake)-1] {
		if s == head {
			g.gameOver = true
			return
		}
	}

	eating := head == g.food
	g.snake = append([]grid.Point{head}, g.snake...)
	if !eating {
		g.snake = g.snake[:len(g.snake)-1]
		return
	}
	g.score += foodScore
	g.updateScore()
	g.placeFood()
	g.interval = math.Max(minInterval, g.interval-speedUp)
}

// Render draws the board, the food and the snake.
func (g *Game) Render(c *gfx.Canvas) {
	w, h := Cols*g.cell, Rows*g.cell
	c.FillRect(g.offsetX, g.offsetY, w, h, gfx.Glyph('·', core.ColorDarkGray))
	c.StrokeRect(g.offsetX-g.cell/2, g.offsetY-g.cell/2, w+g.cell, h+g.cell, gfx.Solid(core.ColorGray))

	g.drawCell(c, g.food, 0.4, gfx.Glyph('●', core.ColorRed))
	for i := len(g.snake) - 1; i >= 0; i-- {
		p := gfx.Solid(core.ColorBrightGreen)
		if i == 0 {
			p = gfx.Solid(core.ColorGreen)
		}
		g.drawCell(c, g.snake[i], 0.8, p)
	}

	g.SceneBase.Render(c)

	if g.gameOver {
		hud.GameOver(c, "GAME OVER", g.score)
	}
}

// drawCell fills a square of size frac*cell centered in grid cell p.
func (g *Game) drawCell(c *gfx.Canvas, p grid.Point, frac float64, paint gfx.Paint) {
	size := g.cell * frac
	x := g.offsetX + float64(p.X)*g.cell + (g.cell-size)/2
	y := g.offsetY + float64(p.Y)*g.cell + (g.cell-size)/2
	c.FillRect(x, y, size, size, paint)
}

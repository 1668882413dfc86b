// Package sokoban implements the warehouse puzzle: push every box onto a
// target. Levels come from the sokoban config file.
package sokoban

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/hud"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
	"github.com/vovakirdan/gameflix/internal/registry"
)

func init() {
	registry.Register(registry.Info{
		ID:          "sokoban",
		Title:       "Sokoban",
		Category:    config.CategoryPuzzle,
		Description: "Push every crate onto a storage target.",
		Controls:    "Arrows: move  U: undo  R: restart  N: next level",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Config.Sokoban.Levels, env.Log)
	})
}

// Game is the Sokoban scene.
type Game struct {
	engine.SceneBase

	in     *engine.Input
	logger *log.Logger

	levels  []Level
	current int
	puzzle  *Puzzle
	gameWon bool

	cellSize         float64
	offsetX, offsetY float64

	titleLabel *engine.Entity
	statsLabel *engine.Entity
	helpLabel  *engine.Entity
}

// New creates a Sokoban scene. Levels that fail to parse are logged and
// skipped; with none left the built-in set is used.
func New(in *engine.Input, levels []config.SokobanLevel, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{in: in, logger: logger}
	g.levels = parseAll(levels, logger)
	if len(g.levels) == 0 {
		g.levels = parseAll(config.DefaultSokobanConfig().Levels, logger)
	}

	g.titleLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, 0, "", core.ColorWhite)
	g.statsLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, 0, "", core.ColorGray)
	g.helpLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, 0,
		"Arrow Keys: Move  |  R: Restart  |  U: Undo  |  N: Next Level", core.ColorGray)
	g.load(0)
	return g
}

func parseAll(levels []config.SokobanLevel, logger *log.Logger) []Level {
	var out []Level
	for _, l := range levels {
		lvl, err := Parse(l)
		if err != nil {
			logger.Warn("skipping level", "err", err)
			continue
		}
		out = append(out, lvl)
	}
	return out
}

// load starts level i from scratch and lays the board out on the canvas.
func (g *Game) load(i int) {
	g.current = i
	g.puzzle = NewPuzzle(g.levels[i])
	g.gameWon = false

	cols := float64(g.puzzle.Level.Tiles.Cols())
	rows := float64(g.puzzle.Level.Tiles.Rows())
	g.cellSize = math.Min(gfx.DefaultWidth*0.9/cols, gfx.DefaultHeight*0.75/rows)
	g.offsetX = (gfx.DefaultWidth - cols*g.cellSize) / 2
	g.offsetY = (gfx.DefaultHeight - rows*g.cellSize) / 2

	g.titleLabel.Y = g.offsetY / 2
	g.statsLabel.Y = gfx.DefaultHeight - g.offsetY/2 - 12
	g.helpLabel.Y = gfx.DefaultHeight - g.offsetY/2 + 12
	engine.SetText(g.titleLabel, g.puzzle.Level.Title)
	g.updateStats()
}

// nextLevel advances, wrapping after the last level.
func (g *Game) nextLevel() { g.load((g.current + 1) % len(g.levels)) }

func (g *Game) updateStats() {
	engine.SetText(g.statsLabel, fmt.Sprintf("Moves: %d  Pushes: %d", g.puzzle.Moves, g.puzzle.Pushes))
}

// Enter moves on to the next level when the current one was solved.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameWon {
		g.nextLevel()
	}
}

// Update applies one key per tick.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameWon {
		if g.in.AnyPressed(core.KeySpace, core.KeyEnter, "KeyN") {
			g.nextLevel()
		}
		return
	}

	switch {
	case g.in.IsKeyPressed(core.KeyArrowUp):
		g.move(grid.Up)
	case g.in.IsKeyPressed(core.KeyArrowRight):
		g.move(grid.Right)
	case g.in.IsKeyPressed(core.KeyArrowDown):
		g.move(grid.Down)
	case g.in.IsKeyPressed(core.KeyArrowLeft):
		g.move(grid.Left)
	case g.in.IsKeyPressed("KeyR"):
		g.load(g.current)
	case g.in.IsKeyPressed("KeyU"):
		if g.puzzle.Undo() {
			g.updateStats()
		}
	case g.in.IsKeyPressed("KeyN"):
		g.nextLevel()
	}
}

func (g *Game) move(d grid.Point) {
	if !g.puzzle.Move(d) {
		return
	}
	g.updateStats()
	if g.puzzle.Solved() {
		g.gameWon = true
	}
}

// Render draws walls, floor, targets, boxes and the player.
func (g *Game) Render(c *gfx.Canvas) {
	s := g.cellSize
	tiles := g.puzzle.Level.Tiles
	cell := func(p grid.Point) (float64, float64) {
		return g.offsetX + float64(p.X)*s, g.offsetY + float64(p.Y)*s
	}

	tiles.Each(func(x, y int, t Tile) {
		cx, cy := cell(grid.Point{X: x, Y: y})
		switch t {
		case Wall:
			c.FillRect(cx, cy, s, s, gfx.Glyph('▓', core.ColorGray))
		case Floor:
			c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorDarkGray))
		case Target:
			c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorDarkGray))
			c.StrokeCircle(cx+s/2, cy+s/2, s/4, gfx.Glyph('o', core.ColorGreen))
		}
	})

	for _, b := range g.puzzle.Boxes {
		cx, cy := cell(b)
		color := core.ColorBrown
		if tiles.AtP(b) == Target {
			color = core.ColorGreen
		}
		c.FillRect(cx+s*0.1, cy+s*0.1, s*0.8, s*0.8, gfx.Solid(color))
		c.Line(cx+s*0.1, cy+s*0.1, cx+s*0.9, cy+s*0.9, gfx.Glyph('╲', core.ColorBlack))
	}

	px, py := cell(g.puzzle.Player)
	c.FillCircle(px+s/2, py+s/2, s*0.4, gfx.Solid(core.ColorBlue))

	g.SceneBase.Render(c)

	if g.gameWon {
		hud.Overlay(c, "LEVEL COMPLETE!",
			fmt.Sprintf("Moves: %d  Pushes: %d", g.puzzle.Moves, g.puzzle.Pushes),
			"Press Space, Enter or N for the next level")
	}
}

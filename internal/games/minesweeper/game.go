// Package minesweeper implements the classic minefield: uncover every safe
// square using the neighbour counts, flag the mines.
package minesweeper

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

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
		ID:          "minesweeper",
		Title:       "Minesweeper",
		Category:    config.CategoryPuzzle,
		Description: "Clear the field without setting off a mine.",
		Controls:    "Click/Space: reveal  Right click/F: flag  D: difficulty  R: restart",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Config.Minesweeper, env.Seed)
	})
}

var numberColors = [...]core.Color{
	1: core.ColorBlue,
	2: core.ColorGreen,
	3: core.ColorRed,
	4: core.ColorPurple,
	5: core.ColorBrown,
	6: core.ColorCyan,
	7: core.ColorBlack,
	8: core.ColorGray,
}

// Game is the Minesweeper scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	difficulties config.DifficultySet
	preset       config.Preset

	field   *Field
	cursor  grid.Cursor
	elapsed float64

	cellSize         float64
	offsetX, offsetY float64

	gameOver bool
	gameWon  bool

	minesLabel *engine.Entity
	timeLabel  *engine.Entity
	levelLabel *engine.Entity
	helpLabel  *engine.Entity
}

// New creates a Minesweeper scene starting at the set's default preset.
func New(in *engine.Input, difficulties config.DifficultySet, seed int64) *Game {
	if len(difficulties.Difficulties) == 0 {
		difficulties = config.DefaultConfig().Minesweeper
	}
	g := &Game{
		in:           in,
		rng:          rand.New(rand.NewSource(seed)),
		difficulties: difficulties,
		preset:       difficulties.Initial(),
	}
	g.minesLabel = hud.LeftLabel(&g.SceneBase, 0, 0, "", core.ColorWhite)
	g.timeLabel = hud.RightLabel(&g.SceneBase, 0, 0, "", core.ColorWhite)
	g.levelLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, 0, "", core.ColorWhite)
	g.helpLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, 0,
		"Click/Space: Reveal | Right Click/F: Flag | R: Restart | D: Change Difficulty", core.ColorGray)
	g.initialize()
	return g
}

// layout sizes the cells to the preset and moves the labels around the
// board.
func (g *Game) layout() {
	cols, rows := float64(g.preset.Cols), float64(g.preset.Rows)
	g.cellSize = math.Min(gfx.DefaultWidth/cols/1.5, gfx.DefaultHeight/rows/1.5)
	g.offsetX = (gfx.DefaultWidth - cols*g.cellSize) / 2
	g.offsetY = (gfx.DefaultHeight - rows*g.cellSize) / 2

	g.minesLabel.X, g.minesLabel.Y = g.offsetX, g.offsetY/2
	g.timeLabel.X, g.timeLabel.Y = gfx.DefaultWidth-g.offsetX, g.offsetY/2
	g.levelLabel.Y = g.offsetY / 4
	g.helpLabel.Y = gfx.DefaultHeight - g.offsetY/2

	name := g.preset.Name
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	engine.SetText(g.levelLabel, "Difficulty: "+name)
}

func (g *Game) initialize() {
	g.field = NewField(g.preset.Cols, g.preset.Rows, g.preset.Mines)
	g.cursor = grid.Cursor{P: grid.Point{X: g.preset.Cols / 2, Y: g.preset.Rows / 2}, Cols: g.preset.Cols, Rows: g.preset.Rows}
	g.elapsed = 0
	g.gameOver = false
	g.gameWon = false
	g.layout()
	g.updateLabels()
}

// cycleDifficulty switches to the next preset and starts over.
func (g *Game) cycleDifficulty() {
	g.preset = g.difficulties.Cycle(g.preset.Name)
	g.initialize()
}

// Enter starts a new field if the last one was finished.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver || g.gameWon {
		g.initialize()
	}
}

func (g *Game) updateLabels() {
	engine.SetText(g.minesLabel, fmt.Sprintf("Mines: %d", g.field.Remaining()))
	engine.SetText(g.timeLabel, "Time: "+strconv.Itoa(int(g.elapsed)))
}

// cellAt maps a canvas position to a cell.
func (g *Game) cellAt(x, y float64) (grid.Point, bool) {
	p := grid.Point{
		X: int(math.Floor((x - g.offsetX) / g.cellSize)),
		Y: int(math.Floor((y - g.offsetY) / g.cellSize)),
	}
	return p, p.X >= 0 && p.X < g.preset.Cols && p.Y >= 0 && p.Y < g.preset.Rows
}

// Update handles clicks and keys and runs the clock.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	switch {
	case g.in.IsKeyPressed("KeyR"):
		g.initialize()
		return
	case g.in.IsKeyPressed("KeyD"):
		g.cycleDifficulty()
		return
	}

	if g.gameOver || g.gameWon {
		if hud.Restart(g.in) {
			g.initialize()
		}
		return
	}

	if g.field.Placed() {
		g.elapsed += dt
	}

	m := g.in.Mouse()
	switch {
	case g.in.IsMousePressed(core.MouseLeft):
		if p, ok := g.cellAt(m.X, m.Y); ok {
			g.cursor.P = p
			g.open(p)
		}
	case g.in.IsMousePressed(core.MouseRight):
		if p, ok := g.cellAt(m.X, m.Y); ok {
			g.cursor.P = p
			g.field.ToggleFlag(p)
		}
	}

	switch {
	case g.in.IsKeyPressed(core.KeyArrowUp):
		g.cursor.Move(grid.Up)
	case g.in.IsKeyPressed(core.KeyArrowDown):
		g.cursor.Move(grid.Down)
	case g.in.IsKeyPressed(core.KeyArrowLeft):
		g.cursor.Move(grid.Left)
	case g.in.IsKeyPressed(core.KeyArrowRight):
		g.cursor.Move(grid.Right)
	case g.in.AnyPressed(core.KeySpace, core.KeyEnter):
		g.open(g.cursor.P)
	case g.in.IsKeyPressed("KeyF"):
		g.field.ToggleFlag(g.cursor.P)
	}

	g.updateLabels()
}

// open reveals p, or chords it when it is already open. The first open lays
// the mines around it.
func (g *Game) open(p grid.Point) {
	if g.field.At(p).Flagged {
		return
	}
	if !g.field.Placed() {
		g.field.Place(g.rng, p)
	}
	var boom bool
	if g.field.At(p).Revealed {
		boom = g.field.Chord(p)
	} else {
		boom = g.field.Reveal(p)
	}

	switch {
	case boom:
		g.gameOver = true
		g.field.ShowMines()
	case g.field.Cleared():
		g.gameWon = true
		g.field.FlagAll()
	}
}

// Render draws the field, the cursor and the end-of-game banner.
func (g *Game) Render(c *gfx.Canvas) {
	s := g.cellSize
	c.FillRect(g.offsetX, g.offsetY, s*float64(g.preset.Cols), s*float64(g.preset.Rows), gfx.Solid(core.ColorDarkGray))

	for y := range g.preset.Rows {
		for x := range g.preset.Cols {
			p := grid.Point{X: x, Y: y}
			cell := g.field.At(p)
			cx := g.offsetX + float64(x)*s
			cy := g.offsetY + float64(y)*s

			switch {
			case cell.Revealed && cell.Mine:
				c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorRed))
				c.FillCircle(cx+s/2, cy+s/2, s/4, gfx.Glyph('*', core.ColorBlack))
			case cell.Revealed:
				c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorWhite))
				if cell.Adjacent > 0 {
					c.Text(cx+s/2, cy+s/2, strconv.Itoa(cell.Adjacent), numberColors[cell.Adjacent], gfx.AlignCenter)
				}
			default:
				c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorGray))
				if cell.Flagged {
					c.Text(cx+s/2, cy+s/2, "F", core.ColorRed, gfx.AlignCenter)
				}
			}
		}
	}

	if !g.gameOver && !g.gameWon {
		cx := g.offsetX + float64(g.cursor.P.X)*s
		cy := g.offsetY + float64(g.cursor.P.Y)*s
		c.StrokeRect(cx, cy, s, s, gfx.Glyph('▢', core.ColorBrightYellow))
	}

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.Overlay(c, "GAME OVER", fmt.Sprintf("Time: %d seconds", int(g.elapsed)), hud.RestartHint)
	case g.gameWon:
		hud.Overlay(c, "YOU WIN!", fmt.Sprintf("Time: %d seconds", int(g.elapsed)), hud.RestartHint)
	}
}

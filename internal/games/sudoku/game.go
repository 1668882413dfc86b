// Package sudoku implements the number-placement puzzle with generated
// boards that always have exactly one solution.
package sudoku

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
		ID:          "sudoku",
		Title:       "Sudoku",
		Category:    config.CategoryPuzzle,
		Description: "Fill the grid so every row, column and box holds 1 to 9.",
		Controls:    "Click/Arrows: select  1-9: place  N: notes  U: undo  D: difficulty  R: restart",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Config.Sudoku, env.Seed)
	})
}

const (
	maxErrors     = 3
	conflictFlash = 1.0
)

// Cell is one square of the player's board.
type Cell struct {
	Value uint8
	Given bool
	// Notes holds pencil marks, bit n for digit n.
	Notes uint16
}

type conflict struct {
	at   grid.Point
	left float64
}

type move struct {
	cells  *grid.Board[Cell]
	errors int
}

// Game is the Sudoku scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	difficulties config.DifficultySet
	preset       config.Preset

	board    *grid.Board[Cell]
	solution Digits
	cursor   grid.Cursor
	picked   bool
	notes    bool
	errors   int
	flashes  []conflict
	history  []move

	gameOver bool
	gameWon  bool

	cellSize         float64
	offsetX, offsetY float64

	levelLabel *engine.Entity
	errorLabel *engine.Entity
	modeLabel  *engine.Entity
}

// New creates a Sudoku scene starting at the set's default difficulty.
func New(in *engine.Input, difficulties config.DifficultySet, seed int64) *Game {
	if len(difficulties.Difficulties) == 0 {
		difficulties = config.DefaultConfig().Sudoku
	}
	g := &Game{
		in:           in,
		rng:          rand.New(rand.NewSource(seed)),
		difficulties: difficulties,
		preset:       difficulties.Initial(),
	}
	g.cellSize = math.Min(gfx.DefaultWidth/(Size+2)/1.2, gfx.DefaultHeight/(Size+4)/1.2)
	g.offsetX = (gfx.DefaultWidth - Size*g.cellSize) / 2
	g.offsetY = (gfx.DefaultHeight - Size*g.cellSize) / 2

	g.levelLabel = hud.LeftLabel(&g.SceneBase, g.offsetX, g.offsetY/2, "", core.ColorWhite)
	g.errorLabel = hud.RightLabel(&g.SceneBase, gfx.DefaultWidth-g.offsetX, g.offsetY/2, "", core.ColorWhite)
	g.modeLabel = hud.Label(&g.SceneBase, gfx.DefaultWidth/2, g.offsetY/2, "", core.ColorGray)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2,
		"1-9: Place | N: Notes | U: Undo | D: Difficulty | R: Restart", core.ColorGray)
	g.initialize()
	return g
}

func (g *Game) initialize() {
	puzzle, solution := Generate(g.rng, g.preset.Removals)
	g.solution = solution
	g.board = grid.New(Size, Size, Cell{Given: true})
	for r := range Size {
		for c := range Size {
			if v := puzzle[r][c]; v != 0 {
				g.board.Set(c, r, Cell{Value: v, Given: true})
			}
		}
	}
	g.cursor = grid.Cursor{P: grid.Point{X: Size / 2, Y: Size / 2}, Cols: Size, Rows: Size}
	g.picked = false
	g.notes = false
	g.errors = 0
	g.flashes = nil
	g.history = nil
	g.gameOver = false
	g.gameWon = false
	g.updateLabels()
}

// Enter starts a new puzzle if the last one was finished.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver || g.gameWon {
		g.initialize()
	}
}

func (g *Game) updateLabels() {
	name := g.preset.Name
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	engine.SetText(g.levelLabel, "Difficulty: "+name)
	engine.SetText(g.errorLabel, fmt.Sprintf("Errors: %d/%d", g.errors, maxErrors))
	mode := ""
	if g.notes {
		mode = "NOTES"
	}
	engine.SetText(g.modeLabel, mode)
}

// cellAt maps a canvas position to a cell.
func (g *Game) cellAt(x, y float64) (grid.Point, bool) {
	p := grid.Point{
		X: int(math.Floor((x - g.offsetX) / g.cellSize)),
		Y: int(math.Floor((y - g.offsetY) / g.cellSize)),
	}
	return p, p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Update handles selection, digit entry and the conflict flashes.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	switch {
	case g.in.IsKeyPressed("KeyR"):
		g.initialize()
		return
	case g.in.IsKeyPressed("KeyD"):
		g.preset = g.difficulties.Cycle(g.preset.Name)
		g.initialize()
		return
	}

	kept := g.flashes[:0]
	for _, f := range g.flashes {
		if f.left -= dt; f.left > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept

	if g.gameOver || g.gameWon {
		if hud.Restart(g.in) {
			g.initialize()
		}
		return
	}

	if g.in.IsMousePressed(core.MouseLeft) {
		m := g.in.Mouse()
		p, ok := g.cellAt(m.X, m.Y)
		g.picked = ok
		if ok {
			g.cursor.P = p
		}
	}

	switch {
	case g.in.IsKeyPressed(core.KeyArrowUp):
		g.moveCursor(grid.Up)
	case g.in.IsKeyPressed(core.KeyArrowDown):
		g.moveCursor(grid.Down)
	case g.in.IsKeyPressed(core.KeyArrowLeft):
		g.moveCursor(grid.Left)
	case g.in.IsKeyPressed(core.KeyArrowRight):
		g.moveCursor(grid.Right)
	case g.in.IsKeyPressed("KeyN"):
		g.notes = !g.notes
	case g.in.IsKeyPressed("KeyU"):
		g.undo()
	case g.in.AnyPressed(core.KeyBackspace, core.KeyDelete):
		g.erase()
	default:
		for n := uint8(1); n <= Size; n++ {
			if g.in.IsKeyPressed("Digit" + strconv.Itoa(int(n))) {
				g.enter(n)
				break
			}
		}
	}

	g.updateLabels()
}

// moveCursor selects the cursor cell on the first arrow and moves it after.
func (g *Game) moveCursor(d grid.Point) {
	if !g.picked {
		g.picked = true
		return
	}
	g.cursor.Move(d)
}

func (g *Game) editable() bool {
	return g.picked && !g.board.AtP(g.cursor.P).Given
}

func (g *Game) save() {
	g.history = append(g.history, move{cells: g.board.Clone(), errors: g.errors})
}

// enter writes n into the selected cell, or toggles the pencil mark in note
// mode. A wrong digit stays on the board but costs an error.
func (g *Game) enter(n uint8) {
	if !g.editable() {
		return
	}
	g.save()
	p := g.cursor.P
	cell := g.board.AtP(p)

	if g.notes {
		cell.Notes ^= 1 << n
		if cell.Notes&(1<<n) != 0 {
			cell.Value = 0
		}
		g.board.SetP(p, cell)
		return
	}

	g.board.SetP(p, Cell{Value: n})
	if g.solution[p.Y][p.X] != n {
		g.errors++
		g.flashes = append(g.flashes, conflict{at: p, left: conflictFlash})
		if g.errors >= maxErrors {
			g.gameOver = true
			return
		}
	}
	if g.solved() {
		g.gameWon = true
	}
}

func (g *Game) erase() {
	if !g.editable() {
		return
	}
	g.save()
	g.board.SetP(g.cursor.P, Cell{})
}

func (g *Game) undo() {
	if len(g.history) == 0 {
		return
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board = last.cells
	g.errors = last.errors
	g.flashes = nil
}

// solved reports whether the board matches the solution everywhere.
func (g *Game) solved() bool {
	return g.digits() == g.solution
}

// digits returns the values on the board.
func (g *Game) digits() Digits {
	var d Digits
	g.board.Each(func(x, y int, c Cell) { d[y][x] = c.Value })
	return d
}

// Render draws the grid, the digits, the pencil marks and the highlights.
func (g *Game) Render(c *gfx.Canvas) {
	s := g.cellSize
	area := Size * s
	c.FillRect(g.offsetX, g.offsetY, area, area, gfx.Solid(core.ColorWhite))

	var sel uint8
	if g.picked {
		sel = g.board.AtP(g.cursor.P).Value
	}
	flashing := make(map[grid.Point]bool, len(g.flashes))
	for _, f := range g.flashes {
		flashing[f.at] = true
	}

	g.board.Each(func(x, y int, cell Cell) {
		p := grid.Point{X: x, Y: y}
		cx := g.offsetX + float64(x)*s
		cy := g.offsetY + float64(y)*s
		switch {
		case flashing[p]:
			c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorRed))
		case g.picked && p == g.cursor.P:
			c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorSky))
		case sel != 0 && cell.Value == sel:
			c.FillRect(cx+1, cy+1, s-2, s-2, gfx.Solid(core.ColorBrightGreen))
		}

		if cell.Value != 0 {
			color := core.ColorBlue
			if cell.Given {
				color = core.ColorBlack
			}
			c.Text(cx+s/2, cy+s/2, strconv.Itoa(int(cell.Value)), color, gfx.AlignCenter)
			return
		}
		for n := 1; n <= Size; n++ {
			if cell.Notes&(1<<n) == 0 {
				continue
			}
			nx := cx + (float64((n-1)%Box)+0.5)*s/Box
			ny := cy + (float64((n-1)/Box)+0.5)*s/Box
			c.Text(nx, ny, strconv.Itoa(n), core.ColorGray, gfx.AlignCenter)
		}
	})

	for i := 0; i <= Size; i++ {
		color := core.ColorGray
		if i%Box == 0 {
			color = core.ColorBlack
		}
		o := float64(i) * s
		c.Line(g.offsetX, g.offsetY+o, g.offsetX+area, g.offsetY+o, gfx.Solid(color))
		c.Line(g.offsetX+o, g.offsetY, g.offsetX+o, g.offsetY+area, gfx.Solid(color))
	}

	g.SceneBase.Render(c)

	errors := fmt.Sprintf("Errors: %d/%d", g.errors, maxErrors)
	switch {
	case g.gameWon:
		hud.Overlay(c, "PUZZLE SOLVED!", errors, hud.RestartHint)
	case g.gameOver:
		hud.Overlay(c, "GAME OVER", errors, hud.RestartHint)
	}
}

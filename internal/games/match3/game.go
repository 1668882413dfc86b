// Package match3 implements the gem-swapping puzzle: line up three or more
// of a kind before the clock runs out.
package match3

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

func init() {
	registry.Register(registry.Info{
		ID:          "match3",
		Title:       "Match-3",
		Category:    config.CategoryPuzzle,
		Description: "Swap neighbouring gems to line up three of a kind.",
		Controls:    "Click/Arrows+Space: select and swap  R: restart",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

const (
	timeLimit = 60.0
	swapTime  = 0.25
	clearTime = 0.3
	// fallSpeed is in rows per second.
	fallSpeed = 5.0
)

// phase is the board animation the scene is in. Input is only taken while
// idle.
type phase int

const (
	idle phase = iota
	swapping
	unswapping
	clearing
	falling
)

func (p phase) String() string {
	switch p {
	case swapping:
		return "swapping"
	case unswapping:
		return "unswapping"
	case clearing:
		return "clearing"
	case falling:
		return "falling"
	}
	return "idle"
}

var (
	tileColors = [Kinds + 1]core.Color{
		1: core.ColorRed,
		2: core.ColorGreen,
		3: core.ColorBlue,
		4: core.ColorYellow,
		5: core.ColorPurple,
		6: core.ColorOrange,
	}
	tileGlyphs = [Kinds + 1]rune{1: '♦', 2: '★', 3: '●', 4: '■', 5: '▲', 6: '✿'}
)

// Game is the Match-3 scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	board    Board
	score    int
	timeLeft float64
	gameOver bool

	selected grid.Point
	picked   bool
	cursor   grid.Cursor

	phase    phase
	timer    float64
	duration float64
	from, to grid.Point
	matched  []grid.Point
	drops    [Size][Size]int
	cascade  grid.Cascade

	cellSize         float64
	offsetX, offsetY float64

	scoreLabel *engine.Entity
	timeLabel  *engine.Entity
}

// New creates a Match-3 scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:  in,
		rng: rand.New(rand.NewSource(seed)),
	}
	g.cellSize = math.Min(gfx.DefaultWidth/10/1.2, gfx.DefaultHeight/12/1.2)
	g.offsetX = (gfx.DefaultWidth - Size*g.cellSize) / 2
	g.offsetY = (gfx.DefaultHeight - Size*g.cellSize) / 2
	g.scoreLabel = hud.LeftLabel(&g.SceneBase, g.offsetX, g.offsetY-30, "", core.ColorWhite)
	g.timeLabel = hud.RightLabel(&g.SceneBase, g.offsetX+Size*g.cellSize, g.offsetY-30, "", core.ColorWhite)
	g.reset()
	return g
}

func (g *Game) reset() {
	g.board = Deal(g.rng)
	g.score = 0
	g.timeLeft = timeLimit
	g.gameOver = false
	g.picked = false
	g.cursor = grid.Cursor{P: grid.Point{X: Size / 2, Y: Size / 2}, Cols: Size, Rows: Size}
	g.phase = idle
	g.matched = nil
	g.drops = [Size][Size]int{}
	g.updateLabels()
}

// Enter deals a new board if the clock ran out.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver {
		g.reset()
	}
}

func (g *Game) updateLabels() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
	engine.SetText(g.timeLabel, fmt.Sprintf("Time: %d", int(math.Ceil(g.timeLeft))))
}

// Update runs the clock, the board animation and the selection input.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}
	if g.in.IsKeyPressed("KeyR") {
		g.reset()
		return
	}

	g.timeLeft -= dt
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.gameOver = true
		g.picked = false
		g.updateLabels()
		return
	}

	if g.phase != idle {
		g.animate(dt)
	} else {
		g.handleInput()
	}
	g.updateLabels()
}

func (g *Game) handleInput() {
	if g.in.IsMousePressed(core.MouseLeft) {
		m := g.in.Mouse()
		if p, ok := g.cellAt(m.X, m.Y); ok {
			g.cursor.P = p
			g.pick(p)
		}
		return
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
		g.pick(g.cursor.P)
	}
}

// pick selects p, deselects it when picked twice, swaps it with an adjacent
// selection or moves the selection elsewhere.
func (g *Game) pick(p grid.Point) {
	switch {
	case !g.picked:
		g.selected, g.picked = p, true
	case g.selected == p:
		g.picked = false
	case Adjacent(g.selected, p):
		g.picked = false
		g.from, g.to = g.selected, p
		g.start(swapping, swapTime)
	default:
		g.selected = p
	}
}

func (g *Game) start(p phase, d float64) {
	g.phase = p
	g.timer = 0
	g.duration = d
}

func (g *Game) progress() float64 {
	if g.duration <= 0 {
		return 1
	}
	return math.Min(g.timer/g.duration, 1)
}

// animate advances the current phase and moves on when it completes.
func (g *Game) animate(dt float64) {
	g.timer += dt
	if g.timer < g.duration {
		return
	}
	switch g.phase {
	case swapping:
		g.board.Swap(g.from, g.to)
		g.cascade = grid.NewCascade(maxCascade)
		if !g.cascade.Next(g.findMatches) {
			g.start(unswapping, swapTime)
		}
	case unswapping:
		g.board.Swap(g.from, g.to)
		g.phase = idle
	case clearing:
		points, drops := g.board.Pass(g.matched, g.rng)
		g.score += points
		g.matched = nil
		g.drops = drops
		g.start(falling, float64(g.maxDrop())/fallSpeed)
	case falling:
		g.drops = [Size][Size]int{}
		if !g.cascade.Next(g.findMatches) {
			g.matched = nil
			g.phase = idle
		}
	}
}

// findMatches starts the clearing phase if the board has runs. Each call is
// one pass of the swap's cascade.
func (g *Game) findMatches(int) bool {
	g.matched = g.board.Matches()
	if len(g.matched) == 0 {
		return false
	}
	g.start(clearing, clearTime)
	return true
}

func (g *Game) maxDrop() int {
	m := 0
	for _, row := range g.drops {
		for _, d := range row {
			m = max(m, d)
		}
	}
	return m
}

// cellAt maps a canvas position to a cell.
func (g *Game) cellAt(x, y float64) (grid.Point, bool) {
	p := grid.Point{
		X: int(math.Floor((x - g.offsetX) / g.cellSize)),
		Y: int(math.Floor((y - g.offsetY) / g.cellSize)),
	}
	return p, p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// tilePos returns where the gem at p is drawn this frame.
func (g *Game) tilePos(p grid.Point) core.Vec {
	at := core.V(float64(p.X), float64(p.Y))
	t := g.progress()
	switch g.phase {
	case swapping, unswapping:
		other := g.to
		if p == g.to {
			other = g.from
		} else if p != g.from {
			break
		}
		at = core.V(core.Lerp(at.X, float64(other.X), t), core.Lerp(at.Y, float64(other.Y), t))
	case falling:
		at.Y -= float64(g.drops[p.Y][p.X]) * (1 - t)
	}
	return core.V(g.offsetX+at.X*g.cellSize, g.offsetY+at.Y*g.cellSize)
}

// Render draws the board, the selection and the cursor.
func (g *Game) Render(c *gfx.Canvas) {
	s := g.cellSize
	c.FillRect(g.offsetX, g.offsetY, s*Size, s*Size, gfx.Solid(core.ColorDarkGray))

	matched := make(map[grid.Point]bool, len(g.matched))
	for _, p := range g.matched {
		matched[p] = true
	}

	for y := range Size {
		for x := range Size {
			p := grid.Point{X: x, Y: y}
			t := g.board.AtP(p)
			if t == Empty {
				continue
			}
			pos := g.tilePos(p)
			if pos.Y < g.offsetY-s/2 {
				continue
			}
			r := s * 0.4
			if matched[p] {
				r *= 1 - g.progress()
			}
			c.FillCircle(pos.X+s/2, pos.Y+s/2, r, gfx.Glyph(tileGlyphs[t], tileColors[t]))
		}
	}

	if g.picked {
		c.StrokeRect(g.offsetX+float64(g.selected.X)*s, g.offsetY+float64(g.selected.Y)*s, s, s,
			gfx.Glyph('▣', core.ColorBrightWhite))
	}
	if !g.gameOver {
		c.StrokeRect(g.offsetX+float64(g.cursor.P.X)*s, g.offsetY+float64(g.cursor.P.Y)*s, s, s,
			gfx.Glyph('▢', core.ColorBrightYellow))
	}

	g.SceneBase.Render(c)

	if g.gameOver {
		hud.Overlay(c, "TIME'S UP!", fmt.Sprintf("Final Score: %d", g.score), hud.RestartHint)
	}
}

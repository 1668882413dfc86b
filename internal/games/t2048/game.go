// Package t2048 implements the 2048 sliding tile puzzle.
package t2048

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/hud"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
	"github.com/vovakirdan/gameflix/internal/registry"
	"github.com/vovakirdan/gameflix/internal/storage"
)

// BestScoreKey is the store key holding the best score.
const BestScoreKey = "2048_bestScore"

func init() {
	registry.Register(registry.Info{
		ID:          "2048",
		Title:       "2048",
		Category:    config.CategoryPuzzle,
		Description: "Slide and merge tiles until one reads 2048.",
		Controls:    "Arrows: slide  R: restart",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Store, env.Log, env.Seed)
	})
}

// Game is the 2048 scene.
type Game struct {
	engine.SceneBase

	in    *engine.Input
	store storage.KV
	log   *log.Logger
	rng   *rand.Rand

	board *Board
	pops  *grid.Board[float64] // spawn animation scale per cell
	score int
	best  int

	gameOver bool
	gameWon  bool

	tile    float64
	offsetX float64
	offsetY float64

	scoreLabel *engine.Entity
	bestLabel  *engine.Entity
}

// New creates a 2048 scene. The best score lives in store.
func New(in *engine.Input, store storage.KV, logger *log.Logger, seed int64) *Game {
	if store == nil {
		store = storage.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		in:    in,
		store: store,
		log:   logger,
		rng:   rand.New(rand.NewSource(seed)),
		tile:  min(gfx.DefaultWidth/Size/1.2, gfx.DefaultHeight/Size/1.2),
	}
	area := Size * g.tile
	g.offsetX = (gfx.DefaultWidth - area) / 2
	g.offsetY = (gfx.DefaultHeight - area) / 2

	g.scoreLabel = hud.Label(&g.SceneBase, g.offsetX+area/4, g.offsetY/2, "Score: 0", core.ColorWhite)
	g.bestLabel = hud.Label(&g.SceneBase, g.offsetX+area*3/4, g.offsetY/2, "Best: 0", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2, "Arrow Keys: Move Tiles  |  R: Restart Game", core.ColorGray)

	g.initialize()
	return g
}

func (g *Game) initialize() {
	g.board = NewBoard()
	g.pops = grid.New(Size, Size, 1.0)
	g.pops.Fill(1)
	g.score = 0
	g.gameOver = false
	g.gameWon = false
	g.updateLabels()
	g.addRandomTile()
	g.addRandomTile()
}

// Enter reloads the best score and restarts a finished game.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	g.best = g.loadBest()
	g.updateLabels()
	if g.gameOver || g.gameWon {
		g.initialize()
	}
}

// loadBest reads the stored best score. Missing or malformed values count
// as zero.
func (g *Game) loadBest() int {
	raw, ok, err := g.store.Get(BestScoreKey)
	if err != nil {
		g.log.Error("could not load best score", "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// saveBest records the score if it beats the stored best. Other sessions may
// share the store, so the comparison is left to it and g.best takes whatever
// ends up stored.
func (g *Game) saveBest() {
	best, err := g.store.SetMax(BestScoreKey, g.score)
	if err != nil {
		g.log.Error("could not save best score", "err", err)
		return
	}
	g.best = max(best, g.score)
}

func (g *Game) updateLabels() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
	engine.SetText(g.bestLabel, fmt.Sprintf("Best: %d", g.best))
}

// addRandomTile drops a 2 (90%) or a 4 into a random empty cell.
func (g *Game) addRandomTile() bool {
	empty := Empty(g.board)
	if len(empty) == 0 {
		return false
	}
	p := empty[g.rng.Intn(len(empty))]
	v := 2
	if g.rng.Float64() >= 0.9 {
		v = 4
	}
	g.board.SetP(p, v)
	g.pops.SetP(p, 0.1)
	return true
}

// move slides the board in dir. The terminal check runs right after the
// new tile lands.
func (g *Game) move(dir grid.Point) Outcome {
	if g.gameOver || g.gameWon {
		return Outcome{}
	}
	g.pops.Fill(1)

	out := Slide(g.board, dir)
	g.score += out.Gained
	if out.Won {
		g.gameWon = true
	}
	if out.Moved {
		if g.score > g.best {
			g.best = g.score
			g.saveBest()
		}
		g.updateLabels()
		g.addRandomTile()
		if !MovesAvailable(g.board) {
			g.gameOver = true
		}
	}
	return out
}

// animating reports whether a spawned tile is still popping in.
func (g *Game) animating() bool {
	return g.pops.Count(func(s float64) bool { return s < 1 }) > 0
}

// Update grows new tiles and applies at most one move per tick.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	busy := false
	g.pops.Each(func(x, y int, s float64) {
		if s < 1 {
			g.pops.Set(x, y, min(1, s+dt*5))
			busy = true
		}
	})

	if !busy {
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
			g.initialize()
		}
	}

	if (g.gameOver || g.gameWon) && hud.Restart(g.in) {
		g.initialize()
	}
}

var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorOrange,
	16:   core.ColorBrightRed,
	32:   core.ColorRed,
	64:   core.ColorMagenta,
	128:  core.ColorYellow,
	256:  core.ColorBrightYellow,
	512:  core.ColorGold,
	1024: core.ColorBrightGreen,
	2048: core.ColorGreen,
}

// Render draws the board and the tiles.
func (g *Game) Render(c *gfx.Canvas) {
	area := Size * g.tile
	c.FillRect(g.offsetX, g.offsetY, area, area, gfx.Glyph('░', core.ColorBrown))

	const pad = 6
	cell := g.tile - pad*2
	g.board.Each(func(x, y, v int) {
		px := g.offsetX + float64(x)*g.tile + pad
		py := g.offsetY + float64(y)*g.tile + pad
		if v == 0 {
			c.FillRect(px, py, cell, cell, gfx.Glyph('·', core.ColorDarkGray))
			return
		}
		scale := g.pops.At(x, y)
		size := cell * scale
		sx, sy := px+(cell-size)/2, py+(cell-size)/2
		color, ok := tileColors[v]
		if !ok {
			color = core.ColorPurple
		}
		c.FillRect(sx, sy, size, size, gfx.Solid(color))
		if scale > 0.5 {
			c.Text(sx+size/2, sy+size/2, strconv.Itoa(v), core.ColorBlack, gfx.AlignCenter)
		}
	})

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.GameOver(c, "Game Over!", g.score)
	case g.gameWon:
		hud.Overlay(c, "You Win!", fmt.Sprintf("Score: %d", g.score), hud.RestartHint)
	}
}

// Package pacman implements a maze chase: eat every dot while four ghosts
// hunt you, or eat a power pellet and hunt them back.
package pacman

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/hud"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/pattern/agent"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
	"github.com/vovakirdan/gameflix/internal/registry"
)

const (
	pacmanSpeed   = 100
	ghostSpeed    = 75 // plus 5 per ghost index
	radius        = TileSize/2 - 2
	powerDuration = 8.0
	releaseDelay  = 2.0 // seconds between ghosts leaving the house
	dotScore      = 10
	powerScore    = 50
	startLives    = 3
)

func init() {
	registry.Register(registry.Info{
		ID:          "pacman",
		Title:       "Pac-Man",
		Category:    config.CategoryClassics,
		Description: "Clear the maze of dots while dodging the ghosts.",
		Controls:    "Arrows: change direction",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

type ghost struct {
	mover
	name    string
	color   core.Color
	index   int
	scared  bool
	eaten   bool
	inHouse bool
	wait    float64 // time left before leaving the house
	at      core.Vec
}

// Game is the Pac-Man scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	maze    Maze
	pac     mover
	nextDir grid.Point
	ghosts  []*ghost

	score     int
	lives     int
	powerTime float64
	mouth     float64
	mouthDir  float64
	gameOver  bool
	gameWon   bool

	offsetX float64
	offsetY float64

	scoreLabel *engine.Entity
	livesLabel *engine.Entity
}

// New creates a Pac-Man scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:      in,
		rng:     rand.New(rand.NewSource(seed)),
		offsetX: (gfx.DefaultWidth - Cols*TileSize) / 2,
		offsetY: (gfx.DefaultHeight - Rows*TileSize) / 2,
	}
	g.scoreLabel = hud.LeftLabel(&g.SceneBase, g.offsetX, g.offsetY/2, "Score: 0", core.ColorWhite)
	g.livesLabel = hud.RightLabel(&g.SceneBase, gfx.DefaultWidth-g.offsetX, g.offsetY/2, "Lives: 3", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2, "Arrow Keys: Change Direction", core.ColorGray)

	g.ghosts = []*ghost{
		{name: "Blinky", color: core.ColorRed, index: 0},
		{name: "Pinky", color: core.ColorPink, index: 1},
		{name: "Inky", color: core.ColorCyan, index: 2},
		{name: "Clyde", color: core.ColorOrange, index: 3},
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.maze = newMaze()
	g.score = 0
	g.lives = startLives
	g.gameOver = false
	g.gameWon = false
	g.resetPositions()
	g.updateLabels()
}

// resetPositions puts everyone back on their start tiles after a death.
func (g *Game) resetPositions() {
	g.pac = mover{speed: pacmanSpeed}
	g.pac.place(pacmanStart, grid.Left)
	g.nextDir = grid.Left
	g.mouth, g.mouthDir = 0.3, 1
	g.powerTime = 0

	for _, gh := range g.ghosts {
		start := ghostStarts[gh.index]
		gh.mover = mover{speed: float64(ghostSpeed + 5*gh.index)}
		gh.place(start, grid.Point{})
		gh.scared = false
		gh.eaten = false
		gh.inHouse = gh.index != 0
		gh.wait = float64(gh.index) * releaseDelay
		gh.at = Center(start)
		if !gh.inHouse {
			g.chooseGhostDir(gh)
		}
	}
}

// Enter restarts a finished game.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver || g.gameWon {
		g.reset()
	}
}

func (g *Game) updateLabels() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
	engine.SetText(g.livesLabel, fmt.Sprintf("Lives: %d", g.lives))
}

func (g *Game) powerMode() bool { return g.powerTime > 0 }

// Update steers Pac-Man, moves everyone and resolves contacts.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver || g.gameWon {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	switch {
	case g.in.IsKeyPressed(core.KeyArrowUp):
		g.nextDir = grid.Up
	case g.in.IsKeyPressed(core.KeyArrowDown):
		g.nextDir = grid.Down
	case g.in.IsKeyPressed(core.KeyArrowLeft):
		g.nextDir = grid.Left
	case g.in.IsKeyPressed(core.KeyArrowRight):
		g.nextDir = grid.Right
	}

	if g.powerMode() {
		g.powerTime -= dt
		if !g.powerMode() {
			for _, gh := range g.ghosts {
				gh.scared = false
			}
		}
	}

	g.movePacman(dt)
	for _, gh := range g.ghosts {
		g.moveGhost(gh, dt)
	}
	g.checkGhosts()

	g.mouth += dt * 5 * g.mouthDir
	if g.mouth >= 0.5 {
		g.mouth, g.mouthDir = 0.5, -1
	} else if g.mouth <= 0 {
		g.mouth, g.mouthDir = 0, 1
	}
}

func (g *Game) movePacman(dt float64) {
	p := &g.pac
	reverse := grid.Point{X: -p.dir.X, Y: -p.dir.Y}
	switch {
	case p.dir != (grid.Point{}) && g.nextDir == reverse:
		p.reverse(g.maze)
	case p.dir == (grid.Point{}) && p.progress == 0 && g.maze.Open(p.tile.Add(g.nextDir)):
		p.dir, p.facing = g.nextDir, g.nextDir
	}

	if p.progress == 0 {
		g.eat(p.tile)
	}
	p.advance(dt, g.maze, func(m *mover) {
		g.eat(m.tile)
		switch {
		case g.maze.Open(m.tile.Add(g.nextDir)):
			m.dir = g.nextDir
			m.facing = m.dir
		case !g.maze.Open(m.tile.Add(m.dir)):
			m.dir = grid.Point{}
		}
	})
}

func (g *Game) eat(p grid.Point) {
	switch g.maze.AtP(p) {
	case Dot:
		g.maze.SetP(p, Empty)
		g.score += dotScore
	case Power:
		g.maze.SetP(p, Empty)
		g.score += powerScore
		g.powerTime = powerDuration
		for _, gh := range g.ghosts {
			if !gh.eaten {
				gh.scared = true
			}
		}
	default:
		return
	}
	g.updateLabels()
	if g.maze.Dots() == 0 {
		g.gameWon = true
	}
}

func (g *Game) chooseGhostDir(gh *ghost) {
	target := g.pac.tile
	gh.dir = agent.ChooseDirection(g.rng, gh.tile, gh.facing, target, g.maze.Open, gh.scared, agent.ChaseBias)
	if gh.dir != (grid.Point{}) {
		gh.facing = gh.dir
	}
}

// glide moves gh in a straight line toward target, reporting arrival.
func glide(gh *ghost, target core.Vec, speed, dt float64) bool {
	d := target.Sub(gh.at)
	step := speed * dt
	if d.Len() <= step {
		gh.at = target
		return true
	}
	gh.at = gh.at.Add(d.Norm().Scale(step))
	return false
}

func (g *Game) moveGhost(gh *ghost, dt float64) {
	switch {
	case gh.eaten:
		// eyes fly home at double speed, through walls
		if glide(gh, Center(ghostHome), gh.speed*2, dt) {
			gh.eaten = false
			gh.scared = g.powerMode()
			gh.inHouse = true
			gh.wait = 0
		}
		return
	case gh.inHouse:
		if gh.wait > 0 {
			gh.wait -= dt
			return
		}
		target := Center(ghostExit)
		if gh.at.X != target.X {
			target = core.V(target.X, gh.at.Y)
		}
		if glide(gh, target, gh.speed, dt) && gh.at == Center(ghostExit) {
			gh.inHouse = false
			gh.place(ghostExit, grid.Point{})
			gh.facing = grid.Left
			g.chooseGhostDir(gh)
		}
		return
	}

	if gh.dir == (grid.Point{}) {
		g.chooseGhostDir(gh)
	}
	gh.advance(dt, g.maze, func(m *mover) { g.chooseGhostDir(gh) })
	gh.at = gh.pos()
}

// checkGhosts resolves contact between Pac-Man and the ghosts.
func (g *Game) checkGhosts() {
	pac := g.pac.pos()
	for _, gh := range g.ghosts {
		if gh.eaten || pac.Dist(gh.at) >= radius*2 {
			continue
		}
		if gh.scared {
			gh.eaten = true
			gh.scared = false
			eaten := 0
			for _, o := range g.ghosts {
				if o.eaten {
					eaten++
				}
			}
			g.score += 100 << eaten
			g.updateLabels()
			continue
		}
		g.lives--
		g.updateLabels()
		if g.lives <= 0 {
			g.gameOver = true
		} else {
			g.resetPositions()
		}
		return
	}
}

// Render draws the maze, Pac-Man and the ghosts.
func (g *Game) Render(c *gfx.Canvas) {
	c.Save()
	c.Translate(g.offsetX, g.offsetY)

	g.maze.Each(func(x, y int, t Tile) {
		ctr := Center(grid.Point{X: x, Y: y})
		switch t {
		case Wall:
			c.FillRect(float64(x)*TileSize, float64(y)*TileSize, TileSize, TileSize, gfx.Solid(core.ColorBlue))
		case Dot:
			c.FillCircle(ctr.X, ctr.Y, TileSize/10, gfx.Glyph('·', core.ColorYellow))
		case Power:
			c.FillCircle(ctr.X, ctr.Y, TileSize/4, gfx.Glyph('●', core.ColorBrightYellow))
		}
	})

	if !g.gameOver {
		p := g.pac.pos()
		c.FillCircle(p.X, p.Y, radius, gfx.Solid(core.ColorYellow))
		// the mouth is a wedge cut out along the facing direction
		if g.mouth > 0.1 {
			a := math.Atan2(float64(g.pac.facing.Y), float64(g.pac.facing.X))
			open := g.mouth * math.Pi / 2
			c.FillPolygon([]core.Vec{p, p.Add(core.FromAngle(a-open, radius+1)), p.Add(core.FromAngle(a+open, radius+1))}, gfx.Glyph(' ', core.ColorDefault))
		}
	}

	for _, gh := range g.ghosts {
		color := gh.color
		switch {
		case gh.eaten:
			c.Text(gh.at.X, gh.at.Y, "oo", core.ColorWhite, gfx.AlignCenter)
			continue
		case gh.scared:
			color = core.ColorBlue
			if g.powerTime < 2 && int(g.powerTime*4)%2 == 0 {
				color = core.ColorWhite
			}
		}
		c.FillRect(gh.at.X-radius, gh.at.Y-radius, radius*2, radius*2, gfx.Solid(color))
	}
	c.Restore()

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.GameOver(c, "GAME OVER", g.score)
	case g.gameWon:
		hud.Overlay(c, "YOU WIN!", fmt.Sprintf("Final Score: %d", g.score), hud.RestartHint)
	}
}

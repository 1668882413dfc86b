// Package platformer implements a side-scrolling run and jump level with
// coins to collect, enemies to stomp and an exit door.
package platformer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/hud"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
	"github.com/vovakirdan/gameflix/internal/registry"
)

func init() {
	registry.Register(registry.Info{
		ID:          "platformer",
		Title:       "Platformer",
		Category:    config.CategoryAction,
		Description: "Run, jump and stomp your way to the exit door.",
		Controls:    "Left/Right: move  Space/Up: jump",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

const (
	gravity     = 1500.0
	jumpSpeed   = 600.0
	moveSpeed   = 300.0
	stompBounce = 0.6

	playerW = 32
	playerH = 48

	enemySize   = 32
	enemySpeed  = 50.0
	patrolTiles = 2
	coinSize    = 16
	coinSpin    = 5.0

	coinScore  = 100
	stompScore = 50
)

var playerStart = core.V(100, 300)

type enemy struct {
	physics.Body
	patrolStart float64
	patrolEnd   float64
}

type coin struct {
	pos       core.Vec
	spin      float64
	collected bool
}

// Game is the Platformer scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	level    Level
	player   physics.Body
	onGround bool
	facing   float64
	enemies  []enemy
	coins    []coin
	camera   float64

	score         int
	gameOver      bool
	levelComplete bool

	scoreLabel *engine.Entity
}

// New creates a Platformer scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:  in,
		rng: rand.New(rand.NewSource(seed)),
	}
	g.scoreLabel = hud.LeftLabel(&g.SceneBase, 100, 30, "", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-20, "Arrow Keys: Move | Space: Jump", core.ColorWhite)
	g.reset()
	return g
}

func (g *Game) reset() {
	g.level = loadLevel()
	g.player = physics.Body{Pos: playerStart, W: playerW, H: playerH}
	g.onGround = false
	g.facing = 1
	g.camera = 0
	g.score = 0
	g.gameOver = false
	g.levelComplete = false

	g.coins = g.coins[:0]
	for _, p := range g.level.Coins {
		g.coins = append(g.coins, coin{pos: p})
	}
	g.enemies = g.enemies[:0]
	for _, p := range g.level.Enemies {
		vx := enemySpeed
		if g.rng.Float64() > 0.5 {
			vx = -vx
		}
		tx := math.Floor(p.X / TileSize)
		g.enemies = append(g.enemies, enemy{
			Body:        physics.Body{Pos: p, Vel: core.V(vx, 0), W: enemySize, H: enemySize},
			patrolStart: (tx - patrolTiles) * TileSize,
			patrolEnd:   (tx + patrolTiles) * TileSize,
		})
	}
	g.updateLabel()
}

// Enter restarts the level if the last run ended.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver || g.levelComplete {
		g.reset()
	}
}

func (g *Game) updateLabel() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
}

// Update runs the player, the enemies, the pickups and the camera.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver || g.levelComplete {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	g.movePlayer(dt)
	g.moveEnemies(dt)
	g.collectCoins(dt)
	if g.player.Box().Overlaps(g.level.Exit) {
		g.levelComplete = true
	}
	g.follow()
	g.updateLabel()
}

func (g *Game) movePlayer(dt float64) {
	p := &g.player
	p.Vel.X = 0
	switch {
	case g.in.IsKeyDown(core.KeyArrowLeft):
		p.Vel.X, g.facing = -moveSpeed, -1
	case g.in.IsKeyDown(core.KeyArrowRight):
		p.Vel.X, g.facing = moveSpeed, 1
	}
	p.Vel.Y += gravity * dt

	g.onGround = physics.OnGround(p.Box(), g.level.Tiles)
	if g.onGround && g.in.AnyPressed(core.KeySpace, core.KeyArrowUp) {
		p.Vel.Y = -jumpSpeed
		g.onGround = false
	}

	box, vx, vy, hit := physics.MoveAndCollide(p.Box(), p.Vel.X, p.Vel.Y, dt, g.level.Tiles)
	p.Pos, p.Vel = box.Center(), core.V(vx, vy)
	if hit.Grounded() {
		g.onGround = true
	}

	if box.Y > float64(Rows)*TileSize {
		g.gameOver = true
	}
}

// moveEnemies walks each enemy between its patrol ends and resolves contact
// with the player: landing on top from above stomps it, anything else is
// fatal.
func (g *Game) moveEnemies(dt float64) {
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		e.Integrate(dt)
		switch {
		case e.Pos.X <= e.patrolStart:
			e.Vel.X = math.Abs(e.Vel.X)
		case e.Pos.X >= e.patrolEnd:
			e.Vel.X = -math.Abs(e.Vel.X)
		}

		if g.player.Box().Overlaps(e.Box()) {
			if g.player.Vel.Y > 0 && g.player.Pos.Y < e.Pos.Y-enemySize/4 {
				g.player.Vel.Y = -jumpSpeed * stompBounce
				g.score += stompScore
				continue
			}
			g.gameOver = true
		}
		alive = append(alive, e)
	}
	g.enemies = alive
}

func (g *Game) collectCoins(dt float64) {
	box := g.player.Box()
	for i := range g.coins {
		c := &g.coins[i]
		if c.collected {
			continue
		}
		c.spin += coinSpin * dt
		if box.Overlaps(physics.Centered(c.pos.X, c.pos.Y, coinSize, coinSize)) {
			c.collected = true
			g.score += coinScore
		}
	}
}

// follow centers the camera on the player, clamped to the level.
func (g *Game) follow() {
	maxX := float64(Cols)*TileSize - gfx.DefaultWidth
	g.camera = core.Clamp(g.player.Pos.X-gfx.DefaultWidth/2, 0, maxX)
}

func (g *Game) coinsLeft() int {
	n := 0
	for _, c := range g.coins {
		if !c.collected {
			n++
		}
	}
	return n
}

// Render draws the parallax backdrop, then the level through the camera.
func (g *Game) Render(c *gfx.Canvas) {
	c.FillRect(0, 0, gfx.DefaultWidth, gfx.DefaultHeight, gfx.Solid(core.ColorSky))
	for i := range 5 {
		parallax := 0.2 + float64(i)*0.1
		x := -g.camera*parallax + float64(i)*200
		h := 150 + float64(i)*20
		c.FillPolygon([]core.Vec{
			{X: x, Y: gfx.DefaultHeight},
			{X: x + gfx.DefaultWidth/4, Y: gfx.DefaultHeight - h},
			{X: x + gfx.DefaultWidth/2, Y: gfx.DefaultHeight},
		}, gfx.Glyph('▲', core.ColorPurple))
	}

	c.Save()
	c.Translate(-g.camera, 0)
	g.renderLevel(c)
	g.renderActors(c)
	c.Restore()

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.GameOver(c, "GAME OVER", g.score)
	case g.levelComplete:
		hud.GameOver(c, "LEVEL COMPLETE!", g.score)
	}
}

func (g *Game) renderLevel(c *gfx.Canvas) {
	first := int(g.camera / TileSize)
	last := min(Cols, first+gfx.DefaultWidth/TileSize+2)
	for y := range Rows {
		for x := first; x < last; x++ {
			if !g.level.Tiles.Solid(x, y) {
				continue
			}
			px, py := float64(x)*TileSize, float64(y)*TileSize
			c.FillRect(px, py, TileSize, TileSize, gfx.Solid(core.ColorBrown))
			if !g.level.Tiles.Solid(x, y-1) || y == 0 {
				c.FillRect(px, py, TileSize, 5, gfx.Solid(core.ColorGreen))
			}
		}
	}
	e := g.level.Exit
	c.FillRect(e.X, e.Y, e.W, e.H, gfx.Glyph('▯', core.ColorOrange))
}

func (g *Game) renderActors(c *gfx.Canvas) {
	for _, k := range g.coins {
		if k.collected {
			continue
		}
		w := coinSize / 2 * math.Abs(math.Cos(k.spin))
		c.FillRect(k.pos.X-w, k.pos.Y-coinSize/2, 2*w, coinSize, gfx.Glyph('●', core.ColorGold))
	}
	for _, e := range g.enemies {
		b := e.Box()
		c.FillRect(b.X, b.Y, b.W, b.H, gfx.Solid(core.ColorRed))
	}
	b := g.player.Box()
	c.FillRect(b.X, b.Y, b.W, b.H, gfx.Solid(core.ColorBlue))
	c.FillCircle(g.player.Pos.X+g.facing*8, b.Y+12, 3, gfx.Glyph('•', core.ColorBrightWhite))
}

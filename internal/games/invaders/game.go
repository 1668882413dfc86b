// Package invaders implements Space Invaders: a marching formation of
// aliens descends while the player shoots from the bottom of the screen.
package invaders

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

const (
	playerW        = 40
	playerH        = 30
	playerSpeed    = 300
	fireCooldown   = 0.3
	missileW       = 3
	missileH       = 15
	missileSpeed   = 500
	bombW          = 5
	bombH          = 10
	startLives     = 3
	startSpeed     = 30
	startInterval  = 0.7
	minInterval    = 0.1
	startBombOdds  = 0.01
	bombOddsPerLvl = 0.005
)

func init() {
	registry.Register(registry.Info{
		ID:          "invaders",
		Title:       "Space Invaders",
		Category:    config.CategoryClassics,
		Description: "Hold the line against the descending alien fleet.",
		Controls:    "Left/Right: move  Space: fire",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

// Game is the Space Invaders scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	areaW, areaH     float64
	offsetX, offsetY float64

	playerX   float64
	playerY   float64
	cooldown  float64
	missiles  []physics.AABB
	bombs     []physics.AABB
	formation Formation
	bombOdds  float64

	score    int
	lives    int
	level    int
	gameOver bool

	scoreLabel *engine.Entity
	livesLabel *engine.Entity
}

// New creates a Space Invaders scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:    in,
		rng:   rand.New(rand.NewSource(seed)),
		areaW: gfx.DefaultWidth * 0.9,
		areaH: gfx.DefaultHeight * 0.9,
	}
	g.offsetX = (gfx.DefaultWidth - g.areaW) / 2
	g.offsetY = (gfx.DefaultHeight - g.areaH) / 2
	g.playerY = g.areaH - 40

	g.scoreLabel = hud.LeftLabel(&g.SceneBase, g.offsetX+100, g.offsetY/2, "Score: 0", core.ColorWhite)
	g.livesLabel = hud.RightLabel(&g.SceneBase, gfx.DefaultWidth-g.offsetX-100, g.offsetY/2, "Lives: 3", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2, "Left/Right: Move Ship  |  Space: Fire", core.ColorGray)
	g.reset()
	return g
}

func (g *Game) reset() {
	g.score = 0
	g.lives = startLives
	g.level = 1
	g.gameOver = false
	g.playerX = g.areaW / 2
	g.cooldown = 0
	g.missiles = nil
	g.bombs = nil
	g.bombOdds = startBombOdds
	g.formation = Formation{
		Enemies:  buildFormation(),
		Dir:      1,
		Speed:    startSpeed,
		Interval: startInterval,
	}
	g.updateLabels()
}

// nextLevel rebuilds the fleet, faster and more trigger-happy.
func (g *Game) nextLevel() {
	g.level++
	g.bombOdds += bombOddsPerLvl
	g.missiles = nil
	g.bombs = nil
	g.formation = Formation{
		Enemies:  buildFormation(),
		Dir:      1,
		Speed:    g.formation.Speed + 10,
		Interval: math.Max(minInterval, g.formation.Interval-0.1),
	}
}

// Enter restarts a finished game.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver {
		g.reset()
	}
}

func (g *Game) updateLabels() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
	engine.SetText(g.livesLabel, fmt.Sprintf("Lives: %d", g.lives))
}

func (g *Game) player() physics.AABB {
	return physics.Centered(g.playerX, g.playerY, playerW, playerH)
}

func (g *Game) bombSpeed() float64 { return 200 + float64(g.level)*20 }

// Update moves the ship and projectiles, resolves hits and marches the
// formation.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	if g.cooldown > 0 {
		g.cooldown -= dt
	}
	switch {
	case g.in.IsKeyDown(core.KeyArrowLeft):
		g.playerX = math.Max(playerW/2, g.playerX-playerSpeed*dt)
	case g.in.IsKeyDown(core.KeyArrowRight):
		g.playerX = math.Min(g.areaW-playerW/2, g.playerX+playerSpeed*dt)
	}
	if g.in.IsKeyPressed(core.KeySpace) && g.cooldown <= 0 {
		g.missiles = append(g.missiles, physics.Centered(g.playerX, g.playerY-playerH/2, missileW, missileH))
		g.cooldown = fireCooldown
	}

	g.moveProjectiles(dt)
	g.hitEnemies()
	g.hitPlayer()
	if g.gameOver {
		return
	}

	if g.formation.Tick(dt) {
		g.march()
	}
}

func (g *Game) moveProjectiles(dt float64) {
	missiles := g.missiles[:0]
	for _, m := range g.missiles {
		m.Y -= missileSpeed * dt
		if m.Bottom() >= 0 {
			missiles = append(missiles, m)
		}
	}
	g.missiles = missiles

	bombs := g.bombs[:0]
	for _, b := range g.bombs {
		b.Y += g.bombSpeed() * dt
		if b.Y <= g.areaH {
			bombs = append(bombs, b)
		}
	}
	g.bombs = bombs
}

// hitEnemies lets each missile destroy the first living invader it touches.
func (g *Game) hitEnemies() {
	level := g.level
	kept := g.missiles[:0]
	for _, m := range g.missiles {
		hit := false
		for i := range g.formation.Enemies {
			e := &g.formation.Enemies[i]
			if e.Alive && m.Overlaps(e.Box) {
				e.Alive = false
				g.score += e.Points()
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, m)
		}
	}
	g.missiles = kept
	g.updateLabels()
	if g.formation.Alive() == 0 && g.level == level {
		g.nextLevel()
	}
}

func (g *Game) hitPlayer() {
	player := g.player()
	kept := g.bombs[:0]
	for _, b := range g.bombs {
		if !b.Overlaps(player) {
			kept = append(kept, b)
			continue
		}
		g.lives--
		if g.lives <= 0 {
			g.gameOver = true
		}
	}
	g.bombs = kept
	g.updateLabels()
}

// march steps the formation, rolls bombs for every exposed invader and ends
// the game once the fleet reaches the player's row.
func (g *Game) march() {
	g.formation.Step(g.areaW)
	for _, e := range g.formation.Enemies {
		if e.Alive && g.rng.Float64() < g.bombOdds {
			g.dropBomb(e)
		}
	}
	if g.formation.Lowest() >= g.playerY-playerH {
		g.gameOver = true
	}
}

func (g *Game) dropBomb(e Enemy) bool {
	if !g.formation.Exposed(e) {
		return false
	}
	c := e.Box.Center()
	g.bombs = append(g.bombs, physics.Centered(c.X, e.Box.Bottom(), bombW, bombH))
	return true
}

// Render draws the play area, the fleet, the ship and every projectile.
func (g *Game) Render(c *gfx.Canvas) {
	c.Save()
	c.Translate(g.offsetX, g.offsetY)

	for i := range 100 {
		x := (math.Sin(float64(i)*932.37)*0.5 + 0.5) * g.areaW
		y := (math.Cos(float64(i)*342.87)*0.5 + 0.5) * g.areaH
		c.FillRect(x, y, 1, 1, gfx.Glyph('.', core.ColorDarkGray))
	}
	c.StrokeRect(0, 0, g.areaW, g.areaH, gfx.Glyph('░', core.ColorDarkGray))

	for _, e := range g.formation.Enemies {
		if !e.Alive {
			continue
		}
		b := e.Box
		c.FillRect(b.X, b.Y, b.W, b.H, gfx.Solid(rowColors[e.Row]))
		// eyes
		c.FillRect(b.X+b.W/4, b.Y+b.H/3, 4, 4, gfx.Solid(core.ColorBlack))
		c.FillRect(b.X+b.W*3/4-4, b.Y+b.H/3, 4, 4, gfx.Solid(core.ColorBlack))
	}

	if !g.gameOver {
		x, y := g.playerX, g.playerY
		c.FillPolygon([]core.Vec{
			{X: x, Y: y - playerH/2},
			{X: x + playerW/2, Y: y + playerH/2},
			{X: x - playerW/2, Y: y + playerH/2},
		}, gfx.Solid(core.ColorGreen))
		c.FillCircle(x, y, playerW/5, gfx.Solid(core.ColorBlue))
	}

	for _, m := range g.missiles {
		c.FillRect(m.X, m.Y, m.W, m.H, gfx.Glyph('|', core.ColorBrightGreen))
	}
	for _, b := range g.bombs {
		c.FillRect(b.X, b.Y, b.W, b.H, gfx.Glyph('!', core.ColorRed))
	}
	c.Restore()

	g.SceneBase.Render(c)

	if g.gameOver {
		hud.GameOver(c, "GAME OVER", g.score)
	}
}

// Package asteroids implements the vector shooter: steer a drifting ship and
// blast rocks that split into smaller, faster ones.
package asteroids

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
	areaW = gfx.DefaultWidth
	areaH = gfx.DefaultHeight

	shipRadius     = 15
	rotationSpeed  = 4 // rad/s
	thrust         = 300
	maxSpeed       = 300
	friction       = 0.98 // per 60 Hz frame
	invulnerable   = 3.0
	bulletSpeed    = 500
	bulletLifetime = 1.5
	bulletRadius   = 2
	fireCooldown   = 0.2
	safeSpawn      = 150
	startLives     = 3
)

func init() {
	registry.Register(registry.Info{
		ID:          "asteroids",
		Title:       "Asteroids",
		Category:    config.CategoryClassics,
		Description: "Pilot a drifting ship and shoot the rocks to pieces.",
		Controls:    "Left/Right: rotate  Up: thrust  Space: fire  P: pause",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

type bullet struct {
	physics.Body
	life float64
}

// Game is the Asteroids scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	ship      physics.Body
	thrusting bool
	shield    float64 // invulnerability left
	cooldown  float64
	bullets   []bullet
	rocks     []Rock

	score    int
	lives    int
	level    int
	paused   bool
	gameOver bool

	scoreLabel *engine.Entity
	livesLabel *engine.Entity
}

// New creates an Asteroids scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:  in,
		rng: rand.New(rand.NewSource(seed)),
	}
	g.ship.Radius = shipRadius
	g.scoreLabel = hud.LeftLabel(&g.SceneBase, 100, 30, "Score: 0", core.ColorWhite)
	g.livesLabel = hud.RightLabel(&g.SceneBase, areaW-100, 30, "Lives: 3", core.ColorWhite)
	hud.Label(&g.SceneBase, areaW/2, areaH-30, "Arrows: Move  |  Space: Fire  |  P: Pause", core.ColorGray)
	g.reset()
	return g
}

func (g *Game) reset() {
	g.score = 0
	g.lives = startLives
	g.level = 1
	g.paused = false
	g.gameOver = false
	g.bullets = nil
	g.cooldown = 0
	g.resetShip()
	g.spawnLevel()
	g.updateLabels()
}

// resetShip parks the ship in the middle, pointing up, with a grace period.
func (g *Game) resetShip() {
	g.ship.Pos = core.V(areaW/2, areaH/2)
	g.ship.Vel = core.Vec{}
	g.ship.Angle = -math.Pi / 2
	g.shield = invulnerable
}

// spawnLevel fills the field with large rocks, none near the ship.
func (g *Game) spawnLevel() {
	n := 3 + min(7, g.level)
	g.rocks = g.rocks[:0]
	for range n {
		var p core.Vec
		for {
			p = core.V(g.rng.Float64()*areaW, g.rng.Float64()*areaH)
			if p.Dist(g.ship.Pos) >= safeSpawn {
				break
			}
		}
		g.rocks = append(g.rocks, newRock(g.rng, p, largeRadius, Large))
	}
}

func (g *Game) nextLevel() {
	g.level++
	g.bullets = nil
	g.cooldown = 0
	g.spawnLevel()
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

// Update flies the ship, moves bullets and rocks and resolves hits.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}
	if g.in.IsKeyPressed("KeyP") {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	g.cooldown -= dt
	if g.shield > 0 {
		g.shield -= dt
	}

	g.steer(dt)
	if g.in.IsKeyPressed(core.KeySpace) && g.cooldown <= 0 {
		g.fire()
	}
	g.moveBullets(dt)
	g.moveRocks(dt)
}

func (g *Game) steer(dt float64) {
	switch {
	case g.in.IsKeyDown(core.KeyArrowLeft):
		g.ship.Angle -= rotationSpeed * dt
	case g.in.IsKeyDown(core.KeyArrowRight):
		g.ship.Angle += rotationSpeed * dt
	}

	g.thrusting = g.in.IsKeyDown(core.KeyArrowUp)
	if g.thrusting {
		g.ship.Vel = g.ship.Vel.Add(core.FromAngle(g.ship.Angle, thrust*dt))
		g.ship.Vel = physics.ClampSpeed(g.ship.Vel, maxSpeed)
	}
	g.ship.Vel = g.ship.Vel.Scale(math.Pow(friction, dt*engine.DefaultFPS))
	g.ship.Integrate(dt)
	g.ship.Pos = physics.Wrap(g.ship.Pos, areaW, areaH, 0)
}

func (g *Game) fire() {
	nose := g.ship.Pos.Add(core.FromAngle(g.ship.Angle, shipRadius))
	g.bullets = append(g.bullets, bullet{
		Body: physics.Body{Pos: nose, Vel: core.FromAngle(g.ship.Angle, bulletSpeed), Radius: bulletRadius},
		life: bulletLifetime,
	})
	g.cooldown = fireCooldown
}

func (g *Game) moveBullets(dt float64) {
	level := g.level
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Integrate(dt)
		b.Pos = physics.Wrap(b.Pos, areaW, areaH, 0)
		b.life -= dt
		if b.life <= 0 {
			continue
		}
		if i := g.rockAt(b.Pos, b.Radius); i >= 0 {
			g.destroy(i)
			continue
		}
		kept = append(kept, b)
	}
	if g.level != level {
		// the field was cleared mid-volley; the new level starts without bullets
		return
	}
	g.bullets = kept
}

// rockAt returns the index of the last rock touching the circle, or -1.
func (g *Game) rockAt(p core.Vec, r float64) int {
	for i := len(g.rocks) - 1; i >= 0; i-- {
		if physics.CirclesOverlap(p, r, g.rocks[i].Pos, g.rocks[i].Radius) {
			return i
		}
	}
	return -1
}

// destroy scores rock i and replaces it with its fragments. Clearing the
// field starts the next level.
func (g *Game) destroy(i int) {
	r := g.rocks[i]
	g.rocks = append(g.rocks[:i], g.rocks[i+1:]...)
	g.rocks = append(g.rocks, split(g.rng, r)...)
	g.score += rockScores[r.Size]
	g.updateLabels()
	if len(g.rocks) == 0 {
		g.nextLevel()
	}
}

func (g *Game) moveRocks(dt float64) {
	for i := range g.rocks {
		r := &g.rocks[i]
		r.Integrate(dt)
		r.Pos = physics.Wrap(r.Pos, areaW, areaH, r.Radius)
		r.Angle += r.Spin * dt
	}
	if g.shield > 0 {
		return
	}
	for _, r := range g.rocks {
		if !physics.CirclesOverlap(g.ship.Pos, shipRadius*0.6, r.Pos, r.Radius*0.9) {
			continue
		}
		g.lives--
		g.updateLabels()
		if g.lives <= 0 {
			g.gameOver = true
		} else {
			g.resetShip()
		}
		return
	}
}

// Render draws the star field, rocks, bullets and ship.
func (g *Game) Render(c *gfx.Canvas) {
	for i := range 100 {
		x := (math.Sin(float64(i)*932.37)*0.5 + 0.5) * areaW
		y := (math.Cos(float64(i)*342.87)*0.5 + 0.5) * areaH
		c.FillRect(x, y, 1, 1, gfx.Glyph('.', core.ColorDarkGray))
	}

	for _, r := range g.rocks {
		c.Save()
		c.Translate(r.Pos.X, r.Pos.Y)
		c.Rotate(r.Angle)
		c.FillPolygon(r.Outline, gfx.Glyph('▓', core.ColorGray))
		c.Restore()
	}
	for _, b := range g.bullets {
		c.FillCircle(b.Pos.X, b.Pos.Y, b.Radius, gfx.Solid(core.ColorBrightWhite))
	}

	// blink while the shield is up
	if !g.gameOver && (g.shield <= 0 || int(g.shield*10)%2 == 0) {
		c.Save()
		c.Translate(g.ship.Pos.X, g.ship.Pos.Y)
		c.Rotate(g.ship.Angle)
		r := float64(shipRadius)
		c.FillPolygon([]core.Vec{{X: r}, {X: -r / 2, Y: -r / 2}, {X: -r / 2, Y: r / 2}}, gfx.Solid(core.ColorWhite))
		if g.thrusting {
			c.FillPolygon([]core.Vec{{X: -r / 2}, {X: -r, Y: -r / 3}, {X: -r * 1.5}, {X: -r, Y: r / 3}}, gfx.Solid(core.ColorMagenta))
		}
		c.Restore()
	}

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.GameOver(c, "GAME OVER", g.score)
	case g.paused:
		hud.Overlay(c, "PAUSED", "Press P to resume")
	}
}

// Package shooter implements a top-down arena shooter: survive waves of
// enemies that close in from every side.
package shooter

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
		ID:          "shooter",
		Title:       "Shooter",
		Category:    config.CategoryAction,
		Description: "Hold the arena against endless waves.",
		Controls:    "WASD/Arrows: move  Mouse: aim  Click/Space: shoot",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

const (
	arenaW = gfx.DefaultWidth
	arenaH = gfx.DefaultHeight

	playerRadius = 30
	playerSpeed  = 250.0
	boostedSpeed = 350.0
	maxHealth    = 100
	contactDmg   = 10
	knockback    = 100.0

	bulletSpeed  = 800.0
	bulletRadius = 5
	bulletLife   = 1.5
	fireDelay    = 0.2
	boostedDelay = 0.1

	powerupRadius = 15
	powerupLife   = 10.0
	powerupOdds   = 0.2
	boostTime     = 10.0
	healthBoost   = 25

	waveBreak = 3.0
)

type bullet struct {
	physics.Body
	life float64
}

// Game is the Shooter scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	player    physics.Body
	health    int
	cooldown  float64
	speedTime float64
	fireTime  float64
	lastMouse engine.Mouse

	bullets   []bullet
	enemies   []Enemy
	particles []particle
	powerups  []powerup

	score     int
	wave      int
	remaining int
	waveDone  bool
	countdown float64
	gameOver  bool

	scoreLabel  *engine.Entity
	waveLabel   *engine.Entity
	healthLabel *engine.Entity
}

// New creates a Shooter scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:  in,
		rng: rand.New(rand.NewSource(seed)),
	}
	g.scoreLabel = hud.LeftLabel(&g.SceneBase, 100, 30, "", core.ColorWhite)
	g.waveLabel = hud.RightLabel(&g.SceneBase, arenaW-100, 30, "", core.ColorWhite)
	g.healthLabel = hud.LeftLabel(&g.SceneBase, 100, 60, "", core.ColorGreen)
	hud.Label(&g.SceneBase, arenaW/2, arenaH-20, "WASD/Arrows: Move | Mouse: Aim | Click/Space: Shoot", core.ColorGray)
	g.reset()
	return g
}

func (g *Game) reset() {
	g.player = physics.Body{Pos: core.V(arenaW/2, arenaH/2), Radius: playerRadius}
	g.health = maxHealth
	g.cooldown = 0
	g.speedTime = 0
	g.fireTime = 0
	g.lastMouse = g.in.Mouse()
	g.bullets = nil
	g.enemies = nil
	g.particles = nil
	g.powerups = nil
	g.score = 0
	g.wave = 1
	g.gameOver = false
	g.startWave()
	g.updateLabels()
}

func (g *Game) startWave() {
	g.waveDone = false
	g.remaining = 5 + g.wave*2
}

// Enter starts over if the player died.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver {
		g.reset()
	}
}

func (g *Game) updateLabels() {
	engine.SetText(g.scoreLabel, fmt.Sprintf("Score: %d", g.score))
	engine.SetText(g.waveLabel, fmt.Sprintf("Wave: %d", g.wave))
	engine.SetText(g.healthLabel, fmt.Sprintf("Health: %d", g.health))
	if t, ok := engine.Find[*engine.Text](g.healthLabel); ok {
		switch {
		case g.health > 70:
			t.Color = core.ColorGreen
		case g.health > 30:
			t.Color = core.ColorOrange
		default:
			t.Color = core.ColorRed
		}
	}
}

// Update runs one tick of the arena.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver {
		g.moveParticles(dt)
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	g.movePlayer(dt)
	g.moveBullets(dt)
	g.moveEnemies(dt)
	g.moveParticles(dt)
	g.updatePowerups(dt)

	if g.waveDone {
		g.countdown -= dt
		if g.countdown <= 0 {
			g.wave++
			g.startWave()
		}
	}
	g.updateLabels()
}

func (g *Game) speed() float64 {
	if g.speedTime > 0 {
		return boostedSpeed
	}
	return playerSpeed
}

func (g *Game) delay() float64 {
	if g.fireTime > 0 {
		return boostedDelay
	}
	return fireDelay
}

// movePlayer moves, aims and fires. The aim follows the mouse while it is
// in use and the movement direction otherwise.
func (g *Game) movePlayer(dt float64) {
	g.speedTime = math.Max(g.speedTime-dt, 0)
	g.fireTime = math.Max(g.fireTime-dt, 0)
	g.cooldown -= dt

	var move core.Vec
	if g.in.AnyDown("KeyW", core.KeyArrowUp) {
		move.Y = -1
	}
	if g.in.AnyDown("KeyS", core.KeyArrowDown) {
		move.Y = 1
	}
	if g.in.AnyDown("KeyA", core.KeyArrowLeft) {
		move.X = -1
	}
	if g.in.AnyDown("KeyD", core.KeyArrowRight) {
		move.X = 1
	}
	p := &g.player
	p.Vel = move.Norm().Scale(g.speed())
	p.Integrate(dt)
	p.Pos.X = core.Clamp(p.Pos.X, playerRadius, arenaW-playerRadius)
	p.Pos.Y = core.Clamp(p.Pos.Y, playerRadius, arenaH-playerRadius)

	m := g.in.Mouse()
	switch {
	case m != g.lastMouse || g.in.IsMouseDown(core.MouseLeft):
		p.Angle = core.V(m.X, m.Y).Sub(p.Pos).Angle()
	case move != (core.Vec{}):
		p.Angle = move.Angle()
	}
	g.lastMouse = m

	if (g.in.IsMouseDown(core.MouseLeft) || g.in.IsKeyDown(core.KeySpace)) && g.cooldown <= 0 {
		g.fire()
	}
}

func (g *Game) fire() {
	dir := core.FromAngle(g.player.Angle, 1)
	g.bullets = append(g.bullets, bullet{
		Body: physics.Body{Pos: g.player.Pos.Add(dir.Scale(playerRadius)), Vel: dir.Scale(bulletSpeed), Radius: bulletRadius},
		life: bulletLife,
	})
	g.cooldown = g.delay()
}

// moveBullets advances the bullets; each one hits at most one enemy.
func (g *Game) moveBullets(dt float64) {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Integrate(dt)
		b.life -= dt
		if b.life <= 0 || b.Pos.X < 0 || b.Pos.X > arenaW || b.Pos.Y < 0 || b.Pos.Y > arenaH {
			continue
		}
		if i := g.enemyAt(b.Pos, b.Radius); i >= 0 {
			g.hit(i, b.Pos)
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Game) enemyAt(p core.Vec, r float64) int {
	for i, e := range g.enemies {
		if physics.CirclesOverlap(p, r, e.Pos, e.Radius) {
			return i
		}
	}
	return -1
}

// hit damages enemy i and removes it when its health runs out. Clearing the
// last enemy of a wave starts the break before the next one.
func (g *Game) hit(i int, at core.Vec) {
	e := &g.enemies[i]
	s := stats[e.Kind]
	e.Health--
	g.particles = append(g.particles, burst(g.rng, at, 5, s.color, 150, 3, 0.3)...)
	if e.Health > 0 {
		return
	}

	g.score += s.points
	g.particles = append(g.particles, burst(g.rng, e.Pos, 15, s.color, 200, 5, 0.6)...)
	if g.rng.Float64() < powerupOdds {
		g.powerups = append(g.powerups, powerup{pos: e.Pos, boost: Boost(g.rng.Intn(3)), life: powerupLife})
	}
	g.enemies = append(g.enemies[:i], g.enemies[i+1:]...)

	if len(g.enemies) == 0 && g.remaining == 0 {
		g.waveDone = true
		g.countdown = waveBreak
	}
}

// spawn adds one enemy per tick while the wave has some left and the arena
// is below its cap.
func (g *Game) spawn() {
	if g.waveDone || g.remaining == 0 || len(g.enemies) >= 2+min(10, g.wave) {
		return
	}
	k := rollKind(g.wave, g.rng.Float64())
	g.enemies = append(g.enemies, newEnemy(k, spawnPoint(g.rng, arenaW, arenaH)))
	g.remaining--
}

// moveEnemies chases the player. Contact costs health and knocks the enemy
// back.
func (g *Game) moveEnemies(dt float64) {
	g.spawn()
	for i := range g.enemies {
		e := &g.enemies[i]
		e.chase(g.player.Pos, dt)
		if !physics.CirclesOverlap(e.Pos, e.Radius, g.player.Pos, g.player.Radius) {
			continue
		}
		g.health -= contactDmg
		g.particles = append(g.particles, burst(g.rng, g.player.Pos, 10, core.ColorWhite, 200, 4, 0.4)...)
		away := e.Pos.Sub(g.player.Pos)
		if away.Len() == 0 {
			away = core.V(1, 0)
		}
		e.Pos = e.Pos.Add(away.Norm().Scale(knockback))
		if g.health <= 0 {
			g.health = 0
			g.gameOver = true
			g.particles = append(g.particles, burst(g.rng, g.player.Pos, 50, core.ColorYellow, 300, 8, 1.0)...)
			return
		}
	}
}

func (g *Game) moveParticles(dt float64) {
	drag := math.Pow(0.95, dt*60)
	kept := g.particles[:0]
	for _, p := range g.particles {
		p.Integrate(dt)
		p.Vel = p.Vel.Scale(drag)
		if p.life -= dt; p.life > 0 {
			kept = append(kept, p)
		}
	}
	g.particles = kept
}

func (g *Game) updatePowerups(dt float64) {
	kept := g.powerups[:0]
	for _, p := range g.powerups {
		p.life -= dt
		p.pulse += dt * 5
		if p.life <= 0 {
			continue
		}
		if physics.CirclesOverlap(p.pos, powerupRadius, g.player.Pos, g.player.Radius) {
			g.apply(p.boost)
			g.particles = append(g.particles, burst(g.rng, p.pos, 10, boostColors[p.boost], 150, 4, 0.5)...)
			continue
		}
		kept = append(kept, p)
	}
	g.powerups = kept
}

func (g *Game) apply(b Boost) {
	switch b {
	case BoostHealth:
		g.health = min(maxHealth, g.health+healthBoost)
	case BoostSpeed:
		g.speedTime = boostTime
	case BoostFireRate:
		g.fireTime = boostTime
	}
}

// Render draws the arena grid and everything in it.
func (g *Game) Render(c *gfx.Canvas) {
	c.FillRect(0, 0, arenaW, arenaH, gfx.Solid(core.ColorBlack))
	for x := 0.0; x < arenaW; x += 40 {
		c.Line(x, 0, x, arenaH, gfx.Glyph('·', core.ColorDarkGray))
	}
	for y := 0.0; y < arenaH; y += 40 {
		c.Line(0, y, arenaW, y, gfx.Glyph('·', core.ColorDarkGray))
	}

	for _, p := range g.powerups {
		r := powerupRadius * (1 + 0.2*math.Sin(p.pulse))
		c.FillCircle(p.pos.X, p.pos.Y, r, gfx.Glyph('+', boostColors[p.boost]))
	}
	for _, b := range g.bullets {
		c.FillCircle(b.Pos.X, b.Pos.Y, b.Radius, gfx.Glyph('•', core.ColorBrightYellow))
	}
	for _, e := range g.enemies {
		c.FillCircle(e.Pos.X, e.Pos.Y, e.Radius, gfx.Solid(stats[e.Kind].color))
	}
	if !g.gameOver {
		p := g.player
		c.Save()
		c.Translate(p.Pos.X, p.Pos.Y)
		c.Rotate(p.Angle)
		c.FillCircle(0, 0, p.Radius, gfx.Solid(core.ColorBlue))
		c.FillRect(0, -5, p.Radius, 10, gfx.Solid(core.ColorSky))
		c.Restore()
	}
	for _, p := range g.particles {
		c.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, gfx.Glyph('*', p.color))
	}

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.Overlay(c, "GAME OVER", fmt.Sprintf("Final Score: %d", g.score),
			fmt.Sprintf("Waves Survived: %d", g.wave), hud.RestartHint)
	case g.waveDone:
		hud.Overlay(c, fmt.Sprintf("WAVE %d COMPLETE!", g.wave),
			fmt.Sprintf("Next wave in %d...", int(math.Ceil(g.countdown))))
	}
}

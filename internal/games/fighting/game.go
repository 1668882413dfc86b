// Package fighting implements a one-round brawl against a computer opponent
// with punches, kicks, a special, blocking and combos.
package fighting

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/hud"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/registry"
)

func init() {
	registry.Register(registry.Info{
		ID:          "fighting",
		Title:       "Fighting",
		Category:    config.CategoryAction,
		Description: "One round, sixty seconds. Knock the other guy out.",
		Controls:    "Arrows: move/jump  Z/X/C: punch/kick/special  Shift or V: block",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

const (
	playerSpeed = 300.0
	enemySpeed  = 250.0
	roundTime   = 60.0
	koTime      = 1.0
	comboWindow = 1.0
	comboTime   = 2.0
	effectLife  = 0.5
	effectRise  = 100.0
)

type effect struct {
	pos   core.Vec
	text  string
	color core.Color
	life  float64
}

var hitText = map[Move]struct {
	text  string
	color core.Color
}{
	Punch:   {"POW!", core.ColorYellow},
	Kick:    {"WHAM!", core.ColorRed},
	Special: {"BOOM!", core.ColorGreen},
}

// Game is the Fighting scene.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	player Fighter
	enemy  Fighter
	ai     *opponent

	clock      float64
	timeLeft   float64
	lastAttack float64
	combo      int
	comboTimer float64
	effects    []effect

	ko       float64
	winner   string
	gameOver bool

	playerLabel *engine.Entity
	enemyLabel  *engine.Entity
	comboLabel  *engine.Entity
	timerLabel  *engine.Entity
}

// New creates a Fighting scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{in: in, rng: rand.New(rand.NewSource(seed))}
	g.playerLabel = hud.LeftLabel(&g.SceneBase, 100, 30, "", core.ColorGreen)
	g.enemyLabel = hud.RightLabel(&g.SceneBase, arenaW-100, 30, "", core.ColorRed)
	g.comboLabel = hud.Label(&g.SceneBase, arenaW/2, 100, "", core.ColorYellow)
	g.timerLabel = hud.Label(&g.SceneBase, arenaW/2, 30, "", core.ColorWhite)
	hud.Label(&g.SceneBase, arenaW/2, 580, "Arrows: Move | Z: Punch | X: Kick | C: Special | Shift/V: Block", core.ColorGray)
	g.reset()
	return g
}

func (g *Game) reset() {
	g.player = newFighter(arenaW*0.3, 1, playerSpeed, playerMoves)
	g.enemy = newFighter(arenaW*0.7, -1, enemySpeed, enemyMoves)
	g.ai = newOpponent(g.rng)
	g.clock = 0
	g.timeLeft = roundTime
	g.lastAttack = math.Inf(-1)
	g.combo = 0
	g.comboTimer = 0
	g.effects = nil
	g.ko = 0
	g.winner = ""
	g.gameOver = false
	g.updateLabels()
}

// Enter starts a new round once the last one is decided.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.gameOver {
		g.reset()
	}
}

func (g *Game) roundOver() bool { return g.winner != "" }

// Update runs one tick of the round.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)
	g.updateEffects(dt)

	if g.gameOver {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}
	if g.roundOver() {
		g.player.step(dt)
		g.enemy.step(dt)
		g.ko -= dt
		g.gameOver = g.ko <= 0
		return
	}

	g.clock += dt
	g.timeLeft -= dt
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.decide()
		g.updateLabels()
		return
	}

	if g.comboTimer > 0 {
		g.comboTimer -= dt
		if g.comboTimer <= 0 {
			g.combo = 0
		}
	}

	g.handleInput()
	g.ai.think(&g.enemy, &g.player, dt)
	g.player.step(dt)
	g.enemy.step(dt)
	g.resolve()
	g.updateLabels()
}

func (g *Game) handleInput() {
	p := &g.player
	if p.stunned() {
		p.blocking = false
		return
	}
	if !p.attacking() && !p.blocking {
		switch {
		case g.in.IsKeyDown(core.KeyArrowLeft):
			p.Vel.X = -p.speed
			p.facing = -1
		case g.in.IsKeyDown(core.KeyArrowRight):
			p.Vel.X = p.speed
			p.facing = 1
		default:
			p.Vel.X = 0
		}
	}
	if g.in.IsKeyPressed(core.KeyArrowUp) {
		p.jump(p.Vel.X)
	}

	switch {
	case g.in.IsKeyPressed("KeyZ"):
		g.attack(Punch)
	case g.in.IsKeyPressed("KeyX"):
		g.attack(Kick)
	case g.in.IsKeyPressed("KeyC"):
		g.attack(Special)
	}

	p.blocking = g.in.AnyDown(core.KeyShiftLeft, core.KeyShiftRight, "KeyV") && !p.attacking()
	if p.blocking {
		p.Vel.X = 0
	}
}

// attack starts a player move. Attacks chained within a second build a
// combo that adds a tenth of the power per link.
func (g *Game) attack(m Move) {
	if !g.player.start(m) {
		return
	}
	if g.clock-g.lastAttack < comboWindow {
		g.combo++
		g.player.power = int(math.Floor(float64(g.player.power) * (1 + float64(g.combo)*0.1)))
	} else {
		g.combo = 1
	}
	g.comboTimer = comboTime
	g.lastAttack = g.clock
}

// resolve lands attacks in both directions and ends the round on a knockout.
func (g *Game) resolve() {
	move := g.player.move
	switch out, _ := strike(&g.player, &g.enemy); out {
	case Hit:
		g.ai.stagger()
		g.pop(g.enemy.Pos.X, move)
	case Blocked:
		g.popBlock(&g.enemy)
	}

	move = g.enemy.move
	switch out, _ := strike(&g.enemy, &g.player); out {
	case Hit:
		g.combo, g.comboTimer = 0, 0
		g.pop(g.player.Pos.X, move)
	case Blocked:
		g.combo, g.comboTimer = 0, 0
		g.popBlock(&g.player)
	}

	if g.enemy.health == 0 || g.player.health == 0 {
		g.decide()
	}
}

// decide names the winner by remaining health and starts the knockout pause.
func (g *Game) decide() {
	switch {
	case g.player.health > g.enemy.health:
		g.winner = "PLAYER WINS!"
	case g.enemy.health > g.player.health:
		g.winner = "ENEMY WINS!"
	default:
		g.winner = "DRAW!"
	}
	g.ko = koTime
}

func (g *Game) pop(x float64, m Move) {
	t := hitText[m]
	g.effects = append(g.effects, effect{pos: core.V(x, groundY-fighterH/2), text: t.text, color: t.color, life: effectLife})
}

func (g *Game) popBlock(f *Fighter) {
	x := f.Pos.X + 20*f.facing
	g.effects = append(g.effects, effect{pos: core.V(x, groundY-fighterH/2), text: "BLOCK!", color: core.ColorWhite, life: effectLife})
}

func (g *Game) updateEffects(dt float64) {
	kept := g.effects[:0]
	for _, e := range g.effects {
		e.pos.Y -= effectRise * dt
		if e.life -= dt; e.life > 0 {
			kept = append(kept, e)
		}
	}
	g.effects = kept
}

func (g *Game) updateLabels() {
	engine.SetText(g.playerLabel, fmt.Sprintf("Player: %d HP", g.player.health))
	engine.SetText(g.enemyLabel, fmt.Sprintf("Enemy: %d HP", g.enemy.health))
	if t, ok := engine.Find[*engine.Text](g.playerLabel); ok {
		t.Color = healthColor(g.player.health, false)
	}
	if t, ok := engine.Find[*engine.Text](g.enemyLabel); ok {
		t.Color = healthColor(g.enemy.health, true)
	}

	combo := ""
	if g.combo > 1 {
		combo = fmt.Sprintf("%dx COMBO!", g.combo)
	}
	engine.SetText(g.comboLabel, combo)

	engine.SetText(g.timerLabel, fmt.Sprint(int(math.Ceil(g.timeLeft))))
	if t, ok := engine.Find[*engine.Text](g.timerLabel); ok {
		t.Color = core.ColorWhite
		if g.timeLeft <= 10 {
			t.Color = core.ColorRed
		}
	}
}

// Render draws the stage, both fighters and the hit effects.
func (g *Game) Render(c *gfx.Canvas) {
	bands := []core.Color{core.ColorBlue, core.ColorBlue, core.ColorSky, core.ColorCyan}
	for i, col := range bands {
		h := groundY / float64(len(bands))
		c.FillRect(0, float64(i)*h, arenaW, h, gfx.Solid(col))
	}
	shade := gfx.Solid(core.ColorDarkGray)
	c.FillPolygon([]core.Vec{core.V(0, groundY), core.V(arenaW*0.3, groundY-100), core.V(arenaW*0.5, groundY)}, shade)
	c.FillPolygon([]core.Vec{core.V(arenaW*0.4, groundY), core.V(arenaW*0.7, groundY-150), core.V(arenaW, groundY)}, shade)
	c.FillRect(0, groundY, arenaW, c.Height()-groundY, gfx.Solid(core.ColorBrown))
	for x := 0.0; x < arenaW; x += 40 {
		c.FillRect(x, groundY, 20, 5, gfx.Glyph('▀', core.ColorOrange))
	}

	g.renderFighter(c, &g.player, core.ColorBlue)
	g.renderFighter(c, &g.enemy, core.ColorRed)
	for _, e := range g.effects {
		c.Text(e.pos.X, e.pos.Y, e.text, e.color, gfx.AlignCenter)
	}

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.Overlay(c, "ROUND OVER", g.winner, "Press Space or Enter to play again")
	case g.roundOver():
		c.Text(arenaW/2, 200, g.winner, core.ColorBrightWhite, gfx.AlignCenter)
	}
}

// renderFighter draws f facing +x and mirrors it when it faces left.
func (g *Game) renderFighter(c *gfx.Canvas, f *Fighter, color core.Color) {
	c.FillRect(f.Pos.X-fighterW/2, groundY-4, fighterW, 8, gfx.Glyph('░', core.ColorDarkGray))

	c.Save()
	c.Translate(f.Pos.X, f.Pos.Y-fighterH)
	c.Scale(f.facing, 1)
	const w, h = fighterW, fighterH
	body, legs := gfx.Solid(color), gfx.Solid(core.ColorBlack)

	c.FillRect(-w/2, 0, w, h*0.6, body)
	c.FillRect(-w/4, h*0.6, w/3, h*0.4, legs)
	c.FillRect(0, h*0.6, w/3, h*0.4, legs)
	switch {
	case f.blocking:
		c.FillRect(w/2, h*0.1, 10, h*0.3, body)
	case f.move == Punch:
		c.FillRect(w/2, h*0.2, 25, h*0.1, body)
		c.FillRect(w/2+25, h*0.2-5, 10, h*0.2, legs)
	case f.move == Kick:
		c.FillRect(w/4, h*0.5, w*0.9, h*0.15, legs)
	case f.move == Special:
		c.FillCircle(w/2+40, h*0.3, 30, gfx.Glyph('@', color))
		c.FillRect(w/2, h*0.2, 20, h*0.15, body)
	default:
		c.FillRect(w/2, h*0.2, 5, h*0.2, body)
	}

	c.FillRect(-w/4, -h*0.2, w/2, h*0.2, gfx.Solid(core.ColorGold))
	eye := gfx.Glyph('•', core.ColorBlack)
	if f.stunned() {
		eye = gfx.Glyph('x', core.ColorBlack)
	}
	c.FillRect(w/8-2, -h*0.14, 4, 4, eye)
	c.Restore()

	pct := float64(f.health) / maxHealth
	top := f.Pos.Y - fighterH*1.25
	c.FillRect(f.Pos.X-26, top-1, 52, 7, gfx.Solid(core.ColorBlack))
	c.FillRect(f.Pos.X-25, top, 50*pct, 5, gfx.Solid(healthColor(f.health, false)))
}

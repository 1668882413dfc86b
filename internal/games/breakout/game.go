// Package breakout implements the brick breaker: a paddle, one ball and a
// wall of five rows of bricks.
package breakout

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
	paddleW     = 100
	paddleH     = 15
	paddleSpeed = 300
	ballRadius  = 8
	ballSpeed   = 200 // per axis at launch
	startLives  = 3
	maxBounce   = math.Pi / 3
)

func init() {
	registry.Register(registry.Info{
		ID:          "breakout",
		Title:       "Breakout",
		Category:    config.CategoryClassics,
		Description: "Bounce the ball off your paddle and clear the wall.",
		Controls:    "Left/Right: move  Space: launch",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

// Game is the Breakout scene. Paddle, ball and bricks live in play-area
// coordinates; the area is centered on the canvas.
type Game struct {
	engine.SceneBase

	in  *engine.Input
	rng *rand.Rand

	areaW, areaH     float64
	offsetX, offsetY float64

	paddleX float64 // center
	paddleY float64 // top
	ball    physics.Body
	bricks  []Brick

	score    int
	lives    int
	started  bool
	gameOver bool
	gameWon  bool

	scoreLabel *engine.Entity
	livesLabel *engine.Entity
}

// New creates a Breakout scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:    in,
		rng:   rand.New(rand.NewSource(seed)),
		areaW: gfx.DefaultWidth * 0.8,
		areaH: gfx.DefaultHeight * 0.8,
	}
	g.offsetX = (gfx.DefaultWidth - g.areaW) / 2
	g.offsetY = (gfx.DefaultHeight - g.areaH) / 2
	g.paddleY = g.areaH - 30
	g.ball.Radius = ballRadius

	g.scoreLabel = hud.LeftLabel(&g.SceneBase, g.offsetX, g.offsetY/2, "Score: 0", core.ColorWhite)
	g.livesLabel = hud.RightLabel(&g.SceneBase, gfx.DefaultWidth-g.offsetX, g.offsetY/2, "Lives: 3", core.ColorWhite)
	hud.Label(&g.SceneBase, gfx.DefaultWidth/2, gfx.DefaultHeight-g.offsetY/2, "Left/Right: Move Paddle  |  Space: Launch Ball", core.ColorGray)

	g.reset()
	return g
}

func (g *Game) reset() {
	g.score = 0
	g.lives = startLives
	g.gameOver = false
	g.gameWon = false
	g.paddleX = g.areaW / 2
	g.bricks = buildWall(g.areaW)
	g.resetBall()
	g.updateLabels()
}

// resetBall parks the ball on the paddle with a random horizontal heading.
func (g *Game) resetBall() {
	dir := 1.0
	if g.rng.Float64() <= 0.5 {
		dir = -1
	}
	g.ball.Vel = core.V(dir*ballSpeed, -ballSpeed)
	g.parkBall()
	g.started = false
}

func (g *Game) parkBall() {
	g.ball.Pos = core.V(g.paddleX, g.paddleY-ballRadius-1)
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

func (g *Game) ballBox() physics.AABB {
	return physics.Centered(g.ball.Pos.X, g.ball.Pos.Y, ballRadius*2, ballRadius*2)
}

func (g *Game) paddleBox() physics.AABB {
	return physics.AABB{X: g.paddleX - paddleW/2, Y: g.paddleY, W: paddleW, H: paddleH}
}

// Update moves the paddle and the ball and resolves collisions.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.gameOver || g.gameWon {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}

	switch {
	case g.in.IsKeyDown(core.KeyArrowLeft):
		g.paddleX = math.Max(g.paddleX-paddleSpeed*dt, paddleW/2)
	case g.in.IsKeyDown(core.KeyArrowRight):
		g.paddleX = math.Min(g.paddleX+paddleSpeed*dt, g.areaW-paddleW/2)
	}

	if !g.started && g.in.IsKeyPressed(core.KeySpace) {
		g.started = true
	}
	if !g.started {
		g.parkBall()
		return
	}

	g.ball.Integrate(dt)
	g.bounceWalls()

	if g.ball.Pos.Y-ballRadius > g.areaH {
		g.lives--
		g.updateLabels()
		if g.lives <= 0 {
			g.gameOver = true
		} else {
			g.resetBall()
		}
	}

	g.hitPaddle()
	g.hitBricks()
}

func (g *Game) bounceWalls() {
	b := &g.ball
	switch {
	case b.Pos.X-ballRadius < 0:
		b.Pos.X = ballRadius
		b.Vel = physics.Reflect(b.Vel, physics.AxisX)
	case b.Pos.X+ballRadius > g.areaW:
		b.Pos.X = g.areaW - ballRadius
		b.Vel = physics.Reflect(b.Vel, physics.AxisX)
	}
	if b.Pos.Y-ballRadius < 0 {
		b.Pos.Y = ballRadius
		b.Vel = physics.Reflect(b.Vel, physics.AxisY)
	}
}

// hitPaddle sends the ball back up at an angle set by where it struck the
// paddle, up to 60 degrees at the ends, keeping its speed.
func (g *Game) hitPaddle() {
	if !g.ballBox().Overlaps(g.paddleBox()) {
		return
	}
	hit := (g.ball.Pos.X - g.paddleX) / (paddleW / 2)
	angle := hit * maxBounce
	speed := g.ball.Vel.Len()
	g.ball.Vel = core.V(math.Sin(angle)*speed, -math.Cos(angle)*speed)
	g.ball.Pos.Y = g.paddleY - ballRadius - 1
}

// hitBricks breaks the first brick the ball overlaps and reflects the ball
// off the face with the smallest overlap.
func (g *Game) hitBricks() {
	box := g.ballBox()
	for i := range g.bricks {
		br := &g.bricks[i]
		if !br.Alive {
			continue
		}
		vel, axis := physics.Bounce(box, g.ball.Vel, br.Box)
		if axis == physics.AxisNone {
			continue
		}
		g.ball.Vel = vel
		br.Alive = false
		g.score += brickPoints
		g.updateLabels()
		if g.remaining() == 0 {
			g.gameWon = true
		}
		return
	}
}

func (g *Game) remaining() int {
	n := 0
	for _, b := range g.bricks {
		if b.Alive {
			n++
		}
	}
	return n
}

// Render draws the play area, bricks, paddle and ball.
func (g *Game) Render(c *gfx.Canvas) {
	c.Save()
	c.Translate(g.offsetX, g.offsetY)
	c.StrokeRect(0, 0, g.areaW, g.areaH, gfx.Solid(core.ColorDarkGray))
	for _, b := range g.bricks {
		if b.Alive {
			c.FillRect(b.Box.X, b.Box.Y, b.Box.W, b.Box.H, gfx.Solid(b.Color))
		}
	}
	p := g.paddleBox()
	c.FillRect(p.X, p.Y, p.W, p.H, gfx.Solid(core.ColorSky))
	c.FillCircle(g.ball.Pos.X, g.ball.Pos.Y, ballRadius, gfx.Glyph('●', core.ColorBrightWhite))
	c.Restore()

	g.SceneBase.Render(c)

	switch {
	case g.gameOver:
		hud.GameOver(c, "GAME OVER", g.score)
	case g.gameWon:
		hud.Overlay(c, "YOU WIN!", fmt.Sprintf("Final Score: %d", g.score), "Press Space or Enter to play again")
	}
}

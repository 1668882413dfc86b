// Package racing implements a top-down time trial: three laps around a
// closed circuit, with a penalty for leaving the asphalt.
package racing

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
		ID:          "racing",
		Title:       "Racing",
		Category:    config.CategoryAction,
		Description: "Three laps against the clock. Stay on the asphalt.",
		Controls:    "Up: accelerate  Left/Right: steer  Down/Space: brake",
	}, func(e *engine.Engine, env registry.Env) engine.Scene {
		return New(e.Input(), env.Seed)
	})
}

const (
	screenW = gfx.DefaultWidth
	screenH = gfx.DefaultHeight

	trackWidth = 100.0
	carW       = 30.0
	carL       = 50.0

	maxSpeed  = 300.0
	accel     = 200.0
	decel     = 150.0
	brakeRate = 300.0
	turnRate  = 3.0

	offTrackAccel = 0.3
	offTrackDrag  = 0.95
	crashSpeed    = maxSpeed * 0.5
	crashDrag     = 0.3
	crashTime     = 0.5

	laps      = 3
	countFrom = 3
	lookAhead = 0.3
	kmhFactor = 0.36
)

var trackPoints = []core.Vec{
	core.V(400, 500),
	core.V(600, 300),
	core.V(800, 200),
	core.V(1000, 300),
	core.V(1100, 500),
	core.V(1000, 700),
	core.V(800, 800),
	core.V(600, 750),
	core.V(400, 650),
}

// Game is the Racing scene.
type Game struct {
	engine.SceneBase

	in    *engine.Input
	rng   *rand.Rand
	track *physics.Track

	car        physics.Body
	speed      float64
	offTrack   bool
	crash      float64
	braking    bool
	lap        int
	checkpoint int
	lapStart   float64
	bestLap    float64
	raceTime   float64
	camera     core.Vec

	countdown float64
	started   bool
	finished  bool

	lapLabel   *engine.Entity
	timeLabel  *engine.Entity
	bestLabel  *engine.Entity
	speedLabel *engine.Entity
}

// New creates a Racing scene.
func New(in *engine.Input, seed int64) *Game {
	g := &Game{
		in:    in,
		rng:   rand.New(rand.NewSource(seed)),
		track: physics.NewTrack(trackPoints, trackWidth),
	}
	g.lapLabel = hud.LeftLabel(&g.SceneBase, 100, 30, "", core.ColorWhite)
	g.timeLabel = hud.Label(&g.SceneBase, screenW/2, 30, "", core.ColorWhite)
	g.bestLabel = hud.RightLabel(&g.SceneBase, screenW-100, 30, "", core.ColorWhite)
	g.speedLabel = hud.LeftLabel(&g.SceneBase, 100, 60, "", core.ColorWhite)
	hud.Label(&g.SceneBase, screenW/2, screenH-20, "Arrow Keys: Steer and Accelerate | Space: Brake", core.ColorGray)
	g.reset()
	return g
}

func (g *Game) reset() {
	start := g.track.Points[0]
	g.car = physics.Body{Pos: start, Angle: g.track.Points[1].Sub(start).Angle(), W: carL, H: carW}
	g.speed = 0
	g.offTrack = false
	g.crash = 0
	g.braking = false
	g.lap = 0
	g.checkpoint = 0
	g.lapStart = 0
	g.bestLap = 0
	g.raceTime = 0
	g.countdown = countFrom + 1
	g.started = false
	g.finished = false
	g.follow()
	g.updateLabels()
}

// Enter starts a new race once the last one is over.
func (g *Game) Enter() {
	g.SceneBase.Enter()
	if g.finished {
		g.reset()
	}
}

// Count is the number on the start lights: 3, 2, 1, then 0 for GO.
func (g *Game) Count() int {
	return max(int(math.Ceil(g.countdown))-1, 0)
}

// Update runs one tick of the race.
func (g *Game) Update(dt float64) {
	g.SceneBase.Update(dt)

	if g.finished {
		if hud.Restart(g.in) {
			g.reset()
		}
		return
	}
	if !g.started {
		g.countdown -= dt
		g.started = g.countdown <= 0
		return
	}

	g.raceTime += dt
	g.drive(dt)
	g.follow()
	if g.crash > 0 {
		shake := math.Min(30, g.crash*100)
		g.camera.X += (g.rng.Float64() - 0.5) * shake
		g.camera.Y += (g.rng.Float64() - 0.5) * shake
	}
	g.updateLabels()
}

// drive applies steering, throttle and the off-track penalties, then checks
// the next checkpoint.
func (g *Game) drive(dt float64) {
	throttle := g.in.AnyDown(core.KeyArrowUp, "KeyW")
	g.braking = g.in.AnyDown(core.KeyArrowDown, "KeyS", core.KeySpace)
	if g.crash > 0 {
		g.crash -= dt
		throttle = false
		g.braking = false
	}

	turn := turnRate * g.speed / maxSpeed * dt
	if g.in.AnyDown(core.KeyArrowLeft, "KeyA") {
		g.car.Angle -= turn
	}
	if g.in.AnyDown(core.KeyArrowRight, "KeyD") {
		g.car.Angle += turn
	}

	switch {
	case throttle && g.offTrack:
		g.speed += accel * offTrackAccel * dt
	case throttle:
		g.speed += accel * dt
	case g.braking:
		g.speed -= brakeRate * dt
	default:
		g.speed -= decel * dt
	}
	g.speed = core.Clamp(g.speed, 0, maxSpeed)

	g.car.Vel = core.FromAngle(g.car.Angle, g.speed)
	g.car.Integrate(dt)

	g.offTrack = !g.track.OnTrack(g.car.Pos)
	if g.offTrack {
		g.speed *= offTrackDrag
	}

	g.passCheckpoint()

	if g.offTrack && g.speed > crashSpeed && g.crash <= 0 {
		g.speed *= crashDrag
		g.crash = crashTime
	}
}

// passCheckpoint advances to the next gate once the car is through it.
// Gates must be taken in order, and the start line closes a lap.
func (g *Game) passCheckpoint() {
	next := g.track.Next(g.checkpoint)
	if !g.track.Crossed(next, g.car.Pos) {
		return
	}
	g.checkpoint = next
	if next != 0 {
		return
	}
	g.lap++
	lapTime := g.raceTime - g.lapStart
	if g.bestLap == 0 || lapTime < g.bestLap {
		g.bestLap = lapTime
	}
	g.lapStart = g.raceTime
	if g.lap >= laps {
		g.finished = true
	}
}

// follow centers the camera a little ahead of the car.
func (g *Game) follow() {
	ahead := g.car.Pos.Add(core.FromAngle(g.car.Angle, g.speed*lookAhead))
	g.camera = ahead.Sub(core.V(screenW/2, screenH/2))
}

func (g *Game) kmh() int {
	return int(math.Round(g.speed * kmhFactor))
}

func (g *Game) updateLabels() {
	engine.SetText(g.lapLabel, fmt.Sprintf("Lap: %d/%d", g.lap, laps))
	engine.SetText(g.timeLabel, "Time: "+hud.Clock(g.raceTime))
	best := "--:--.---"
	if g.bestLap > 0 {
		best = hud.Clock(g.bestLap)
	}
	engine.SetText(g.bestLabel, "Best: "+best)

	v := g.kmh()
	engine.SetText(g.speedLabel, fmt.Sprintf("Speed: %d km/h", v))
	if t, ok := engine.Find[*engine.Text](g.speedLabel); ok {
		switch {
		case v > 80:
			t.Color = core.ColorGreen
		case v > 40:
			t.Color = core.ColorYellow
		default:
			t.Color = core.ColorWhite
		}
	}
}

// Render draws the circuit in world space and the HUD on top.
func (g *Game) Render(c *gfx.Canvas) {
	c.FillRect(0, 0, screenW, screenH, gfx.Glyph('"', core.ColorGreen))

	c.Save()
	c.Translate(-g.camera.X, -g.camera.Y)
	g.renderTrack(c)
	g.renderStartLine(c)
	g.renderCar(c)
	c.Restore()

	g.SceneBase.Render(c)

	switch {
	case g.finished:
		lines := []string{"Total Time: " + hud.Clock(g.raceTime)}
		if g.bestLap > 0 {
			lines = append(lines, "Best Lap: "+hud.Clock(g.bestLap))
		}
		hud.Overlay(c, "RACE COMPLETE!", append(lines, hud.RestartHint)...)
	case !g.started:
		title := "GO!"
		if n := g.Count(); n > 0 {
			title = fmt.Sprint(n)
		}
		hud.Overlay(c, title)
	}
}

func (g *Game) renderTrack(c *gfx.Canvas) {
	asphalt := gfx.Solid(core.ColorDarkGray)
	pts := g.track.Points
	half := g.track.Width / 2
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		side := b.Sub(a).Norm().Perp().Scale(half)
		c.FillPolygon([]core.Vec{a.Add(side), b.Add(side), b.Sub(side), a.Sub(side)}, asphalt)
		c.FillCircle(a.X, a.Y, half, asphalt)
	}

	dash := gfx.Glyph('-', core.ColorWhite)
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		dir := b.Sub(a).Norm()
		n := a.Dist(b)
		for d := 0.0; d < n; d += 40 {
			from := a.Add(dir.Scale(d))
			to := a.Add(dir.Scale(math.Min(d+20, n)))
			c.Line(from.X, from.Y, to.X, to.Y, dash)
		}
	}
}

func (g *Game) renderStartLine(c *gfx.Canvas) {
	const size = 10
	start := g.track.Checkpoints[0]
	count := int(math.Ceil(g.track.Width / size))
	c.Save()
	c.Translate(start.Pos.X, start.Pos.Y)
	c.Rotate(start.Perp.Angle())
	for i := -count; i <= count; i++ {
		for j := -3; j <= 3; j++ {
			color := core.ColorBlack
			if (i+j)%2 == 0 {
				color = core.ColorWhite
			}
			c.FillRect(float64(i)*size-size/2, float64(j)*size-size/2, size, size, gfx.Solid(color))
		}
	}
	c.Restore()
}

// renderCar draws the car facing +x in its own frame.
func (g *Game) renderCar(c *gfx.Canvas) {
	c.Save()
	c.Translate(g.car.Pos.X, g.car.Pos.Y)
	c.Rotate(g.car.Angle)
	c.FillRect(-carL/2, -carW/2, carL, carW, gfx.Solid(core.ColorOrange))
	c.FillRect(carL/6, -carW/3, carL/6, carW*2/3, gfx.Solid(core.ColorSky))
	c.FillRect(-carL/4, -carW/2-3, carL/2, 6, gfx.Solid(core.ColorBlack))
	c.FillRect(-carL/4, carW/2-3, carL/2, 6, gfx.Solid(core.ColorBlack))
	c.FillRect(carL/2-5, -carW/4, 5, carW/8, gfx.Solid(core.ColorYellow))
	c.FillRect(carL/2-5, carW/8, 5, carW/8, gfx.Solid(core.ColorYellow))
	if g.braking {
		c.FillRect(-carL/2, -carW/4, 5, carW/8, gfx.Solid(core.ColorRed))
		c.FillRect(-carL/2, carW/8, 5, carW/8, gfx.Solid(core.ColorRed))
	}
	c.Restore()
}

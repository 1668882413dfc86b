package shooter

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
)

// Kind is an enemy class.
type Kind int

const (
	Basic Kind = iota
	Fast
	Elite
)

type kindStats struct {
	radius float64
	speed  float64
	health int
	points int
	color  core.Color
}

var stats = [...]kindStats{
	Basic: {radius: 30, speed: 100, health: 1, points: 10, color: core.ColorRed},
	Fast:  {radius: 30, speed: 150, health: 1, points: 15, color: core.ColorOrange},
	Elite: {radius: 45, speed: 100, health: 3, points: 25, color: core.ColorPurple},
}

const spawnPadding = 100

// Enemy chases the player in a straight line.
type Enemy struct {
	physics.Body
	Kind   Kind
	Health int
}

// rollKind picks the enemy class for a wave: elites from wave 5, fast ones
// from wave 3.
func rollKind(wave int, roll float64) Kind {
	switch {
	case wave >= 5 && roll > 0.8:
		return Elite
	case wave >= 3 && roll > 0.7:
		return Fast
	}
	return Basic
}

// spawnPoint returns a point just outside a random side of the arena.
func spawnPoint(rng *rand.Rand, w, h float64) core.Vec {
	switch rng.Intn(4) {
	case 0:
		return core.V(rng.Float64()*w, -spawnPadding)
	case 1:
		return core.V(w+spawnPadding, rng.Float64()*h)
	case 2:
		return core.V(rng.Float64()*w, h+spawnPadding)
	default:
		return core.V(-spawnPadding, rng.Float64()*h)
	}
}

func newEnemy(k Kind, pos core.Vec) Enemy {
	s := stats[k]
	return Enemy{Body: physics.Body{Pos: pos, Radius: s.radius}, Kind: k, Health: s.health}
}

// chase moves the enemy toward target at its class speed.
func (e *Enemy) chase(target core.Vec, dt float64) {
	d := target.Sub(e.Pos)
	if d.Len() == 0 {
		e.Vel = core.Vec{}
		return
	}
	e.Vel = d.Norm().Scale(stats[e.Kind].speed)
	e.Integrate(dt)
}

// Powerup kinds.
type Boost int

const (
	BoostHealth Boost = iota
	BoostSpeed
	BoostFireRate
)

var boostColors = [...]core.Color{
	BoostHealth:   core.ColorGreen,
	BoostSpeed:    core.ColorBlue,
	BoostFireRate: core.ColorOrange,
}

type powerup struct {
	pos   core.Vec
	boost Boost
	life  float64
	pulse float64
}

type particle struct {
	physics.Body
	color core.Color
	life  float64
}

// burst scatters count particles from pos.
func burst(rng *rand.Rand, pos core.Vec, count int, color core.Color, speed, size, life float64) []particle {
	out := make([]particle, 0, count)
	for range count {
		v := core.FromAngle(rng.Float64()*2*math.Pi, speed*(0.5+rng.Float64()*0.5))
		out = append(out, particle{
			Body:  physics.Body{Pos: pos, Vel: v, Radius: size * (0.5 + rng.Float64()*0.5)},
			color: color,
			life:  life * (0.8 + rng.Float64()*0.4),
		})
	}
	return out
}

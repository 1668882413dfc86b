package fighting

import (
	"math"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
)

// Move is an attack type.
type Move int

const (
	NoMove Move = iota
	Punch
	Kick
	Special
)

func (m Move) String() string {
	switch m {
	case Punch:
		return "punch"
	case Kick:
		return "kick"
	case Special:
		return "special"
	}
	return "none"
}

// moveStats is the timing and damage of one attack.
type moveStats struct {
	duration float64
	power    int
}

var (
	playerMoves = map[Move]moveStats{
		Punch:   {duration: 0.2, power: 10},
		Kick:    {duration: 0.3, power: 15},
		Special: {duration: 0.5, power: 25},
	}
	enemyMoves = map[Move]moveStats{
		Punch:   {duration: 0.3, power: 8},
		Kick:    {duration: 0.4, power: 12},
		Special: {duration: 0.6, power: 20},
	}
)

// reach is how far an attack connects, as a multiple of the body width.
func (m Move) reach() float64 {
	switch m {
	case Kick:
		return fighterW * 1.2
	case Special:
		return fighterW * 1.5
	}
	return fighterW
}

func (m Move) knockback() float64 {
	switch m {
	case Kick:
		return 100
	case Special:
		return 150
	}
	return 50
}

const (
	gravity   = 2000.0
	groundY   = 500.0
	arenaW    = 800.0
	fighterW  = 60.0
	fighterH  = 120.0
	jumpSpeed = 800.0
	maxHealth = 100
	stunTime  = 0.3
	blockCut  = 0.2

	activeFrom = 0.3
	activeTo   = 0.7
)

// Fighter is one combatant. Pos.X is the body center and Pos.Y the feet.
type Fighter struct {
	physics.Body
	speed    float64
	moves    map[Move]moveStats
	health   int
	facing   float64
	airborne bool
	blocking bool
	stun     float64

	move     Move
	moveTime float64
	duration float64
	power    int
	landed   bool
}

func newFighter(x, facing, speed float64, moves map[Move]moveStats) Fighter {
	return Fighter{
		Body:   physics.Body{Pos: core.V(x, groundY), W: fighterW, H: fighterH},
		speed:  speed,
		moves:  moves,
		health: maxHealth,
		facing: facing,
	}
}

func (f *Fighter) attacking() bool { return f.move != NoMove }
func (f *Fighter) stunned() bool   { return f.stun > 0 }

// start begins move m. It reports false when the fighter is busy.
func (f *Fighter) start(m Move) bool {
	if f.attacking() || f.stunned() || f.blocking {
		return false
	}
	s := f.moves[m]
	f.move = m
	f.moveTime = 0
	f.duration = s.duration
	f.power = s.power
	f.landed = false
	return true
}

func (f *Fighter) jump(vx float64) {
	if f.airborne {
		return
	}
	f.Vel = core.V(vx, -jumpSpeed)
	f.airborne = true
}

// face turns toward x.
func (f *Fighter) face(x float64) {
	if x < f.Pos.X {
		f.facing = -1
	} else {
		f.facing = 1
	}
}

// step applies gravity, lands on the floor, keeps the fighter in the arena
// and runs the attack and stun timers.
func (f *Fighter) step(dt float64) {
	if f.Pos.Y < groundY {
		f.Vel.Y += gravity * dt
	}
	f.Integrate(dt)
	if f.Pos.Y > groundY {
		f.Pos.Y = groundY
		f.Vel.Y = 0
		f.airborne = false
	}
	f.Pos.X = core.Clamp(f.Pos.X, fighterW/2, arenaW-fighterW/2)

	if f.attacking() {
		f.moveTime += dt
		if f.moveTime >= f.duration {
			f.move = NoMove
		}
	}
	if f.stunned() {
		f.stun -= dt
	}
}

// faces reports whether f is turned toward x.
func (f *Fighter) faces(x float64) bool {
	return (f.facing > 0 && f.Pos.X < x) || (f.facing < 0 && f.Pos.X > x)
}

// active reports whether the attack is in the part of its swing that can
// connect. Each attack lands at most once.
func (f *Fighter) active() bool {
	if !f.attacking() || f.landed {
		return false
	}
	return f.moveTime > f.duration*activeFrom && f.moveTime < f.duration*activeTo
}

// Outcome of an attack check.
type Outcome int

const (
	Missed Outcome = iota
	Blocked
	Hit
)

// strike resolves attacker's swing against defender. A block facing the
// attacker takes a fifth of the damage; a clean hit stuns, interrupts the
// defender's own attack and knocks them away.
func strike(attacker, defender *Fighter) (Outcome, int) {
	if !attacker.active() {
		return Missed, 0
	}
	if math.Abs(attacker.Pos.X-defender.Pos.X) >= attacker.move.reach() || !attacker.faces(defender.Pos.X) {
		return Missed, 0
	}
	attacker.landed = true

	if defender.blocking && defender.faces(attacker.Pos.X) {
		dmg := int(math.Floor(float64(attacker.power) * blockCut))
		defender.health = max(defender.health-dmg, 0)
		return Blocked, dmg
	}
	defender.health = max(defender.health-attacker.power, 0)
	defender.stun = stunTime
	defender.blocking = false
	defender.move = NoMove
	kb := attacker.move.knockback()
	if attacker.Pos.X > defender.Pos.X {
		kb = -kb
	}
	defender.Vel.X = kb
	return Hit, attacker.power
}

// healthColor grades a health value; enemy bars use the inverted scale.
func healthColor(h int, inverted bool) core.Color {
	good, bad := core.ColorGreen, core.ColorRed
	if inverted {
		good, bad = bad, good
	}
	switch {
	case h > 70:
		return good
	case h > 30:
		return core.ColorYellow
	}
	return bad
}

package fighting

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/pattern/agent"
)

// Mood is the opponent's current plan.
type Mood int

const (
	Idle Mood = iota
	Advance
	Retreat
	Jump
	Attack
	Block
	Stunned
)

func (m Mood) String() string {
	return [...]string{"idle", "advance", "retreat", "jump", "attack", "block", "stunned"}[m]
}

const (
	thinkTime   = 0.5
	thinkJitter = 0.5
	attackRange = 100.0
)

var (
	// close quarters while the player is swinging
	defensive = agent.Menu[Mood]{{State: Block, Weight: 0.7}, {State: Retreat, Weight: 0.2}, {State: Jump, Weight: 0.1}}
	offensive = agent.Menu[Mood]{{State: Attack, Weight: 0.6}, {State: Retreat, Weight: 0.2}, {State: Idle, Weight: 0.2}}
	midRange  = agent.Menu[Mood]{{State: Advance, Weight: 0.5}, {State: Jump, Weight: 0.2}, {State: Attack, Weight: 0.2}, {State: Idle, Weight: 0.1}}
	farAway   = agent.Menu[Mood]{{State: Advance, Weight: 0.7}, {State: Jump, Weight: 0.2}, {State: Idle, Weight: 0.1}}
)

// policy returns the distance bands for the opponent's next decision.
func policy(playerAttacking bool) agent.Policy[Mood] {
	near := offensive
	if playerAttacking {
		near = defensive
	}
	return agent.Policy[Mood]{
		{Limit: 80, Menu: near},
		{Limit: 200, Menu: midRange},
		{Limit: math.Inf(1), Menu: farAway},
	}
}

// opponent drives the enemy fighter from a mood machine.
type opponent struct {
	rng     *rand.Rand
	machine *agent.Machine[Mood]
}

func newOpponent(rng *rand.Rand) *opponent {
	return &opponent{rng: rng, machine: agent.NewMachine(Idle)}
}

// stagger forces the stunned mood after a clean hit.
func (o *opponent) stagger() {
	o.machine.Interrupt(Stunned, stunTime)
}

// think picks a new mood when the current one has run its course, then acts
// on it.
func (o *opponent) think(self, player *Fighter, dt float64) {
	if o.machine.Tick(dt) {
		dist := math.Abs(player.Pos.X - self.Pos.X)
		if m, ok := policy(player.attacking()).Choose(dist, o.rng.Float64()); ok {
			o.machine.Set(m, agent.Dwell(o.rng, thinkTime, thinkJitter))
		}
	}
	o.act(self, player)
}

func (o *opponent) act(self, player *Fighter) {
	mood := o.machine.State()
	if mood == Stunned || self.stunned() {
		self.blocking = false
		return
	}
	self.blocking = mood == Block
	toward := 1.0
	if player.Pos.X < self.Pos.X {
		toward = -1
	}

	switch mood {
	case Advance:
		self.Vel.X = toward * self.speed
		self.facing = toward
	case Retreat:
		self.Vel.X = -toward * self.speed
		self.facing = -toward
	case Jump:
		if !self.airborne {
			self.jump(toward * self.speed * 0.5)
		}
	case Attack:
		self.Vel.X = 0
		self.facing = toward
		if !self.attacking() && math.Abs(player.Pos.X-self.Pos.X) < attackRange {
			self.start(rollMove(o.rng.Float64()))
		}
	case Block:
		self.Vel.X = 0
		self.facing = toward
	default:
		self.Vel.X = 0
	}
}

// rollMove picks the opponent's attack: mostly punches, rarely a special.
func rollMove(roll float64) Move {
	switch {
	case roll < 0.6:
		return Punch
	case roll < 0.9:
		return Kick
	}
	return Special
}

// Package agent implements the small decision-making state machines used by
// computer-controlled opponents: a dwell-timed state, weighted choice menus
// and grid chase pathing.
package agent

import (
	"math/rand"
)

// Machine holds exactly one active state of type S. The state only changes
// when its dwell timer has run out or an interrupt forces it.
type Machine[S comparable] struct {
	state S
	timer float64
	dwell float64
}

// NewMachine starts in state s with no dwell, so the first Tick expires.
func NewMachine[S comparable](s S) *Machine[S] {
	return &Machine[S]{state: s}
}

// State returns the active state.
func (m *Machine[S]) State() S { return m.state }

// Remaining returns the dwell time left.
func (m *Machine[S]) Remaining() float64 { return max(m.dwell-m.timer, 0) }

// Tick advances the dwell timer and reports whether it has expired, which is
// the only time a caller may choose a new state through Set.
func (m *Machine[S]) Tick(dt float64) bool {
	m.timer += dt
	return m.timer >= m.dwell
}

// Expired reports whether the dwell has run out.
func (m *Machine[S]) Expired() bool { return m.timer >= m.dwell }

// Set commits to state s for dwell seconds. It is ignored while the current
// dwell is still running; use Interrupt for forced changes.
func (m *Machine[S]) Set(s S, dwell float64) bool {
	if !m.Expired() {
		return false
	}
	m.commit(s, dwell)
	return true
}

// Interrupt switches to s immediately, bypassing the dwell timer.
func (m *Machine[S]) Interrupt(s S, dwell float64) {
	m.commit(s, dwell)
}

func (m *Machine[S]) commit(s S, dwell float64) {
	m.state = s
	m.timer = 0
	m.dwell = dwell
}

// Dwell returns a randomized dwell of base plus up to jitter seconds.
func Dwell(rng *rand.Rand, base, jitter float64) float64 {
	return base + rng.Float64()*jitter
}

// Option is one weighted candidate in a Menu.
type Option[S any] struct {
	State  S
	Weight float64
}

// Menu is a weighted list of candidate states.
type Menu[S any] []Option[S]

// Pick chooses by cumulative weight using roll in [0, 1). An empty menu
// returns the zero state and false.
func (m Menu[S]) Pick(roll float64) (S, bool) {
	var zero S
	total := 0.0
	for _, o := range m {
		total += max(o.Weight, 0)
	}
	if total <= 0 {
		return zero, false
	}
	target := roll * total
	acc := 0.0
	for _, o := range m {
		acc += max(o.Weight, 0)
		if target < acc {
			return o.State, true
		}
	}
	return m[len(m)-1].State, true
}

// Band is a menu that applies while the distance to the target is below
// Limit.
type Band[S any] struct {
	Limit float64
	Menu  Menu[S]
}

// Policy picks a menu by distance: the first band whose limit exceeds the
// distance wins, the last band is the fallback.
type Policy[S any] []Band[S]

// Choose picks a state for the given distance and roll.
func (p Policy[S]) Choose(dist, roll float64) (S, bool) {
	var zero S
	if len(p) == 0 {
		return zero, false
	}
	for _, b := range p {
		if dist < b.Limit {
			return b.Menu.Pick(roll)
		}
	}
	return p[len(p)-1].Menu.Pick(roll)
}

package agent

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

type mood int

const (
	idle mood = iota
	advance
	retreat
	attack
)

func TestMachineDwell(t *testing.T) {
	m := NewMachine(idle)
	if !m.Tick(0.01) {
		t.Fatal("a new machine should be ready to decide")
	}
	m.Set(advance, 0.5)

	if m.Tick(0.3) {
		t.Error("dwell should not expire after 0.3s of 0.5s")
	}
	if m.Set(retreat, 1) {
		t.Error("Set must not change state while dwelling")
	}
	if m.State() != advance {
		t.Errorf("state = %v, expected advance", m.State())
	}

	m.Interrupt(retreat, 0.4)
	if m.State() != retreat || m.Remaining() != 0.4 {
		t.Errorf("Interrupt should switch immediately, state=%v", m.State())
	}

	if !m.Tick(0.5) || !m.Set(attack, 1) {
		t.Error("expired dwell should allow a new state")
	}
}

func TestMenuPick(t *testing.T) {
	menu := Menu[mood]{{advance, 1}, {attack, 3}, {idle, 0}}
	tests := []struct {
		roll float64
		want mood
	}{
		{0, advance},
		{0.24, advance},
		{0.25, attack},
		{0.99, attack},
	}
	for _, tt := range tests {
		if got, _ := menu.Pick(tt.roll); got != tt.want {
			t.Errorf("Pick(%v) = %v, expected %v", tt.roll, got, tt.want)
		}
	}
	if _, ok := (Menu[mood]{}).Pick(0.5); ok {
		t.Error("empty menu should not pick")
	}
}

func TestPolicyByDistance(t *testing.T) {
	p := Policy[mood]{
		{Limit: 100, Menu: Menu[mood]{{attack, 1}}},
		{Limit: 300, Menu: Menu[mood]{{retreat, 1}}},
		{Limit: 0, Menu: Menu[mood]{{advance, 1}}},
	}
	cases := map[float64]mood{50: attack, 150: retreat, 1000: advance}
	for dist, want := range cases {
		if got, _ := p.Choose(dist, 0.5); got != want {
			t.Errorf("Choose(%v) = %v, expected %v", dist, got, want)
		}
	}
}

func corridor(open map[grid.Point]bool) func(grid.Point) bool {
	return func(p grid.Point) bool { return open[p] }
}

func TestLegalNeverReversesUnlessForced(t *testing.T) {
	// a T junction at (1,1): open left, right and down
	open := corridor(map[grid.Point]bool{{X: 0, Y: 1}: true, {X: 2, Y: 1}: true, {X: 1, Y: 2}: true})
	dirs := Legal(grid.Point{X: 1, Y: 1}, grid.Right, open)
	for _, d := range dirs {
		if d == grid.Left {
			t.Errorf("reverse direction offered at a junction: %v", dirs)
		}
	}
	if len(dirs) != 2 {
		t.Errorf("expected 2 legal directions, got %v", dirs)
	}

	deadEnd := corridor(map[grid.Point]bool{{X: 0, Y: 1}: true})
	if got := Legal(grid.Point{X: 1, Y: 1}, grid.Right, deadEnd); len(got) != 1 || got[0] != grid.Left {
		t.Errorf("dead end should allow reversing, got %v", got)
	}
}

func TestChooseDirectionChasesMostly(t *testing.T) {
	open := corridor(map[grid.Point]bool{{X: 1, Y: 0}: true, {X: 2, Y: 1}: true, {X: 1, Y: 2}: true, {X: 0, Y: 1}: true})
	rng := rand.New(rand.NewSource(7))
	target := grid.Point{X: 10, Y: 1}

	greedy := 0
	const n = 2000
	for range n {
		if ChooseDirection(rng, grid.Point{X: 1, Y: 1}, grid.Up, target, open, false, ChaseBias) == grid.Right {
			greedy++
		}
	}
	// 0.8 greedy plus a third of the random 0.2
	ratio := float64(greedy) / n
	if ratio < 0.8 || ratio > 0.93 {
		t.Errorf("greedy ratio %.2f outside the expected band", ratio)
	}

	frightened := 0
	for range n {
		if ChooseDirection(rng, grid.Point{X: 1, Y: 1}, grid.Up, target, open, true, ChaseBias) == grid.Right {
			frightened++
		}
	}
	if r := float64(frightened) / n; r > 0.45 {
		t.Errorf("frightened agent chose the greedy direction %.2f of the time", r)
	}
}

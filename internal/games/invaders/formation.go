package invaders

import (
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
)

const (
	formationRows = 5
	formationCols = 10
	enemyW        = 35
	enemyH        = 25
	enemyPad      = 10
	formationTop  = 50
	dropAmount    = 15
)

var rowColors = [formationRows]core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorBlue,
}

// Enemy is one invader. Box is in play-area coordinates.
type Enemy struct {
	Box      physics.AABB
	Row, Col int
	Alive    bool
}

// Points is what shooting the enemy is worth: the top row pays the most.
func (e Enemy) Points() int { return (formationRows - e.Row) * 10 }

func buildFormation() []Enemy {
	out := make([]Enemy, 0, formationRows*formationCols)
	for r := range formationRows {
		for c := range formationCols {
			cx := float64(c*(enemyW+enemyPad)) + enemyPad + enemyW/2.0
			cy := float64(r*(enemyH+enemyPad)) + formationTop
			out = append(out, Enemy{
				Box:   physics.Centered(cx, cy, enemyW, enemyH),
				Row:   r,
				Col:   c,
				Alive: true,
			})
		}
	}
	return out
}

// Formation moves the invaders as one block: a sideways step every interval,
// or a drop and a turn when the next step would leave the area.
type Formation struct {
	Enemies  []Enemy
	Dir      float64 // +1 right, -1 left
	Speed    float64 // pixels per step
	Interval float64
	timer    float64
}

// Tick advances the step timer and reports whether the block should step.
func (f *Formation) Tick(dt float64) bool {
	f.timer += dt
	if f.timer < f.Interval {
		return false
	}
	f.timer = 0
	return true
}

// Step moves the block once within an area width wide and reports whether
// it dropped.
func (f *Formation) Step(width float64) bool {
	dx := f.Dir * f.Speed
	edge := false
	for _, e := range f.Enemies {
		if e.Alive && (e.Box.X+dx < 0 || e.Box.Right()+dx > width) {
			edge = true
			break
		}
	}
	for i := range f.Enemies {
		if !f.Enemies[i].Alive {
			continue
		}
		if edge {
			f.Enemies[i].Box.Y += dropAmount
		} else {
			f.Enemies[i].Box.X += dx
		}
	}
	if edge {
		f.Dir = -f.Dir
	}
	return edge
}

// Alive counts the surviving invaders.
func (f *Formation) Alive() int {
	n := 0
	for _, e := range f.Enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// Lowest returns the bottom edge of the lowest surviving invader.
func (f *Formation) Lowest() float64 {
	low := 0.0
	for _, e := range f.Enemies {
		if e.Alive {
			low = max(low, e.Box.Bottom())
		}
	}
	return low
}

// Exposed reports whether no living invader sits below e in its column,
// which is the only position allowed to drop bombs.
func (f *Formation) Exposed(e Enemy) bool {
	for _, o := range f.Enemies {
		if o.Alive && o.Col == e.Col && o.Row > e.Row {
			return false
		}
	}
	return true
}

package agent

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

// ChaseBias is the probability a chasing agent takes the greedy direction.
const ChaseBias = 0.8

// Legal lists the directions an agent at p may take: open, and not the
// reverse of heading. Reversing is allowed only when it is the sole exit.
func Legal(p, heading grid.Point, open func(grid.Point) bool) []grid.Point {
	reverse := grid.Point{X: -heading.X, Y: -heading.Y}
	var dirs []grid.Point
	canReverse := false
	for _, d := range grid.Dirs4 {
		if !open(p.Add(d)) {
			continue
		}
		if d == reverse && heading != (grid.Point{}) {
			canReverse = true
			continue
		}
		dirs = append(dirs, d)
	}
	if len(dirs) == 0 && canReverse {
		dirs = append(dirs, reverse)
	}
	return dirs
}

// ChooseDirection picks the next heading at an intersection. A frightened
// agent picks uniformly; otherwise with probability chase it takes the
// direction whose next cell is closest to target in straight-line distance,
// else a uniform pick. It returns the zero Point when boxed in.
func ChooseDirection(rng *rand.Rand, p, heading, target grid.Point, open func(grid.Point) bool, frightened bool, chase float64) grid.Point {
	dirs := Legal(p, heading, open)
	if len(dirs) == 0 {
		return grid.Point{}
	}
	if frightened || rng.Float64() >= chase {
		return dirs[rng.Intn(len(dirs))]
	}
	return Greedy(dirs, p, target)
}

// Greedy returns the direction minimizing the distance from p+d to target.
// Ties keep the earliest direction.
func Greedy(dirs []grid.Point, p, target grid.Point) grid.Point {
	best := dirs[0]
	bestDist := math.Inf(1)
	for _, d := range dirs {
		n := p.Add(d)
		dist := math.Hypot(float64(n.X-target.X), float64(n.Y-target.Y))
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

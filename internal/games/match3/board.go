package match3

import (
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

// Tile is a gem kind. Empty marks a cleared cell waiting to be refilled.
type Tile uint8

const Empty Tile = 0

const (
	Size  = 8
	Kinds = 6

	// maxRerolls bounds the corrective passes over a fresh deal.
	maxRerolls = 100
	// maxCascade bounds the clear and refill passes after one swap.
	maxCascade = 64
)

// Board is the gem grid.
type Board struct {
	*grid.Board[Tile]
}

func randomTile(rng *rand.Rand) Tile { return Tile(rng.Intn(Kinds) + 1) }

func sameGem(a, b Tile) bool { return a != Empty && a == b }

func isEmpty(t Tile) bool { return t == Empty }

// Deal fills a board that starts without any three in a row. Every pass
// rerolls the middle gem of each run; if the passes run out the remaining
// runs are broken deterministically.
func Deal(rng *rand.Rand) Board {
	b := Board{grid.New(Size, Size, Empty)}
	for y := range Size {
		for x := range Size {
			b.Set(x, y, randomTile(rng))
		}
	}
	ok := grid.Reroll(maxRerolls, func(int) bool {
		runs := grid.Runs(b.Board, 3, sameGem)
		for _, run := range runs {
			b.SetP(run[len(run)/2], randomTile(rng))
		}
		return len(runs) == 0
	})
	if ok < 0 {
		b.breakRuns()
	}
	return b
}

// breakRuns rewrites any gem that completes a run with the two before it in
// its row or column. Six kinds leave at least four candidates per cell.
func (b Board) breakRuns() {
	for y := range Size {
		for x := range Size {
			t := b.At(x, y)
			for k := Tile(1); b.completesRun(x, y, t) && k <= Kinds; k++ {
				t = k
			}
			b.Set(x, y, t)
		}
	}
}

func (b Board) completesRun(x, y int, t Tile) bool {
	return (b.At(x-1, y) == t && b.At(x-2, y) == t) || (b.At(x, y-1) == t && b.At(x, y-2) == t)
}

// Matches returns every cell that is part of a run of three or more, once
// each, in row-major order.
func (b Board) Matches() []grid.Point {
	hit := make([]bool, Size*Size)
	for _, run := range grid.Runs(b.Board, 3, sameGem) {
		for _, p := range run {
			hit[p.Y*Size+p.X] = true
		}
	}
	var out []grid.Point
	for i, h := range hit {
		if h {
			out = append(out, grid.Point{X: i % Size, Y: i / Size})
		}
	}
	return out
}

// Score values one batch of cleared gems: ten each, plus ten for every gem
// beyond three.
func Score(n int) int {
	return n*10 + max(n-3, 0)*10
}

// Adjacent reports whether a and c share an edge.
func Adjacent(a, c grid.Point) bool {
	dx, dy := a.X-c.X, a.Y-c.Y
	return dx*dx+dy*dy == 1
}

// Clear empties the given cells.
func (b Board) Clear(cells []grid.Point) {
	for _, p := range cells {
		b.SetP(p, Empty)
	}
}

// Drops reports how many rows each cell will fall when the board collapses,
// indexed by its landing position. Refilled cells fall from above the board.
func (b Board) Drops() [Size][Size]int {
	var drops [Size][Size]int
	for x := range Size {
		below := 0
		for y := Size - 1; y >= 0; y-- {
			if b.At(x, y) == Empty {
				below++
				continue
			}
			drops[y+below][x] = below
		}
		for y := range below {
			drops[y][x] = below
		}
	}
	return drops
}

// Refill collapses the columns and spawns new gems at the top.
func (b Board) Refill(rng *rand.Rand) bool {
	return grid.Collapse(b.Board, isEmpty, func(int, int) Tile { return randomTile(rng) })
}

// Pass is one cascade step: it clears m, records how far each gem left
// standing falls, then collapses and refills. It returns the points for m and
// the fall distances.
func (b Board) Pass(m []grid.Point, rng *rand.Rand) (int, [Size][Size]int) {
	b.Clear(m)
	drops := b.Drops()
	b.Refill(rng)
	return Score(len(m)), drops
}

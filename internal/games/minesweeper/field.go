package minesweeper

import (
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

// Cell is one square of the minefield.
type Cell struct {
	Mine     bool
	Adjacent int
	Revealed bool
	Flagged  bool
}

// Field is a minefield. Mines are laid on the first reveal so that the
// first click always opens a safe area.
type Field struct {
	Cols, Rows int
	Mines      int

	cells  *grid.Board[Cell]
	placed bool
	flags  int
}

// NewField returns an empty field of the given size.
func NewField(cols, rows, mines int) *Field {
	return &Field{
		Cols:  cols,
		Rows:  rows,
		Mines: min(mines, cols*rows-1),
		cells: grid.New(cols, rows, Cell{}),
	}
}

// At returns the cell at p.
func (f *Field) At(p grid.Point) Cell { return f.cells.AtP(p) }

// Placed reports whether the mines have been laid.
func (f *Field) Placed() bool { return f.placed }

// Remaining is the mine count minus the flags placed.
func (f *Field) Remaining() int { return f.Mines - f.flags }

// Place lays the mines uniformly at random, keeping safe and its eight
// neighbours clear. On boards too small for that only safe itself is kept
// clear.
func (f *Field) Place(rng *rand.Rand, safe grid.Point) {
	near := func(p grid.Point) bool {
		return core.Abs(p.X-safe.X) <= 1 && core.Abs(p.Y-safe.Y) <= 1
	}
	if f.Cols*f.Rows-9 < f.Mines {
		near = func(p grid.Point) bool { return p == safe }
	}

	var free []grid.Point
	f.cells.Each(func(x, y int, _ Cell) {
		if p := (grid.Point{X: x, Y: y}); !near(p) {
			free = append(free, p)
		}
	})
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	f.lay(free[:f.Mines])
}

// lay puts mines on exactly the given cells and computes the counts.
func (f *Field) lay(mines []grid.Point) {
	for _, p := range mines {
		c := f.cells.AtP(p)
		c.Mine = true
		f.cells.SetP(p, c)
	}
	f.cells.Each(func(x, y int, c Cell) {
		p := grid.Point{X: x, Y: y}
		c.Adjacent = 0
		for _, n := range f.cells.Neighbors8(p) {
			if f.cells.AtP(n).Mine {
				c.Adjacent++
			}
		}
		f.cells.SetP(p, c)
	})
	f.Mines = len(mines)
	f.placed = true
}

// Reveal opens p, flooding outward through cells with no adjacent mines.
// Flagged and already revealed cells are left alone. It reports whether a
// mine went off.
func (f *Field) Reveal(p grid.Point) bool {
	if !f.cells.InBounds(p.X, p.Y) {
		return false
	}
	if c := f.cells.AtP(p); c.Revealed || c.Flagged {
		return false
	}
	boom := false
	grid.Flood(f.cells, p, true, func(q grid.Point, c Cell) bool {
		if c.Revealed || c.Flagged {
			return false
		}
		c.Revealed = true
		f.cells.SetP(q, c)
		if c.Mine {
			boom = true
			return false
		}
		return c.Adjacent == 0
	})
	return boom
}

// ToggleFlag flags or unflags a covered cell.
func (f *Field) ToggleFlag(p grid.Point) bool {
	c := f.cells.AtP(p)
	if !f.cells.InBounds(p.X, p.Y) || c.Revealed {
		return false
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		f.flags++
	} else {
		f.flags--
	}
	f.cells.SetP(p, c)
	return true
}

// Chord reveals every unflagged neighbour of a revealed number whose flag
// count matches it. It reports whether a mine went off.
func (f *Field) Chord(p grid.Point) bool {
	c := f.cells.AtP(p)
	if !c.Revealed || c.Adjacent == 0 {
		return false
	}
	neighbors := f.cells.Neighbors8(p)
	flagged := 0
	for _, n := range neighbors {
		if f.cells.AtP(n).Flagged {
			flagged++
		}
	}
	if flagged != c.Adjacent {
		return false
	}
	boom := false
	for _, n := range neighbors {
		if f.Reveal(n) {
			boom = true
		}
	}
	return boom
}

// Cleared reports whether every safe cell is open.
func (f *Field) Cleared() bool {
	if !f.placed {
		return false
	}
	covered := f.cells.Count(func(c Cell) bool { return !c.Revealed })
	return covered == f.Mines
}

// FlagAll flags every covered cell, used once the field is cleared.
func (f *Field) FlagAll() {
	f.cells.Each(func(x, y int, c Cell) {
		if !c.Revealed && !c.Flagged {
			c.Flagged = true
			f.cells.Set(x, y, c)
			f.flags++
		}
	})
}

// ShowMines uncovers every mine after a loss.
func (f *Field) ShowMines() {
	f.cells.Each(func(x, y int, c Cell) {
		if c.Mine {
			c.Revealed = true
			f.cells.Set(x, y, c)
		}
	})
}

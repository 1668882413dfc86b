package sudoku

import (
	"math/bits"
	"math/rand"
)

const (
	Size = 9
	Box  = 3

	allDigits uint16 = 0b11_1111_1110
)

// Digits is a 9x9 grid indexed [row][col]; 0 is an empty cell.
type Digits [Size][Size]uint8

// Candidates returns the digits that fit at (r, c) as a bit set, bit n for
// digit n.
func (d *Digits) Candidates(r, c int) uint16 {
	used := uint16(0)
	br, bc := r/Box*Box, c/Box*Box
	for i := range Size {
		used |= 1<<d[r][i] | 1<<d[i][c] | 1<<d[br+i/Box][bc+i%Box]
	}
	return allDigits &^ used
}

// Fits reports whether n can go at (r, c) without repeating in its row,
// column or box. The cell itself is ignored.
func (d *Digits) Fits(r, c int, n uint8) bool {
	saved := d[r][c]
	d[r][c] = 0
	ok := d.Candidates(r, c)&(1<<n) != 0
	d[r][c] = saved
	return ok
}

// Solved reports whether every row, column and box holds 1-9 once.
func (d *Digits) Solved() bool {
	for i := range Size {
		var row, col, box uint16
		br, bc := i/Box*Box, i%Box*Box
		for j := range Size {
			row |= 1 << d[i][j]
			col |= 1 << d[j][i]
			box |= 1 << d[br+j/Box][bc+j%Box]
		}
		if row != allDigits || col != allDigits || box != allDigits {
			return false
		}
	}
	return true
}

// Empty counts the unfilled cells.
func (d *Digits) Empty() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if d[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// mostConstrained finds the empty cell with the fewest candidates. ok is
// false when the grid is full.
func (d *Digits) mostConstrained() (r, c int, cand uint16, ok bool) {
	best := Size + 1
	for i := range Size {
		for j := range Size {
			if d[i][j] != 0 {
				continue
			}
			m := d.Candidates(i, j)
			if n := bits.OnesCount16(m); n < best {
				r, c, cand, best, ok = i, j, m, n, true
				if n == 0 {
					return
				}
			}
		}
	}
	return
}

// Solutions counts the completions of d, stopping at limit.
func Solutions(d Digits, limit int) int {
	count := 0
	var search func()
	search = func() {
		r, c, cand, ok := d.mostConstrained()
		if !ok {
			count++
			return
		}
		for n := uint8(1); n <= Size && count < limit; n++ {
			if cand&(1<<n) == 0 {
				continue
			}
			d[r][c] = n
			search()
		}
		d[r][c] = 0
	}
	search()
	return count
}

// fill completes d by backtracking, trying digits in random order.
func fill(d *Digits, rng *rand.Rand) bool {
	r, c, cand, ok := d.mostConstrained()
	if !ok {
		return true
	}
	for _, i := range rng.Perm(Size) {
		n := uint8(i + 1)
		if cand&(1<<n) == 0 {
			continue
		}
		d[r][c] = n
		if fill(d, rng) {
			return true
		}
	}
	d[r][c] = 0
	return false
}

// Generate builds a random solution and a puzzle with up to removals cells
// cleared. A cell is only cleared if the puzzle keeps exactly one solution;
// otherwise it is put back and the next cell is tried.
func Generate(rng *rand.Rand, removals int) (puzzle, solution Digits) {
	fill(&solution, rng)
	puzzle = solution
	removed := 0
	for _, i := range rng.Perm(Size * Size) {
		if removed >= removals {
			break
		}
		r, c := i/Size, i%Size
		puzzle[r][c] = 0
		if Solutions(puzzle, 2) != 1 {
			puzzle[r][c] = solution[r][c]
			continue
		}
		removed++
	}
	return puzzle, solution
}

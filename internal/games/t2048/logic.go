package t2048

import "github.com/vovakirdan/gameflix/internal/pattern/grid"

// Size is the board dimension.
const Size = 4

// WinTile is the value that wins the game when created by a merge.
const WinTile = 2048

// Board holds tile values; 0 is an empty cell. Reads outside return -1 so
// they never equal a tile.
type Board = grid.Board[int]

// NewBoard returns an empty board.
func NewBoard() *Board { return grid.New(Size, Size, -1) }

// Outcome describes what a slide did.
type Outcome struct {
	Moved  bool
	Gained int          // sum of the tiles created by merges
	Merges []grid.Point // where merged tiles landed
	Won    bool
}

// line returns the cells of row or column i ordered from the edge the
// tiles slide toward.
func line(i int, dir grid.Point) []grid.Point {
	pts := make([]grid.Point, Size)
	for k := range Size {
		switch dir {
		case grid.Left:
			pts[k] = grid.Point{X: k, Y: i}
		case grid.Right:
			pts[k] = grid.Point{X: Size - 1 - k, Y: i}
		case grid.Up:
			pts[k] = grid.Point{X: i, Y: k}
		case grid.Down:
			pts[k] = grid.Point{X: i, Y: Size - 1 - k}
		}
	}
	return pts
}

// Slide moves every tile as far as it goes in dir, merging equal pairs.
// A tile created by a merge does not merge again in the same slide.
func Slide(b *Board, dir grid.Point) Outcome {
	var out Outcome
	for i := range Size {
		pts := line(i, dir)

		vals := make([]int, 0, Size)
		locked := make([]bool, 0, Size)
		for _, p := range pts {
			v := b.AtP(p)
			if v == 0 {
				continue
			}
			last := len(vals) - 1
			if last >= 0 && vals[last] == v && !locked[last] {
				vals[last] *= 2
				locked[last] = true
				out.Gained += vals[last]
				out.Merges = append(out.Merges, pts[last])
				if vals[last] == WinTile {
					out.Won = true
				}
				continue
			}
			vals = append(vals, v)
			locked = append(locked, false)
		}

		for k, p := range pts {
			v := 0
			if k < len(vals) {
				v = vals[k]
			}
			if b.AtP(p) != v {
				out.Moved = true
			}
			b.SetP(p, v)
		}
	}
	return out
}

// Empty lists the empty cells in row-major order.
func Empty(b *Board) []grid.Point {
	var cells []grid.Point
	b.Each(func(x, y, v int) {
		if v == 0 {
			cells = append(cells, grid.Point{X: x, Y: y})
		}
	})
	return cells
}

// MovesAvailable reports whether any slide could change the board.
func MovesAvailable(b *Board) bool {
	if len(Empty(b)) > 0 {
		return true
	}
	for y := range Size {
		for x := range Size {
			v := b.At(x, y)
			if b.At(x+1, y) == v || b.At(x, y+1) == v {
				return true
			}
		}
	}
	return false
}

// Sum adds up every tile.
func Sum(b *Board) int {
	total := 0
	b.Each(func(_, _, v int) { total += v })
	return total
}

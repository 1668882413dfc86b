// Package grid holds the board logic shared by the tile games: a
// bounds-checked 2D board, flood fill, cascade runner and reroll helper.
package grid

// Point is a cell coordinate: X is the column, Y the row.
type Point struct {
	X, Y int
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Directions in screen order.
var (
	Up    = Point{0, -1}
	Down  = Point{0, 1}
	Left  = Point{-1, 0}
	Right = Point{1, 0}
)

// Dirs4 lists the orthogonal neighbours' offsets.
var Dirs4 = []Point{Up, Right, Down, Left}

// Dirs8 lists all eight neighbour offsets.
var Dirs8 = []Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board is a fixed-size grid of cells. Reads outside the board return the
// sentinel value; writes outside it are dropped.
type Board[T any] struct {
	cols, rows int
	cells      []T
	sentinel   T
}

// New creates a cols x rows board with every cell zeroed.
func New[T any](cols, rows int, sentinel T) *Board[T] {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Board[T]{cols: cols, rows: rows, cells: make([]T, cols*rows), sentinel: sentinel}
}

// FromRows builds a board from row-major data. Short rows are padded with
// the zero value.
func FromRows[T any](rows [][]T, sentinel T) *Board[T] {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	b := New(cols, len(rows), sentinel)
	for y, r := range rows {
		copy(b.cells[y*cols:], r)
	}
	return b
}

func (b *Board[T]) Cols() int { return b.cols }
func (b *Board[T]) Rows() int { return b.rows }

// InBounds reports whether (x, y) is on the board.
func (b *Board[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.cols && y < b.rows
}

// At returns the cell at (x, y), or the sentinel when out of range.
func (b *Board[T]) At(x, y int) T {
	if !b.InBounds(x, y) {
		return b.sentinel
	}
	return b.cells[y*b.cols+x]
}

// AtP is At for a Point.
func (b *Board[T]) AtP(p Point) T { return b.At(p.X, p.Y) }

// Set stores v at (x, y). It reports false, changing nothing, when out of
// range.
func (b *Board[T]) Set(x, y int, v T) bool {
	if !b.InBounds(x, y) {
		return false
	}
	b.cells[y*b.cols+x] = v
	return true
}

// SetP is Set for a Point.
func (b *Board[T]) SetP(p Point, v T) bool { return b.Set(p.X, p.Y, v) }

// Swap exchanges two in-range cells.
func (b *Board[T]) Swap(a, c Point) bool {
	if !b.InBounds(a.X, a.Y) || !b.InBounds(c.X, c.Y) {
		return false
	}
	i, j := a.Y*b.cols+a.X, c.Y*b.cols+c.X
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	return true
}

// Fill sets every cell to v.
func (b *Board[T]) Fill(v T) {
	for i := range b.cells {
		b.cells[i] = v
	}
}

// Each visits every cell in row-major order.
func (b *Board[T]) Each(fn func(x, y int, v T)) {
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			fn(x, y, b.cells[y*b.cols+x])
		}
	}
}

// Count returns the number of cells matching pred.
func (b *Board[T]) Count(pred func(v T) bool) int {
	n := 0
	for _, v := range b.cells {
		if pred(v) {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (b *Board[T]) Clone() *Board[T] {
	c := &Board[T]{cols: b.cols, rows: b.rows, sentinel: b.sentinel, cells: make([]T, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Row returns a copy of row y, or nil when out of range.
func (b *Board[T]) Row(y int) []T {
	if y < 0 || y >= b.rows {
		return nil
	}
	out := make([]T, b.cols)
	copy(out, b.cells[y*b.cols:(y+1)*b.cols])
	return out
}

// Neighbors4 returns the in-range orthogonal neighbours of p.
func (b *Board[T]) Neighbors4(p Point) []Point { return b.neighbors(p, Dirs4) }

// Neighbors8 returns the in-range neighbours of p including diagonals.
func (b *Board[T]) Neighbors8(p Point) []Point { return b.neighbors(p, Dirs8) }

func (b *Board[T]) neighbors(p Point, dirs []Point) []Point {
	out := make([]Point, 0, len(dirs))
	for _, d := range dirs {
		n := p.Add(d)
		if b.InBounds(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}

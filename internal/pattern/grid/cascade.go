package grid

// Flood visits cells reachable from start. visit is called once per reached
// cell and returns whether the fill continues through it. diagonal selects
// eight-way expansion. Visited cells are returned in visit order.
//
// The fill is iterative and marks cells before queueing them, so it always
// terminates.
func Flood[T any](b *Board[T], start Point, diagonal bool, visit func(p Point, v T) bool) []Point {
	if !b.InBounds(start.X, start.Y) {
		return nil
	}
	dirs := Dirs4
	if diagonal {
		dirs = Dirs8
	}

	seen := make([]bool, b.cols*b.rows)
	seen[start.Y*b.cols+start.X] = true
	queue := []Point{start}
	var order []Point

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		order = append(order, p)
		if !visit(p, b.AtP(p)) {
			continue
		}
		for _, d := range dirs {
			n := p.Add(d)
			if !b.InBounds(n.X, n.Y) || seen[n.Y*b.cols+n.X] {
				continue
			}
			seen[n.Y*b.cols+n.X] = true
			queue = append(queue, n)
		}
	}
	return order
}

// Cascade bounds a settle loop that runs one pass at a time, such as an
// animated clear and refill that spreads each pass over several ticks.
type Cascade struct {
	Max    int
	passes int
}

// NewCascade returns a counter that allows maxPasses passes.
func NewCascade(maxPasses int) Cascade { return Cascade{Max: maxPasses} }

// Next runs step as the next pass and reports whether it changed something.
// Once the bound is reached step is not called and Next reports false.
func (c *Cascade) Next(step func(pass int) bool) bool {
	if c.Exhausted() || !step(c.passes) {
		return false
	}
	c.passes++
	return true
}

// Passes returns the number of passes that changed something.
func (c *Cascade) Passes() int { return c.passes }

// Exhausted reports whether the bound stopped the loop.
func (c *Cascade) Exhausted() bool { return c.passes >= c.Max }

// Reroll calls try until it reports success or attempts run out. It returns
// the attempt that succeeded, or -1.
func Reroll(attempts int, try func(attempt int) bool) int {
	for i := 0; i < attempts; i++ {
		if try(i) {
			return i
		}
	}
	return -1
}

// Runs finds horizontal and vertical runs of at least minLen equal cells,
// as decided by same. Each run is returned as its list of points; a cell in
// both a horizontal and a vertical run appears in both.
func Runs[T any](b *Board[T], minLen int, same func(a, c T) bool) [][]Point {
	var runs [][]Point
	scan := func(length, lines int, at func(line, i int) Point) {
		for line := 0; line < lines; line++ {
			start := 0
			for i := 1; i <= length; i++ {
				if i < length && same(b.AtP(at(line, start)), b.AtP(at(line, i))) {
					continue
				}
				if i-start >= minLen {
					run := make([]Point, 0, i-start)
					for k := start; k < i; k++ {
						run = append(run, at(line, k))
					}
					runs = append(runs, run)
				}
				start = i
			}
		}
	}
	scan(b.cols, b.rows, func(row, i int) Point { return Point{i, row} })
	scan(b.rows, b.cols, func(col, i int) Point { return Point{col, i} })
	return runs
}

// Collapse lets cells marked empty fall: in every column the non-empty cells
// slide down, preserving order, and the vacated top cells are reported to
// spawn so the caller can refill them. It reports whether anything moved or
// was spawned.
func Collapse[T any](b *Board[T], empty func(v T) bool, spawn func(x, y int) T) bool {
	changed := false
	for x := 0; x < b.cols; x++ {
		write := b.rows - 1
		for y := b.rows - 1; y >= 0; y-- {
			v := b.At(x, y)
			if empty(v) {
				continue
			}
			if write != y {
				b.Set(x, write, v)
				changed = true
			}
			write--
		}
		for y := write; y >= 0; y-- {
			b.Set(x, y, spawn(x, y))
			changed = true
		}
	}
	return changed
}

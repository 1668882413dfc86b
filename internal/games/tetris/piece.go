package tetris

import "github.com/vovakirdan/gameflix/internal/core"

// Piece is a tetromino: a square shape matrix placed at (X, Y) on the well.
type Piece struct {
	Shape [][]bool
	Color core.Color
	X, Y  int
}

var tetrominoes = []struct {
	rows  []string
	color core.Color
}{
	{[]string{"....", "####", "....", "...."}, core.ColorCyan},
	{[]string{"#..", "###", "..."}, core.ColorBlue},
	{[]string{"..#", "###", "..."}, core.ColorOrange},
	{[]string{"##", "##"}, core.ColorYellow},
	{[]string{".##", "##.", "..."}, core.ColorGreen},
	{[]string{".#.", "###", "..."}, core.ColorPurple},
	{[]string{"##.", ".##", "..."}, core.ColorRed},
}

func parseShape(rows []string) [][]bool {
	shape := make([][]bool, len(rows))
	for y, r := range rows {
		shape[y] = make([]bool, len(r))
		for x, ch := range r {
			shape[y][x] = ch == '#'
		}
	}
	return shape
}

// Rotated returns a copy of p turned 90 degrees clockwise.
func (p Piece) Rotated() Piece {
	n := len(p.Shape)
	out := make([][]bool, n)
	for y := range n {
		out[y] = make([]bool, n)
		for x := range n {
			out[y][x] = p.Shape[n-1-x][y]
		}
	}
	p.Shape = out
	return p
}

// Moved returns a copy of p shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells calls fn for every filled cell in well coordinates.
func (p Piece) Cells(fn func(x, y int)) {
	for y, row := range p.Shape {
		for x, filled := range row {
			if filled {
				fn(p.X+x, p.Y+y)
			}
		}
	}
}

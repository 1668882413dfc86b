package grid

// Cursor is a keyboard selection on a cols x rows board.
type Cursor struct {
	P          Point
	Cols, Rows int
}

// Move shifts the cursor by d, staying inside the board. It reports whether
// the position changed.
func (c *Cursor) Move(d Point) bool {
	n := c.P.Add(d)
	if n.X < 0 || n.Y < 0 || n.X >= c.Cols || n.Y >= c.Rows {
		return false
	}
	c.P = n
	return true
}

package gfx

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/gameflix/internal/core"
)

// Default logical canvas size shared by every game.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Block is the rune used for solid fills.
const Block = '█'

// Paint describes how a shape colors the cells it covers.
type Paint struct {
	Rune  rune
	Color core.Color
}

// Solid paints full blocks in the given color.
func Solid(c core.Color) Paint { return Paint{Rune: Block, Color: c} }

// Glyph paints a specific rune in the given color.
func Glyph(r rune, c core.Color) Paint { return Paint{Rune: r, Color: c} }

// Align positions text relative to its anchor point.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Canvas maps a logical drawing surface onto a cell screen. All coordinates
// passed to drawing calls are logical units, transformed by the current
// matrix and then by the base mapping to cells.
type Canvas struct {
	screen *core.Screen
	width  float64
	height float64

	base  Matrix // logical -> cell space
	cur   Matrix // user transform, logical -> logical
	stack []Matrix
}

// New creates a canvas of the given logical size drawing into screen.
func New(screen *core.Screen, width, height float64) *Canvas {
	c := &Canvas{
		screen: screen,
		width:  width,
		height: height,
		cur:    Identity,
	}
	c.remap()
	return c
}

func (c *Canvas) remap() {
	sx, sy := 1.0, 1.0
	if c.width > 0 {
		sx = float64(c.screen.Width()) / c.width
	}
	if c.height > 0 {
		sy = float64(c.screen.Height()) / c.height
	}
	c.base = Scaling(sx, sy)
}

// Width returns the logical width.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the logical height.
func (c *Canvas) Height() float64 { return c.height }

// Screen returns the cell buffer the canvas draws into.
func (c *Canvas) Screen() *core.Screen { return c.screen }

// Resize changes the cell grid the logical surface is mapped onto.
func (c *Canvas) Resize(cols, rows int) {
	c.screen.Resize(cols, rows)
	c.remap()
}

// ToWorld maps the center of a screen cell back to logical coordinates,
// ignoring the user transform.
func (c *Canvas) ToWorld(col, row int) core.Vec {
	return c.base.Invert().Apply(core.V(float64(col)+0.5, float64(row)+0.5))
}

// Clear resets the whole surface to blank cells.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// ResetTransform drops every saved transform and returns to identity.
func (c *Canvas) ResetTransform() {
	c.cur = Identity
	c.stack = c.stack[:0]
}

// Depth returns the number of saved transforms.
func (c *Canvas) Depth() int { return len(c.stack) }

// Transform returns the current user transform.
func (c *Canvas) Transform() Matrix { return c.cur }

// Save pushes the current transform.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

// Restore pops the last saved transform. Unbalanced calls reset to identity.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		c.cur = Identity
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin.
func (c *Canvas) Translate(x, y float64) {
	c.cur = c.cur.Mul(Translation(x, y))
}

// Rotate rotates subsequent drawing by a radians.
func (c *Canvas) Rotate(a float64) {
	if a == 0 {
		return
	}
	c.cur = c.cur.Mul(Rotation(a))
}

// Scale scales subsequent drawing.
func (c *Canvas) Scale(sx, sy float64) {
	if sx == 1 && sy == 1 {
		return
	}
	c.cur = c.cur.Mul(Scaling(sx, sy))
}

func (c *Canvas) toCell(p core.Vec) core.Vec {
	return c.base.Mul(c.cur).Apply(p)
}

func (c *Canvas) plot(col, row int, p Paint) {
	c.screen.SetCell(col, row, core.Cell{Rune: p.Rune, Color: p.Color})
}

// FillRect fills an axis-aligned rectangle (in the current transform).
func (c *Canvas) FillRect(x, y, w, h float64, p Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	c.FillPolygon([]core.Vec{
		core.V(x, y), core.V(x+w, y), core.V(x+w, y+h), core.V(x, y+h),
	}, p)
}

// StrokeRect outlines a rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, p Paint) {
	c.Line(x, y, x+w, y, p)
	c.Line(x+w, y, x+w, y+h, p)
	c.Line(x+w, y+h, x, y+h, p)
	c.Line(x, y+h, x, y, p)
}

// FillPolygon fills a polygon using the even-odd rule on cell centers.
func (c *Canvas) FillPolygon(pts []core.Vec, p Paint) {
	if len(pts) < 3 {
		return
	}
	cells := make([]core.Vec, len(pts))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var centroid core.Vec
	for i, pt := range pts {
		q := c.toCell(pt)
		cells[i] = q
		centroid = centroid.Add(q)
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	centroid = centroid.Scale(1 / float64(len(pts)))

	col0 := max(int(math.Floor(minX)), 0)
	col1 := min(int(math.Ceil(maxX)), c.screen.Width()-1)
	row0 := max(int(math.Floor(minY)), 0)
	row1 := min(int(math.Ceil(maxY)), c.screen.Height()-1)

	painted := false
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			if pointInPolygon(core.V(float64(col)+0.5, float64(row)+0.5), cells) {
				c.plot(col, row, p)
				painted = true
			}
		}
	}
	if !painted {
		c.plot(int(math.Floor(centroid.X)), int(math.Floor(centroid.Y)), p)
	}
}

func pointInPolygon(pt core.Vec, poly []core.Vec) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// FillCircle fills a circle. Under a non-uniform base mapping it becomes an
// ellipse in cell space.
func (c *Canvas) FillCircle(cx, cy, r float64, p Paint) {
	if r <= 0 {
		return
	}
	center := c.toCell(core.V(cx, cy))
	sx, sy := c.base.Mul(c.cur).axisScale()
	rx, ry := r*sx, r*sy

	col0 := max(int(math.Floor(center.X-rx)), 0)
	col1 := min(int(math.Ceil(center.X+rx)), c.screen.Width()-1)
	row0 := max(int(math.Floor(center.Y-ry)), 0)
	row1 := min(int(math.Ceil(center.Y+ry)), c.screen.Height()-1)

	painted := false
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			dx := (float64(col) + 0.5 - center.X) / rx
			dy := (float64(row) + 0.5 - center.Y) / ry
			if dx*dx+dy*dy <= 1 {
				c.plot(col, row, p)
				painted = true
			}
		}
	}
	if !painted {
		c.plot(int(math.Floor(center.X)), int(math.Floor(center.Y)), p)
	}
}

// StrokeCircle outlines a circle with line segments.
func (c *Canvas) StrokeCircle(cx, cy, r float64, p Paint) {
	const segments = 24
	prev := core.V(cx+r, cy)
	for i := 1; i <= segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		next := core.V(cx+math.Cos(a)*r, cy+math.Sin(a)*r)
		c.Line(prev.X, prev.Y, next.X, next.Y, p)
		prev = next
	}
}

// Line draws a segment by stepping through cell space.
func (c *Canvas) Line(x1, y1, x2, y2 float64, p Paint) {
	a := c.toCell(core.V(x1, y1))
	b := c.toCell(core.V(x2, y2))
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	if steps == 0 {
		c.plot(int(math.Floor(a.X)), int(math.Floor(a.Y)), p)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.plot(int(math.Floor(core.Lerp(a.X, b.X, t))), int(math.Floor(core.Lerp(a.Y, b.Y, t))), p)
	}
}

// Text writes a single line of text anchored at (x, y). The anchor row is
// the cell containing y; alignment is horizontal around x.
func (c *Canvas) Text(x, y float64, s string, color core.Color, align Align) {
	anchor := c.toCell(core.V(x, y))
	n := utf8.RuneCountInString(s)
	col := int(math.Floor(anchor.X))
	switch align {
	case AlignCenter:
		col = int(math.Round(anchor.X - float64(n)/2))
	case AlignRight:
		col = int(math.Round(anchor.X)) - n
	}
	c.screen.DrawText(col, int(math.Floor(anchor.Y)), s, color)
}

// Dim overwrites the color of every cell in a logical rectangle, keeping the
// runes. Used for translucent overlays.
func (c *Canvas) Dim(x, y, w, h float64, color core.Color) {
	a := c.toCell(core.V(x, y))
	b := c.toCell(core.V(x+w, y+h))
	for row := max(int(math.Floor(min(a.Y, b.Y))), 0); row < min(int(math.Ceil(max(a.Y, b.Y))), c.screen.Height()); row++ {
		for col := max(int(math.Floor(min(a.X, b.X))), 0); col < min(int(math.Ceil(max(a.X, b.X))), c.screen.Width()); col++ {
			cell := c.screen.GetCell(col, row)
			if cell.Rune == ' ' {
				continue
			}
			cell.Color = color
			c.screen.SetCell(col, row, cell)
		}
	}
}

package physics

import (
	"math"
)

// Tiles answers whether the tile at (tx, ty) blocks movement. Tiles outside
// the map must report solid.
type Tiles interface {
	Solid(tx, ty int) bool
	TileSize() float64
}

// Contacts records which sides of a box hit a tile during a move.
type Contacts struct {
	Left, Right bool
	Top, Bottom bool
}

// Grounded reports a floor contact.
func (c Contacts) Grounded() bool { return c.Bottom }

// MoveAndCollide moves box by vel*dt against the tile map, one axis at a
// time: the X pass first, then the Y pass. A blocked axis snaps the box to
// the tile edge and zeroes that velocity component.
func MoveAndCollide(box AABB, vx, vy, dt float64, tiles Tiles) (AABB, float64, float64, Contacts) {
	var hit Contacts

	box.X += vx * dt
	if tx, ok := firstSolidX(box, vx, tiles); ok {
		size := tiles.TileSize()
		if vx > 0 {
			box.X = float64(tx)*size - box.W
			hit.Right = true
		} else {
			box.X = float64(tx+1) * size
			hit.Left = true
		}
		vx = 0
	}

	box.Y += vy * dt
	if ty, ok := firstSolidY(box, vy, tiles); ok {
		size := tiles.TileSize()
		if vy > 0 {
			box.Y = float64(ty)*size - box.H
			hit.Bottom = true
		} else {
			box.Y = float64(ty+1) * size
			hit.Top = true
		}
		vy = 0
	}
	return box, vx, vy, hit
}

// OnGround probes the row of tiles directly under the box's feet.
func OnGround(box AABB, tiles Tiles) bool {
	size := tiles.TileSize()
	ty := int(math.Floor((box.Bottom() + 0.5) / size))
	x0, x1 := span(box.X, box.Right(), size)
	for tx := x0; tx <= x1; tx++ {
		if tiles.Solid(tx, ty) {
			return true
		}
	}
	return false
}

// span returns the tile indices an interval [lo, hi) covers.
func span(lo, hi, size float64) (int, int) {
	return int(math.Floor(lo / size)), int(math.Ceil(hi/size)) - 1
}

func firstSolidX(box AABB, vx float64, tiles Tiles) (int, bool) {
	if vx == 0 {
		return 0, false
	}
	size := tiles.TileSize()
	y0, y1 := span(box.Y, box.Bottom(), size)
	var tx int
	if vx > 0 {
		tx = int(math.Ceil(box.Right()/size)) - 1
	} else {
		tx = int(math.Floor(box.X / size))
	}
	for ty := y0; ty <= y1; ty++ {
		if tiles.Solid(tx, ty) {
			return tx, true
		}
	}
	return 0, false
}

func firstSolidY(box AABB, vy float64, tiles Tiles) (int, bool) {
	if vy == 0 {
		return 0, false
	}
	size := tiles.TileSize()
	x0, x1 := span(box.X, box.Right(), size)
	var ty int
	if vy > 0 {
		ty = int(math.Ceil(box.Bottom()/size)) - 1
	} else {
		ty = int(math.Floor(box.Y / size))
	}
	for tx := x0; tx <= x1; tx++ {
		if tiles.Solid(tx, ty) {
			return ty, true
		}
	}
	return 0, false
}

// TileGrid is a simple Tiles implementation over a bool matrix indexed
// [row][col].
type TileGrid struct {
	Cells [][]bool
	Size  float64
	// OpenBelow lets bodies fall out of the bottom of the map instead of
	// landing on the out-of-range row.
	OpenBelow bool
}

func (g *TileGrid) TileSize() float64 { return g.Size }

func (g *TileGrid) Solid(tx, ty int) bool {
	if ty >= len(g.Cells) && g.OpenBelow {
		return false
	}
	if ty < 0 || ty >= len(g.Cells) || tx < 0 || tx >= len(g.Cells[ty]) {
		return true
	}
	return g.Cells[ty][tx]
}

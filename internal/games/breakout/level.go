package breakout

import (
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
)

const (
	brickRows    = 5
	brickCols    = 8
	brickHeight  = 25
	brickPadding = 8
	brickTop     = 40
	brickPoints  = 10
)

var rowColors = [brickRows]core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorBlue,
}

// Brick is one breakable block, positioned in play-area coordinates.
type Brick struct {
	Box   physics.AABB
	Color core.Color
	Alive bool
}

// buildWall lays out the bricks for a play area of the given width.
func buildWall(areaW float64) []Brick {
	w := areaW/brickCols - brickPadding
	bricks := make([]Brick, 0, brickRows*brickCols)
	for c := range brickCols {
		for r := range brickRows {
			bricks = append(bricks, Brick{
				Box: physics.AABB{
					X: float64(c)*(w+brickPadding) + brickPadding,
					Y: float64(r)*(brickHeight+brickPadding) + brickTop + brickPadding,
					W: w,
					H: brickHeight,
				},
				Color: rowColors[r],
				Alive: true,
			})
		}
	}
	return bricks
}

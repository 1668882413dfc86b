package platformer

import (
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
)

const TileSize = 32

// layout is the level: '#' ground, 'o' coin, 'e' patrolling enemy, 'X' the
// exit door.
var layout = []string{
	"........................................",
	"................................o.......",
	"................................X.......",
	"..............................#####.....",
	".........................eo.............",
	"........................####............",
	"............o.......o...................",
	"..................####..................",
	"..............oe........................",
	"............####.........o..............",
	".......oe...............................",
	".....#####..............................",
	"........................................",
	"...............o..e......e..o...........",
	"########################################",
}

var (
	Cols = len(layout[0])
	Rows = len(layout)
)

// Level is the parsed layout: solid tiles for the physics pass plus the
// spawn points of everything else.
type Level struct {
	Tiles   *physics.TileGrid
	Coins   []core.Vec
	Enemies []core.Vec
	Exit    physics.AABB
}

func tileCenter(x, y int) core.Vec {
	return core.V(float64(x)*TileSize+TileSize/2, float64(y)*TileSize+TileSize/2)
}

func loadLevel() Level {
	cells := make([][]bool, Rows)
	var lvl Level
	for y, row := range layout {
		cells[y] = make([]bool, Cols)
		for x, ch := range row {
			switch ch {
			case '#':
				cells[y][x] = true
			case 'o':
				lvl.Coins = append(lvl.Coins, tileCenter(x, y))
			case 'e':
				lvl.Enemies = append(lvl.Enemies, tileCenter(x, y))
			case 'X':
				lvl.Exit = physics.AABB{X: float64(x) * TileSize, Y: float64(y) * TileSize, W: TileSize, H: TileSize}
			}
		}
	}
	lvl.Tiles = &physics.TileGrid{Cells: cells, Size: TileSize, OpenBelow: true}
	return lvl
}

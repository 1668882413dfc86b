package pacman

import (
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

// Tile is the content of one maze cell.
type Tile uint8

const (
	Empty Tile = iota
	Wall
	Dot
	Power
)

const (
	Cols     = 19
	Rows     = 15
	TileSize = 30
)

// layout is the maze: '#' wall, '.' dot, 'o' power pellet. Row 9 wraps
// around through the side tunnels.
var layout = []string{
	"###################",
	"#........#........#",
	"#o##.###.#.###.##o#",
	"#.................#",
	"#.##.#.#####.#.##.#",
	"#....#...#...#....#",
	"####.### # ###.####",
	"   #.#       #.#   ",
	"####.# ## ## #.####",
	"    .  #   #  .    ",
	"####.# ##### #.####",
	"   #.#       #.#   ",
	"####.# ##### #.####",
	"#.................#",
	"###################",
}

var (
	pacmanStart = grid.Point{X: 9, Y: 13}
	ghostDoor   = grid.Point{X: 9, Y: 8}
	ghostExit   = grid.Point{X: 9, Y: 7}
	ghostHome   = grid.Point{X: 9, Y: 9}
	ghostStarts = []grid.Point{{X: 9, Y: 7}, {X: 8, Y: 9}, {X: 9, Y: 9}, {X: 10, Y: 9}}
)

// Maze wraps the tile board with the movement rules.
type Maze struct {
	*grid.Board[Tile]
}

func newMaze() Maze {
	b := grid.New(Cols, Rows, Wall)
	for y, row := range layout {
		for x, ch := range row {
			t := Empty
			switch ch {
			case '#':
				t = Wall
			case '.':
				t = Dot
			case 'o':
				t = Power
			}
			b.Set(x, y, t)
		}
	}
	return Maze{b}
}

// Wrap maps a column that left the maze onto the other side.
func (m Maze) Wrap(p grid.Point) grid.Point {
	switch {
	case p.X < 0:
		p.X = Cols - 1
	case p.X >= Cols:
		p.X = 0
	}
	return p
}

// Open reports whether an actor may walk into p. The ghost house door only
// opens for ghosts going home, which do not use this rule.
func (m Maze) Open(p grid.Point) bool {
	p = m.Wrap(p)
	return p != ghostDoor && m.AtP(p) != Wall
}

// Dots counts the dots and power pellets left.
func (m Maze) Dots() int {
	return m.Count(func(t Tile) bool { return t == Dot || t == Power })
}

// Center returns the pixel center of tile p in maze coordinates.
func Center(p grid.Point) core.Vec {
	return core.V(float64(p.X)*TileSize+TileSize/2, float64(p.Y)*TileSize+TileSize/2)
}

// mover walks tile to tile: it sits progress of the way from tile toward
// tile+dir. A zero dir means standing still.
type mover struct {
	tile     grid.Point
	dir      grid.Point
	facing   grid.Point
	progress float64
	speed    float64
}

func (m *mover) pos() core.Vec {
	return Center(m.tile).Add(core.V(float64(m.dir.X), float64(m.dir.Y)).Scale(m.progress * TileSize))
}

// place puts the mover on the center of p.
func (m *mover) place(p, dir grid.Point) {
	m.tile = p
	m.dir = dir
	m.facing = dir
	m.progress = 0
}

// reverse turns around mid-tile.
func (m *mover) reverse(maze Maze) {
	if m.dir == (grid.Point{}) {
		return
	}
	if m.progress > 0 {
		m.tile = maze.Wrap(m.tile.Add(m.dir))
		m.progress = 1 - m.progress
	}
	m.dir = grid.Point{X: -m.dir.X, Y: -m.dir.Y}
	m.facing = m.dir
}

// advance moves dt worth of distance, calling arrive at every tile center
// reached so the owner can pick the next direction.
func (m *mover) advance(dt float64, maze Maze, arrive func(m *mover)) {
	step := m.speed * dt / TileSize
	for step > 0 && m.dir != (grid.Point{}) {
		left := 1 - m.progress
		if step < left {
			m.progress += step
			return
		}
		step -= left
		m.tile = maze.Wrap(m.tile.Add(m.dir))
		m.progress = 0
		arrive(m)
	}
}

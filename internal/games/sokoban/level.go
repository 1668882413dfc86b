package sokoban

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

// Tile is the static content of a cell. The zero value is Wall so that
// ragged map rows and reads outside the map are solid.
type Tile uint8

const (
	Wall Tile = iota
	Floor
	Target
)

var (
	errNoPlayer    = errors.New("no player")
	errManyPlayers = errors.New("more than one player")
	errNoTargets   = errors.New("no targets")
	errFewBoxes    = errors.New("fewer boxes than targets")
)

// Level is a parsed puzzle in its starting position.
type Level struct {
	Title   string
	Tiles   *grid.Board[Tile]
	Player  grid.Point
	Boxes   []grid.Point
	Targets int
}

// Parse reads a level map: '#' wall, ' ' floor, '$' box, '.' target,
// '@' player, '*' box on target, '+' player on target.
func Parse(l config.SokobanLevel) (Level, error) {
	width := 0
	for _, row := range l.Map {
		width = max(width, len(row))
	}
	lvl := Level{Title: l.Title, Tiles: grid.New(width, len(l.Map), Wall)}

	players := 0
	for y, row := range l.Map {
		for x, ch := range row {
			p := grid.Point{X: x, Y: y}
			tile := Floor
			switch ch {
			case '#':
				tile = Wall
			case '.':
				tile = Target
			case '$':
				lvl.Boxes = append(lvl.Boxes, p)
			case '*':
				tile = Target
				lvl.Boxes = append(lvl.Boxes, p)
			case '@':
				lvl.Player = p
				players++
			case '+':
				tile = Target
				lvl.Player = p
				players++
			}
			if tile == Target {
				lvl.Targets++
			}
			lvl.Tiles.SetP(p, tile)
		}
	}

	var err error
	switch {
	case players == 0:
		err = errNoPlayer
	case players > 1:
		err = errManyPlayers
	case lvl.Targets == 0:
		err = errNoTargets
	case len(lvl.Boxes) < lvl.Targets:
		err = errFewBoxes
	}
	if err != nil {
		return Level{}, fmt.Errorf("sokoban: parse %q: %w", l.Title, err)
	}
	return lvl, nil
}

type move struct {
	player grid.Point
	boxes  []grid.Point
	moves  int
	pushes int
}

// Puzzle is a level in play, with its move history.
type Puzzle struct {
	Level  Level
	Player grid.Point
	Boxes  []grid.Point
	Moves  int
	Pushes int

	history []move
}

// NewPuzzle starts l from its initial position.
func NewPuzzle(l Level) *Puzzle {
	return &Puzzle{Level: l, Player: l.Player, Boxes: slices.Clone(l.Boxes)}
}

func (p *Puzzle) boxAt(at grid.Point) int {
	return slices.Index(p.Boxes, at)
}

// Move walks the player one cell in direction d, pushing a single box if
// one is in the way. Walls, and a box backed by a wall or another box,
// block the move. It reports whether the player moved.
func (p *Puzzle) Move(d grid.Point) bool {
	next := p.Player.Add(d)
	if p.Level.Tiles.AtP(next) == Wall {
		return false
	}
	box := p.boxAt(next)
	if box >= 0 {
		beyond := next.Add(d)
		if p.Level.Tiles.AtP(beyond) == Wall || p.boxAt(beyond) >= 0 {
			return false
		}
	}

	p.history = append(p.history, move{player: p.Player, boxes: slices.Clone(p.Boxes), moves: p.Moves, pushes: p.Pushes})
	if box >= 0 {
		p.Boxes[box] = next.Add(d)
		p.Pushes++
	}
	p.Player = next
	p.Moves++
	return true
}

// Undo steps back one move.
func (p *Puzzle) Undo() bool {
	if len(p.history) == 0 {
		return false
	}
	last := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.Player, p.Boxes, p.Moves, p.Pushes = last.player, last.boxes, last.moves, last.pushes
	return true
}

// Solved reports whether every target holds a box.
func (p *Puzzle) Solved() bool {
	covered := 0
	for _, b := range p.Boxes {
		if p.Level.Tiles.AtP(b) == Target {
			covered++
		}
	}
	return covered == p.Level.Targets
}

package physics

import (
	"math"

	"github.com/vovakirdan/gameflix/internal/core"
)

// Checkpoint is a gate placed at a track control point, facing along the
// segment that arrives at it.
type Checkpoint struct {
	Pos  core.Vec
	Dir  core.Vec
	Perp core.Vec
}

// Track is a closed polyline with a drivable width.
type Track struct {
	Points      []core.Vec
	Width       float64
	Checkpoints []Checkpoint
	Length      float64
}

// NewTrack builds a closed track through points with one checkpoint per
// control point.
func NewTrack(points []core.Vec, width float64) *Track {
	t := &Track{Points: points, Width: width}
	n := len(points)
	for i, p := range points {
		t.Length += points[(i+1)%n].Dist(p)
		dir := p.Sub(points[(i+n-1)%n]).Norm()
		t.Checkpoints = append(t.Checkpoints, Checkpoint{Pos: p, Dir: dir, Perp: dir.Perp()})
	}
	return t
}

// Distance returns the distance from p to the nearest track segment.
func (t *Track) Distance(p core.Vec) float64 {
	best := math.Inf(1)
	for i, a := range t.Points {
		b := t.Points[(i+1)%len(t.Points)]
		best = math.Min(best, DistToSegment(p, a, b))
	}
	return best
}

// OnTrack reports whether p lies within half the track width of the center
// line.
func (t *Track) OnTrack(p core.Vec) bool {
	return t.Distance(p) < t.Width/2
}

// Crossed reports whether p has passed checkpoint i: it is beyond the gate
// along the track direction and within the track width of it sideways.
func (t *Track) Crossed(i int, p core.Vec) bool {
	if i < 0 || i >= len(t.Checkpoints) {
		return false
	}
	cp := t.Checkpoints[i]
	v := p.Sub(cp.Pos)
	return v.Dot(cp.Dir) >= 0 && math.Abs(v.Dot(cp.Perp)) < t.Width
}

// Next returns the index of the checkpoint after i.
func (t *Track) Next(i int) int {
	return (i + 1) % len(t.Checkpoints)
}

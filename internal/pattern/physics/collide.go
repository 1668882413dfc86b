// Package physics supplies the collision tests and integration helpers the
// action games share. It only detects; each game decides how to respond.
package physics

import (
	"math"

	"github.com/vovakirdan/gameflix/internal/core"
)

// Axis names a separation axis.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// Body is a moving object with a circular or box envelope.
type Body struct {
	Pos    core.Vec
	Vel    core.Vec
	Angle  float64
	Radius float64
	W, H   float64
}

// Integrate advances the position by the velocity.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// Box returns the body's AABB, centered on its position.
func (b *Body) Box() AABB {
	return AABB{X: b.Pos.X - b.W/2, Y: b.Pos.Y - b.H/2, W: b.W, H: b.H}
}

// AABB is an axis-aligned box anchored at its top-left corner.
type AABB struct {
	X, Y, W, H float64
}

// Centered builds a box of size w x h around (cx, cy).
func Centered(cx, cy, w, h float64) AABB {
	return AABB{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (a AABB) Right() float64  { return a.X + a.W }
func (a AABB) Bottom() float64 { return a.Y + a.H }

// Center returns the box center.
func (a AABB) Center() core.Vec { return core.V(a.X+a.W/2, a.Y+a.H/2) }

// Overlaps reports strict interval overlap on both axes.
func (a AABB) Overlaps(b AABB) bool {
	return a.X < b.Right() && a.Right() > b.X && a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Contains reports whether p lies inside the box.
func (a AABB) Contains(p core.Vec) bool {
	return p.X >= a.X && p.X < a.Right() && p.Y >= a.Y && p.Y < a.Bottom()
}

// Penetration returns the overlap depth on each axis and the axis with the
// smaller one, which is the separation normal. AxisNone means no overlap.
func (a AABB) Penetration(b AABB) (dx, dy float64, axis Axis) {
	if !a.Overlaps(b) {
		return 0, 0, AxisNone
	}
	dx = math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	dy = math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	if dx < dy {
		return dx, dy, AxisX
	}
	return dx, dy, AxisY
}

// CirclesOverlap compares center distance with the summed radii.
func CirclesOverlap(a core.Vec, ra float64, b core.Vec, rb float64) bool {
	d := a.Sub(b)
	r := ra + rb
	return d.Dot(d) < r*r
}

// CircleRect reports whether a circle touches a box, using the closest
// point of the box to the circle center.
func CircleRect(c core.Vec, r float64, box AABB) bool {
	nx := core.Clamp(c.X, box.X, box.Right())
	ny := core.Clamp(c.Y, box.Y, box.Bottom())
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy < r*r
}

// Reflect flips the velocity component along axis.
func Reflect(v core.Vec, axis Axis) core.Vec {
	switch axis {
	case AxisX:
		return core.V(-v.X, v.Y)
	case AxisY:
		return core.V(v.X, -v.Y)
	}
	return v
}

// Bounce resolves a moving box against a static one: it reflects vel along
// the minimum-penetration axis and reports that axis. Speed is preserved.
func Bounce(moving AABB, vel core.Vec, static AABB) (core.Vec, Axis) {
	_, _, axis := moving.Penetration(static)
	return Reflect(vel, axis), axis
}

// ClampSpeed limits the length of v to max.
func ClampSpeed(v core.Vec, max float64) core.Vec {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Wrap moves a point that left the w x h world by more than margin onto the
// opposite side.
func Wrap(p core.Vec, w, h, margin float64) core.Vec {
	switch {
	case p.X < -margin:
		p.X = w + margin
	case p.X > w+margin:
		p.X = -margin
	}
	switch {
	case p.Y < -margin:
		p.Y = h + margin
	case p.Y > h+margin:
		p.Y = -margin
	}
	return p
}

// ClampToRect keeps a box inside bounds and reports which axes were
// clamped.
func ClampToRect(box AABB, bounds AABB) (AABB, bool, bool) {
	cx, cy := false, false
	if box.X < bounds.X {
		box.X, cx = bounds.X, true
	} else if box.Right() > bounds.Right() {
		box.X, cx = bounds.Right()-box.W, true
	}
	if box.Y < bounds.Y {
		box.Y, cy = bounds.Y, true
	} else if box.Bottom() > bounds.Bottom() {
		box.Y, cy = bounds.Bottom()-box.H, true
	}
	return box, cx, cy
}

// DistToSegment returns the distance from p to segment ab.
func DistToSegment(p, a, b core.Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := core.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

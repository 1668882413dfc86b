// Package gfx is the drawing context every scene renders through. It keeps a
// 2D affine transform stack like an HTML canvas and rasterizes shapes into the
// cells of a core.Screen.
package gfx

import (
	"math"

	"github.com/vovakirdan/gameflix/internal/core"
)

// Matrix is a 2D affine transform in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{A: 1, D: 1}

// Mul returns m applied after n (the composition m * n).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p core.Vec) core.Vec {
	return core.Vec{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Invert returns the inverse transform. A singular matrix yields Identity.
func (m Matrix) Invert() Matrix {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity
	}
	inv := 1 / det
	return Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}
}

// Translation returns a translating transform.
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, E: x, F: y}
}

// Rotation returns a transform rotating by a radians (clockwise on screen).
func Rotation(a float64) Matrix {
	sin, cos := math.Sincos(a)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Scaling returns a scaling transform.
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// axisScale reports how much unit lengths along x and y grow under m.
func (m Matrix) axisScale() (float64, float64) {
	return math.Hypot(m.A, m.B), math.Hypot(m.C, m.D)
}

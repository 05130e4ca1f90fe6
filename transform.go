// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "math"

// Transform is a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping (x, y) to (A*x + B*y + C, D*x + E*y + F).
type Transform struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translation returns a transformation moving points by (x, y).
func Translation(x, y float32) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scaling returns a transformation scaling by (sx, sy) around the origin.
func Scaling(sx, sy float32) Transform {
	return Transform{A: sx, E: sy}
}

// Rotation returns a clockwise rotation by the given angle in degrees
// (y axis pointing down).
func Rotation(degrees float32) Transform {
	s, c := math.Sincos(float64(degrees) * math.Pi / 180)
	sin, cos := float32(s), float32(c)
	// Snap quarter turns so axis-aligned rotations stay exact.
	if math.Abs(s) < 1e-7 {
		sin = 0
	}
	if math.Abs(c) < 1e-7 {
		cos = 0
	}
	return Transform{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * o: o is applied first, then m.
func (m Transform) Multiply(o Transform) Transform {
	return Transform{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// PreTranslate returns m with a translation applied before it.
func (m Transform) PreTranslate(v Vector) Transform {
	return m.Multiply(Translation(v.X, v.Y))
}

// PreRotate returns m with a rotation applied before it.
func (m Transform) PreRotate(degrees float32) Transform {
	return m.Multiply(Rotation(degrees))
}

// Apply transforms a point.
func (m Transform) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector transforms a vector, ignoring translation.
func (m Transform) ApplyVector(v Vector) Vector {
	return Vector{
		X: m.A*v.X + m.B*v.Y,
		Y: m.D*v.X + m.E*v.Y,
	}
}

// Invert returns the inverse transformation. ok is false when m is singular.
func (m Transform) Invert() (inv Transform, ok bool) {
	det := float64(m.A)*float64(m.E) - float64(m.B)*float64(m.D)
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	d := float32(1 / det)
	return Transform{
		A: m.E * d,
		B: -m.B * d,
		C: (m.B*m.F - m.C*m.E) * d,
		D: -m.D * d,
		E: m.A * d,
		F: (m.C*m.D - m.A*m.F) * d,
	}, true
}

// IsIdentity reports whether m is the identity.
func (m Transform) IsIdentity() bool {
	return m == Identity()
}

// IsAxisAligned reports whether m maps axis-aligned rectangles to
// axis-aligned rectangles without swapping axes.
func (m Transform) IsAxisAligned() bool {
	return m.B == 0 && m.D == 0
}

// Translation returns the translation component.
func (m Transform) Translation() Vector { return Vector{m.C, m.F} }

// ScaleFactor returns the average length of the transformed unit vectors.
func (m Transform) ScaleFactor() float32 {
	sx := math.Hypot(float64(m.A), float64(m.D))
	sy := math.Hypot(float64(m.B), float64(m.E))
	return float32((sx + sy) / 2)
}

// MapRect returns the bounding box of r after transformation.
func (m Transform) MapRect(r Rect) Rect {
	if m.IsAxisAligned() {
		p0 := m.Apply(r.Min())
		p1 := m.Apply(r.Max())
		return RectFromPoints(
			Point{min(p0.X, p1.X), min(p0.Y, p1.Y)},
			Point{max(p0.X, p1.X), max(p0.Y, p1.Y)},
		)
	}
	c := [4]Point{
		m.Apply(Point{r.X, r.Y}),
		m.Apply(Point{r.X + r.Width, r.Y}),
		m.Apply(Point{r.X, r.Y + r.Height}),
		m.Apply(Point{r.X + r.Width, r.Y + r.Height}),
	}
	lo, hi := c[0], c[0]
	for _, p := range c[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return RectFromPoints(lo, hi)
}

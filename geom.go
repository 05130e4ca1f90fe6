// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in logical pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p translated by v.
func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector { return Vector{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Vector is a displacement in logical pixels.
type Vector struct {
	X, Y float32
}

// Neg returns -v.
func (v Vector) Neg() Vector { return Vector{-v.X, -v.Y} }

// Scale returns v multiplied by s.
func (v Vector) Scale(s float32) Vector { return Vector{v.X * s, v.Y * s} }

// Size is a width and height in logical pixels.
type Size struct {
	Width, Height float32
}

// Scale returns the size in physical pixels for the given scale factor.
func (s Size) Scale(factor float32) PhysicalSize {
	return PhysicalSize{
		Width:  uint32(max(0, math.Ceil(float64(s.Width*factor)))),
		Height: uint32(max(0, math.Ceil(float64(s.Height*factor)))),
	}
}

// Rect is an axis-aligned rectangle in logical pixels.
//
// A rectangle with a non-positive width or height is empty.
type Rect struct {
	X, Y, Width, Height float32
}

// NewRect returns the rectangle with origin (x, y) and the given size.
func NewRect(x, y, w, h float32) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// RectFromPoints returns the rectangle spanned by min and max.
func RectFromPoints(minPt, maxPt Point) Rect {
	return Rect{X: minPt.X, Y: minPt.Y, Width: maxPt.X - minPt.X, Height: maxPt.Y - minPt.Y}
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.Width, r.Y + r.Height} }

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Center returns the center point.
func (r Rect) Center() Point { return Point{r.X + r.Width/2, r.Y + r.Height/2} }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vector) Rect {
	return Rect{r.X + v.X, r.Y + v.Y, r.Width, r.Height}
}

// Inset shrinks the rectangle by d on every side. Negative d grows it.
func (r Rect) Inset(d float32) Rect {
	return Rect{r.X + d, r.Y + d, r.Width - 2*d, r.Height - 2*d}
}

// Intersect returns the largest rectangle contained in both r and o.
// Disjoint rectangles produce an empty rectangle with zero size.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Scale multiplies every coordinate by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{r.X * s, r.Y * s, r.Width * s, r.Height * s}
}

// Physical returns the smallest integer rectangle covering r scaled by s.
func (r Rect) Physical(s float32) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(float64(r.X*s))),
		int(math.Floor(float64(r.Y*s))),
		int(math.Ceil(float64((r.X+r.Width)*s))),
		int(math.Ceil(float64((r.Y+r.Height)*s))),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width, Height uint32
}

// IsEmpty reports whether the size has no pixels.
func (s PhysicalSize) IsEmpty() bool { return s.Width == 0 || s.Height == 0 }

// Bounds returns the rectangle (0, 0)-(Width, Height).
func (s PhysicalSize) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.Width), int(s.Height))
}

// Logical converts the physical size to logical pixels.
func (s PhysicalSize) Logical(factor float32) Size {
	if factor <= 0 {
		factor = 1
	}
	return Size{float32(s.Width) / factor, float32(s.Height) / factor}
}

func (s PhysicalSize) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// PhysicalRegion is the set of device pixels touched by a frame, kept as a
// bounding rectangle. The zero value is the empty region.
type PhysicalRegion struct {
	Rect image.Rectangle
}

// RegionOf returns the region covering r.
func RegionOf(r image.Rectangle) PhysicalRegion { return PhysicalRegion{Rect: r.Canon()} }

// IsEmpty reports whether no pixel is covered.
func (p PhysicalRegion) IsEmpty() bool { return p.Rect.Empty() }

// Union returns a region covering both p and o.
func (p PhysicalRegion) Union(o PhysicalRegion) PhysicalRegion {
	return PhysicalRegion{Rect: p.Rect.Union(o.Rect)}
}

// Intersect clips the region to r.
func (p PhysicalRegion) Intersect(r image.Rectangle) PhysicalRegion {
	return PhysicalRegion{Rect: p.Rect.Intersect(r)}
}

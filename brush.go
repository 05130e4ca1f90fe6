// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"math"
	"sort"
)

// Brush describes how an area is filled: a solid color or a gradient.
//
// Brush is a closed set: SolidColor, LinearGradient and RadialGradient.
// A nil Brush paints nothing.
type Brush interface {
	// ColorAt returns the color at p for an item occupying bounds.
	ColorAt(p Point, bounds Rect) Color
	// IsTransparent reports whether the brush paints nothing.
	IsTransparent() bool

	brush()
}

// SolidColor is a single-color brush.
type SolidColor struct {
	Color Color
}

// Solid returns a solid-color brush.
func Solid(c Color) SolidColor { return SolidColor{Color: c} }

// ColorAt implements Brush.
func (s SolidColor) ColorAt(Point, Rect) Color { return s.Color }

// IsTransparent implements Brush.
func (s SolidColor) IsTransparent() bool { return s.Color.A == 0 }

func (SolidColor) brush() {}

// GradientStop is a color at a position along a gradient, 0 to 1.
type GradientStop struct {
	Position float32
	Color    Color
}

// LinearGradient paints along a line through the center of the item.
//
// Angle follows the CSS convention: 0 degrees runs bottom to top, 90 degrees
// left to right. The gradient line is long enough for the first and last
// stop to touch opposite corners.
type LinearGradient struct {
	Angle float32
	Stops []GradientStop
}

// ColorAt implements Brush.
func (g LinearGradient) ColorAt(p Point, bounds Rect) Color {
	rad := float64(g.Angle) * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(float64(bounds.Width)*dx) + math.Abs(float64(bounds.Height)*dy)
	if length == 0 {
		return sampleStops(g.Stops, 0)
	}
	c := bounds.Center()
	proj := float64(p.X-c.X)*dx + float64(p.Y-c.Y)*dy
	return sampleStops(g.Stops, float32(proj/length+0.5))
}

// IsTransparent implements Brush.
func (g LinearGradient) IsTransparent() bool { return stopsTransparent(g.Stops) }

func (LinearGradient) brush() {}

// RadialGradient paints concentric circles around the item's center. The
// last stop lies on the farthest corner.
type RadialGradient struct {
	Stops []GradientStop
}

// ColorAt implements Brush.
func (g RadialGradient) ColorAt(p Point, bounds Rect) Color {
	radius := math.Hypot(float64(bounds.Width), float64(bounds.Height)) / 2
	if radius == 0 {
		return sampleStops(g.Stops, 0)
	}
	c := bounds.Center()
	d := math.Hypot(float64(p.X-c.X), float64(p.Y-c.Y))
	return sampleStops(g.Stops, float32(d/radius))
}

// IsTransparent implements Brush.
func (g RadialGradient) IsTransparent() bool { return stopsTransparent(g.Stops) }

func (RadialGradient) brush() {}

// IsGradient reports whether b varies across its area.
func IsGradient(b Brush) bool {
	switch b.(type) {
	case LinearGradient, RadialGradient:
		return true
	}
	return false
}

// BrushIsVisible reports whether b paints anything.
func BrushIsVisible(b Brush) bool {
	return b != nil && !b.IsTransparent()
}

// SortStops returns a copy of stops ordered by position.
func SortStops(stops []GradientStop) []GradientStop {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// sampleStops interpolates the stops at t, padding beyond the ends.
// Stops are expected in ascending order.
func sampleStops(stops []GradientStop, t float32) Color {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Position {
			continue
		}
		span := s1.Position - s0.Position
		if span <= 0 {
			return s1.Color
		}
		return s0.Color.Lerp(s1.Color, (t-s0.Position)/span)
	}
	return last.Color
}

func stopsTransparent(stops []GradientStop) bool {
	for _, s := range stops {
		if s.Color.A != 0 {
			return false
		}
	}
	return true
}

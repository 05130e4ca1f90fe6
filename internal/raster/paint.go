// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/ggui"

// Paint yields the premultiplied source color of a device pixel.
type Paint interface {
	At(x, y int) Premul
}

// SolidPaint paints one color everywhere.
type SolidPaint Premul

// At implements Paint.
func (p SolidPaint) At(int, int) Premul { return Premul(p) }

// brushPaint evaluates a gradient in the item's local coordinates.
type brushPaint struct {
	brush   ggui.Brush
	bounds  ggui.Rect
	inverse ggui.Transform
	opacity float32
}

func (p brushPaint) At(x, y int) Premul {
	local := p.inverse.Apply(ggui.Pt(float32(x)+0.5, float32(y)+0.5))
	return PremulOf(p.brush.ColorAt(local, p.bounds), p.opacity)
}

// NewPaint returns a paint for brush b on an item occupying bounds in local
// coordinates, where m maps local coordinates to device pixels. It returns
// nil when nothing would be painted.
func NewPaint(b ggui.Brush, bounds ggui.Rect, m ggui.Transform, opacity float32) Paint {
	if !ggui.BrushIsVisible(b) || opacity <= 0 {
		return nil
	}
	if s, ok := b.(ggui.SolidColor); ok {
		return SolidPaint(PremulOf(s.Color, opacity))
	}
	inv, ok := m.Invert()
	if !ok {
		return nil
	}
	switch g := b.(type) {
	case ggui.LinearGradient:
		g.Stops = ggui.SortStops(g.Stops)
		b = g
	case ggui.RadialGradient:
		g.Stops = ggui.SortStops(g.Stops)
		b = g
	}
	return brushPaint{brush: b, bounds: bounds, inverse: inv, opacity: opacity}
}

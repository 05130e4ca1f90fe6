// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "image"

// Clip is a device-space clip: a pixel rectangle, optionally refined by a
// coverage mask for rounded or rotated clip shapes.
type Clip struct {
	Rect image.Rectangle
	// Mask, when set, covers Rect; pixels outside its bounds are clipped.
	Mask *image.Alpha
}

// IsEmpty reports whether nothing passes the clip.
func (c Clip) IsEmpty() bool { return c.Rect.Empty() }

// Coverage returns the clip coverage of a pixel inside Rect.
func (c Clip) Coverage(x, y int) float32 {
	if c.Mask == nil {
		return 1
	}
	if !(image.Point{x, y}).In(c.Mask.Rect) {
		return 0
	}
	return float32(c.Mask.Pix[c.Mask.PixOffset(x, y)]) / 255
}

// IntersectRect restricts the clip to r.
func (c Clip) IntersectRect(r image.Rectangle) Clip {
	c.Rect = c.Rect.Intersect(r)
	return c
}

// IntersectMask restricts the clip to the coverage mask m. Existing mask
// coverage is multiplied.
func (c Clip) IntersectMask(m *image.Alpha) Clip {
	if m == nil {
		return c
	}
	r := c.Rect.Intersect(m.Rect)
	out := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint32(m.Pix[m.PixOffset(x, y)])
			if c.Mask != nil {
				v = v * uint32(c.Mask.AlphaAt(x, y).A) / 255
			}
			out.Pix[out.PixOffset(x, y)] = uint8(v)
		}
	}
	return Clip{Rect: r, Mask: out}
}

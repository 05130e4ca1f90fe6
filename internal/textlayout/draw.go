// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textlayout

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggui"
)

// Mask rasterizes the glyphs whose byte offset lies in [from, to) into a
// coverage mask. A negative to selects through the end of the text.
// Coordinates of the mask are physical pixels relative to the item origin,
// i.e. logical coordinates multiplied by the scale factor.
func (l *Layout) Mask(origins []ggui.Point, from, to int) *image.Alpha {
	if to < 0 {
		to = len(l.Text)
	}
	var bounds image.Rectangle
	for i, ln := range l.Lines {
		r := ggui.NewRect(origins[i].X, origins[i].Y, ln.Width, l.LineHeight).
			Inset(-l.LineHeight / 2).
			Physical(l.scale)
		bounds = bounds.Union(r)
	}
	if bounds.Empty() {
		return nil
	}
	dst := image.NewAlpha(bounds)

	l.engine.mu.Lock()
	defer l.engine.mu.Unlock()

	ascent := l.Ascent * l.scale
	drawn := false
	for i, ln := range l.Lines {
		o := origins[i]
		baseline := o.Y*l.scale + ascent
		for k := 0; k+1 < len(ln.carets); k++ {
			c0, c1 := ln.carets[k], ln.carets[k+1]
			if c0.offset < from || c0.offset >= to {
				continue
			}
			r, _ := decodeRune(l.Text, c0.offset)
			if r == ' ' || r == '\t' {
				continue
			}
			left := min(c0.x, c1.x)
			dot := fixed.Point26_6{
				X: fixed.Int26_6(math.Round(float64((o.X + left) * l.scale * 64))),
				Y: fixed.Int26_6(math.Round(float64(baseline * 64))),
			}
			dr, mask, maskp, _, ok := l.face.Glyph(dot, r)
			if !ok {
				continue
			}
			draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
			drawn = true
		}
	}
	if !drawn {
		return nil
	}
	return dst
}

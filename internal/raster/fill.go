// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	"github.com/gogpu/ggui"
)

// FillMask composites paint through a coverage mask and the clip.
func FillMask(s Sink, mask *image.Alpha, clip Clip, paint Paint) {
	if mask == nil || paint == nil {
		return
	}
	r := mask.Rect.Intersect(clip.Rect).Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := mask.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			m := mask.Pix[off]
			off++
			if m == 0 {
				continue
			}
			cov := float32(m) / 255 * clip.Coverage(x, y)
			if cov > 0 {
				s.Blend(x, y, paint.At(x, y), cov)
			}
		}
	}
}

// FillPath rasterizes p and composites paint through it.
func FillPath(s Sink, p *Path, clip Clip, paint Paint) {
	if paint == nil || p.IsEmpty() {
		return
	}
	FillMask(s, p.Mask(clip.Rect.Intersect(s.Bounds())), clip, paint)
}

// FillRect fills an axis-aligned device rectangle with exact area coverage
// at its edges. Pixels fully inside the rectangle receive full coverage.
func FillRect(s Sink, r ggui.Rect, clip Clip, paint Paint) {
	if paint == nil || r.IsEmpty() {
		return
	}
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	pr := image.Rect(
		int(math.Floor(float64(x0))), int(math.Floor(float64(y0))),
		int(math.Ceil(float64(x1))), int(math.Ceil(float64(y1))),
	).Intersect(clip.Rect).Intersect(s.Bounds())
	for y := pr.Min.Y; y < pr.Max.Y; y++ {
		cy := overlap(float32(y), y0, y1)
		if cy <= 0 {
			continue
		}
		for x := pr.Min.X; x < pr.Max.X; x++ {
			cov := overlap(float32(x), x0, x1) * cy * clip.Coverage(x, y)
			if cov > 0 {
				s.Blend(x, y, paint.At(x, y), cov)
			}
		}
	}
}

// overlap returns how much of the unit interval [p, p+1) lies in [lo, hi).
func overlap(p, lo, hi float32) float32 {
	return max(0, min(p+1, hi)-max(p, lo))
}

// CompositeRGBA composites a premultiplied image whose bounds are in device
// space. When colorize is set, only the image's alpha is used, as a mask for
// colorize.
func CompositeRGBA(s Sink, img *image.RGBA, clip Clip, opacity float32, colorize Paint) {
	if img == nil || opacity <= 0 {
		return
	}
	r := img.Rect.Intersect(clip.Rect).Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			px := img.Pix[off : off+4 : off+4]
			off += 4
			if px[3] == 0 {
				continue
			}
			cov := clip.Coverage(x, y) * opacity
			if cov <= 0 {
				continue
			}
			if colorize != nil {
				s.Blend(x, y, colorize.At(x, y), cov*float32(px[3])/255)
				continue
			}
			src := Premul{
				R: float32(px[0]) / 255,
				G: float32(px[1]) / 255,
				B: float32(px[2]) / 255,
				A: float32(px[3]) / 255,
			}
			s.Blend(x, y, src, cov)
		}
	}
}

// DeviceRect returns the integer device rectangle covering local rectangle r
// mapped through m.
func DeviceRect(r ggui.Rect, m ggui.Transform) image.Rectangle {
	return m.MapRect(r).Physical(1)
}

// IsPixelAligned reports whether m is an integer translation, so that
// pixel grids in local and device space coincide.
func IsPixelAligned(m ggui.Transform) bool {
	const eps = 1e-4
	return abs32(m.A-1) < eps && abs32(m.E-1) < eps && abs32(m.B) < eps && abs32(m.D) < eps &&
		abs32(m.C-float32(math.Round(float64(m.C)))) < eps &&
		abs32(m.F-float32(math.Round(float64(m.F)))) < eps
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

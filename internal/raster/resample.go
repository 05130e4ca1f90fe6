// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/ggui"
)

// aff converts a transform to the x/image/draw form.
func aff(m ggui.Transform) f64.Aff3 {
	return f64.Aff3{
		float64(m.A), float64(m.B), float64(m.C),
		float64(m.D), float64(m.E), float64(m.F),
	}
}

// TransformImage resamples the sr part of src into device space. s2d maps
// source pixel coordinates to device pixels. The result covers the
// transformed rectangle intersected with clip and is premultiplied.
func TransformImage(src image.Image, sr image.Rectangle, s2d ggui.Transform, clip image.Rectangle) *image.RGBA {
	local := ggui.NewRect(float32(sr.Min.X), float32(sr.Min.Y), float32(sr.Dx()), float32(sr.Dy()))
	dr := DeviceRect(local, s2d).Intersect(clip)
	if dr.Empty() || sr.Empty() {
		return nil
	}
	dst := image.NewRGBA(dr)
	if IsPixelAligned(s2d) {
		off := image.Pt(int(math.Round(float64(s2d.C))), int(math.Round(float64(s2d.F))))
		draw.Draw(dst, dr, src, dr.Min.Sub(off), draw.Src)
		return dst
	}
	xdraw.BiLinear.Transform(dst, aff(s2d), src, sr, xdraw.Src, nil)
	return dst
}

// TransformAlpha moves a coverage mask into device space. s2d maps mask
// pixel coordinates to device pixels.
func TransformAlpha(mask *image.Alpha, s2d ggui.Transform, clip image.Rectangle) *image.Alpha {
	if mask == nil {
		return nil
	}
	if IsPixelAligned(s2d) {
		off := image.Pt(int(math.Round(float64(s2d.C))), int(math.Round(float64(s2d.F))))
		shifted := &image.Alpha{Pix: mask.Pix, Stride: mask.Stride, Rect: mask.Rect.Add(off)}
		r := shifted.Rect.Intersect(clip)
		if r.Empty() {
			return nil
		}
		return shifted.SubImage(r).(*image.Alpha)
	}
	sr := mask.Rect
	local := ggui.NewRect(float32(sr.Min.X), float32(sr.Min.Y), float32(sr.Dx()), float32(sr.Dy()))
	dr := DeviceRect(local, s2d).Intersect(clip)
	if dr.Empty() {
		return nil
	}
	dst := image.NewAlpha(dr)
	xdraw.BiLinear.Transform(dst, aff(s2d), mask, sr, xdraw.Src, nil)
	return dst
}

// Blur applies an approximate Gaussian blur of the given radius (three box
// blur passes per axis). The result is larger than the input by the blur's
// reach on every side.
func Blur(mask *image.Alpha, radius float32) *image.Alpha {
	box := int(math.Round(float64(radius) / 2))
	if mask == nil || box <= 0 {
		return mask
	}
	reach := 3 * box
	r := mask.Rect.Inset(-reach)
	w, h := r.Dx(), r.Dy()
	buf := make([]float32, w*h)
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			buf[(y-r.Min.Y)*w+(x-r.Min.X)] = float32(mask.Pix[mask.PixOffset(x, y)])
		}
	}
	tmp := make([]float32, max(w, h))
	for range 3 {
		for y := 0; y < h; y++ {
			boxBlur(buf[y*w:(y+1)*w], 1, w, box, tmp)
		}
		for x := 0; x < w; x++ {
			boxBlur(buf[x:], w, h, box, tmp)
		}
	}
	out := image.NewAlpha(r)
	for i, v := range buf {
		out.Pix[i] = uint8(max(0, min(255, v+0.5)))
	}
	return out
}

// boxBlur blurs n values spaced stride apart with a window of 2*box+1.
func boxBlur(v []float32, stride, n, box int, tmp []float32) {
	window := float32(2*box + 1)
	var sum float32
	for i := 0; i <= box && i < n; i++ {
		sum += v[i*stride]
	}
	for i := 0; i < n; i++ {
		tmp[i] = sum / window
		if j := i + box + 1; j < n {
			sum += v[j*stride]
		}
		if j := i - box; j >= 0 {
			sum -= v[j*stride]
		}
	}
	for i := 0; i < n; i++ {
		v[i*stride] = tmp[i]
	}
}

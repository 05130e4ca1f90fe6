// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides the CPU compositing primitives shared by the
// software, gpucanvas and native2d backends: coverage masks built with
// golang.org/x/image/vector, premultiplied source-over blending into RGB8 or
// RGBA sinks, brush evaluation, blurring and image resampling.
package raster

import (
	"image"

	"github.com/gogpu/ggui"
)

// Premul is a premultiplied color with channels in [0, 1].
type Premul struct {
	R, G, B, A float32
}

// PremulOf converts a straight-alpha color, scaling it by opacity.
func PremulOf(c ggui.Color, opacity float32) Premul {
	a := float32(c.A) / 255 * opacity
	return Premul{
		R: float32(c.R) / 255 * a,
		G: float32(c.G) / 255 * a,
		B: float32(c.B) / 255 * a,
		A: a,
	}
}

// Scale multiplies every channel by f.
func (p Premul) Scale(f float32) Premul {
	return Premul{p.R * f, p.G * f, p.B * f, p.A * f}
}

// Sink is a pixel destination with premultiplied source-over blending.
type Sink interface {
	// Bounds is the addressable pixel area.
	Bounds() image.Rectangle
	// Blend composites c with coverage cov (0 to 1) onto pixel (x, y).
	Blend(x, y int, c Premul, cov float32)
	// Fill replaces every pixel of r with c.
	Fill(r image.Rectangle, c Premul)
}

// RGB8Sink writes into a flat slice of RGB8 pixels with a row stride in
// pixels. The destination is treated as opaque.
type RGB8Sink struct {
	Pix    []ggui.Rgb8Pixel
	Stride int
	Width  int
	Height int
}

// Bounds implements Sink.
func (s *RGB8Sink) Bounds() image.Rectangle { return image.Rect(0, 0, s.Width, s.Height) }

// Blend implements Sink.
func (s *RGB8Sink) Blend(x, y int, c Premul, cov float32) {
	p := &s.Pix[y*s.Stride+x]
	a := c.A * cov
	inv := 1 - a
	p.R = to8(c.R*cov + float32(p.R)/255*inv)
	p.G = to8(c.G*cov + float32(p.G)/255*inv)
	p.B = to8(c.B*cov + float32(p.B)/255*inv)
}

// Fill implements Sink.
func (s *RGB8Sink) Fill(r image.Rectangle, c Premul) {
	r = r.Intersect(s.Bounds())
	px := ggui.Rgb8Pixel{R: to8(c.R), G: to8(c.G), B: to8(c.B)}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.Pix[y*s.Stride+r.Min.X : y*s.Stride+r.Max.X]
		for i := range row {
			row[i] = px
		}
	}
}

// RGBASink writes into a premultiplied *image.RGBA.
type RGBASink struct {
	Img *image.RGBA
}

// Bounds implements Sink.
func (s RGBASink) Bounds() image.Rectangle { return s.Img.Rect }

// Blend implements Sink.
func (s RGBASink) Blend(x, y int, c Premul, cov float32) {
	i := s.Img.PixOffset(x, y)
	p := s.Img.Pix[i : i+4 : i+4]
	inv := 1 - c.A*cov
	p[0] = to8(c.R*cov + float32(p[0])/255*inv)
	p[1] = to8(c.G*cov + float32(p[1])/255*inv)
	p[2] = to8(c.B*cov + float32(p[2])/255*inv)
	p[3] = to8(c.A*cov + float32(p[3])/255*inv)
}

// Fill implements Sink.
func (s RGBASink) Fill(r image.Rectangle, c Premul) {
	r = r.Intersect(s.Img.Rect)
	px := [4]uint8{to8(c.R), to8(c.G), to8(c.B), to8(c.A)}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.Img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			copy(s.Img.Pix[i:i+4], px[:])
			i += 4
		}
	}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

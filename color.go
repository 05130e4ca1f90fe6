// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied 8-bit sRGB color with alpha.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("ggui: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("ggui: invalid hex color %q: %w", s, err)
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool { return c.A == 0 }

// IsOpaque reports whether the color has full alpha.
func (c Color) IsOpaque() bool { return c.A == 255 }

// WithAlpha returns c with its alpha multiplied by f (clamped to [0, 1]).
func (c Color) WithAlpha(f float32) Color {
	c.A = uint8(float32(c.A)*clamp01(f) + 0.5)
	return c
}

// Lerp linearly interpolates between c and o in sRGB space.
func (c Color) Lerp(o Color, t float32) Color {
	t = clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
	}
	return Color{mix(c.R, o.R), mix(c.G, o.G), mix(c.B, o.B), mix(c.A, o.A)}
}

// Premultiplied returns the color with its channels multiplied by alpha.
func (c Color) Premultiplied() PremultipliedColor {
	if c.A == 255 {
		return PremultipliedColor(c)
	}
	mul := func(v uint8) uint8 { return uint8((uint32(v)*uint32(c.A) + 127) / 255) }
	return PremultipliedColor{mul(c.R), mul(c.G), mul(c.B), c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ColorFrom converts any color.Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// PremultipliedColor is an 8-bit color whose channels are already multiplied
// by alpha.
type PremultipliedColor struct {
	R, G, B, A uint8
}

// Rgb8Pixel is one pixel of the software renderer's output buffer: three
// premultiplied 8-bit channels composited onto an opaque background.
type Rgb8Pixel struct {
	R, G, B uint8
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

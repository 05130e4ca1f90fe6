// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native2d

import (
	"image"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/raster"
)

// ImageTarget is a Target drawing into a premultiplied *image.RGBA. It
// behaves like a Direct2D bitmap render target and runs everywhere.
//
// Drawing calls outside BeginDraw/EndDraw are ignored.
type ImageTarget struct {
	img       *image.RGBA
	dpi       float32
	transform ggui.Transform
	clips     []image.Rectangle
	drawing   bool
	released  bool
}

var _ Target = (*ImageTarget)(nil)

// NewImageTarget returns a transparent w×h target at DefaultDPI.
func NewImageTarget(w, h int) *ImageTarget {
	return &ImageTarget{
		img:       image.NewRGBA(image.Rect(0, 0, max(0, w), max(0, h))),
		dpi:       DefaultDPI,
		transform: ggui.Identity(),
	}
}

// Image returns the target's pixels.
func (t *ImageTarget) Image() *image.RGBA { return t.img }

// DPI returns the target's DPI.
func (t *ImageTarget) DPI() float32 { return t.dpi }

// ClipDepth returns the number of pushed clips.
func (t *ImageTarget) ClipDepth() int { return len(t.clips) }

func (t *ImageTarget) sink() raster.Sink { return raster.RGBASink{Img: t.img} }

// device returns the transform from DIPs to physical pixels.
func (t *ImageTarget) device() ggui.Transform {
	s := t.dpi / DefaultDPI
	return ggui.Scaling(s, s).Multiply(t.transform)
}

func (t *ImageTarget) clip() raster.Clip {
	if n := len(t.clips); n > 0 {
		return raster.Clip{Rect: t.clips[n-1]}
	}
	return raster.Clip{Rect: t.img.Rect}
}

func (t *ImageTarget) active() bool { return t.drawing && !t.released }

// BeginDraw implements Target.
func (t *ImageTarget) BeginDraw() {
	if t.released {
		return
	}
	t.drawing = true
	t.transform = ggui.Identity()
	t.clips = t.clips[:0]
}

// EndDraw implements Target.
func (t *ImageTarget) EndDraw() error {
	switch {
	case t.released:
		return ErrReleased
	case !t.drawing:
		return ErrNotDrawing
	}
	t.drawing = false
	if len(t.clips) != 0 {
		t.clips = t.clips[:0]
		return ErrUnbalancedClip
	}
	return nil
}

// Clear implements Target.
func (t *ImageTarget) Clear(c ggui.Color) {
	if !t.active() {
		return
	}
	t.sink().Fill(t.clip().Rect, raster.PremulOf(c, 1))
}

// SetTransform implements Target.
func (t *ImageTarget) SetTransform(m ggui.Transform) { t.transform = m }

// PushAxisAlignedClip implements Target.
func (t *ImageTarget) PushAxisAlignedClip(r ggui.Rect) {
	if !t.active() {
		return
	}
	t.clips = append(t.clips, t.clip().Rect.Intersect(raster.DeviceRect(r, t.device())))
}

// PopAxisAlignedClip implements Target. Popping with no clip pushed is
// reported by EndDraw.
func (t *ImageTarget) PopAxisAlignedClip() {
	if !t.active() {
		return
	}
	if len(t.clips) == 0 {
		t.clips = append(t.clips, image.Rectangle{})
		return
	}
	t.clips = t.clips[:len(t.clips)-1]
}

// FillRectangle implements Target.
func (t *ImageTarget) FillRectangle(r ggui.Rect, c ggui.Color) {
	t.FillRoundedRectangle(r, 0, c)
}

// FillRoundedRectangle implements Target.
func (t *ImageTarget) FillRoundedRectangle(r ggui.Rect, radius float32, c ggui.Color) {
	if !t.active() || r.IsEmpty() || c.IsTransparent() {
		return
	}
	m := t.device()
	paint := raster.SolidPaint(raster.PremulOf(c, 1))
	if radius <= 0 && m.IsAxisAligned() {
		raster.FillRect(t.sink(), m.MapRect(r), t.clip(), paint)
		return
	}
	p := raster.NewPath()
	p.AppendRoundedRect(r, radius, m, false)
	raster.FillPath(t.sink(), p, t.clip(), paint)
}

// DrawRoundedRectangle implements Target.
func (t *ImageTarget) DrawRoundedRectangle(r ggui.Rect, radius, strokeWidth float32, c ggui.Color) {
	if !t.active() || strokeWidth <= 0 || c.IsTransparent() {
		return
	}
	half := strokeWidth / 2
	outer := r.Inset(-half)
	inner := r.Inset(half)
	outerRadius := float32(0)
	if radius > 0 {
		outerRadius = radius + half
	}
	m := t.device()
	p := raster.NewPath()
	p.AppendRoundedRect(outer, outerRadius, m, false)
	if !inner.IsEmpty() {
		p.AppendRoundedRect(inner, max(0, radius-half), m, true)
	}
	raster.FillPath(t.sink(), p, t.clip(), raster.SolidPaint(raster.PremulOf(c, 1)))
}

// DrawBitmap implements Target.
func (t *ImageTarget) DrawBitmap(img *image.RGBA, dst ggui.Rect, opacity float32) {
	if !t.active() || img == nil || img.Rect.Empty() || dst.IsEmpty() || opacity <= 0 {
		return
	}
	sr := img.Rect
	s2d := t.device().
		Multiply(ggui.Translation(dst.X, dst.Y)).
		Multiply(ggui.Scaling(dst.Width/float32(sr.Dx()), dst.Height/float32(sr.Dy()))).
		Multiply(ggui.Translation(-float32(sr.Min.X), -float32(sr.Min.Y)))
	clip := t.clip()
	dev := raster.TransformImage(img, sr, s2d, clip.Rect)
	if dev == nil {
		return
	}
	raster.CompositeRGBA(t.sink(), dev, clip, min(1, opacity), nil)
}

// Resize implements Target. The content is discarded.
func (t *ImageTarget) Resize(size ggui.PhysicalSize) error {
	if t.released {
		return ErrReleased
	}
	t.img = image.NewRGBA(size.Bounds())
	return nil
}

// Size implements Target.
func (t *ImageTarget) Size() ggui.PhysicalSize {
	return ggui.PhysicalSize{Width: uint32(t.img.Rect.Dx()), Height: uint32(t.img.Rect.Dy())}
}

// SetDPI implements Target. Non-positive values are ignored.
func (t *ImageTarget) SetDPI(dpi float32) {
	if dpi > 0 {
		t.dpi = dpi
	}
}

// Release implements Target.
func (t *ImageTarget) Release() {
	t.released = true
	t.drawing = false
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native2d

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/cache"
	"github.com/gogpu/ggui/internal/raster"
	"github.com/gogpu/ggui/internal/textlayout"
)

type state struct {
	// clip is in physical pixels.
	clip      image.Rectangle
	transform ggui.Transform
	opacity   float32
}

// ItemRenderer draws items through a Target. Solid fills map to target
// primitives; gradients, text, paths and shadows are rasterized into
// bitmaps first.
//
// Clips are axis-aligned rectangles in physical pixels. A rounded or
// rotated clip is reduced to its bounding box.
//
// ItemRenderer is not safe for concurrent use.
type ItemRenderer struct {
	target Target
	engine *textlayout.Engine
	scale  float32
	cache  *cache.LRU[any, *image.RGBA]

	current state
	stack   []state

	// pushed is the clip currently pushed on the target, if any.
	pushed    image.Rectangle
	hasPushed bool
}

var _ ggui.ItemRenderer = (*ItemRenderer)(nil)

func newItemRenderer(t Target, scale float32, engine *textlayout.Engine, c *cache.LRU[any, *image.RGBA]) *ItemRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &ItemRenderer{
		target: t,
		engine: engine,
		scale:  scale,
		cache:  c,
		current: state{
			clip:      t.Size().Bounds(),
			transform: ggui.Identity(),
			opacity:   1,
		},
	}
}

// Transform returns the current transform in logical pixels.
func (ir *ItemRenderer) Transform() ggui.Transform { return ir.current.transform }

// Opacity returns the accumulated opacity.
func (ir *ItemRenderer) Opacity() float32 { return ir.current.opacity }

// DeviceClip returns the clip in physical pixels.
func (ir *ItemRenderer) DeviceClip() image.Rectangle { return ir.current.clip }

// StateDepth returns the number of saved states.
func (ir *ItemRenderer) StateDepth() int { return len(ir.stack) }

// device maps logical coordinates to physical pixels.
func (ir *ItemRenderer) device() ggui.Transform {
	return ggui.Scaling(ir.scale, ir.scale).Multiply(ir.current.transform)
}

// pixels is the target transform for geometry given in physical pixels.
func (ir *ItemRenderer) pixels() ggui.Transform {
	return ggui.Scaling(1/ir.scale, 1/ir.scale)
}

// sync makes the target's clip equal clip. It reports whether anything is
// visible.
func (ir *ItemRenderer) sync(clip image.Rectangle) bool {
	if clip.Empty() {
		return false
	}
	if ir.hasPushed && ir.pushed == clip {
		return true
	}
	ir.finish()
	ir.target.SetTransform(ir.pixels())
	ir.target.PushAxisAlignedClip(ggui.NewRect(float32(clip.Min.X), float32(clip.Min.Y), float32(clip.Dx()), float32(clip.Dy())))
	ir.pushed, ir.hasPushed = clip, true
	return true
}

// finish pops the clip pushed by sync.
func (ir *ItemRenderer) finish() {
	if ir.hasPushed {
		ir.target.PopAxisAlignedClip()
		ir.hasPushed = false
	}
}

func (ir *ItemRenderer) visible() bool { return !ir.current.clip.Empty() && ir.current.opacity > 0 }

// drawBitmap draws a bitmap in physical pixels under clip.
func (ir *ItemRenderer) drawBitmap(img *image.RGBA, clip image.Rectangle) {
	if img == nil || !ir.sync(clip) {
		return
	}
	ir.target.SetTransform(ir.pixels())
	r := img.Rect
	ir.target.DrawBitmap(img, ggui.NewRect(float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())), 1)
}

// rasterize renders into a scratch bitmap covering bounds ∩ clip and draws
// it.
func (ir *ItemRenderer) rasterize(bounds image.Rectangle, draw func(s raster.Sink, clip raster.Clip)) {
	r := bounds.Intersect(ir.current.clip)
	if r.Empty() {
		return
	}
	img := image.NewRGBA(r)
	draw(raster.RGBASink{Img: img}, raster.Clip{Rect: r})
	ir.drawBitmap(img, ir.current.clip)
}

// fill paints a rounded rectangle in local coordinates with brush b.
// bounds is the item rectangle gradients are evaluated against.
func (ir *ItemRenderer) fill(r ggui.Rect, radius float32, b ggui.Brush, bounds ggui.Rect) {
	if r.IsEmpty() || !ggui.BrushIsVisible(b) || !ir.visible() {
		return
	}
	if s, ok := b.(ggui.SolidColor); ok {
		if !ir.sync(ir.current.clip) {
			return
		}
		c := s.Color.WithAlpha(ir.current.opacity)
		ir.target.SetTransform(ir.current.transform)
		if radius > 0 {
			ir.target.FillRoundedRectangle(r, radius, c)
		} else {
			ir.target.FillRectangle(r, c)
		}
		return
	}
	m := ir.device()
	paint := raster.NewPaint(b, bounds, m, ir.current.opacity)
	if paint == nil {
		return
	}
	ir.rasterize(raster.DeviceRect(r, m), func(s raster.Sink, clip raster.Clip) {
		p := raster.NewPath()
		p.AppendRoundedRect(r, radius, m, false)
		raster.FillPath(s, p, clip, paint)
	})
}

// DrawRectangle implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawRectangle(r *ggui.Rectangle) {
	local := ggui.NewRect(0, 0, r.Bounds.Width, r.Bounds.Height)
	ir.fill(local, 0, r.Background, local)
}

// DrawBorderRectangle implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawBorderRectangle(r *ggui.BorderRectangle) {
	local := ggui.NewRect(0, 0, r.Bounds.Width, r.Bounds.Height)
	if local.IsEmpty() {
		return
	}
	half := min(local.Width, local.Height) / 2
	radius := max(0, min(r.BorderRadius, half))
	bw := max(0, min(r.BorderWidth, half))

	ir.fill(local, radius, r.Background, local)
	if bw == 0 || !ggui.BrushIsVisible(r.BorderColor) || !ir.visible() {
		return
	}

	if s, ok := r.BorderColor.(ggui.SolidColor); ok {
		if !ir.sync(ir.current.clip) {
			return
		}
		ir.target.SetTransform(ir.current.transform)
		ir.target.DrawRoundedRectangle(local.Inset(bw/2), max(0, radius-bw/2), bw, s.Color.WithAlpha(ir.current.opacity))
		return
	}
	m := ir.device()
	paint := raster.NewPaint(r.BorderColor, local, m, ir.current.opacity)
	if paint == nil {
		return
	}
	ir.rasterize(raster.DeviceRect(local, m), func(s raster.Sink, clip raster.Clip) {
		p := raster.NewPath()
		p.AppendRoundedRect(local, radius, m, false)
		if inner := local.Inset(bw); !inner.IsEmpty() {
			p.AppendRoundedRect(inner, max(0, radius-bw), m, true)
		}
		raster.FillPath(s, p, clip, paint)
	})
}

// premultiplied returns the sr part of src as a premultiplied RGBA with
// its origin at zero.
func premultiplied(src image.Image, sr image.Rectangle) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect == sr && sr.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	xdraw.Copy(dst, image.Point{}, src, sr, xdraw.Src, nil)
	return dst
}

func (ir *ItemRenderer) drawImage(src image.Image, sr image.Rectangle, dest, bounds ggui.Rect, colorize ggui.Brush) {
	if src == nil || sr.Empty() || dest.IsEmpty() || !ir.visible() {
		return
	}
	m := ir.device()
	clip := ir.current.clip.Intersect(raster.DeviceRect(bounds, m))
	if colorize != nil {
		tint := raster.NewPaint(colorize, bounds, m, 1)
		if tint == nil {
			return
		}
		s2d := m.Multiply(ggui.Translation(dest.X, dest.Y)).
			Multiply(ggui.Scaling(dest.Width/float32(sr.Dx()), dest.Height/float32(sr.Dy()))).
			Multiply(ggui.Translation(-float32(sr.Min.X), -float32(sr.Min.Y)))
		dev := raster.TransformImage(src, sr, s2d, clip)
		if dev == nil {
			return
		}
		out := image.NewRGBA(dev.Rect)
		raster.CompositeRGBA(raster.RGBASink{Img: out}, dev, raster.Clip{Rect: dev.Rect}, ir.current.opacity, tint)
		ir.drawBitmap(out, clip)
		return
	}
	if !ir.sync(clip) {
		return
	}
	ir.target.SetTransform(ir.current.transform)
	ir.target.DrawBitmap(premultiplied(src, sr), dest, ir.current.opacity)
}

// DrawImage implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawImage(img *ggui.ImageItem) {
	if img.Source == nil {
		return
	}
	sr := img.Source.Bounds()
	local := ggui.NewRect(0, 0, img.Bounds.Width, img.Bounds.Height)
	ir.drawImage(img.Source, sr, ggui.FitImage(img.Fit, sr.Size(), img.Bounds), local, nil)
}

// DrawClippedImage implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawClippedImage(img *ggui.ClippedImage) {
	sr := img.SourceRect()
	local := ggui.NewRect(0, 0, img.Bounds.Width, img.Bounds.Height)
	ir.drawImage(img.Source, sr, ggui.FitImage(img.Fit, sr.Size(), img.Bounds), local, img.Colorize)
}

// drawMask paints a text mask laid out at local×scale.
func (ir *ItemRenderer) drawMask(mask *image.Alpha, b ggui.Brush, bounds ggui.Rect) {
	if mask == nil || !ir.visible() {
		return
	}
	m := ir.device()
	paint := raster.NewPaint(b, bounds, m, ir.current.opacity)
	if paint == nil {
		return
	}
	dev := raster.TransformAlpha(mask, m.Multiply(ir.pixels()), ir.current.clip)
	if dev == nil {
		return
	}
	ir.rasterize(dev.Rect, func(s raster.Sink, clip raster.Clip) {
		raster.FillMask(s, dev, clip, paint)
	})
}

// DrawText implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawText(t *ggui.Text) {
	if t.Text == "" || !ggui.BrushIsVisible(t.Color) || !ir.visible() {
		return
	}
	local := ggui.NewRect(0, 0, t.Bounds.Width, t.Bounds.Height)
	var wrap float32
	if t.Wrap == ggui.TextWordWrap {
		wrap = t.Bounds.Width
	}
	l := ir.engine.Layout(t.Font, t.Text, wrap, ir.scale)
	origins := l.Place(t.Bounds.Size(), t.HAlign, t.VAlign)
	ir.drawMask(l.Mask(origins, 0, -1), t.Color, local)
}

// DrawTextInput implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawTextInput(ti *ggui.TextInput) {
	if !ir.visible() {
		return
	}
	local := ggui.NewRect(0, 0, ti.Bounds.Width, ti.Bounds.Height)
	l, origins := ir.engine.LayoutTextInput(ti, ir.scale)
	start, end := ti.SelectionAnchorAndCursor()

	if start == end {
		ir.drawMask(l.Mask(origins, 0, -1), ti.Color, local)
	} else {
		bg := ggui.Solid(ti.SelectionBackground)
		for _, r := range l.SelectionRects(start, end, origins) {
			ir.fill(r, 0, bg, local)
		}
		ir.drawMask(l.Mask(origins, 0, start), ti.Color, local)
		ir.drawMask(l.Mask(origins, start, end), ggui.Solid(ti.SelectionForeground), local)
		ir.drawMask(l.Mask(origins, end, -1), ti.Color, local)
	}

	if ti.CursorVisible && ti.HasFocus && !ti.ReadOnly {
		ir.fill(l.CaretRect(ti.Cursor(), ti.CursorWidth, origins), 0, ti.Color, local)
	}
}

// DrawPath implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawPath(p *ggui.Path) {
	if len(p.Elements) == 0 || !ir.visible() {
		return
	}
	local := ggui.NewRect(0, 0, p.Bounds.Width, p.Bounds.Height)
	m := ir.device()
	dev := raster.NewPath()
	dev.AppendElements(p.Elements, m)
	fill := raster.NewPaint(p.Fill, local, m, ir.current.opacity)

	var stroke *raster.Path
	var strokePaint raster.Paint
	if p.StrokeWidth > 0 {
		if strokePaint = raster.NewPaint(p.Stroke, local, m, ir.current.opacity); strokePaint != nil {
			stroke = dev.Stroke(p.StrokeWidth * m.ScaleFactor())
		}
	}
	if fill == nil && stroke == nil {
		return
	}
	bounds := dev.Bounds()
	if stroke != nil {
		bounds = bounds.Union(stroke.Bounds())
	}
	ir.rasterize(bounds, func(s raster.Sink, clip raster.Clip) {
		if fill != nil {
			raster.FillPath(s, dev, clip, fill)
		}
		if stroke != nil {
			raster.FillPath(s, stroke, clip, strokePaint)
		}
	})
}

// DrawBoxShadow implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawBoxShadow(s *ggui.BoxShadow) {
	if s.Color.IsTransparent() || !ir.visible() {
		return
	}
	m := ir.device()
	r := ggui.NewRect(s.OffsetX, s.OffsetY, s.Bounds.Width, s.Bounds.Height)
	blur := max(0, s.Blur) * m.ScaleFactor()
	reach := int(math.Ceil(float64(blur))) * 2
	p := raster.NewPath()
	p.AppendRoundedRect(r, s.BorderRadius, m, false)
	mask := raster.Blur(p.Mask(ir.current.clip.Inset(-reach)), blur)
	if mask == nil {
		return
	}
	paint := raster.SolidPaint(raster.PremulOf(s.Color, ir.current.opacity))
	ir.rasterize(mask.Rect, func(sink raster.Sink, clip raster.Clip) {
		raster.FillMask(sink, mask, clip, paint)
	})
}

// CombineClip implements ggui.ItemRenderer. The rounded corners are not
// clipped; the clip becomes the bounding box of the inner rectangle.
func (ir *ItemRenderer) CombineClip(rect ggui.Rect, radius, borderWidth float32) bool {
	inner := rect.Inset(max(0, borderWidth))
	if inner.IsEmpty() {
		ir.current.clip = image.Rectangle{}
		return false
	}
	d := ir.device().MapRect(inner)
	r := image.Rect(round(d.X), round(d.Y), round(d.X+d.Width), round(d.Y+d.Height))
	if !ir.device().IsAxisAligned() || radius > 0 {
		r = raster.DeviceRect(inner, ir.device())
	}
	ir.current.clip = ir.current.clip.Intersect(r)
	if ir.current.clip.Empty() {
		ir.current.clip = image.Rectangle{}
		return false
	}
	return true
}

// CurrentClip implements ggui.ItemRenderer.
func (ir *ItemRenderer) CurrentClip() ggui.Rect {
	c := ir.current.clip
	if c.Empty() {
		return ggui.Rect{}
	}
	inv, ok := ir.device().Invert()
	if !ok {
		return ggui.Rect{}
	}
	return inv.MapRect(ggui.NewRect(float32(c.Min.X), float32(c.Min.Y), float32(c.Dx()), float32(c.Dy())))
}

// Translate implements ggui.ItemRenderer.
func (ir *ItemRenderer) Translate(v ggui.Vector) {
	ir.current.transform = ir.current.transform.PreTranslate(v)
}

// Rotate implements ggui.ItemRenderer.
func (ir *ItemRenderer) Rotate(degrees float32) {
	ir.current.transform = ir.current.transform.PreRotate(degrees)
}

// ApplyOpacity implements ggui.ItemRenderer.
func (ir *ItemRenderer) ApplyOpacity(opacity float32) {
	ir.current.opacity *= max(0, min(1, opacity))
}

// SaveState implements ggui.ItemRenderer.
func (ir *ItemRenderer) SaveState() {
	ir.stack = append(ir.stack, ir.current)
}

// RestoreState implements ggui.ItemRenderer.
func (ir *ItemRenderer) RestoreState() {
	n := len(ir.stack)
	if n == 0 {
		ggui.ContractViolation("RestoreState without matching SaveState")
	}
	ir.current = ir.stack[n-1]
	ir.stack = ir.stack[:n-1]
}

// ScaleFactor implements ggui.ItemRenderer.
func (ir *ItemRenderer) ScaleFactor() float32 { return ir.scale }

// DrawCachedPixmap implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawCachedPixmap(key any, update func(draw func(width, height int, premultipliedRGBA []byte))) {
	img, ok := ir.cache.Get(key)
	if !ok {
		update(func(w, h int, pix []byte) {
			if w <= 0 || h <= 0 || len(pix) < w*h*4 {
				return
			}
			img = &image.RGBA{
				Pix:    append([]byte(nil), pix[:w*h*4]...),
				Stride: w * 4,
				Rect:   image.Rect(0, 0, w, h),
			}
			ir.cache.Set(key, img)
		})
	}
	if img == nil || !ir.visible() || !ir.sync(ir.current.clip) {
		return
	}
	ir.target.SetTransform(ir.current.transform.Multiply(ir.pixels()))
	ir.target.DrawBitmap(img, ggui.NewRect(0, 0, float32(img.Rect.Dx()), float32(img.Rect.Dy())), ir.current.opacity)
}

// DrawString implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawString(s string, c ggui.Color) {
	if s == "" || c.IsTransparent() || !ir.visible() {
		return
	}
	l := ir.engine.Layout(ggui.FontRequest{}, s, 0, ir.scale)
	ir.drawMask(l.Mask(l.Place(l.Size(), ggui.TextAlignLeft, ggui.TextAlignTop), 0, -1), ggui.Solid(c), ggui.Rect{})
}

func round(v float32) int { return int(math.Round(float64(v))) }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"math"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/raster"
	"github.com/gogpu/ggui/internal/textlayout"
)

// state is one entry of the drawing state stack.
type state struct {
	clip      raster.Clip
	transform ggui.Transform
	opacity   float32
}

// ItemRenderer draws items into a pixel sink. The transform maps logical
// item coordinates to device pixels and includes the scale factor.
//
// ItemRenderer is not safe for concurrent use.
type ItemRenderer struct {
	sink   raster.Sink
	engine *textlayout.Engine
	scale  float32
	cache  *pixmapCache

	current state
	stack   []state
}

var _ ggui.ItemRenderer = (*ItemRenderer)(nil)

func newItemRenderer(sink raster.Sink, clip image.Rectangle, scale float32, engine *textlayout.Engine, cache *pixmapCache) *ItemRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &ItemRenderer{
		sink:   sink,
		engine: engine,
		scale:  scale,
		cache:  cache,
		current: state{
			clip:      raster.Clip{Rect: clip.Intersect(sink.Bounds())},
			transform: ggui.Scaling(scale, scale),
			opacity:   1,
		},
	}
}

// NewImageItemRenderer returns an item renderer drawing into img, which
// holds premultiplied pixels. Drawing is clipped to the image bounds.
func NewImageItemRenderer(img *image.RGBA, scaleFactor float32) *ItemRenderer {
	return newItemRenderer(raster.RGBASink{Img: img}, img.Rect, scaleFactor, textlayout.Default(), newPixmapCache(0))
}

// Transform returns the current logical-to-device transformation.
func (ir *ItemRenderer) Transform() ggui.Transform { return ir.current.transform }

// Opacity returns the current accumulated opacity.
func (ir *ItemRenderer) Opacity() float32 { return ir.current.opacity }

// DeviceClip returns the clip's bounding box in device pixels.
func (ir *ItemRenderer) DeviceClip() image.Rectangle { return ir.current.clip.Rect }

// StateDepth returns the number of saved states.
func (ir *ItemRenderer) StateDepth() int { return len(ir.stack) }

func (ir *ItemRenderer) paint(b ggui.Brush, bounds ggui.Rect) raster.Paint {
	if ir.current.clip.IsEmpty() {
		return nil
	}
	return raster.NewPaint(b, bounds, ir.current.transform, ir.current.opacity)
}

// fillRoundedRect fills r with corner radius through the current state.
func (ir *ItemRenderer) fillRoundedRect(r ggui.Rect, radius float32, paint raster.Paint) {
	if paint == nil || r.IsEmpty() {
		return
	}
	m := ir.current.transform
	if radius <= 0 && m.IsAxisAligned() {
		raster.FillRect(ir.sink, m.MapRect(r), ir.current.clip, paint)
		return
	}
	p := raster.NewPath()
	p.AppendRoundedRect(r, radius, m, false)
	raster.FillPath(ir.sink, p, ir.current.clip, paint)
}

// DrawRectangle implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawRectangle(r *ggui.Rectangle) {
	local := ggui.NewRect(0, 0, r.Bounds.Width, r.Bounds.Height)
	ir.fillRoundedRect(local, 0, ir.paint(r.Background, local))
}

// DrawBorderRectangle implements ggui.ItemRenderer. The border is drawn
// inside the geometry, over the background.
func (ir *ItemRenderer) DrawBorderRectangle(r *ggui.BorderRectangle) {
	local := ggui.NewRect(0, 0, r.Bounds.Width, r.Bounds.Height)
	if local.IsEmpty() {
		return
	}
	half := min(local.Width, local.Height) / 2
	radius := max(0, min(r.BorderRadius, half))
	bw := max(0, min(r.BorderWidth, half))

	ir.fillRoundedRect(local, radius, ir.paint(r.Background, local))

	paint := ir.paint(r.BorderColor, local)
	if paint == nil || bw == 0 {
		return
	}
	m := ir.current.transform
	inner := local.Inset(bw)
	if radius == 0 && m.IsAxisAligned() {
		clip := ir.current.clip
		for _, edge := range [4]ggui.Rect{
			ggui.NewRect(0, 0, local.Width, bw),
			ggui.NewRect(0, local.Height-bw, local.Width, bw),
			ggui.NewRect(0, bw, bw, local.Height-2*bw),
			ggui.NewRect(local.Width-bw, bw, bw, local.Height-2*bw),
		} {
			raster.FillRect(ir.sink, m.MapRect(edge), clip, paint)
		}
		return
	}
	p := raster.NewPath()
	p.AppendRoundedRect(local, radius, m, false)
	if !inner.IsEmpty() {
		p.AppendRoundedRect(inner, max(0, radius-bw), m, true)
	}
	raster.FillPath(ir.sink, p, ir.current.clip, paint)
}

// drawImage composites the sr part of src into dest, clipped to bounds.
func (ir *ItemRenderer) drawImage(src image.Image, sr image.Rectangle, dest, bounds ggui.Rect, colorize ggui.Brush) {
	if src == nil || sr.Empty() || dest.IsEmpty() || ir.current.clip.IsEmpty() {
		return
	}
	m := ir.current.transform
	s2d := m.Multiply(ggui.Translation(dest.X, dest.Y)).
		Multiply(ggui.Scaling(dest.Width/float32(sr.Dx()), dest.Height/float32(sr.Dy()))).
		Multiply(ggui.Translation(-float32(sr.Min.X), -float32(sr.Min.Y)))
	clip := ir.current.clip.IntersectRect(raster.DeviceRect(bounds, m))
	img := raster.TransformImage(src, sr, s2d, clip.Rect)
	if img == nil {
		return
	}
	var tint raster.Paint
	if colorize != nil {
		if tint = raster.NewPaint(colorize, bounds, m, 1); tint == nil {
			return
		}
	}
	raster.CompositeRGBA(ir.sink, img, clip, ir.current.opacity, tint)
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

// fillTextMask composites a text mask in local×scale coordinates.
func (ir *ItemRenderer) fillTextMask(mask *image.Alpha, paint raster.Paint) {
	if mask == nil || paint == nil {
		return
	}
	s2d := ir.current.transform.Multiply(ggui.Scaling(1/ir.scale, 1/ir.scale))
	dev := raster.TransformAlpha(mask, s2d, ir.current.clip.Rect)
	raster.FillMask(ir.sink, dev, ir.current.clip, paint)
}

// DrawText implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawText(t *ggui.Text) {
	local := ggui.NewRect(0, 0, t.Bounds.Width, t.Bounds.Height)
	paint := ir.paint(t.Color, local)
	if paint == nil || t.Text == "" {
		return
	}
	var wrap float32
	if t.Wrap == ggui.TextWordWrap {
		wrap = t.Bounds.Width
	}
	l := ir.engine.Layout(t.Font, t.Text, wrap, ir.scale)
	origins := l.Place(t.Bounds.Size(), t.HAlign, t.VAlign)
	ir.fillTextMask(l.Mask(origins, 0, -1), paint)
}

// DrawTextInput implements ggui.ItemRenderer. The selection is painted
// behind the text and selected glyphs use the selection foreground.
func (ir *ItemRenderer) DrawTextInput(ti *ggui.TextInput) {
	if ir.current.clip.IsEmpty() {
		return
	}
	local := ggui.NewRect(0, 0, ti.Bounds.Width, ti.Bounds.Height)
	l, origins := ir.engine.LayoutTextInput(ti, ir.scale)
	start, end := ti.SelectionAnchorAndCursor()

	color := ir.paint(ti.Color, local)
	if start == end {
		ir.fillTextMask(l.Mask(origins, 0, -1), color)
	} else {
		bg := ir.paint(ggui.Solid(ti.SelectionBackground), local)
		for _, r := range l.SelectionRects(start, end, origins) {
			ir.fillRoundedRect(r, 0, bg)
		}
		ir.fillTextMask(l.Mask(origins, 0, start), color)
		ir.fillTextMask(l.Mask(origins, start, end), ir.paint(ggui.Solid(ti.SelectionForeground), local))
		ir.fillTextMask(l.Mask(origins, end, -1), color)
	}

	if ti.CursorVisible && ti.HasFocus && !ti.ReadOnly {
		caret := l.CaretRect(ti.Cursor(), ti.CursorWidth, origins)
		ir.fillRoundedRect(caret, 0, color)
	}
}

// DrawPath implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawPath(p *ggui.Path) {
	if len(p.Elements) == 0 {
		return
	}
	local := ggui.NewRect(0, 0, p.Bounds.Width, p.Bounds.Height)
	m := ir.current.transform
	dev := raster.NewPath()
	dev.AppendElements(p.Elements, m)
	raster.FillPath(ir.sink, dev, ir.current.clip, ir.paint(p.Fill, local))
	if p.StrokeWidth > 0 {
		if paint := ir.paint(p.Stroke, local); paint != nil {
			raster.FillPath(ir.sink, dev.Stroke(p.StrokeWidth*m.ScaleFactor()), ir.current.clip, paint)
		}
	}
}

// DrawBoxShadow implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawBoxShadow(s *ggui.BoxShadow) {
	if s.Color.IsTransparent() || ir.current.clip.IsEmpty() {
		return
	}
	m := ir.current.transform
	r := ggui.NewRect(s.OffsetX, s.OffsetY, s.Bounds.Width, s.Bounds.Height)
	blur := max(0, s.Blur) * m.ScaleFactor()
	reach := int(math.Ceil(float64(blur))) * 2
	p := raster.NewPath()
	p.AppendRoundedRect(r, s.BorderRadius, m, false)
	mask := raster.Blur(p.Mask(ir.current.clip.Rect.Inset(-reach)), blur)
	raster.FillMask(ir.sink, mask, ir.current.clip, raster.SolidPaint(raster.PremulOf(s.Color, ir.current.opacity)))
}

// CombineClip implements ggui.ItemRenderer.
func (ir *ItemRenderer) CombineClip(rect ggui.Rect, radius, borderWidth float32) bool {
	inner := rect.Inset(max(0, borderWidth))
	radius = max(0, radius-max(0, borderWidth))
	m := ir.current.transform
	switch {
	case inner.IsEmpty():
		ir.current.clip = raster.Clip{}
	case radius == 0 && m.IsAxisAligned():
		d := m.MapRect(inner)
		ir.current.clip = ir.current.clip.IntersectRect(image.Rect(
			round(d.X), round(d.Y), round(d.X+d.Width), round(d.Y+d.Height),
		))
	default:
		p := raster.NewPath()
		p.AppendRoundedRect(inner, radius, m, false)
		mask := p.Mask(ir.current.clip.Rect)
		if mask == nil {
			ir.current.clip = raster.Clip{}
		} else {
			ir.current.clip = ir.current.clip.IntersectMask(mask)
		}
	}
	if ir.current.clip.IsEmpty() {
		ir.current.clip = raster.Clip{}
		return false
	}
	return true
}

// CurrentClip implements ggui.ItemRenderer.
func (ir *ItemRenderer) CurrentClip() ggui.Rect {
	c := ir.current.clip.Rect
	if c.Empty() {
		return ggui.Rect{}
	}
	inv, ok := ir.current.transform.Invert()
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

// DrawCachedPixmap implements ggui.ItemRenderer. Pixmap pixels map to
// device pixels one to one under an unrotated transform.
func (ir *ItemRenderer) DrawCachedPixmap(key any, update func(draw func(width, height int, premultipliedRGBA []byte))) {
	img := ir.cache.get(key)
	if img == nil {
		update(func(w, h int, pix []byte) {
			if w <= 0 || h <= 0 || len(pix) < w*h*4 {
				return
			}
			img = &image.RGBA{
				Pix:    append([]byte(nil), pix[:w*h*4]...),
				Stride: w * 4,
				Rect:   image.Rect(0, 0, w, h),
			}
			ir.cache.put(key, img)
		})
	}
	if img == nil || ir.current.clip.IsEmpty() {
		return
	}
	s2d := ir.current.transform.Multiply(ggui.Scaling(1/ir.scale, 1/ir.scale))
	dev := raster.TransformImage(img, img.Rect, s2d, ir.current.clip.Rect)
	raster.CompositeRGBA(ir.sink, dev, ir.current.clip, ir.current.opacity, nil)
}

// DrawString implements ggui.ItemRenderer.
func (ir *ItemRenderer) DrawString(s string, c ggui.Color) {
	paint := ir.paint(ggui.Solid(c), ggui.Rect{})
	if paint == nil || s == "" {
		return
	}
	l := ir.engine.Layout(ggui.FontRequest{}, s, 0, ir.scale)
	ir.fillTextMask(l.Mask(l.Place(l.Size(), ggui.TextAlignLeft, ggui.TextAlignTop), 0, -1), paint)
}

func round(v float32) int { return int(math.Round(float64(v))) }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"unicode/utf8"
)

// Rectangle fills its geometry with a brush.
type Rectangle struct {
	Bounds     Rect
	Background Brush
}

func (r *Rectangle) Geometry() Rect { return r.Bounds }

func (r *Rectangle) Render(ir ItemRenderer) bool {
	ir.DrawRectangle(r)
	return true
}

// BorderRectangle is a rectangle with rounded corners and a border drawn
// inside its geometry.
type BorderRectangle struct {
	Bounds       Rect
	Background   Brush
	BorderWidth  float32
	BorderRadius float32
	BorderColor  Brush
}

func (r *BorderRectangle) Geometry() Rect { return r.Bounds }

func (r *BorderRectangle) Render(ir ItemRenderer) bool {
	ir.DrawBorderRectangle(r)
	return true
}

// ImageFit controls how an image is scaled into its geometry.
type ImageFit int

const (
	// ImageFitFill stretches the image to the geometry.
	ImageFitFill ImageFit = iota
	// ImageFitContain scales uniformly so the whole image is visible.
	ImageFitContain
	// ImageFitCover scales uniformly so the geometry is covered; the
	// excess is clipped.
	ImageFitCover
)

// FitImage returns the destination rectangle, relative to bounds' origin,
// for an image of size src drawn with fit.
func FitImage(fit ImageFit, src image.Point, bounds Rect) Rect {
	if src.X <= 0 || src.Y <= 0 {
		return Rect{}
	}
	if fit == ImageFitFill {
		return Rect{0, 0, bounds.Width, bounds.Height}
	}
	sx := bounds.Width / float32(src.X)
	sy := bounds.Height / float32(src.Y)
	s := min(sx, sy)
	if fit == ImageFitCover {
		s = max(sx, sy)
	}
	w, h := float32(src.X)*s, float32(src.Y)*s
	return Rect{(bounds.Width - w) / 2, (bounds.Height - h) / 2, w, h}
}

// ImageItem draws an image scaled into its geometry.
type ImageItem struct {
	Bounds Rect
	Source image.Image
	Fit    ImageFit
}

func (i *ImageItem) Geometry() Rect { return i.Bounds }

func (i *ImageItem) Render(ir ItemRenderer) bool {
	ir.DrawImage(i)
	return true
}

// ClippedImage draws a sub-rectangle of an image, optionally colorized: when
// Colorize is set, the image's alpha is used as a mask for the brush.
type ClippedImage struct {
	Bounds     Rect
	Source     image.Image
	SourceClip image.Rectangle
	Fit        ImageFit
	Colorize   Brush
}

func (i *ClippedImage) Geometry() Rect { return i.Bounds }

func (i *ClippedImage) Render(ir ItemRenderer) bool {
	ir.DrawClippedImage(i)
	return true
}

// SourceRect returns the part of Source to draw: SourceClip when set,
// otherwise the whole image.
func (i *ClippedImage) SourceRect() image.Rectangle {
	if i.Source == nil {
		return image.Rectangle{}
	}
	b := i.Source.Bounds()
	if i.SourceClip.Empty() {
		return b
	}
	return i.SourceClip.Add(b.Min).Intersect(b)
}

// TextHorizontalAlignment aligns lines within the text's width.
type TextHorizontalAlignment int

const (
	TextAlignLeft TextHorizontalAlignment = iota
	TextAlignCenter
	TextAlignRight
)

// TextVerticalAlignment aligns the text block within the text's height.
type TextVerticalAlignment int

const (
	TextAlignTop TextVerticalAlignment = iota
	TextAlignMiddle
	TextAlignBottom
)

// TextWrap selects line breaking.
type TextWrap int

const (
	// TextNoWrap breaks only at newlines.
	TextNoWrap TextWrap = iota
	// TextWordWrap also breaks at spaces when a line exceeds the width.
	TextWordWrap
)

// Text draws a string.
type Text struct {
	Bounds Rect
	Text   string
	Font   FontRequest
	Color  Brush
	HAlign TextHorizontalAlignment
	VAlign TextVerticalAlignment
	Wrap   TextWrap
}

func (t *Text) Geometry() Rect { return t.Bounds }

func (t *Text) Render(ir ItemRenderer) bool {
	ir.DrawText(t)
	return true
}

// TextInput is an editable text field. Anchor and cursor are byte offsets
// into the text; the selection lies between them.
type TextInput struct {
	Bounds Rect
	Font   FontRequest
	Color  Brush

	SelectionBackground Color
	SelectionForeground Color

	HAlign TextHorizontalAlignment
	VAlign TextVerticalAlignment
	Wrap   TextWrap

	// CursorWidth is the caret width in logical pixels. Zero uses 1.
	CursorWidth   float32
	CursorVisible bool
	HasFocus      bool
	ReadOnly      bool

	text   string
	anchor int
	cursor int
}

func (ti *TextInput) Geometry() Rect { return ti.Bounds }

func (ti *TextInput) Render(ir ItemRenderer) bool {
	ir.DrawTextInput(ti)
	return true
}

// Text returns the current content.
func (ti *TextInput) Text() string { return ti.text }

// SetText replaces the content and moves the cursor to its end.
func (ti *TextInput) SetText(s string) {
	ti.text = s
	ti.anchor = len(s)
	ti.cursor = len(s)
}

// Cursor returns the cursor byte offset.
func (ti *TextInput) Cursor() int { return ti.cursor }

// SetSelection sets anchor and cursor, clamped to the text and snapped back
// to rune boundaries.
func (ti *TextInput) SetSelection(anchor, cursor int) {
	ti.anchor = ti.snap(anchor)
	ti.cursor = ti.snap(cursor)
}

// SetCursor moves the cursor and collapses the selection.
func (ti *TextInput) SetCursor(offset int) {
	ti.SetSelection(offset, offset)
}

// SelectionAnchorAndCursor returns the selection as an ordered pair of byte
// offsets, start <= end.
func (ti *TextInput) SelectionAnchorAndCursor() (start, end int) {
	if ti.anchor <= ti.cursor {
		return ti.anchor, ti.cursor
	}
	return ti.cursor, ti.anchor
}

// HasSelection reports whether anchor and cursor differ.
func (ti *TextInput) HasSelection() bool { return ti.anchor != ti.cursor }

// SelectedText returns the text between anchor and cursor.
func (ti *TextInput) SelectedText() string {
	start, end := ti.SelectionAnchorAndCursor()
	return ti.text[start:end]
}

// Insert replaces the selection with s and places the cursor after it.
// Read-only inputs are left unchanged.
func (ti *TextInput) Insert(s string) {
	if ti.ReadOnly {
		return
	}
	start, end := ti.SelectionAnchorAndCursor()
	ti.text = ti.text[:start] + s + ti.text[end:]
	ti.cursor = start + len(s)
	ti.anchor = ti.cursor
}

func (ti *TextInput) snap(off int) int {
	off = max(0, min(off, len(ti.text)))
	for off > 0 && off < len(ti.text) && !utf8.RuneStart(ti.text[off]) {
		off--
	}
	return off
}

// PathVerb is a path construction command.
type PathVerb int

const (
	PathMoveTo PathVerb = iota
	PathLineTo
	PathQuadTo
	PathCubicTo
	PathClose
)

// PathElement is one command with up to three points: the end point last.
type PathElement struct {
	Verb   PathVerb
	Points [3]Point
}

// MoveTo starts a subpath.
func MoveTo(x, y float32) PathElement {
	return PathElement{Verb: PathMoveTo, Points: [3]Point{{x, y}}}
}

// LineTo adds a line.
func LineTo(x, y float32) PathElement {
	return PathElement{Verb: PathLineTo, Points: [3]Point{{x, y}}}
}

// QuadTo adds a quadratic curve.
func QuadTo(cx, cy, x, y float32) PathElement {
	return PathElement{Verb: PathQuadTo, Points: [3]Point{{cx, cy}, {x, y}}}
}

// CubicTo adds a cubic curve.
func CubicTo(c1x, c1y, c2x, c2y, x, y float32) PathElement {
	return PathElement{Verb: PathCubicTo, Points: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}}
}

// ClosePath closes the current subpath.
func ClosePath() PathElement { return PathElement{Verb: PathClose} }

// Path draws vector outlines in local coordinates, filled and/or stroked.
type Path struct {
	Bounds      Rect
	Elements    []PathElement
	Fill        Brush
	Stroke      Brush
	StrokeWidth float32
}

func (p *Path) Geometry() Rect { return p.Bounds }

func (p *Path) Render(ir ItemRenderer) bool {
	ir.DrawPath(p)
	return true
}

// BoxShadow draws a blurred, offset copy of a rounded rectangle.
type BoxShadow struct {
	Bounds       Rect
	OffsetX      float32
	OffsetY      float32
	Color        Color
	Blur         float32
	BorderRadius float32
}

func (s *BoxShadow) Geometry() Rect { return s.Bounds }

func (s *BoxShadow) Render(ir ItemRenderer) bool {
	ir.DrawBoxShadow(s)
	return true
}

// Clip restricts its children to its rounded geometry when Enabled.
type Clip struct {
	Bounds       Rect
	BorderRadius float32
	BorderWidth  float32
	Enabled      bool
}

func (c *Clip) Geometry() Rect { return c.Bounds }

func (c *Clip) Render(ir ItemRenderer) bool {
	if !c.Enabled {
		return true
	}
	return ir.CombineClip(Rect{0, 0, c.Bounds.Width, c.Bounds.Height}, c.BorderRadius, c.BorderWidth)
}

// Opacity multiplies the opacity of its children.
type Opacity struct {
	Bounds  Rect
	Opacity float32
}

func (o *Opacity) Geometry() Rect { return o.Bounds }

func (o *Opacity) Render(ir ItemRenderer) bool {
	if o.Opacity <= 0 {
		return false
	}
	ir.ApplyOpacity(o.Opacity)
	return true
}

// Rotate rotates its children by Angle degrees around (OriginX, OriginY).
type Rotate struct {
	Bounds  Rect
	Angle   float32
	OriginX float32
	OriginY float32
}

func (r *Rotate) Geometry() Rect { return r.Bounds }

func (r *Rotate) Render(ir ItemRenderer) bool {
	ir.Translate(Vector{r.OriginX, r.OriginY})
	ir.Rotate(r.Angle)
	ir.Translate(Vector{-r.OriginX, -r.OriginY})
	return true
}

// Empty only positions its children.
type Empty struct {
	Bounds Rect
}

func (e *Empty) Geometry() Rect { return e.Bounds }

func (e *Empty) Render(ItemRenderer) bool { return true }

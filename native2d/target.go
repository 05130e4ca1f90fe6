// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native2d

import (
	"errors"
	"image"

	"github.com/gogpu/ggui"
)

// DefaultDPI is the DPI at which one device-independent pixel is one
// physical pixel.
const DefaultDPI = 96

var (
	// ErrNotDrawing is returned by EndDraw without a matching BeginDraw.
	ErrNotDrawing = errors.New("native2d: EndDraw without BeginDraw")

	// ErrUnbalancedClip is returned by EndDraw when axis-aligned clips are
	// still pushed.
	ErrUnbalancedClip = errors.New("native2d: unbalanced axis-aligned clip")

	// ErrUnsupportedHandle is returned by NewHWNDTarget for handles that
	// are not Win32 windows, and on systems without Direct2D.
	ErrUnsupportedHandle = errors.New("native2d: unsupported window handle")

	// ErrReleased is returned by operations on a released target.
	ErrReleased = errors.New("native2d: target released")
)

// Target is a 2D render target in the shape of a Direct2D render target.
//
// Geometry is given in device-independent pixels and mapped through the
// current transform, then scaled by DPI/DefaultDPI to physical pixels.
// Colors are straight (not premultiplied); bitmaps are premultiplied RGBA.
// Drawing happens between BeginDraw and EndDraw; EndDraw reports errors of
// the whole frame.
type Target interface {
	BeginDraw()
	EndDraw() error

	// Clear replaces the pixels inside the current clip with c.
	Clear(c ggui.Color)

	// SetTransform sets the transform applied to subsequent geometry.
	SetTransform(m ggui.Transform)

	// PushAxisAlignedClip restricts drawing to r mapped through the current
	// transform. A rotated r clips to its bounding box.
	PushAxisAlignedClip(r ggui.Rect)
	PopAxisAlignedClip()

	FillRectangle(r ggui.Rect, c ggui.Color)
	FillRoundedRectangle(r ggui.Rect, radius float32, c ggui.Color)
	// DrawRoundedRectangle strokes the outline of r centered on its edge.
	DrawRoundedRectangle(r ggui.Rect, radius, strokeWidth float32, c ggui.Color)
	// DrawBitmap draws img scaled into dst.
	DrawBitmap(img *image.RGBA, dst ggui.Rect, opacity float32)

	// Resize changes the physical size of the target.
	Resize(size ggui.PhysicalSize) error
	// Size returns the physical size of the target.
	Size() ggui.PhysicalSize
	SetDPI(dpi float32)

	// Release frees the target. It is safe to call more than once.
	Release()
}

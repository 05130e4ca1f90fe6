// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native2d

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/ggui"
)

var red = ggui.RGB(255, 0, 0)

func TestImageTargetFillRespectsDPI(t *testing.T) {
	tt := NewImageTarget(10, 10)
	tt.SetDPI(2 * DefaultDPI)
	tt.BeginDraw()
	tt.FillRectangle(ggui.NewRect(1, 1, 2, 2), red)
	if err := tt.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}

	img := tt.Image()
	tests := []struct {
		x, y  int
		alpha uint8
	}{
		{1, 1, 0},
		{2, 2, 255},
		{5, 5, 255},
		{6, 6, 0},
	}
	for _, c := range tests {
		if got := img.RGBAAt(c.x, c.y).A; got != c.alpha {
			t.Errorf("alpha at (%d,%d) = %d, want %d", c.x, c.y, got, c.alpha)
		}
	}
}

func TestImageTargetAxisAlignedClip(t *testing.T) {
	tt := NewImageTarget(10, 10)
	tt.BeginDraw()
	tt.SetTransform(ggui.Translation(2, 2))
	tt.PushAxisAlignedClip(ggui.NewRect(0, 0, 3, 3))
	tt.SetTransform(ggui.Identity())
	tt.FillRectangle(ggui.NewRect(0, 0, 10, 10), red)
	tt.PopAxisAlignedClip()
	if err := tt.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}

	img := tt.Image()
	if got := img.RGBAAt(1, 1).A; got != 0 {
		t.Errorf("outside clip alpha = %d, want 0", got)
	}
	if got := img.RGBAAt(3, 3).A; got != 255 {
		t.Errorf("inside clip alpha = %d, want 255", got)
	}
	if got := img.RGBAAt(5, 5).A; got != 0 {
		t.Errorf("past clip alpha = %d, want 0", got)
	}
}

func TestImageTargetEndDrawErrors(t *testing.T) {
	tt := NewImageTarget(4, 4)
	if err := tt.EndDraw(); !errors.Is(err, ErrNotDrawing) {
		t.Errorf("EndDraw() without BeginDraw = %v, want ErrNotDrawing", err)
	}

	tt.BeginDraw()
	tt.PushAxisAlignedClip(ggui.NewRect(0, 0, 2, 2))
	if err := tt.EndDraw(); !errors.Is(err, ErrUnbalancedClip) {
		t.Errorf("EndDraw() with pushed clip = %v, want ErrUnbalancedClip", err)
	}

	tt.BeginDraw()
	tt.PopAxisAlignedClip()
	if err := tt.EndDraw(); !errors.Is(err, ErrUnbalancedClip) {
		t.Errorf("EndDraw() after extra pop = %v, want ErrUnbalancedClip", err)
	}

	tt.Release()
	tt.Release()
	if err := tt.EndDraw(); !errors.Is(err, ErrReleased) {
		t.Errorf("EndDraw() after Release = %v, want ErrReleased", err)
	}
	if err := tt.Resize(ggui.PhysicalSize{Width: 1, Height: 1}); !errors.Is(err, ErrReleased) {
		t.Errorf("Resize() after Release = %v, want ErrReleased", err)
	}
}

func TestImageTargetIgnoresDrawingOutsideFrame(t *testing.T) {
	tt := NewImageTarget(4, 4)
	tt.FillRectangle(ggui.NewRect(0, 0, 4, 4), red)
	tt.Clear(red)
	for i, v := range tt.Image().Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, v)
		}
	}
}

func TestImageTargetClearReplaces(t *testing.T) {
	tt := NewImageTarget(4, 4)
	tt.BeginDraw()
	tt.FillRectangle(ggui.NewRect(0, 0, 4, 4), red)
	tt.Clear(ggui.RGBA(0, 0, 0, 0))
	tt.EndDraw()
	if got := tt.Image().RGBAAt(1, 1); got.A != 0 || got.R != 0 {
		t.Errorf("pixel = %v, want transparent", got)
	}
}

func TestImageTargetDrawRoundedRectangleStrokesOutline(t *testing.T) {
	tt := NewImageTarget(20, 20)
	tt.BeginDraw()
	tt.DrawRoundedRectangle(ggui.NewRect(2, 2, 16, 16), 0, 2, red)
	tt.EndDraw()

	img := tt.Image()
	if got := img.RGBAAt(2, 10).A; got != 255 {
		t.Errorf("outline alpha = %d, want 255", got)
	}
	if got := img.RGBAAt(10, 10).A; got != 0 {
		t.Errorf("interior alpha = %d, want 0", got)
	}
}

func TestImageTargetDrawBitmapScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	tt := NewImageTarget(10, 10)
	tt.BeginDraw()
	tt.DrawBitmap(src, ggui.NewRect(0, 0, 8, 8), 0.5)
	tt.EndDraw()

	img := tt.Image()
	if got := img.RGBAAt(4, 4).A; got < 127 || got > 128 {
		t.Errorf("alpha = %d, want ~128", got)
	}
	if got := img.RGBAAt(9, 9).A; got != 0 {
		t.Errorf("outside alpha = %d, want 0", got)
	}
}

func TestImageTargetResize(t *testing.T) {
	tt := NewImageTarget(2, 2)
	size := ggui.PhysicalSize{Width: 7, Height: 3}
	if err := tt.Resize(size); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if tt.Size() != size {
		t.Errorf("Size() = %v, want %v", tt.Size(), size)
	}
	tt.SetDPI(-1)
	if tt.DPI() != DefaultDPI {
		t.Errorf("DPI() = %v, want %v", tt.DPI(), DefaultDPI)
	}
}

func TestNewHWNDTargetRejectsOffscreen(t *testing.T) {
	h := ggui.NewOffscreenHandle()
	if _, err := NewHWNDTarget(h, ggui.PhysicalSize{Width: 1, Height: 1}); !errors.Is(err, ErrUnsupportedHandle) {
		t.Errorf("NewHWNDTarget(offscreen) error = %v, want ErrUnsupportedHandle", err)
	}
	if !h.Released() {
		t.Error("handle not released")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native2d

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/cache"
	"github.com/gogpu/ggui/internal/textlayout"
)

func newTestItemRenderer(w, h int, scale float32) (*ItemRenderer, *ImageTarget) {
	tt := NewImageTarget(w, h)
	tt.SetDPI(DefaultDPI * scale)
	tt.BeginDraw()
	return newItemRenderer(tt, scale, textlayout.Default(), cache.New[any, *image.RGBA](0)), tt
}

func expectPanic(t *testing.T, contains string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("no panic, want one containing %q", contains)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, contains) {
			t.Errorf("panic = %q, want it to contain %q", msg, contains)
		}
	}()
	f()
}

func TestSaveRestoreBalanced(t *testing.T) {
	ops := []struct {
		name string
		do   func(ir *ItemRenderer)
	}{
		{"translate", func(ir *ItemRenderer) { ir.Translate(ggui.Vector{X: -2, Y: 7}) }},
		{"rotate", func(ir *ItemRenderer) { ir.Rotate(-60) }},
		{"opacity", func(ir *ItemRenderer) { ir.ApplyOpacity(0.25) }},
		{"clip", func(ir *ItemRenderer) { ir.CombineClip(ggui.NewRect(1, 1, 6, 6), 2, 1) }},
		{"draw", func(ir *ItemRenderer) {
			ir.CombineClip(ggui.NewRect(0, 0, 5, 5), 0, 0)
			ir.DrawRectangle(&ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 9, 9), Background: ggui.Solid(red)})
		}},
		{"nested", func(ir *ItemRenderer) {
			ir.SaveState()
			ir.Rotate(10)
			ir.ApplyOpacity(0.5)
			ir.RestoreState()
			ir.Translate(ggui.Vector{X: 3})
		}},
	}
	for _, scale := range []float32{1, 2} {
		for _, op := range ops {
			ir, _ := newTestItemRenderer(30, 30, scale)
			ir.Translate(ggui.Vector{X: 1, Y: 2})
			m, o, clip, cur := ir.Transform(), ir.Opacity(), ir.DeviceClip(), ir.CurrentClip()

			ir.SaveState()
			op.do(ir)
			ir.RestoreState()

			if ir.Transform() != m {
				t.Errorf("%s@%v: transform = %v, want %v", op.name, scale, ir.Transform(), m)
			}
			if ir.Opacity() != o {
				t.Errorf("%s@%v: opacity = %v, want %v", op.name, scale, ir.Opacity(), o)
			}
			if ir.DeviceClip() != clip || ir.CurrentClip() != cur {
				t.Errorf("%s@%v: clip = %v, want %v", op.name, scale, ir.DeviceClip(), clip)
			}
			if ir.StateDepth() != 0 {
				t.Errorf("%s@%v: StateDepth() = %d, want 0", op.name, scale, ir.StateDepth())
			}
		}
	}
}

func TestRestoreWithoutSavePanics(t *testing.T) {
	ir, _ := newTestItemRenderer(2, 2, 1)
	expectPanic(t, "RestoreState without matching SaveState", ir.RestoreState)
}

func TestDisjointClipDrawsNothing(t *testing.T) {
	ir, tt := newTestItemRenderer(32, 32, 1)
	ir.CombineClip(ggui.NewRect(0, 0, 8, 8), 0, 0)
	if ir.CombineClip(ggui.NewRect(16, 16, 8, 8), 0, 0) {
		t.Fatal("CombineClip() of disjoint rect = true, want false")
	}
	if got := ir.CurrentClip(); !got.IsEmpty() {
		t.Errorf("CurrentClip() = %v, want empty", got)
	}

	before := bytes.Clone(tt.Image().Pix)
	grad := ggui.LinearGradient{Angle: 90, Stops: []ggui.GradientStop{{0, ggui.Black}, {1, red}}}
	ir.DrawRectangle(&ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 32, 32), Background: ggui.Solid(red)})
	ir.DrawRectangle(&ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 32, 32), Background: grad})
	ir.DrawBorderRectangle(&ggui.BorderRectangle{Bounds: ggui.NewRect(0, 0, 32, 32), BorderWidth: 3, BorderColor: ggui.Solid(red)})
	ir.DrawBoxShadow(&ggui.BoxShadow{Bounds: ggui.NewRect(0, 0, 32, 32), Color: ggui.Black, Blur: 3})
	ir.DrawString("x", ggui.Black)
	ir.DrawText(&ggui.Text{Bounds: ggui.NewRect(0, 0, 32, 32), Text: "x", Color: ggui.Solid(ggui.Black)})
	ir.DrawPath(&ggui.Path{
		Bounds:   ggui.NewRect(0, 0, 32, 32),
		Elements: []ggui.PathElement{ggui.MoveTo(0, 0), ggui.LineTo(32, 0), ggui.LineTo(0, 32), ggui.ClosePath()},
		Fill:     ggui.Solid(red),
	})
	ir.DrawImage(&ggui.ImageItem{Bounds: ggui.NewRect(0, 0, 32, 32), Source: image.NewUniform(ggui.White)})
	ir.DrawCachedPixmap(1, func(draw func(int, int, []byte)) {
		draw(1, 1, []byte{255, 255, 255, 255})
	})
	ir.finish()

	if !bytes.Equal(before, tt.Image().Pix) {
		t.Error("drawing after an empty clip changed pixels")
	}
	if err := tt.EndDraw(); err != nil {
		t.Errorf("EndDraw() error = %v", err)
	}
}

func TestRoundedClipUsesBoundingBox(t *testing.T) {
	ir, _ := newTestItemRenderer(20, 20, 1)
	if !ir.CombineClip(ggui.NewRect(2, 2, 10, 10), 4, 1) {
		t.Fatal("CombineClip() = false, want true")
	}
	if got, want := ir.DeviceClip(), image.Rect(3, 3, 11, 11); got != want {
		t.Errorf("DeviceClip() = %v, want %v", got, want)
	}
}

func TestSolidFillAndClip(t *testing.T) {
	ir, tt := newTestItemRenderer(20, 20, 2)
	ir.Translate(ggui.Vector{X: 2, Y: 2})
	ir.CombineClip(ggui.NewRect(0, 0, 3, 3), 0, 0)
	ir.DrawRectangle(&ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 8, 8), Background: ggui.Solid(red)})
	ir.finish()
	if err := tt.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}

	img := tt.Image()
	tests := []struct {
		x, y  int
		alpha uint8
	}{
		{3, 3, 0},
		{4, 4, 255},
		{9, 9, 255},
		{10, 10, 0},
	}
	for _, c := range tests {
		if got := img.RGBAAt(c.x, c.y).A; got != c.alpha {
			t.Errorf("alpha at (%d,%d) = %d, want %d", c.x, c.y, got, c.alpha)
		}
	}
}

func TestGradientRasterizedToBitmap(t *testing.T) {
	ir, tt := newTestItemRenderer(20, 4, 1)
	ir.DrawRectangle(&ggui.Rectangle{
		Bounds:     ggui.NewRect(0, 0, 20, 4),
		Background: ggui.LinearGradient{Angle: 90, Stops: []ggui.GradientStop{{0, ggui.Black}, {1, ggui.White}}},
	})
	ir.finish()
	tt.EndDraw()

	img := tt.Image()
	left, right := img.RGBAAt(0, 2), img.RGBAAt(19, 2)
	if left.A != 255 || right.A != 255 {
		t.Fatalf("alpha = %d, %d, want 255", left.A, right.A)
	}
	if left.R >= right.R {
		t.Errorf("left R = %d, right R = %d, want increasing", left.R, right.R)
	}
}

func TestSolidBorderInsideGeometry(t *testing.T) {
	ir, tt := newTestItemRenderer(20, 20, 1)
	ir.DrawBorderRectangle(&ggui.BorderRectangle{
		Bounds:      ggui.NewRect(0, 0, 20, 20),
		Background:  ggui.Solid(ggui.White),
		BorderWidth: 2,
		BorderColor: ggui.Solid(ggui.RGB(0, 0, 255)),
	})
	ir.finish()
	tt.EndDraw()

	img := tt.Image()
	if got := img.RGBAAt(0, 10); got.B != 255 || got.R != 0 {
		t.Errorf("border pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(10, 10); got.R != 255 || got.B != 255 {
		t.Errorf("center = %v, want white", got)
	}
}

func TestOpacityAppliesToSolidFill(t *testing.T) {
	ir, tt := newTestItemRenderer(4, 4, 1)
	ir.ApplyOpacity(0.5)
	ir.DrawRectangle(&ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 4, 4), Background: ggui.Solid(ggui.White)})
	ir.finish()
	tt.EndDraw()
	if got := tt.Image().RGBAAt(2, 2).A; got < 127 || got > 128 {
		t.Errorf("alpha = %d, want ~128", got)
	}
}

func TestDrawTextInk(t *testing.T) {
	ir, tt := newTestItemRenderer(80, 30, 1)
	ir.DrawText(&ggui.Text{
		Bounds: ggui.NewRect(0, 0, 80, 30),
		Text:   "Hello",
		Font:   ggui.FontRequest{PixelSize: 16},
		Color:  ggui.Solid(ggui.Black),
	})
	ir.finish()
	tt.EndDraw()

	ink := false
	for i := 3; i < len(tt.Image().Pix); i += 4 {
		if tt.Image().Pix[i] != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("DrawText() drew nothing")
	}
}

func TestDrawCachedPixmapPixelExact(t *testing.T) {
	ir, tt := newTestItemRenderer(8, 8, 2)
	ir.Translate(ggui.Vector{X: 1, Y: 1})
	calls := 0
	update := func(draw func(int, int, []byte)) {
		calls++
		draw(2, 2, bytes.Repeat([]byte{0, 255, 0, 255}, 4))
	}
	ir.DrawCachedPixmap("k", update)
	ir.DrawCachedPixmap("k", update)
	ir.finish()
	tt.EndDraw()

	if calls != 1 {
		t.Errorf("update called %d times, want 1", calls)
	}
	img := tt.Image()
	if got := img.RGBAAt(2, 2); got.G != 255 || got.A != 255 {
		t.Errorf("pixmap pixel = %v, want green", got)
	}
	if got := img.RGBAAt(4, 4).A; got != 0 {
		t.Errorf("outside pixmap alpha = %d, want 0", got)
	}
}

func TestDrawClippedImageColorize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	ir, tt := newTestItemRenderer(4, 4, 1)
	ir.DrawClippedImage(&ggui.ClippedImage{
		Bounds:     ggui.NewRect(0, 0, 4, 4),
		Source:     src,
		SourceClip: image.Rect(0, 0, 2, 2),
		Colorize:   ggui.Solid(red),
	})
	ir.finish()
	tt.EndDraw()
	if got := tt.Image().RGBAAt(2, 2); got.R != 255 || got.G != 0 || got.A != 255 {
		t.Errorf("pixel = %v, want colorized red", got)
	}
}

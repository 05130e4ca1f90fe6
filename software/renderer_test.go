// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/gogpu/ggui"
)

// testAdapter is a minimal window adapter owning a software renderer.
type testAdapter struct {
	window   *ggui.Window
	renderer *Renderer
}

func (a *testAdapter) Window() *ggui.Window    { return a.window }
func (a *testAdapter) Renderer() ggui.Renderer { return a.renderer }
func (a *testAdapter) Show() error             { return nil }
func (a *testAdapter) Hide() error             { return nil }
func (a *testAdapter) RequestRedraw()          {}

func newTestAdapter(policy ggui.RepaintBufferType, w, h uint32) (ggui.Rc, *testAdapter) {
	var ta *testAdapter
	rc := ggui.NewRcCyclic(func(self ggui.Weak) ggui.WindowAdapter {
		ta = &testAdapter{window: ggui.NewWindow(self), renderer: New(policy, self)}
		ta.window.SetSize(ggui.PhysicalSize{Width: w, Height: h})
		return ta
	})
	return rc, ta
}

func fullRect(ta *testAdapter, c ggui.Color) {
	s := ta.window.LogicalSize()
	rect := &ggui.Rectangle{Bounds: ggui.NewRect(0, 0, s.Width, s.Height), Background: ggui.Solid(c)}
	ta.window.SetComponents([]ggui.ComponentOrigin{{Component: ggui.NewComponent(ggui.Node(rect))}})
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

var policies = []ggui.RepaintBufferType{ggui.NewBuffer, ggui.ReusedBuffer, ggui.SwappedBuffers}

func TestFullBufferOpaqueRect(t *testing.T) {
	color := ggui.RGB(30, 144, 255)
	want := ggui.Rgb8Pixel{R: 30, G: 144, B: 255}
	sizes := []ggui.PhysicalSize{{1, 1}, {2, 3}, {17, 5}, {64, 64}, {257, 130}}

	for _, policy := range policies {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%v/%v", policy, size), func(t *testing.T) {
				rc, ta := newTestAdapter(policy, size.Width, size.Height)
				defer rc.Drop()
				fullRect(ta, color)

				stride := int(size.Width) + 3
				buf := make([]ggui.Rgb8Pixel, stride*int(size.Height))
				for frame := range 3 {
					ta.renderer.Render(buf, stride)
					for y := 0; y < int(size.Height); y++ {
						for x := 0; x < int(size.Width); x++ {
							if got := buf[y*stride+x]; got != want {
								t.Fatalf("frame %d pixel (%d,%d) = %v, want %v", frame, x, y, got, want)
							}
						}
					}
				}
				// Padding past the row width is never written.
				if buf[int(size.Width)] != (ggui.Rgb8Pixel{}) {
					t.Error("renderer wrote into the stride padding")
				}
			})
		}
	}
}

func TestFullBufferOpaqueRectScaled(t *testing.T) {
	for _, policy := range policies {
		rc, ta := newTestAdapter(policy, 40, 30)
		ta.window.SetScaleFactor(2)
		fullRect(ta, ggui.RGB(200, 10, 10))

		buf := make([]ggui.Rgb8Pixel, 40*30)
		ta.renderer.Render(buf, 40)
		for i, p := range buf {
			if p != (ggui.Rgb8Pixel{R: 200, G: 10, B: 10}) {
				t.Fatalf("%v: pixel %d = %v", policy, i, p)
			}
		}
		rc.Drop()
	}
}

func TestRepaintRegions(t *testing.T) {
	full := image.Rect(0, 0, 100, 80)
	a := image.Rect(10, 10, 20, 20)
	b := image.Rect(50, 40, 60, 50)

	tests := []struct {
		policy ggui.RepaintBufferType
		want   [4]image.Rectangle
	}{
		{ggui.NewBuffer, [4]image.Rectangle{full, full, full, full}},
		{ggui.ReusedBuffer, [4]image.Rectangle{full, a, b, {}}},
		{ggui.SwappedBuffers, [4]image.Rectangle{full, full, a.Union(b), b}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			rc, ta := newTestAdapter(tt.policy, 100, 80)
			defer rc.Drop()
			buf := make([]ggui.Rgb8Pixel, 100*80)

			steps := []func(){
				func() {},
				func() { ta.window.InvalidatePhysical(a) },
				func() { ta.window.InvalidatePhysical(b) },
				func() {},
			}
			for i, step := range steps {
				step()
				got := ta.renderer.Render(buf, 100)
				if got.Rect != tt.want[i] {
					t.Errorf("frame %d region = %v, want %v", i, got.Rect, tt.want[i])
				}
			}
		})
	}
}

func TestResizeForcesFullRedraw(t *testing.T) {
	rc, ta := newTestAdapter(ggui.ReusedBuffer, 10, 10)
	defer rc.Drop()
	buf := make([]ggui.Rgb8Pixel, 20*20)
	ta.renderer.Render(buf, 10)
	ta.window.SetSize(ggui.PhysicalSize{Width: 20, Height: 20})
	if got := ta.renderer.Render(buf, 20); got.Rect != image.Rect(0, 0, 20, 20) {
		t.Errorf("region after resize = %v, want full window", got.Rect)
	}
}

func TestDeadAdapterRendersNothing(t *testing.T) {
	rc, ta := newTestAdapter(ggui.NewBuffer, 4, 4)
	r := ta.renderer
	rc.Drop()

	buf := make([]ggui.Rgb8Pixel, 16)
	if got := r.Render(buf, 4); !got.IsEmpty() {
		t.Errorf("Render() = %v, want empty region", got)
	}
	if got := r.scaleFactor(); got != 1 {
		t.Errorf("scaleFactor() = %v, want 1", got)
	}
}

func TestUndersizedBufferPanics(t *testing.T) {
	rc, ta := newTestAdapter(ggui.NewBuffer, 10, 10)
	defer rc.Drop()

	expectPanic(t, "contract violation", func() {
		ta.renderer.Render(make([]ggui.Rgb8Pixel, 99), 10)
	})
	expectPanic(t, "contract violation", func() {
		ta.renderer.Render(make([]ggui.Rgb8Pixel, 200), 9)
	})
}

func TestRenderRGBA(t *testing.T) {
	rc, ta := newTestAdapter(ggui.NewBuffer, 8, 8)
	defer rc.Drop()
	fullRect(ta, ggui.RGBA(255, 0, 0, 128))
	ta.window.SetBackground(ggui.Transparent)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	ta.renderer.RenderRGBA(img)
	px := img.RGBAAt(3, 3)
	if px.A != 128 || px.R != 128 || px.G != 0 {
		t.Errorf("pixel = %v, want premultiplied {128 0 0 128}", px)
	}

	expectPanic(t, "contract violation", func() {
		ta.renderer.RenderRGBA(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	})
}

func TestRegisteredInRegistry(t *testing.T) {
	rc, ta := newTestAdapter(ggui.NewBuffer, 1, 1)
	defer rc.Drop()

	r, err := ggui.NewRendererByName(ggui.RendererSoftware, ggui.RendererConfig{
		Adapter:       ta.window.Adapter(),
		RepaintBuffer: ggui.SwappedBuffers,
	})
	if err != nil {
		t.Fatalf("NewRendererByName() error = %v", err)
	}
	sr, ok := r.(*Renderer)
	if !ok {
		t.Fatalf("NewRendererByName() = %T, want *Renderer", r)
	}
	if sr.RepaintBufferType() != ggui.SwappedBuffers {
		t.Errorf("RepaintBufferType() = %v, want swapped", sr.RepaintBufferType())
	}
}

func TestRendererTextQueries(t *testing.T) {
	rc, ta := newTestAdapter(ggui.NewBuffer, 10, 10)
	defer rc.Drop()
	r := ta.renderer

	if got := r.DefaultFontSize(); got != ggui.DefaultFontSize {
		t.Errorf("DefaultFontSize() = %v, want %v", got, ggui.DefaultFontSize)
	}
	if s := r.TextSize(ggui.FontRequest{}, "abc", 0, 1); s.Width <= 0 {
		t.Errorf("TextSize() = %v, want positive width", s)
	}
	ti := &ggui.TextInput{Bounds: ggui.NewRect(0, 0, 100, 20)}
	ti.SetText("abc")
	if got := r.TextInputByteOffsetForPosition(ti, ggui.Pt(1000, 5)); got != 3 {
		t.Errorf("TextInputByteOffsetForPosition() = %d, want 3", got)
	}
}

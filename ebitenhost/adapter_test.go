// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebitenhost

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/ggui"
)

func newAdapter(t *testing.T) (*Adapter, *[]ggui.KeyInputEvent) {
	t.Helper()
	rc, err := New(Options{Size: ggui.Size{Width: 4, Height: 3}}).CreateWindowAdapter()
	if err != nil {
		t.Fatalf("CreateWindowAdapter() error = %v", err)
	}
	t.Cleanup(rc.Drop)
	a := rc.Adapter().(*Adapter)
	events := new([]ggui.KeyInputEvent)
	a.window.SetKeyHandler(func(ev ggui.KeyInputEvent) { *events = append(*events, ev) })
	return a, events
}

func TestKeyText(t *testing.T) {
	tests := []struct {
		key    ebiten.Key
		shift  bool
		want   string
		wantOK bool
	}{
		{ebiten.KeyEnter, false, ggui.KeyReturn, true},
		{ebiten.KeyNumpadEnter, false, ggui.KeyReturn, true},
		{ebiten.KeyTab, false, ggui.KeyTab, true},
		{ebiten.KeyTab, true, ggui.KeyBacktab, true},
		{ebiten.KeyArrowLeft, false, ggui.KeyLeftArrow, true},
		{ebiten.KeyF12, false, ggui.KeyF12, true},
		{ebiten.KeyContextMenu, false, ggui.KeyMenu, true},
		{ebiten.KeyA, false, "", false},
		{ebiten.KeyDigit1, true, "", false},
	}
	for _, tt := range tests {
		got, ok := keyText(tt.key, tt.shift)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("keyText(%v, %v) = %q, %v, want %q, %v", tt.key, tt.shift, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDispatchInput(t *testing.T) {
	a, events := newAdapter(t)
	a.dispatchKeys([]ebiten.Key{ebiten.KeyA, ebiten.KeyBackspace}, true, false)
	a.dispatchChars([]rune("hé"))
	a.dispatchKeys([]ebiten.Key{ebiten.KeyBackspace}, false, false)

	want := []ggui.KeyInputEvent{
		{Type: ggui.KeyEventPressed, Text: ggui.KeyBackspace},
		{Type: ggui.KeyEventPressed, Text: "h"},
		{Type: ggui.KeyEventReleased, Text: "h"},
		{Type: ggui.KeyEventPressed, Text: "é"},
		{Type: ggui.KeyEventReleased, Text: "é"},
		{Type: ggui.KeyEventReleased, Text: ggui.KeyBackspace},
	}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
	if !a.RedrawPending() {
		t.Error("key input did not request a redraw")
	}
}

func TestResize(t *testing.T) {
	a, _ := newAdapter(t)
	if got := a.window.Size(); got != (ggui.PhysicalSize{Width: 4, Height: 3}) {
		t.Fatalf("initial Size() = %v, want 4x3", got)
	}

	got := a.resize(ggui.Size{Width: 10, Height: 5}, 2)
	if want := (ggui.PhysicalSize{Width: 20, Height: 10}); got != want || a.window.Size() != want {
		t.Errorf("resize() = %v, Size() = %v, want %v", got, a.window.Size(), want)
	}
	if a.window.ScaleFactor() != 2 {
		t.Errorf("ScaleFactor() = %v, want 2", a.window.ScaleFactor())
	}

	if got := a.resize(ggui.Size{}, 2); got != (ggui.PhysicalSize{Width: 1, Height: 1}) {
		t.Errorf("resize(empty) = %v, want 1x1", got)
	}
}

func TestRenderFrame(t *testing.T) {
	a, _ := newAdapter(t)
	a.window.SetBackground(ggui.RGB(0, 128, 0))
	a.window.SetComponents([]ggui.ComponentOrigin{{
		Component: ggui.NewComponent(ggui.Node(&ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 1, 1), Background: ggui.Solid(ggui.RGB(255, 0, 0))})),
	}})

	if !a.renderFrame() {
		t.Fatal("first renderFrame() = false, want true")
	}
	if got := a.frame.RGBAAt(0, 0); got.R != 255 || got.A != 255 {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := a.frame.RGBAAt(3, 2); got.G != 128 || got.A != 255 {
		t.Errorf("pixel (3,2) = %v, want green", got)
	}
	if a.renderFrame() {
		t.Error("renderFrame() without changes = true, want false")
	}

	a.resize(ggui.Size{Width: 6, Height: 2}, 1)
	if !a.renderFrame() {
		t.Error("renderFrame() after a resize = false, want true")
	}
	if got := a.frame.Rect.Size(); got.X != 6 || got.Y != 2 {
		t.Errorf("frame size = %v, want 6x2", got)
	}
}

func TestFocusChanges(t *testing.T) {
	a, _ := newAdapter(t)
	a.setFocused(true)
	if !a.window.Active() || !a.window.HasFocus() {
		t.Error("window not active after gaining focus")
	}
	a.setFocused(false)
	if a.window.Active() || a.window.HasFocus() {
		t.Error("window active after losing focus")
	}
}

func TestShowHideBeforeRun(t *testing.T) {
	a, _ := newAdapter(t)
	if err := a.window.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if !a.visible || !a.window.IsVisible() {
		t.Error("window not visible after Show()")
	}
	if err := a.window.Hide(); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}
	if a.visible {
		t.Error("window visible after Hide()")
	}
}

func TestRunRejectsForeignAdapter(t *testing.T) {
	rc := ggui.NewRcCyclic(func(self ggui.Weak) ggui.WindowAdapter {
		return &foreignAdapter{window: ggui.NewWindow(self)}
	})
	defer rc.Drop()
	err := New(Options{}).Run(rc)
	if !ggui.IsKind(err, ggui.KindShow) {
		t.Errorf("Run() error = %v, want a show error", err)
	}
}

type foreignAdapter struct{ window *ggui.Window }

func (a *foreignAdapter) Window() *ggui.Window    { return a.window }
func (a *foreignAdapter) Renderer() ggui.Renderer { return nil }
func (a *foreignAdapter) Show() error             { return nil }
func (a *foreignAdapter) Hide() error             { return nil }
func (a *foreignAdapter) RequestRedraw()          {}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"errors"
	"slices"
	"testing"
)

type stubRenderer struct{ name string }

func (stubRenderer) TextSize(FontRequest, string, float32, float32) Size {
	return Size{}
}

func (stubRenderer) TextInputByteOffsetForPosition(*TextInput, Point) int {
	return 0
}

func (stubRenderer) TextInputCursorRectForByteOffset(*TextInput, int) Rect {
	return Rect{}
}

func (stubRenderer) DefaultFontSize() float32 { return DefaultFontSize }

func TestRendererRegistry(t *testing.T) {
	const name = "stub-test"
	var gotCfg RendererConfig
	RegisterRenderer(name, func(cfg RendererConfig) (Renderer, error) {
		gotCfg = cfg
		return stubRenderer{name: name}, nil
	})
	t.Cleanup(func() { UnregisterRenderer(name) })

	if !slices.Contains(RendererNames(), name) {
		t.Fatalf("RendererNames() = %v, missing %q", RendererNames(), name)
	}

	cfg := RendererConfig{RepaintBuffer: SwappedBuffers, Size: PhysicalSize{4, 4}}
	r, err := NewRendererByName(name, cfg)
	if err != nil {
		t.Fatalf("NewRendererByName() error = %v", err)
	}
	if r.(stubRenderer).name != name || gotCfg != cfg {
		t.Errorf("factory got %+v, want %+v", gotCfg, cfg)
	}

	if _, err := NewRendererByName("missing", cfg); !errors.Is(err, ErrRendererNotFound) {
		t.Errorf("NewRendererByName(missing) error = %v, want ErrRendererNotFound", err)
	}
}

func TestRepaintBufferTypeFromAge(t *testing.T) {
	for age, want := range []RepaintBufferType{NewBuffer, ReusedBuffer, SwappedBuffers} {
		if got := RepaintBufferTypeFromAge(uint32(age)); got != want {
			t.Errorf("RepaintBufferTypeFromAge(%d) = %v, want %v", age, got, want)
		}
	}
	expectPanic(t, "invalid buffer age 3", func() { RepaintBufferTypeFromAge(3) })
}

func TestParseRepaintBufferType(t *testing.T) {
	for _, want := range []RepaintBufferType{NewBuffer, ReusedBuffer, SwappedBuffers} {
		got, err := ParseRepaintBufferType(want.String())
		if err != nil || got != want {
			t.Errorf("ParseRepaintBufferType(%q) = %v, %v; want %v", want.String(), got, err, want)
		}
	}
	if _, err := ParseRepaintBufferType("triple"); err == nil {
		t.Error("ParseRepaintBufferType(triple) error = nil")
	}
}

func TestPlatformError(t *testing.T) {
	base := errors.New("device lost")
	err := NewPlatformError("gpucanvas.Render", KindRender, base)
	if !errors.Is(err, base) {
		t.Error("PlatformError does not unwrap to its cause")
	}
	if got, want := err.Error(), "gpucanvas.Render [render]: device lost"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if NewPlatformError("op", KindShow, nil) != nil {
		t.Error("NewPlatformError(nil) != nil")
	}
}

func TestNativeWindowHandleRelease(t *testing.T) {
	h := NewX11Handle(42, 7, nil, 0)
	if h.Kind() != HandleXcb {
		t.Errorf("Kind() = %v, want xcb", h.Kind())
	}
	if w := h.Window().(XcbWindowHandle); w.Window != 42 || w.VisualID != 7 {
		t.Errorf("Window() = %+v", w)
	}
	h.Release()
	h.Release()
	if !h.Released() {
		t.Error("Released() = false after Release")
	}
	expectPanic(t, "released native window handle", func() { h.Window() })
}

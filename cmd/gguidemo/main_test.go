// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/ggui"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "demo.toml", `
width = 64
height = 32
renderer = "native2d"
repaint = "swapped"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 32 || cfg.Renderer != ggui.RendererNative2D {
		t.Errorf("loadConfig() = %+v", cfg)
	}
	if cfg.Output != defaultConfig().Output || cfg.Scale != 1 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	h, err := cfg.headless()
	if err != nil {
		t.Fatalf("headless() error = %v", err)
	}
	if h.RepaintBuffer != ggui.SwappedBuffers {
		t.Errorf("RepaintBuffer = %v, want swapped", h.RepaintBuffer)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(writeFile(t, "bad.toml", "colour = 1\n")); err == nil {
		t.Error("loadConfig() with an unknown key = nil error")
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("loadConfig() of a missing file = nil error")
	}

	cfg := defaultConfig()
	cfg.Repaint = "triple"
	if _, err := cfg.headless(); err == nil {
		t.Error("headless() with a bad repaint policy = nil error")
	}
	cfg = defaultConfig()
	cfg.Width = 0
	if _, err := cfg.headless(); err == nil {
		t.Error("headless() with zero width = nil error")
	}
}

func TestDefaultSceneBuilds(t *testing.T) {
	s, err := loadScene("")
	if err != nil {
		t.Fatalf("loadScene() error = %v", err)
	}
	components, bg, err := s.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if len(components) != 4 {
		t.Errorf("len(components) = %d, want 4", len(components))
	}
	if bg != ggui.RGB(0xf4, 0xf4, 0xf8) {
		t.Errorf("background = %v", bg)
	}
}

func TestSceneItems(t *testing.T) {
	s, err := parseScene([]byte(`
components:
  - origin: [5, 6]
    items:
      - type: rect
        bounds: [1, 2, 3, 4]
        fill: "#ff0000"
        children:
          - type: text
            text: hi
            fill:
              radial: true
              stops: [{at: 0, color: "#000"}, {at: 1, color: "#fff"}]
`))
	if err != nil {
		t.Fatalf("parseScene() error = %v", err)
	}
	components, bg, err := s.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if bg != ggui.White {
		t.Errorf("background = %v, want white", bg)
	}
	co := components[0]
	if co.Origin != (ggui.Point{X: 5, Y: 6}) {
		t.Errorf("Origin = %v, want (5, 6)", co.Origin)
	}
	rect, ok := co.Component.Root.Children[0].Item.(*ggui.Rectangle)
	if !ok {
		t.Fatalf("item = %T, want *ggui.Rectangle", co.Component.Root.Children[0].Item)
	}
	if rect.Bounds != ggui.NewRect(1, 2, 3, 4) || rect.Background != ggui.Solid(ggui.RGB(255, 0, 0)) {
		t.Errorf("rectangle = %+v", rect)
	}
	text := co.Component.Root.Children[0].Children[0].Item.(*ggui.Text)
	if _, ok := text.Color.(ggui.RadialGradient); !ok || text.Text != "hi" {
		t.Errorf("text = %+v", text)
	}
}

func TestSceneErrors(t *testing.T) {
	tests := []struct {
		name, yaml string
	}{
		{"unknown field", "colour: red\n"},
		{"unknown type", "components: [{items: [{type: star}]}]\n"},
		{"bad color", "components: [{items: [{type: rect, fill: nope}]}]\n"},
		{"bad path", "components: [{items: [{type: path, path: [\"M 1\"]}]}]\n"},
		{"bad background", "background: \"#12\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScene([]byte(tt.yaml))
			if err == nil {
				_, _, err = s.build()
			}
			if err == nil {
				t.Error("want an error")
			}
		})
	}
}

func TestParsePath(t *testing.T) {
	elems, err := parsePath([]string{"M 0 0", "l 10 0", "Q 10 10 0 10", "C 0 5 1 2 3 4", "z"})
	if err != nil {
		t.Fatalf("parsePath() error = %v", err)
	}
	want := []ggui.PathElement{
		ggui.MoveTo(0, 0),
		ggui.LineTo(10, 0),
		ggui.QuadTo(10, 10, 0, 10),
		ggui.CubicTo(0, 5, 1, 2, 3, 4),
		ggui.ClosePath(),
	}
	if len(elems) != len(want) {
		t.Fatalf("len = %d, want %d", len(elems), len(want))
	}
	for i := range want {
		if elems[i] != want[i] {
			t.Errorf("elems[%d] = %v, want %v", i, elems[i], want[i])
		}
	}
}

func TestRunWritesPNG(t *testing.T) {
	for _, name := range []string{ggui.RendererSoftware, ggui.RendererGPUCanvas, ggui.RendererNative2D} {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Width, cfg.Height = 40, 20
			cfg.Renderer = name
			cfg.Output = filepath.Join(t.TempDir(), "out.png")
			s, err := parseScene([]byte(`
background: "#0000ff"
components:
  - items:
      - {type: rect, bounds: [0, 0, 10, 10], fill: "#ff0000"}
`))
			if err != nil {
				t.Fatal(err)
			}
			if err := run(cfg, s); err != nil {
				t.Fatalf("run() error = %v", err)
			}

			f, err := os.Open(cfg.Output)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
				t.Errorf("bounds = %v, want 40x20", b)
			}
			if r, _, b, _ := img.At(2, 2).RGBA(); r>>8 != 255 || b != 0 {
				t.Errorf("pixel (2,2) = %v, want red", img.At(2, 2))
			}
			if r, _, b, _ := img.At(30, 15).RGBA(); r != 0 || b>>8 != 255 {
				t.Errorf("pixel (30,15) = %v, want blue", img.At(30, 15))
			}
		})
	}
}

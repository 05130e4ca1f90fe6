// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package gpucanvas

import (
	"testing"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/ggui"
)

func TestBlitShaderCompiles(t *testing.T) {
	if blitShaderSource == "" {
		t.Fatal("blit shader source is empty")
	}
	spirv, err := naga.Compile(blitShaderSource)
	if err != nil {
		t.Fatalf("naga.Compile(blit.wgsl) error = %v", err)
	}
	if len(spirv) == 0 || len(spirv)%4 != 0 {
		t.Errorf("naga.Compile(blit.wgsl) returned %d bytes, want a non-empty SPIR-V word stream", len(spirv))
	}
}

func TestPickSurfaceFormat(t *testing.T) {
	tests := []struct {
		name string
		caps *wgpu.SurfaceCapabilities
		want wgpu.TextureFormat
	}{
		{"no capabilities", nil, wgpu.TextureFormatBGRA8Unorm},
		{"no formats", &wgpu.SurfaceCapabilities{}, wgpu.TextureFormatBGRA8Unorm},
		{"linear preferred", &wgpu.SurfaceCapabilities{Formats: []wgpu.TextureFormat{
			wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8Unorm,
		}}, wgpu.TextureFormatRGBA8Unorm},
		{"first otherwise", &wgpu.SurfaceCapabilities{Formats: []wgpu.TextureFormat{
			wgpu.TextureFormatBGRA8UnormSrgb,
		}}, wgpu.TextureFormatBGRA8UnormSrgb},
	}
	for _, tt := range tests {
		if got := pickSurfaceFormat(tt.caps); got != tt.want {
			t.Errorf("pickSurfaceFormat(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWindowSurfaceKindsExcludeXcb(t *testing.T) {
	for _, k := range windowSurfaceKinds {
		if k == ggui.HandleXcb || k == ggui.HandleOffscreen {
			t.Errorf("windowSurfaceKinds contains %v", k)
		}
	}
}

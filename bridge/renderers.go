// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"fmt"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/gpucanvas"
	"github.com/gogpu/ggui/software"
)

// NewSoftwareRenderer returns a software renderer for the adapter behind
// rc. bufferAge is 0 for a new buffer, 1 for a reused one and 2 for
// swapped buffers; see ggui.RepaintBufferTypeFromAge. The renderer refers
// to the adapter weakly; the host keeps the renderer alive for the
// adapter's lifetime.
func NewSoftwareRenderer(bufferAge uint32, rc ggui.Rc) *software.Renderer {
	return software.New(ggui.RepaintBufferTypeFromAge(bufferAge), rc.Downgrade())
}

// SoftwareRendererHandle erases r for a GetRenderer callback.
func SoftwareRendererHandle(r *software.Renderer) RendererHandle { return HandleOf(r) }

// RenderRGB8 renders the window into buffer. See software.Renderer.Render.
func RenderRGB8(r *software.Renderer, buffer []ggui.Rgb8Pixel, stride int) ggui.PhysicalRegion {
	return r.Render(buffer, stride)
}

// NewGPUCanvasRenderer returns a GPU-canvas renderer presenting into the
// window behind h. It takes ownership of h, which is released on failure.
func NewGPUCanvasRenderer(h *ggui.NativeWindowHandle, width, height uint32, rc ggui.Rc, opts ...gpucanvas.Option) (*gpucanvas.Renderer, error) {
	r, err := gpucanvas.New(rc.Downgrade(), h, ggui.PhysicalSize{Width: width, Height: height}, opts...)
	if err != nil {
		return nil, fmt.Errorf("bridge: gpu canvas renderer: %w", err)
	}
	return r, nil
}

// GPUCanvasRendererHandle erases r for a GetRenderer callback.
func GPUCanvasRendererHandle(r *gpucanvas.Renderer) RendererHandle { return HandleOf(r) }

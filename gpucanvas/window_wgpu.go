// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(js && wasm)

package gpucanvas

import (
	_ "embed"
	"fmt"
	"image"
	"log/slog"
	"runtime"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/ggui"
)

//go:embed shaders/blit.wgsl
var blitShaderSource string

// windowSurfaceKinds lists the handle kinds the GPU backends of this
// platform create surfaces from.
var windowSurfaceKinds = func() []ggui.HandleKind {
	switch runtime.GOOS {
	case "windows":
		return []ggui.HandleKind{ggui.HandleWin32}
	case "darwin":
		return []ggui.HandleKind{ggui.HandleAppKit}
	case "linux":
		return []ggui.HandleKind{ggui.HandleWayland}
	}
	return nil
}()

// wgpuSwapchain uploads frames into a sampled texture and draws it onto the
// window's surface.
type wgpuSwapchain struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	frameFormat   wgpu.TextureFormat

	shader     *wgpu.ShaderModule
	layout     *wgpu.BindGroupLayout
	pipeLayout *wgpu.PipelineLayout
	pipeline   *wgpu.RenderPipeline
	sampler    *wgpu.Sampler

	frame     *wgpu.Texture
	frameView *wgpu.TextureView
	bindGroup *wgpu.BindGroup
	size      ggui.PhysicalSize
	scratch   []byte
}

func openSwapchain(display, window uintptr, frameFormat gputypes.TextureFormat) (swapchain, error) {
	c := &wgpuSwapchain{frameFormat: frameFormat}
	if err := c.open(display, window); err != nil {
		c.release()
		return nil, err
	}
	return c, nil
}

func (c *wgpuSwapchain) open(display, window uintptr) error {
	var err error
	if c.instance, err = wgpu.CreateInstance(nil); err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	if c.surface, err = c.instance.CreateSurface(display, window); err != nil {
		return err
	}
	c.adapter, err = c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   wgpu.PowerPreferenceLowPower,
		CompatibleSurface: c.surface,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	if c.device, err = c.adapter.RequestDevice(nil); err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	c.surfaceFormat = pickSurfaceFormat(c.adapter.GetSurfaceCapabilities(c.surface))

	info := c.adapter.Info()
	ggui.Logger().Info("gpucanvas: window surface opened",
		slog.String("adapter", info.Name),
		slog.String("backend", info.Backend.String()),
		slog.String("format", c.surfaceFormat.String()))
	return c.createPipeline()
}

// pickSurfaceFormat prefers a linear 8-bit format; frames are already in
// display space.
func pickSurfaceFormat(caps *wgpu.SurfaceCapabilities) wgpu.TextureFormat {
	if caps == nil || len(caps.Formats) == 0 {
		return wgpu.TextureFormatBGRA8Unorm
	}
	for _, f := range caps.Formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return caps.Formats[0]
}

func (c *wgpuSwapchain) createPipeline() error {
	var err error
	c.shader, err = c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "ggui_blit",
		WGSL:  blitShaderSource,
	})
	if err != nil {
		return fmt.Errorf("compile blit shader: %w", err)
	}
	c.layout, err = c.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ggui_blit_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create blit layout: %w", err)
	}
	c.pipeLayout, err = c.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "ggui_blit_pipe_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{c.layout},
	})
	if err != nil {
		return fmt.Errorf("create blit pipeline layout: %w", err)
	}
	// Frame and surface share the window's pixel grid.
	c.sampler, err = c.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "ggui_blit_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create blit sampler: %w", err)
	}
	c.pipeline, err = c.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "ggui_blit",
		Layout: c.pipeLayout,
		Vertex: wgpu.VertexState{
			Module:     c.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     c.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    c.surfaceFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("create blit pipeline: %w", err)
	}
	return nil
}

func (c *wgpuSwapchain) configure(size ggui.PhysicalSize) error {
	err := c.surface.Configure(c.device, &wgpu.SurfaceConfiguration{
		Width:       size.Width,
		Height:      size.Height,
		Format:      c.surfaceFormat,
		Usage:       wgpu.TextureUsageRenderAttachment,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	c.releaseFrame()
	c.frame, err = c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "ggui_frame",
		Size:          wgpu.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        c.frameFormat,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create frame texture: %w", err)
	}
	if c.frameView, err = c.device.CreateTextureView(c.frame, nil); err != nil {
		return fmt.Errorf("create frame view: %w", err)
	}
	c.bindGroup, err = c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ggui_blit_bind_group",
		Layout: c.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: c.frameView},
			{Binding: 1, Sampler: c.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("create blit bind group: %w", err)
	}
	c.size = size
	return nil
}

// present uploads the damaged rows, then redraws the whole swap chain
// texture since its previous content is undefined.
func (c *wgpuSwapchain) present(frame *image.RGBA, damage image.Rectangle) error {
	if c.frame == nil {
		return ErrNotConfigured
	}
	if !damage.Empty() {
		c.scratch = packed(frame, damage, c.scratch)
		err := c.device.Queue().WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture: c.frame,
				Origin:  wgpu.Origin3D{X: uint32(damage.Min.X), Y: uint32(damage.Min.Y)},
				Aspect:  gputypes.TextureAspectAll,
			},
			c.scratch,
			&wgpu.ImageDataLayout{BytesPerRow: uint32(damage.Dx() * 4), RowsPerImage: uint32(damage.Dy())},
			&wgpu.Extent3D{Width: uint32(damage.Dx()), Height: uint32(damage.Dy()), DepthOrArrayLayers: 1},
		)
		if err != nil {
			return fmt.Errorf("upload frame: %w", err)
		}
	}

	target, _, err := c.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	if err := c.draw(target); err != nil {
		c.surface.DiscardTexture()
		return err
	}
	var rects []image.Rectangle
	if !damage.Empty() {
		rects = []image.Rectangle{damage}
	}
	if err := c.surface.PresentWithDamage(target, rects); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (c *wgpuSwapchain) draw(target *wgpu.SurfaceTexture) error {
	view, err := target.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := c.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "ggui_present"})
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}
	pass, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{A: 1},
			},
		},
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin render pass: %w", err)
	}
	pass.SetPipeline(c.pipeline)
	pass.SetBindGroup(0, c.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	if err := pass.End(); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end render pass: %w", err)
	}
	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	if _, err := c.device.Queue().Submit(cmd); err != nil {
		cmd.Release()
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

func (c *wgpuSwapchain) releaseFrame() {
	if c.bindGroup != nil {
		c.bindGroup.Release()
		c.bindGroup = nil
	}
	if c.frameView != nil {
		c.frameView.Release()
		c.frameView = nil
	}
	if c.frame != nil {
		c.frame.Release()
		c.frame = nil
	}
}

// release frees everything open created, newest first. It tolerates a
// partially opened swap chain.
func (c *wgpuSwapchain) release() {
	if c.device != nil {
		c.device.Poll(wgpu.PollWait)
	}
	c.releaseFrame()
	if c.pipeline != nil {
		c.pipeline.Release()
	}
	if c.sampler != nil {
		c.sampler.Release()
	}
	if c.pipeLayout != nil {
		c.pipeLayout.Release()
	}
	if c.layout != nil {
		c.layout.Release()
	}
	if c.shader != nil {
		c.shader.Release()
	}
	if c.surface != nil {
		c.surface.Unconfigure()
		c.surface.Release()
	}
	if c.device != nil {
		c.device.Release()
	}
	if c.adapter != nil {
		c.adapter.Release()
	}
	if c.instance != nil {
		c.instance.Release()
	}
	*c = wgpuSwapchain{}
}

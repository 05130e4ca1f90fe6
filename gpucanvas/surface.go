// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
)

// Names of the built-in surface backends.
const (
	TextureSurfaceName = "texture"
	MemorySurfaceName  = "memory"
)

// SurfaceOptions configure surface creation.
type SurfaceOptions struct {
	// Size is the initial surface size in physical pixels.
	Size ggui.PhysicalSize
	// Format is the negotiated pixel format of presented frames.
	Format gputypes.TextureFormat
	// Provider is the host's GPU device, if any.
	Provider gpucontext.DeviceProvider
	// Drawer draws textures into the host's window, if any.
	Drawer gpucontext.TextureDrawer
}

// Surface is the presentation target of a window. Frames are 8-bit
// premultiplied pixels already in the surface's format.
type Surface interface {
	// Configure sets the size and pixel format of presented frames.
	Configure(size ggui.PhysicalSize, format gputypes.TextureFormat) error
	// Present shows frame. damage bounds the pixels that changed since the
	// previous Present.
	Present(frame *image.RGBA, damage image.Rectangle) error
	// SetVisible maps or unmaps the surface.
	SetVisible(visible bool) error
	// Destroy releases the surface. It is called exactly once.
	Destroy()
}

// MemorySurface keeps the last presented frame in memory. It backs
// offscreen windows.
type MemorySurface struct {
	frame     *image.RGBA
	size      ggui.PhysicalSize
	format    gputypes.TextureFormat
	visible   bool
	presented int
	destroyed bool
}

// NewMemorySurface returns an empty memory surface.
func NewMemorySurface() *MemorySurface { return &MemorySurface{} }

// Configure implements Surface.
func (s *MemorySurface) Configure(size ggui.PhysicalSize, format gputypes.TextureFormat) error {
	s.size, s.format = size, format
	s.frame = image.NewRGBA(size.Bounds())
	return nil
}

// Present implements Surface.
func (s *MemorySurface) Present(frame *image.RGBA, damage image.Rectangle) error {
	if s.frame == nil {
		return ErrNotConfigured
	}
	if !frame.Rect.Eq(s.frame.Rect) {
		return fmt.Errorf("gpucanvas: frame %v does not match surface %v", frame.Rect, s.frame.Rect)
	}
	damage = damage.Intersect(s.frame.Rect)
	for y := damage.Min.Y; y < damage.Max.Y; y++ {
		i := s.frame.PixOffset(damage.Min.X, y)
		j := frame.PixOffset(damage.Min.X, y)
		n := damage.Dx() * 4
		copy(s.frame.Pix[i:i+n], frame.Pix[j:j+n])
	}
	s.presented++
	return nil
}

// SetVisible implements Surface.
func (s *MemorySurface) SetVisible(visible bool) error {
	s.visible = visible
	return nil
}

// Destroy implements Surface.
func (s *MemorySurface) Destroy() { s.destroyed = true }

// Frame returns the last presented frame in the surface format.
func (s *MemorySurface) Frame() *image.RGBA { return s.frame }

// Format returns the configured pixel format.
func (s *MemorySurface) Format() gputypes.TextureFormat { return s.format }

// Visible reports whether the surface is shown.
func (s *MemorySurface) Visible() bool { return s.visible }

// Presented returns the number of presented frames.
func (s *MemorySurface) Presented() int { return s.presented }

// Destroyed reports whether Destroy was called.
func (s *MemorySurface) Destroyed() bool { return s.destroyed }

// TextureSurface presents frames as a texture drawn by the host, which
// owns the GPU device and the window's swap chain.
type TextureSurface struct {
	drawer  gpucontext.TextureDrawer
	tex     gpucontext.Texture
	size    ggui.PhysicalSize
	visible bool
	scratch []byte
}

func newTextureSurface(_ *ggui.NativeWindowHandle, opts SurfaceOptions) (Surface, error) {
	if opts.Drawer == nil {
		return nil, ErrNoTextureDrawer
	}
	return &TextureSurface{drawer: opts.Drawer, visible: true}, nil
}

// Configure implements Surface. The texture is recreated on the next
// Present.
func (s *TextureSurface) Configure(size ggui.PhysicalSize, _ gputypes.TextureFormat) error {
	if size != s.size {
		s.destroyTexture()
		s.size = size
	}
	return nil
}

// Present implements Surface. It uploads only the damaged rows when the
// texture supports region updates.
func (s *TextureSurface) Present(frame *image.RGBA, damage image.Rectangle) error {
	if !s.visible || s.size.IsEmpty() {
		return nil
	}
	w, h := int(s.size.Width), int(s.size.Height)
	switch tex := s.tex.(type) {
	case nil:
		t, err := s.drawer.TextureCreator().NewTextureFromRGBA(w, h, packed(frame, frame.Rect, nil))
		if err != nil {
			return fmt.Errorf("gpucanvas: create texture: %w", err)
		}
		s.tex = t
	case gpucontext.TextureRegionUpdater:
		damage = damage.Intersect(frame.Rect)
		if !damage.Empty() {
			s.scratch = packed(frame, damage, s.scratch)
			if err := tex.UpdateRegion(damage.Min.X, damage.Min.Y, damage.Dx(), damage.Dy(), s.scratch); err != nil {
				return fmt.Errorf("gpucanvas: update texture region: %w", err)
			}
		}
	case gpucontext.TextureUpdater:
		if err := tex.UpdateData(packed(frame, frame.Rect, nil)); err != nil {
			return fmt.Errorf("gpucanvas: update texture: %w", err)
		}
	default:
		s.destroyTexture()
		return s.Present(frame, frame.Rect)
	}
	return s.drawer.DrawTexture(s.tex, 0, 0)
}

// SetVisible implements Surface.
func (s *TextureSurface) SetVisible(visible bool) error {
	s.visible = visible
	return nil
}

// Destroy implements Surface.
func (s *TextureSurface) Destroy() { s.destroyTexture() }

func (s *TextureSurface) destroyTexture() {
	if d, ok := s.tex.(interface{ Destroy() }); ok {
		d.Destroy()
	}
	s.tex = nil
}

// packed returns the pixels of r as densely packed rows, reusing buf.
func packed(img *image.RGBA, r image.Rectangle, buf []byte) []byte {
	n := r.Dx() * 4
	if img.Rect.Eq(r) && img.Stride == n {
		return img.Pix[:n*r.Dy()]
	}
	buf = buf[:0]
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		buf = append(buf, img.Pix[i:i+n]...)
	}
	return buf
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
)

// WindowSurfaceName is the surface backend that owns a GPU device and a
// swap chain bound to the native window.
const WindowSurfaceName = "window"

// ErrUnsupportedHandle is returned by the window surface for a handle it
// cannot create a GPU surface from.
var ErrUnsupportedHandle = errors.New("gpucanvas: window handle not supported by the GPU surface")

// swapchain is the GPU side of a WindowSurface.
type swapchain interface {
	configure(size ggui.PhysicalSize) error
	// present uploads damage from frame and shows the whole frame.
	present(frame *image.RGBA, damage image.Rectangle) error
	release()
}

// WindowSurface presents frames through a swap chain created from the
// window's raw handle. The surface owns its GPU instance, device and swap
// chain; Destroy releases them.
type WindowSurface struct {
	chain     swapchain
	size      ggui.PhysicalSize
	format    gputypes.TextureFormat
	visible   bool
	destroyed bool
}

func newWindowSurface(h *ggui.NativeWindowHandle, opts SurfaceOptions) (Surface, error) {
	display, window, err := surfaceHandles(h)
	if err != nil {
		return nil, err
	}
	chain, err := openSwapchain(display, window, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("gpucanvas: %s surface: %w", h.Kind(), err)
	}
	return newWindowSurfaceFrom(chain), nil
}

func newWindowSurfaceFrom(chain swapchain) *WindowSurface {
	return &WindowSurface{chain: chain, visible: true}
}

// surfaceHandles returns the display and window words of h in the form
// GPU surface creation expects them.
func surfaceHandles(h *ggui.NativeWindowHandle) (display, window uintptr, err error) {
	switch w := h.Window().(type) {
	case ggui.Win32WindowHandle:
		window = uintptr(w.HWND)
	case ggui.WaylandWindowHandle:
		window = uintptr(w.Surface)
		if d, ok := h.Display().(ggui.WaylandDisplayHandle); ok {
			display = uintptr(d.Display)
		}
		if display == 0 {
			return 0, 0, fmt.Errorf("%w: wayland handle without a display", ErrUnsupportedHandle)
		}
	case ggui.AppKitWindowHandle:
		window = uintptr(w.NSView)
	default:
		// X11 surfaces are created from an Xlib Display, not an XCB
		// connection.
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedHandle, h.Kind())
	}
	if window == 0 {
		return 0, 0, fmt.Errorf("%w: null %s window", ErrUnsupportedHandle, h.Kind())
	}
	return display, window, nil
}

// Configure implements Surface.
func (s *WindowSurface) Configure(size ggui.PhysicalSize, format gputypes.TextureFormat) error {
	if s.destroyed {
		return ErrClosed
	}
	if !size.IsEmpty() {
		if err := s.chain.configure(size); err != nil {
			return err
		}
	}
	s.size, s.format = size, format
	return nil
}

// Present implements Surface. Hidden and empty surfaces present nothing.
func (s *WindowSurface) Present(frame *image.RGBA, damage image.Rectangle) error {
	switch {
	case s.destroyed:
		return ErrClosed
	case s.size.IsEmpty():
		return ErrNotConfigured
	case !s.visible:
		return nil
	case !frame.Rect.Eq(s.size.Bounds()):
		return fmt.Errorf("gpucanvas: frame %v does not match surface %v", frame.Rect, s.size.Bounds())
	}
	return s.chain.present(frame, damage.Intersect(frame.Rect))
}

// SetVisible implements Surface. The host window itself is mapped by the
// host; a hidden surface stops presenting.
func (s *WindowSurface) SetVisible(visible bool) error {
	if s.destroyed {
		return ErrClosed
	}
	s.visible = visible
	return nil
}

// Destroy implements Surface.
func (s *WindowSurface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.chain.release()
}

// Format returns the configured frame format.
func (s *WindowSurface) Format() gputypes.TextureFormat { return s.format }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucanvas implements the GPU-canvas renderer backend.
//
// The renderer rasterizes a window's components on the CPU and presents
// the frame through a Surface. Surfaces come from a registry of backends
// keyed by the window handle's kind; the built-in texture surface hands
// frames to a host that owns the GPU device (gpucontext.TextureDrawer),
// the window surface opens a wgpu device and swap chain on the native
// window handle, and the memory surface serves offscreen windows. A handle
// no backend serves fails with a ggui.KindSurface platform error.
//
// The host's device, when supplied with WithDeviceProvider, decides the
// surface format. RGBA and BGRA surfaces are supported; for BGRA the red
// and blue channels are swapped on upload.
//
// The backend registers itself as ggui.RendererGPUCanvas.
package gpucanvas

import (
	"errors"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/textlayout"
	"github.com/gogpu/ggui/software"
)

func init() {
	ggui.RegisterRenderer(ggui.RendererGPUCanvas, func(cfg ggui.RendererConfig) (ggui.Renderer, error) {
		h := cfg.Handle
		if h == nil {
			h = ggui.NewOffscreenHandle()
		}
		return New(cfg.Adapter, h, cfg.Size)
	})
}

var (
	// ErrSizeMismatch is returned by Render when the requested size is not
	// the configured one. Call Resize first.
	ErrSizeMismatch = errors.New("gpucanvas: frame size does not match the configured size")

	// ErrClosed is returned by operations on a closed renderer.
	ErrClosed = errors.New("gpucanvas: renderer closed")

	// ErrNoHandle is returned by New without a usable window handle.
	ErrNoHandle = errors.New("gpucanvas: no window handle")

	// ErrUnsupportedFormat is returned when the host's surface format is
	// neither RGBA8 nor BGRA8.
	ErrUnsupportedFormat = errors.New("gpucanvas: unsupported surface format")

	// ErrNoTextureDrawer is returned by the texture surface factory when
	// the host supplies no texture drawer.
	ErrNoTextureDrawer = errors.New("gpucanvas: no texture drawer")

	// ErrNotConfigured is returned by a surface presenting before Configure.
	ErrNotConfigured = errors.New("gpucanvas: surface not configured")

	// ErrNoSurfaceBackend is returned when no surface backend supports the
	// window handle.
	ErrNoSurfaceBackend = errors.New("gpucanvas: no surface backend available")
)

// Option configures a Renderer.
type Option func(*options)

type options struct {
	provider gpucontext.DeviceProvider
	drawer   gpucontext.TextureDrawer
	registry *Registry
	engine   *textlayout.Engine
}

// WithDeviceProvider makes the renderer use the host's GPU device. The
// host keeps ownership of the device.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithTextureDrawer presents frames through the host's texture drawer.
func WithTextureDrawer(d gpucontext.TextureDrawer) Option {
	return func(o *options) {
		o.drawer = d
	}
}

// WithRegistry selects surfaces from r instead of the global registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithTextEngine sets the text engine used for measuring and drawing text.
func WithTextEngine(e *textlayout.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// Renderer is the GPU-canvas renderer. It owns its surface and the raw
// window handle it was created with, and refers to its adapter weakly.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	*software.Renderer

	adapter     ggui.Weak
	handle      *ggui.NativeWindowHandle
	surface     Surface
	surfaceName string
	format      gputypes.TextureFormat

	size    ggui.PhysicalSize
	frame   *image.RGBA
	upload  *image.RGBA
	visible bool
	closed  bool
}

var _ ggui.Renderer = (*Renderer)(nil)

// New creates a renderer presenting into the window behind handle. The
// renderer takes ownership of handle; it is released by Close, or before
// New returns an error.
func New(adapter ggui.Weak, handle *ggui.NativeWindowHandle, size ggui.PhysicalSize, opts ...Option) (*Renderer, error) {
	const op = "gpucanvas.New"
	if handle == nil || handle.Released() {
		return nil, ggui.NewPlatformError(op, ggui.KindCreate, ErrNoHandle)
	}
	o := options{registry: globalRegistry, engine: textlayout.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := negotiateFormat(o.provider)
	if err != nil {
		handle.Release()
		return nil, ggui.NewPlatformError(op, ggui.KindSurface, err)
	}
	surface, name, err := o.registry.NewSurface(handle, SurfaceOptions{
		Size:     size,
		Format:   format,
		Provider: o.provider,
		Drawer:   o.drawer,
	})
	if err != nil {
		handle.Release()
		return nil, ggui.NewPlatformError(op, ggui.KindSurface, err)
	}

	r := &Renderer{
		Renderer:    software.New(ggui.ReusedBuffer, adapter, software.WithTextEngine(o.engine)),
		adapter:     adapter,
		handle:      handle,
		surface:     surface,
		surfaceName: name,
		format:      format,
	}
	if err := r.configure(size); err != nil {
		surface.Destroy()
		handle.Release()
		return nil, ggui.NewPlatformError(op, ggui.KindSurface, err)
	}

	attrs := []any{
		slog.String("surface", name),
		slog.String("kind", handle.Kind().String()),
		slog.String("format", format.String()),
		slog.String("size", size.String()),
	}
	if o.provider != nil {
		info := o.provider.AdapterInfo()
		attrs = append(attrs, slog.String("adapter", info.Name), slog.String("adapter_type", info.Type.String()))
	}
	ggui.Logger().Info("gpucanvas: renderer created", attrs...)
	return r, nil
}

// negotiateFormat picks the frame format from the host's preference.
func negotiateFormat(p gpucontext.DeviceProvider) (gputypes.TextureFormat, error) {
	if p == nil {
		return gputypes.TextureFormatRGBA8Unorm, nil
	}
	switch f := p.SurfaceFormat(); f {
	case gputypes.TextureFormatUndefined:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return f, nil
	default:
		return f, ErrUnsupportedFormat
	}
}

func (r *Renderer) configure(size ggui.PhysicalSize) error {
	if err := r.surface.Configure(size, r.format); err != nil {
		return err
	}
	r.size = size
	r.frame = image.NewRGBA(size.Bounds())
	r.upload = nil
	if r.format == gputypes.TextureFormatBGRA8Unorm {
		r.upload = image.NewRGBA(size.Bounds())
	}
	// A new frame buffer has no previous content.
	r.adapter.With(func(a ggui.WindowAdapter) { a.Window().InvalidateAll() })
	return nil
}

// SurfaceName returns the name of the surface backend in use.
func (r *Renderer) SurfaceName() string { return r.surfaceName }

// Surface returns the presentation surface.
func (r *Renderer) Surface() Surface { return r.surface }

// Format returns the negotiated surface format.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// Size returns the configured size.
func (r *Renderer) Size() ggui.PhysicalSize { return r.size }

// Show maps the surface.
func (r *Renderer) Show() error {
	if r.closed {
		return ggui.NewPlatformError("gpucanvas.Show", ggui.KindShow, ErrClosed)
	}
	if err := r.surface.SetVisible(true); err != nil {
		return ggui.NewPlatformError("gpucanvas.Show", ggui.KindShow, err)
	}
	r.visible = true
	return nil
}

// Hide unmaps the surface.
func (r *Renderer) Hide() error {
	if r.closed {
		return ggui.NewPlatformError("gpucanvas.Hide", ggui.KindHide, ErrClosed)
	}
	if err := r.surface.SetVisible(false); err != nil {
		return ggui.NewPlatformError("gpucanvas.Hide", ggui.KindHide, err)
	}
	r.visible = false
	return nil
}

// Visible reports whether the surface is shown.
func (r *Renderer) Visible() bool { return r.visible }

// Resize reconfigures the surface for a new physical size.
func (r *Renderer) Resize(size ggui.PhysicalSize) error {
	if r.closed {
		return ggui.NewPlatformError("gpucanvas.Resize", ggui.KindResize, ErrClosed)
	}
	if size == r.size {
		return nil
	}
	if err := r.configure(size); err != nil {
		return ggui.NewPlatformError("gpucanvas.Resize", ggui.KindResize, err)
	}
	ggui.Logger().Debug("gpucanvas: resized", slog.String("size", size.String()))
	return nil
}

// Render draws the adapter's window and presents it. size must equal the
// configured size and the window's size; otherwise ErrSizeMismatch is
// returned and nothing is drawn. A window whose adapter is gone renders
// nothing.
func (r *Renderer) Render(size ggui.PhysicalSize) error {
	const op = "gpucanvas.Render"
	if r.closed {
		return ggui.NewPlatformError(op, ggui.KindRender, ErrClosed)
	}
	if size != r.size {
		return ggui.NewPlatformError(op, ggui.KindRender, ErrSizeMismatch)
	}
	var err error
	r.adapter.With(func(a ggui.WindowAdapter) {
		if a.Window().Size() != size {
			err = ggui.NewPlatformError(op, ggui.KindRender, ErrSizeMismatch)
			return
		}
		if size.IsEmpty() {
			return
		}
		region := r.RenderRGBA(r.frame)
		if region.IsEmpty() {
			return
		}
		out := r.frame
		if r.upload != nil {
			swapRedBlue(r.upload, r.frame, region.Rect)
			out = r.upload
		}
		if perr := r.surface.Present(out, region.Rect); perr != nil {
			err = ggui.NewPlatformError(op, ggui.KindRender, perr)
		}
	})
	return err
}

// Frame returns the last rendered frame in RGBA order.
func (r *Renderer) Frame() *image.RGBA { return r.frame }

// Close destroys the surface and releases the window handle. Later calls
// do nothing.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.surface.Destroy()
	r.handle.Release()
	ggui.Logger().Info("gpucanvas: renderer closed", slog.String("surface", r.surfaceName))
}

// swapRedBlue copies the pixels of rect from src to dst in BGRA order.
func swapRedBlue(dst, src *image.RGBA, rect image.Rectangle) {
	rect = rect.Intersect(src.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		i := src.PixOffset(rect.Min.X, y)
		j := dst.PixOffset(rect.Min.X, y)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			s := src.Pix[i : i+4 : i+4]
			d := dst.Pix[j : j+4 : j+4]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
			i += 4
			j += 4
		}
	}
}

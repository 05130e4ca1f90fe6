// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless implements a ggui.Platform without a windowing system.
//
// Every window renders into memory, which makes the package the host of
// choice for tests, servers and the demo command. Any registered renderer
// can be selected; the built-in backends are linked in by this package.
package headless

import (
	"image"
	"log/slog"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/gpucanvas"
	"github.com/gogpu/ggui/native2d"
	"github.com/gogpu/ggui/software"
)

// Platform creates offscreen window adapters.
type Platform struct {
	cfg     Config
	created int
}

var _ ggui.Platform = (*Platform)(nil)

// New returns a platform creating windows described by cfg.
func New(cfg Config) *Platform {
	return &Platform{cfg: cfg.normalized()}
}

// Config returns the platform's configuration.
func (p *Platform) Config() Config { return p.cfg }

// CreateWindowAdapter implements ggui.Platform. Every call creates a new
// window with its own renderer and framebuffer.
func (p *Platform) CreateWindowAdapter() (ggui.Rc, error) {
	const op = "headless.CreateWindowAdapter"
	var (
		a   *Adapter
		err error
	)
	rc := ggui.NewRcCyclic(func(self ggui.Weak) ggui.WindowAdapter {
		a = &Adapter{window: ggui.NewWindow(self)}
		a.window.SetScaleFactor(p.cfg.ScaleFactor)
		a.window.SetSize(p.cfg.Size)
		a.renderer, err = ggui.NewRendererByName(p.cfg.Renderer, ggui.RendererConfig{
			Adapter:       self,
			RepaintBuffer: p.cfg.RepaintBuffer,
			Handle:        ggui.NewOffscreenHandle(),
			Size:          p.cfg.Size,
		})
		if err != nil {
			a.renderer = nil
		}
		return a
	})
	if err != nil {
		rc.Drop()
		return ggui.Rc{}, ggui.NewPlatformError(op, ggui.KindCreate, err)
	}
	p.created++
	ggui.Logger().Info("headless: window created",
		slog.String("renderer", p.cfg.Renderer),
		slog.String("size", p.cfg.Size.String()),
		slog.Int("windows", p.created),
	)
	return rc, nil
}

// AdapterOf returns the headless adapter behind rc, or nil when rc was not
// created by a headless platform.
func AdapterOf(rc ggui.Rc) *Adapter {
	a, _ := rc.Adapter().(*Adapter)
	return a
}

// Adapter is an offscreen window adapter.
//
// Adapter is not safe for concurrent use.
type Adapter struct {
	window   *ggui.Window
	renderer ggui.Renderer
	frame    []ggui.Rgb8Pixel

	visible       bool
	shows, hides  int
	redraws       int
	redrawPending bool
	frames        int
}

var (
	_ ggui.WindowAdapter = (*Adapter)(nil)
	_ ggui.Releaser      = (*Adapter)(nil)
)

func (a *Adapter) Window() *ggui.Window    { return a.window }
func (a *Adapter) Renderer() ggui.Renderer { return a.renderer }

// Show marks the window visible. Renderers presenting to a surface are
// shown too.
func (a *Adapter) Show() error {
	if s, ok := a.renderer.(interface{ Show() error }); ok {
		if err := s.Show(); err != nil {
			return err
		}
	}
	a.visible = true
	a.shows++
	a.RequestRedraw()
	return nil
}

// Hide marks the window hidden.
func (a *Adapter) Hide() error {
	if h, ok := a.renderer.(interface{ Hide() error }); ok {
		if err := h.Hide(); err != nil {
			return err
		}
	}
	a.visible = false
	a.hides++
	return nil
}

// RequestRedraw records that a frame is wanted. Requests coalesce until the
// next RenderFrame.
func (a *Adapter) RequestRedraw() {
	a.redraws++
	a.redrawPending = true
}

// Release closes the renderer.
func (a *Adapter) Release() {
	if c, ok := a.renderer.(interface{ Close() }); ok {
		c.Close()
	}
	a.frame = nil
}

// Visible reports whether the window is shown.
func (a *Adapter) Visible() bool { return a.visible }

// ShowCount and HideCount return how often Show and Hide succeeded.
func (a *Adapter) ShowCount() int { return a.shows }
func (a *Adapter) HideCount() int { return a.hides }

// RedrawRequests returns the number of RequestRedraw calls.
func (a *Adapter) RedrawRequests() int { return a.redraws }

// RedrawPending reports whether a redraw was requested since the last frame.
func (a *Adapter) RedrawPending() bool { return a.redrawPending }

// Frames returns the number of frames rendered.
func (a *Adapter) Frames() int { return a.frames }

// Resize changes the window's physical size and reconfigures the renderer.
func (a *Adapter) Resize(size ggui.PhysicalSize) error {
	a.window.SetSize(size)
	if r, ok := a.renderer.(interface {
		Resize(ggui.PhysicalSize) error
	}); ok {
		if err := r.Resize(size); err != nil {
			return err
		}
	}
	a.RequestRedraw()
	return nil
}

// RenderFrame advances animations and renders the pending frame. The
// returned region is what changed; renderers that redraw whole frames
// report the full window.
func (a *Adapter) RenderFrame() (ggui.PhysicalRegion, error) {
	ggui.UpdateTimersAndAnimations()
	size := a.window.Size()
	region := ggui.RegionOf(size.Bounds())

	switch r := a.renderer.(type) {
	case *software.Renderer:
		n := int(size.Width) * int(size.Height)
		if len(a.frame) != n {
			a.frame = make([]ggui.Rgb8Pixel, n)
		}
		region = r.Render(a.frame, int(size.Width))
	case interface {
		Render(ggui.PhysicalSize) error
	}:
		if err := r.Render(size); err != nil {
			return ggui.PhysicalRegion{}, err
		}
	default:
		return ggui.PhysicalRegion{}, ggui.NewPlatformError("headless.RenderFrame", ggui.KindRender, ggui.ErrUnsupported)
	}

	a.frames++
	a.redrawPending = a.window.HasActiveAnimations()
	ggui.Logger().Debug("headless: frame rendered",
		slog.Int("frame", a.frames),
		slog.Any("region", region.Rect),
	)
	return region, nil
}

// Framebuffer returns the software renderer's RGB8 framebuffer, row-major
// with a stride equal to the window width. It is nil for other renderers.
func (a *Adapter) Framebuffer() []ggui.Rgb8Pixel { return a.frame }

// Image returns the last frame as an opaque RGBA image.
func (a *Adapter) Image() *image.RGBA {
	size := a.window.Size()
	switch r := a.renderer.(type) {
	case *software.Renderer:
		img := image.NewRGBA(size.Bounds())
		for i, p := range a.frame {
			img.Pix[4*i+0] = p.R
			img.Pix[4*i+1] = p.G
			img.Pix[4*i+2] = p.B
			img.Pix[4*i+3] = 0xff
		}
		return img
	case *gpucanvas.Renderer:
		return r.Frame()
	case *native2d.Renderer:
		if t, ok := r.Target().(*native2d.ImageTarget); ok {
			return t.Image()
		}
	}
	return image.NewRGBA(size.Bounds())
}

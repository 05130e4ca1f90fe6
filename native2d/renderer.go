// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native2d implements the renderer backend for platform 2D APIs.
//
// Drawing goes through a Target shaped like a Direct2D render target. On
// Windows NewHWNDTarget binds a Direct2D target to a window; everywhere
// else, and for offscreen rendering, NewImageTarget draws into memory.
//
// Solid fills use the target's own primitives. Gradients, text, paths and
// shadows are rasterized on the CPU and drawn as bitmaps.
//
// The backend registers itself as ggui.RendererNative2D.
package native2d

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/cache"
	"github.com/gogpu/ggui/internal/textlayout"
)

func init() {
	ggui.RegisterRenderer(ggui.RendererNative2D, func(cfg ggui.RendererConfig) (ggui.Renderer, error) {
		var t Target
		if cfg.Handle == nil || cfg.Handle.Kind() == ggui.HandleOffscreen {
			if cfg.Handle != nil {
				cfg.Handle.Release()
			}
			t = NewImageTarget(int(cfg.Size.Width), int(cfg.Size.Height))
		} else {
			ht, err := NewHWNDTarget(cfg.Handle, cfg.Size)
			if err != nil {
				return nil, ggui.NewPlatformError("native2d.New", ggui.KindCreate, err)
			}
			t = ht
		}
		return New(cfg.Adapter, t), nil
	})
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	engine     *textlayout.Engine
	cacheLimit int
}

// WithTextEngine sets the text engine used for measuring and drawing text.
func WithTextEngine(e *textlayout.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithBitmapCacheLimit bounds the number of bitmaps kept by
// DrawCachedPixmap. Zero uses the default.
func WithBitmapCacheLimit(n int) Option {
	return func(o *options) {
		o.cacheLimit = n
	}
}

// Renderer is the native-2D renderer. It owns its target and refers to its
// adapter weakly.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	textlayout.Queries

	adapter ggui.Weak
	target  Target
	engine  *textlayout.Engine
	cache   *cache.LRU[any, *image.RGBA]
	scale   float32
}

var _ ggui.Renderer = (*Renderer)(nil)

// New returns a renderer drawing through t, which it owns.
func New(adapter ggui.Weak, t Target, opts ...Option) *Renderer {
	o := options{engine: textlayout.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		adapter: adapter,
		target:  t,
		engine:  o.engine,
		cache:   cache.New[any, *image.RGBA](o.cacheLimit),
		scale:   1,
	}
	r.Queries = textlayout.Queries{Engine: o.engine, Scale: r.scaleFactor}
	return r
}

// Target returns the render target.
func (r *Renderer) Target() Target { return r.target }

func (r *Renderer) scaleFactor() float32 {
	s := r.scale
	r.adapter.With(func(a ggui.WindowAdapter) { s = a.Window().ScaleFactor() })
	return s
}

// SetScaleFactor sets the device pixel ratio used by BeginDraw and the
// target's DPI.
func (r *Renderer) SetScaleFactor(f float32) {
	if f <= 0 {
		return
	}
	r.scale = f
	r.target.SetDPI(DefaultDPI * f)
}

// BeginDraw starts a frame, calls f with an item renderer and finishes the
// frame. The frame is finished on every exit path, including an error or a
// panic in f. A failure to finish is joined with f's error.
func (r *Renderer) BeginDraw(f func(*ItemRenderer) error) (err error) {
	r.target.SetDPI(DefaultDPI * r.scale)
	r.target.BeginDraw()
	ir := newItemRenderer(r.target, r.scale, r.engine, r.cache)
	defer func() {
		ir.finish()
		if endErr := r.target.EndDraw(); endErr != nil {
			err = errors.Join(err, fmt.Errorf("native2d: end draw: %w", endErr))
		}
	}()
	return f(ir)
}

// Render draws the adapter's window at size. The target is resized first
// when needed. A window whose adapter is gone renders nothing.
func (r *Renderer) Render(size ggui.PhysicalSize) error {
	const op = "native2d.Render"
	var err error
	r.adapter.With(func(a ggui.WindowAdapter) {
		w := a.Window()
		if size != r.target.Size() {
			if rerr := r.target.Resize(size); rerr != nil {
				err = ggui.NewPlatformError(op, ggui.KindResize, rerr)
				return
			}
			ggui.Logger().Debug("native2d: target resized", slog.String("size", size.String()))
		}
		// The target presents whole frames.
		w.TakeDirtyRegion()
		if size.IsEmpty() {
			return
		}
		r.SetScaleFactor(w.ScaleFactor())
		derr := r.BeginDraw(func(ir *ItemRenderer) error {
			ir.target.Clear(w.Background())
			if err := w.DrawContents(func(components []ggui.ComponentOrigin) error {
				ggui.RenderComponents(components, ir)
				return nil
			}); err != nil {
				return err
			}
			if ir.StateDepth() != 0 {
				ggui.ContractViolation("unbalanced SaveState: %d states left", ir.StateDepth())
			}
			return nil
		})
		if derr != nil {
			err = ggui.NewPlatformError(op, ggui.KindRender, derr)
			return
		}
		ggui.Logger().Debug("native2d: frame rendered", slog.String("size", size.String()))
	})
	return err
}

// Close releases the target.
func (r *Renderer) Close() {
	r.target.Release()
	ggui.Logger().Info("native2d: renderer closed")
}

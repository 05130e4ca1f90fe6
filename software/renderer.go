// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements the CPU renderer backend. It draws a window's
// components into a caller-supplied RGB8 buffer (or an *image.RGBA) and
// repaints only what changed, according to the buffer's repaint policy.
//
// The backend registers itself as ggui.RendererSoftware.
package software

import (
	"image"
	"log/slog"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/cache"
	"github.com/gogpu/ggui/internal/raster"
	"github.com/gogpu/ggui/internal/textlayout"
)

func init() {
	ggui.RegisterRenderer(ggui.RendererSoftware, func(cfg ggui.RendererConfig) (ggui.Renderer, error) {
		return New(cfg.RepaintBuffer, cfg.Adapter), nil
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

// WithPixmapCacheLimit bounds the number of pixmaps kept by
// DrawCachedPixmap. Zero uses the default.
func WithPixmapCacheLimit(n int) Option {
	return func(o *options) {
		o.cacheLimit = n
	}
}

// Renderer is the software renderer. It holds a weak reference to its
// window adapter and never keeps it alive.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	textlayout.Queries

	adapter ggui.Weak
	policy  ggui.RepaintBufferType
	engine  *textlayout.Engine
	cache   *pixmapCache

	lastSize  ggui.PhysicalSize
	prevDirty ggui.PhysicalRegion
}

var _ ggui.Renderer = (*Renderer)(nil)

// New returns a software renderer for the adapter with the given repaint
// policy.
func New(policy ggui.RepaintBufferType, adapter ggui.Weak, opts ...Option) *Renderer {
	o := options{engine: textlayout.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		adapter: adapter,
		policy:  policy,
		engine:  o.engine,
		cache:   newPixmapCache(o.cacheLimit),
	}
	r.Queries = textlayout.Queries{Engine: o.engine, Scale: r.scaleFactor}
	return r
}

// RepaintBufferType returns the repaint policy.
func (r *Renderer) RepaintBufferType() ggui.RepaintBufferType { return r.policy }

// SetRepaintBufferType changes the repaint policy. The next frame is drawn
// completely.
func (r *Renderer) SetRepaintBufferType(policy ggui.RepaintBufferType) {
	if policy == r.policy {
		return
	}
	r.policy = policy
	r.lastSize = ggui.PhysicalSize{}
}

func (r *Renderer) scaleFactor() float32 {
	scale := float32(1)
	r.adapter.With(func(a ggui.WindowAdapter) {
		scale = a.Window().ScaleFactor()
	})
	return scale
}

// Render draws the window into buffer, a row-major slice of pixels with
// stride pixels per row, and returns the region that was redrawn. buffer
// must hold at least stride*height pixels and stride must be at least the
// window width; anything less is a contract violation. Render never
// allocates the output buffer.
//
// When the adapter is gone there is nothing to draw and the returned region
// is empty.
func (r *Renderer) Render(buffer []ggui.Rgb8Pixel, stride int) ggui.PhysicalRegion {
	var region ggui.PhysicalRegion
	r.adapter.With(func(a ggui.WindowAdapter) {
		w := a.Window()
		width, height := int(w.Size().Width), int(w.Size().Height)
		if stride < width || len(buffer) < stride*height {
			ggui.ContractViolation("software buffer of %d pixels with stride %d is too small for %v",
				len(buffer), stride, w.Size())
		}
		sink := &raster.RGB8Sink{Pix: buffer, Stride: stride, Width: width, Height: height}
		region = r.render(w, sink)
	})
	return region
}

// RenderRGBA draws the window into img, which holds premultiplied pixels
// and whose bounds must start at the origin and cover the window.
func (r *Renderer) RenderRGBA(img *image.RGBA) ggui.PhysicalRegion {
	var region ggui.PhysicalRegion
	r.adapter.With(func(a ggui.WindowAdapter) {
		w := a.Window()
		if img.Rect.Min != (image.Point{}) || !w.Size().Bounds().In(img.Rect) {
			ggui.ContractViolation("image bounds %v do not cover window %v", img.Rect, w.Size())
		}
		region = r.render(w, raster.RGBASink{Img: img})
	})
	return region
}

// render repaints the part of the window the repaint policy requires.
func (r *Renderer) render(w *ggui.Window, sink raster.Sink) ggui.PhysicalRegion {
	size := w.Size()
	dirty, full := w.TakeDirtyRegion()
	if size != r.lastSize {
		full = true
		r.lastSize = size
	}
	if r.policy == ggui.NewBuffer {
		full = true
	}

	bounds := size.Bounds()
	changed := dirty
	if full {
		changed = ggui.RegionOf(bounds)
	}
	area := changed
	if r.policy == ggui.SwappedBuffers {
		area = changed.Union(r.prevDirty).Intersect(bounds)
	}
	r.prevDirty = changed

	if area.IsEmpty() {
		return area
	}

	sink.Fill(area.Rect, raster.PremulOf(w.Background(), 1))
	ir := newItemRenderer(sink, area.Rect, w.ScaleFactor(), r.engine, r.cache)
	_ = w.DrawContents(func(components []ggui.ComponentOrigin) error {
		ggui.RenderComponents(components, ir)
		return nil
	})
	if ir.StateDepth() != 0 {
		ggui.ContractViolation("unbalanced SaveState: %d states left", ir.StateDepth())
	}

	ggui.Logger().Debug("software: frame rendered",
		slog.String("policy", r.policy.String()),
		slog.String("size", size.String()),
		slog.Any("region", area.Rect),
		slog.Bool("full", full),
	)
	return area
}

// pixmapCache keeps pixmaps drawn with DrawCachedPixmap across frames.
type pixmapCache struct {
	lru *cache.LRU[any, *image.RGBA]
}

func newPixmapCache(limit int) *pixmapCache {
	return &pixmapCache{lru: cache.New[any, *image.RGBA](limit)}
}

func (c *pixmapCache) get(key any) *image.RGBA {
	img, _ := c.lru.Get(key)
	return img
}

func (c *pixmapCache) put(key any, img *image.RGBA) { c.lru.Set(key, img) }

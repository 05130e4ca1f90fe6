// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"
	"sort"
	"sync"
)

// Names of the built-in renderer backends.
const (
	RendererSoftware  = "software"
	RendererGPUCanvas = "gpucanvas"
	RendererNative2D  = "native2d"
)

// RendererConfig carries what a backend needs to build a renderer for one
// window adapter.
type RendererConfig struct {
	// Adapter is the owning adapter. Renderers keep it weakly.
	Adapter Weak
	// RepaintBuffer is the software repaint policy.
	RepaintBuffer RepaintBufferType
	// Handle is the host window. Backends that present to a surface take
	// ownership of it; nil means offscreen.
	Handle *NativeWindowHandle
	// Size is the initial physical size.
	Size PhysicalSize
}

// RendererFactory builds a renderer from a config.
type RendererFactory func(cfg RendererConfig) (Renderer, error)

var (
	rendererMu sync.RWMutex
	renderers  = make(map[string]RendererFactory)
	// Preferred order for DefaultRendererName.
	rendererPriority = []string{RendererGPUCanvas, RendererNative2D, RendererSoftware}
)

// RegisterRenderer registers a backend factory under name. Backend packages
// call it from init. A second registration under the same name replaces the
// first.
func RegisterRenderer(name string, factory RendererFactory) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	renderers[name] = factory
}

// UnregisterRenderer removes a backend. Useful in tests.
func UnregisterRenderer(name string) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	delete(renderers, name)
}

// RendererNames returns the registered backend names in sorted order.
func RendererNames() []string {
	rendererMu.RLock()
	defer rendererMu.RUnlock()

	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRendererName returns the registered backend with the highest
// priority, or "" when none is registered.
func DefaultRendererName() string {
	rendererMu.RLock()
	defer rendererMu.RUnlock()

	for _, name := range rendererPriority {
		if _, ok := renderers[name]; ok {
			return name
		}
	}
	return ""
}

// NewRendererByName builds a renderer with the named backend.
func NewRendererByName(name string, cfg RendererConfig) (Renderer, error) {
	rendererMu.RLock()
	factory, ok := renderers[name]
	rendererMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return factory(cfg)
}

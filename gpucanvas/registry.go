// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/gogpu/ggui"
)

// SurfaceFactory creates a Surface presenting into the window behind handle.
// A factory that cannot serve the handle returns an error and the registry
// tries the next backend.
type SurfaceFactory func(handle *ggui.NativeWindowHandle, opts SurfaceOptions) (Surface, error)

// RegistryEntry describes a surface backend.
type RegistryEntry struct {
	Name string
	// Priority orders backends, highest first. The built-in texture surface
	// uses 100, the window surface 50 and the memory surface 10.
	Priority int
	// Kinds lists the handle kinds the backend presents to; empty means all.
	Kinds     []ggui.HandleKind
	Factory   SurfaceFactory
	Available func() bool
}

func (e *RegistryEntry) serves(kind ggui.HandleKind) bool {
	return (len(e.Kinds) == 0 || slices.Contains(e.Kinds, kind)) && e.Available()
}

// Registry holds surface backends keyed by name. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

var globalRegistry = NewRegistry()

// NewRegistry returns a registry holding the texture, window and memory
// surfaces. The window surface serves the native handle kinds this
// platform's GPU backends support; the memory surface serves offscreen
// handles only.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*RegistryEntry)}
	r.Register(TextureSurfaceName, 100, nil, newTextureSurface, nil)
	r.Register(WindowSurfaceName, 50, windowSurfaceKinds, newWindowSurface, func() bool {
		return len(windowSurfaceKinds) > 0
	})
	r.Register(MemorySurfaceName, 10, []ggui.HandleKind{ggui.HandleOffscreen}, func(*ggui.NativeWindowHandle, SurfaceOptions) (Surface, error) {
		return NewMemorySurface(), nil
	}, nil)
	return r
}

// Register adds a backend to the global registry.
func Register(name string, priority int, kinds []ggui.HandleKind, factory SurfaceFactory, available func() bool) {
	globalRegistry.Register(name, priority, kinds, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// List returns the global registry's backend names, highest priority first.
func List() []string { return globalRegistry.List() }

// Register adds or replaces a backend. A nil available means always
// available.
func (r *Registry) Register(name string, priority int, kinds []ggui.HandleKind, factory SurfaceFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	e := &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Kinds:     slices.Clone(kinds),
		Factory:   factory,
		Available: available,
	}
	r.mu.Lock()
	r.entries[name] = e
	r.mu.Unlock()
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()
}

// List returns every backend name, highest priority first. Equal
// priorities sort by name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ordered(func(*RegistryEntry) bool { return true })
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	c := *e
	return &c, true
}

// NewSurface creates a surface for handle with the first backend, in
// priority order, that serves its kind and succeeds. It returns the
// backend's name. When every candidate fails the errors are joined.
func (r *Registry) NewSurface(handle *ggui.NativeWindowHandle, opts SurfaceOptions) (Surface, string, error) {
	kind := handle.Kind()
	r.mu.RLock()
	names := r.ordered(func(e *RegistryEntry) bool { return e.serves(kind) })
	r.mu.RUnlock()
	if len(names) == 0 {
		return nil, "", ErrNoSurfaceBackend
	}

	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, handle, opts)
		if err == nil {
			return s, name, nil
		}
		ggui.Logger().Debug("gpucanvas: surface backend skipped", "backend", name, "err", err)
		errs = append(errs, err)
	}
	return nil, "", errors.Join(errs...)
}

// NewSurfaceByName creates a surface with the named backend.
func (r *Registry) NewSurfaceByName(name string, handle *ggui.NativeWindowHandle, opts SurfaceOptions) (Surface, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	switch {
	case !ok:
		return nil, &BackendNotFoundError{Name: name}
	case !e.serves(handle.Kind()):
		return nil, &BackendUnavailableError{Name: name}
	}
	return e.Factory(handle, opts)
}

// ordered returns the names of entries accepted by keep. r.mu must be held.
func (r *Registry) ordered(keep func(*RegistryEntry) bool) []string {
	var entries []*RegistryEntry
	for _, e := range r.entries {
		if keep(e) {
			entries = append(entries, e)
		}
	}
	slices.SortFunc(entries, func(a, b *RegistryEntry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// BackendNotFoundError reports an unregistered backend name.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "gpucanvas: surface backend not found: " + e.Name
}

// BackendUnavailableError reports a backend that cannot serve the handle
// on this system.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "gpucanvas: surface backend unavailable: " + e.Name
}

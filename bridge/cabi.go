// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin || linux

package bridge

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/gogpu/ggui"
)

// CWindowAdapterVTable holds C function pointers implementing a window
// adapter. The C signatures are:
//
//	void release(void *ctx);
//	void get_renderer(void *ctx, RendererHandle *out);
//	void show(void *ctx);
//	void hide(void *ctx);
//	void request_redraw(void *ctx);
//
// where RendererHandle is a struct of two pointers.
type CWindowAdapterVTable struct {
	Release       uintptr
	GetRenderer   uintptr
	Show          uintptr
	Hide          uintptr
	RequestRedraw uintptr
}

// CPlatformVTable holds C function pointers implementing a platform:
//
//	void release(void *ctx);
//	void window_factory(void *ctx, void *out);
//
// window_factory passes out unchanged to the constructor returned by
// WindowAdapterConstructor.
type CPlatformVTable struct {
	Release       uintptr
	WindowFactory uintptr
}

func registerFunc(fptr any, addr uintptr, name string) {
	if addr == 0 {
		ggui.ContractViolation("bridge: C vtable has a null %s", name)
	}
	purego.RegisterFunc(fptr, addr)
}

// Bind wraps the C functions in a WindowAdapterVTable. A null function
// pointer is a contract violation.
func (c CWindowAdapterVTable) Bind() WindowAdapterVTable {
	var (
		release, show, hide, redraw func(ctx unsafe.Pointer)
		getRenderer                 func(ctx unsafe.Pointer, out *RendererHandle)
	)
	registerFunc(&release, c.Release, "release")
	registerFunc(&getRenderer, c.GetRenderer, "get_renderer")
	registerFunc(&show, c.Show, "show")
	registerFunc(&hide, c.Hide, "hide")
	registerFunc(&redraw, c.RequestRedraw, "request_redraw")
	return WindowAdapterVTable{
		Release: release,
		GetRenderer: func(ctx unsafe.Pointer) RendererHandle {
			var h RendererHandle
			getRenderer(ctx, &h)
			return h
		},
		Show:          show,
		Hide:          hide,
		RequestRedraw: redraw,
	}
}

// Bind wraps the C functions in a PlatformVTable.
func (c CPlatformVTable) Bind() PlatformVTable {
	var (
		release func(ctx unsafe.Pointer)
		factory func(ctx unsafe.Pointer, out *ggui.Rc)
	)
	registerFunc(&release, c.Release, "release")
	registerFunc(&factory, c.WindowFactory, "window_factory")
	return PlatformVTable{Release: release, WindowFactory: factory}
}

// NewCWindowAdapter is NewWindowAdapter for a C vtable.
func NewCWindowAdapter(ctx unsafe.Pointer, c CWindowAdapterVTable) ggui.Rc {
	return NewWindowAdapter(ctx, c.Bind())
}

// RegisterCPlatform is RegisterPlatform for a C vtable.
func RegisterCPlatform(ctx unsafe.Pointer, c CPlatformVTable) {
	RegisterPlatform(ctx, c.Bind())
}

var (
	constructorOnce sync.Once
	constructor     uintptr
)

// WindowAdapterConstructor returns a C function pointer with the signature
//
//	void window_adapter_new(void *ctx, const CWindowAdapterVTable *vt, void *out);
//
// A platform's window_factory calls it with the out pointer it received to
// store the new adapter.
func WindowAdapterConstructor() uintptr {
	constructorOnce.Do(func() {
		constructor = purego.NewCallback(func(ctx, vt, out uintptr) {
			rc := NewCWindowAdapter(unsafe.Pointer(ctx), *(*CWindowAdapterVTable)(unsafe.Pointer(vt)))
			*(*ggui.Rc)(unsafe.Pointer(out)) = rc
		})
	})
	return constructor
}

// Library is a host library opened with dlopen.
type Library struct {
	path   string
	handle uintptr
}

// Open loads the shared library at path.
func Open(path string) (*Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("bridge: load %s: %w", path, err)
	}
	ggui.Logger().Info("bridge: library loaded", "path", path)
	return &Library{path: path, handle: h}, nil
}

// Symbol returns the address of an exported symbol.
func (l *Library) Symbol(name string) (uintptr, error) {
	sym, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("bridge: %s in %s: %w", name, l.path, err)
	}
	return sym, nil
}

// WindowAdapterVTable looks up prefix_release, prefix_get_renderer,
// prefix_show, prefix_hide and prefix_request_redraw.
func (l *Library) WindowAdapterVTable(prefix string) (CWindowAdapterVTable, error) {
	var vt CWindowAdapterVTable
	for _, s := range []struct {
		addr *uintptr
		name string
	}{
		{&vt.Release, "release"},
		{&vt.GetRenderer, "get_renderer"},
		{&vt.Show, "show"},
		{&vt.Hide, "hide"},
		{&vt.RequestRedraw, "request_redraw"},
	} {
		sym, err := l.Symbol(prefix + "_" + s.name)
		if err != nil {
			return CWindowAdapterVTable{}, err
		}
		*s.addr = sym
	}
	return vt, nil
}

// PlatformVTable looks up prefix_release and prefix_window_factory.
func (l *Library) PlatformVTable(prefix string) (CPlatformVTable, error) {
	release, err := l.Symbol(prefix + "_release")
	if err != nil {
		return CPlatformVTable{}, err
	}
	factory, err := l.Symbol(prefix + "_window_factory")
	if err != nil {
		return CPlatformVTable{}, err
	}
	return CPlatformVTable{Release: release, WindowFactory: factory}, nil
}

// Close unloads the library.
func (l *Library) Close() error {
	if err := purego.Dlclose(l.handle); err != nil {
		return fmt.Errorf("bridge: close %s: %w", l.path, err)
	}
	return nil
}

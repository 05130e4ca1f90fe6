// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bridge lets a host outside Go implement window adapters and the
// platform through tables of callbacks.
//
// Every callback receives the opaque context pointer the table was
// registered with. The bridge owns that context from registration on: it
// never copies it and calls Release on it exactly once, when the adapter or
// platform is destroyed.
//
// Callbacks run synchronously on the calling goroutine and must not re-enter
// the same adapter. A failing or misbehaving callback is not caught.
//
// The vtable layouts are a fixed ABI. Adding, removing or reordering a
// callback is a breaking change.
package bridge

import (
	"unsafe"

	"github.com/gogpu/ggui"
)

// WindowAdapterVTable is the set of callbacks backing a bridged window
// adapter.
type WindowAdapterVTable struct {
	// Release frees ctx. Called exactly once, when the adapter is destroyed.
	Release func(ctx unsafe.Pointer)

	// GetRenderer returns the adapter's renderer. The handle must stay valid
	// for the adapter's whole lifetime and must not change between calls.
	GetRenderer func(ctx unsafe.Pointer) RendererHandle

	Show          func(ctx unsafe.Pointer)
	Hide          func(ctx unsafe.Pointer)
	RequestRedraw func(ctx unsafe.Pointer)
}

func (vt *WindowAdapterVTable) check() {
	if vt.Release == nil || vt.GetRenderer == nil || vt.Show == nil || vt.Hide == nil || vt.RequestRedraw == nil {
		ggui.ContractViolation("bridge: window adapter vtable has a nil callback")
	}
}

// windowAdapter is a ggui.WindowAdapter whose behavior lives on the other
// side of the bridge.
type windowAdapter struct {
	window *ggui.Window
	ctx    unsafe.Pointer
	vt     WindowAdapterVTable
}

var (
	_ ggui.WindowAdapter = (*windowAdapter)(nil)
	_ ggui.Releaser      = (*windowAdapter)(nil)
)

// NewWindowAdapter returns the only strong reference to a new adapter backed
// by vt. The adapter takes ownership of ctx; dropping the last reference
// calls vt.Release(ctx).
//
// A nil callback is a contract violation.
func NewWindowAdapter(ctx unsafe.Pointer, vt WindowAdapterVTable) ggui.Rc {
	vt.check()
	return ggui.NewRcCyclic(func(self ggui.Weak) ggui.WindowAdapter {
		return &windowAdapter{
			window: ggui.NewWindow(self),
			ctx:    ctx,
			vt:     vt,
		}
	})
}

func (a *windowAdapter) Window() *ggui.Window { return a.window }

// Renderer reconstructs the renderer from the handle GetRenderer returns.
// The handle is not validated.
func (a *windowAdapter) Renderer() ggui.Renderer {
	return a.vt.GetRenderer(a.ctx).Renderer()
}

func (a *windowAdapter) Show() error {
	a.vt.Show(a.ctx)
	return nil
}

func (a *windowAdapter) Hide() error {
	a.vt.Hide(a.ctx)
	return nil
}

func (a *windowAdapter) RequestRedraw() { a.vt.RequestRedraw(a.ctx) }

func (a *windowAdapter) Release() {
	ctx := a.ctx
	a.ctx = nil
	a.vt.Release(ctx)
	ggui.Logger().Debug("bridge: window adapter released")
}

// HasActiveAnimations reports whether the window behind rc has running
// animations.
func HasActiveAnimations(rc ggui.Rc) bool {
	return rc.Adapter().Window().HasActiveAnimations()
}

// UpdateTimersAndAnimations advances the toolkit's timers and animations.
// Hosts call it once per frame.
func UpdateTimersAndAnimations() {
	ggui.UpdateTimersAndAnimations()
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"errors"
	"unsafe"

	"github.com/gogpu/ggui"
)

// ErrNoAdapter is returned when a window factory callback did not produce
// an adapter.
var ErrNoAdapter = errors.New("bridge: window factory produced no adapter")

// PlatformVTable is the set of callbacks backing a bridged platform.
type PlatformVTable struct {
	// Release frees ctx. Called exactly once, when the platform is closed.
	Release func(ctx unsafe.Pointer)

	// WindowFactory stores a new adapter in out, typically one built with
	// NewWindowAdapter. It must produce a distinct adapter on every call;
	// ownership of the reference passes to the caller.
	WindowFactory func(ctx unsafe.Pointer, out *ggui.Rc)
}

// Platform is a ggui.Platform backed by a PlatformVTable.
type Platform struct {
	ctx      unsafe.Pointer
	vt       PlatformVTable
	released bool
}

var _ ggui.Platform = (*Platform)(nil)

// NewPlatform returns a platform that owns ctx. A nil callback is a contract
// violation.
func NewPlatform(ctx unsafe.Pointer, vt PlatformVTable) *Platform {
	if vt.Release == nil || vt.WindowFactory == nil {
		ggui.ContractViolation("bridge: platform vtable has a nil callback")
	}
	return &Platform{ctx: ctx, vt: vt}
}

// CreateWindowAdapter implements ggui.Platform.
func (p *Platform) CreateWindowAdapter() (ggui.Rc, error) {
	if p.released {
		ggui.ContractViolation("bridge: use of a released platform")
	}
	var rc ggui.Rc
	p.vt.WindowFactory(p.ctx, &rc)
	if !rc.IsValid() {
		return ggui.Rc{}, ggui.NewPlatformError("bridge.CreateWindowAdapter", ggui.KindCreate, ErrNoAdapter)
	}
	return rc, nil
}

// Close releases the platform's context. Later calls do nothing.
func (p *Platform) Close() {
	if p.released {
		return
	}
	p.released = true
	ctx := p.ctx
	p.ctx = nil
	p.vt.Release(ctx)
}

// RegisterPlatform installs a bridged platform as the process-wide
// platform. When a platform is already installed the context is released
// and RegisterPlatform panics; a host registers its platform once, at
// startup.
func RegisterPlatform(ctx unsafe.Pointer, vt PlatformVTable) {
	p := NewPlatform(ctx, vt)
	if err := ggui.SetPlatform(p); err != nil {
		p.Close()
		ggui.ContractViolation("bridge: RegisterPlatform: %v", err)
	}
}

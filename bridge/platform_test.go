// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/ggui"
)

type hostPlatform struct {
	released int
	windows  []*hostAdapter
	empty    bool
}

func (p *hostPlatform) vtable() PlatformVTable {
	return PlatformVTable{
		Release: func(ctx unsafe.Pointer) { (*hostPlatform)(ctx).released++ },
		WindowFactory: func(ctx unsafe.Pointer, out *ggui.Rc) {
			hp := (*hostPlatform)(ctx)
			if hp.empty {
				return
			}
			host := &hostAdapter{}
			hp.windows = append(hp.windows, host)
			*out = NewWindowAdapter(unsafe.Pointer(host), host.vtable())
		},
	}
}

func TestPlatformCreatesDistinctAdapters(t *testing.T) {
	hp := &hostPlatform{}
	p := NewPlatform(unsafe.Pointer(hp), hp.vtable())

	a, err := p.CreateWindowAdapter()
	if err != nil {
		t.Fatalf("CreateWindowAdapter() error = %v", err)
	}
	b, err := p.CreateWindowAdapter()
	if err != nil {
		t.Fatalf("CreateWindowAdapter() error = %v", err)
	}
	if a.Same(b) {
		t.Error("CreateWindowAdapter() returned the same adapter twice")
	}
	a.Drop()
	b.Drop()
	for i, w := range hp.windows {
		if len(w.calls) != 1 || w.calls[0] != "release" {
			t.Errorf("window %d calls = %v, want [release]", i, w.calls)
		}
	}

	p.Close()
	p.Close()
	if hp.released != 1 {
		t.Errorf("released = %d, want 1", hp.released)
	}
	expectPanic(t, "released platform", func() { _, _ = p.CreateWindowAdapter() })
}

func TestPlatformFactoryWithoutAdapter(t *testing.T) {
	hp := &hostPlatform{empty: true}
	p := NewPlatform(unsafe.Pointer(hp), hp.vtable())
	defer p.Close()

	_, err := p.CreateWindowAdapter()
	if !errors.Is(err, ErrNoAdapter) || !ggui.IsKind(err, ggui.KindCreate) {
		t.Errorf("CreateWindowAdapter() error = %v, want ErrNoAdapter", err)
	}
}

// The process-wide platform can be set once per test binary, so both
// registrations live in one test.
func TestRegisterPlatformOnce(t *testing.T) {
	first := &hostPlatform{}
	RegisterPlatform(unsafe.Pointer(first), first.vtable())

	second := &hostPlatform{}
	expectPanic(t, "platform already set", func() {
		RegisterPlatform(unsafe.Pointer(second), second.vtable())
	})
	if second.released != 1 {
		t.Errorf("second platform released = %d, want 1", second.released)
	}
	if first.released != 0 {
		t.Errorf("first platform released = %d, want 0", first.released)
	}

	rc, err := ggui.CreateWindowAdapter()
	if err != nil {
		t.Fatalf("CreateWindowAdapter() error = %v", err)
	}
	defer rc.Drop()
	if len(first.windows) != 1 || len(second.windows) != 0 {
		t.Errorf("windows = %d, %d, want 1, 0", len(first.windows), len(second.windows))
	}
}

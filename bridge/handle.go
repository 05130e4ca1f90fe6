// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"unsafe"

	"github.com/gogpu/ggui"
)

// RendererHandle is a type-erased ggui.Renderer: the two words of the
// interface value, carried across the bridge as opaque pointers.
//
// A handle is only as valid as the renderer it was taken from. The renderer
// must stay reachable and unchanged for as long as any adapter may return
// the handle, which in practice means for the adapter's whole lifetime.
// Reconstructing a renderer from a dangling or forged handle is undefined
// behavior; Renderer performs no validation.
type RendererHandle struct {
	Type unsafe.Pointer
	Data unsafe.Pointer
}

// HandleOf erases r into a handle.
func HandleOf(r ggui.Renderer) RendererHandle {
	return *(*RendererHandle)(unsafe.Pointer(&r))
}

// IsNil reports whether h was taken from a nil renderer.
func (h RendererHandle) IsNil() bool { return h.Type == nil }

// Renderer reconstructs the renderer h was taken from.
func (h RendererHandle) Renderer() ggui.Renderer {
	return *(*ggui.Renderer)(unsafe.Pointer(&h))
}

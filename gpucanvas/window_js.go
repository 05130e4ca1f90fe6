// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js && wasm

package gpucanvas

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
)

// The browser presents through the canvas drawer; no native window kind
// is served.
var windowSurfaceKinds []ggui.HandleKind

func openSwapchain(uintptr, uintptr, gputypes.TextureFormat) (swapchain, error) {
	return nil, ErrUnsupportedHandle
}

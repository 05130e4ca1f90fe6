// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ggui is the window-adapter and renderer-backend layer of the gogpu
// retained-mode UI toolkit.
//
// # Overview
//
// ggui sits between the renderer-agnostic toolkit core and the windowing
// system. It defines how the core obtains a window, binds it to a host and
// rasterizes UI content through interchangeable renderer backends:
//
//   - software/   CPU rasterizer writing premultiplied RGB8 or RGBA pixels
//   - gpucanvas/  CPU-raster-then-present pipeline over a host GPU device
//   - native2d/   item renderer over a Direct2D-shaped render target
//
// The core talks to every backend through the same seams: [WindowAdapter]
// (one per logical window), [Renderer] (text measurement queries) and
// [ItemRenderer] (drawing primitives plus a save/restore state stack).
//
// # Ownership
//
// A window adapter is reference counted. The platform hands out a strong [Rc];
// the window state, the renderer and host callbacks keep [Weak] references and
// check liveness before use. When the last strong reference is dropped the
// adapter's [Releaser] hook runs exactly once.
//
//	rc, err := ggui.CreateWindowAdapter()
//	if err != nil {
//		return err
//	}
//	defer rc.Drop()
//	rc.Adapter().Window().SetComponents(components)
//	rc.Adapter().Show()
//
// # Platforms
//
// The process-wide [Platform] is installed once with [SetPlatform]. A second
// installation fails with [ErrPlatformAlreadySet] and keeps the first one.
// headless/ provides an offscreen platform, ebitenhost/ a desktop one and
// bridge/ adapts host-provided vtables (including a C ABI).
//
// # Threading
//
// Adapters, windows and renderers are not safe for concurrent use. All calls
// happen on the thread that owns the window's event loop. Only the platform
// slot and the logger are safe to access from any goroutine.
//
// # Logging
//
// ggui is silent by default. Call [SetLogger] to receive lifecycle and frame
// diagnostics through log/slog.
package ggui

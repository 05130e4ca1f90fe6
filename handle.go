// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"
	"unsafe"
)

// HandleKind identifies the windowing system a raw handle belongs to.
type HandleKind int

const (
	// HandleOffscreen has no host window; surfaces render to memory.
	HandleOffscreen HandleKind = iota
	// HandleWin32 is a Win32 HWND.
	HandleWin32
	// HandleXcb is an X11 window reached through an XCB connection.
	HandleXcb
	// HandleWayland is a Wayland wl_surface.
	HandleWayland
	// HandleAppKit is an AppKit NSView.
	HandleAppKit
)

func (k HandleKind) String() string {
	switch k {
	case HandleOffscreen:
		return "offscreen"
	case HandleWin32:
		return "win32"
	case HandleXcb:
		return "xcb"
	case HandleWayland:
		return "wayland"
	case HandleAppKit:
		return "appkit"
	default:
		return fmt.Sprintf("HandleKind(%d)", int(k))
	}
}

// RawWindowHandle is a platform window handle variant.
type RawWindowHandle interface {
	Kind() HandleKind
	rawWindow()
}

// RawDisplayHandle is a platform display handle variant.
type RawDisplayHandle interface {
	Kind() HandleKind
	rawDisplay()
}

// Win32WindowHandle identifies a Win32 window.
type Win32WindowHandle struct {
	HWND      unsafe.Pointer
	HInstance unsafe.Pointer
}

// WindowsDisplayHandle is the Windows display; it carries no data.
type WindowsDisplayHandle struct{}

// XcbWindowHandle identifies an X11 window.
type XcbWindowHandle struct {
	Window   uint32
	VisualID uint32
}

// XcbDisplayHandle identifies an XCB connection and screen.
type XcbDisplayHandle struct {
	Connection unsafe.Pointer
	Screen     int
}

// WaylandWindowHandle identifies a wl_surface.
type WaylandWindowHandle struct {
	Surface unsafe.Pointer
}

// WaylandDisplayHandle identifies a wl_display.
type WaylandDisplayHandle struct {
	Display unsafe.Pointer
}

// AppKitWindowHandle identifies an NSView and its NSWindow.
type AppKitWindowHandle struct {
	NSView   unsafe.Pointer
	NSWindow unsafe.Pointer
}

// AppKitDisplayHandle is the AppKit display; it carries no data.
type AppKitDisplayHandle struct{}

// OffscreenHandle stands for a window that only exists in memory.
type OffscreenHandle struct{}

func (Win32WindowHandle) Kind() HandleKind    { return HandleWin32 }
func (WindowsDisplayHandle) Kind() HandleKind { return HandleWin32 }
func (XcbWindowHandle) Kind() HandleKind      { return HandleXcb }
func (XcbDisplayHandle) Kind() HandleKind     { return HandleXcb }
func (WaylandWindowHandle) Kind() HandleKind  { return HandleWayland }
func (WaylandDisplayHandle) Kind() HandleKind { return HandleWayland }
func (AppKitWindowHandle) Kind() HandleKind   { return HandleAppKit }
func (AppKitDisplayHandle) Kind() HandleKind  { return HandleAppKit }
func (OffscreenHandle) Kind() HandleKind      { return HandleOffscreen }

func (Win32WindowHandle) rawWindow()     {}
func (XcbWindowHandle) rawWindow()       {}
func (WaylandWindowHandle) rawWindow()   {}
func (AppKitWindowHandle) rawWindow()    {}
func (OffscreenHandle) rawWindow()       {}
func (WindowsDisplayHandle) rawDisplay() {}
func (XcbDisplayHandle) rawDisplay()     {}
func (WaylandDisplayHandle) rawDisplay() {}
func (AppKitDisplayHandle) rawDisplay()  {}
func (OffscreenHandle) rawDisplay()      {}

// NativeWindowHandle pairs a window handle with its display handle. It is
// handed to a renderer backend, which owns it until Release.
type NativeWindowHandle struct {
	window   RawWindowHandle
	display  RawDisplayHandle
	released bool
}

// NewWin32Handle wraps a Win32 window.
func NewWin32Handle(hwnd, hinstance unsafe.Pointer) *NativeWindowHandle {
	return &NativeWindowHandle{
		window:  Win32WindowHandle{HWND: hwnd, HInstance: hinstance},
		display: WindowsDisplayHandle{},
	}
}

// NewX11Handle wraps an X11 window on an XCB connection.
func NewX11Handle(window, visualID uint32, connection unsafe.Pointer, screen int) *NativeWindowHandle {
	return &NativeWindowHandle{
		window:  XcbWindowHandle{Window: window, VisualID: visualID},
		display: XcbDisplayHandle{Connection: connection, Screen: screen},
	}
}

// NewWaylandHandle wraps a Wayland surface and display.
func NewWaylandHandle(surface, display unsafe.Pointer) *NativeWindowHandle {
	return &NativeWindowHandle{
		window:  WaylandWindowHandle{Surface: surface},
		display: WaylandDisplayHandle{Display: display},
	}
}

// NewAppKitHandle wraps an AppKit view and window.
func NewAppKitHandle(nsview, nswindow unsafe.Pointer) *NativeWindowHandle {
	return &NativeWindowHandle{
		window:  AppKitWindowHandle{NSView: nsview, NSWindow: nswindow},
		display: AppKitDisplayHandle{},
	}
}

// NewOffscreenHandle returns a handle for a window without a host.
func NewOffscreenHandle() *NativeWindowHandle {
	return &NativeWindowHandle{window: OffscreenHandle{}, display: OffscreenHandle{}}
}

// Kind returns the handle's windowing system.
func (h *NativeWindowHandle) Kind() HandleKind {
	h.check()
	return h.window.Kind()
}

// Window returns the window handle variant.
func (h *NativeWindowHandle) Window() RawWindowHandle {
	h.check()
	return h.window
}

// Display returns the display handle variant.
func (h *NativeWindowHandle) Display() RawDisplayHandle {
	h.check()
	return h.display
}

// Released reports whether Release was called.
func (h *NativeWindowHandle) Released() bool { return h.released }

// Release ends the handle's life. Later calls do nothing; any other use
// after release is a contract violation.
func (h *NativeWindowHandle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.window, h.display = nil, nil
}

func (h *NativeWindowHandle) check() {
	if h == nil || h.released {
		ContractViolation("use of a released native window handle")
	}
}

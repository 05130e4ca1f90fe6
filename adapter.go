// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "fmt"

// WindowAdapter binds one logical window to the host windowing system.
//
// An adapter owns the toolkit window state and exactly one Renderer, which
// lives as long as the adapter. Adapters are reference counted through Rc;
// when the last reference is dropped an adapter implementing Releaser frees
// its host resources.
//
// Implementations are not safe for concurrent use.
type WindowAdapter interface {
	// Window returns the toolkit state of this window. No side effects.
	Window() *Window

	// Renderer returns the renderer owned by this adapter. The same value is
	// returned for the adapter's whole lifetime.
	Renderer() Renderer

	// Show makes the window visible.
	Show() error

	// Hide hides the window.
	Hide() error

	// RequestRedraw asks the host to schedule a repaint. It never blocks,
	// may coalesce several requests and is safe to call from event
	// callbacks.
	RequestRedraw()
}

// FontRequest selects a font for text measurement and drawing.
type FontRequest struct {
	// Family is a font family name. Empty selects the default sans-serif.
	Family string
	// PixelSize is the size in logical pixels. Zero selects the renderer's
	// default size.
	PixelSize float32
	// Weight is the CSS weight, 100 to 900. Zero means 400.
	Weight int
	// Italic selects an italic face.
	Italic bool
	// LetterSpacing is extra space after every character, in logical pixels.
	LetterSpacing float32
}

// Renderer answers text measurement queries for the toolkit core. The
// queries are pure: they never mutate the renderer or the items passed in.
type Renderer interface {
	// TextSize returns the size of text laid out with font. A maxWidth of
	// zero or less means unconstrained; otherwise lines wrap at maxWidth.
	// scale is the window's scale factor.
	TextSize(font FontRequest, text string, maxWidth float32, scale float32) Size

	// TextInputByteOffsetForPosition maps a point in the input's local
	// coordinates to the byte offset of the nearest caret position.
	TextInputByteOffsetForPosition(ti *TextInput, pos Point) int

	// TextInputCursorRectForByteOffset returns the caret rectangle for a
	// byte offset, in the input's local coordinates.
	TextInputCursorRectForByteOffset(ti *TextInput, offset int) Rect

	// DefaultFontSize is the pixel size used when a FontRequest leaves it
	// unset.
	DefaultFontSize() float32
}

// DefaultFontSize is the logical pixel size every built-in renderer uses for
// FontRequests without a size.
const DefaultFontSize float32 = 12

// RepaintBufferType tells the software renderer what the host's buffer
// contains when a frame starts.
type RepaintBufferType int

const (
	// NewBuffer means the buffer content is undefined; every frame is
	// drawn in full.
	NewBuffer RepaintBufferType = iota
	// ReusedBuffer means the buffer holds the previous frame; only the
	// dirty region is redrawn.
	ReusedBuffer
	// SwappedBuffers means the host alternates between two buffers; the
	// dirty regions of the last two frames are redrawn.
	SwappedBuffers
)

func (t RepaintBufferType) String() string {
	switch t {
	case NewBuffer:
		return "new"
	case ReusedBuffer:
		return "reused"
	case SwappedBuffers:
		return "swapped"
	default:
		return fmt.Sprintf("RepaintBufferType(%d)", int(t))
	}
}

// ParseRepaintBufferType parses "new", "reused" or "swapped".
func ParseRepaintBufferType(s string) (RepaintBufferType, error) {
	switch s {
	case "new", "":
		return NewBuffer, nil
	case "reused":
		return ReusedBuffer, nil
	case "swapped":
		return SwappedBuffers, nil
	}
	return NewBuffer, fmt.Errorf("ggui: unknown repaint buffer type %q", s)
}

// RepaintBufferTypeFromAge maps a host buffer age (0, 1 or 2) to a policy.
// Any other age is a contract violation.
func RepaintBufferTypeFromAge(age uint32) RepaintBufferType {
	switch age {
	case 0:
		return NewBuffer
	case 1:
		return ReusedBuffer
	case 2:
		return SwappedBuffers
	}
	ContractViolation("invalid buffer age %d", age)
	return NewBuffer
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textlayout

import (
	"unicode/utf8"

	"github.com/gogpu/ggui"
)

// TextSize implements the measurement half of ggui.Renderer.
func (e *Engine) TextSize(req ggui.FontRequest, text string, maxWidth, scale float32) ggui.Size {
	return e.Layout(req, text, maxWidth, scale).Size()
}

// LayoutTextInput lays out a text input inside its geometry and returns the
// layout with its line origins.
func (e *Engine) LayoutTextInput(ti *ggui.TextInput, scale float32) (*Layout, []ggui.Point) {
	var wrap float32
	if ti.Wrap == ggui.TextWordWrap {
		wrap = ti.Bounds.Width
	}
	l := e.Layout(ti.Font, ti.Text(), wrap, scale)
	return l, l.Place(ti.Bounds.Size(), ti.HAlign, ti.VAlign)
}

// ByteOffsetForPosition maps a point local to the input to a byte offset.
func (e *Engine) ByteOffsetForPosition(ti *ggui.TextInput, pos ggui.Point, scale float32) int {
	l, origins := e.LayoutTextInput(ti, scale)
	return l.OffsetAt(pos, origins)
}

// CursorRectForByteOffset returns the caret rectangle local to the input.
func (e *Engine) CursorRectForByteOffset(ti *ggui.TextInput, offset int, scale float32) ggui.Rect {
	l, origins := e.LayoutTextInput(ti, scale)
	return l.CaretRect(offset, ti.CursorWidth, origins)
}

// Queries adapts an Engine to ggui.Renderer for a renderer whose scale
// factor comes from its window.
type Queries struct {
	Engine *Engine
	// Scale returns the current scale factor.
	Scale func() float32
}

func (q Queries) scale() float32 {
	if q.Scale == nil {
		return 1
	}
	return q.Scale()
}

// TextSize implements ggui.Renderer.
func (q Queries) TextSize(font ggui.FontRequest, text string, maxWidth, scale float32) ggui.Size {
	return q.Engine.TextSize(font, text, maxWidth, scale)
}

// TextInputByteOffsetForPosition implements ggui.Renderer.
func (q Queries) TextInputByteOffsetForPosition(ti *ggui.TextInput, pos ggui.Point) int {
	return q.Engine.ByteOffsetForPosition(ti, pos, q.scale())
}

// TextInputCursorRectForByteOffset implements ggui.Renderer.
func (q Queries) TextInputCursorRectForByteOffset(ti *ggui.TextInput, offset int) ggui.Rect {
	return q.Engine.CursorRectForByteOffset(ti, offset, q.scale())
}

// DefaultFontSize implements ggui.Renderer.
func (q Queries) DefaultFontSize() float32 { return ggui.DefaultFontSize }

func decodeRune(s string, off int) (rune, int) {
	return utf8.DecodeRuneInString(s[off:])
}

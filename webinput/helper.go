// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webinput feeds browser keyboard, composition, focus and clipboard
// events into a window.
//
// A canvas alone does not bring up the on-screen keyboard on mobile devices
// and does not see input method composition. The Helper therefore listens
// on a hidden text field placed over the canvas. Named and printable keys
// arrive as keydown and keyup; text typed through an input method or a
// virtual keyboard arrives as input and composition events.
//
// Helper holds the event logic and runs anywhere. Attach, available in
// js/wasm builds, creates the hidden field and wires DOM listeners to it.
package webinput

import (
	"github.com/gogpu/ggui"
)

// DOM is the part of the page the Helper drives.
type DOM interface {
	// ClearInput empties the hidden field.
	ClearInput()
	// SetInputVisible shows or hides the hidden field.
	SetInputVisible(visible bool)
	// FocusInput gives the hidden field keyboard focus.
	FocusInput()
	// InputHasFocus reports whether the hidden field has focus.
	InputHasFocus() bool
	// FocusCanvas gives the canvas keyboard focus.
	FocusCanvas()
	// CanvasHasFocus reports whether the canvas has focus.
	CanvasHasFocus() bool
	// WriteClipboard stores text on the system clipboard.
	WriteClipboard(text string)
	// ReadClipboard reads the clipboard and calls done with its text.
	// done may run after ReadClipboard returns.
	ReadClipboard(done func(text string))
}

// KeyboardEvent is a keydown or keyup event.
type KeyboardEvent struct {
	// Key is KeyboardEvent.key.
	Key         string
	Shift       bool
	IsComposing bool
}

// InputEvent is an input event of the hidden field.
type InputEvent struct {
	Data string
	// HasData is false when InputEvent.data is null.
	HasData     bool
	IsComposing bool
	InputType   string
}

// CompositionEvent is a compositionupdate or compositionend event.
type CompositionEvent struct {
	Data    string
	HasData bool
}

// Option configures a Helper.
type Option func(*Helper)

// WithWake sets the function called after every handled event, typically
// waking the host event loop.
func WithWake(f func()) Option {
	return func(h *Helper) { h.wake = f }
}

// Helper turns browser events into window events for one window.
//
// Helper is not safe for concurrent use; browsers deliver events on one
// thread.
type Helper struct {
	window ggui.Weak
	dom    DOM
	wake   func()

	// hasKeyDown is set between a non-composing keydown and its keyup.
	hasKeyDown bool
}

// New returns a helper delivering events to the window of the adapter
// behind w.
func New(w ggui.Weak, dom DOM, opts ...Option) *Helper {
	h := &Helper{window: w, dom: dom}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Helper) woke() {
	if h.wake != nil {
		h.wake()
	}
}

func (h *Helper) withWindow(f func(w *ggui.Window)) bool {
	return h.window.With(func(a ggui.WindowAdapter) { f(a.Window()) })
}

// EventText returns the key string of e: a single printable character or
// one of the special key strings of package ggui. Composing events and keys
// with no mapping report false.
func EventText(e KeyboardEvent) (string, bool) {
	if e.IsComposing {
		return "", false
	}
	return ggui.KeyFromName(e.Key, e.Shift)
}

// KeyDown handles a keydown event. It reports whether the event was
// consumed and its default action should be prevented.
func (h *Helper) KeyDown(e KeyboardEvent) bool {
	defer h.woke()
	text, ok := EventText(e)
	if !ok {
		return false
	}
	return h.withWindow(func(w *ggui.Window) {
		h.hasKeyDown = true
		w.DispatchEvent(ggui.KeyPressedEvent{Text: text})
	})
}

// KeyUp handles a keyup event. It reports whether the event was consumed.
func (h *Helper) KeyUp(e KeyboardEvent) bool {
	defer h.woke()
	text, ok := EventText(e)
	if !ok {
		return false
	}
	return h.withWindow(func(w *ggui.Window) {
		h.hasKeyDown = false
		w.DispatchEvent(ggui.KeyReleasedEvent{Text: text})
	})
}

// Input handles an input event. Text entered without a key press, as from
// a virtual keyboard, is delivered as a press and release. The hidden field
// is cleared after every non-composing input.
func (h *Helper) Input(e InputEvent) {
	defer h.woke()
	if !e.HasData || e.IsComposing || e.InputType == "insertCompositionText" {
		return
	}
	h.withWindow(func(w *ggui.Window) {
		if !h.hasKeyDown {
			w.DispatchEvent(ggui.KeyPressedEvent{Text: e.Data})
			w.DispatchEvent(ggui.KeyReleasedEvent{Text: e.Data})
			h.hasKeyDown = false
		}
		h.dom.ClearInput()
	})
}

// CompositionUpdate handles a compositionupdate event. The whole pre-edit
// string is sent with the cursor at its end.
func (h *Helper) CompositionUpdate(e CompositionEvent) {
	defer h.woke()
	if !e.HasData {
		return
	}
	h.withWindow(func(w *ggui.Window) {
		w.ProcessKeyInput(ggui.KeyInputEvent{
			Type:                  ggui.KeyEventUpdateComposition,
			Text:                  e.Data,
			PreeditSelectionStart: len(e.Data),
			PreeditSelectionEnd:   len(e.Data),
		})
	})
}

// CompositionEnd handles a compositionend event by committing its text.
func (h *Helper) CompositionEnd(e CompositionEvent) {
	defer h.woke()
	if !e.HasData {
		return
	}
	h.withWindow(func(w *ggui.Window) {
		w.ProcessKeyInput(ggui.KeyInputEvent{Type: ggui.KeyEventCommitComposition, Text: e.Data})
		h.dom.ClearInput()
	})
}

// Blur handles the hidden field losing focus. Unless focus moved to the
// canvas the window becomes inactive and unfocused.
func (h *Helper) Blur() {
	defer h.woke()
	h.withWindow(func(w *ggui.Window) {
		if h.dom.CanvasHasFocus() {
			return
		}
		w.SetActive(false)
		w.SetFocus(false)
	})
}

// Focus handles the hidden field gaining focus.
func (h *Helper) Focus() {
	defer h.woke()
	h.withWindow(func(w *ggui.Window) {
		w.SetActive(true)
		w.SetFocus(true)
	})
}

// Copy puts the selection of the focused text input on the clipboard. It
// reports whether the default copy should be prevented, which is whenever
// the window is alive.
func (h *Helper) Copy() bool {
	defer h.woke()
	return h.withWindow(func(w *ggui.Window) {
		ti, ok := w.FocusedTextInput()
		if !ok || !ti.HasSelection() {
			return
		}
		h.dom.WriteClipboard(ti.SelectedText())
	})
}

// Paste inserts the clipboard text into the focused text input. It reports
// whether the default paste should be prevented.
func (h *Helper) Paste() bool {
	defer h.woke()
	return h.withWindow(func(w *ggui.Window) {
		ti, ok := w.FocusedTextInput()
		if !ok {
			return
		}
		h.dom.ReadClipboard(func(text string) {
			h.withWindow(func(w *ggui.Window) {
				ti.Insert(text)
				w.InvalidateAll()
				w.RequestRedraw()
			})
			h.woke()
		})
	})
}

// HasFocus reports whether the hidden field has focus.
func (h *Helper) HasFocus() bool { return h.dom.InputHasFocus() }

// Show makes the hidden field visible and focuses it, bringing up the
// virtual keyboard where there is one.
func (h *Helper) Show() {
	h.dom.SetInputVisible(true)
	h.dom.FocusInput()
}

// Hide hides the hidden field, handing focus back to the canvas first.
func (h *Helper) Hide() {
	if h.HasFocus() {
		h.dom.FocusCanvas()
	}
	h.dom.SetInputVisible(false)
}

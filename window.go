// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "image"

// ComponentOrigin is a component placed in a window at a logical origin.
type ComponentOrigin struct {
	Component *Component
	Origin    Point
}

// Window is the toolkit-side state of one logical window: its content,
// focus, size and dirty region. It refers to its adapter weakly.
//
// Window is not safe for concurrent use.
type Window struct {
	adapter Weak

	components []ComponentOrigin
	focusItem  Item

	active  bool
	focused bool
	visible bool

	size        PhysicalSize
	scaleFactor float32
	background  Color

	dirty     image.Rectangle
	fullDirty bool

	keyHandler func(KeyInputEvent)
	animating  func() bool
}

// NewWindow returns the state for a window driven by adapter.
func NewWindow(adapter Weak) *Window {
	return &Window{
		adapter:     adapter,
		scaleFactor: 1,
		background:  White,
		fullDirty:   true,
	}
}

// Adapter returns the weak reference to the owning adapter.
func (w *Window) Adapter() Weak { return w.adapter }

// Show asks the adapter to make the window visible. When the adapter has
// been released there is nothing to show and Show returns nil.
func (w *Window) Show() error {
	var err error
	if !w.adapter.With(func(a WindowAdapter) { err = a.Show() }) {
		return nil
	}
	if err == nil {
		w.visible = true
	}
	return err
}

// Hide asks the adapter to hide the window. When the adapter has been
// released Hide returns nil.
func (w *Window) Hide() error {
	var err error
	if !w.adapter.With(func(a WindowAdapter) { err = a.Hide() }) {
		return nil
	}
	if err == nil {
		w.visible = false
	}
	return err
}

// IsVisible reports whether the last Show succeeded without a later Hide.
func (w *Window) IsVisible() bool { return w.visible }

// RequestRedraw asks the adapter for a repaint. A released adapter is ignored.
func (w *Window) RequestRedraw() {
	w.adapter.With(func(a WindowAdapter) { a.RequestRedraw() })
}

// SetKeyHandler installs the function receiving key input after the window
// has processed it. The scene's focus handling is the usual receiver.
func (w *Window) SetKeyHandler(f func(KeyInputEvent)) { w.keyHandler = f }

// DispatchEvent delivers a host event to the window.
func (w *Window) DispatchEvent(ev WindowEvent) {
	switch e := ev.(type) {
	case KeyPressedEvent:
		w.ProcessKeyInput(KeyInputEvent{Type: KeyEventPressed, Text: e.Text})
	case KeyReleasedEvent:
		w.ProcessKeyInput(KeyInputEvent{Type: KeyEventReleased, Text: e.Text})
	case ResizedEvent:
		w.SetSize(e.Size.Scale(w.scaleFactor))
	case ScaleFactorChangedEvent:
		w.SetScaleFactor(e.ScaleFactor)
	}
}

// ProcessKeyInput routes a key event to the key handler and schedules a
// redraw, since input usually changes what is on screen.
func (w *Window) ProcessKeyInput(ev KeyInputEvent) {
	if w.keyHandler != nil {
		w.keyHandler(ev)
	}
	w.RequestRedraw()
}

// SetActive marks the window as the active window of the application.
func (w *Window) SetActive(active bool) { w.active = active }

// Active reports whether the window is active.
func (w *Window) Active() bool { return w.active }

// SetFocus records whether the window has keyboard focus.
func (w *Window) SetFocus(focused bool) {
	if w.focused == focused {
		return
	}
	w.focused = focused
	if w.focusItem != nil {
		w.InvalidateAll()
	}
}

// HasFocus reports whether the window has keyboard focus.
func (w *Window) HasFocus() bool { return w.focused }

// SetFocusItem sets the item receiving keyboard input, or nil.
func (w *Window) SetFocusItem(it Item) {
	if old, ok := w.focusItem.(*TextInput); ok {
		old.HasFocus = false
	}
	w.focusItem = it
	if ti, ok := it.(*TextInput); ok {
		ti.HasFocus = true
	}
	w.InvalidateAll()
}

// FocusItem returns the item receiving keyboard input, or nil.
func (w *Window) FocusItem() Item { return w.focusItem }

// FocusedTextInput returns the focus item when it is a text input.
func (w *Window) FocusedTextInput() (*TextInput, bool) {
	ti, ok := w.focusItem.(*TextInput)
	return ti, ok
}

// SetComponents replaces the window content. The slice is not copied and must
// not be mutated while the window draws it.
func (w *Window) SetComponents(components []ComponentOrigin) {
	w.components = components
	w.InvalidateAll()
	w.RequestRedraw()
}

// AddComponent appends a component at origin.
func (w *Window) AddComponent(c *Component, origin Point) {
	w.components = append(w.components, ComponentOrigin{Component: c, Origin: origin})
	w.InvalidateAll()
	w.RequestRedraw()
}

// Components returns the window content in drawing order.
func (w *Window) Components() []ComponentOrigin { return w.components }

// DrawContents calls draw with the window's components in drawing order.
func (w *Window) DrawContents(draw func(components []ComponentOrigin) error) error {
	return draw(w.components)
}

// SetSize records the physical window size. A change invalidates the whole
// window.
func (w *Window) SetSize(size PhysicalSize) {
	if w.size == size {
		return
	}
	w.size = size
	w.InvalidateAll()
}

// Size returns the physical window size.
func (w *Window) Size() PhysicalSize { return w.size }

// LogicalSize returns the window size in logical pixels.
func (w *Window) LogicalSize() Size { return w.size.Logical(w.scaleFactor) }

// SetScaleFactor sets the device pixel ratio. Non-positive values are ignored.
func (w *Window) SetScaleFactor(f float32) {
	if f <= 0 || f == w.scaleFactor {
		return
	}
	w.scaleFactor = f
	w.InvalidateAll()
}

// ScaleFactor returns the device pixel ratio.
func (w *Window) ScaleFactor() float32 { return w.scaleFactor }

// SetBackground sets the color the window is cleared to before drawing.
func (w *Window) SetBackground(c Color) {
	w.background = c
	w.InvalidateAll()
}

// Background returns the window clear color.
func (w *Window) Background() Color { return w.background }

// Invalidate marks a logical rectangle for repaint.
func (w *Window) Invalidate(r Rect) {
	w.InvalidatePhysical(r.Physical(w.scaleFactor))
}

// InvalidatePhysical marks a device-pixel rectangle for repaint.
func (w *Window) InvalidatePhysical(r image.Rectangle) {
	w.dirty = w.dirty.Union(r)
}

// InvalidateAll marks the whole window for repaint.
func (w *Window) InvalidateAll() { w.fullDirty = true }

// TakeDirtyRegion returns and clears the pending dirty region, clipped to
// the window. full reports whether the whole window must be repainted.
func (w *Window) TakeDirtyRegion() (region PhysicalRegion, full bool) {
	bounds := w.size.Bounds()
	if w.fullDirty {
		region, full = RegionOf(bounds), true
	} else {
		region = RegionOf(w.dirty).Intersect(bounds)
	}
	w.dirty = image.Rectangle{}
	w.fullDirty = false
	return region, full
}

// SetAnimationSource installs the function reporting running animations.
func (w *Window) SetAnimationSource(f func() bool) { w.animating = f }

// HasActiveAnimations reports whether an animation needs further frames.
func (w *Window) HasActiveAnimations() bool {
	return w.animating != nil && w.animating()
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "fmt"

// WindowEvent is an event delivered to a Window by its host.
type WindowEvent interface {
	windowEvent()
}

// KeyPressedEvent reports a key press. Text is a single character or one of
// the special key strings in keys.go.
type KeyPressedEvent struct {
	Text string
}

// KeyReleasedEvent reports a key release.
type KeyReleasedEvent struct {
	Text string
}

// ResizedEvent reports a new logical window size.
type ResizedEvent struct {
	Size Size
}

// ScaleFactorChangedEvent reports a new device pixel ratio.
type ScaleFactorChangedEvent struct {
	ScaleFactor float32
}

func (KeyPressedEvent) windowEvent()         {}
func (KeyReleasedEvent) windowEvent()        {}
func (ResizedEvent) windowEvent()            {}
func (ScaleFactorChangedEvent) windowEvent() {}

// KeyEventType distinguishes the kinds of KeyInputEvent.
type KeyEventType int

const (
	// KeyEventPressed is a key press.
	KeyEventPressed KeyEventType = iota
	// KeyEventReleased is a key release.
	KeyEventReleased
	// KeyEventUpdateComposition replaces the pending pre-edit text of an
	// input method.
	KeyEventUpdateComposition
	// KeyEventCommitComposition commits text from an input method.
	KeyEventCommitComposition
)

func (t KeyEventType) String() string {
	switch t {
	case KeyEventPressed:
		return "pressed"
	case KeyEventReleased:
		return "released"
	case KeyEventUpdateComposition:
		return "update-composition"
	case KeyEventCommitComposition:
		return "commit-composition"
	default:
		return fmt.Sprintf("KeyEventType(%d)", int(t))
	}
}

// KeyInputEvent is the key event processed by the window's focus handling.
type KeyInputEvent struct {
	Type KeyEventType
	// Text is the key text, the full pre-edit string or the committed text.
	Text string
	// PreeditSelectionStart and PreeditSelectionEnd are byte offsets into
	// Text of the input method's selection. Only set for
	// KeyEventUpdateComposition.
	PreeditSelectionStart int
	PreeditSelectionEnd   int
}

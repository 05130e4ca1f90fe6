// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebitenhost

import (
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/software"
)

// Adapter is a window adapter driven by ebiten's game loop. It implements
// ebiten.Game; Run hands it to ebiten.RunGame.
//
// ebiten calls Update, Draw and Layout on one goroutine. Adapter must not
// be used concurrently with a running game.
type Adapter struct {
	window   *ggui.Window
	renderer *software.Renderer
	frame    *image.RGBA

	running bool
	visible bool
	closed  bool
	focused bool
	redraw  bool

	keys  []ebiten.Key
	chars []rune
}

var (
	_ ggui.WindowAdapter = (*Adapter)(nil)
	_ ggui.Releaser      = (*Adapter)(nil)
	_ ebiten.Game        = (*Adapter)(nil)
)

func (a *Adapter) Window() *ggui.Window    { return a.window }
func (a *Adapter) Renderer() ggui.Renderer { return a.renderer }

// Show restores the window when the game is running. Before Run the flag
// decides whether the window starts minimized.
func (a *Adapter) Show() error {
	if a.running && ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
	a.visible = true
	a.RequestRedraw()
	return nil
}

// Hide minimizes the window. ebiten has no way to unmap it.
func (a *Adapter) Hide() error {
	if a.running {
		ebiten.MinimizeWindow()
	}
	a.visible = false
	return nil
}

// RequestRedraw records that a frame is wanted. ebiten draws every tick,
// so the flag only reports the request to RedrawPending.
func (a *Adapter) RequestRedraw() { a.redraw = true }

// RedrawPending reports whether a redraw was requested since the last Draw.
func (a *Adapter) RedrawPending() bool { return a.redraw }

// Release ends the game loop at the next Update.
func (a *Adapter) Release() {
	a.closed = true
	a.frame = nil
}

// Update implements ebiten.Game. It advances animations and feeds the
// frame's keyboard input to the window.
func (a *Adapter) Update() error {
	if a.closed {
		return ebiten.Termination
	}
	ggui.UpdateTimersAndAnimations()
	a.setFocused(ebiten.IsFocused())

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	a.dispatchKeys(a.keys, true, shift)
	a.chars = ebiten.AppendInputChars(a.chars[:0])
	a.dispatchChars(a.chars)
	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	a.dispatchKeys(a.keys, false, shift)

	if a.window.HasActiveAnimations() {
		a.redraw = true
	}
	return nil
}

// Draw implements ebiten.Game. The screen is not cleared between frames,
// so only frames with changes are uploaded.
func (a *Adapter) Draw(screen *ebiten.Image) {
	if a.renderFrame() {
		screen.WritePixels(a.frame.Pix)
	}
}

// Layout implements ebiten.Game. The screen is sized in physical pixels so
// the renderer's output maps one to one.
func (a *Adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := float32(1)
	if m := ebiten.Monitor(); m != nil {
		scale = float32(m.DeviceScaleFactor())
	}
	size := a.resize(ggui.Size{Width: float32(outsideWidth), Height: float32(outsideHeight)}, scale)
	return int(size.Width), int(size.Height)
}

// resize applies a new logical size and scale factor and returns the
// physical size, at least one pixel in each direction.
func (a *Adapter) resize(logical ggui.Size, scale float32) ggui.PhysicalSize {
	if scale != a.window.ScaleFactor() {
		a.window.DispatchEvent(ggui.ScaleFactorChangedEvent{ScaleFactor: scale})
	}
	if logical.Scale(a.window.ScaleFactor()) != a.window.Size() {
		a.window.DispatchEvent(ggui.ResizedEvent{Size: logical})
		ggui.Logger().Debug("ebitenhost: window resized",
			slog.String("size", a.window.Size().String()),
			slog.Float64("scale", float64(a.window.ScaleFactor())),
		)
	}
	size := a.window.Size()
	size.Width = max(size.Width, 1)
	size.Height = max(size.Height, 1)
	if size != a.window.Size() {
		a.window.SetSize(size)
	}
	return size
}

// renderFrame renders the window's dirty region into the RGBA frame and
// reports whether any pixel changed. The frame follows the window size.
func (a *Adapter) renderFrame() bool {
	size := a.window.Size()
	if size.IsEmpty() {
		return false
	}
	if a.frame == nil || a.frame.Rect != size.Bounds() {
		a.frame = image.NewRGBA(size.Bounds())
		a.window.InvalidateAll()
	}
	a.redraw = false
	return !a.renderer.RenderRGBA(a.frame).IsEmpty()
}

func (a *Adapter) dispatchKeys(keys []ebiten.Key, pressed, shift bool) {
	for _, k := range keys {
		text, ok := keyText(k, shift)
		if !ok {
			continue
		}
		if pressed {
			a.window.DispatchEvent(ggui.KeyPressedEvent{Text: text})
		} else {
			a.window.DispatchEvent(ggui.KeyReleasedEvent{Text: text})
		}
	}
}

// dispatchChars delivers typed characters as press and release pairs.
// ebiten reports text separately from physical keys.
func (a *Adapter) dispatchChars(chars []rune) {
	for _, r := range chars {
		s := string(r)
		a.window.DispatchEvent(ggui.KeyPressedEvent{Text: s})
		a.window.DispatchEvent(ggui.KeyReleasedEvent{Text: s})
	}
}

func (a *Adapter) setFocused(focused bool) {
	if focused == a.focused {
		return
	}
	a.focused = focused
	a.window.SetActive(focused)
	a.window.SetFocus(focused)
	a.RequestRedraw()
}

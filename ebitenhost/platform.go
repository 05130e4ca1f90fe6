// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ebitenhost implements a ggui.Platform on top of ebiten.
//
// Windows render with the software renderer into an RGBA frame that is
// uploaded to ebiten's screen whenever it changes. Keyboard input, focus
// and window resizes are translated into ggui window events. ebiten drives
// a single window per process, so Run blocks until that window closes.
package ebitenhost

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/software"
)

// ErrNotEbitenWindow is returned by Run for adapters not created by a
// Platform of this package.
var ErrNotEbitenWindow = errors.New("ebitenhost: not an ebiten window")

// Options configures the window a Platform creates.
type Options struct {
	// Title is the window title.
	Title string
	// Size is the initial size in logical pixels.
	Size ggui.Size
	// RepaintBuffer is the software renderer's repaint policy. The frame
	// is kept between draws, so ReusedBuffer is the natural choice.
	RepaintBuffer ggui.RepaintBufferType
}

// DefaultOptions returns an 800x600 window reusing its frame.
func DefaultOptions() Options {
	return Options{
		Title:         "ggui",
		Size:          ggui.Size{Width: 800, Height: 600},
		RepaintBuffer: ggui.ReusedBuffer,
	}
}

// Platform creates ebiten-backed window adapters.
type Platform struct {
	opts Options
}

var _ ggui.Platform = (*Platform)(nil)

// New returns a platform. Zero fields of opts take their DefaultOptions
// values.
func New(opts Options) *Platform {
	def := DefaultOptions()
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.Size.Width <= 0 || opts.Size.Height <= 0 {
		opts.Size = def.Size
	}
	return &Platform{opts: opts}
}

// Options returns the platform's options.
func (p *Platform) Options() Options { return p.opts }

// CreateWindowAdapter implements ggui.Platform.
func (p *Platform) CreateWindowAdapter() (ggui.Rc, error) {
	rc := ggui.NewRcCyclic(func(self ggui.Weak) ggui.WindowAdapter {
		a := &Adapter{
			window:   ggui.NewWindow(self),
			renderer: software.New(p.opts.RepaintBuffer, self),
		}
		a.window.SetSize(p.opts.Size.Scale(1))
		return a
	})
	ggui.Logger().Info("ebitenhost: window created",
		slog.String("title", p.opts.Title),
		slog.String("repaint", p.opts.RepaintBuffer.String()),
	)
	return rc, nil
}

// Run opens the window of rc and runs ebiten's game loop until the window
// is closed or the adapter is released. It must be called from the main
// goroutine.
func (p *Platform) Run(rc ggui.Rc) error {
	const op = "ebitenhost.Run"
	a, ok := rc.Adapter().(*Adapter)
	if !ok {
		return ggui.NewPlatformError(op, ggui.KindShow, ErrNotEbitenWindow)
	}

	ebiten.SetWindowTitle(p.opts.Title)
	ebiten.SetWindowSize(int(p.opts.Size.Width), int(p.opts.Size.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	a.running = true
	defer func() { a.running = false }()
	err := ebiten.RunGameWithOptions(a, &ebiten.RunGameOptions{
		InitUnfocused: !a.visible,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return ggui.NewPlatformError(op, ggui.KindShow, fmt.Errorf("ebitenhost: game loop: %w", err))
	}
	return nil
}

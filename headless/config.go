// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"fmt"
	"os"

	"github.com/gogpu/ggui"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvRenderer = "GGUI_RENDERER"
	EnvRepaint  = "GGUI_REPAINT"
)

// Config describes the windows a Platform creates.
type Config struct {
	// Size is the initial physical size of each window.
	Size ggui.PhysicalSize
	// ScaleFactor is the device pixel ratio. Zero means 1.
	ScaleFactor float32
	// RepaintBuffer is the software renderer's repaint policy.
	RepaintBuffer ggui.RepaintBufferType
	// Renderer is a registered renderer name. Empty selects software.
	Renderer string
}

// DefaultConfig returns a 640x480 software configuration reusing its
// framebuffer between frames.
func DefaultConfig() Config {
	return Config{
		Size:          ggui.PhysicalSize{Width: 640, Height: 480},
		ScaleFactor:   1,
		RepaintBuffer: ggui.ReusedBuffer,
		Renderer:      ggui.RendererSoftware,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by GGUI_RENDERER and
// GGUI_REPAINT ("new", "reused" or "swapped").
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvRenderer); v != "" {
		cfg.Renderer = v
	}
	if v := os.Getenv(EnvRepaint); v != "" {
		policy, err := ggui.ParseRepaintBufferType(v)
		if err != nil {
			return Config{}, fmt.Errorf("headless: %s: %w", EnvRepaint, err)
		}
		cfg.RepaintBuffer = policy
	}
	return cfg, nil
}

func (c Config) normalized() Config {
	if c.ScaleFactor <= 0 {
		c.ScaleFactor = 1
	}
	if c.Renderer == "" {
		c.Renderer = ggui.RendererSoftware
	}
	return c
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/headless"
)

// config is the TOML file read with -config. Flags override its values.
type config struct {
	Width    uint32  `toml:"width"`
	Height   uint32  `toml:"height"`
	Scale    float32 `toml:"scale"`
	Renderer string  `toml:"renderer"`
	Repaint  string  `toml:"repaint"`
	Output   string  `toml:"output"`
	Scene    string  `toml:"scene"`
	Verbose  bool    `toml:"verbose"`
}

func defaultConfig() config {
	return config{
		Width:    400,
		Height:   300,
		Scale:    1,
		Renderer: ggui.RendererSoftware,
		Repaint:  ggui.NewBuffer.String(),
		Output:   "gguidemo.png",
	}
}

// loadConfig reads path over the defaults. Unknown keys are an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("gguidemo: read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("gguidemo: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// headless converts the configuration to a headless platform config.
func (c config) headless() (headless.Config, error) {
	policy, err := ggui.ParseRepaintBufferType(c.Repaint)
	if err != nil {
		return headless.Config{}, fmt.Errorf("gguidemo: repaint: %w", err)
	}
	if c.Width == 0 || c.Height == 0 {
		return headless.Config{}, fmt.Errorf("gguidemo: invalid size %dx%d", c.Width, c.Height)
	}
	return headless.Config{
		Size:          ggui.PhysicalSize{Width: c.Width, Height: c.Height},
		ScaleFactor:   c.Scale,
		RepaintBuffer: policy,
		Renderer:      c.Renderer,
	}, nil
}

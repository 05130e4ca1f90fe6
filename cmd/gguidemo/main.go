// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command gguidemo renders a ggui scene offscreen and saves it as PNG.
//
// Usage:
//
//	gguidemo [-config demo.toml] [-scene scene.yaml] [-renderer name] [-output out.png]
//
// Without -scene a built-in scene is drawn. The renderer is any registered
// backend: software, gpucanvas or native2d.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/headless"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		scenePath  = flag.String("scene", "", "YAML scene file (default: built-in scene)")
		renderer   = flag.String("renderer", "", "renderer name, overrides the config")
		output     = flag.String("output", "", "output PNG file, overrides the config")
		width      = flag.Uint("width", 0, "image width, overrides the config")
		height     = flag.Uint("height", 0, "image height, overrides the config")
		verbose    = flag.Bool("v", false, "log frame diagnostics")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *renderer != "" {
		cfg.Renderer = *renderer
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *scenePath != "" {
		cfg.Scene = *scenePath
	}
	if *width > 0 {
		cfg.Width = uint32(*width)
	}
	if *height > 0 {
		cfg.Height = uint32(*height)
	}
	if *verbose || cfg.Verbose {
		ggui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := loadScene(cfg.Scene)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, s); err != nil {
		log.Fatal(err)
	}
	log.Printf("Scene saved to %s (%dx%d, %s)\n", cfg.Output, cfg.Width, cfg.Height, cfg.Renderer)
}

// run renders s once and writes the frame to cfg.Output.
func run(cfg config, s scene) error {
	hcfg, err := cfg.headless()
	if err != nil {
		return err
	}
	components, bg, err := s.build()
	if err != nil {
		return err
	}

	rc, err := headless.New(hcfg).CreateWindowAdapter()
	if err != nil {
		return err
	}
	defer rc.Drop()

	w := rc.Adapter().Window()
	w.SetBackground(bg)
	w.SetComponents(components)
	if err := w.Show(); err != nil {
		return err
	}
	if _, err := headless.AdapterOf(rc).RenderFrame(); err != nil {
		return err
	}
	return savePNG(cfg.Output, headless.AdapterOf(rc))
}

func savePNG(path string, a *headless.Adapter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gguidemo: %w", err)
	}
	if err := png.Encode(f, a.Image()); err != nil {
		f.Close()
		return fmt.Errorf("gguidemo: encode %s: %w", path, err)
	}
	return f.Close()
}

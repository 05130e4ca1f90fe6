// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package textlayout lays out text for the renderer backends: it resolves
// font requests to faces, shapes paragraphs with go-text/typesetting,
// breaks lines, answers caret queries and rasterizes glyph masks with
// golang.org/x/image.
package textlayout

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/gogpu/ggui"
)

// Family names always available.
const (
	FamilySans      = "sans-serif"
	FamilyMonospace = "monospace"
)

// fontData is one parsed font file, kept in both libraries' forms.
type fontData struct {
	ot *opentype.Font
	gt *gtfont.Font
}

type style int

const (
	styleRegular style = iota
	styleBold
	styleItalic
	styleBoldItalic
)

type family [4]*fontData

type faceKey struct {
	data *fontData
	size float32
}

// Engine resolves fonts and lays out text. It is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	families map[string]*family
	faces    map[faceKey]xfont.Face
	shaper   shaping.HarfbuzzShaper
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide engine with the bundled Go fonts.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// NewEngine returns an engine with the bundled Go fonts registered as
// FamilySans and FamilyMonospace.
func NewEngine() *Engine {
	e := &Engine{
		families: make(map[string]*family),
		faces:    make(map[faceKey]xfont.Face),
	}
	bundled := []struct {
		family string
		data   []byte
		st     style
	}{
		{FamilySans, goregular.TTF, styleRegular},
		{FamilySans, gobold.TTF, styleBold},
		{FamilySans, goitalic.TTF, styleItalic},
		{FamilySans, gobolditalic.TTF, styleBoldItalic},
		{FamilyMonospace, gomono.TTF, styleRegular},
	}
	for _, b := range bundled {
		if err := e.register(b.family, b.data, b.st); err != nil {
			// The bundled fonts are known-good.
			panic(err)
		}
	}
	return e
}

// RegisterFont adds a TrueType or OpenType font under family.
func (e *Engine) RegisterFont(family string, data []byte, bold, italic bool) error {
	st := styleRegular
	switch {
	case bold && italic:
		st = styleBoldItalic
	case bold:
		st = styleBold
	case italic:
		st = styleItalic
	}
	return e.register(family, data, st)
}

func (e *Engine) register(name string, data []byte, st style) error {
	ot, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("textlayout: parse %s: %w", name, err)
	}
	gf, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("textlayout: parse %s: %w", name, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	key := strings.ToLower(name)
	fam := e.families[key]
	if fam == nil {
		fam = &family{}
		e.families[key] = fam
	}
	fam[st] = &fontData{ot: ot, gt: gf.Font}
	return nil
}

// Families returns the registered family names.
func (e *Engine) Families() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.families))
	for n := range e.families {
		names = append(names, n)
	}
	return names
}

// resolve picks the font for a request, falling back to the regular style
// and then to the sans-serif family. Callers hold e.mu.
func (e *Engine) resolve(req ggui.FontRequest) *fontData {
	st := styleRegular
	bold := req.Weight >= 600
	switch {
	case bold && req.Italic:
		st = styleBoldItalic
	case bold:
		st = styleBold
	case req.Italic:
		st = styleItalic
	}
	for _, name := range []string{strings.ToLower(req.Family), FamilySans} {
		fam := e.families[name]
		if fam == nil {
			continue
		}
		if fam[st] != nil {
			return fam[st]
		}
		if fam[styleRegular] != nil {
			return fam[styleRegular]
		}
	}
	return e.families[FamilySans][styleRegular]
}

// face returns the cached x/image face of fd at a pixel size. Callers hold
// e.mu.
func (e *Engine) face(fd *fontData, px float32) xfont.Face {
	key := faceKey{data: fd, size: px}
	if f, ok := e.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(fd.ot, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		// Only fails for invalid sizes, which pixelSize rules out.
		panic(fmt.Sprintf("textlayout: new face: %v", err))
	}
	e.faces[key] = f
	return f
}

// pixelSize returns the request's size in physical pixels.
func pixelSize(req ggui.FontRequest, scale float32) float32 {
	size := req.PixelSize
	if size <= 0 {
		size = ggui.DefaultFontSize
	}
	if scale <= 0 {
		scale = 1
	}
	return size * scale
}

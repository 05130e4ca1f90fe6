// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textlayout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/ggui"
)

// Layout is text broken into lines. Lengths are in logical pixels.
type Layout struct {
	Text  string
	Lines []Line

	Width      float32
	Height     float32
	Ascent     float32
	Descent    float32
	LineHeight float32

	scale  float32
	engine *Engine
	face   xfont.Face
}

// Line is one laid-out line.
type Line struct {
	// Start and End are byte offsets into the text; End excludes the line
	// break or the space a wrap consumed.
	Start, End int
	// Width is the advance width of the line.
	Width float32
	// RTL reports a right-to-left paragraph.
	RTL bool

	carets []caret
}

// caret is a cursor position: the byte offset before a rune and its x
// position from the line's left edge.
type caret struct {
	offset int
	x      float32
}

// Layout lays out text with the requested font. maxWidth > 0 enables word
// wrapping at that width. scale is the window's scale factor.
func (e *Engine) Layout(req ggui.FontRequest, text string, maxWidth, scale float32) *Layout {
	if scale <= 0 {
		scale = 1
	}
	px := pixelSize(req, scale)

	e.mu.Lock()
	defer e.mu.Unlock()

	fd := e.resolve(req)
	face := e.face(fd, px)
	m := face.Metrics()
	l := &Layout{
		Text:       text,
		Ascent:     fixedToFloat(m.Ascent) / scale,
		Descent:    fixedToFloat(m.Descent) / scale,
		LineHeight: fixedToFloat(m.Height) / scale,
		scale:      scale,
		engine:     e,
		face:       face,
	}

	gtFace := gtfont.NewFace(fd.gt)
	spacing := req.LetterSpacing * scale
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		last := end < 0
		if last {
			end = len(text)
		} else {
			end += start
		}
		para := strings.TrimSuffix(text[start:end], "\r")
		pos := e.shapeParagraph(gtFace, para, px, spacing)
		l.breakParagraph(para, start, pos, maxWidth*scale)
		if last {
			break
		}
		start = end + 1
	}
	for _, ln := range l.Lines {
		l.Width = max(l.Width, ln.Width)
	}
	l.Height = float32(len(l.Lines)) * l.LineHeight
	return l
}

// paragraphCarets holds caret x positions in pixels for every rune boundary
// of a paragraph, in logical order.
type paragraphCarets struct {
	x       []float32
	offsets []int
	rtl     bool
}

// shapeParagraph shapes one paragraph and returns its caret positions.
// Callers hold e.mu.
func (e *Engine) shapeParagraph(face *gtfont.Face, para string, px, spacing float32) paragraphCarets {
	runes := []rune(para)
	n := len(runes)
	pc := paragraphCarets{
		x:       make([]float32, n+1),
		offsets: make([]int, n+1),
	}
	off := 0
	for i, r := range runes {
		pc.offsets[i] = off
		off += utf8.RuneLen(r)
	}
	pc.offsets[n] = off
	if n == 0 {
		return pc
	}

	pc.rtl = paragraphIsRTL(para)
	dir := di.DirectionLTR
	if pc.rtl {
		dir = di.DirectionRTL
	}
	out := e.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    n,
		Direction: dir,
		Face:      face,
		Size:      fixed.Int26_6(px * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	set := make([]bool, n+1)
	var pen float32
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		c := g.TextIndex()
		if c >= 0 && c < n && !set[c] {
			if pc.rtl {
				pc.x[c] = pen + adv
			} else {
				pc.x[c] = pen
			}
			set[c] = true
		}
		pen += adv
	}
	if pc.rtl {
		pc.x[n] = 0
	} else {
		pc.x[n] = pen
	}
	set[n] = true
	// Runes inside a cluster share the position of the cluster start.
	for i := 1; i < n; i++ {
		if !set[i] {
			pc.x[i] = pc.x[i-1]
		}
	}
	if spacing != 0 {
		for i := range pc.x {
			if pc.rtl {
				pc.x[i] += float32(n-i) * spacing
			} else {
				pc.x[i] += float32(i) * spacing
			}
		}
	}
	return pc
}

// breakParagraph appends the lines of one paragraph starting at byte offset
// base. maxWidth is in pixels; zero or less disables wrapping.
func (l *Layout) breakParagraph(para string, base int, pc paragraphCarets, maxWidth float32) {
	n := len(pc.x) - 1
	if maxWidth <= 0 || n == 0 {
		l.appendLine(base, pc, 0, n)
		return
	}
	runes := []rune(para)
	start := 0
	lastSpace := -1
	for i := 0; i < n; i++ {
		if runes[i] == ' ' {
			lastSpace = i
		}
		if span(pc, start, i+1) <= maxWidth || i == start {
			continue
		}
		switch {
		case runes[i] == ' ':
			l.appendLine(base, pc, start, i)
			start = i + 1
		case lastSpace > start:
			l.appendLine(base, pc, start, lastSpace)
			start = lastSpace + 1
		default:
			l.appendLine(base, pc, start, i)
			start = i
		}
		lastSpace = -1
	}
	l.appendLine(base, pc, start, n)
}

func span(pc paragraphCarets, from, to int) float32 {
	lo, hi := pc.x[from], pc.x[from]
	for i := from + 1; i <= to; i++ {
		lo, hi = min(lo, pc.x[i]), max(hi, pc.x[i])
	}
	return hi - lo
}

// appendLine adds runes [from, to) of a paragraph as a line.
func (l *Layout) appendLine(base int, pc paragraphCarets, from, to int) {
	lo := pc.x[from]
	for i := from; i <= to; i++ {
		lo = min(lo, pc.x[i])
	}
	carets := make([]caret, 0, to-from+1)
	var w float32
	for i := from; i <= to; i++ {
		x := (pc.x[i] - lo) / l.scale
		w = max(w, x)
		carets = append(carets, caret{offset: base + pc.offsets[i], x: x})
	}
	l.Lines = append(l.Lines, Line{
		Start:  base + pc.offsets[from],
		End:    base + pc.offsets[to],
		Width:  w,
		RTL:    pc.rtl,
		carets: carets,
	})
}

// Size returns the layout's bounding size.
func (l *Layout) Size() ggui.Size { return ggui.Size{Width: l.Width, Height: l.Height} }

// Place returns the top-left corner of every line for the layout aligned
// inside a box.
func (l *Layout) Place(box ggui.Size, h ggui.TextHorizontalAlignment, v ggui.TextVerticalAlignment) []ggui.Point {
	var y float32
	switch v {
	case ggui.TextAlignMiddle:
		y = (box.Height - l.Height) / 2
	case ggui.TextAlignBottom:
		y = box.Height - l.Height
	}
	out := make([]ggui.Point, len(l.Lines))
	for i, ln := range l.Lines {
		var x float32
		switch h {
		case ggui.TextAlignCenter:
			x = (box.Width - ln.Width) / 2
		case ggui.TextAlignRight:
			x = box.Width - ln.Width
		}
		out[i] = ggui.Pt(x, y+float32(i)*l.LineHeight)
	}
	return out
}

// OffsetAt returns the byte offset of the caret nearest to p, where origins
// come from Place.
func (l *Layout) OffsetAt(p ggui.Point, origins []ggui.Point) int {
	if len(l.Lines) == 0 {
		return 0
	}
	li := 0
	for i := range l.Lines {
		if p.Y >= origins[i].Y {
			li = i
		}
	}
	ln := l.Lines[li]
	x := p.X - origins[li].X
	best, bestD := ln.Start, float32(math.MaxFloat32)
	for _, c := range ln.carets {
		if d := abs32(c.x - x); d < bestD {
			best, bestD = c.offset, d
		}
	}
	return best
}

// CaretRect returns the caret rectangle for a byte offset.
func (l *Layout) CaretRect(offset int, width float32, origins []ggui.Point) ggui.Rect {
	if width <= 0 {
		width = 1
	}
	if len(l.Lines) == 0 {
		return ggui.NewRect(0, 0, width, l.LineHeight)
	}
	li := len(l.Lines) - 1
	for i, ln := range l.Lines {
		if offset <= ln.End {
			li = i
			break
		}
	}
	ln := l.Lines[li]
	x := ln.carets[len(ln.carets)-1].x
	if ln.RTL {
		x = 0
	}
	for _, c := range ln.carets {
		if c.offset >= offset {
			x = c.x
			break
		}
	}
	o := origins[li]
	return ggui.NewRect(o.X+x, o.Y, width, l.LineHeight)
}

// SelectionRects returns one rectangle per line for the byte range
// [from, to).
func (l *Layout) SelectionRects(from, to int, origins []ggui.Point) []ggui.Rect {
	var out []ggui.Rect
	for i, ln := range l.Lines {
		if to <= ln.Start || from > ln.End || from == to {
			continue
		}
		lo, hi := float32(math.MaxFloat32), float32(-math.MaxFloat32)
		for _, c := range ln.carets {
			if c.offset >= from && c.offset <= to {
				lo, hi = min(lo, c.x), max(hi, c.x)
			}
		}
		if hi > lo {
			o := origins[i]
			out = append(out, ggui.NewRect(o.X+lo, o.Y, hi-lo, l.LineHeight))
		}
	}
	return out
}

// paragraphIsRTL reports whether the first strongly directional run of the
// paragraph is right-to-left.
func paragraphIsRTL(para string) bool {
	var p bidi.Paragraph
	if _, err := p.SetString(para, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return false
	}
	ordering, err := p.Order()
	if err != nil {
		return false
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if start, _ := run.Pos(); start == 0 {
			return run.Direction() == bidi.RightToLeft
		}
	}
	return false
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

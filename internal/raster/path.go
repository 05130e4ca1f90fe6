// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ggui"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// flattenTolerance is the maximum deviation, in device pixels, of flattened
// curves.
const flattenTolerance = 0.2

type verb uint8

const (
	verbMove verb = iota
	verbLine
	verbQuad
	verbCubic
	verbClose
)

type pathCmd struct {
	verb verb
	pts  [3]ggui.Point
}

// Path is an outline in device coordinates. Subpaths are closed implicitly
// when filled.
type Path struct {
	cmds   []pathCmd
	lo, hi ggui.Point
	empty  bool
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{empty: true} }

func (p *Path) grow(pts ...ggui.Point) {
	for _, q := range pts {
		if p.empty {
			p.lo, p.hi, p.empty = q, q, false
			continue
		}
		p.lo.X, p.lo.Y = min(p.lo.X, q.X), min(p.lo.Y, q.Y)
		p.hi.X, p.hi.Y = max(p.hi.X, q.X), max(p.hi.Y, q.Y)
	}
}

// MoveTo starts a subpath.
func (p *Path) MoveTo(a ggui.Point) {
	p.cmds = append(p.cmds, pathCmd{verb: verbMove, pts: [3]ggui.Point{a}})
	p.grow(a)
}

// LineTo adds a line.
func (p *Path) LineTo(a ggui.Point) {
	p.cmds = append(p.cmds, pathCmd{verb: verbLine, pts: [3]ggui.Point{a}})
	p.grow(a)
}

// QuadTo adds a quadratic curve.
func (p *Path) QuadTo(b, c ggui.Point) {
	p.cmds = append(p.cmds, pathCmd{verb: verbQuad, pts: [3]ggui.Point{b, c}})
	p.grow(b, c)
}

// CubeTo adds a cubic curve.
func (p *Path) CubeTo(b, c, d ggui.Point) {
	p.cmds = append(p.cmds, pathCmd{verb: verbCubic, pts: [3]ggui.Point{b, c, d}})
	p.grow(b, c, d)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.cmds = append(p.cmds, pathCmd{verb: verbClose})
}

// IsEmpty reports whether the path has no points.
func (p *Path) IsEmpty() bool { return p.empty }

// Bounds returns the integer pixel rectangle covering the control points.
func (p *Path) Bounds() image.Rectangle {
	if p.empty {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(float64(p.lo.X))),
		int(math.Floor(float64(p.lo.Y))),
		int(math.Ceil(float64(p.hi.X))),
		int(math.Ceil(float64(p.hi.Y))),
	)
}

// Mask rasterizes the path into a coverage mask restricted to clip. It
// returns nil when the path covers no pixel of clip.
func (p *Path) Mask(clip image.Rectangle) *image.Alpha {
	r := p.Bounds().Intersect(clip)
	if r.Empty() {
		return nil
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	open := false
	for _, c := range p.cmds {
		switch c.verb {
		case verbMove:
			if open {
				z.ClosePath()
			}
			z.MoveTo(c.pts[0].X-ox, c.pts[0].Y-oy)
			open = true
		case verbLine:
			z.LineTo(c.pts[0].X-ox, c.pts[0].Y-oy)
		case verbQuad:
			z.QuadTo(c.pts[0].X-ox, c.pts[0].Y-oy, c.pts[1].X-ox, c.pts[1].Y-oy)
		case verbCubic:
			z.CubeTo(c.pts[0].X-ox, c.pts[0].Y-oy, c.pts[1].X-ox, c.pts[1].Y-oy, c.pts[2].X-ox, c.pts[2].Y-oy)
		case verbClose:
			if open {
				z.ClosePath()
				open = false
			}
		}
	}
	if open {
		z.ClosePath()
	}
	dst := image.NewAlpha(r)
	z.Draw(dst, r, image.Opaque, image.Point{})
	return dst
}

// AppendRect adds the rectangle r, mapped through m, as a closed subpath.
// reverse flips the winding, which cuts a hole out of a surrounding subpath.
func (p *Path) AppendRect(r ggui.Rect, m ggui.Transform, reverse bool) {
	pts := []ggui.Point{
		m.Apply(ggui.Pt(r.X, r.Y)),
		m.Apply(ggui.Pt(r.X+r.Width, r.Y)),
		m.Apply(ggui.Pt(r.X+r.Width, r.Y+r.Height)),
		m.Apply(ggui.Pt(r.X, r.Y+r.Height)),
	}
	if reverse {
		pts[1], pts[3] = pts[3], pts[1]
	}
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.Close()
}

// AppendRoundedRect adds a rectangle with circular corners of the given
// radius, mapped through m. The radius is clamped to half the shorter side.
func (p *Path) AppendRoundedRect(r ggui.Rect, radius float32, m ggui.Transform, reverse bool) {
	radius = min(radius, r.Width/2, r.Height/2)
	if radius <= 0 {
		p.AppendRect(r, m, reverse)
		return
	}
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	k := radius * (1 - kappa)
	type seg struct{ c1, c2, end ggui.Point }
	start := ggui.Pt(x0+radius, y0)
	// Clockwise in y-down coordinates: top, right, bottom, left edges.
	lines := [4]ggui.Point{
		ggui.Pt(x1-radius, y0),
		ggui.Pt(x1, y1-radius),
		ggui.Pt(x0+radius, y1),
		ggui.Pt(x0, y0+radius),
	}
	corners := [4]seg{
		{ggui.Pt(x1-k, y0), ggui.Pt(x1, y0+k), ggui.Pt(x1, y0+radius)},
		{ggui.Pt(x1, y1-k), ggui.Pt(x1-k, y1), ggui.Pt(x1-radius, y1)},
		{ggui.Pt(x0+k, y1), ggui.Pt(x0, y1-k), ggui.Pt(x0, y1-radius)},
		{ggui.Pt(x0, y0+k), ggui.Pt(x0+k, y0), start},
	}
	if !reverse {
		p.MoveTo(m.Apply(start))
		for i := range 4 {
			p.LineTo(m.Apply(lines[i]))
			c := corners[i]
			p.CubeTo(m.Apply(c.c1), m.Apply(c.c2), m.Apply(c.end))
		}
		p.Close()
		return
	}
	// Walk the same outline backwards.
	p.MoveTo(m.Apply(start))
	for i := 3; i >= 0; i-- {
		c := corners[i]
		p.CubeTo(m.Apply(c.c2), m.Apply(c.c1), m.Apply(lines[i]))
		prev := start
		if i > 0 {
			prev = corners[i-1].end
		}
		p.LineTo(m.Apply(prev))
	}
	p.Close()
}

// AppendElements adds path elements in local coordinates mapped through m.
func (p *Path) AppendElements(elems []ggui.PathElement, m ggui.Transform) {
	for _, e := range elems {
		switch e.Verb {
		case ggui.PathMoveTo:
			p.MoveTo(m.Apply(e.Points[0]))
		case ggui.PathLineTo:
			p.LineTo(m.Apply(e.Points[0]))
		case ggui.PathQuadTo:
			p.QuadTo(m.Apply(e.Points[0]), m.Apply(e.Points[1]))
		case ggui.PathCubicTo:
			p.CubeTo(m.Apply(e.Points[0]), m.Apply(e.Points[1]), m.Apply(e.Points[2]))
		case ggui.PathClose:
			p.Close()
		}
	}
}

// polyline is a flattened subpath.
type polyline struct {
	pts    []ggui.Point
	closed bool
}

// flatten converts the path into polylines.
func (p *Path) flatten() []polyline {
	var out []polyline
	var cur *polyline
	var pen ggui.Point
	ensure := func() {
		if cur == nil {
			out = append(out, polyline{pts: []ggui.Point{pen}})
			cur = &out[len(out)-1]
		}
	}
	for _, c := range p.cmds {
		switch c.verb {
		case verbMove:
			out = append(out, polyline{pts: []ggui.Point{c.pts[0]}})
			cur = &out[len(out)-1]
			pen = c.pts[0]
		case verbLine:
			ensure()
			cur.pts = append(cur.pts, c.pts[0])
			pen = c.pts[0]
		case verbQuad:
			ensure()
			a, b, e := pen, c.pts[0], c.pts[1]
			n := segments(a.Sub(b), b.Sub(e))
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				u := 1 - t
				cur.pts = append(cur.pts, ggui.Pt(
					u*u*a.X+2*u*t*b.X+t*t*e.X,
					u*u*a.Y+2*u*t*b.Y+t*t*e.Y,
				))
			}
			pen = e
		case verbCubic:
			ensure()
			a, b, d, e := pen, c.pts[0], c.pts[1], c.pts[2]
			n := segments(a.Sub(b), b.Sub(d), d.Sub(e))
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				u := 1 - t
				cur.pts = append(cur.pts, ggui.Pt(
					u*u*u*a.X+3*u*u*t*b.X+3*u*t*t*d.X+t*t*t*e.X,
					u*u*u*a.Y+3*u*u*t*b.Y+3*u*t*t*d.Y+t*t*t*e.Y,
				))
			}
			pen = e
		case verbClose:
			if cur != nil {
				cur.closed = true
				pen = cur.pts[0]
				cur = nil
			}
		}
	}
	return out
}

func segments(hull ...ggui.Vector) int {
	var l float64
	for _, v := range hull {
		l += math.Hypot(float64(v.X), float64(v.Y))
	}
	n := int(math.Ceil(math.Sqrt(l / flattenTolerance)))
	return max(1, min(n, 128))
}

// Stroke returns the outline of p stroked with the given width in device
// pixels, with round joins and caps.
func (p *Path) Stroke(width float32) *Path {
	out := NewPath()
	if width <= 0 {
		return out
	}
	hw := width / 2
	for _, pl := range p.flatten() {
		pts := pl.pts
		if pl.closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
			pts = append(pts, pts[0])
		}
		for i := 1; i < len(pts); i++ {
			out.appendSegment(pts[i-1], pts[i], hw)
		}
		for _, q := range pts {
			out.appendDisc(q, hw)
		}
	}
	return out
}

// appendSegment adds the rectangle covering segment a-b. All stroke pieces
// share one winding so overlapping pieces union instead of cancelling.
func (p *Path) appendSegment(a, b ggui.Point, hw float32) {
	d := b.Sub(a)
	l := float32(math.Hypot(float64(d.X), float64(d.Y)))
	if l == 0 {
		return
	}
	n := ggui.Vector{X: -d.Y / l * hw, Y: d.X / l * hw}
	p.appendPolygon([]ggui.Point{a.Add(n), b.Add(n), b.Add(n.Neg()), a.Add(n.Neg())})
}

func (p *Path) appendDisc(c ggui.Point, r float32) {
	n := max(8, min(64, int(r*4)))
	pts := make([]ggui.Point, n)
	for i := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = ggui.Pt(c.X+r*float32(co), c.Y+r*float32(s))
	}
	p.appendPolygon(pts)
}

// appendPolygon adds a closed polygon with negative signed area.
func (p *Path) appendPolygon(pts []ggui.Point) {
	var area float32
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area > 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.Close()
}

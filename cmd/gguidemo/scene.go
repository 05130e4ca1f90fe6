// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggui"
)

// scene is the YAML document read with -scene.
type scene struct {
	Background string      `yaml:"background"`
	Components []component `yaml:"components"`
}

type component struct {
	Origin [2]float32 `yaml:"origin"`
	Items  []item     `yaml:"items"`
}

// item describes one ggui item. Which fields apply depends on Type.
type item struct {
	Type   string     `yaml:"type"`
	Bounds [4]float32 `yaml:"bounds"`

	Fill   *brush `yaml:"fill"`
	Border *struct {
		Width  float32 `yaml:"width"`
		Radius float32 `yaml:"radius"`
		Color  *brush  `yaml:"color"`
	} `yaml:"border"`

	Text   string  `yaml:"text"`
	Font   string  `yaml:"font"`
	Size   float32 `yaml:"size"`
	Align  string  `yaml:"align"`
	Wrap   bool    `yaml:"wrap"`
	Cursor *int    `yaml:"cursor"`

	Path  []string `yaml:"path"`
	Width float32  `yaml:"width"`

	Offset  [2]float32 `yaml:"offset"`
	Blur    float32    `yaml:"blur"`
	Radius  float32    `yaml:"radius"`
	Color   string     `yaml:"color"`
	Angle   float32    `yaml:"angle"`
	Opacity float32    `yaml:"opacity"`

	Children []item `yaml:"children"`
}

// brush is either a color string or a gradient.
type brush struct {
	Color  string   `yaml:"color"`
	Linear *float32 `yaml:"linear"`
	Radial bool     `yaml:"radial"`
	Stops  []stop   `yaml:"stops"`
}

type stop struct {
	At    float32 `yaml:"at"`
	Color string  `yaml:"color"`
}

// UnmarshalYAML accepts a plain color string as shorthand.
func (b *brush) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		b.Color = n.Value
		return nil
	}
	type plain brush
	return n.Decode((*plain)(b))
}

func loadScene(path string) (scene, error) {
	data := []byte(defaultScene)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return scene{}, fmt.Errorf("gguidemo: read scene: %w", err)
		}
	}
	return parseScene(data)
}

func parseScene(data []byte) (scene, error) {
	var s scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return scene{}, fmt.Errorf("gguidemo: parse scene: %w", err)
	}
	return s, nil
}

// build converts the scene into window components and a background color.
func (s scene) build() ([]ggui.ComponentOrigin, ggui.Color, error) {
	bg := ggui.White
	if s.Background != "" {
		c, err := ggui.ParseHex(s.Background)
		if err != nil {
			return nil, ggui.Color{}, fmt.Errorf("gguidemo: background: %w", err)
		}
		bg = c
	}
	var out []ggui.ComponentOrigin
	for i, c := range s.Components {
		root := ggui.Node(&ggui.Empty{})
		for _, it := range c.Items {
			n, err := it.node()
			if err != nil {
				return nil, ggui.Color{}, fmt.Errorf("gguidemo: component %d: %w", i, err)
			}
			root.Children = append(root.Children, n)
		}
		out = append(out, ggui.ComponentOrigin{
			Component: ggui.NewComponent(root),
			Origin:    ggui.Point{X: c.Origin[0], Y: c.Origin[1]},
		})
	}
	return out, bg, nil
}

func (it item) node() (*ggui.ItemNode, error) {
	v, err := it.item()
	if err != nil {
		return nil, err
	}
	n := ggui.Node(v)
	for _, c := range it.Children {
		child, err := c.node()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (it item) item() (ggui.Item, error) {
	bounds := ggui.NewRect(it.Bounds[0], it.Bounds[1], it.Bounds[2], it.Bounds[3])
	fill, err := it.Fill.brush()
	if err != nil {
		return nil, fmt.Errorf("%s fill: %w", it.Type, err)
	}

	switch it.Type {
	case "rect", "rectangle":
		return &ggui.Rectangle{Bounds: bounds, Background: fill}, nil
	case "border":
		r := &ggui.BorderRectangle{Bounds: bounds, Background: fill}
		if it.Border != nil {
			r.BorderWidth = it.Border.Width
			r.BorderRadius = it.Border.Radius
			if r.BorderColor, err = it.Border.Color.brush(); err != nil {
				return nil, fmt.Errorf("border color: %w", err)
			}
		}
		return r, nil
	case "text":
		return &ggui.Text{
			Bounds: bounds,
			Text:   it.Text,
			Font:   ggui.FontRequest{Family: it.Font, PixelSize: it.Size},
			Color:  fill,
			HAlign: alignment(it.Align),
			Wrap:   wrap(it.Wrap),
		}, nil
	case "input":
		ti := &ggui.TextInput{
			Bounds:        bounds,
			Font:          ggui.FontRequest{Family: it.Font, PixelSize: it.Size},
			Color:         fill,
			HAlign:        alignment(it.Align),
			Wrap:          wrap(it.Wrap),
			CursorVisible: true,
			HasFocus:      true,
		}
		ti.SetText(it.Text)
		if it.Cursor != nil {
			ti.SetCursor(*it.Cursor)
		}
		return ti, nil
	case "path":
		elems, err := parsePath(it.Path)
		if err != nil {
			return nil, err
		}
		var stroke ggui.Brush
		if it.Color != "" {
			c, err := ggui.ParseHex(it.Color)
			if err != nil {
				return nil, fmt.Errorf("path color: %w", err)
			}
			stroke = ggui.Solid(c)
		}
		return &ggui.Path{Bounds: bounds, Elements: elems, Fill: fill, Stroke: stroke, StrokeWidth: it.Width}, nil
	case "shadow":
		c, err := ggui.ParseHex(it.Color)
		if err != nil {
			return nil, fmt.Errorf("shadow color: %w", err)
		}
		return &ggui.BoxShadow{
			Bounds:       bounds,
			OffsetX:      it.Offset[0],
			OffsetY:      it.Offset[1],
			Color:        c,
			Blur:         it.Blur,
			BorderRadius: it.Radius,
		}, nil
	case "clip":
		return &ggui.Clip{Bounds: bounds, BorderRadius: it.Radius, Enabled: true}, nil
	case "opacity":
		return &ggui.Opacity{Bounds: bounds, Opacity: it.Opacity}, nil
	case "rotate":
		return &ggui.Rotate{Bounds: bounds, Angle: it.Angle, OriginX: bounds.Width / 2, OriginY: bounds.Height / 2}, nil
	case "", "group":
		return &ggui.Empty{Bounds: bounds}, nil
	}
	return nil, fmt.Errorf("unknown item type %q", it.Type)
}

func (b *brush) brush() (ggui.Brush, error) {
	if b == nil {
		return nil, nil
	}
	if len(b.Stops) == 0 {
		c, err := ggui.ParseHex(b.Color)
		if err != nil {
			return nil, err
		}
		return ggui.Solid(c), nil
	}
	stops := make([]ggui.GradientStop, 0, len(b.Stops))
	for _, s := range b.Stops {
		c, err := ggui.ParseHex(s.Color)
		if err != nil {
			return nil, err
		}
		stops = append(stops, ggui.GradientStop{Position: s.At, Color: c})
	}
	if b.Radial {
		return ggui.RadialGradient{Stops: stops}, nil
	}
	var angle float32 = 180
	if b.Linear != nil {
		angle = *b.Linear
	}
	return ggui.LinearGradient{Angle: angle, Stops: stops}, nil
}

func alignment(s string) ggui.TextHorizontalAlignment {
	switch s {
	case "center":
		return ggui.TextAlignCenter
	case "right":
		return ggui.TextAlignRight
	}
	return ggui.TextAlignLeft
}

func wrap(on bool) ggui.TextWrap {
	if on {
		return ggui.TextWordWrap
	}
	return ggui.TextNoWrap
}

var pathArgs = map[string]int{"M": 2, "L": 2, "Q": 4, "C": 6, "Z": 0}

// parsePath reads SVG-like commands, one per entry: "M x y", "L x y",
// "Q cx cy x y", "C c1x c1y c2x c2y x y" and "Z".
func parsePath(cmds []string) ([]ggui.PathElement, error) {
	elems := make([]ggui.PathElement, 0, len(cmds))
	for _, cmd := range cmds {
		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			continue
		}
		args := make([]float32, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", cmd, err)
			}
			args = append(args, float32(v))
		}

		n, ok := pathArgs[strings.ToUpper(fields[0])]
		if !ok || len(args) != n {
			return nil, fmt.Errorf("path %q: bad command", cmd)
		}
		switch strings.ToUpper(fields[0]) {
		case "M":
			elems = append(elems, ggui.MoveTo(args[0], args[1]))
		case "L":
			elems = append(elems, ggui.LineTo(args[0], args[1]))
		case "Q":
			elems = append(elems, ggui.QuadTo(args[0], args[1], args[2], args[3]))
		case "C":
			elems = append(elems, ggui.CubicTo(args[0], args[1], args[2], args[3], args[4], args[5]))
		case "Z":
			elems = append(elems, ggui.ClosePath())
		}
	}
	return elems, nil
}

const defaultScene = `
background: "#f4f4f8"
components:
  - origin: [0, 0]
    items:
      - type: rect
        bounds: [0, 0, 400, 48]
        fill:
          linear: 90
          stops:
            - {at: 0, color: "#3b5bdb"}
            - {at: 1, color: "#15aabf"}
      - type: text
        bounds: [16, 12, 368, 24]
        text: ggui demo
        size: 18
        fill: "#ffffff"
  - origin: [24, 72]
    items:
      - type: shadow
        bounds: [0, 0, 160, 100]
        offset: [3, 4]
        blur: 6
        radius: 12
        color: "#00000060"
      - type: border
        bounds: [0, 0, 160, 100]
        fill: "#ffffff"
        border: {width: 2, radius: 12, color: "#868e96"}
      - type: clip
        bounds: [0, 0, 160, 100]
        radius: 12
        children:
          - type: rect
            bounds: [0, 70, 160, 30]
            fill:
              radial: true
              stops:
                - {at: 0, color: "#ffd43b"}
                - {at: 1, color: "#f76707"}
  - origin: [216, 72]
    items:
      - type: rotate
        bounds: [0, 0, 100, 100]
        angle: 15
        children:
          - type: opacity
            bounds: [0, 0, 100, 100]
            opacity: 0.8
            children:
              - type: path
                bounds: [0, 0, 100, 100]
                path: ["M 50 0", "L 100 100", "L 0 100", "Z"]
                fill: "#40c057"
                color: "#2b8a3e"
                width: 2
  - origin: [24, 200]
    items:
      - type: input
        bounds: [0, 0, 352, 32]
        text: "Edit me"
        size: 16
        fill: "#212529"
`

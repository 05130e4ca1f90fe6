// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

// ItemRenderer draws items for one frame. Every backend implements it.
//
// Drawing state is a stack of {clip, transform, opacity}. SaveState pushes a
// copy of the current state and RestoreState pops it; popping an empty stack
// is a contract violation. Coordinates passed to drawing calls are local to
// the current item: its top-left corner is the origin.
type ItemRenderer interface {
	DrawRectangle(r *Rectangle)
	DrawBorderRectangle(r *BorderRectangle)
	DrawImage(img *ImageItem)
	DrawClippedImage(img *ClippedImage)
	DrawText(t *Text)
	DrawTextInput(ti *TextInput)
	DrawPath(p *Path)
	DrawBoxShadow(s *BoxShadow)

	// CombineClip intersects the clip with a rounded rectangle in local
	// coordinates. radius is the outer corner radius; borderWidth shrinks
	// the clip to the inside of a border. It reports whether anything
	// remains visible.
	CombineClip(rect Rect, radius, borderWidth float32) bool
	// CurrentClip returns the clip's bounding box in local coordinates.
	CurrentClip() Rect

	Translate(v Vector)
	Rotate(degrees float32)
	// ApplyOpacity multiplies the current opacity.
	ApplyOpacity(opacity float32)

	SaveState()
	RestoreState()

	// ScaleFactor returns physical pixels per logical pixel.
	ScaleFactor() float32

	// DrawCachedPixmap draws a premultiplied RGBA pixmap at the local
	// origin. update is called with a draw function when the backend has
	// no cached copy for key; it may call draw once with the pixel data.
	DrawCachedPixmap(key any, update func(draw func(width, height int, premultipliedRGBA []byte)))

	// DrawString draws a single line of text with the default font at the
	// local origin.
	DrawString(s string, c Color)
}

// Item is a node of the scene consumed by renderers.
type Item interface {
	// Geometry is the item's rectangle relative to its parent.
	Geometry() Rect
	// Render draws the item and reports whether its children are drawn.
	Render(r ItemRenderer) bool
}

// ItemNode is an item with its children.
type ItemNode struct {
	Item     Item
	Children []*ItemNode
}

// Node builds an ItemNode.
func Node(item Item, children ...*ItemNode) *ItemNode {
	return &ItemNode{Item: item, Children: children}
}

// Component is a tree of items drawn as a unit.
type Component struct {
	Root *ItemNode
}

// NewComponent returns a component with the given root.
func NewComponent(root *ItemNode) *Component {
	return &Component{Root: root}
}

// Walk calls f for every item in depth-first order until f returns false.
func (c *Component) Walk(f func(Item) bool) {
	if c == nil || c.Root == nil {
		return
	}
	var walk func(n *ItemNode) bool
	walk = func(n *ItemNode) bool {
		if !f(n.Item) {
			return false
		}
		for _, child := range n.Children {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(c.Root)
}

// RenderComponentItems draws c with r, placing its root at origin. The
// renderer's state is the same after the call as before it.
func RenderComponentItems(c *Component, r ItemRenderer, origin Point) {
	if c == nil || c.Root == nil {
		return
	}
	r.SaveState()
	r.Translate(Vector(origin))
	renderNode(c.Root, r)
	r.RestoreState()
}

// RenderComponents draws every component in order.
func RenderComponents(components []ComponentOrigin, r ItemRenderer) {
	for _, co := range components {
		RenderComponentItems(co.Component, r, co.Origin)
	}
}

func renderNode(n *ItemNode, r ItemRenderer) {
	if n == nil || n.Item == nil {
		return
	}
	g := n.Item.Geometry()
	r.SaveState()
	r.Translate(Vector{g.X, g.Y})
	if n.Item.Render(r) {
		for _, child := range n.Children {
			renderNode(child, r)
		}
	}
	r.RestoreState()
}

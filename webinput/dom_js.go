// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js

package webinput

import (
	"strconv"
	"syscall/js"

	"github.com/gogpu/ggui"
)

// pageDOM implements DOM with a hidden <input> placed over a canvas.
type pageDOM struct {
	input  js.Value
	canvas js.Value
	funcs  []listener
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func newPageDOM(canvas js.Value) *pageDOM {
	doc := js.Global().Get("document")
	input := doc.Call("createElement", "input")
	style := input.Get("style")
	px := func(v js.Value) string { return strconv.Itoa(v.Int()) + "px" }
	style.Call("setProperty", "z-index", "-1")
	style.Call("setProperty", "position", "absolute")
	style.Call("setProperty", "left", px(canvas.Get("offsetLeft")))
	style.Call("setProperty", "top", px(canvas.Get("offsetTop")))
	style.Call("setProperty", "width", px(canvas.Get("offsetWidth")))
	style.Call("setProperty", "height", px(canvas.Get("offsetHeight")))
	// Hides the caret on mobile Safari.
	style.Call("setProperty", "opacity", "0")
	// The field is cleared after every input, so capitalization would apply
	// to every character.
	input.Call("setAttribute", "autocapitalize", "none")
	canvas.Call("before", input)
	return &pageDOM{input: input, canvas: canvas}
}

func matchesFocus(v js.Value) bool {
	return v.Call("matches", ":focus").Truthy()
}

func (d *pageDOM) ClearInput() { d.input.Set("value", "") }

func (d *pageDOM) SetInputVisible(visible bool) {
	v := "hidden"
	if visible {
		v = "visible"
	}
	d.input.Get("style").Call("setProperty", "visibility", v)
}

func (d *pageDOM) FocusInput()          { d.input.Call("focus") }
func (d *pageDOM) InputHasFocus() bool  { return matchesFocus(d.input) }
func (d *pageDOM) FocusCanvas()         { d.canvas.Call("focus") }
func (d *pageDOM) CanvasHasFocus() bool { return matchesFocus(d.canvas) }

func clipboard() js.Value {
	return js.Global().Get("navigator").Get("clipboard")
}

func (d *pageDOM) WriteClipboard(text string) {
	if c := clipboard(); c.Truthy() {
		c.Call("writeText", text)
	}
}

func (d *pageDOM) ReadClipboard(done func(text string)) {
	c := clipboard()
	if !c.Truthy() {
		return
	}
	var then js.Func
	then = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer then.Release()
		if len(args) > 0 && args[0].Type() == js.TypeString {
			done(args[0].String())
		}
		return nil
	})
	c.Call("readText").Call("then", then)
}

func (d *pageDOM) listen(target js.Value, event string, f func(e js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		f(args[0])
		return nil
	})
	d.funcs = append(d.funcs, listener{target, event, fn})
	target.Call("addEventListener", event, fn)
}

func keyboardEvent(e js.Value) KeyboardEvent {
	return KeyboardEvent{
		Key:         e.Get("key").String(),
		Shift:       e.Get("shiftKey").Bool(),
		IsComposing: e.Get("isComposing").Bool(),
	}
}

func eventData(e js.Value) (string, bool) {
	d := e.Get("data")
	if d.IsNull() || d.IsUndefined() {
		return "", false
	}
	return d.String(), true
}

// Attached is a Helper bound to a page. Detach removes its listeners and
// the hidden field.
type Attached struct {
	*Helper
	dom *pageDOM
}

// Attach creates the hidden input over canvas and routes its events to the
// window of the adapter behind w.
func Attach(w ggui.Weak, canvas js.Value, opts ...Option) *Attached {
	dom := newPageDOM(canvas)
	h := New(w, dom, opts...)
	a := &Attached{Helper: h, dom: dom}

	prevent := func(e js.Value, consumed bool) {
		if consumed {
			e.Call("preventDefault")
		}
	}
	dom.listen(dom.input, "keydown", func(e js.Value) { prevent(e, h.KeyDown(keyboardEvent(e))) })
	dom.listen(dom.input, "keyup", func(e js.Value) { prevent(e, h.KeyUp(keyboardEvent(e))) })
	dom.listen(dom.input, "input", func(e js.Value) {
		data, ok := eventData(e)
		h.Input(InputEvent{
			Data:        data,
			HasData:     ok,
			IsComposing: e.Get("isComposing").Bool(),
			InputType:   e.Get("inputType").String(),
		})
	})
	dom.listen(dom.input, "compositionupdate", func(e js.Value) {
		data, ok := eventData(e)
		h.CompositionUpdate(CompositionEvent{Data: data, HasData: ok})
	})
	dom.listen(dom.input, "compositionend", func(e js.Value) {
		data, ok := eventData(e)
		h.CompositionEnd(CompositionEvent{Data: data, HasData: ok})
	})
	dom.listen(dom.input, "blur", func(js.Value) { h.Blur() })
	dom.listen(dom.input, "focus", func(js.Value) { h.Focus() })
	if clipboard().Truthy() {
		win := js.Global().Get("window")
		dom.listen(win, "copy", func(e js.Value) { prevent(e, h.Copy()) })
		dom.listen(win, "paste", func(e js.Value) { prevent(e, h.Paste()) })
	}
	ggui.Logger().Debug("webinput: attached")
	return a
}

// Detach removes the listeners and the hidden field.
func (a *Attached) Detach() {
	for _, l := range a.dom.funcs {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	a.dom.funcs = nil
	a.dom.input.Call("remove")
}

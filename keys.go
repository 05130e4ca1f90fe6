// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

// Special keys are delivered as single-rune strings. Control keys use their
// ASCII code; navigation and function keys use the private-use code points
// common to desktop toolkits.
const (
	KeyBackspace = "\u0008"
	KeyTab       = "\t"
	KeyReturn    = "\n"
	KeyEscape    = "\u001b"
	KeyBacktab   = "\u0019"
	KeyDelete    = "\u007f"

	KeyShift        = "\u0010"
	KeyControl      = "\u0011"
	KeyAlt          = "\u0012"
	KeyAltGr        = "\u0013"
	KeyCapsLock     = "\u0014"
	KeyShiftRight   = "\u0015"
	KeyControlRight = "\u0016"
	KeyMeta         = "\u0017"
	KeyMetaRight    = "\u0018"

	KeyUpArrow    = "\uF700"
	KeyDownArrow  = "\uF701"
	KeyLeftArrow  = "\uF702"
	KeyRightArrow = "\uF703"

	KeyF1  = "\uF704"
	KeyF2  = "\uF705"
	KeyF3  = "\uF706"
	KeyF4  = "\uF707"
	KeyF5  = "\uF708"
	KeyF6  = "\uF709"
	KeyF7  = "\uF70A"
	KeyF8  = "\uF70B"
	KeyF9  = "\uF70C"
	KeyF10 = "\uF70D"
	KeyF11 = "\uF70E"
	KeyF12 = "\uF70F"
	KeyF13 = "\uF710"
	KeyF14 = "\uF711"
	KeyF15 = "\uF712"
	KeyF16 = "\uF713"
	KeyF17 = "\uF714"
	KeyF18 = "\uF715"
	KeyF19 = "\uF716"
	KeyF20 = "\uF717"
	KeyF21 = "\uF718"
	KeyF22 = "\uF719"
	KeyF23 = "\uF71A"
	KeyF24 = "\uF71B"

	KeyInsert     = "\uF727"
	KeyHome       = "\uF729"
	KeyEnd        = "\uF72B"
	KeyPageUp     = "\uF72C"
	KeyPageDown   = "\uF72D"
	KeyScrollLock = "\uF72F"
	KeyPause      = "\uF730"
	KeySysReq     = "\uF731"
	KeyStop       = "\uF734"
	KeyMenu       = "\uF735"
)

// namedKeys maps DOM KeyboardEvent.key names to key strings. Names that are
// a single character are passed through unchanged and are not listed.
var namedKeys = map[string]string{
	"Backspace":  KeyBackspace,
	"Tab":        KeyTab,
	"Enter":      KeyReturn,
	"Escape":     KeyEscape,
	"Delete":     KeyDelete,
	"Shift":      KeyShift,
	"Control":    KeyControl,
	"Alt":        KeyAlt,
	"AltGraph":   KeyAltGr,
	"CapsLock":   KeyCapsLock,
	"Meta":       KeyMeta,
	"ArrowUp":    KeyUpArrow,
	"ArrowDown":  KeyDownArrow,
	"ArrowLeft":  KeyLeftArrow,
	"ArrowRight": KeyRightArrow,
	"F1":         KeyF1,
	"F2":         KeyF2,
	"F3":         KeyF3,
	"F4":         KeyF4,
	"F5":         KeyF5,
	"F6":         KeyF6,
	"F7":         KeyF7,
	"F8":         KeyF8,
	"F9":         KeyF9,
	"F10":        KeyF10,
	"F11":        KeyF11,
	"F12":        KeyF12,
	"F13":        KeyF13,
	"F14":        KeyF14,
	"F15":        KeyF15,
	"F16":        KeyF16,
	"F17":        KeyF17,
	"F18":        KeyF18,
	"F19":        KeyF19,
	"F20":        KeyF20,
	"F21":        KeyF21,
	"F22":        KeyF22,
	"F23":        KeyF23,
	"F24":        KeyF24,
	"Insert":     KeyInsert,
	"Home":       KeyHome,
	"End":        KeyEnd,
	"PageUp":     KeyPageUp,
	"PageDown":   KeyPageDown,
	"ScrollLock": KeyScrollLock,
	"Pause":      KeyPause,

	"PrintScreen": KeySysReq,
	"ContextMenu": KeyMenu,
}

// KeyFromName maps a DOM key name to a key string. Single characters map to
// themselves, "Tab" with shift held maps to KeyBacktab. ok is false for
// names with no mapping.
func KeyFromName(name string, shift bool) (key string, ok bool) {
	if name == "Tab" && shift {
		return KeyBacktab, true
	}
	if k, found := namedKeys[name]; found {
		return k, true
	}
	if n := len([]rune(name)); n == 1 {
		return name, true
	}
	return "", false
}

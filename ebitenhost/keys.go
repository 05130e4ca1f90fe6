// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/ggui"
)

// namedKeys maps ebiten keys that produce no text to ggui key strings.
// Printable keys arrive through ebiten.AppendInputChars instead.
var namedKeys = map[ebiten.Key]string{
	ebiten.KeyBackspace:    ggui.KeyBackspace,
	ebiten.KeyTab:          ggui.KeyTab,
	ebiten.KeyEnter:        ggui.KeyReturn,
	ebiten.KeyNumpadEnter:  ggui.KeyReturn,
	ebiten.KeyEscape:       ggui.KeyEscape,
	ebiten.KeyDelete:       ggui.KeyDelete,
	ebiten.KeyShiftLeft:    ggui.KeyShift,
	ebiten.KeyShiftRight:   ggui.KeyShiftRight,
	ebiten.KeyControlLeft:  ggui.KeyControl,
	ebiten.KeyControlRight: ggui.KeyControlRight,
	ebiten.KeyAltLeft:      ggui.KeyAlt,
	ebiten.KeyAltRight:     ggui.KeyAltGr,
	ebiten.KeyMetaLeft:     ggui.KeyMeta,
	ebiten.KeyMetaRight:    ggui.KeyMetaRight,
	ebiten.KeyCapsLock:     ggui.KeyCapsLock,
	ebiten.KeyArrowUp:      ggui.KeyUpArrow,
	ebiten.KeyArrowDown:    ggui.KeyDownArrow,
	ebiten.KeyArrowLeft:    ggui.KeyLeftArrow,
	ebiten.KeyArrowRight:   ggui.KeyRightArrow,
	ebiten.KeyInsert:       ggui.KeyInsert,
	ebiten.KeyHome:         ggui.KeyHome,
	ebiten.KeyEnd:          ggui.KeyEnd,
	ebiten.KeyPageUp:       ggui.KeyPageUp,
	ebiten.KeyPageDown:     ggui.KeyPageDown,
	ebiten.KeyScrollLock:   ggui.KeyScrollLock,
	ebiten.KeyPause:        ggui.KeyPause,
	ebiten.KeyPrintScreen:  ggui.KeySysReq,
	ebiten.KeyContextMenu:  ggui.KeyMenu,
	ebiten.KeyF1:           ggui.KeyF1,
	ebiten.KeyF2:           ggui.KeyF2,
	ebiten.KeyF3:           ggui.KeyF3,
	ebiten.KeyF4:           ggui.KeyF4,
	ebiten.KeyF5:           ggui.KeyF5,
	ebiten.KeyF6:           ggui.KeyF6,
	ebiten.KeyF7:           ggui.KeyF7,
	ebiten.KeyF8:           ggui.KeyF8,
	ebiten.KeyF9:           ggui.KeyF9,
	ebiten.KeyF10:          ggui.KeyF10,
	ebiten.KeyF11:          ggui.KeyF11,
	ebiten.KeyF12:          ggui.KeyF12,
	ebiten.KeyF13:          ggui.KeyF13,
	ebiten.KeyF14:          ggui.KeyF14,
	ebiten.KeyF15:          ggui.KeyF15,
	ebiten.KeyF16:          ggui.KeyF16,
	ebiten.KeyF17:          ggui.KeyF17,
	ebiten.KeyF18:          ggui.KeyF18,
	ebiten.KeyF19:          ggui.KeyF19,
	ebiten.KeyF20:          ggui.KeyF20,
	ebiten.KeyF21:          ggui.KeyF21,
	ebiten.KeyF22:          ggui.KeyF22,
	ebiten.KeyF23:          ggui.KeyF23,
	ebiten.KeyF24:          ggui.KeyF24,
}

// keyText returns the ggui key string of a named key. Tab with shift held
// is Backtab.
func keyText(k ebiten.Key, shift bool) (string, bool) {
	if k == ebiten.KeyTab && shift {
		return ggui.KeyBacktab, true
	}
	s, ok := namedKeys[k]
	return s, ok
}

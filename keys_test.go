// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "testing"

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name   string
		shift  bool
		want   string
		wantOK bool
	}{
		{"a", false, "a", true},
		{"A", true, "A", true},
		{"é", false, "é", true},
		{"Enter", false, KeyReturn, true},
		{"Tab", false, KeyTab, true},
		{"Tab", true, KeyBacktab, true},
		{"ArrowLeft", false, KeyLeftArrow, true},
		{"ArrowDown", false, KeyDownArrow, true},
		{"F1", false, KeyF1, true},
		{"F24", false, KeyF24, true},
		{"PageDown", false, KeyPageDown, true},
		{"Dead", false, "", false},
		{"Unidentified", false, "", false},
	}
	for _, tt := range tests {
		got, ok := KeyFromName(tt.name, tt.shift)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("KeyFromName(%q, %v) = %q, %v; want %q, %v", tt.name, tt.shift, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFunctionKeysAreContiguous(t *testing.T) {
	if []rune(KeyF1)[0] != 0xF704 {
		t.Fatalf("KeyF1 = %U, want U+F704", []rune(KeyF1)[0])
	}
	if got := []rune(KeyF12)[0] - []rune(KeyF1)[0]; got != 11 {
		t.Errorf("KeyF12 - KeyF1 = %d, want 11", got)
	}
}

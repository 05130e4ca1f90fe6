// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "testing"

var blackToWhite = []GradientStop{{0, Black}, {1, White}}

func TestLinearGradient(t *testing.T) {
	g := LinearGradient{Angle: 90, Stops: blackToWhite}
	bounds := NewRect(0, 0, 100, 10)
	tests := []struct {
		p    Point
		want Color
	}{
		{Point{0, 5}, Black},
		{Point{50, 5}, RGB(128, 128, 128)},
		{Point{100, 5}, White},
		{Point{-20, 5}, Black},
		{Point{200, 5}, White},
	}
	for _, tt := range tests {
		if got := g.ColorAt(tt.p, bounds); got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	// 180 degrees runs top to bottom.
	g.Angle = 180
	if got := g.ColorAt(Point{50, 0}, bounds); got != Black {
		t.Errorf("180deg top = %v, want black", got)
	}
}

func TestRadialGradient(t *testing.T) {
	g := RadialGradient{Stops: blackToWhite}
	bounds := NewRect(0, 0, 30, 40)
	if got := g.ColorAt(Point{15, 20}, bounds); got != Black {
		t.Errorf("center = %v, want black", got)
	}
	if got := g.ColorAt(Point{0, 0}, bounds); got != White {
		t.Errorf("corner = %v, want white", got)
	}
	if got := g.ColorAt(Point{0, 0}, Rect{}); got != Black {
		t.Errorf("empty bounds = %v, want first stop", got)
	}
}

func TestSampleStops(t *testing.T) {
	if got := sampleStops(nil, 0.5); got != Transparent {
		t.Errorf("no stops = %v, want transparent", got)
	}
	one := []GradientStop{{0.3, White}}
	if got := sampleStops(one, 0.9); got != White {
		t.Errorf("single stop = %v, want white", got)
	}
	hard := []GradientStop{{0, Black}, {0.5, Black}, {0.5, White}, {1, White}}
	if got := sampleStops(hard, 0.75); got != White {
		t.Errorf("after hard stop = %v, want white", got)
	}
	if got := sampleStops(hard, 0.25); got != Black {
		t.Errorf("before hard stop = %v, want black", got)
	}
}

func TestBrushVisibility(t *testing.T) {
	tests := []struct {
		name     string
		b        Brush
		visible  bool
		gradient bool
	}{
		{"nil", nil, false, false},
		{"solid", Solid(White), true, false},
		{"transparent solid", Solid(Transparent), false, false},
		{"linear", LinearGradient{Stops: blackToWhite}, true, true},
		{"transparent radial", RadialGradient{Stops: []GradientStop{{0, Transparent}}}, false, true},
	}
	for _, tt := range tests {
		if got := BrushIsVisible(tt.b); got != tt.visible {
			t.Errorf("BrushIsVisible(%s) = %v, want %v", tt.name, got, tt.visible)
		}
		if got := IsGradient(tt.b); got != tt.gradient {
			t.Errorf("IsGradient(%s) = %v, want %v", tt.name, got, tt.gradient)
		}
	}
}

func TestSortStops(t *testing.T) {
	in := []GradientStop{{1, White}, {0, Black}, {0.5, Black}}
	got := SortStops(in)
	for i := 1; i < len(got); i++ {
		if got[i-1].Position > got[i].Position {
			t.Fatalf("SortStops() = %v, not ordered", got)
		}
	}
	if in[0].Position != 1 {
		t.Error("SortStops() modified its input")
	}
}

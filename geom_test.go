// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"math"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Rect
		want      Rect
		wantEmpty bool
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5), false},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 3, 3), NewRect(2, 2, 3, 3), false},
		{"disjoint", NewRect(0, 0, 10, 10), NewRect(20, 20, 5, 5), Rect{X: 20, Y: 20}, true},
		{"touching", NewRect(0, 0, 10, 10), NewRect(10, 0, 5, 5), Rect{X: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got != tt.want {
				t.Errorf("Intersect() = %v, want %v", got, tt.want)
			}
			if got.IsEmpty() != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got.IsEmpty(), tt.wantEmpty)
			}
		})
	}
}

func TestRectUnionIgnoresEmpty(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	if got := r.Union(Rect{}); got != r {
		t.Errorf("Union(empty) = %v, want %v", got, r)
	}
	if got := (Rect{}).Union(r); got != r {
		t.Errorf("empty.Union() = %v, want %v", got, r)
	}
}

func TestRectPhysical(t *testing.T) {
	tests := []struct {
		r     Rect
		scale float32
		want  image.Rectangle
	}{
		{NewRect(0, 0, 10, 10), 1, image.Rect(0, 0, 10, 10)},
		{NewRect(0.5, 0.5, 1, 1), 1, image.Rect(0, 0, 2, 2)},
		{NewRect(1, 1, 2, 2), 1.5, image.Rect(1, 1, 5, 5)},
		{Rect{}, 2, image.Rectangle{}},
	}
	for _, tt := range tests {
		if got := tt.r.Physical(tt.scale); got != tt.want {
			t.Errorf("%v.Physical(%v) = %v, want %v", tt.r, tt.scale, got, tt.want)
		}
	}
}

func TestTransformInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
	}{
		{"identity", Identity()},
		{"translate", Translation(10, -4)},
		{"scale", Scaling(2, 0.5)},
		{"rotate", Rotation(30)},
		{"combined", Translation(5, 5).Multiply(Rotation(45)).Multiply(Scaling(3, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if !ok {
				t.Fatal("Invert() ok = false")
			}
			p := Pt(7, -3)
			back := inv.Apply(tt.m.Apply(p))
			if math.Abs(float64(back.X-p.X)) > 1e-3 || math.Abs(float64(back.Y-p.Y)) > 1e-3 {
				t.Errorf("inv(m(p)) = %v, want %v", back, p)
			}
		})
	}
	if _, ok := (Transform{}).Invert(); ok {
		t.Error("zero transform Invert() ok = true, want false")
	}
}

func TestRotationQuarterTurnsExact(t *testing.T) {
	m := Rotation(90)
	if !(m.A == 0 && m.B == -1 && m.D == 1 && m.E == 0) {
		t.Errorf("Rotation(90) = %+v, want exact quarter turn", m)
	}
	if got := m.Apply(Pt(1, 0)); got != Pt(0, 1) {
		t.Errorf("Rotation(90).Apply(1,0) = %v, want (0, 1)", got)
	}
	if Rotation(90).IsAxisAligned() {
		t.Error("Rotation(90).IsAxisAligned() = true, want false")
	}
	if !Rotation(0).IsAxisAligned() {
		t.Error("Rotation(0).IsAxisAligned() = false")
	}
}

func TestTransformMapRect(t *testing.T) {
	m := Translation(10, 0).Multiply(Rotation(90))
	got := m.MapRect(NewRect(0, 0, 4, 2))
	want := NewRect(8, 0, 2, 4)
	if got != want {
		t.Errorf("MapRect() = %v, want %v", got, want)
	}
}

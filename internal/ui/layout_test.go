package ui

import (
	"testing"

	"github.com/five82/trapmeta/internal/state"
)

func TestComputeLayout(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		formWidth     int
		previewCols   int
		previewRows   int
		debugRows     int
	}{
		{"wide", 160, 50, 48, 110, 39, debugPaneHeight},
		{"medium", 120, 40, 40, 78, 29, debugPaneHeight},
		{"narrow", 80, 20, 30, 48, 16, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := computeLayout(tc.width, tc.height)
			if l.formWidth != tc.formWidth || l.previewCols != tc.previewCols ||
				l.previewRows != tc.previewRows || l.debugRows != tc.debugRows {
				t.Fatalf("computeLayout(%d, %d) = %+v", tc.width, tc.height, l)
			}
			if l.previewWidth+l.formWidth != tc.width {
				t.Fatalf("panes span %d cells, want %d", l.previewWidth+l.formWidth, tc.width)
			}
		})
	}
}

func TestPanePoint(t *testing.T) {
	m := Model{width: 120, height: 40}

	cases := []struct {
		x, y   int
		want   state.Point
		inside bool
	}{
		{1, 3, state.Point{X: 0, Y: 0}, true},
		{20, 5, state.Point{X: 19, Y: 4}, true},
		{0, 3, state.Point{X: 0, Y: 0}, false},
		{200, 100, state.Point{X: 77, Y: 56}, false},
	}
	for _, tc := range cases {
		got, inside := m.panePoint(tc.x, tc.y)
		if got != tc.want || inside != tc.inside {
			t.Fatalf("panePoint(%d, %d) = %+v, %v; want %+v, %v", tc.x, tc.y, got, inside, tc.want, tc.inside)
		}
	}
}

func TestExtendDown(t *testing.T) {
	anchor := state.Point{X: 10, Y: 10}
	if got := extendDown(state.Point{X: 20, Y: 20}, anchor); got.Y != 21 {
		t.Fatalf("downward drag Y = %d, want 21", got.Y)
	}
	if got := extendDown(state.Point{X: 20, Y: 4}, anchor); got.Y != 4 {
		t.Fatalf("upward drag Y = %d, want 4", got.Y)
	}
}

package imageview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trapmeta/internal/state"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode_PNGAndGarbage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(3, 2, color.White)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	if _, err := Decode([]byte("not an image")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		natural    image.Point
		cols, rows int
		want       state.Geometry
	}{
		{
			name:    "wide image limited by width",
			natural: image.Pt(4000, 2000),
			cols:    100, rows: 40,
			want: state.Geometry{OffsetX: 0, OffsetY: 14, ClientWidth: 100, ClientHeight: 50, NaturalWidth: 4000, NaturalHeight: 2000},
		},
		{
			name:    "tall image limited by height",
			natural: image.Pt(1000, 2000),
			cols:    100, rows: 20,
			want: state.Geometry{OffsetX: 40, OffsetY: 0, ClientWidth: 20, ClientHeight: 40, NaturalWidth: 1000, NaturalHeight: 2000},
		},
		{
			name:    "small image not enlarged",
			natural: image.Pt(10, 10),
			cols:    100, rows: 40,
			want: state.Geometry{OffsetX: 45, OffsetY: 34, ClientWidth: 10, ClientHeight: 10, NaturalWidth: 10, NaturalHeight: 10},
		},
		{
			name:    "empty pane",
			natural: image.Pt(10, 10),
			cols:    0, rows: 0,
			want: state.Geometry{NaturalWidth: 10, NaturalHeight: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.natural, tt.cols, tt.rows); got != tt.want {
				t.Fatalf("Fit() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPreview_ViewDimensions(t *testing.T) {
	p := NewPreview(solid(200, 100, color.RGBA{R: 200, A: 255}), 20, 6, color.Black)
	cols, rows := p.Size()
	if cols != 20 || rows != 6 {
		t.Fatalf("Size() = %d x %d", cols, rows)
	}

	view := p.View(nil, nil)
	lines := strings.Split(view, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Fatalf("line %d width = %d, want 20", i, w)
		}
	}

	boxed := p.View(&state.Rect{X: 2, Y: 2, Width: 5, Height: 4}, color.White)
	if lines := strings.Split(boxed, "\n"); len(lines) != 6 {
		t.Fatalf("boxed view has %d lines", len(lines))
	}
	if p.base.RGBAAt(2, 2) == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("View must not draw onto the cached base image")
	}
}

func TestDrawOutline(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DrawOutline(dst, state.Rect{X: 2, Y: 3, Width: 4, Height: 3}, white)

	onBorder := []image.Point{{2, 3}, {6, 3}, {2, 6}, {6, 6}, {4, 3}, {2, 5}}
	for _, pt := range onBorder {
		if dst.RGBAAt(pt.X, pt.Y) != white {
			t.Fatalf("pixel %v not on outline", pt)
		}
	}
	if dst.RGBAAt(4, 4) == white {
		t.Fatalf("interior pixel should be untouched")
	}

	// Clipped outlines must not panic.
	DrawOutline(dst, state.Rect{X: 8, Y: 8, Width: 20, Height: 20}, white)
}

func TestParseHex(t *testing.T) {
	if got := ParseHex("#1a2b3c"); got != (color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}) {
		t.Fatalf("ParseHex = %#v", got)
	}
	if got := ParseHex("nope"); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("ParseHex(invalid) = %#v", got)
	}
}

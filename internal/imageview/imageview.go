// Package imageview renders images into the terminal preview pane.
//
// One terminal cell shows two vertically stacked display pixels using the
// upper half block glyph: the foreground colors the top pixel and the
// background colors the bottom one. A pane of cols x rows cells is therefore
// cols x 2*rows display pixels, and every Geometry this package reports uses
// those display pixels.
package imageview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/five82/trapmeta/internal/state"
)

const halfBlock = "▀"

// Decode decodes JPEG, PNG, GIF, TIFF, BMP or WebP bytes.
func Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode image: empty %s image", format)
	}
	return img, nil
}

// Fit centers an image of the given natural size in a pane of cols x rows
// cells, shrinking it to fit while keeping its aspect ratio. Images smaller
// than the pane are not enlarged. The vertical offset is even so the image
// starts on a cell boundary.
func Fit(natural image.Point, cols, rows int) state.Geometry {
	g := state.Geometry{NaturalWidth: natural.X, NaturalHeight: natural.Y}
	paneW, paneH := cols, rows*2
	if natural.X <= 0 || natural.Y <= 0 || paneW <= 0 || paneH <= 0 {
		return g
	}
	scale := min(float64(paneW)/float64(natural.X), float64(paneH)/float64(natural.Y), 1)
	g.ClientWidth = max(1, int(float64(natural.X)*scale+0.5))
	g.ClientHeight = max(1, int(float64(natural.Y)*scale+0.5))
	g.ClientWidth = min(g.ClientWidth, paneW)
	g.ClientHeight = min(g.ClientHeight, paneH)
	g.OffsetX = (paneW - g.ClientWidth) / 2
	g.OffsetY = ((paneH - g.ClientHeight) / 2) &^ 1
	return g
}

// Preview is an image scaled once for a fixed pane size.
type Preview struct {
	cols, rows int
	geom       state.Geometry
	base       *image.RGBA
}

// NewPreview scales img into a cols x rows pane filled with bg.
func NewPreview(img image.Image, cols, rows int, bg color.Color) *Preview {
	cols, rows = max(cols, 1), max(rows, 1)
	bounds := img.Bounds()
	geom := Fit(bounds.Size(), cols, rows)

	base := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.Draw(base, base.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	if geom.Valid() {
		dst := image.Rect(geom.OffsetX, geom.OffsetY, geom.OffsetX+geom.ClientWidth, geom.OffsetY+geom.ClientHeight)
		xdraw.ApproxBiLinear.Scale(base, dst, img, bounds, xdraw.Over, nil)
	}
	return &Preview{cols: cols, rows: rows, geom: geom, base: base}
}

// Size returns the pane size in cells.
func (p *Preview) Size() (cols, rows int) {
	return p.cols, p.rows
}

// Geometry reports where the image sits inside the pane.
func (p *Preview) Geometry() state.Geometry {
	return p.geom
}

// View renders the pane. When box is non-nil its outline is drawn in
// boxColor over the image.
func (p *Preview) View(box *state.Rect, boxColor color.Color) string {
	canvas := p.base
	if box != nil {
		canvas = image.NewRGBA(p.base.Bounds())
		copy(canvas.Pix, p.base.Pix)
		DrawOutline(canvas, *box, boxColor)
	}
	return cells(canvas, p.cols, p.rows)
}

// DrawOutline strokes a one pixel rectangle border onto dst, clipped to its
// bounds.
func DrawOutline(dst *image.RGBA, box state.Rect, c color.Color) {
	if box.Width <= 0 && box.Height <= 0 {
		dst.Set(box.X, box.Y, c)
		return
	}
	x0, y0 := box.X, box.Y
	x1, y1 := box.X+box.Width, box.Y+box.Height
	for x := x0; x <= x1; x++ {
		dst.Set(x, y0, c)
		dst.Set(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		dst.Set(x0, y, c)
		dst.Set(x1, y, c)
	}
}

func cells(canvas *image.RGBA, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		runStart := 0
		var runTop, runBottom color.RGBA
		for col := 0; col <= cols; col++ {
			var top, bottom color.RGBA
			if col < cols {
				top = canvas.RGBAAt(col, row*2)
				bottom = canvas.RGBAAt(col, row*2+1)
				if col > runStart && top == runTop && bottom == runBottom {
					continue
				}
			}
			if col > runStart {
				style := lipgloss.NewStyle().
					Foreground(hex(runTop)).
					Background(hex(runBottom))
				b.WriteString(style.Render(strings.Repeat(halfBlock, col-runStart)))
			}
			runStart, runTop, runBottom = col, top, bottom
		}
	}
	return b.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// ParseHex converts a "#rrggbb" theme color to color.RGBA. Invalid input
// yields opaque black.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

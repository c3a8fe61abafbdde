// Package surface implements the raster canvas that brush strokes are
// painted onto. All coordinates are integer pixel positions relative to the
// top-left corner of the canvas; anything outside the canvas is clipped.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
)

const (
	DefaultWidth  = 500
	DefaultHeight = 400
	// MaxDimension bounds the width and height accepted from the UI.
	MaxDimension = 1000
)

// ClampDimension limits a requested canvas width or height to
// [1, MaxDimension].
func ClampDimension(n int) int {
	return min(max(n, 1), MaxDimension)
}

// Shape selects how a single brush point is rasterised.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeRound
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeRound:
		return "round"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts a shape name such as "round" into a Shape.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "sq":
		return ShapeSquare, nil
	case "round", "circle":
		return ShapeRound, nil
	}
	return ShapeSquare, fmt.Errorf("unknown brush shape %q", s)
}

// Pen describes how points and lines are painted.
type Pen struct {
	Color color.RGBA
	Size  int
	Shape Shape
}

// Canvas is an RGBA raster with a fixed background colour.
type Canvas struct {
	img        *image.RGBA
	background color.RGBA
	version    uint64
}

// New returns a canvas of the given size filled with bg.
func New(width, height int, bg color.RGBA) *Canvas {
	c := &Canvas{background: bg}
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	c.Clear()
	return c
}

// Image exposes the live raster. Callers must not retain it across
// mutations; use Snapshot for an owned copy.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Version changes whenever a canvas method modifies the pixels or the
// dimensions. Writes made directly through Image are not counted.
func (c *Canvas) Version() uint64 { return c.version }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Background returns the colour used by Clear and Resize.
func (c *Canvas) Background() color.RGBA { return c.background }

// Clear fills the whole canvas with the background colour.
func (c *Canvas) Clear() {
	c.FillRect(c.img.Bounds(), c.background)
}

// FillRect fills r, clipped to the canvas, with col. The fill replaces
// existing pixels rather than compositing over them.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	c.version++
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// pointBox returns the size×size box a brush point at (x, y) covers. The
// top-left corner is offset by size/2 rounded down, so a size 1 brush covers
// exactly (x, y) and even sizes extend one pixel further up and left.
func pointBox(x, y, size int) image.Rectangle {
	if size < 1 {
		size = 1
	}
	half := size / 2
	return image.Rect(x-half, y-half, x-half+size, y-half+size)
}

// DrawPoint paints a single brush point centred on (x, y).
func (c *Canvas) DrawPoint(x, y int, pen Pen) {
	box := pointBox(x, y, pen.Size)
	switch pen.Shape {
	case ShapeRound:
		c.fillDisc(box, pen.Color)
	default:
		c.FillRect(box, pen.Color)
	}
}

// fillDisc paints the disc inscribed in box. Distances are measured between
// pixel centres on doubled coordinates so the test stays in integers.
func (c *Canvas) fillDisc(box image.Rectangle, col color.RGBA) {
	c.version++
	size := box.Dx()
	cx := 2*box.Min.X + size
	cy := 2*box.Min.Y + size
	r2 := size * size
	bounds := c.img.Bounds()
	for py := box.Min.Y; py < box.Max.Y; py++ {
		dy := 2*py + 1 - cy
		for px := box.Min.X; px < box.Max.X; px++ {
			dx := 2*px + 1 - cx
			if dx*dx+dy*dy > r2 {
				continue
			}
			if image.Pt(px, py).In(bounds) {
				c.img.SetRGBA(px, py, col)
			}
		}
	}
}

// DrawLine paints a brush point at every pixel Bresenham's algorithm visits
// between the two end points, both inclusive.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, pen Pen) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.DrawPoint(x0, y0, pen)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// SampleColor returns the pixel at (x, y). ok is false when the point lies
// outside the canvas.
func (c *Canvas) SampleColor(x, y int) (col color.RGBA, ok bool) {
	if !image.Pt(x, y).In(c.img.Bounds()) {
		return color.RGBA{}, false
	}
	return c.img.RGBAAt(x, y), true
}

// Snapshot returns an owned copy of the whole raster.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// Restore replaces the canvas contents with a copy of img. A snapshot of a
// different size replaces the raster dimensions too.
func (c *Canvas) Restore(img *image.RGBA) {
	if img == nil {
		return
	}
	c.version++
	if !img.Bounds().Eq(c.img.Bounds()) {
		c.img = image.NewRGBA(img.Bounds().Sub(img.Bounds().Min))
	}
	draw.Draw(c.img, c.img.Bounds(), img, img.Bounds().Min, draw.Src)
}

// Resize discards the current contents and allocates a width×height raster
// filled with the background colour. Dimensions below 1 are raised to 1.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	c.version++
	c.Clear()
}

// EncodePNG writes the canvas to w as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

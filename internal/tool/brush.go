package tool

import (
	"image/color"

	"github.com/example/pixelpad/internal/surface"
)

const (
	MinBrushSize = 1
	MaxBrushSize = 20
)

// DefaultBrushColor is the colour a new brush paints with (#ff0066).
var DefaultBrushColor = color.RGBA{0xff, 0x00, 0x66, 0xff}

// BrushConfig is the brush colour, size and shape. It is shared by the brush
// and the colour picker, which writes Color.
type BrushConfig struct {
	Color   color.RGBA
	Size    int
	Shape   surface.Shape
	MinSize int
	MaxSize int
}

// NewBrushConfig returns the default one pixel square brush.
func NewBrushConfig() *BrushConfig {
	return &BrushConfig{
		Color:   DefaultBrushColor,
		Size:    MinBrushSize,
		Shape:   surface.ShapeSquare,
		MinSize: MinBrushSize,
		MaxSize: MaxBrushSize,
	}
}

// ClampSize limits n to [MinSize, MaxSize].
func (b *BrushConfig) ClampSize(n int) int {
	if n < b.MinSize {
		return b.MinSize
	}
	if n > b.MaxSize {
		return b.MaxSize
	}
	return n
}

// SetSize stores n clamped to the allowed range and returns the stored value.
func (b *BrushConfig) SetSize(n int) int {
	b.Size = b.ClampSize(n)
	return b.Size
}

// Pen returns the paint settings for the surface primitives.
func (b *BrushConfig) Pen() surface.Pen {
	return surface.Pen{Color: b.Color, Size: b.ClampSize(b.Size), Shape: b.Shape}
}

// Brush paints connected strokes. It is Idle until a press or a re-entry
// with the pointer held starts a stroke, and Stroking until the pointer is
// released or leaves the canvas.
type Brush struct {
	s *Session
}

func (b *Brush) PointerDown(p Pointer) { b.startStroke(p) }

func (b *Brush) PointerMove(p Pointer) {
	if b.stroking() {
		b.draw(p)
	}
}

func (b *Brush) PointerLeave(p Pointer) { b.stopStroke(p) }

// PointerEnter resumes drawing when the pointer comes back with the button
// still held.
func (b *Brush) PointerEnter(p Pointer) {
	if b.s.Gesture.PointerDown {
		b.startStroke(p)
	}
}

func (b *Brush) PointerUp(p Pointer) {
	if b.stroking() {
		b.stopStroke(p)
	}
}

// Stroking reports whether this brush owns the stroke in progress.
func (b *Brush) Stroking() bool { return b.stroking() }

func (b *Brush) stroking() bool {
	return b.s.Gesture.Drawing && b.s.owner == Tool(b)
}

func (b *Brush) startStroke(p Pointer) {
	s := b.s
	if !s.Gesture.Saved {
		if s.History != nil {
			s.History.SaveState()
		}
		s.Gesture.Saved = true
	}
	s.Gesture.Drawing = true
	s.owner = b
	s.Gesture.LastX, s.Gesture.LastY = p.X, p.Y
	s.Surface.DrawPoint(p.X, p.Y, s.Brush.Pen())
}

func (b *Brush) draw(p Pointer) {
	s := b.s
	s.Surface.DrawLine(s.Gesture.LastX, s.Gesture.LastY, p.X, p.Y, s.Brush.Pen())
	s.Gesture.LastX, s.Gesture.LastY = p.X, p.Y
}

func (b *Brush) stopStroke(p Pointer) {
	s := b.s
	if s.owner != nil && s.owner != Tool(b) {
		return
	}
	if b.stroking() {
		s.Surface.DrawLine(s.Gesture.LastX, s.Gesture.LastY, p.X, p.Y, s.Brush.Pen())
		s.strokeEnded()
	}
	s.Gesture.LastX, s.Gesture.LastY = 0, 0
	s.Gesture.Drawing = false
	s.owner = nil
}

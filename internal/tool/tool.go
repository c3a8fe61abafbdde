// Package tool implements the pointer-driven editing tools and the
// dispatcher that routes raw pointer events to whichever tool is active.
package tool

import (
	"image/color"

	"github.com/example/pixelpad/internal/history"
	"github.com/example/pixelpad/internal/surface"
)

// Pointer is a pointer position in canvas coordinates.
type Pointer struct {
	X, Y int
}

// Tool receives pointer lifecycle events from the Dispatcher.
type Tool interface {
	PointerDown(Pointer)
	PointerMove(Pointer)
	PointerLeave(Pointer)
	PointerEnter(Pointer)
	PointerUp(Pointer)
}

// NopTool ignores every event. Embed it to implement only the events a tool
// cares about.
type NopTool struct{}

func (NopTool) PointerDown(Pointer)  {}
func (NopTool) PointerMove(Pointer)  {}
func (NopTool) PointerLeave(Pointer) {}
func (NopTool) PointerEnter(Pointer) {}
func (NopTool) PointerUp(Pointer)    {}

// Kind identifies one of the built-in tools.
type Kind int

const (
	KindNone Kind = iota
	KindBrush
	KindColorPicker
)

func (k Kind) String() string {
	switch k {
	case KindBrush:
		return "brush"
	case KindColorPicker:
		return "picker"
	default:
		return "none"
	}
}

// Surface is the raster the tools paint on and sample from.
type Surface interface {
	DrawPoint(x, y int, pen surface.Pen)
	DrawLine(x0, y0, x1, y1 int, pen surface.Pen)
	SampleColor(x, y int) (color.RGBA, bool)
}

// Gesture tracks the state of the current pointer interaction.
type Gesture struct {
	// Drawing is true between a stroke start and the matching stop.
	Drawing bool
	// PointerDown is true between a pointer press anywhere and the next
	// release, whichever tool is active.
	PointerDown bool
	// Saved records that the current press already took a history
	// snapshot, so a stroke resumed on re-entry stays one undo step.
	Saved bool
	// LastX and LastY anchor the next stroke segment.
	LastX, LastY int
}

// Session bundles the state shared by the dispatcher and the tools. It is
// owned by a single goroutine; nothing in it is safe for concurrent use.
type Session struct {
	Brush   *BrushConfig
	Gesture Gesture
	Surface Surface
	History *history.History

	// OnStrokeEnd runs after a brush stroke finishes.
	OnStrokeEnd func()
	// OnColorSampled receives every colour the picker writes into Brush.
	OnColorSampled func(color.RGBA)

	brush  *Brush
	picker *ColorPicker
	active Tool
	// owner is the tool that started the stroke in progress, if any.
	owner Tool
}

// NewSession wires a brush and a colour picker to the given surface and
// history. The brush starts as the active tool. A nil cfg selects
// NewBrushConfig.
func NewSession(s Surface, h *history.History, cfg *BrushConfig) *Session {
	if cfg == nil {
		cfg = NewBrushConfig()
	}
	sess := &Session{Brush: cfg, Surface: s, History: h}
	sess.brush = &Brush{s: sess}
	sess.picker = &ColorPicker{s: sess}
	sess.active = sess.brush
	return sess
}

// Active returns the tool receiving events, or nil.
func (s *Session) Active() Tool { return s.active }

// SetActive replaces the active tool. A nil tool makes the dispatcher drop
// events until another tool is set.
func (s *Session) SetActive(t Tool) { s.active = t }

// ActiveKind reports which built-in tool is active.
func (s *Session) ActiveKind() Kind {
	switch s.active {
	case nil:
		return KindNone
	case Tool(s.brush):
		return KindBrush
	case Tool(s.picker):
		return KindColorPicker
	}
	return KindNone
}

func (s *Session) BrushTool() *Brush { return s.brush }

func (s *Session) ColorPickerTool() *ColorPicker { return s.picker }

func (s *Session) SwitchToBrush() { s.active = s.brush }

func (s *Session) SwitchToColorPicker() { s.active = s.picker }

// Stroking reports whether a stroke is in progress.
func (s *Session) Stroking() bool { return s.Gesture.Drawing }

func (s *Session) strokeEnded() {
	if s.OnStrokeEnd != nil {
		s.OnStrokeEnd()
	}
}

package tool

import (
	"image/color"
	"testing"

	"github.com/example/pixelpad/internal/history"
	"github.com/example/pixelpad/internal/surface"
)

var white = color.RGBA{255, 255, 255, 255}

type fixture struct {
	canvas  *surface.Canvas
	history *history.History
	sess    *Session
	disp    *Dispatcher
	strokes int
}

func newFixture(t *testing.T, w, h int) *fixture {
	t.Helper()
	f := &fixture{canvas: surface.New(w, h, white)}
	f.history = history.New(f.canvas, 50)
	f.sess = NewSession(f.canvas, f.history, nil)
	f.sess.OnStrokeEnd = func() { f.strokes++ }
	f.disp = NewDispatcher(f.sess)
	return f
}

func (f *fixture) at(x, y int) color.RGBA {
	c, _ := f.canvas.SampleColor(x, y)
	return c
}

func TestBrushClickPaintsSinglePoint(t *testing.T) {
	f := newFixture(t, 20, 20)
	f.disp.PointerDown(Pointer{10, 10})
	if !f.sess.Stroking() {
		t.Fatalf("expected stroke after press")
	}
	f.disp.PointerUp(Pointer{10, 10})
	if f.sess.Stroking() {
		t.Fatalf("stroke still active after release")
	}
	if got := f.at(10, 10); got != DefaultBrushColor {
		t.Fatalf("pixel = %v, want %v", got, DefaultBrushColor)
	}
	if got := f.at(11, 10); got != white {
		t.Fatalf("neighbour painted: %v", got)
	}
	if f.history.UndoLen() != 1 {
		t.Fatalf("expected exactly one history entry, got %d", f.history.UndoLen())
	}
	if f.strokes != 1 {
		t.Fatalf("expected one stroke end, got %d", f.strokes)
	}
}

func TestBrushDragConnectsSegments(t *testing.T) {
	f := newFixture(t, 30, 30)
	f.disp.PointerDown(Pointer{2, 2})
	f.disp.PointerMove(Pointer{12, 2})
	f.disp.PointerMove(Pointer{12, 14})
	f.disp.PointerUp(Pointer{12, 14})
	for x := 2; x <= 12; x++ {
		if f.at(x, 2) != DefaultBrushColor {
			t.Fatalf("gap at (%d,2)", x)
		}
	}
	for y := 2; y <= 14; y++ {
		if f.at(12, y) != DefaultBrushColor {
			t.Fatalf("gap at (12,%d)", y)
		}
	}
	if f.history.UndoLen() != 1 {
		t.Fatalf("a drag must be a single undo step, got %d", f.history.UndoLen())
	}
}

func TestMoveWithoutPressDoesNotPaint(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.disp.PointerMove(Pointer{3, 3})
	f.disp.PointerMove(Pointer{6, 6})
	if f.at(3, 3) != white || f.at(6, 6) != white {
		t.Fatalf("hover painted pixels")
	}
	if f.history.UndoLen() != 0 {
		t.Fatalf("hover recorded history")
	}
}

func TestNilActiveToolDropsEvents(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.sess.SetActive(nil)
	f.disp.PointerDown(Pointer{1, 1})
	f.disp.PointerMove(Pointer{5, 5})
	f.disp.PointerLeave(Pointer{9, 9})
	f.disp.PointerEnter(Pointer{9, 9})
	f.disp.PointerUp(Pointer{5, 5})
	if f.at(1, 1) != white || f.history.UndoLen() != 0 {
		t.Fatalf("events reached a tool with no active tool set")
	}
	if f.sess.ActiveKind() != KindNone {
		t.Fatalf("ActiveKind = %v", f.sess.ActiveKind())
	}
}

func TestPointerDownFlagIsToolIndependent(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.sess.SetActive(nil)
	f.disp.PointerDown(Pointer{1, 1})
	if !f.sess.Gesture.PointerDown {
		t.Fatalf("pointer-down flag not set")
	}
	f.sess.SwitchToColorPicker()
	f.disp.PointerUp(Pointer{1, 1})
	if f.sess.Gesture.PointerDown {
		t.Fatalf("pointer-down flag not cleared")
	}
}

func TestContextMenuSuppressed(t *testing.T) {
	f := newFixture(t, 4, 4)
	if !f.disp.ContextMenu(Pointer{1, 1}) {
		t.Fatalf("context menu must be suppressed")
	}
}

func TestColorPickerSamplesAndHandsOff(t *testing.T) {
	f := newFixture(t, 10, 10)
	green := color.RGBA{0, 200, 0, 255}
	blue := color.RGBA{0, 0, 200, 255}
	f.canvas.DrawPoint(2, 2, surface.Pen{Color: green, Size: 1})
	f.canvas.DrawPoint(7, 7, surface.Pen{Color: blue, Size: 1})
	var mirrored []color.RGBA
	f.sess.OnColorSampled = func(c color.RGBA) { mirrored = append(mirrored, c) }

	f.sess.SwitchToColorPicker()
	if f.sess.ActiveKind() != KindColorPicker {
		t.Fatalf("picker not active")
	}
	f.disp.PointerDown(Pointer{2, 2})
	if f.sess.Brush.Color != green {
		t.Fatalf("brush colour = %v, want %v", f.sess.Brush.Color, green)
	}
	f.disp.PointerMove(Pointer{7, 7})
	if f.sess.Brush.Color != blue {
		t.Fatalf("drag did not resample: %v", f.sess.Brush.Color)
	}
	f.disp.PointerUp(Pointer{7, 7})
	if f.sess.ActiveKind() != KindBrush {
		t.Fatalf("release did not return to the brush, active = %v", f.sess.ActiveKind())
	}
	if len(mirrored) != 2 {
		t.Fatalf("expected 2 mirrored colours, got %d", len(mirrored))
	}
	if f.history.UndoLen() != 0 {
		t.Fatalf("sampling must not record history")
	}

	// The next press paints instead of sampling.
	f.disp.PointerDown(Pointer{5, 5})
	f.disp.PointerUp(Pointer{5, 5})
	if f.at(5, 5) != blue {
		t.Fatalf("press after hand-off did not paint with sampled colour: %v", f.at(5, 5))
	}
}

func TestColorPickerHoverDoesNotSample(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.sess.SwitchToColorPicker()
	f.disp.PointerMove(Pointer{4, 4})
	if f.sess.Brush.Color != DefaultBrushColor {
		t.Fatalf("hover changed brush colour to %v", f.sess.Brush.Color)
	}
	f.disp.PointerDown(Pointer{40, 40})
	if f.sess.Brush.Color != DefaultBrushColor {
		t.Fatalf("sampling outside the canvas changed the colour")
	}
}

func TestReentryResumesSameEdit(t *testing.T) {
	f := newFixture(t, 20, 20)
	f.disp.PointerDown(Pointer{5, 5})
	f.disp.PointerMove(Pointer{10, 5})
	f.disp.PointerLeave(Pointer{19, 5})
	if f.sess.Stroking() {
		t.Fatalf("leave must stop the stroke")
	}
	if f.strokes != 1 {
		t.Fatalf("leave must finish the stroke, got %d stroke ends", f.strokes)
	}
	if f.at(19, 5) != DefaultBrushColor {
		t.Fatalf("closing segment to the leave point missing")
	}
	f.disp.PointerEnter(Pointer{19, 12})
	if !f.sess.Stroking() {
		t.Fatalf("re-entry with the button held must resume drawing")
	}
	f.disp.PointerMove(Pointer{10, 12})
	f.disp.PointerUp(Pointer{10, 12})
	for x := 10; x <= 19; x++ {
		if f.at(x, 12) != DefaultBrushColor {
			t.Fatalf("resumed stroke has a gap at (%d,12)", x)
		}
	}
	// Nothing may connect the leave point to the re-entry point.
	if f.at(19, 8) != white {
		t.Fatalf("stroke bridged the gap outside the canvas")
	}
	if f.history.UndoLen() != 1 {
		t.Fatalf("whole drag must be one undo step, got %d", f.history.UndoLen())
	}
	f.history.Undo()
	if f.at(5, 5) != white || f.at(10, 12) != white {
		t.Fatalf("undo did not remove the whole drag")
	}
}

func TestEnterWithoutPressDoesNotDraw(t *testing.T) {
	f := newFixture(t, 10, 10)
	f.disp.PointerEnter(Pointer{0, 3})
	if f.sess.Stroking() || f.at(0, 3) != white {
		t.Fatalf("entering without a held button drew")
	}
}

func TestNewPressTakesNewSnapshot(t *testing.T) {
	f := newFixture(t, 10, 10)
	for i := 0; i < 3; i++ {
		f.disp.PointerDown(Pointer{i, i})
		f.disp.PointerUp(Pointer{i, i})
	}
	if f.history.UndoLen() != 3 {
		t.Fatalf("expected one snapshot per press, got %d", f.history.UndoLen())
	}
}

func TestSwitchingToolsMidStrokeLeavesStrokeWithBrush(t *testing.T) {
	f := newFixture(t, 20, 20)
	f.disp.PointerDown(Pointer{2, 2})
	f.disp.PointerMove(Pointer{6, 2})
	f.sess.SwitchToColorPicker()
	if !f.sess.Stroking() {
		t.Fatalf("switching tools must not end the stroke by itself")
	}
	f.disp.PointerUp(Pointer{6, 9})
	if f.sess.Stroking() {
		t.Fatalf("stroke owner did not receive the release")
	}
	if f.strokes != 1 {
		t.Fatalf("expected the brush to finish its stroke, got %d", f.strokes)
	}
	if f.sess.ActiveKind() != KindBrush {
		t.Fatalf("picker release should hand back to the brush")
	}
	if f.at(6, 9) != DefaultBrushColor {
		t.Fatalf("closing segment of the owning brush is missing")
	}
}

func TestBrushSizeClamping(t *testing.T) {
	cfg := NewBrushConfig()
	if got := cfg.SetSize(9999); got != MaxBrushSize {
		t.Fatalf("SetSize(9999) = %d", got)
	}
	if got := cfg.SetSize(9999); got != MaxBrushSize {
		t.Fatalf("second SetSize(9999) = %d", got)
	}
	if got := cfg.SetSize(-5); got != MinBrushSize || cfg.Size != MinBrushSize {
		t.Fatalf("SetSize(-5) = %d, size %d", got, cfg.Size)
	}
	if got := cfg.SetSize(7); got != 7 {
		t.Fatalf("SetSize(7) = %d", got)
	}
}

func TestRoundBrushUsesShape(t *testing.T) {
	f := newFixture(t, 20, 20)
	f.sess.Brush.Shape = surface.ShapeRound
	f.sess.Brush.SetSize(4)
	f.disp.PointerDown(Pointer{10, 10})
	f.disp.PointerUp(Pointer{10, 10})
	// Corners of the 4x4 box stay clear for a round point.
	if f.at(8, 8) != white {
		t.Fatalf("round brush painted the box corner")
	}
	if f.at(10, 10) != DefaultBrushColor {
		t.Fatalf("round brush missed its centre")
	}
}

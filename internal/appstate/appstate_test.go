package appstate

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixelpad/internal/surface"
	"github.com/example/pixelpad/internal/tool"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	pink  = color.RGBA{0xff, 0x00, 0x66, 0xff}
)

func countColor(a *AppState, col color.RGBA) int {
	img := a.Canvas().Image()
	n := 0
	for y := 0; y < a.Canvas().Height(); y++ {
		for x := 0; x < a.Canvas().Width(); x++ {
			if img.RGBAAt(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestSingleClickThenUndo(t *testing.T) {
	a := New(WithClipboard(func([]byte) error { return nil }))
	if a.Canvas().Width() != 500 || a.Canvas().Height() != 400 {
		t.Fatalf("default canvas = %dx%d", a.Canvas().Width(), a.Canvas().Height())
	}
	b := a.Brush()
	if b.Color != pink || b.Size != 1 || b.Shape != surface.ShapeSquare {
		t.Fatalf("default brush = %+v", b)
	}
	d := a.Dispatcher()
	d.PointerDown(tool.Pointer{X: 10, Y: 10})
	d.PointerUp(tool.Pointer{X: 10, Y: 10})

	if got := a.Canvas().Image().RGBAAt(10, 10); got != pink {
		t.Fatalf("pixel (10,10) = %v", got)
	}
	if n := countColor(a, pink); n != 1 {
		t.Fatalf("expected one painted pixel, got %d", n)
	}
	if !a.Undo() {
		t.Fatalf("undo reported nothing to undo")
	}
	if n := countColor(a, white); n != 500*400 {
		t.Fatalf("undo left %d non-white pixels", 500*400-n)
	}
}

func TestCanvasSizeClamped(t *testing.T) {
	a := New(WithCanvasSize(5000, 0))
	if a.Canvas().Width() != surface.MaxDimension || a.Canvas().Height() != 1 {
		t.Fatalf("canvas = %dx%d", a.Canvas().Width(), a.Canvas().Height())
	}
}

func TestBrushSettings(t *testing.T) {
	a := New(WithBrush(color.RGBA{1, 2, 3, 255}, 99, surface.ShapeRound))
	if b := a.Brush(); b.Size != tool.MaxBrushSize || b.Shape != surface.ShapeRound {
		t.Fatalf("brush = %+v", b)
	}
	if got := a.SetBrushSize(0); got != tool.MinBrushSize {
		t.Fatalf("SetBrushSize(0) = %d", got)
	}
	if err := a.SetBrushColor("#00ff00"); err != nil {
		t.Fatalf("SetBrushColor: %v", err)
	}
	if err := a.SetBrushColor("not-a-colour"); err == nil {
		t.Fatalf("expected error for invalid colour")
	}
	if a.Brush().Color != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("invalid colour changed the brush: %v", a.Brush().Color)
	}
	a.SetBrushRGBA(color.RGBA{9, 9, 9, 10})
	if a.Brush().Color.A != 0xff {
		t.Fatalf("brush colour must be opaque")
	}
}

func TestHandleKey(t *testing.T) {
	a := New(WithCanvasSize(10, 10))
	a.Dispatcher().PointerDown(tool.Pointer{X: 1, Y: 1})
	a.Dispatcher().PointerUp(tool.Pointer{X: 1, Y: 1})
	if !a.HandleKey('Z') {
		t.Fatalf("Z not handled")
	}
	if a.Canvas().Image().RGBAAt(1, 1) != white {
		t.Fatalf("Z did not undo")
	}
	if !a.HandleKey('y') {
		t.Fatalf("y not handled")
	}
	if a.Canvas().Image().RGBAAt(1, 1) != pink {
		t.Fatalf("y did not redo")
	}
	if a.HandleKey('x') {
		t.Fatalf("x should not be bound")
	}
}

func TestClearCanvasConfirm(t *testing.T) {
	a := New(WithCanvasSize(8, 8))
	a.Dispatcher().PointerDown(tool.Pointer{X: 2, Y: 2})
	a.Dispatcher().PointerUp(tool.Pointer{X: 2, Y: 2})

	var asked string
	if a.ClearCanvas(func(p string) bool { asked = p; return false }) {
		t.Fatalf("declined clear reported success")
	}
	if asked == "" {
		t.Fatalf("confirm was not consulted")
	}
	if a.Canvas().Image().RGBAAt(2, 2) != pink {
		t.Fatalf("declined clear changed the canvas")
	}
	if !a.ClearCanvas(nil) {
		t.Fatalf("default confirm should accept")
	}
	if countColor(a, white) != 64 {
		t.Fatalf("clear left painted pixels")
	}
	if !a.Undo() || a.Canvas().Image().RGBAAt(2, 2) != pink {
		t.Fatalf("clear must be undoable")
	}
}

func TestResizeDropsHistory(t *testing.T) {
	a := New(WithCanvasSize(8, 8))
	a.Dispatcher().PointerDown(tool.Pointer{X: 2, Y: 2})
	a.Dispatcher().PointerUp(tool.Pointer{X: 2, Y: 2})
	if a.SetCanvasWidth(20, func(string) bool { return false }) {
		t.Fatalf("declined resize reported success")
	}
	if a.Canvas().Width() != 8 {
		t.Fatalf("declined resize changed the width")
	}
	if !a.SetCanvasWidth(2000, nil) {
		t.Fatalf("resize failed")
	}
	if a.Canvas().Width() != surface.MaxDimension || a.Canvas().Height() != 8 {
		t.Fatalf("canvas = %dx%d", a.Canvas().Width(), a.Canvas().Height())
	}
	if a.History().CanUndo() || a.History().CanRedo() {
		t.Fatalf("resize must clear the history")
	}
	if !a.SetCanvasHeight(-4, nil) || a.Canvas().Height() != 1 {
		t.Fatalf("height not clamped to 1: %d", a.Canvas().Height())
	}
}

func TestExportImageCache(t *testing.T) {
	a := New(WithCanvasSize(4, 4))
	first, err := a.ExportImage()
	if err != nil {
		t.Fatalf("ExportImage: %v", err)
	}
	again, _ := a.ExportImage()
	if &first[0] != &again[0] {
		t.Fatalf("unchanged canvas was re-encoded")
	}
	a.Dispatcher().PointerDown(tool.Pointer{X: 3, Y: 0})
	a.Dispatcher().PointerUp(tool.Pointer{X: 3, Y: 0})
	after, _ := a.ExportImage()
	if bytes.Equal(first, after) {
		t.Fatalf("export not refreshed after a stroke")
	}
	img, err := png.Decode(bytes.NewReader(after))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, g, b, _ := img.At(3, 0).RGBA(); r>>8 != 0xff || g>>8 != 0 || b>>8 != 0x66 {
		t.Fatalf("exported pixel = %v", img.At(3, 0))
	}
	a.Undo()
	undone, _ := a.ExportImage()
	if !bytes.Equal(first, undone) {
		t.Fatalf("export after undo differs from the original")
	}
}

func TestSaveUsesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	a := New(WithCanvasSize(3, 2), WithOutput(out))
	path, err := a.Save("")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != out {
		t.Fatalf("saved to %q, want %q", path, out)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("saved bounds = %v", b)
	}
}

func TestCopyPublishesPNG(t *testing.T) {
	var got []byte
	a := New(WithCanvasSize(2, 2), WithClipboard(func(b []byte) error { got = b; return nil }))
	if err := a.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	want, _ := a.ExportImage()
	if !bytes.Equal(got, want) {
		t.Fatalf("clipboard received %d bytes, want the PNG export", len(got))
	}
}

func TestColorListenerSeesPickedColour(t *testing.T) {
	var seen []color.RGBA
	a := New(WithCanvasSize(4, 4), WithColorListener(func(c color.RGBA) { seen = append(seen, c) }))
	a.SwitchToColorPicker()
	a.Dispatcher().PointerDown(tool.Pointer{X: 0, Y: 0})
	a.Dispatcher().PointerUp(tool.Pointer{X: 0, Y: 0})
	if len(seen) != 1 || seen[0] != white {
		t.Fatalf("listener saw %v", seen)
	}
	if a.Status().Tool != tool.KindBrush {
		t.Fatalf("picker did not hand back to the brush")
	}
}

func TestPostRunsInlineWithoutWindow(t *testing.T) {
	a := New(WithCanvasSize(2, 2))
	ran := false
	a.Post(func(*AppState) { ran = true })
	if !ran {
		t.Fatalf("posted function did not run")
	}
}

func TestStatusString(t *testing.T) {
	a := New(WithCanvasSize(30, 20))
	want := "tool=brush color=#FF0066 size=1 shape=square canvas=30x20 undo=0 redo=0"
	if got := a.Status().String(); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestReadyWaitsForWindow(t *testing.T) {
	a := New(WithCanvasSize(2, 2))
	select {
	case <-a.Ready():
		t.Fatalf("ready before a window opened")
	default:
	}
	var posted []func(*AppState)
	a.setPoster(func(fn func(*AppState)) { posted = append(posted, fn) })
	select {
	case <-a.Ready():
	default:
		t.Fatalf("ready not closed once posting is wired")
	}
	a.Post(func(*AppState) {})
	if len(posted) != 1 {
		t.Fatalf("post bypassed the event loop")
	}
	a.setPoster(nil)
}

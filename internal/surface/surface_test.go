package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	pink  = color.RGBA{0xff, 0x00, 0x66, 0xff}
)

func countColor(img *image.RGBA, col color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestNewFillsBackground(t *testing.T) {
	c := New(5, 4, white)
	if got := c.Bounds(); !got.Eq(image.Rect(0, 0, 5, 4)) {
		t.Fatalf("bounds = %v", got)
	}
	if n := countColor(c.Image(), white); n != 20 {
		t.Fatalf("expected 20 background pixels, got %d", n)
	}
}

func TestDrawPointSquareSizeOne(t *testing.T) {
	c := New(20, 20, white)
	c.DrawPoint(10, 10, Pen{Color: pink, Size: 1, Shape: ShapeSquare})
	if got := c.Image().RGBAAt(10, 10); got != pink {
		t.Fatalf("pixel (10,10) = %v, want %v", got, pink)
	}
	if n := countColor(c.Image(), pink); n != 1 {
		t.Fatalf("expected exactly one painted pixel, got %d", n)
	}
}

func TestDrawPointSquareBox(t *testing.T) {
	tests := []struct {
		size int
		want image.Rectangle
	}{
		{1, image.Rect(5, 5, 6, 6)},
		{2, image.Rect(4, 4, 6, 6)},
		{3, image.Rect(4, 4, 7, 7)},
		{4, image.Rect(3, 3, 7, 7)},
	}
	for _, tc := range tests {
		c := New(12, 12, white)
		c.DrawPoint(5, 5, Pen{Color: pink, Size: tc.size})
		for y := 0; y < 12; y++ {
			for x := 0; x < 12; x++ {
				painted := c.Image().RGBAAt(x, y) == pink
				if painted != image.Pt(x, y).In(tc.want) {
					t.Fatalf("size %d: pixel (%d,%d) painted=%v, want box %v", tc.size, x, y, painted, tc.want)
				}
			}
		}
	}
}

func TestDrawPointRound(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 1},
		{2, 4},
		{4, 12},
		{6, 32},
	}
	for _, tc := range tests {
		c := New(16, 16, white)
		c.DrawPoint(8, 8, Pen{Color: pink, Size: tc.size, Shape: ShapeRound})
		if n := countColor(c.Image(), pink); n != tc.want {
			t.Errorf("size %d: painted %d pixels, want %d", tc.size, n, tc.want)
		}
		if c.Image().RGBAAt(8, 8) != pink {
			t.Errorf("size %d: centre not painted", tc.size)
		}
	}
}

func TestDrawLineContinuity(t *testing.T) {
	c := New(20, 5, white)
	c.DrawLine(0, 0, 10, 0, Pen{Color: pink, Size: 1, Shape: ShapeRound})
	for x := 0; x <= 10; x++ {
		if got := c.Image().RGBAAt(x, 0); got != pink {
			t.Fatalf("gap at x=%d: %v", x, got)
		}
	}
	if n := countColor(c.Image(), pink); n != 11 {
		t.Fatalf("expected 11 painted pixels, got %d", n)
	}
}

func TestDrawLineSteepHasNoGaps(t *testing.T) {
	c := New(20, 20, white)
	c.DrawLine(15, 2, 3, 17, Pen{Color: pink, Size: 1})
	for y := 2; y <= 17; y++ {
		found := false
		for x := 0; x < 20; x++ {
			if c.Image().RGBAAt(x, y) == pink {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("row %d has no painted pixel", y)
		}
	}
}

func TestDrawClipsOutsideCanvas(t *testing.T) {
	c := New(4, 4, white)
	c.DrawLine(-5, -5, 8, 8, Pen{Color: pink, Size: 3})
	c.DrawPoint(100, 100, Pen{Color: pink, Size: 5, Shape: ShapeRound})
	if !c.Bounds().Eq(image.Rect(0, 0, 4, 4)) {
		t.Fatalf("canvas bounds changed: %v", c.Bounds())
	}
	if c.Image().RGBAAt(0, 0) != pink || c.Image().RGBAAt(3, 3) != pink {
		t.Fatalf("expected diagonal to be painted inside the canvas")
	}
}

func TestSampleColor(t *testing.T) {
	c := New(3, 3, white)
	c.DrawPoint(1, 1, Pen{Color: pink, Size: 1})
	if got, ok := c.SampleColor(1, 1); !ok || got != pink {
		t.Fatalf("SampleColor(1,1) = %v, %v", got, ok)
	}
	if _, ok := c.SampleColor(3, 0); ok {
		t.Fatalf("expected out-of-range sample to fail")
	}
	if _, ok := c.SampleColor(-1, 0); ok {
		t.Fatalf("expected negative sample to fail")
	}
}

func TestSnapshotIsOwnedCopy(t *testing.T) {
	c := New(4, 4, white)
	snap := c.Snapshot()
	c.DrawPoint(0, 0, Pen{Color: pink, Size: 1})
	if snap.RGBAAt(0, 0) != white {
		t.Fatalf("snapshot aliased the live raster")
	}
	c.Restore(snap)
	if c.Image().RGBAAt(0, 0) != white {
		t.Fatalf("restore did not bring back the snapshot")
	}
	c.DrawPoint(1, 1, Pen{Color: pink, Size: 1})
	if snap.RGBAAt(1, 1) != white {
		t.Fatalf("restore aliased the snapshot")
	}
}

func TestRestoreIsBitExact(t *testing.T) {
	c := New(8, 8, white)
	c.DrawLine(0, 0, 7, 5, Pen{Color: color.RGBA{1, 2, 3, 4}, Size: 2, Shape: ShapeRound})
	before := c.Snapshot()
	c.FillRect(image.Rect(2, 2, 6, 6), pink)
	c.Restore(before)
	if !bytes.Equal(c.Image().Pix, before.Pix) {
		t.Fatalf("restore is not bit exact")
	}
}

func TestResizeClearsToBackground(t *testing.T) {
	c := New(4, 4, white)
	c.DrawPoint(1, 1, Pen{Color: pink, Size: 1})
	c.Resize(7, 0)
	if !c.Bounds().Eq(image.Rect(0, 0, 7, 1)) {
		t.Fatalf("bounds after resize = %v", c.Bounds())
	}
	if n := countColor(c.Image(), white); n != 7 {
		t.Fatalf("expected background fill after resize, got %d white pixels", n)
	}
}

func TestEncodePNG(t *testing.T) {
	c := New(2, 2, white)
	c.DrawPoint(1, 0, Pen{Color: pink, Size: 1})
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	if r>>8 != 0xff || g>>8 != 0 || b>>8 != 0x66 {
		t.Fatalf("decoded pixel = %v", img.At(1, 0))
	}
}

func TestParseShape(t *testing.T) {
	if s, err := ParseShape("Round"); err != nil || s != ShapeRound {
		t.Fatalf("ParseShape(Round) = %v, %v", s, err)
	}
	if s, err := ParseShape(" square "); err != nil || s != ShapeSquare {
		t.Fatalf("ParseShape(square) = %v, %v", s, err)
	}
	if _, err := ParseShape("triangle"); err == nil {
		t.Fatalf("expected error for unknown shape")
	}
}

func TestClampDimension(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 640: 640, 1000: 1000, 1001: 1000, 99999: 1000} {
		if got := ClampDimension(in); got != want {
			t.Errorf("ClampDimension(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestVersionTracksChanges(t *testing.T) {
	c := New(4, 4, white)
	steps := []struct {
		name   string
		mutate func()
		change bool
	}{
		{"sample", func() { c.SampleColor(1, 1) }, false},
		{"snapshot", func() { c.Snapshot() }, false},
		{"fill outside", func() { c.FillRect(image.Rect(10, 10, 12, 12), pink) }, false},
		{"square point", func() { c.DrawPoint(1, 1, Pen{Color: pink, Size: 1}) }, true},
		{"round point", func() { c.DrawPoint(2, 2, Pen{Color: pink, Size: 3, Shape: ShapeRound}) }, true},
		{"clear", func() { c.Clear() }, true},
		{"restore", func() { c.Restore(c.Snapshot()) }, true},
		{"resize", func() { c.Resize(2, 2) }, true},
	}
	for _, s := range steps {
		before := c.Version()
		s.mutate()
		if changed := c.Version() != before; changed != s.change {
			t.Errorf("%s: version changed = %v, want %v", s.name, changed, s.change)
		}
	}
}

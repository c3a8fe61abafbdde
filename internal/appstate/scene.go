package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelpad/internal/surface"
	"github.com/example/pixelpad/internal/theme"
	"github.com/example/pixelpad/internal/tool"
)

const (
	headerHeight = 24
	bottomHeight = 24
	buttonHeight = 22
	swatchSize   = 16
	swatchGap    = 2
	previewSize  = 16
)

const (
	minZoom = 0.1
	maxZoom = 32
)

type toolbarItem struct {
	label  string
	action string
}

var toolbarItems = []toolbarItem{
	{"B:Brush", "brush"},
	{"P:Picker", "picker"},
	{"Square", "square"},
	{"Round", "round"},
	{"Size -", "size-"},
	{"Size +", "size+"},
	{"Z:Undo", "undo"},
	{"Y:Redo", "redo"},
	{"Clear", "clear"},
	{"Width -", "width-"},
	{"Width +", "width+"},
	{"Height -", "height-"},
	{"Height +", "height+"},
}

type shortcutItem struct {
	label  string
	action string
}

func shortcutItems(zoom float64) []shortcutItem {
	return []shortcutItem{
		{"^S:save", "save"},
		{"^C:copy image", "copy"},
		{"Z:undo", "undo"},
		{"Y:redo", "redo"},
		{fmt.Sprintf("+/-:zoom (%.0f%%)", zoom*100), "zoomfit"},
		{"Q:quit", "quit"},
	}
}

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// toolbarWidth is wide enough for the program title, every toolbar label and
// two palette columns.
var toolbarWidth = func() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(ProgramTitle).Ceil() + 8
	for _, it := range toolbarItems {
		if lw := d.MeasureString(it.label).Ceil() + 8; lw > w {
			w = lw
		}
	}
	if least := 2*(swatchSize+swatchGap) + 2*swatchGap; w < least {
		w = least
	}
	return w
}()

func paletteColumns() int {
	return (toolbarWidth - swatchGap) / (swatchSize + swatchGap)
}

// chromeHeight is the smallest window height showing the whole toolbar.
func chromeHeight() int {
	cols := paletteColumns()
	rows := (len(palette) + cols - 1) / cols
	return headerHeight + len(toolbarItems)*buttonHeight + 4 +
		rows*(swatchSize+swatchGap) + 4 + previewSize + 4 + bottomHeight
}

// windowSize returns the initial window size for a canvas shown at 100%.
func windowSize(canvas image.Rectangle) (int, int) {
	w := canvas.Dx() + toolbarWidth
	h := canvas.Dy() + headerHeight + bottomHeight
	if ch := chromeHeight(); h < ch {
		h = ch
	}
	return w, h
}

func fitZoom(canvas image.Rectangle, winW, winH int) float64 {
	availW := winW - toolbarWidth
	availH := winH - headerHeight - bottomHeight
	if availW <= 0 || availH <= 0 || canvas.Empty() {
		return 1
	}
	zx := float64(availW) / float64(canvas.Dx())
	zy := float64(availH) / float64(canvas.Dy())
	return clampZoom(math.Min(zx, zy))
}

func clampZoom(z float64) float64 {
	return math.Max(minZoom, math.Min(maxZoom, z))
}

// imageRect anchors the canvas just below the header and right of the
// toolbar so it stays put while the canvas changes size.
func imageRect(canvas image.Rectangle, zoom float64) image.Rectangle {
	w := int(float64(canvas.Dx()) * zoom)
	h := int(float64(canvas.Dy()) * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(toolbarWidth, headerHeight, toolbarWidth+w, headerHeight+h)
}

type hitKind int

const (
	hitNone hitKind = iota
	hitButton
	hitSwatch
	hitShortcut
	hitCanvas
)

// layout places every element of a frame. The event loop and the painter
// compute it from the same inputs so hit tests match what is on screen.
type layout struct {
	width, height int
	zoom          float64
	buttons       []image.Rectangle
	swatches      []image.Rectangle
	preview       image.Rectangle
	shortcuts     []image.Rectangle
	canvas        image.Rectangle
}

func computeLayout(width, height int, canvas image.Rectangle, zoom float64) layout {
	l := layout{width: width, height: height, zoom: zoom}
	y := headerHeight
	for range toolbarItems {
		l.buttons = append(l.buttons, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	y += 4
	cols := paletteColumns()
	for i := range palette {
		x := swatchGap + (i%cols)*(swatchSize+swatchGap)
		sy := y + (i/cols)*(swatchSize+swatchGap)
		l.swatches = append(l.swatches, image.Rect(x, sy, x+swatchSize, sy+swatchSize))
	}
	y += ((len(palette)+cols-1)/cols)*(swatchSize+swatchGap) + 4
	l.preview = image.Rect(swatchGap, y, toolbarWidth-swatchGap, y+previewSize)

	x := toolbarWidth + 4
	sy := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for _, sc := range shortcutItems(zoom) {
		w := meas.MeasureString(sc.label).Ceil()
		r := image.Rect(x-2, sy-14, x+w+2, sy+4)
		l.shortcuts = append(l.shortcuts, r)
		x = r.Max.X + 8
	}
	l.canvas = imageRect(canvas, zoom)
	return l
}

func (l layout) hit(p image.Point) (hitKind, int) {
	if p.Y >= l.height-bottomHeight {
		for i, r := range l.shortcuts {
			if p.In(r) {
				return hitShortcut, i
			}
		}
		return hitNone, -1
	}
	for i, r := range l.buttons {
		if p.In(r) {
			return hitButton, i
		}
	}
	for i, r := range l.swatches {
		if p.In(r) {
			return hitSwatch, i
		}
	}
	if p.In(l.canvas) && p.Y >= headerHeight && p.X >= toolbarWidth {
		return hitCanvas, 0
	}
	return hitNone, -1
}

// toCanvas maps a window position to canvas pixel coordinates. Positions
// outside the canvas map to coordinates outside its bounds.
func (l layout) toCanvas(p image.Point) tool.Pointer {
	return tool.Pointer{
		X: int(math.Floor(float64(p.X-l.canvas.Min.X) / l.zoom)),
		Y: int(math.Floor(float64(p.Y-l.canvas.Min.Y) / l.zoom)),
	}
}

// PaintState is everything needed to render one frame.
type PaintState struct {
	Width, Height int
	// Canvas is a private copy of the drawing.
	Canvas *image.RGBA
	// Zoom of zero fits the canvas into the window.
	Zoom    float64
	Tool    tool.Kind
	Brush   tool.BrushConfig
	CanUndo bool
	CanRedo bool
	// Pending names the toolbar action waiting for a second press.
	Pending string
	// Pointer is the last known pointer position, or nil.
	Pointer *image.Point
	Message string
	// MessageUntil of zero shows Message until it is cleared.
	MessageUntil time.Time
	Theme        *theme.Theme
	Buttons      []*CacheButton
}

func (st PaintState) zoom() float64 {
	if st.Zoom > 0 {
		return st.Zoom
	}
	if st.Canvas == nil {
		return 1
	}
	return fitZoom(st.Canvas.Bounds(), st.Width, st.Height)
}

func (st PaintState) buttonState(i int, hovered bool) ButtonState {
	action := toolbarItems[i].action
	switch {
	case action == "undo" && !st.CanUndo, action == "redo" && !st.CanRedo:
		return StateDisabled
	case action == st.Pending,
		action == "brush" && st.Tool == tool.KindBrush,
		action == "picker" && st.Tool == tool.KindColorPicker,
		action == "square" && st.Brush.Shape == surface.ShapeSquare,
		action == "round" && st.Brush.Shape == surface.ShapeRound:
		return StatePressed
	case hovered:
		return StateHover
	}
	return StateDefault
}

func (st PaintState) messageVisible(now time.Time) bool {
	return st.Message != "" && (st.MessageUntil.IsZero() || now.Before(st.MessageUntil))
}

// DrawScene renders a full frame into dst. It returns early, leaving dst
// partly drawn, once ctx is cancelled.
func DrawScene(ctx context.Context, dst *image.RGBA, st PaintState) {
	t := st.Theme
	if t == nil {
		t = theme.Default()
	}
	buttons := st.Buttons
	if len(buttons) != len(toolbarItems) {
		buttons = NewToolbarButtons(t)
	}
	canvasBounds := image.Rect(0, 0, 1, 1)
	if st.Canvas != nil {
		canvasBounds = st.Canvas.Bounds()
	}
	zoom := st.zoom()
	l := computeLayout(st.Width, st.Height, canvasBounds, zoom)
	hk, hi := hitNone, -1
	if st.Pointer != nil {
		hk, hi = l.hit(*st.Pointer)
	}

	drawBackdrop(dst, t)
	if ctx.Err() != nil {
		return
	}

	if st.Canvas != nil {
		xdraw.NearestNeighbor.Scale(dst, l.canvas, st.Canvas, st.Canvas.Bounds(), draw.Over, nil)
		strokeRect(dst, l.canvas.Inset(-1), t.CanvasBorder, 1)
	}
	if ctx.Err() != nil {
		return
	}

	drawHeader(dst, st, t)
	drawToolbar(dst, l, st, t, buttons, hk, hi)
	drawShortcuts(dst, l, t, hk, hi)
	if ctx.Err() != nil {
		return
	}

	if st.messageVisible(time.Now()) {
		drawMessage(dst, st.Message, t)
	}
}

func drawHeader(dst *image.RGBA, st PaintState, t *theme.Theme) {
	bar := image.Rect(0, 0, dst.Bounds().Dx(), headerHeight)
	draw.Draw(dst, bar, &image.Uniform{t.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString(ProgramTitle)

	w, h := 0, 0
	if st.Canvas != nil {
		w, h = st.Canvas.Bounds().Dx(), st.Canvas.Bounds().Dy()
	}
	status := fmt.Sprintf("%s  %dpx %s  %s  %dx%d", st.Tool, st.Brush.Size, st.Brush.Shape,
		theme.Hex(st.Brush.Color), w, h)
	d.Dot = fixed.P(toolbarWidth+4, 16)
	d.DrawString(status)
}

func drawToolbar(dst *image.RGBA, l layout, st PaintState, t *theme.Theme, buttons []*CacheButton, hk hitKind, hi int) {
	bar := image.Rect(0, headerHeight, toolbarWidth, dst.Bounds().Dy()-bottomHeight)
	draw.Draw(dst, bar, &image.Uniform{t.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range buttons {
		cb.SetRect(l.buttons[i])
		cb.Draw(dst, st.buttonState(i, hk == hitButton && hi == i))
	}
	selected := paletteIndex(st.Brush.Color)
	for i, r := range l.swatches {
		draw.Draw(dst, r, &image.Uniform{palette[i].Color}, image.Point{}, draw.Src)
		border := t.SwatchBorder
		if i == selected || (hk == hitSwatch && hi == i) {
			border = t.SwatchSelected
		}
		strokeRect(dst, r, border, 1)
	}
	draw.Draw(dst, l.preview, &image.Uniform{st.Brush.Color}, image.Point{}, draw.Src)
	strokeRect(dst, l.preview, t.SwatchBorder, 1)
}

func drawShortcuts(dst *image.RGBA, l layout, t *theme.Theme, hk hitKind, hi int) {
	b := dst.Bounds()
	bar := image.Rect(0, b.Dy()-bottomHeight, b.Dx(), b.Dy())
	draw.Draw(dst, bar, &image.Uniform{t.StatusBackground}, image.Point{}, draw.Src)
	for i, sc := range shortcutItems(l.zoom) {
		lb := &LabelButton{label: sc.label, theme: t, border: true}
		lb.SetRect(l.shortcuts[i])
		state := StateDefault
		if hk == hitShortcut && hi == i {
			state = StateHover
		}
		lb.Draw(dst, state)
	}
}

func drawMessage(dst *image.RGBA, msg string, t *theme.Theme) {
	b := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.MessageText), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (b.Dx() - wmsg) / 2
	py := (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{t.MessageBackground}, image.Point{}, draw.Over)
	strokeRect(dst, rect, t.MessageText, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// backdropCache holds the checkerboard for the last window size and theme.
var backdropCache struct {
	img         *image.RGBA
	light, dark color.RGBA
}

func drawBackdrop(dst *image.RGBA, t *theme.Theme) {
	b := dst.Bounds()
	c := &backdropCache
	if c.img == nil || c.img.Bounds() != b || c.light != t.CheckerLight || c.dark != t.CheckerDark {
		c.img = image.NewRGBA(b)
		c.light, c.dark = t.CheckerLight, t.CheckerDark
		drawCheckerboard(c.img, b, 8, t.CheckerLight, t.CheckerDark)
	}
	draw.Draw(dst, b, c.img, b.Min, draw.Src)
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

// PaintState captures the session for a width x height frame. Window-only
// fields such as Pointer and Message are left for the caller.
func (a *AppState) PaintState(width, height int) PaintState {
	return PaintState{
		Width:   width,
		Height:  height,
		Canvas:  a.frameImage(),
		Tool:    a.session.ActiveKind(),
		Brush:   *a.session.Brush,
		CanUndo: a.history.CanUndo(),
		CanRedo: a.history.CanRedo(),
		Theme:   a.theme,
	}
}

// frameCache holds the canvas copy handed to the painter. A copy is
// replaced, never modified, so queued frames keep a consistent image.
type frameCache struct {
	img     *image.RGBA
	version uint64
}

func (a *AppState) frameImage() *image.RGBA {
	if v := a.canvas.Version(); a.frame.img == nil || a.frame.version != v {
		a.frame.img = a.canvas.Snapshot()
		a.frame.version = v
	}
	return a.frame.img
}

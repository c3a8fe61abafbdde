package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pixelpad/internal/surface"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// confirmWindow is how long a destructive button stays armed after the
// first press.
const confirmWindow = 2 * time.Second

// canvasStep is how far the width and height buttons move a dimension.
const canvasStep = 10

// controlEvent carries work posted from other goroutines onto the event
// loop.
type controlEvent struct {
	fn func(*AppState)
}

// pressAgain arms an action on its first press and confirms it when the
// same action is pressed again before the window runs out.
type pressAgain struct {
	action string
	until  time.Time
	window time.Duration
	now    func() time.Time
}

func newPressAgain(window time.Duration) *pressAgain {
	return &pressAgain{window: window, now: time.Now}
}

func (g *pressAgain) confirm(action string) bool {
	now := g.now()
	if g.action == action && now.Before(g.until) {
		g.reset()
		return true
	}
	g.action = action
	g.until = now.Add(g.window)
	return false
}

// pending returns the armed action, or "" once it has expired.
func (g *pressAgain) pending() string {
	if g.action != "" && g.now().Before(g.until) {
		return g.action
	}
	return ""
}

func (g *pressAgain) reset() {
	g.action = ""
	g.until = time.Time{}
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main opens the drawing window on s and runs its event loop until the
// window is closed.
func (a *AppState) Main(s screen.Screen) {
	width, height := windowSize(a.canvas.Bounds())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	a.setPoster(func(fn func(*AppState)) { w.Send(controlEvent{fn: fn}) })
	defer a.setPoster(nil)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan PaintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPainting := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	buttons := NewToolbarButtons(a.theme)
	gate := newPressAgain(confirmWindow)
	var zoom float64 // zero fits the window
	var pointer *image.Point
	var message string
	var messageUntil time.Time
	quit := false

	currentLayout := func() layout {
		z := zoom
		if z <= 0 {
			z = fitZoom(a.canvas.Bounds(), width, height)
		}
		return computeLayout(width, height, a.canvas.Bounds(), z)
	}
	flash := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(confirmWindow)
		log.Print(msg)
	}
	pressAgainTo := func(action, what string) ConfirmFunc {
		return func(string) bool {
			if gate.confirm(action) {
				return true
			}
			flash(fmt.Sprintf("press again to %s", what))
			return false
		}
	}
	resizeBy := func(action string, dw, dh int) {
		cw, ch := a.canvas.Width(), a.canvas.Height()
		nw, nh := surface.ClampDimension(cw+dw), surface.ClampDimension(ch+dh)
		if nw == cw && nh == ch {
			gate.reset()
			return
		}
		confirm := pressAgainTo(action, fmt.Sprintf("resize to %dx%d", nw, nh))
		if dw != 0 {
			a.SetCanvasWidth(nw, confirm)
		} else {
			a.SetCanvasHeight(nh, confirm)
		}
	}

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	register("brush", shortcutList{{Rune: 'b'}}, a.SwitchToBrush)
	register("picker", shortcutList{{Rune: 'p'}}, a.SwitchToColorPicker)
	register("square", nil, func() { a.SetBrushShape(surface.ShapeSquare) })
	register("round", nil, func() { a.SetBrushShape(surface.ShapeRound) })
	register("size-", shortcutList{{Rune: '['}}, func() { a.SetBrushSize(a.session.Brush.Size - 1) })
	register("size+", shortcutList{{Rune: ']'}}, func() { a.SetBrushSize(a.session.Brush.Size + 1) })
	register("undo", nil, func() { a.Undo() })
	register("redo", nil, func() { a.Redo() })
	register("clear", nil, func() { a.ClearCanvas(pressAgainTo("clear", "clear the canvas")) })
	register("width-", nil, func() { resizeBy("width-", -canvasStep, 0) })
	register("width+", nil, func() { resizeBy("width+", canvasStep, 0) })
	register("height-", nil, func() { resizeBy("height-", 0, -canvasStep) })
	register("height+", nil, func() { resizeBy("height+", 0, canvasStep) })
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		path, err := a.Save("")
		if err != nil {
			log.Printf("save: %v", err)
			flash("save failed")
			return
		}
		flash("saved " + path)
	})
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := a.Copy(); err != nil {
			log.Printf("copy: %v", err)
			flash("copy failed")
			return
		}
		flash("image copied to clipboard")
	})
	register("zoomfit", shortcutList{{Rune: '0'}}, func() { zoom = 0 })
	register("quit", shortcutList{{Rune: 'q'}}, func() { quit = true })

	trigger := func(action string) {
		if gate.pending() != action {
			gate.reset()
		}
		if fn, ok := actions[action]; ok {
			fn()
		}
	}

	router := &pointerRouter{a: a, trigger: trigger}

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case controlEvent:
			e.fn(a)
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPainting()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.PaintState(width, height)
			st.Zoom = currentLayout().zoom
			st.Pending = gate.pending()
			st.Pointer = pointer
			st.Message = message
			st.MessageUntil = messageUntil
			st.Buttons = buttons
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			p := image.Point{int(e.X), int(e.Y)}
			pointer = &p
			router.handle(currentLayout(), e)
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if e.Code == key.CodeEscape {
				gate.reset()
				messageUntil = time.Time{}
				message = ""
				w.Send(paint.Event{})
				continue
			}
			mods := e.Modifiers &^ key.ModShift
			if mods == 0 {
				switch e.Rune {
				case '+', '=':
					zoom = clampZoom(currentLayout().zoom * 1.25)
					w.Send(paint.Event{})
					continue
				case '-':
					zoom = clampZoom(currentLayout().zoom / 1.25)
					w.Send(paint.Event{})
					continue
				}
				if a.HandleKey(e.Rune) {
					gate.reset()
					w.Send(paint.Event{})
					continue
				}
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}
			if action, ok := keyboardAction[ks]; ok {
				trigger(action)
				w.Send(paint.Event{})
			}
		}
	}
	stopPainting()
}

// pointerRouter turns window mouse events into tool events and toolbar
// clicks. Canvas enter and leave come from hit testing successive
// positions. Toolbar, swatch and shortcut clicks fire on release, after the
// release has reached the tools, and only when the press landed on the same
// element.
type pointerRouter struct {
	a       *AppState
	trigger func(action string)

	overCanvas bool
	pressKind  hitKind
	pressIdx   int
}

func (r *pointerRouter) handle(l layout, e mouse.Event) {
	p := image.Point{int(e.X), int(e.Y)}
	kind, idx := l.hit(p)
	pt := l.toCanvas(p)
	d := r.a.dispatcher
	switch e.Direction {
	case mouse.DirPress:
		if e.Button == mouse.ButtonRight && kind == hitCanvas {
			d.ContextMenu(pt)
			return
		}
		if e.Button != mouse.ButtonLeft {
			return
		}
		r.pressKind, r.pressIdx = kind, idx
		if kind == hitCanvas {
			r.overCanvas = true
			d.PointerDown(pt)
		}
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return
		}
		d.PointerUp(pt)
		pk, pi := r.pressKind, r.pressIdx
		r.pressKind, r.pressIdx = hitNone, -1
		if kind != pk || idx != pi {
			return
		}
		switch kind {
		case hitButton:
			r.fire(toolbarItems[idx].action)
		case hitShortcut:
			r.fire(shortcutItems(l.zoom)[idx].action)
		case hitSwatch:
			r.a.SetBrushRGBA(palette[idx].Color)
		}
	case mouse.DirNone:
		inside := kind == hitCanvas
		if inside != r.overCanvas {
			r.overCanvas = inside
			if inside {
				d.PointerEnter(pt)
			} else {
				d.PointerLeave(pt)
			}
		}
		if inside {
			d.PointerMove(pt)
		}
	}
}

func (r *pointerRouter) fire(action string) {
	if r.trigger != nil {
		r.trigger(action)
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st PaintState) {
	b, err := s.NewBuffer(image.Point{st.Width, st.Height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	DrawScene(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// Package appstate ties the canvas, its history and the drawing tools into a
// single editing session and exposes it to the window, the script
// interpreter and the command line.
package appstate

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/example/pixelpad/internal/clipboard"
	"github.com/example/pixelpad/internal/history"
	"github.com/example/pixelpad/internal/notify"
	"github.com/example/pixelpad/internal/surface"
	"github.com/example/pixelpad/internal/theme"
	"github.com/example/pixelpad/internal/tool"
)

// ProgramTitle is shown in the window title and the header bar.
const ProgramTitle = "PixelPad"

// DefaultOutput is the file name used when saving without an explicit path.
const DefaultOutput = "drawing.png"

// ConfirmFunc asks the user a yes/no question before a destructive action.
type ConfirmFunc func(prompt string) bool

// Yes confirms every prompt. Scripts and the command line use it.
func Yes(string) bool { return true }

// AppState holds one drawing session.
type AppState struct {
	Output string

	canvas     *surface.Canvas
	history    *history.History
	session    *tool.Session
	dispatcher *tool.Dispatcher

	title    string
	confirm  ConfirmFunc
	theme    *theme.Theme
	notifier *notify.Notifier
	colorFn  func(color.RGBA)
	copyFn   func([]byte) error

	export exportCache
	frame  frameCache

	// construction settings, applied by New
	width, height int
	historySize   int
	brush         tool.BrushConfig
	background    color.RGBA

	postMu    sync.Mutex
	post      func(func(*AppState))
	ready     chan struct{}
	readyOnce sync.Once
}

// exportCache holds the PNG encoding of the canvas. It is re-encoded only
// after the pixels change.
type exportCache struct {
	data  []byte
	dirty bool
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithCanvasSize sets the initial canvas dimensions, clamped to
// [1, surface.MaxDimension].
func WithCanvasSize(width, height int) Option {
	return func(a *AppState) { a.width, a.height = width, height }
}

// WithHistorySize sets how many undo steps are kept.
func WithHistorySize(n int) Option { return func(a *AppState) { a.historySize = n } }

// WithBrush sets the initial brush colour, size and shape.
func WithBrush(col color.RGBA, size int, shape surface.Shape) Option {
	return func(a *AppState) {
		a.brush.Color = col
		a.brush.Size = size
		a.brush.Shape = shape
	}
}

// WithBackground sets the colour the canvas is cleared to.
func WithBackground(col color.RGBA) Option { return func(a *AppState) { a.background = col } }

// WithOutput sets the path Save uses when it is given none.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.title = title } }

// WithConfirm sets the gate consulted before destructive actions.
func WithConfirm(fn ConfirmFunc) Option { return func(a *AppState) { a.confirm = fn } }

// WithTheme sets the colours of the window chrome.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithNotifier sets the notifier used after saving and copying.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithColorListener registers a callback for every brush colour change,
// including colours taken by the picker.
func WithColorListener(fn func(color.RGBA)) Option {
	return func(a *AppState) { a.colorFn = fn }
}

// WithClipboard replaces the function that publishes PNG data to the
// clipboard.
func WithClipboard(fn func([]byte) error) Option { return func(a *AppState) { a.copyFn = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		width:       surface.DefaultWidth,
		height:      surface.DefaultHeight,
		historySize: history.DefaultCapacity,
		brush:       *tool.NewBrushConfig(),
		background:  color.RGBA{255, 255, 255, 255},
		title:       ProgramTitle,
		confirm:     Yes,
		theme:       theme.Default(),
		copyFn:      clipboard.WritePNG,
	}
	for _, o := range opts {
		o(a)
	}
	if a.confirm == nil {
		a.confirm = Yes
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	brush := a.brush
	brush.MinSize, brush.MaxSize = tool.MinBrushSize, tool.MaxBrushSize
	brush.SetSize(brush.Size)

	a.canvas = surface.New(surface.ClampDimension(a.width), surface.ClampDimension(a.height), a.background)
	a.history = history.New(a.canvas, a.historySize)
	a.session = tool.NewSession(a.canvas, a.history, &brush)
	a.session.OnStrokeEnd = a.markDirty
	a.session.OnColorSampled = a.colorChanged
	a.dispatcher = tool.NewDispatcher(a.session)
	a.export.dirty = true
	a.ready = make(chan struct{})
	return a
}

func (a *AppState) Canvas() *surface.Canvas { return a.canvas }

func (a *AppState) History() *history.History { return a.history }

func (a *AppState) Session() *tool.Session { return a.session }

// Dispatcher returns the router for raw pointer events in canvas
// coordinates.
func (a *AppState) Dispatcher() *tool.Dispatcher { return a.dispatcher }

func (a *AppState) Theme() *theme.Theme { return a.theme }

// Brush returns a copy of the current brush settings.
func (a *AppState) Brush() tool.BrushConfig { return *a.session.Brush }

// SetBrushColor parses value as #rgb, #rrggbb or a colour name and makes it
// the brush colour. Invalid input leaves the colour unchanged.
func (a *AppState) SetBrushColor(value string) error {
	col, err := theme.ParseColor(value)
	if err != nil {
		return fmt.Errorf("brush color: %w", err)
	}
	a.SetBrushRGBA(col)
	return nil
}

// SetBrushRGBA sets the brush colour. The brush always paints opaque pixels.
func (a *AppState) SetBrushRGBA(col color.RGBA) {
	col.A = 0xff
	a.session.Brush.Color = col
	a.colorChanged(col)
}

// SetBrushSize clamps n to the brush size range, applies it and returns the
// applied value.
func (a *AppState) SetBrushSize(n int) int { return a.session.Brush.SetSize(n) }

func (a *AppState) SetBrushShape(s surface.Shape) { a.session.Brush.Shape = s }

func (a *AppState) SwitchToColorPicker() { a.session.SwitchToColorPicker() }

func (a *AppState) SwitchToBrush() { a.session.SwitchToBrush() }

// Undo reverts the last edit. It reports false when there was nothing to
// undo.
func (a *AppState) Undo() bool {
	if !a.history.Undo() {
		return false
	}
	a.markDirty()
	return true
}

// Redo reapplies the last undone edit.
func (a *AppState) Redo() bool {
	if !a.history.Redo() {
		return false
	}
	a.markDirty()
	return true
}

// HandleKey maps z to undo and y to redo, ignoring case. It reports whether
// the key was bound.
func (a *AppState) HandleKey(r rune) bool {
	switch unicode.ToLower(r) {
	case 'z':
		a.Undo()
		return true
	case 'y':
		a.Redo()
		return true
	}
	return false
}

// ClearCanvas fills the canvas with the background colour as one undoable
// edit once confirm agrees. A nil confirm uses the session's gate.
func (a *AppState) ClearCanvas(confirm ConfirmFunc) bool {
	if !a.ask(confirm, "Clear the canvas?") {
		return false
	}
	a.history.SaveState()
	a.canvas.Clear()
	a.markDirty()
	return true
}

// SetCanvasWidth resizes the canvas to w pixels wide, clamped to
// [1, surface.MaxDimension]. Resizing discards the drawing and the whole
// history, so it is gated by confirm.
func (a *AppState) SetCanvasWidth(w int, confirm ConfirmFunc) bool {
	return a.resize(surface.ClampDimension(w), a.canvas.Height(), confirm)
}

// SetCanvasHeight is SetCanvasWidth for the height.
func (a *AppState) SetCanvasHeight(h int, confirm ConfirmFunc) bool {
	return a.resize(a.canvas.Width(), surface.ClampDimension(h), confirm)
}

func (a *AppState) resize(w, h int, confirm ConfirmFunc) bool {
	prompt := fmt.Sprintf("Resize the canvas to %dx%d? The drawing and its history will be cleared.", w, h)
	if !a.ask(confirm, prompt) {
		return false
	}
	a.canvas.Resize(w, h)
	a.history.Clear()
	a.markDirty()
	return true
}

func (a *AppState) ask(confirm ConfirmFunc, prompt string) bool {
	if confirm == nil {
		confirm = a.confirm
	}
	return confirm(prompt)
}

// ExportImage returns the canvas encoded as PNG. The returned slice is
// shared with the cache and must not be modified.
func (a *AppState) ExportImage() ([]byte, error) {
	if !a.export.dirty && a.export.data != nil {
		return a.export.data, nil
	}
	var buf bytes.Buffer
	if err := a.canvas.EncodePNG(&buf); err != nil {
		return nil, err
	}
	a.export.data = buf.Bytes()
	a.export.dirty = false
	return a.export.data, nil
}

// Save writes the PNG export to path, or to Output or DefaultOutput when
// path is empty, and returns the path written.
func (a *AppState) Save(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = a.Output
	}
	if path == "" {
		path = DefaultOutput
	}
	data, err := a.ExportImage()
	if err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	a.notifier.Save(path)
	return path, nil
}

// Copy publishes the PNG export to the clipboard.
func (a *AppState) Copy() error {
	data, err := a.ExportImage()
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err := a.copyFn(data); err != nil {
		return fmt.Errorf("copy PNG to clipboard: %w", err)
	}
	a.notifier.Copy(DefaultOutput)
	return nil
}

// Post runs fn on the goroutine that owns the session: the window event
// loop while a window is open, otherwise the caller's goroutine.
func (a *AppState) Post(fn func(*AppState)) {
	a.postMu.Lock()
	post := a.post
	a.postMu.Unlock()
	if post == nil {
		fn(a)
		return
	}
	post(fn)
}

func (a *AppState) setPoster(fn func(func(*AppState))) {
	a.postMu.Lock()
	a.post = fn
	a.postMu.Unlock()
	if fn != nil {
		a.readyOnce.Do(func() { close(a.ready) })
	}
}

// Ready is closed once a window is open and Post delivers to its event
// loop.
func (a *AppState) Ready() <-chan struct{} { return a.ready }

func (a *AppState) markDirty() { a.export.dirty = true }

func (a *AppState) colorChanged(col color.RGBA) {
	if a.colorFn != nil {
		a.colorFn(col)
	}
}

// Status summarises the session for the status line and the `status`
// script command.
type Status struct {
	Tool          tool.Kind
	Color         color.RGBA
	Size          int
	Shape         surface.Shape
	Width, Height int
	Undo, Redo    int
}

func (s Status) String() string {
	return fmt.Sprintf("tool=%s color=%s size=%d shape=%s canvas=%dx%d undo=%d redo=%d",
		s.Tool, theme.Hex(s.Color), s.Size, s.Shape, s.Width, s.Height, s.Undo, s.Redo)
}

func (a *AppState) Status() Status {
	b := a.session.Brush
	return Status{
		Tool:   a.session.ActiveKind(),
		Color:  b.Color,
		Size:   b.Size,
		Shape:  b.Shape,
		Width:  a.canvas.Width(),
		Height: a.canvas.Height(),
		Undo:   a.history.UndoLen(),
		Redo:   a.history.RedoLen(),
	}
}

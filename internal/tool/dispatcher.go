package tool

// Dispatcher routes raw pointer events to the session's active tool and
// maintains the tool-independent gesture flags.
type Dispatcher struct {
	s *Session
}

// NewDispatcher returns a dispatcher bound to s.
func NewDispatcher(s *Session) *Dispatcher {
	return &Dispatcher{s: s}
}

// Session returns the session the dispatcher drives.
func (d *Dispatcher) Session() *Session { return d.s }

// PointerDown marks the pointer as pressed, starts a new gesture and then
// forwards the event.
func (d *Dispatcher) PointerDown(p Pointer) {
	d.s.Gesture.PointerDown = true
	d.s.Gesture.Saved = false
	if t := d.s.active; t != nil {
		t.PointerDown(p)
	}
}

func (d *Dispatcher) PointerMove(p Pointer) {
	if t := d.s.active; t != nil {
		t.PointerMove(p)
	}
}

func (d *Dispatcher) PointerEnter(p Pointer) {
	if t := d.s.active; t != nil {
		t.PointerEnter(p)
	}
}

// PointerLeave forwards the event to the active tool. A stroke owned by a
// tool that is no longer active is closed first.
func (d *Dispatcher) PointerLeave(p Pointer) {
	d.notifyOwner(p, Tool.PointerLeave)
	if t := d.s.active; t != nil {
		t.PointerLeave(p)
	}
}

// PointerUp forwards the release, then clears the pressed flag. Like
// PointerLeave it closes a stroke whose owner was switched away from.
func (d *Dispatcher) PointerUp(p Pointer) {
	d.notifyOwner(p, Tool.PointerUp)
	if t := d.s.active; t != nil {
		t.PointerUp(p)
	}
	d.s.Gesture.PointerDown = false
	d.s.Gesture.Saved = false
}

// ContextMenu reports whether a context menu request should be suppressed.
// Right clicks never open a menu over the canvas.
func (d *Dispatcher) ContextMenu(Pointer) bool { return true }

func (d *Dispatcher) notifyOwner(p Pointer, fn func(Tool, Pointer)) {
	owner := d.s.owner
	if owner == nil || owner == d.s.active {
		return
	}
	fn(owner, p)
}

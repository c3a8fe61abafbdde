package tool

// ColorPicker copies the colour under the pointer into the brush. Releasing
// the pointer always hands control back to the brush.
type ColorPicker struct {
	NopTool
	s *Session
}

func (c *ColorPicker) PointerDown(p Pointer) { c.pick(p) }

func (c *ColorPicker) PointerMove(p Pointer) {
	if c.s.Gesture.PointerDown {
		c.pick(p)
	}
}

func (c *ColorPicker) PointerUp(Pointer) { c.s.SwitchToBrush() }

func (c *ColorPicker) pick(p Pointer) {
	col, ok := c.s.Surface.SampleColor(p.X, p.Y)
	if !ok {
		return
	}
	col.A = 0xff
	c.s.Brush.Color = col
	if c.s.OnColorSampled != nil {
		c.s.OnColorSampled(col)
	}
}

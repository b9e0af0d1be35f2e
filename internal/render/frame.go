package render

// Frame holds the working pixel state for one strip plus the single status
// pixel. Renderers repaint it in place and mark it dirty; the tick driver
// flushes it to hardware and cleans it. The output driver must never be
// invoked while the frame is clean.
type Frame struct {
	Pixels    []Color
	Indicator Color

	dirty bool
}

func NewFrame(n int) *Frame {
	return &Frame{Pixels: make([]Color, n)}
}

// Len returns the strip length.
func (f *Frame) Len() int { return len(f.Pixels) }

// Fill paints every strip pixel with c. Does not touch the dirty flag; most
// callers follow up with MarkDirty.
func (f *Frame) Fill(c Color) {
	for i := range f.Pixels {
		f.Pixels[i] = c
	}
}

// Clear blacks out the strip.
func (f *Frame) Clear() { f.Fill(Black) }

func (f *Frame) MarkDirty()  { f.dirty = true }
func (f *Frame) Clean()      { f.dirty = false }
func (f *Frame) Dirty() bool { return f.dirty }

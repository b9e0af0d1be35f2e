package render

// Sprite is a transient point-light moving along the strip. Velocity is
// fixed at spawn; the color decays toward black every simulation step. A
// sprite may sit just outside the visible range for one step before it is
// retired.
type Sprite struct {
	Active     bool
	ActivateAt int // simulation step at which the slot activates; -1 = never
	Pos        int
	Vel        int
	Color      Color
}

// SpritePool is a fixed-capacity arena of sprite slots. Slot order carries
// no meaning; spawns claim the first free slot and are dropped silently when
// every slot is taken.
type SpritePool struct {
	slots []Sprite
}

func NewSpritePool(n int) *SpritePool {
	p := &SpritePool{slots: make([]Sprite, n)}
	p.Clear()
	return p
}

// Spawn claims the first inactive slot for s and reports whether a slot was
// free. The stored sprite is always active and unscheduled.
func (p *SpritePool) Spawn(s Sprite) bool {
	s.Active = true
	s.ActivateAt = -1
	for i := range p.slots {
		if !p.slots[i].Active {
			p.slots[i] = s
			return true
		}
	}
	return false
}

// Place writes s into a specific slot, used by scripted animations that
// schedule activation steps up front.
func (p *SpritePool) Place(slot int, s Sprite) {
	if slot < 0 || slot >= len(p.slots) {
		return
	}
	p.slots[slot] = s
}

// Clear retires every slot and cancels scheduled activations.
func (p *SpritePool) Clear() {
	for i := range p.slots {
		p.slots[i].Active = false
		p.slots[i].ActivateAt = -1
	}
}

// ActiveCount reports the number of live sprites.
func (p *SpritePool) ActiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}

// Advance runs one simulation step: it blacks out the frame, activates slots
// scheduled for step, paints every active sprite that sits inside the
// visible range (out-of-range positions are skipped, not clamped), then
// moves each sprite by its velocity, decays its color, and retires it once
// the new position leaves the strip.
func (p *SpritePool) Advance(step int, f *Frame) {
	f.Clear()
	n := f.Len()
	for i := range p.slots {
		s := &p.slots[i]
		if s.ActivateAt == step {
			s.Active = true
		}
		if !s.Active {
			continue
		}
		if s.Pos >= 0 && s.Pos < n {
			f.Pixels[s.Pos] = s.Color
		}
		s.Pos += s.Vel
		s.Color = s.Color.FadeVideo(SpriteFade)
		if s.Pos < 0 || s.Pos >= n {
			s.Active = false
		}
	}
}

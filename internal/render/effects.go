package render

// ConstantRenderer fills the strip with a single configurable color. It only
// repaints when something else already dirtied the frame (color select,
// brightness tick, power transition); otherwise it is fully idle, making
// constant the cheapest mode.
type ConstantRenderer struct{}

func (ConstantRenderer) Mode() Mode { return ModeConstant }

func (ConstantRenderer) Render(f *Frame, p *Params) {
	if !f.Dirty() {
		return
	}
	f.Fill(p.ConstColor)
}

// GradientRenderer paints the whole strip one color and walks that color
// through the hue spectrum at the configured speed.
type GradientRenderer struct{}

func (GradientRenderer) Mode() Mode { return ModeGradient }

func (GradientRenderer) Render(f *Frame, p *Params) {
	if !p.Pacer.Tick(p.Hold) || p.Paused {
		return
	}
	f.Fill(HSV(p.HueBase, 255, 255))
	f.MarkDirty()
	p.HueBase += GradientHueStep // uint8 wraps past HueMax
}

// ChaseRenderer assigns each pixel a hue offset by a fixed step from a
// moving base hue, producing a rainbow that travels along the strip. The
// direction flag picks which way the base hue walks.
type ChaseRenderer struct{}

func (ChaseRenderer) Mode() Mode { return ModeChase }

func (ChaseRenderer) Render(f *Frame, p *Params) {
	if !p.Pacer.Tick(p.Hold) || p.Paused {
		return
	}
	hue := p.HueBase
	for i := range f.Pixels {
		f.Pixels[i] = HSV(hue, 255, 255)
		hue += ChaseHueStep
	}
	f.MarkDirty()
	if p.DirLeft {
		p.HueBase += ChaseHueStep
	} else {
		p.HueBase -= ChaseHueStep
	}
}

// Rand is the subset of math/rand the sprite effect needs.
type Rand interface {
	Intn(n int) int
}

// SpriteRenderer spawns at most one sprite per due tick at the strip
// midpoint, with a random left/right unit velocity and a random color, then
// delegates drawing and motion to the pool.
type SpriteRenderer struct {
	pool *SpritePool
	rnd  Rand
}

func NewSpriteRenderer(pool *SpritePool, rnd Rand) *SpriteRenderer {
	return &SpriteRenderer{pool: pool, rnd: rnd}
}

func (r *SpriteRenderer) Mode() Mode { return ModeSprite }

func (r *SpriteRenderer) Render(f *Frame, p *Params) {
	if !p.Pacer.Tick(p.Hold) || p.Paused {
		return
	}
	if r.rnd.Intn(100) < SpriteSpawnPct {
		r.pool.Spawn(Sprite{
			Pos:   f.Len() / 2,
			Vel:   2*r.rnd.Intn(2) - 1,
			Color: HSV(uint8(r.rnd.Intn(256)), uint8(128+r.rnd.Intn(128)), uint8(128+r.rnd.Intn(128))),
		})
	}
	r.pool.Advance(0, f)
	f.MarkDirty()
}

// SparkleRenderer breathes every 4th pixel through a three-phase lightness
// ramp, rotating through the 4-color palette each time the ramp resets. The
// lit pixel group is offset by the current color index.
type SparkleRenderer struct{}

func (SparkleRenderer) Mode() Mode { return ModeSparkle }

func (SparkleRenderer) Render(f *Frame, p *Params) {
	if !p.Pacer.Tick(p.Hold) || p.Paused {
		return
	}

	switch p.SparklePhase {
	case SparkleRise:
		if p.SparkleVal < 255-SparkleLightStep {
			p.SparkleVal += SparkleLightStep
		} else {
			p.SparkleVal = 255
			p.SparklePhase = SparkleFall
		}
	case SparkleFall:
		if p.SparkleVal >= SparkleLightMin+SparkleLightStep {
			p.SparkleVal -= SparkleLightStep
		} else {
			p.SparkleVal = 0
			p.SparklePhase = SparkleReset
		}
	default:
		p.SparkleVal = SparkleLightMin
		p.SparklePhase = SparkleRise
		p.SparkleIdx = (p.SparkleIdx + 1) % SparkleSpacing
	}

	lit := SparkleColor(p.SparkleIdx, p.SparkleVal)
	for i := range f.Pixels {
		if i%SparkleSpacing == int(p.SparkleIdx) {
			f.Pixels[i] = lit
		} else {
			f.Pixels[i] = Black
		}
	}
	f.MarkDirty()
}

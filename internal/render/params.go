package render

// Mode selects the active strip effect. ModeChange cycles through the modes
// in declaration order and wraps back to Constant.
type Mode uint8

const (
	ModeConstant Mode = iota
	ModeGradient
	ModeChase
	ModeSprite
	ModeSparkle

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeConstant:
		return "constant"
	case ModeGradient:
		return "gradient"
	case ModeChase:
		return "chase"
	case ModeSprite:
		return "sprite"
	case ModeSparkle:
		return "sparkle"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the fixed cycle.
func (m Mode) Next() Mode { return (m + 1) % modeCount }

// Brightness bounds shared by the strip and the status pixel. Max caps the
// supply current.
const (
	BrightnessMin  uint8 = 2
	BrightnessMax  uint8 = 50
	BrightnessStep uint8 = 2
)

// Speed bounds for the cycles-to-hold divisor. A larger divisor holds each
// animation step for more ticks, i.e. runs slower.
const (
	HoldMin  uint8 = 2
	HoldMax  uint8 = 40
	HoldStep uint8 = 2
)

// Per-mode animation constants.
const (
	GradientHueStep     uint8 = HueMax / 64
	GradientHoldDefault uint8 = 4

	ChaseHueStep     uint8 = HueMax / 16
	ChaseHoldDefault uint8 = 20

	SpriteHoldDefault uint8 = 2
	SpriteSpawnPct          = 30
	SpritePoolSize          = 10
	SpriteFade        uint8 = 230 // ~90% retained per step

	SparkleHoldDefault uint8 = 2
	SparkleLightStep   uint8 = 5
	SparkleLightMin    uint8 = 50
	SparkleSpacing           = 4
)

// Sparkle lightness ramp phases. The cycle is exactly
// rise -> fall -> reset (advance color index) -> rise.
type SparklePhase int8

const (
	SparkleReset SparklePhase = 0
	SparkleRise  SparklePhase = 1
	SparkleFall  SparklePhase = -1
)

// Sparkle palette: blue, green, red, white.
var (
	sparkleHue = [SparkleSpacing]uint8{160, 96, 0, 0}
	sparkleSat = [SparkleSpacing]uint8{255, 255, 255, 0}
)

// Pacer sub-samples the fixed tick rate. Tick reports true exactly once
// every hold invocations, at the zero phase. The counter advances on every
// call, paused or not, so resuming an effect lands on a phase boundary
// rather than mid-step. Changing hold takes effect at the next zero phase;
// there is no drift correction.
type Pacer struct {
	cycle uint8
}

func (p *Pacer) Tick(hold uint8) bool {
	if hold == 0 {
		hold = 1
	}
	due := p.cycle == 0
	p.cycle = (p.cycle + 1) % hold
	return due
}

// Reset snaps the pacer back to the zero phase so the next Tick is due.
func (p *Pacer) Reset() { p.cycle = 0 }

// Phase exposes the current counter value, mainly for tests.
func (p *Pacer) Phase() uint8 { return p.cycle }

// Params is the mutable effect parameter block shared by all modes. It lives
// for the process lifetime and is mutated only by the command processor and
// by mode/power resets.
type Params struct {
	Brightness uint8
	Hold       uint8 // cycles to hold each animation step
	Paused     bool
	DirLeft    bool  // chase only
	HueBase    uint8 // gradient + chase
	ConstColor Color // constant mode

	SparklePhase SparklePhase
	SparkleIdx   uint8 // index into the 4-color palette
	SparkleVal   uint8 // current lightness

	Pacer Pacer
}

// NewParams returns the power-up defaults.
func NewParams() Params {
	p := Params{
		Hold:       SparkleHoldDefault,
		DirLeft:    true,
		ConstColor: White,
	}
	p.resetSparkle()
	return p
}

// ResetFor restores the entering mode's defaults so a mode switch always
// starts from a visually valid frame, never stale state from the previous
// mode. Pause is cleared and the phase counter zeroed for every mode.
func (p *Params) ResetFor(m Mode) {
	p.Paused = false
	p.Pacer.Reset()
	switch m {
	case ModeGradient:
		p.Hold = GradientHoldDefault
		p.HueBase = 0
	case ModeChase:
		p.Hold = ChaseHoldDefault
		p.HueBase = 0
	case ModeSprite:
		p.Hold = SpriteHoldDefault
	case ModeSparkle:
		p.Hold = SparkleHoldDefault
		p.resetSparkle()
	}
}

// ResetAnimation rewinds the animation state that a power transition clears:
// phase counter, base hue, pause, and the sparkle sub-state. The hold value
// and constant color survive power transitions.
func (p *Params) ResetAnimation() {
	p.Paused = false
	p.Pacer.Reset()
	p.HueBase = 0
	p.resetSparkle()
}

func (p *Params) resetSparkle() {
	p.SparklePhase = SparkleRise
	p.SparkleIdx = 0
	p.SparkleVal = SparkleLightMin
}

// SparkleColor returns the palette color at index idx with lightness val.
func SparkleColor(idx, val uint8) Color {
	i := idx % SparkleSpacing
	return HSV(sparkleHue[i], sparkleSat[i], val)
}

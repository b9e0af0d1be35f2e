package control

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-lumistrip/internal/render"
)

// PowerState is the overall device state. Transitions run Off -> On -> Eco
// -> Off, cyclically, on the power-toggle command only.
type PowerState uint8

const (
	PowerOff PowerState = iota
	PowerOn
	PowerEco
)

func (s PowerState) String() string {
	switch s {
	case PowerOn:
		return "on"
	case PowerEco:
		return "eco"
	default:
		return "off"
	}
}

// Brightness level per power state.
const (
	BrightnessOff uint8 = 8
	BrightnessOn  uint8 = 20
	BrightnessEco uint8 = 10
)

// Indicator color per power state.
var (
	IndicatorOff = render.Red
	IndicatorOn  = render.Green
	IndicatorEco = render.Green
)

// FadeStepDelay is the pause between brightness steps of the power-down
// fade.
const FadeStepDelay = 50 * time.Millisecond

// Device is the explicit context object owned by the tick driver: power
// state, active mode, effect parameters, and the frame they paint. Flush
// must push the frame (at Params.Brightness) and clean it; Sleep is
// injectable so tests run the power-down fade without wall-clock delays.
type Device struct {
	Power  PowerState
	Mode   render.Mode
	Params render.Params
	Frame  *render.Frame

	Flush func()
	Sleep func(time.Duration)
	Log   zerolog.Logger
}

func NewDevice(f *render.Frame) *Device {
	d := &Device{
		Power:  PowerOff,
		Mode:   render.ModeSparkle,
		Params: render.NewParams(),
		Frame:  f,
		Flush:  func() { f.Clean() },
		Sleep:  time.Sleep,
		Log:    zerolog.Nop(),
	}
	d.Params.Brightness = BrightnessOff
	f.Indicator = IndicatorOff
	return d
}

// Powered reports whether the strip renders at all.
func (d *Device) Powered() bool { return d.Power != PowerOff }

// TogglePower advances the power state one step around the cycle. Powering
// up and dropping to eco reset the animation state so the entering frame is
// never stale. Powering down first runs a blocking fade: brightness steps
// monotonically from its current value to zero with one frame push per step.
// That fade is the only long-blocking operation in the system; shutting down
// is meant to be a deliberate, visible action.
func (d *Device) TogglePower() {
	switch d.Power {
	case PowerOff:
		d.Power = PowerOn
		d.Frame.Clear()
		d.Frame.Indicator = IndicatorOn
		d.Params.Brightness = BrightnessOn
		d.Params.ResetAnimation()
		d.Frame.MarkDirty()

	case PowerOn:
		d.Power = PowerEco
		d.Frame.Clear()
		d.Frame.Indicator = IndicatorEco
		d.Params.Brightness = BrightnessEco
		d.Params.ResetAnimation()
		d.Frame.MarkDirty()

	case PowerEco:
		d.Power = PowerOff
		d.FadeOut()
		d.Frame.Clear()
		d.Frame.Indicator = IndicatorOff
		d.Params.Brightness = BrightnessOff
		d.Frame.MarkDirty()
	}
	d.Log.Info().Str("state", d.Power.String()).Uint8("brightness", d.Params.Brightness).Msg("power state")
}

// FadeOut walks brightness from its current value down to zero, pushing a
// frame at every step with a fixed delay in between.
func (d *Device) FadeOut() {
	for b := int(d.Params.Brightness); b >= 0; b-- {
		d.Params.Brightness = uint8(b)
		d.Frame.MarkDirty()
		d.Flush()
		d.Sleep(FadeStepDelay)
	}
}

// Apply mutates the effect parameters, mode, or frame according to cmd.
// Commands outside the legality window of the current mode are dropped
// without effect; adjustments clamp at their bounds instead of erroring.
func (d *Device) Apply(cmd Command) {
	p := &d.Params
	switch cmd {
	case BrightnessUp:
		b := p.Brightness + render.BrightnessStep
		if b > render.BrightnessMax {
			b = render.BrightnessMax
		}
		p.Brightness = b
		d.Frame.MarkDirty()
		d.Log.Debug().Uint8("brightness", b).Msg("brightness up")

	case BrightnessDown:
		b := p.Brightness
		if b <= render.BrightnessMin+render.BrightnessStep {
			b = render.BrightnessMin
		} else {
			b -= render.BrightnessStep
		}
		p.Brightness = b
		d.Frame.MarkDirty()
		d.Log.Debug().Uint8("brightness", b).Msg("brightness down")

	case Slower:
		h := p.Hold + render.HoldStep
		if h > render.HoldMax {
			h = render.HoldMax
		}
		p.Hold = h
		d.Log.Debug().Uint8("hold", h).Msg("speed down")

	case Faster:
		h := p.Hold
		if h <= render.HoldMin+render.HoldStep {
			h = render.HoldMin
		} else {
			h -= render.HoldStep
		}
		p.Hold = h
		p.Paused = false
		d.Log.Debug().Uint8("hold", h).Msg("speed up")

	case Left:
		d.setDirection(true)

	case Right:
		d.setDirection(false)

	case ModeChange:
		d.Mode = d.Mode.Next()
		p.ResetFor(d.Mode)
		d.Frame.MarkDirty()
		d.Log.Debug().Stringer("mode", d.Mode).Msg("mode change")

	case Play:
		if d.Mode != render.ModeConstant {
			p.Paused = false
			d.Log.Debug().Msg("play")
		}

	case Pause:
		if d.Mode != render.ModeConstant {
			p.Paused = true
			d.Log.Debug().Msg("pause")
		}

	case SelectRed:
		d.setConstColor(render.Red)
	case SelectGreen:
		d.setConstColor(render.Green)
	case SelectYellow:
		d.setConstColor(render.Yellow)
	case SelectBlue:
		d.setConstColor(render.Blue)
	case SelectWhite:
		d.setConstColor(render.White)
	}
}

// setDirection is legal only in chase mode and only acts when the direction
// actually changes or the effect is paused. Acting clears pause and resets
// the phase counter so no partial step is visible.
func (d *Device) setDirection(left bool) {
	if d.Mode != render.ModeChase {
		return
	}
	if d.Params.DirLeft == left && !d.Params.Paused {
		return
	}
	d.Params.DirLeft = left
	d.Params.Paused = false
	d.Params.Pacer.Reset()
	d.Log.Debug().Bool("left", left).Msg("direction")
}

func (d *Device) setConstColor(c render.Color) {
	if d.Mode != render.ModeConstant {
		return
	}
	d.Params.ConstColor = c
	d.Frame.MarkDirty()
}

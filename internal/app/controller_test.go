package app

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-lumistrip/internal/control"
	"github.com/coreman2200/funtimes-lumistrip/internal/render"
)

// recordingDriver keeps every pushed frame.
type recordingDriver struct {
	frames []push
	halted bool
}

type push struct {
	pixels     []render.Color
	indicator  render.Color
	brightness uint8
}

func (d *recordingDriver) Show(pixels []render.Color, indicator render.Color, brightness uint8) error {
	cp := make([]render.Color, len(pixels))
	copy(cp, pixels)
	d.frames = append(d.frames, push{cp, indicator, brightness})
	return nil
}

func (d *recordingDriver) Halt() error { d.halted = true; return nil }

// scriptButton releases on the scripted tick numbers.
type scriptButton struct {
	releases map[int]bool
	tick     int
}

func (b *scriptButton) Released() bool {
	b.tick++
	return b.releases[b.tick]
}

// scriptIR replays a queue of decoded results, one per Read while armed.
type scriptIR struct {
	queue []struct {
		code   uint64
		repeat bool
	}
	armed bool
}

func (s *scriptIR) push(code uint64, repeat bool) {
	s.queue = append(s.queue, struct {
		code   uint64
		repeat bool
	}{code, repeat})
}

func (s *scriptIR) Read() (uint64, bool, bool) {
	if !s.armed || len(s.queue) == 0 {
		return 0, false, false
	}
	r := s.queue[0]
	s.queue = s.queue[1:]
	s.armed = false
	return r.code, r.repeat, true
}

func (s *scriptIR) Resume() { s.armed = true }

func newTestController(btn *scriptButton, ir *scriptIR) (*Controller, *recordingDriver) {
	drv := &recordingDriver{}
	o := Options{
		NumLeds: 29,
		Driver:  drv,
		Log:     zerolog.Nop(),
		Sleep:   func(time.Duration) {},
	}
	if btn != nil {
		o.Button = btn
	}
	if ir != nil {
		ir.armed = true
		o.IR = ir
	}
	return New(o), drv
}

func TestIdleTicksPushNothing(t *testing.T) {
	c, drv := newTestController(nil, nil)
	for i := 0; i < 20; i++ {
		c.Tick()
	}
	assert.Empty(t, drv.frames, "clean frames are never flushed")
}

func TestButtonPowersOnAndRenders(t *testing.T) {
	btn := &scriptButton{releases: map[int]bool{1: true}}
	c, drv := newTestController(btn, nil)

	c.Tick()
	require.NotEmpty(t, drv.frames)
	first := drv.frames[0]
	assert.Equal(t, control.BrightnessOn, first.brightness)
	assert.Equal(t, control.IndicatorOn, first.indicator)
	assert.Equal(t, render.ModeSparkle, c.dev.Mode)

	// Sparkle repaints on due ticks while powered.
	n := len(drv.frames)
	for i := 0; i < 4; i++ {
		c.Tick()
	}
	assert.Greater(t, len(drv.frames), n)
}

func TestPowerCycleThroughButton(t *testing.T) {
	btn := &scriptButton{releases: map[int]bool{1: true, 2: true, 3: true}}
	c, drv := newTestController(btn, nil)

	c.Tick()
	assert.Equal(t, control.PowerOn, c.dev.Power)
	c.Tick()
	assert.Equal(t, control.PowerEco, c.dev.Power)
	c.Tick()
	assert.Equal(t, control.PowerOff, c.dev.Power)

	// The off transition fades: one push per brightness step plus the final
	// black frame, all ending at the off brightness.
	last := drv.frames[len(drv.frames)-1]
	assert.Equal(t, control.BrightnessOff, last.brightness)
	assert.Equal(t, control.IndicatorOff, last.indicator)
	for _, p := range last.pixels {
		assert.Equal(t, render.Black, p)
	}
}

func TestCommandsIgnoredWhileOff(t *testing.T) {
	ir := &scriptIR{}
	ir.push(0x20DFAE51, false) // mode change
	c, drv := newTestController(nil, ir)

	c.Tick()
	assert.Equal(t, render.ModeSparkle, c.dev.Mode, "mode change dropped while off")
	assert.Empty(t, drv.frames)
}

func TestRemotePowerAndModeChange(t *testing.T) {
	ir := &scriptIR{}
	ir.push(0x20DF10EF, false) // power
	ir.push(0x20DFAE51, false) // mode -> constant
	c, _ := newTestController(nil, ir)

	c.Tick()
	require.Equal(t, control.PowerOn, c.dev.Power)
	c.Tick()
	assert.Equal(t, render.ModeConstant, c.dev.Mode)
}

func TestHeldModeButtonAdvancesOnce(t *testing.T) {
	ir := &scriptIR{}
	ir.push(0x20DF10EF, false) // power on
	ir.push(0x20DFAE51, false) // mode
	ir.push(0, true)           // held: NEC repeats
	ir.push(0, true)
	ir.push(0, true)
	c, _ := newTestController(nil, ir)

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	assert.Equal(t, render.ModeConstant, c.dev.Mode, "repeats must not cycle modes")
}

func TestHeldBrightnessButtonKeepsStepping(t *testing.T) {
	ir := &scriptIR{}
	ir.push(0x20DF10EF, false) // power on
	ir.push(0x20DF00FF, false) // brightness up
	ir.push(0, true)
	ir.push(0, true)
	c, _ := newTestController(nil, ir)

	for i := 0; i < 4; i++ {
		c.Tick()
	}
	want := control.BrightnessOn + 3*render.BrightnessStep
	assert.Equal(t, want, c.dev.Params.Brightness)
}

func TestReadConsumesAndResumeRearms(t *testing.T) {
	ir := &scriptIR{}
	ir.push(0x20DF10EF, false)
	ir.push(0x20DF10EF, false)
	c, _ := newTestController(nil, ir)

	c.Tick()
	c.Tick()
	assert.Equal(t, control.PowerEco, c.dev.Power, "each tick consumes exactly one pending code")
}

func TestStartupPlaysAndEndsDark(t *testing.T) {
	c, drv := newTestController(nil, nil)
	c.Startup()

	require.NotEmpty(t, drv.frames)
	// 30 script steps + fade pushes (brightness 8..0) + the final dark frame.
	assert.Len(t, drv.frames, render.StartupSteps+int(control.BrightnessOff)+1+1)

	last := drv.frames[len(drv.frames)-1]
	assert.Equal(t, control.BrightnessOff, last.brightness)
	for _, p := range last.pixels {
		assert.Equal(t, render.Black, p)
	}
	assert.Equal(t, 0, c.pool.ActiveCount())
	assert.False(t, c.frame.Dirty())

	// Still off afterwards: idle ticks push nothing.
	n := len(drv.frames)
	for i := 0; i < 20; i++ {
		c.Tick()
	}
	assert.Equal(t, n, len(drv.frames))
}

func TestDefaultsFillIn(t *testing.T) {
	c := New(Options{Driver: &recordingDriver{}})
	assert.Equal(t, 29, c.frame.Len())
	assert.Equal(t, 50*time.Millisecond, c.tick)
}

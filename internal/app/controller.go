// Package app wires the controller: one pass per tick through read inputs ->
// classify -> apply command -> render the active effect -> flush the frame
// if dirty. Single-threaded and cooperative; only the startup animation and
// the power-down fade block the loop, both deliberately.
package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-lumistrip/internal/control"
	"github.com/coreman2200/funtimes-lumistrip/internal/driver"
	"github.com/coreman2200/funtimes-lumistrip/internal/input"
	"github.com/coreman2200/funtimes-lumistrip/internal/render"
	"github.com/coreman2200/funtimes-lumistrip/internal/ws"
)

type Options struct {
	NumLeds int
	Tick    time.Duration
	Codes   control.CodeTable

	Driver  driver.Driver
	Button  input.ButtonSource
	IR      input.CodeSource
	Monitor *ws.Monitor // optional

	Log   zerolog.Logger
	Rand  render.Rand
	Sleep func(time.Duration)
}

type Controller struct {
	dev   *control.Device
	cls   *control.Classifier
	reg   *render.Registry
	pool  *render.SpritePool
	frame *render.Frame

	drv driver.Driver
	btn input.ButtonSource
	ir  input.CodeSource
	mon *ws.Monitor

	log   zerolog.Logger
	tick  time.Duration
	sleep func(time.Duration)
}

func New(o Options) *Controller {
	if o.NumLeds <= 0 {
		o.NumLeds = 29
	}
	if o.Tick <= 0 {
		o.Tick = 50 * time.Millisecond
	}
	if o.Button == nil {
		o.Button = input.NoButton{}
	}
	if o.IR == nil {
		o.IR = input.NoReceiver{}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}

	frame := render.NewFrame(o.NumLeds)
	pool := render.NewSpritePool(render.SpritePoolSize)

	c := &Controller{
		dev:   control.NewDevice(frame),
		cls:   control.NewClassifier(o.Codes),
		reg:   render.Default(pool, o.Rand),
		pool:  pool,
		frame: frame,
		drv:   o.Driver,
		btn:   o.Button,
		ir:    o.IR,
		mon:   o.Monitor,
		log:   o.Log,
		tick:  o.Tick,
		sleep: o.Sleep,
	}
	c.dev.Log = o.Log
	c.dev.Sleep = o.Sleep
	c.dev.Flush = c.flush
	return c
}

// Tick runs one pass of the control loop.
func (c *Controller) Tick() {
	in := control.Input{ButtonReleased: c.btn.Released()}
	if code, repeat, ok := c.ir.Read(); ok {
		in.CodeReady, in.Code, in.Repeat = true, code, repeat
	}
	cmd := c.cls.Classify(in)
	if in.CodeReady {
		c.ir.Resume()
	}

	switch {
	case cmd == control.PowerToggle:
		c.dev.TogglePower()
	case cmd != control.None && c.dev.Powered():
		c.dev.Apply(cmd)
	}

	if c.dev.Powered() {
		if r, ok := c.reg.Get(c.dev.Mode); ok {
			r.Render(c.frame, &c.dev.Params)
		}
	}

	if c.frame.Dirty() {
		c.flush()
	}
}

// Startup plays the scripted power-up burst through the sprite pool, fades
// to black, and leaves the strip dark with the pool empty. Blocking by
// design; input is not processed until it finishes.
func (c *Controller) Startup() {
	for i, s := range render.StartupScript(c.frame.Len()) {
		c.pool.Place(i, s)
	}
	for step := 0; step < render.StartupSteps; step++ {
		c.pool.Advance(step, c.frame)
		c.frame.MarkDirty()
		c.flush()
		c.sleep(render.StartupStepDelay)
	}
	c.dev.FadeOut()

	c.pool.Clear()
	c.frame.Clear()
	c.dev.Params.Brightness = control.BrightnessOff
	c.frame.MarkDirty()
	c.flush()
}

// Run shows the off indicator, plays the startup animation, then ticks
// until the context is canceled.
func (c *Controller) Run(ctx context.Context) error {
	c.frame.MarkDirty()
	c.flush()
	c.Startup()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return c.drv.Halt()
		case <-ticker.C:
			c.Tick()
		}
	}
}

func (c *Controller) flush() {
	if err := c.drv.Show(c.frame.Pixels, c.frame.Indicator, c.dev.Params.Brightness); err != nil {
		c.log.Warn().Err(err).Msg("frame push failed")
	}
	if c.mon != nil {
		c.mon.Broadcast(c.frame.Pixels, c.frame.Indicator, c.dev.Params.Brightness,
			c.dev.Power.String(), c.dev.Mode.String())
	}
	c.frame.Clean()
}

// Package input adapts the physical controls (push button, IR receiver)
// into the per-tick values the control loop consumes.
package input

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// ButtonSource yields a debounced release edge once per physical release.
type ButtonSource interface {
	Released() bool
}

// Button samples a GPIO pin once per tick and debounces it by requiring the
// raw level to hold for a number of consecutive samples before the logical
// state flips. Released reports true on the tick the logical state leaves
// pressed.
type Button struct {
	pin       gpio.PinIn
	invert    bool // true when the pin is pulled up and pressed reads low
	threshold int

	pressed bool
	count   int
}

// OpenButton looks the pin up by name and configures it with a pull-up, the
// usual wiring for a button to ground.
func OpenButton(name string) (*Button, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errUnknownPin(name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, err
	}
	return NewButton(pin, true), nil
}

// NewButton wraps an already configured pin. invert flips the pressed
// polarity.
func NewButton(pin gpio.PinIn, invert bool) *Button {
	return &Button{pin: pin, invert: invert, threshold: 2}
}

func (b *Button) Released() bool {
	raw := bool(b.pin.Read())
	if b.invert {
		raw = !raw
	}
	if raw == b.pressed {
		b.count = 0
		return false
	}
	b.count++
	if b.count < b.threshold {
		return false
	}
	b.count = 0
	b.pressed = raw
	return !raw // logical state just left pressed
}

type errUnknownPin string

func (e errUnknownPin) Error() string { return "input: unknown pin " + string(e) }

// NoButton is the stand-in when no button is wired (simulation).
type NoButton struct{}

func (NoButton) Released() bool { return false }

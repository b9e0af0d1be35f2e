package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"periph.io/x/conn/v3/gpio"
)

// fakePin replays a scripted level sequence, then holds the last level.
type fakePin struct {
	levels []gpio.Level
	i      int
}

func (p *fakePin) String() string                 { return "fake" }
func (p *fakePin) Halt() error                    { return nil }
func (p *fakePin) Name() string                   { return "fake" }
func (p *fakePin) Number() int                    { return 0 }
func (p *fakePin) Function() string               { return "In" }
func (p *fakePin) In(gpio.Pull, gpio.Edge) error  { return nil }
func (p *fakePin) WaitForEdge(time.Duration) bool { return false }
func (p *fakePin) Pull() gpio.Pull                { return gpio.PullUp }
func (p *fakePin) DefaultPull() gpio.Pull         { return gpio.PullUp }

func (p *fakePin) Read() gpio.Level {
	l := p.levels[p.i]
	if p.i < len(p.levels)-1 {
		p.i++
	}
	return l
}

var _ gpio.PinIn = &fakePin{}

func TestButtonReleaseEdge(t *testing.T) {
	// Pull-up wiring: idle high, pressed low. Two low samples latch the
	// press, two high samples latch the release.
	pin := &fakePin{levels: []gpio.Level{
		gpio.High, gpio.High, // idle
		gpio.Low, gpio.Low, // press
		gpio.High, gpio.High, // release
		gpio.High, // idle again
	}}
	b := NewButton(pin, true)

	assert.False(t, b.Released())
	assert.False(t, b.Released())
	assert.False(t, b.Released(), "press in progress")
	assert.False(t, b.Released(), "press latched, no release yet")
	assert.False(t, b.Released(), "release in progress")
	assert.True(t, b.Released(), "release edge fires once")
	assert.False(t, b.Released(), "no second edge while idle")
}

func TestButtonIgnoresGlitches(t *testing.T) {
	pin := &fakePin{levels: []gpio.Level{
		gpio.Low, gpio.High, // single-sample blip
		gpio.Low, gpio.High,
		gpio.High,
	}}
	b := NewButton(pin, true)

	for i := 0; i < 5; i++ {
		assert.False(t, b.Released(), "sample %d", i)
	}
}

func TestButtonWithoutInvert(t *testing.T) {
	pin := &fakePin{levels: []gpio.Level{
		gpio.High, gpio.High, // press (active high)
		gpio.Low, gpio.Low, // release
		gpio.Low,
	}}
	b := NewButton(pin, false)

	assert.False(t, b.Released())
	assert.False(t, b.Released())
	assert.False(t, b.Released())
	assert.True(t, b.Released())
	assert.False(t, b.Released())
}

func TestNoButtonNeverFires(t *testing.T) {
	var b NoButton
	assert.False(t, b.Released())
}

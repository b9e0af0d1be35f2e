// Package driver transmits finished frames to the LED hardware. The status
// pixel is wired as the first pixel of the chain, followed by the strip.
// Global brightness is applied here, on the way out; the render layer always
// stores full-scale colors.
package driver

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-lumistrip/internal/render"
)

// Driver is the single place pixel data leaves the core.
type Driver interface {
	Show(pixels []render.Color, indicator render.Color, brightness uint8) error
	Halt() error
}

// refreshRate is the WS2812 bit rate in kHz.
const refreshRate physic.Frequency = 800

// Strip pushes frames through a periph display.Drawer, either a real
// nrzled SPI device or the console fallback.
type Strip struct {
	drawer display.Drawer
	img    *image.NRGBA
}

// NewStrip wraps an existing drawer for a strip of n pixels plus the status
// pixel. Useful directly in tests with a recording SPI port.
func NewStrip(d display.Drawer, n int) *Strip {
	return &Strip{
		drawer: d,
		img:    image.NewNRGBA(image.Rect(0, 0, n+1, 1)),
	}
}

// Open connects to the WS2812 chain on the given SPI port ("" = first
// registered port).
func Open(port string, n int) (*Strip, error) {
	p, err := spireg.Open(port)
	if err != nil {
		return nil, err
	}
	opts := nrzled.Opts{
		NumPixels: n + 1,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	d, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, err
	}
	d.Halt()
	return NewStrip(d, n), nil
}

// NewSim renders the chain as colored blocks on the console.
func NewSim(n int) *Strip {
	return NewStrip(screen.New(n+1), n)
}

func (s *Strip) Show(pixels []render.Color, indicator render.Color, brightness uint8) error {
	s.img.SetNRGBA(0, 0, toNRGBA(indicator.Scale(brightness)))
	for i, c := range pixels {
		s.img.SetNRGBA(i+1, 0, toNRGBA(c.Scale(brightness)))
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

func (s *Strip) Halt() error {
	return s.drawer.Halt()
}

func toNRGBA(c render.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

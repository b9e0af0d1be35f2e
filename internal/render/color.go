package render

// Color is one 8-bit RGB pixel. Values are stored full-scale; global
// brightness is applied by the output driver, never here.
type Color struct{ R, G, B uint8 }

var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{255, 255, 0}
)

// HueMax is the length of the cyclic hue space. Hue arithmetic is done on
// uint8 so advancing past 255 wraps to 0 with no special-case branch.
const HueMax = 256

// HSV converts a hue/saturation/value triple to RGB using integer spectrum
// math. Hue runs 0..255 over the full spectrum.
func HSV(h, s, v uint8) Color {
	if s == 0 {
		return Color{v, v, v}
	}

	region := h / 43
	remainder := (h - region*43) * 6

	p := uint8(uint16(v) * uint16(255-s) >> 8)
	q := uint8(uint16(v) * uint16(255-uint8(uint16(s)*uint16(remainder)>>8)) >> 8)
	t := uint8(uint16(v) * uint16(255-uint8(uint16(s)*uint16(255-remainder)>>8)) >> 8)

	switch region {
	case 0:
		return Color{v, t, p}
	case 1:
		return Color{q, v, p}
	case 2:
		return Color{p, v, t}
	case 3:
		return Color{p, q, v}
	case 4:
		return Color{t, p, v}
	default:
		return Color{v, p, q}
	}
}

// Scale returns the color with every channel scaled by s/256.
func (c Color) Scale(s uint8) Color {
	return Color{scale8(c.R, s), scale8(c.G, s), scale8(c.B, s)}
}

// FadeVideo scales every channel by s/256 but keeps lit channels from
// dropping to zero, so decaying pixels dim without flicking off early.
func (c Color) FadeVideo(s uint8) Color {
	return Color{scale8Video(c.R, s), scale8Video(c.G, s), scale8Video(c.B, s)}
}

func scale8(v, s uint8) uint8 {
	return uint8(uint16(v) * (uint16(s) + 1) >> 8)
}

func scale8Video(v, s uint8) uint8 {
	r := uint8(uint16(v) * uint16(s) >> 8)
	if v != 0 && s != 0 {
		r++
	}
	return r
}

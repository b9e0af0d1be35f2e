package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVPrimaries(t *testing.T) {
	cases := []struct {
		name    string
		h, s, v uint8
		want    func(Color) bool
	}{
		{"red", 0, 255, 255, func(c Color) bool { return c.R == 255 && c.G == 0 && c.B == 0 }},
		{"green-ish", 85, 255, 255, func(c Color) bool { return c.G == 255 && c.R < 10 && c.B == 0 }},
		{"blue-ish", 170, 255, 255, func(c Color) bool { return c.B == 255 && c.G < 10 }},
		{"white", 0, 0, 255, func(c Color) bool { return c == White }},
		{"black", 0, 255, 0, func(c Color) bool { return c == Black }},
		{"gray", 123, 0, 128, func(c Color) bool { return c == Color{128, 128, 128} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HSV(tc.h, tc.s, tc.v)
			assert.True(t, tc.want(got), "HSV(%d,%d,%d) = %+v", tc.h, tc.s, tc.v, got)
		})
	}
}

func TestHSVHueWraps(t *testing.T) {
	// Hue arithmetic is uint8, so 250+16 lands back near red.
	var h uint8 = 250
	h += 16
	assert.Equal(t, uint8(10), h)
	got := HSV(h, 255, 255)
	assert.Equal(t, uint8(255), got.R)
}

func TestScaleFullBrightnessIsIdentity(t *testing.T) {
	c := Color{255, 128, 1}
	assert.Equal(t, c, c.Scale(255))
	assert.Equal(t, Black, c.Scale(0))
}

func TestScaleHalves(t *testing.T) {
	c := Color{200, 100, 50}
	got := c.Scale(127)
	assert.Equal(t, Color{100, 50, 25}, got)
}

func TestFadeVideoKeepsLitChannelsLit(t *testing.T) {
	c := Color{1, 0, 0}
	for i := 0; i < 100; i++ {
		c = c.FadeVideo(SpriteFade)
	}
	assert.Equal(t, uint8(1), c.R, "a lit channel never decays to zero")
	assert.Equal(t, uint8(0), c.G)
}

func TestFadeVideoDecays(t *testing.T) {
	c := Color{255, 255, 255}
	next := c.FadeVideo(SpriteFade)
	assert.Less(t, next.R, c.R)
	assert.Equal(t, Color{230, 230, 230}, next)
}

package okcolor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromColor(t *testing.T) {
	white := FromColor(color.White)
	assert.InDelta(t, 1, white.L, 1e-4)
	assert.InDelta(t, 0, white.A, 1e-4)
	assert.InDelta(t, 0, white.B, 1e-4)

	black := FromColor(color.Black)
	assert.InDelta(t, 0, black.L, 1e-4)

	red := FromColor(color.RGBA{R: 0xff, A: 0xff})
	assert.InDelta(t, 0.628, red.L, 1e-3)
	assert.Positive(t, red.A)
	assert.Positive(t, red.B)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{A: 0xff},
		{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		{R: 0xff, A: 0xff},
		{G: 0x80, A: 0xff},
		{R: 0x12, G: 0x34, B: 0x56, A: 0xff},
		{R: 0xfa, G: 0xce, B: 0x01, A: 0xff},
	} {
		lc := FromColor(c)
		assert.True(t, lc.InGamut(), "%v", c)

		got := lc.RGBA()
		assert.InDelta(t, c.R, got.R, 1, "%v", c)
		assert.InDelta(t, c.G, got.G, 1, "%v", c)
		assert.InDelta(t, c.B, got.B, 1, "%v", c)
		assert.Equal(t, uint8(0xff), got.A)
	}
}

func TestClip(t *testing.T) {
	gray := Lab{L: 0.5}
	assert.Equal(t, gray, Clip(gray, DefaultClipAlpha))

	for _, lc := range []Lab{
		{L: 0.7, A: 0.4, B: 0.1},
		{L: 0.3, A: -0.3, B: 0.2},
		{L: 0.9, A: 0.05, B: -0.4},
	} {
		assert.False(t, lc.InGamut(), "%v", lc)

		got := Clip(lc, DefaultClipAlpha)
		for _, v := range got.linear() {
			assert.GreaterOrEqual(t, v, -1e-2, "%v", lc)
			assert.LessOrEqual(t, v, 1+1e-2, "%v", lc)
		}
		assert.Equal(t, sign(lc.A), sign(got.A), "%v", lc)
		assert.Equal(t, sign(lc.B), sign(got.B), "%v", lc)
	}
}

func TestLerpDistance(t *testing.T) {
	a := Lab{L: 0.2, A: 0.1, B: -0.1}
	b := Lab{L: 0.6, A: -0.1, B: 0.1}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 0.4, mid.L, 1e-12)

	assert.Zero(t, Distance(a, a))
	assert.InDelta(t, 0.16+0.04+0.04, Distance(a, b), 1e-12)
	assert.InDelta(t, Distance(a, b)/4, Distance(a, mid), 1e-12)
}

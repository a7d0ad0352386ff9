// Package swatch holds the pen colour palette and the picker strip built
// from it.
package swatch

import (
	"image/color"
	"math"

	"layerdraw/editerr"
	"layerdraw/okcolor"
)

// Palette is an ordered list of opaque pen colours.
type Palette []color.RGBA

// Default is the palette offered when none is configured.
var Default = Palette{
	{A: 0xff},                            // black
	{B: 0xff, A: 0xff},                   // blue
	{R: 0xff, G: 0xff, A: 0xff},          // yellow
	{R: 0xff, A: 0xff},                   // red
	{G: 0xff, B: 0xff, A: 0xff},          // cyan
	{G: 0x80, A: 0xff},                   // green
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
}

// At returns swatch i.
func (p Palette) At(i int) (color.RGBA, error) {
	if i < 0 || i >= len(p) {
		return color.RGBA{}, editerr.Argument("swatch %d out of range [0,%d)", i, len(p))
	}
	return p[i], nil
}

// Nearest returns the index and value of the swatch perceptually closest to c.
// It returns -1 for an empty palette.
func (p Palette) Nearest(c color.Color) (int, color.RGBA) {
	want := okcolor.FromColor(c)
	best, bestDist := -1, math.MaxFloat64
	for i, sw := range p {
		d := okcolor.Distance(want, okcolor.FromColor(sw))
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	if best < 0 {
		return -1, color.RGBA{}
	}
	return best, p[best]
}

// Mix blends a toward b in OkLab. t is clamped to [0, 1].
func Mix(a, b color.Color, t float64) color.RGBA {
	t = min(max(t, 0), 1)
	return okcolor.Lerp(okcolor.FromColor(a), okcolor.FromColor(b), t).RGBA()
}

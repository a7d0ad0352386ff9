// Package okcolor converts between sRGB and the OkLab perceptual space.
//
// https://bottosson.github.io/posts/oklab/
package okcolor

import (
	"image/color"
	"math"
)

// Lab is an opaque colour in OkLab.
type Lab struct {
	L float64 // perceived lightness
	A float64 // green to red
	B float64 // blue to yellow
}

// linear sRGB from cubed LMS, one row per channel
var lmsToRGB = [3][3]float64{
	{+4.0767416621, -3.3077115913, +0.2309699292},
	{-1.2684380046, +2.6097574011, -0.3413193965},
	{-0.0041960863, -0.7034186147, +1.7076147010},
}

// FromColor converts c to OkLab, ignoring alpha.
func FromColor(c color.Color) Lab {
	r, g, b := toLinearRGB(c)

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// lms returns the cubed cone responses of lc.
func (lc Lab) lms() [3]float64 {
	out := [3]float64{
		lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B,
		lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B,
		lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B,
	}
	for i, v := range out {
		out[i] = v * v * v
	}
	return out
}

// linear returns the unclipped linear sRGB channels of lc.
func (lc Lab) linear() [3]float64 {
	lms := lc.lms()
	var out [3]float64
	for i, row := range lmsToRGB {
		out[i] = dot(row, lms)
	}
	return out
}

// gamutSlack absorbs rounding in the sRGB round trip.
const gamutSlack = 1e-6

// InGamut reports whether lc is representable in sRGB.
func (lc Lab) InGamut() bool {
	for _, v := range lc.linear() {
		if v < -gamutSlack || v > 1+gamutSlack {
			return false
		}
	}
	return true
}

// RGBA returns lc as an opaque 8-bit colour, gamut clipped first.
func (lc Lab) RGBA() color.RGBA {
	rgb := Clip(lc, DefaultClipAlpha).linear()
	return color.RGBA{
		R: to8(fromLinear(rgb[0])),
		G: to8(fromLinear(rgb[1])),
		B: to8(fromLinear(rgb[2])),
		A: 0xff,
	}
}

// Lerp interpolates from a to b. t is not clamped.
func Lerp(a, b Lab, t float64) Lab {
	return Lab{
		L: a.L + (b.L-a.L)*t,
		A: a.A + (b.A-a.A)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// Distance is the squared euclidean distance between a and b.
func Distance(a, b Lab) float64 {
	dL, dA, dB := a.L-b.L, a.A-b.A, a.B-b.B
	return dL*dL + dA*dA + dB*dB
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

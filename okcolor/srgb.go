package okcolor

import (
	"image/color"
	"math"
)

func toLinearRGB(c color.Color) (r, g, b float64) {
	c64 := color.RGBA64Model.Convert(c).(color.RGBA64)
	return toLinear(float64(c64.R) / 0xffff),
		toLinear(float64(c64.G) / 0xffff),
		toLinear(float64(c64.B) / 0xffff)
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const invGamma = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, invGamma)*1.055 - 0.055
	}
	return x * 12.92
}

func to8(x float64) uint8 {
	return uint8(math.Round(min(max(x, 0), 1) * 0xff))
}

package swatch

import (
	"image"
	"image/color"
)

// Strip lays a palette out horizontally. The upper half of the strip
// blends each swatch linearly into its right neighbour, the lower half
// shows plain swatches.
type Strip struct {
	Colors Palette
}

// NewStrip returns a strip over p, or over Default when p is empty.
func NewStrip(p Palette) *Strip {
	if len(p) == 0 {
		p = Default
	}
	return &Strip{Colors: p}
}

func (s *Strip) section(width int) float64 {
	return float64(width) / float64(len(s.Colors)-1)
}

// Index returns the swatch whose section contains column x.
func (s *Strip) Index(x, width int) int {
	if len(s.Colors) < 2 || width <= 0 {
		return 0
	}
	x = min(max(x, 0), width)
	return min(int(float64(x)/s.section(width)), len(s.Colors)-1)
}

// ColorAt returns the colour shown at (x, y) on a width x height strip.
func (s *Strip) ColorAt(x, y, width, height int) color.RGBA {
	n := len(s.Colors)
	if n == 0 {
		return color.RGBA{A: 0xff}
	}
	i := s.Index(x, width)
	if n == 1 || width <= 0 || float64(y) > float64(height)/2 || i == n-1 {
		return s.Colors[i]
	}

	x = min(max(x, 0), width)
	sw := s.section(width)
	delta := (float64(i+1)*sw - float64(x)) / sw
	a, b := s.Colors[i], s.Colors[i+1]
	return color.RGBA{
		R: blend(a.R, b.R, delta),
		G: blend(a.G, b.G, delta),
		B: blend(a.B, b.B, delta),
		A: 0xff,
	}
}

// blend weighs a by delta and b by the rest, truncating.
func blend(a, b uint8, delta float64) uint8 {
	return uint8(float64(a)*delta + float64(b)*(1-delta))
}

// Image renders the strip into a new width x height raster.
func (s *Strip) Image(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetRGBA(x, y, s.ColorAt(x, y, width, height))
		}
	}
	return img
}

// Package stroke rasterizes freehand pen strokes: polylines with round caps
// and round joins, and single round dots.
//
// Integer points address pixel centres, so the point (x, y) is drawn at
// (x+0.5, y+0.5) in raster space.
package stroke

import (
	"image"
	"image/color"

	"layerdraw/editerr"

	"github.com/fogleman/gg"
)

// Style is the pen used for a stroke.
type Style struct {
	Color     color.RGBA
	Thickness int
}

// NewStyle returns an opaque pen of the given colour and thickness.
func NewStyle(c color.Color, thickness int) (*Style, error) {
	s := &Style{Color: Opaque(c), Thickness: thickness}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the style can be drawn with.
func (s *Style) Validate() error {
	if s == nil {
		return editerr.Argument("nil stroke style")
	}
	if s.Thickness <= 0 {
		return editerr.Argument("stroke thickness %d", s.Thickness)
	}
	return nil
}

// Opaque converts c to RGBA and drops its alpha channel.
func Opaque(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 0xff}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}

// Polyline draws a connected line through pts onto dst. Consecutive duplicates
// are dropped; a path reduced to a single point is drawn as a dot.
func Polyline(dst *image.RGBA, s *Style, pts []image.Point) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if len(pts) == 0 {
		return editerr.Argument("empty polyline")
	}
	pts = dedupe(pts)
	if len(pts) == 1 {
		return Dot(dst, s, pts[0])
	}

	dc := newContext(dst, s)
	dc.SetLineWidth(float64(s.Thickness))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for i, p := range pts {
		x, y := centre(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
	return nil
}

// Dot fills a circle of diameter s.Thickness centred on p.
func Dot(dst *image.RGBA, s *Style, p image.Point) error {
	if err := s.Validate(); err != nil {
		return err
	}
	dc := newContext(dst, s)
	x, y := centre(p)
	dc.DrawCircle(x, y, float64(s.Thickness)/2)
	dc.Fill()
	return nil
}

// Padding is the distance a stroke of this style reaches past its centre line,
// rounded down.
func (s *Style) Padding() int {
	return s.Thickness / 2
}

func newContext(dst *image.RGBA, s *Style) *gg.Context {
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(s.Color)
	return dc
}

func centre(p image.Point) (float64, float64) {
	return float64(p.X) + 0.5, float64(p.Y) + 0.5
}

func dedupe(pts []image.Point) []image.Point {
	out := make([]image.Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

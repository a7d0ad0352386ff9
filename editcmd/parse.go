package editcmd

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"layerdraw/editerr"
	"layerdraw/swatch"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	swatchPrefix = "swatch:"
	mixPrefix    = "mix:"
)

// ParsePoint reads "x,y".
func ParsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return image.Point{}, editerr.Argument("invalid point %q, want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, editerr.Argument("invalid x in point %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, editerr.Argument("invalid y in point %q", s)
	}
	return image.Pt(x, y), nil
}

// ParsePoints reads a whitespace separated list of points.
func ParsePoints(s string) ([]image.Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, editerr.Argument("no points given")
	}
	pts := make([]image.Point, len(fields))
	for i, f := range fields {
		p, err := ParsePoint(f)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

// ParseColor reads #rgb, #rrggbb, swatch:N or mix:I,J,T. The last two index
// pal; mix blends swatch I toward swatch J by T in [0, 1].
func ParseColor(s string, pal swatch.Palette) (color.RGBA, error) {
	if args, ok := strings.CutPrefix(s, mixPrefix); ok {
		return parseMix(args, pal)
	}
	if idx, ok := strings.CutPrefix(s, swatchPrefix); ok {
		i, err := strconv.Atoi(idx)
		if err != nil {
			return color.RGBA{}, editerr.Argument("invalid swatch index %q", idx)
		}
		return pal.At(i)
	}

	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, editerr.Argument("invalid color %q, should be #RGB, #RRGGBB or %sN", s, swatchPrefix)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: could not read color %q: %w", editerr.ErrInvalidArgument, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func parseMix(args string, pal swatch.Palette) (color.RGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return color.RGBA{}, editerr.Argument("invalid mix %q, want %sI,J,T", args, mixPrefix)
	}
	var ends [2]color.RGBA
	for i, part := range parts[:2] {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return color.RGBA{}, editerr.Argument("invalid swatch index %q", part)
		}
		if ends[i], err = pal.At(idx); err != nil {
			return color.RGBA{}, err
		}
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || t < 0 || t > 1 {
		return color.RGBA{}, editerr.Argument("invalid mix amount %q, want 0..1", parts[2])
	}
	return swatch.Mix(ends[0], ends[1], t), nil
}

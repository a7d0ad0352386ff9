package scene

import (
	"image"
	"image/color"

	"layerdraw/pixbuf"
)

// Render composites the scene onto a new opaque white width x height buffer.
// Visible layers are drawn bottom to top, each with its committed content
// and then any stroke in progress. The caller owns the result.
func (s *Scene) Render(width, height int) (*pixbuf.Buffer, error) {
	out, err := pixbuf.New(width, height)
	if err != nil {
		return nil, err
	}
	out.Fill(color.White)
	for _, e := range s.layers {
		l := e.layer
		if !l.Visible() {
			continue
		}
		pos := l.Position()
		out.BlitOver(l.Committed(), pos.X, pos.Y)
		if p := l.Pending(); p != nil {
			out.BlitOver(p, pos.X, pos.Y)
		}
	}
	return out, nil
}

// Extent returns the smallest rectangle holding the canvas origin and every
// layer, visible or not.
func (s *Scene) Extent() image.Rectangle {
	var r image.Rectangle
	for _, e := range s.layers {
		r = r.Union(e.layer.Bounds())
	}
	r.Min.X, r.Min.Y = min(r.Min.X, 0), min(r.Min.Y, 0)
	r.Max.X, r.Max.Y = max(r.Max.X, 0), max(r.Max.Y, 0)
	return r
}

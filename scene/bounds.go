package scene

import (
	"image"

	"layerdraw/layer"
	"layerdraw/stroke"
)

// grow enlarges l so that pts, padded by half the pen width, fit inside it.
// The padded box is inclusive on both ends: the pixel under the padded max
// belongs to the layer. The layer never shrinks and is left alone when it
// already fits.
func (s *Scene) grow(l *layer.Layer, pen *stroke.Style, pts ...image.Point) error {
	if len(pts) == 0 {
		return nil
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	pad := image.Pt(pen.Padding(), pen.Padding())
	lo, hi = lo.Sub(pad), hi.Add(pad)

	cur := l.Bounds()
	if lo.X >= cur.Min.X && lo.Y >= cur.Min.Y && hi.X < cur.Max.X && hi.Y < cur.Max.Y {
		return nil
	}

	pos := image.Pt(min(cur.Min.X, lo.X), min(cur.Min.Y, lo.Y))
	br := image.Pt(max(cur.Max.X, hi.X+1), max(cur.Max.Y, hi.Y+1))
	size := br.Sub(pos)
	s.logger.Debug("growing layer", "layer", s.selected, "from", cur, "to", image.Rectangle{Min: pos, Max: br})
	return l.SetPositionAndSize(pos, size)
}

package layer

import (
	"image"

	"layerdraw/editerr"
	"layerdraw/pixbuf"
)

// Snapshot is the persisted form of a layer. It never carries a stroke in
// progress and never shares pixels with a live layer.
type Snapshot struct {
	Pixels   *image.RGBA
	Position image.Point
	Size     image.Point
	Visible  bool
}

// Snapshot copies the layer's committed state. A pending stroke is not included.
func (l *Layer) Snapshot() Snapshot {
	return Snapshot{
		Pixels:   l.committed.Clone().Image(),
		Position: l.position,
		Size:     l.size,
		Visible:  l.visible,
	}
}

// FromSnapshot builds a layer holding a copy of the snapshot's pixels.
func FromSnapshot(s *Snapshot) (*Layer, error) {
	if s == nil {
		return nil, editerr.Argument("nil layer snapshot")
	}
	if s.Size.X <= 0 || s.Size.Y <= 0 {
		return nil, editerr.Dimension("layer snapshot", s.Size.X, s.Size.Y)
	}
	if s.Pixels == nil {
		return nil, editerr.Argument("layer snapshot without pixels")
	}
	if got := s.Pixels.Bounds().Size(); got != s.Size {
		return nil, editerr.Dimension("layer snapshot pixels", got.X, got.Y)
	}
	committed, err := pixbuf.FromImage(s.Pixels)
	if err != nil {
		return nil, err
	}
	return &Layer{
		position:  s.Position,
		size:      s.Size,
		committed: committed,
		visible:   s.Visible,
	}, nil
}

// Equal reports whether two snapshots describe the same layer, comparing
// pixels byte for byte.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Position != o.Position || s.Size != o.Size || s.Visible != o.Visible {
		return false
	}
	if s.Pixels == nil || o.Pixels == nil {
		return s.Pixels == nil && o.Pixels == nil
	}
	a, errA := pixbuf.FromImage(s.Pixels)
	b, errB := pixbuf.FromImage(o.Pixels)
	if errA != nil || errB != nil {
		return errA != nil && errB != nil
	}
	return a.Equal(b)
}

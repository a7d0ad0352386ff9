// Package layer implements a positioned raster layer: committed pixels, an
// optional overlay holding the stroke in progress, and a visibility flag.
//
// Typical stroke sequence, with points already in layer-local space:
//
//	l.StrokePoint(style, p0)            // dot for the press
//	l.StrokeLine(style, []image.Point{p0, p1, p2})
//	l.Apply()                           // commit on release
package layer

import (
	"image"

	"layerdraw/editerr"
	"layerdraw/notify"
	"layerdraw/pixbuf"
	"layerdraw/stroke"
)

// Layer is a positioned pair of equally sized pixel buffers.
type Layer struct {
	position  image.Point
	size      image.Point
	committed *pixbuf.Buffer
	pending   *pixbuf.Buffer // nil unless a stroke is in progress
	visible   bool

	changed notify.List
}

// New returns a visible, transparent 1x1 layer at the canvas origin.
func New() *Layer {
	b, _ := pixbuf.New(1, 1)
	return &Layer{
		size:      image.Pt(1, 1),
		committed: b,
		visible:   true,
	}
}

func (l *Layer) Position() image.Point { return l.position }

// Size returns (width, height).
func (l *Layer) Size() image.Point { return l.size }

// Bounds returns the layer rectangle in canvas space.
func (l *Layer) Bounds() image.Rectangle {
	return image.Rectangle{Min: l.position, Max: l.position.Add(l.size)}
}

func (l *Layer) Visible() bool { return l.visible }

// Committed returns the finalized content. Callers must not modify it.
func (l *Layer) Committed() *pixbuf.Buffer { return l.committed }

// Pending returns the stroke overlay, or nil when no stroke is in progress.
func (l *Layer) Pending() *pixbuf.Buffer { return l.pending }

func (l *Layer) HasPending() bool { return l.pending != nil }

// Subscribe registers fn to be called after every mutation.
func (l *Layer) Subscribe(fn func()) (cancel func()) {
	return l.changed.Add(fn)
}

// SetVisible shows or hides the layer.
func (l *Layer) SetVisible(v bool) {
	l.visible = v
	l.changed.Fire()
}

// SetPositionAndSize moves and resizes the layer. Content keeps its canvas
// location: when the origin moves left or up it is shifted right or down
// inside the new buffers. Anything outside the new rectangle is dropped.
func (l *Layer) SetPositionAndSize(pos, size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return editerr.Dimension("layer", size.X, size.Y)
	}
	dx := max(0, l.position.X-pos.X)
	dy := max(0, l.position.Y-pos.Y)

	committed, err := l.committed.ResizeWithOffsetCopy(size.X, size.Y, dx, dy)
	if err != nil {
		return err
	}
	var pending *pixbuf.Buffer
	if l.pending != nil {
		if pending, err = l.pending.ResizeWithOffsetCopy(size.X, size.Y, dx, dy); err != nil {
			return err
		}
	}

	l.committed, l.pending = committed, pending
	l.position, l.size = pos, size
	l.changed.Fire()
	return nil
}

// StrokeLine replaces the overlay with a polyline through pts (layer-local).
func (l *Layer) StrokeLine(style *stroke.Style, pts []image.Point) error {
	if err := style.Validate(); err != nil {
		return err
	}
	if len(pts) == 0 {
		return editerr.Argument("stroke line needs at least one point")
	}
	buf, err := pixbuf.New(l.size.X, l.size.Y)
	if err != nil {
		return err
	}
	if err := stroke.Polyline(buf.Image(), style, pts); err != nil {
		return err
	}
	l.pending = buf
	l.changed.Fire()
	return nil
}

// StrokePoint replaces the overlay with a dot of the pen's diameter at p
// (layer-local).
func (l *Layer) StrokePoint(style *stroke.Style, p image.Point) error {
	if err := style.Validate(); err != nil {
		return err
	}
	buf, err := pixbuf.New(l.size.X, l.size.Y)
	if err != nil {
		return err
	}
	if err := stroke.Dot(buf.Image(), style, p); err != nil {
		return err
	}
	l.pending = buf
	l.changed.Fire()
	return nil
}

// Apply merges the overlay into the committed content and drops it.
// Without an overlay it does nothing.
func (l *Layer) Apply() {
	if l.pending == nil {
		return
	}
	l.committed.BlitOver(l.pending, 0, 0)
	l.pending = nil
	l.changed.Fire()
}

// Offset translates the layer without touching its pixels.
func (l *Layer) Offset(dx, dy int) {
	l.position = l.position.Add(image.Pt(dx, dy))
	l.changed.Fire()
}

package scene

import (
	"image"

	"layerdraw/layer"
	"layerdraw/stroke"
)

type mode int

const (
	idle mode = iota
	drawing
	panning
)

func (m mode) String() string {
	switch m {
	case drawing:
		return "drawing"
	case panning:
		return "panning"
	}
	return "idle"
}

// strokeState is the pointer interaction between a press and its release.
// The pen and the pan/draw choice are latched at press time.
type strokeState struct {
	mode   mode
	pen    *stroke.Style
	last   image.Point
	points []image.Point // canvas space, since the press
}

// Pressed reports whether a press has not been released yet.
func (s *Scene) Pressed() bool { return s.stroking.mode != idle }

// active returns the selected layer if pointer input may reach it. A stroke
// left on a layer hidden through Layer.SetVisible is committed here.
func (s *Scene) active() *layer.Layer {
	l := s.Selected()
	if l == nil || !l.Visible() {
		s.finishStroke()
		return nil
	}
	return l
}

// PressDown starts a stroke, or a pan in pan mode, at canvas point p.
// It does nothing when no visible layer is selected.
func (s *Scene) PressDown(p image.Point) error {
	l := s.active()
	if l == nil {
		return nil
	}
	s.finishStroke()

	if s.panMode {
		s.stroking = strokeState{mode: panning, last: p}
		s.logger.Debug("press", "layer", s.selected, "mode", s.stroking.mode, "at", p)
		return nil
	}

	pen := &stroke.Style{Color: s.color, Thickness: s.thickness}
	if err := s.grow(l, pen, p); err != nil {
		return err
	}
	if err := l.StrokePoint(pen, p.Sub(l.Position())); err != nil {
		return err
	}
	s.stroking = strokeState{
		mode:   drawing,
		pen:    pen,
		last:   p,
		points: []image.Point{p},
	}
	s.logger.Debug("press", "layer", s.selected, "mode", s.stroking.mode, "at", p)
	return nil
}

// Move extends the current stroke to p, or drags the selected layer by the
// pointer delta while panning.
func (s *Scene) Move(p image.Point) error {
	l := s.active()
	if l == nil || s.stroking.mode == idle {
		return nil
	}

	switch s.stroking.mode {
	case panning:
		d := p.Sub(s.stroking.last)
		l.Offset(d.X, d.Y)
	case drawing:
		if err := s.grow(l, s.stroking.pen, p, s.stroking.last); err != nil {
			return err
		}
		s.stroking.points = append(s.stroking.points, p)
		// The layer origin may have moved above, so every point is
		// renormalized and the whole path redrawn.
		origin := l.Position()
		local := make([]image.Point, len(s.stroking.points))
		for i, q := range s.stroking.points {
			local[i] = q.Sub(origin)
		}
		if err := l.StrokeLine(s.stroking.pen, local); err != nil {
			return err
		}
	}

	s.stroking.last = p
	return nil
}

// PressUp ends the interaction. A stroke is committed to the layer.
func (s *Scene) PressUp(p image.Point) error {
	if s.active() == nil || s.stroking.mode == idle {
		return nil
	}
	s.finishStroke()
	return nil
}

// finishStroke commits any stroke in progress and returns to idle.
func (s *Scene) finishStroke() {
	if s.stroking.mode == drawing {
		if l := s.Selected(); l != nil {
			l.Apply()
			s.logger.Debug("stroke committed", "layer", s.selected, "points", len(s.stroking.points))
		}
	}
	s.stroking = strokeState{}
}

package scene

import (
	"fmt"

	"layerdraw/layer"
)

// Snapshots returns the persisted form of every layer, bottom to top.
// Strokes in progress are not included.
func (s *Scene) Snapshots() []layer.Snapshot {
	out := make([]layer.Snapshot, len(s.layers))
	for i, e := range s.layers {
		out[i] = e.layer.Snapshot()
	}
	return out
}

// FromSnapshots builds a scene with one layer per snapshot, in order.
// The first layer is selected when there is one.
func FromSnapshots(snaps []layer.Snapshot, opts ...Option) (*Scene, error) {
	s := New(opts...)
	for i := range snaps {
		l, err := layer.FromSnapshot(&snaps[i])
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("could not restore layer %d: %w", i, err)
		}
		s.attach(l)
	}
	return s, nil
}

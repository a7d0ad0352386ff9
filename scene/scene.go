// Package scene owns an ordered stack of layers, the current pen settings and
// the press/move/release interaction that paints into the selected layer.
//
// A Scene is not safe for concurrent use. Listeners registered with
// SubscribeChanged and SubscribeOrderChanged are called synchronously and must
// not call back into mutating Scene methods.
package scene

import (
	"image/color"
	"log/slog"

	"layerdraw/editerr"
	"layerdraw/layer"
	"layerdraw/notify"
	"layerdraw/stroke"
)

// DefaultThickness is the pen diameter of a new scene.
const DefaultThickness = 5

// DefaultColor is the pen colour of a new scene.
var DefaultColor = color.RGBA{A: 0xff}

type entry struct {
	layer  *layer.Layer
	cancel func()
}

// Scene is a layer stack plus pen state. Layer 0 is drawn first (bottom).
type Scene struct {
	layers   []entry
	selected int

	color     color.RGBA
	thickness int
	panMode   bool

	stroking strokeState

	changed      notify.List
	orderChanged notify.List
	logger       *slog.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty scene with a black 5px pen.
func New(opts ...Option) *Scene {
	s := &Scene{
		selected:  -1,
		color:     DefaultColor,
		thickness: DefaultThickness,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubscribeChanged registers fn for any pixel or geometry change.
func (s *Scene) SubscribeChanged(fn func()) (cancel func()) {
	return s.changed.Add(fn)
}

// SubscribeOrderChanged registers fn for structural changes of the layer list
// (add, remove, reorder).
func (s *Scene) SubscribeOrderChanged(fn func()) (cancel func()) {
	return s.orderChanged.Add(fn)
}

func (s *Scene) Color() color.RGBA { return s.color }

// SetColor sets the pen colour for the next stroke. Alpha is ignored.
func (s *Scene) SetColor(c color.Color) {
	s.color = stroke.Opaque(c)
}

func (s *Scene) Thickness() int { return s.thickness }

// SetThickness sets the pen diameter for the next stroke.
func (s *Scene) SetThickness(t int) error {
	if t <= 0 {
		return editerr.Argument("pen thickness %d", t)
	}
	s.thickness = t
	return nil
}

func (s *Scene) PanMode() bool { return s.panMode }

// SetPanMode switches between drawing and moving the selected layer.
// It applies from the next press on.
func (s *Scene) SetPanMode(on bool) {
	s.panMode = on
}

func (s *Scene) Len() int { return len(s.layers) }

func (s *Scene) HasNoLayers() bool { return len(s.layers) == 0 }

// Layers returns the layers bottom to top. The slice is a copy; the layers
// are not. Hide layers through SetLayerVisible: hiding the selected layer
// directly leaves its stroke pending until the next pointer event.
func (s *Scene) Layers() []*layer.Layer {
	out := make([]*layer.Layer, len(s.layers))
	for i, e := range s.layers {
		out[i] = e.layer
	}
	return out
}

// Layer returns layer i, or nil when i is out of range.
func (s *Scene) Layer(i int) *layer.Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i].layer
}

// SelectedIndex is -1 for an empty scene and a valid index otherwise.
func (s *Scene) SelectedIndex() int { return s.selected }

// Selected returns the selected layer or nil.
func (s *Scene) Selected() *layer.Layer { return s.Layer(s.selected) }

// Select changes the selected layer. A stroke in progress is committed first.
func (s *Scene) Select(i int) error {
	if s.HasNoLayers() {
		if i == -1 {
			return nil
		}
		return editerr.Argument("select layer %d of empty scene", i)
	}
	if i < 0 || i >= len(s.layers) {
		return editerr.Argument("select layer %d of %d", i, len(s.layers))
	}
	if i == s.selected {
		return nil
	}
	s.finishStroke()
	s.selected = i
	return nil
}

// SetLayerVisible shows or hides layer i. Hiding the layer being drawn on
// commits its stroke first.
func (s *Scene) SetLayerVisible(i int, visible bool) error {
	l := s.Layer(i)
	if l == nil {
		return editerr.Argument("layer %d of %d", i, len(s.layers))
	}
	if i == s.selected && !visible {
		s.finishStroke()
	}
	l.SetVisible(visible)
	return nil
}

// AddLayer appends an empty 1x1 layer on top. It becomes selected only when
// it is the first one.
func (s *Scene) AddLayer() {
	s.finishStroke()
	s.attach(layer.New())
	s.structureChanged()
}

// AddLayerFrom appends a layer built from snap, with the same selection rule
// as AddLayer.
func (s *Scene) AddLayerFrom(snap *layer.Snapshot) error {
	l, err := layer.FromSnapshot(snap)
	if err != nil {
		return err
	}
	s.finishStroke()
	s.attach(l)
	s.structureChanged()
	return nil
}

func (s *Scene) CanRemoveSelected() bool { return s.selected != -1 }

// RemoveSelected drops the selected layer. Selection moves to 0, or -1 when
// nothing is left.
func (s *Scene) RemoveSelected() {
	if s.HasNoLayers() {
		return
	}
	s.finishStroke()
	e := s.layers[s.selected]
	e.cancel()
	s.layers = append(s.layers[:s.selected], s.layers[s.selected+1:]...)
	if s.HasNoLayers() {
		s.selected = -1
	} else {
		s.selected = 0
	}
	s.structureChanged()
}

func (s *Scene) CanMoveUp() bool { return s.selected > 0 }

// MoveSelectedUp swaps the selected layer with the one before it in the list.
func (s *Scene) MoveSelectedUp() {
	if !s.CanMoveUp() {
		return
	}
	s.finishStroke()
	i := s.selected
	s.layers[i-1], s.layers[i] = s.layers[i], s.layers[i-1]
	s.selected--
	s.structureChanged()
}

func (s *Scene) CanMoveDown() bool {
	return s.selected != -1 && s.selected < len(s.layers)-1
}

// MoveSelectedDown swaps the selected layer with the one after it in the list.
func (s *Scene) MoveSelectedDown() {
	if !s.CanMoveDown() {
		return
	}
	s.finishStroke()
	i := s.selected
	s.layers[i+1], s.layers[i] = s.layers[i], s.layers[i+1]
	s.selected++
	s.structureChanged()
}

func (s *Scene) attach(l *layer.Layer) {
	cancel := l.Subscribe(s.changed.Fire)
	s.layers = append(s.layers, entry{layer: l, cancel: cancel})
	if len(s.layers) == 1 {
		s.selected = 0
	}
}

func (s *Scene) structureChanged() {
	s.changed.Fire()
	s.orderChanged.Fire()
}

// Close detaches every layer. The scene is empty afterwards.
func (s *Scene) Close() {
	s.finishStroke()
	for _, e := range s.layers {
		e.cancel()
	}
	s.layers = nil
	s.selected = -1
}

package editcmd

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"layerdraw/scene"
	"layerdraw/swatch"

	"github.com/alecthomas/kong"
)

// DrawCmd replays a pointer path onto a layer: a press at the first point,
// a move to each following point and a release at the last.
type DrawCmd struct {
	File      string        `arg:"" help:"Scene file"`
	Points    string        `help:"Pointer path in canvas coordinates, as 'X,Y X,Y ...'" required:""`
	Select    int           `help:"Layer to draw on" default:"0"`
	Color     string        `help:"Pen color as #RGB, #RRGGBB, swatch:N or mix:I,J,T" default:"#000000"`
	Thickness int           `help:"Pen thickness in pixels" default:"5"`
	Pan       bool          `help:"Move the layer along the path instead of drawing" default:"false"`
	Snap      bool          `help:"Snap the pen color to the nearest swatch" default:"false"`
	Palette   string        `help:"RIFF PAL file providing the swatches" type:"existingfile"`
	Path      []image.Point `kong:"-"`
	PenColor  color.RGBA    `kong:"-"`
}

func (c *DrawCmd) Validate(kctx *kong.Context) error {
	var err error
	if c.File, err = existingFile(c.File); err != nil {
		return err
	}
	if c.Select < 0 {
		return fmt.Errorf("invalid layer index: %d", c.Select)
	}
	if c.Thickness <= 0 {
		return fmt.Errorf("invalid pen thickness: %d", c.Thickness)
	}
	if c.Path, err = ParsePoints(c.Points); err != nil {
		return err
	}

	pal := swatch.Default
	if c.Palette != "" {
		if pal, err = swatch.ReadFile(c.Palette); err != nil {
			return err
		}
	}
	if c.PenColor, err = ParseColor(c.Color, pal); err != nil {
		return err
	}
	if c.Snap {
		_, c.PenColor = pal.Nearest(c.PenColor)
	}
	return nil
}

func (c *DrawCmd) Run(logger *slog.Logger) error {
	logger = logger.With("file", c.File)
	s, err := openScene(c.File, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Select(c.Select); err != nil {
		return fmt.Errorf("could not select layer %d: %w", c.Select, err)
	}
	s.SetColor(c.PenColor)
	if err := s.SetThickness(c.Thickness); err != nil {
		return err
	}
	s.SetPanMode(c.Pan)

	if err := Replay(s, c.Path); err != nil {
		return err
	}

	if err := s.Save(c.File); err != nil {
		return err
	}
	l := s.Selected()
	logger.Info("path applied", "layer", c.Select, "points", len(c.Path), "pan", c.Pan,
		"position", l.Position(), "size", l.Size())
	return nil
}

// Replay feeds path to s as one press, drag and release.
func Replay(s *scene.Scene, path []image.Point) error {
	if len(path) == 0 {
		return nil
	}
	if err := s.PressDown(path[0]); err != nil {
		return fmt.Errorf("could not press at %v: %w", path[0], err)
	}
	for _, p := range path[1:] {
		if err := s.Move(p); err != nil {
			return fmt.Errorf("could not move to %v: %w", p, err)
		}
	}
	if err := s.PressUp(path[len(path)-1]); err != nil {
		return fmt.Errorf("could not release at %v: %w", path[len(path)-1], err)
	}
	return nil
}

package exportcmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"layerdraw/config"
	"layerdraw/imgio"
	"layerdraw/scene"

	"github.com/alecthomas/kong"
)

// ExportCmd renders a scene into a flat image.
type ExportCmd struct {
	File   string `arg:"" help:"Scene file"`
	Out    string `arg:"" help:"Output image; the extension picks the format (png, bmp, tif, jpg, gif)"`
	Width  int    `help:"Canvas width, defaults to the scene extent" default:"0"`
	Height int    `help:"Canvas height, defaults to the scene extent" default:"0"`
}

func (c *ExportCmd) Validate(kctx *kong.Context) error {
	var err error
	if c.File, err = config.ExpandPath(c.File); err != nil {
		return err
	}
	if _, err := os.Stat(c.File); err != nil {
		return fmt.Errorf("invalid scene path %q: %w", c.File, err)
	}
	if c.Out, err = config.ExpandPath(c.Out); err != nil {
		return err
	}
	if _, err := imgio.FormatFromPath(c.Out); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid canvas size: %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c *ExportCmd) Run(logger *slog.Logger) error {
	size, err := Export(c.File, c.Out, image.Pt(c.Width, c.Height), logger)
	if err != nil {
		return err
	}
	logger.Info("scene exported", "file", c.File, "out", c.Out, "width", size.X, "height", size.Y)
	return nil
}

// CanvasSize fills in zero dimensions of size from the scene extent. The
// result is at least 1x1.
func CanvasSize(s *scene.Scene, size image.Point) image.Point {
	ext := s.Extent().Max
	if size.X <= 0 {
		size.X = max(ext.X, 1)
	}
	if size.Y <= 0 {
		size.Y = max(ext.Y, 1)
	}
	return size
}

// Export loads the scene in file and writes it to out. It returns the
// canvas size used.
func Export(file, out string, size image.Point, logger *slog.Logger) (image.Point, error) {
	s, err := scene.Load(file, scene.WithLogger(logger.With("file", file)))
	if err != nil {
		return image.Point{}, fmt.Errorf("could not open scene %q: %w", file, err)
	}
	defer s.Close()

	size = CanvasSize(s, size)
	if err := s.Export(out, size); err != nil {
		return image.Point{}, err
	}
	return size, nil
}

package scene

import (
	"fmt"
	"image"

	"layerdraw/bundle"
	"layerdraw/imgio"
)

// Save writes the committed state of every layer to path.
func (s *Scene) Save(path string) error {
	if err := bundle.WriteFile(path, s.Snapshots()); err != nil {
		return fmt.Errorf("could not save scene: %w", err)
	}
	s.logger.Debug("scene saved", "file", path, "layers", len(s.layers))
	return nil
}

// Load reads a scene previously written by Save.
func Load(path string, opts ...Option) (*Scene, error) {
	snaps, err := bundle.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromSnapshots(snaps, opts...)
}

// Export renders the canvas at size and encodes it into path. The format
// follows the file extension and defaults to PNG.
func (s *Scene) Export(path string, size image.Point) error {
	format, err := imgio.FormatFromPath(path)
	if err != nil {
		return err
	}
	buf, err := s.Render(size.X, size.Y)
	if err != nil {
		return err
	}
	if err := imgio.WriteFile(path, buf.Image(), format); err != nil {
		return fmt.Errorf("could not export scene: %w", err)
	}
	s.logger.Debug("scene exported", "file", path, "format", format, "width", size.X, "height", size.Y)
	return nil
}

package editcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"layerdraw/config"
	"layerdraw/scene"

	"github.com/alecthomas/kong"
)

// NewCmd creates a scene file.
type NewCmd struct {
	File   string `arg:"" help:"Scene file to create"`
	Layers int    `help:"Number of empty layers" default:"1"`
	Force  bool   `help:"Overwrite an existing file" default:"false"`
}

func (c *NewCmd) Validate(kctx *kong.Context) error {
	if c.Layers < 0 {
		return fmt.Errorf("invalid layer count: %d", c.Layers)
	}

	path, err := config.ExpandPath(c.File)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		path += Ext
	}
	c.File = path

	if !c.Force {
		if _, err := os.Stat(c.File); err == nil {
			return fmt.Errorf("scene file already exists: %q", c.File)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat scene file %q: %w", c.File, err)
		}
	}
	return nil
}

func (c *NewCmd) Run(logger *slog.Logger) error {
	s := scene.New(scene.WithLogger(logger.With("file", c.File)))
	defer s.Close()

	for range c.Layers {
		s.AddLayer()
	}
	if err := s.Save(c.File); err != nil {
		return err
	}
	logger.Info("scene created", "file", c.File, "layers", s.Len())
	return nil
}
